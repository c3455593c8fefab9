package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ekediee/course-allocation-backend/internal/response"
	"github.com/Ekediee/course-allocation-backend/internal/service"
)

// OverviewHandler exposes the allocation status overview and dashboard
// aggregates.
type OverviewHandler struct {
	overviewService *service.OverviewService
}

func NewOverviewHandler(overviewService *service.OverviewService) *OverviewHandler {
	return &OverviewHandler{overviewService: overviewService}
}

// Overview godoc
// GET /api/v1/overview
func (h *OverviewHandler) Overview(c *gin.Context) {
	rows, err := h.overviewService.SessionOverview(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"departments": rows})
}

// Stats godoc
// GET /api/v1/overview/stats
func (h *OverviewHandler) Stats(c *gin.Context) {
	stats, err := h.overviewService.SessionStats(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}
