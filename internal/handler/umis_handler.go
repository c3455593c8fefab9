package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ekediee/course-allocation-backend/internal/middleware"
	"github.com/Ekediee/course-allocation-backend/internal/model"
	"github.com/Ekediee/course-allocation-backend/internal/response"
	"github.com/Ekediee/course-allocation-backend/internal/service"
	"github.com/Ekediee/course-allocation-backend/internal/validator"
)

// UMISHandler exposes the UMIS push and reference reads.
type UMISHandler struct {
	umisService *service.UMISService
}

func NewUMISHandler(umisService *service.UMISService) *UMISHandler {
	return &UMISHandler{umisService: umisService}
}

// Push godoc
// POST /api/v1/umis/push
func (h *UMISHandler) Push(c *gin.Context) {
	departmentID, ok := departmentScope(c)
	if !ok {
		return
	}

	var req model.UMISPushRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	summary, err := h.umisService.PushSlot(c.Request.Context(), departmentID, claims.UserID, &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	status := http.StatusOK
	if summary.Failed > 0 {
		status = http.StatusMultiStatus
	}
	response.Success(c, status, summary)
}

// ClassOptions godoc
// POST /api/v1/umis/class-options
func (h *UMISHandler) ClassOptions(c *gin.Context) {
	var req struct {
		UMISID   string `json:"umisid" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	options, err := h.umisService.ClassOptions(c.Request.Context(), req.UMISID, req.Password)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"class_options": options})
}
