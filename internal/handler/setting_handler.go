package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ekediee/course-allocation-backend/internal/model"
	"github.com/Ekediee/course-allocation-backend/internal/response"
	"github.com/Ekediee/course-allocation-backend/internal/service"
	"github.com/Ekediee/course-allocation-backend/internal/validator"
)

// SettingHandler exposes the key/value application settings.
type SettingHandler struct {
	settingService *service.SettingService
}

func NewSettingHandler(settingService *service.SettingService) *SettingHandler {
	return &SettingHandler{settingService: settingService}
}

// List godoc
// GET /api/v1/settings
func (h *SettingHandler) List(c *gin.Context) {
	settings, err := h.settingService.List(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"settings": settings})
}

// Get godoc
// GET /api/v1/settings/:key
func (h *SettingHandler) Get(c *gin.Context) {
	key := c.Param("key")
	value, err := h.settingService.Get(c.Request.Context(), key)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"key": key, "value": value})
}

// Set godoc
// PUT /api/v1/settings/:key
func (h *SettingHandler) Set(c *gin.Context) {
	key := c.Param("key")
	var req model.UpdateSettingRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	if err := h.settingService.Set(c.Request.Context(), key, req.Value); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "setting updated"})
}
