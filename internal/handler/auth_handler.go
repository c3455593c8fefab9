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

// AuthHandler exposes local and UMIS-backed login.
type AuthHandler struct {
	userService *service.UserService
	umisService *service.UMISService
}

func NewAuthHandler(userService *service.UserService, umisService *service.UMISService) *AuthHandler {
	return &AuthHandler{userService: userService, umisService: umisService}
}

// Login godoc
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, user, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"token": token, "user": user})
}

// UMISLogin godoc
// POST /api/v1/auth/umis-login
func (h *AuthHandler) UMISLogin(c *gin.Context) {
	var req model.UMISLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, user, err := h.umisService.LoginHOD(c.Request.Context(), req.UMISID, req.Password)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"token": token, "user": user})
}

// Logout godoc
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	if err := h.userService.Logout(c.Request.Context(), claims.UserID); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "logged out"})
}

// Me godoc
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	user, err := h.userService.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}
