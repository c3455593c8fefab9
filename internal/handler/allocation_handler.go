package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Ekediee/course-allocation-backend/internal/middleware"
	"github.com/Ekediee/course-allocation-backend/internal/model"
	"github.com/Ekediee/course-allocation-backend/internal/response"
	"github.com/Ekediee/course-allocation-backend/internal/service"
	"github.com/Ekediee/course-allocation-backend/internal/validator"
)

// AllocationHandler exposes the department allocation workspace and the
// allocation write operations.
type AllocationHandler struct {
	scopeService      *service.ScopeService
	allocationService *service.AllocationService
}

func NewAllocationHandler(scopeService *service.ScopeService, allocationService *service.AllocationService) *AllocationHandler {
	return &AllocationHandler{scopeService: scopeService, allocationService: allocationService}
}

// departmentScope resolves which department the caller operates on. Heads of
// department are pinned to their own department; admin-side roles may select
// one with ?department_id.
func departmentScope(c *gin.Context) (int, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return 0, false
	}
	if claims.Role == model.RoleHOD || claims.Role == model.RoleLecturer {
		if claims.DepartmentID == 0 {
			response.Fail(c, http.StatusForbidden, response.ErrPermissionDenied)
			return 0, false
		}
		return claims.DepartmentID, true
	}

	raw := c.Query("department_id")
	if raw == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}

// Workspace godoc
// GET /api/v1/allocations/workspace/:semesterID
func (h *AllocationHandler) Workspace(c *gin.Context) {
	departmentID, ok := departmentScope(c)
	if !ok {
		return
	}
	semesterID, err := strconv.Atoi(c.Param("semesterID"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	view, err := h.scopeService.DepartmentWorkspace(c.Request.Context(), departmentID, semesterID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// AllocateBatch godoc
// POST /api/v1/allocations
func (h *AllocationHandler) AllocateBatch(c *gin.Context) {
	departmentID, ok := departmentScope(c)
	if !ok {
		return
	}

	var req model.BatchAllocationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	created, itemErr, err := h.allocationService.AllocateBatch(c.Request.Context(), departmentID, &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	if itemErr != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation,
			map[string]string{
				"index":  strconv.Itoa(itemErr.Index),
				"reason": itemErr.Reason,
			})
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"allocations": created})
}

// Replace godoc
// PUT /api/v1/allocations
func (h *AllocationHandler) Replace(c *gin.Context) {
	departmentID, ok := departmentScope(c)
	if !ok {
		return
	}

	var req model.ReplaceAllocationsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	replaced, itemErr, err := h.allocationService.ReplaceForSlot(c.Request.Context(), departmentID, &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	if itemErr != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation,
			map[string]string{
				"index":  strconv.Itoa(itemErr.Index),
				"reason": itemErr.Reason,
			})
		return
	}
	response.Success(c, http.StatusOK, gin.H{"allocations": replaced})
}
