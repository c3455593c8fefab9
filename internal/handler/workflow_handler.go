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

// WorkflowHandler exposes the submit → vet → unblock cycle.
type WorkflowHandler struct {
	workflowService *service.WorkflowService
}

func NewWorkflowHandler(workflowService *service.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{workflowService: workflowService}
}

// Submit godoc
// POST /api/v1/allocations/submit
func (h *WorkflowHandler) Submit(c *gin.Context) {
	departmentID, ok := departmentScope(c)
	if !ok {
		return
	}
	semesterID, ok := bindSemester(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	state, err := h.workflowService.Submit(c.Request.Context(), departmentID, semesterID, claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"state": state})
}

// Vet godoc
// POST /api/v1/vetting/approve
func (h *WorkflowHandler) Vet(c *gin.Context) {
	var req model.WorkflowRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	state, err := h.workflowService.Vet(c.Request.Context(), req.DepartmentID, req.SemesterID, claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"state": state})
}

// Unblock godoc
// POST /api/v1/vetting/unblock
func (h *WorkflowHandler) Unblock(c *gin.Context) {
	var req model.WorkflowRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.workflowService.Unblock(c.Request.Context(), req.DepartmentID, req.SemesterID); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "allocation unblocked"})
}

// Status godoc
// GET /api/v1/allocations/status/:semesterID
func (h *WorkflowHandler) Status(c *gin.Context) {
	departmentID, ok := departmentScope(c)
	if !ok {
		return
	}
	semesterID, err := strconv.Atoi(c.Param("semesterID"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	status, err := h.workflowService.Status(c.Request.Context(), departmentID, semesterID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": status})
}

func bindSemester(c *gin.Context) (int, bool) {
	var req struct {
		SemesterID int `json:"semester_id" binding:"required"`
	}
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return 0, false
	}
	return req.SemesterID, true
}
