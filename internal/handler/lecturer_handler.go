package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Ekediee/course-allocation-backend/internal/response"
	"github.com/Ekediee/course-allocation-backend/internal/service"
)

// LecturerHandler exposes lecturer directory reads. Lecturer records are
// created through the user endpoints, so there is no create here.
type LecturerHandler struct {
	lecturerService *service.LecturerService
}

func NewLecturerHandler(lecturerService *service.LecturerService) *LecturerHandler {
	return &LecturerHandler{lecturerService: lecturerService}
}

// List godoc
// GET /api/v1/lecturers?department_id=
func (h *LecturerHandler) List(c *gin.Context) {
	departmentID, _ := strconv.Atoi(c.Query("department_id"))
	lecturers, err := h.lecturerService.List(c.Request.Context(), departmentID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"lecturers": lecturers})
}

// Get godoc
// GET /api/v1/lecturers/:id
func (h *LecturerHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	lecturer, err := h.lecturerService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"lecturer": lecturer})
}
