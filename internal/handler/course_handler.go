package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Ekediee/course-allocation-backend/internal/model"
	"github.com/Ekediee/course-allocation-backend/internal/response"
	"github.com/Ekediee/course-allocation-backend/internal/service"
	"github.com/Ekediee/course-allocation-backend/internal/validator"
)

// CourseHandler manages the bulletin course catalog: program course slots,
// course types and specialization tags.
type CourseHandler struct {
	courseService *service.CourseService
}

func NewCourseHandler(courseService *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// Catalog godoc
// GET /api/v1/courses?bulletin_id=
func (h *CourseHandler) Catalog(c *gin.Context) {
	bulletinID, _ := strconv.Atoi(c.Query("bulletin_id"))
	slots, err := h.courseService.Catalog(c.Request.Context(), bulletinID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"courses": slots})
}

// Create godoc
// POST /api/v1/courses
func (h *CourseHandler) Create(c *gin.Context) {
	var req model.CreateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	slot, err := h.courseService.CreateSlot(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"course": slot})
}

// CreateBatch godoc
// POST /api/v1/courses/batch
func (h *CourseHandler) CreateBatch(c *gin.Context) {
	var req model.BatchCreateCoursesRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	created, err := h.courseService.CreateSlotBatch(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"created": created})
}

// Update godoc
// PUT /api/v1/courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req model.UpdateCourseSlotRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	if err := h.courseService.UpdateSlot(c.Request.Context(), id, &req); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "course updated successfully"})
}

// Delete godoc
// DELETE /api/v1/courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.courseService.DeleteSlot(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "course deleted successfully"})
}

// ListTypes godoc
// GET /api/v1/courses/types
func (h *CourseHandler) ListTypes(c *gin.Context) {
	types, err := h.courseService.ListTypes(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"course_types": types})
}

// CreateType godoc
// POST /api/v1/courses/types
func (h *CourseHandler) CreateType(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	courseType, err := h.courseService.CreateType(c.Request.Context(), req.Name)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"course_type": courseType})
}

// ListSpecializations godoc
// GET /api/v1/specializations
func (h *CourseHandler) ListSpecializations(c *gin.Context) {
	specs, err := h.courseService.ListSpecializations(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"specializations": specs})
}

// CreateSpecialization godoc
// POST /api/v1/specializations
func (h *CourseHandler) CreateSpecialization(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	spec, err := h.courseService.CreateSpecialization(c.Request.Context(), req.Name)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"specialization": spec})
}
