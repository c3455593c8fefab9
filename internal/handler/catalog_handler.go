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

// CatalogHandler groups the academic structure reference endpoints:
// schools, departments, programs, levels, semesters, bulletins and sessions.
type CatalogHandler struct {
	schoolService     *service.SchoolService
	departmentService *service.DepartmentService
	programService    *service.ProgramService
	levelService      *service.LevelService
	semesterService   *service.SemesterService
	bulletinService   *service.BulletinService
	sessionService    *service.SessionService
}

func NewCatalogHandler(schoolService *service.SchoolService, departmentService *service.DepartmentService,
	programService *service.ProgramService, levelService *service.LevelService,
	semesterService *service.SemesterService, bulletinService *service.BulletinService,
	sessionService *service.SessionService) *CatalogHandler {
	return &CatalogHandler{
		schoolService:     schoolService,
		departmentService: departmentService,
		programService:    programService,
		levelService:      levelService,
		semesterService:   semesterService,
		bulletinService:   bulletinService,
		sessionService:    sessionService,
	}
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}

// ─── Schools ────────────────────────────────────────────────────────────────

func (h *CatalogHandler) ListSchools(c *gin.Context) {
	schools, err := h.schoolService.List(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"schools": schools})
}

func (h *CatalogHandler) CreateSchool(c *gin.Context) {
	var req model.CreateSchoolRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	school, err := h.schoolService.Create(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"school": school})
}

func (h *CatalogHandler) UpdateSchool(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req model.CreateSchoolRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	if err := h.schoolService.Update(c.Request.Context(), id, &req); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "school updated successfully"})
}

func (h *CatalogHandler) DeleteSchool(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.schoolService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "school deleted successfully"})
}

// ─── Departments ────────────────────────────────────────────────────────────

func (h *CatalogHandler) ListDepartments(c *gin.Context) {
	academicOnly := c.Query("academic") == "true"
	departments, err := h.departmentService.List(c.Request.Context(), academicOnly)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"departments": departments})
}

func (h *CatalogHandler) CreateDepartment(c *gin.Context) {
	var req model.CreateDepartmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	department, err := h.departmentService.Create(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"department": department})
}

func (h *CatalogHandler) CreateDepartmentsBatch(c *gin.Context) {
	var req model.BatchCreateDepartmentsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	departments, err := h.departmentService.CreateBatch(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"departments": departments})
}

func (h *CatalogHandler) UpdateDepartment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req model.CreateDepartmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	if err := h.departmentService.Update(c.Request.Context(), id, &req); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "department updated successfully"})
}

func (h *CatalogHandler) DeleteDepartment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.departmentService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "department deleted successfully"})
}

// ─── Programs ───────────────────────────────────────────────────────────────

func (h *CatalogHandler) ListPrograms(c *gin.Context) {
	departmentID, _ := strconv.Atoi(c.Query("department_id"))
	programs, err := h.programService.List(c.Request.Context(), departmentID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"programs": programs})
}

func (h *CatalogHandler) CreateProgram(c *gin.Context) {
	var req model.CreateProgramRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	program, err := h.programService.Create(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"program": program})
}

func (h *CatalogHandler) UpdateProgram(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req model.CreateProgramRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	if err := h.programService.Update(c.Request.Context(), id, &req); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "program updated successfully"})
}

func (h *CatalogHandler) DeleteProgram(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.programService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "program deleted successfully"})
}

// ─── Levels ─────────────────────────────────────────────────────────────────

func (h *CatalogHandler) ListLevels(c *gin.Context) {
	levels, err := h.levelService.List(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"levels": levels})
}

func (h *CatalogHandler) CreateLevel(c *gin.Context) {
	var req model.CreateLevelRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	level, err := h.levelService.Create(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"level": level})
}

// ─── Semesters ──────────────────────────────────────────────────────────────

func (h *CatalogHandler) ListSemesters(c *gin.Context) {
	semesters, err := h.semesterService.List(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"semesters": semesters})
}

func (h *CatalogHandler) CreateSemester(c *gin.Context) {
	var req model.CreateSemesterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	semester, err := h.semesterService.Create(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"semester": semester})
}

// ─── Bulletins ──────────────────────────────────────────────────────────────

func (h *CatalogHandler) ListBulletins(c *gin.Context) {
	bulletins, err := h.bulletinService.List(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bulletins": bulletins})
}

func (h *CatalogHandler) CreateBulletin(c *gin.Context) {
	var req model.CreateBulletinRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	bulletin, err := h.bulletinService.Create(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"bulletin": bulletin})
}

func (h *CatalogHandler) ActivateBulletin(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.bulletinService.Activate(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "bulletin activated"})
}

// ─── Academic sessions ──────────────────────────────────────────────────────

func (h *CatalogHandler) ListSessions(c *gin.Context) {
	sessions, err := h.sessionService.List(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sessions": sessions})
}

func (h *CatalogHandler) InitSession(c *gin.Context) {
	var req model.InitSessionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	session, err := h.sessionService.Init(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"session": session})
}

func (h *CatalogHandler) ActiveSession(c *gin.Context) {
	session, err := h.sessionService.Active(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"session": session})
}
