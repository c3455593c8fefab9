package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Ekediee/course-allocation-backend/internal/config"
	"github.com/Ekediee/course-allocation-backend/internal/handler"
	"github.com/Ekediee/course-allocation-backend/internal/middleware"
	"github.com/Ekediee/course-allocation-backend/internal/model"
	"github.com/Ekediee/course-allocation-backend/internal/response"
	"github.com/Ekediee/course-allocation-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Allocation *handler.AllocationHandler
	Workflow   *handler.WorkflowHandler
	Overview   *handler.OverviewHandler
	UMIS       *handler.UMISHandler
	Catalog    *handler.CatalogHandler
	Course     *handler.CourseHandler
	Lecturer   *handler.LecturerHandler
	User       *handler.UserHandler
	Setting    *handler.SettingHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 0. Public Group (No Auth) ─────────────────────────────────────
	publicAPI := router.Group("/api/v1/public")
	{
		publicAPI.GET("/settings", handlers.Setting.List)
		publicAPI.GET("/session", handlers.Catalog.ActiveSession)
	}

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/umis-login", handlers.Auth.UMISLogin)

		auth.POST("/logout", middleware.RequireJWT(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireJWT(authService), handlers.Auth.Me)
	}

	// ─── 2. Allocation Group (HOD workspace) ───────────────────────────
	// Admin-side roles may also read a workspace by passing department_id.
	allocAPI := router.Group("/api/v1/allocations")
	allocAPI.Use(middleware.RequireJWT(authService))
	{
		allocAPI.GET("/workspace/:semesterID", handlers.Allocation.Workspace)
		allocAPI.GET("/status/:semesterID", handlers.Workflow.Status)

		allocAPI.POST("", middleware.RequireRole(model.RoleHOD), handlers.Allocation.AllocateBatch)
		allocAPI.PUT("", middleware.RequireRole(model.RoleHOD), handlers.Allocation.Replace)
		allocAPI.POST("/submit", middleware.RequireRole(model.RoleHOD), handlers.Workflow.Submit)
	}

	// ─── 3. Vetting Group (vetter / admin-side) ────────────────────────
	vettingAPI := router.Group("/api/v1/vetting")
	vettingAPI.Use(middleware.RequireJWT(authService), middleware.RequireAdmin())
	{
		vettingAPI.POST("/approve", handlers.Workflow.Vet)
		vettingAPI.POST("/unblock", handlers.Workflow.Unblock)
	}

	// ─── 4. Overview Group (admin-side dashboards) ─────────────────────
	overviewAPI := router.Group("/api/v1/overview")
	overviewAPI.Use(middleware.RequireJWT(authService), middleware.RequireAdmin())
	{
		overviewAPI.GET("", handlers.Overview.Overview)
		overviewAPI.GET("/stats", handlers.Overview.Stats)
	}

	// ─── 5. UMIS Group ─────────────────────────────────────────────────
	umisAPI := router.Group("/api/v1/umis")
	umisAPI.Use(middleware.RequireJWT(authService))
	{
		umisAPI.POST("/push", middleware.RequireRole(model.RoleHOD), handlers.UMIS.Push)
		umisAPI.POST("/class-options", handlers.UMIS.ClassOptions)
	}

	// ─── 6. Admin Group (reference data + user management) ─────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireJWT(authService), middleware.RequireAdmin())
	{
		// Academic structure reads are open to any admin-side role;
		// writes are restricted to superadmin and admin below.
		adminAPI.GET("/schools", handlers.Catalog.ListSchools)
		adminAPI.GET("/departments", handlers.Catalog.ListDepartments)
		adminAPI.GET("/programs", handlers.Catalog.ListPrograms)
		adminAPI.GET("/levels", handlers.Catalog.ListLevels)
		adminAPI.GET("/semesters", handlers.Catalog.ListSemesters)
		adminAPI.GET("/bulletins", handlers.Catalog.ListBulletins)
		adminAPI.GET("/sessions", handlers.Catalog.ListSessions)
		adminAPI.GET("/courses", handlers.Course.Catalog)
		adminAPI.GET("/courses/types", handlers.Course.ListTypes)
		adminAPI.GET("/specializations", handlers.Course.ListSpecializations)
		adminAPI.GET("/lecturers", handlers.Lecturer.List)
		adminAPI.GET("/lecturers/:id", handlers.Lecturer.Get)
		adminAPI.GET("/users", handlers.User.List)
		adminAPI.GET("/users/:id", handlers.User.Get)
		adminAPI.GET("/settings", handlers.Setting.List)
		adminAPI.GET("/settings/:key", handlers.Setting.Get)

		writeAPI := adminAPI.Group("")
		writeAPI.Use(middleware.RequireAnyRole(model.RoleSuperadmin, model.RoleAdmin))
		{
			writeAPI.POST("/schools", handlers.Catalog.CreateSchool)
			writeAPI.PUT("/schools/:id", handlers.Catalog.UpdateSchool)
			writeAPI.DELETE("/schools/:id", handlers.Catalog.DeleteSchool)

			writeAPI.POST("/departments", handlers.Catalog.CreateDepartment)
			writeAPI.POST("/departments/batch", handlers.Catalog.CreateDepartmentsBatch)
			writeAPI.PUT("/departments/:id", handlers.Catalog.UpdateDepartment)
			writeAPI.DELETE("/departments/:id", handlers.Catalog.DeleteDepartment)

			writeAPI.POST("/programs", handlers.Catalog.CreateProgram)
			writeAPI.PUT("/programs/:id", handlers.Catalog.UpdateProgram)
			writeAPI.DELETE("/programs/:id", handlers.Catalog.DeleteProgram)

			writeAPI.POST("/levels", handlers.Catalog.CreateLevel)
			writeAPI.POST("/semesters", handlers.Catalog.CreateSemester)

			writeAPI.POST("/bulletins", handlers.Catalog.CreateBulletin)
			writeAPI.POST("/bulletins/:id/activate", handlers.Catalog.ActivateBulletin)

			writeAPI.POST("/sessions", handlers.Catalog.InitSession)

			writeAPI.POST("/courses", handlers.Course.Create)
			writeAPI.POST("/courses/batch", handlers.Course.CreateBatch)
			writeAPI.PUT("/courses/:id", handlers.Course.Update)
			writeAPI.DELETE("/courses/:id", handlers.Course.Delete)
			writeAPI.POST("/courses/types", handlers.Course.CreateType)
			writeAPI.POST("/specializations", handlers.Course.CreateSpecialization)

			writeAPI.POST("/users", handlers.User.CreateAcademic)
			writeAPI.POST("/users/batch", handlers.User.CreateAcademicBatch)
			writeAPI.POST("/users/admin", handlers.User.CreateAdmin)
			writeAPI.POST("/users/admin/batch", handlers.User.CreateAdminBatch)
			writeAPI.PUT("/users/:id", handlers.User.Update)
			writeAPI.DELETE("/users/:id", handlers.User.Delete)

			writeAPI.PUT("/settings/:key", handlers.Setting.Set)
		}
	}

	return router
}
