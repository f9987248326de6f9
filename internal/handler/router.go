package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/ieve-api/internal/middleware"
	"github.com/noah-isme/ieve-api/internal/models"
	"github.com/noah-isme/ieve-api/pkg/config"
	appErrors "github.com/noah-isme/ieve-api/pkg/errors"
	"github.com/noah-isme/ieve-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/ieve-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/ieve-api/pkg/middleware/requestid"
	"github.com/noah-isme/ieve-api/pkg/response"
)

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Students *StudentHandler
	Courses  *CourseHandler
	Absences *AbsenceHandler
	Users    *UserHandler
	Reports  *ReportHandler
	Metrics  *MetricsHandler
}

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(cfg *config.Config, logr *zap.Logger, h Handlers) *gin.Engine {
	if logr == nil {
		logr = zap.NewNop()
	}

	r := gin.New()
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		response.Error(c, appErrors.Internal(fmt.Errorf("panic: %v", recovered), "handler panicked"))
	}))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if h.Metrics != nil {
		r.Use(middleware.Metrics(h.Metrics.metrics))
		r.GET("/metrics", h.Metrics.Prometheus)
	}
	r.Use(middleware.Session())

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.ErrRouteMissing)
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	enforce := cfg.Session.EnforceRoles
	adminOnly := middleware.RBAC(enforce, models.RoleAdmin)
	staff := middleware.RBAC(enforce, models.RoleAdmin, models.RoleTeacher)

	api := r.Group(cfg.APIPrefix)
	if h.Metrics != nil {
		api.GET("/health", h.Metrics.Health)
	}

	if h.Students != nil {
		students := api.Group("/students")
		students.GET("", h.Students.List)
		students.GET("/:id", h.Students.Get)
		students.POST("", staff, h.Students.Create)
		students.PUT("/:id", staff, h.Students.Update)
		students.DELETE("/:id", adminOnly, h.Students.Delete)
	}

	if h.Courses != nil {
		courses := api.Group("/courses")
		courses.GET("", h.Courses.List)
		courses.GET("/:id", h.Courses.Get)
		courses.POST("", adminOnly, h.Courses.Create)
		courses.PUT("/:id", adminOnly, h.Courses.Update)
		courses.DELETE("/:id", adminOnly, h.Courses.Delete)
	}

	if h.Absences != nil {
		absences := api.Group("/absences")
		absences.GET("", h.Absences.List)
		absences.GET("/student/:studentId", h.Absences.ListByStudent)
		absences.GET("/:id", h.Absences.Get)
		absences.GET("/:id/comments", h.Absences.Comments)
		absences.POST("", staff, h.Absences.Create)
		absences.POST("/:id/comments", h.Absences.AppendComment)
		absences.PUT("/:id", staff, h.Absences.Update)
		absences.DELETE("/:id", staff, h.Absences.Delete)
	}

	if h.Users != nil {
		users := api.Group("/users")
		users.GET("", h.Users.List)
		users.GET("/:username", h.Users.GetByUsername)
		users.POST("", adminOnly, h.Users.Create)
		users.PUT("/:id", adminOnly, h.Users.Update)
		users.DELETE("/:id", adminOnly, h.Users.Delete)
	}

	if h.Reports != nil {
		reports := api.Group("/reports", staff)
		reports.GET("/absences", h.Reports.Absences)
		reports.GET("/absences/export", h.Reports.Export)
		reports.GET("/courses", h.Reports.Courses)
		reports.GET("/students/:id", h.Reports.Student)
		reports.GET("/dashboard", h.Reports.Dashboard)
	}

	return r
}
