package http

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"civic-reports/internal/service"
)

type Handler struct {
	reports     *service.ReportService
	analytics   *service.AnalyticsService
	departments *service.DepartmentService
	auth        *service.AuthService
	log         zerolog.Logger
}

func NewHandler(
	reports *service.ReportService,
	analytics *service.AnalyticsService,
	departments *service.DepartmentService,
	auth *service.AuthService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		reports:     reports,
		analytics:   analytics,
		departments: departments,
		auth:        auth,
		log:         log,
	}
}

func NewRouter(h *Handler, authMiddleware, rateLimiter gin.HandlerFunc, environment string) *gin.Engine {
	if environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h.Register(r, authMiddleware, rateLimiter)
	return r
}

func (h *Handler) Register(r *gin.Engine, authMiddleware, rateLimiter gin.HandlerFunc) {
	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.register)
	authGroup.POST("/login", h.login)
	authGroup.GET("/me", authMiddleware, h.me)

	reports := api.Group("/reports")
	reports.Use(authMiddleware)
	reports.GET("", h.listReports)
	reports.POST("", rateLimiter, h.createReport)
	reports.GET("/mine", h.listOwnReports)
	reports.GET("/analytics", h.getAnalytics)
	reports.GET("/:id", h.getReport)
	reports.PATCH("/:id", h.updateReport)
	reports.DELETE("/:id", h.deleteReport)

	departments := api.Group("/departments")
	departments.Use(authMiddleware)
	departments.GET("", h.listDepartments)
	departments.POST("", h.createDepartment)
	departments.GET("/:id", h.getDepartment)
	departments.PUT("/:id", h.updateDepartment)
	departments.DELETE("/:id", h.deleteDepartment)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalid):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{"data": data}
}

func errorResponse(message string) gin.H {
	return gin.H{"error": message}
}
