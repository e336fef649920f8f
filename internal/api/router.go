package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/projecthub/projects-api/docs"
	"github.com/projecthub/projects-api/internal/api/handler"
	"github.com/projecthub/projects-api/internal/api/metrics"
	"github.com/projecthub/projects-api/internal/api/middleware"
	"github.com/projecthub/projects-api/internal/cache"
	"github.com/projecthub/projects-api/internal/core/domain"
	"github.com/projecthub/projects-api/internal/core/service"
	"github.com/projecthub/projects-api/internal/infrastructure/config"
	mongodb "github.com/projecthub/projects-api/internal/infrastructure/db/mongo"
	"github.com/projecthub/projects-api/internal/ratelimit"
	"github.com/projecthub/projects-api/internal/security"
	"github.com/projecthub/projects-api/pkg/logger"
)

// NewRouter builds the Echo instance with every dependency wired: the
// rate limiter, caches, security primitives, services, handlers, and the
// ordered middleware pipeline (rate-limit → auth → rbac → handler).
// Documentation, metrics and health routes sit outside the rate-limited
// /api group.
func NewRouter(db *mongo.Database, cfg *config.Config) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("projects_api"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	// --- Security primitives ---
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	codec := security.NewJWTCodec(cfg.JWTSecret, cfg.TokenTTL)

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)

	// --- Caches ---
	projectCache := cache.New[int64, *domain.Project](cfg.Cache.MaximumSize, cfg.Cache.ExpireAfterAccess)
	projectCache.Observe(cacheObservers("project"))
	listingCache := cache.New[string, domain.Page[domain.Project]](cfg.Cache.MaximumSize, cfg.Cache.ExpireAfterAccess)
	listingCache.Observe(cacheObservers("projects"))

	// --- Services ---
	userService := service.NewUserService(userRepo, hasher, log)
	authService := service.NewAuthService(userRepo, hasher, codec, log)
	projectService := service.NewProjectService(projectRepo, taskRepo, projectCache, listingCache, log)
	taskService := service.NewTaskService(taskRepo, projectRepo, log)

	// --- Handlers ---
	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(authService)
	projectHandler := handler.NewProjectHandler(projectService)
	taskHandler := handler.NewTaskHandler(taskService)

	// --- Admission middleware ---
	limiter := ratelimit.New(ratelimit.Config{
		Capacity:       cfg.RateLimit.Requests,
		RefillInterval: cfg.RateLimit.Duration,
		MaxKeys:        cfg.RateLimit.MaxKeys,
	})
	rateLimit := middleware.RateLimit(limiter, log)
	authenticated := middleware.Auth(codec, userRepo)
	anyRole := middleware.RBAC(domain.RoleUser, domain.RoleAdmin)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Unlimited routes: docs, metrics, health probes ---
	e.GET("/swagger/*", echoswagger.WrapHandler)
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- API routes ---
	api := e.Group("/api/v1", rateLimit)

	// Public endpoints.
	api.POST("/users", userHandler.Create)
	api.POST("/auth/login", authHandler.Login)

	projects := api.Group("/projects", authenticated)
	projects.POST("", projectHandler.Create, anyRole)
	projects.GET("", projectHandler.List, anyRole)
	projects.GET("/:id", projectHandler.Get, anyRole)
	projects.PUT("/:id", projectHandler.Update, adminOnly)
	projects.DELETE("/:id", projectHandler.Delete, adminOnly)
	projects.POST("/delete-by-ids", projectHandler.DeleteByIDs, adminOnly)

	tasks := api.Group("/tasks", authenticated, anyRole)
	tasks.POST("", taskHandler.Create)
	tasks.GET("", taskHandler.List)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id/status", taskHandler.UpdateStatus)
	tasks.PUT("/:id/priority", taskHandler.UpdatePriority)
	tasks.DELETE("/:id", taskHandler.Delete)

	return e
}

func cacheObservers(name string) (onHit, onMiss func()) {
	return func() { metrics.CacheHitsTotal.WithLabelValues(name).Inc() },
		func() { metrics.CacheMissesTotal.WithLabelValues(name).Inc() }
}
