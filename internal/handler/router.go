package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/leadform-api/internal/middleware"
	"github.com/noah-isme/leadform-api/internal/service"
	"github.com/noah-isme/leadform-api/pkg/config"
	appErrors "github.com/noah-isme/leadform-api/pkg/errors"
	"github.com/noah-isme/leadform-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/leadform-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/leadform-api/pkg/middleware/requestid"
	"github.com/noah-isme/leadform-api/pkg/response"
)

// RouterDeps bundles everything the router mounts.
type RouterDeps struct {
	Logger     *zap.Logger
	Metrics    *service.MetricsService
	Limiter    middleware.RateLimitStore
	Submission *SubmissionHandler
	Ops        *OpsHandler
}

// NewRouter wires middleware and routes. Non-POST calls to the submit
// endpoint get an explicit 405 envelope rather than gin's default 404.
func NewRouter(cfg *config.Config, deps RouterDeps) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.Metrics))

	r.NoMethod(func(c *gin.Context) {
		response.AbortError(c, appErrors.ErrMethodNotAllowed)
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	api := r.Group("/api")
	submit := api.Group("")
	if deps.Limiter != nil {
		submit.Use(middleware.RateLimit(deps.Limiter, deps.Metrics, deps.Logger))
	}
	submit.POST("/submit-form", deps.Submission.Submit)

	if deps.Ops != nil {
		api.GET("/submissions", deps.Ops.List)
		api.GET("/submissions/export", deps.Ops.Export)
	}

	metricsHandler := NewMetricsHandler(deps.Metrics)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
