package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/noah-isme/leadform-api/api/swagger"
	"github.com/noah-isme/leadform-api/internal/handler"
	"github.com/noah-isme/leadform-api/internal/middleware"
	"github.com/noah-isme/leadform-api/internal/repository"
	"github.com/noah-isme/leadform-api/internal/service"
	"github.com/noah-isme/leadform-api/pkg/cache"
	"github.com/noah-isme/leadform-api/pkg/config"
	"github.com/noah-isme/leadform-api/pkg/database"
	"github.com/noah-isme/leadform-api/pkg/logger"
	"github.com/noah-isme/leadform-api/pkg/sheets"
	"github.com/noah-isme/leadform-api/pkg/turnstile"
)

// @title Lead Capture Form API
// @version 1.0.0
// @description Multi-step form submissions appended to a Google Sheets spreadsheet
// @BasePath /
// @schemes http https

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	formatter := service.NewFormatter()
	metrics := service.NewMetricsService()

	// A missing or broken Sheets setup is non-fatal: submissions are still
	// acknowledged and preserved through the manual-recovery log.
	delivery := service.NewDeliveryService(nil, formatter, metrics, logr)
	if cfg.Sheets.Configured() {
		client, err := sheets.New(ctx, cfg.Sheets)
		if err != nil {
			logr.Error("sheets service init failed", zap.Error(err))
		} else {
			delivery = service.NewDeliveryService(client, formatter, metrics, logr)
			if err := delivery.ValidateConnection(ctx); err != nil {
				logr.Warn("sheets connection check failed at startup", zap.Error(err))
			}
		}
	} else {
		logr.Warn("sheets credentials not configured, submissions will only be logged")
	}

	audit := service.NewAuditService(nil, logr)
	if cfg.Database.Configured() {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Error("audit database unavailable", zap.Error(err))
		} else {
			defer db.Close()
			audit = service.NewAuditService(repository.NewSubmissionRepository(db), logr)
		}
	}
	audit.Start(ctx)
	defer audit.Stop()

	verifier := turnstile.New(cfg.Turnstile)
	if !verifier.Enabled() {
		logr.Info("turnstile verification disabled")
	}

	var limiter middleware.RateLimitStore
	if cfg.RateLimit.Store == config.RateLimitStoreRedis {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, falling back to in-process rate limiting", zap.Error(err))
		} else {
			defer redisClient.Close()
			limiter = middleware.NewRedisStore(redisClient, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
		}
	}
	if limiter == nil {
		limiter = middleware.NewMemoryStore(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
	}

	submissionSvc := service.NewSubmissionService(formatter, delivery, verifier, audit, logr)

	r := handler.NewRouter(cfg, handler.RouterDeps{
		Logger:     logr,
		Metrics:    metrics,
		Limiter:    limiter,
		Submission: handler.NewSubmissionHandler(submissionSvc),
		Ops:        handler.NewOpsHandler(audit),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "sheets_configured", cfg.Sheets.Configured(), "audit_enabled", audit.Enabled())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
