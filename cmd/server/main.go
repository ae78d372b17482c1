// Package main runs the HCM.show HTTP API with an in-process sync worker and graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/FlatFilers/HCMShow-sub000/config"
	"github.com/FlatFilers/HCMShow-sub000/internal/actions"
	"github.com/FlatFilers/HCMShow-sub000/internal/admin"
	"github.com/FlatFilers/HCMShow-sub000/internal/auth"
	"github.com/FlatFilers/HCMShow-sub000/internal/benefitplans"
	"github.com/FlatFilers/HCMShow-sub000/internal/employeebenefitplans"
	"github.com/FlatFilers/HCMShow-sub000/internal/employees"
	"github.com/FlatFilers/HCMShow-sub000/internal/flatfile"
	"github.com/FlatFilers/HCMShow-sub000/internal/jobs"
	"github.com/FlatFilers/HCMShow-sub000/internal/middleware"
	"github.com/FlatFilers/HCMShow-sub000/internal/models"
	"github.com/FlatFilers/HCMShow-sub000/internal/organizations"
	"github.com/FlatFilers/HCMShow-sub000/internal/recordsync"
	"github.com/FlatFilers/HCMShow-sub000/internal/spaces"
	"github.com/FlatFilers/HCMShow-sub000/internal/webhooks"
	"github.com/FlatFilers/HCMShow-sub000/internal/worker"
	"github.com/FlatFilers/HCMShow-sub000/pkg/database"
	"github.com/FlatFilers/HCMShow-sub000/pkg/queue"
	"github.com/FlatFilers/HCMShow-sub000/pkg/redis"
	"github.com/FlatFilers/HCMShow-sub000/pkg/response"
	"github.com/FlatFilers/HCMShow-sub000/pkg/storage"
)

func main() {
	logger, level := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logger.Warn("invalid LOG_LEVEL, keeping info", zap.String("level", cfg.LogLevel))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), int32(cfg.Sync.Concurrency)+4, logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	var s3Client *storage.S3
	if cfg.AWS.SnapshotsEnabled() {
		s3Client, err = storage.NewS3(ctx, storage.S3Config{
			Region:               cfg.AWS.Region,
			AccessKeyID:          cfg.AWS.AccessKeyID,
			SecretAccessKey:      cfg.AWS.SecretAccessKey,
			SnapshotsBucket:      cfg.AWS.SnapshotsBucket,
			PresignExpireMinutes: cfg.AWS.PresignExpireMinutes,
		}, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
			s3Client = nil
		}
	}

	ffClient := flatfile.NewClient(cfg.Flatfile.BaseURL, cfg.Flatfile.APIKey, cfg.Flatfile.EnvironmentID, logger)
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	jobQueue := queue.NewQueue(rdb.Client, logger)

	// Auth and tenancy
	authHandler := auth.NewHandler(auth.NewRepository(pool), jwtService, logger)
	orgHandler := organizations.NewHandler(organizations.NewRepository(pool))

	// Synced entities
	employeeRepo := employees.NewRepository(pool)
	jobRepo := jobs.NewRepository(pool)
	planRepo := benefitplans.NewRepository(pool)
	enrollmentRepo := employeebenefitplans.NewRepository(pool)
	spaceRepo := spaces.NewRepository(pool)
	actionRepo := actions.NewRepository(pool)

	deps := recordsync.Deps{
		Source:       ffClient,
		Spaces:       spaceRepo,
		Employees:    employeeRepo,
		Jobs:         jobRepo,
		BenefitPlans: planRepo,
		Enrollments:  enrollmentRepo,
		Actions:      actionRepo,
	}
	var presigner actions.Presigner
	var cleaner admin.SnapshotCleaner
	if s3Client != nil {
		deps.Archiver = s3Client
		presigner = s3Client
		cleaner = s3Client
	}
	orchestrator := recordsync.New(deps, cfg.Sync.Concurrency, logger)
	processor := worker.NewSyncProcessor(orchestrator, jobQueue, logger)

	employeeHandler := employees.NewHandler(employeeRepo)
	jobHandler := jobs.NewHandler(jobRepo)
	planHandler := benefitplans.NewHandler(planRepo)
	enrollmentHandler := employeebenefitplans.NewHandler(enrollmentRepo)
	spaceHandler := spaces.NewHandler(spaceRepo, ffClient, logger)
	actionHandler := actions.NewHandler(actionRepo, presigner, logger)
	syncHandler := recordsync.NewHandler(orchestrator, logger)
	webhookHandler := webhooks.NewHandler(spaceRepo, jobQueue, actionRepo, logger)
	adminHandler := admin.NewHandler(admin.NewRepository(pool), cleaner, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health and metrics
	router.GET("/health", func(c *gin.Context) {
		if err := pool.Ping(c.Request.Context()); err != nil {
			response.ServiceUnavailable(c, "database unavailable")
			return
		}
		if err := rdb.Healthy(c.Request.Context()); err != nil {
			response.ServiceUnavailable(c, "redis unavailable")
			return
		}
		response.OK(c, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth (public)
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/register", authHandler.Register)
	}

	// Webhooks (shared secret, no JWT)
	router.POST("/webhooks/flatfile", middleware.ServerAuth(cfg.Server.AuthToken), webhookHandler.Flatfile)

	// Protected API (JWT required)
	api := router.Group("")
	api.Use(middleware.JWT(jwtService))
	{
		api.GET("/organization", orgHandler.Get)
		api.PATCH("/organization", middleware.RequireRole(models.RoleAdmin), orgHandler.Rename)
		api.GET("/organization/members", orgHandler.ListMembers)
		api.GET("/organization/stats", orgHandler.Stats)

		api.POST("/spaces", spaceHandler.Create)
		api.GET("/spaces/:type", spaceHandler.Get)

		api.POST("/sync", syncHandler.SyncWorkbook)
		api.POST("/sync/benefit-plans", syncHandler.SyncBenefitPlans)

		api.GET("/employees", employeeHandler.List)
		api.GET("/employees/:id", employeeHandler.GetByID)
		api.GET("/employees/:id/benefit-plans", enrollmentHandler.ListByEmployee)
		api.GET("/jobs", jobHandler.List)
		api.GET("/jobs/:id", jobHandler.GetByID)
		api.GET("/benefit-plans", planHandler.List)

		api.GET("/actions", actionHandler.List)
		api.GET("/actions/poll", actionHandler.Poll)
		api.GET("/actions/:id/snapshot-url", actionHandler.SnapshotURL)

		api.DELETE("/data", middleware.RequireRole(models.RoleAdmin), adminHandler.Purge)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Background sync worker
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go processor.Run(workerCtx)
	logger.Info("sync worker started", zap.Int("concurrency", cfg.Sync.Concurrency))

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	workerCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() (*zap.Logger, zap.AtomicLevel) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger, config.Level
}
