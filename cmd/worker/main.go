// Package main runs the standalone sync worker consuming the Redis job queue.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/FlatFilers/HCMShow-sub000/config"
	"github.com/FlatFilers/HCMShow-sub000/internal/actions"
	"github.com/FlatFilers/HCMShow-sub000/internal/benefitplans"
	"github.com/FlatFilers/HCMShow-sub000/internal/employeebenefitplans"
	"github.com/FlatFilers/HCMShow-sub000/internal/employees"
	"github.com/FlatFilers/HCMShow-sub000/internal/flatfile"
	"github.com/FlatFilers/HCMShow-sub000/internal/jobs"
	"github.com/FlatFilers/HCMShow-sub000/internal/recordsync"
	"github.com/FlatFilers/HCMShow-sub000/internal/spaces"
	"github.com/FlatFilers/HCMShow-sub000/internal/worker"
	"github.com/FlatFilers/HCMShow-sub000/pkg/database"
	"github.com/FlatFilers/HCMShow-sub000/pkg/queue"
	"github.com/FlatFilers/HCMShow-sub000/pkg/redis"
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

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	deps := recordsync.Deps{
		Source:       flatfile.NewClient(cfg.Flatfile.BaseURL, cfg.Flatfile.APIKey, cfg.Flatfile.EnvironmentID, logger),
		Spaces:       spaces.NewRepository(pool),
		Employees:    employees.NewRepository(pool),
		Jobs:         jobs.NewRepository(pool),
		BenefitPlans: benefitplans.NewRepository(pool),
		Enrollments:  employeebenefitplans.NewRepository(pool),
		Actions:      actions.NewRepository(pool),
	}
	if cfg.AWS.SnapshotsEnabled() {
		s3Client, err := storage.NewS3(ctx, storage.S3Config{
			Region:               cfg.AWS.Region,
			AccessKeyID:          cfg.AWS.AccessKeyID,
			SecretAccessKey:      cfg.AWS.SecretAccessKey,
			SnapshotsBucket:      cfg.AWS.SnapshotsBucket,
			PresignExpireMinutes: cfg.AWS.PresignExpireMinutes,
		}, logger)
		if err != nil {
			logger.Fatal("s3", zap.Error(err))
		}
		deps.Archiver = s3Client
	}

	jobQueue := queue.NewQueue(rdb.Client, logger)
	processor := worker.NewSyncProcessor(recordsync.New(deps, cfg.Sync.Concurrency, logger), jobQueue, logger)

	workerCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go processor.Run(workerCtx)
	logger.Info("worker started", zap.Int("concurrency", cfg.Sync.Concurrency))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()
	time.Sleep(2 * time.Second)
	logger.Info("worker stopped")
}

func newLogger() (*zap.Logger, zap.AtomicLevel) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger, config.Level
}
