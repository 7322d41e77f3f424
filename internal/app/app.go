package app

import (
	"context"
	"jornada40/internal/annex"
	"jornada40/internal/config"
	"jornada40/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const connectRetries = 5

// BuildApp connects the infrastructure, migrates when enabled and returns the
// HTTP router with a cleanup func for the opened connections.
func BuildApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*gin.Engine, func(), error) {
	log := logger.Named("app")

	db, err := connection.ConnectGORMWithRetry(dbConfig(cfg), connectRetries, logger)
	if err != nil {
		return nil, nil, err
	}
	log.Info("database connection established")

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = sqlDB.Close() }

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries, logger)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		log.Info("redis connection established")
		cleanup = func() {
			_ = rdb.Close()
			_ = sqlDB.Close()
		}
	} else {
		log.Warn("REDIS_ADDR not set, caching and idempotency disabled")
	}

	if cfg.DBAutoMigrate {
		if err := Migrate(ctx, db, logger); err != nil {
			cleanup()
			return nil, nil, err
		}
	}

	capability := annex.DetectCapability(cfg.AnnexEngine, cfg.WkhtmltopdfPath)
	log.Info("annex renderer selected",
		zap.String("engine", string(capability.Engine)),
		zap.Bool("pdf", capability.PDF),
		zap.String("binary", capability.Binary),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(sqlDB, cfg.DBName),
	)

	router := NewRouter(Dependencies{
		Config:     cfg,
		DB:         db,
		Redis:      rdb,
		Logger:     logger,
		Registry:   registry,
		Capability: capability,
	})
	return router, cleanup, nil
}
