package main

import (
	"context"

	"jornada40/internal/app"
	"jornada40/internal/bootstrap"
	"jornada40/internal/config"
	"jornada40/internal/shared/apperror"
	"jornada40/internal/shared/logging"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.New(logging.Options{Env: cfg.AppEnv, LogFile: cfg.LogFile})
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// build dependency + routes
	router, cleanup, err := app.BuildApp(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer cleanup()

	if err := bootstrap.StartHTTPServer(
		router,
		bootstrap.DefaultServerConfig(cfg.Port),
		bootstrap.NewZapAuditLogger(logger),
	); err != nil {
		logger.Error("http server stopped with error", zap.Error(err))
	}
}
