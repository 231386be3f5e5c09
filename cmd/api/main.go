package main

import (
	"context"
	"os"

	"go-volunteer/internal/app"
	"go-volunteer/internal/bootstrap"
	"go-volunteer/internal/config"
	"go-volunteer/internal/shared/apperror"
	"go-volunteer/internal/shared/audit"
	applogger "go-volunteer/internal/shared/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(os.Getenv("VOLUNTEER_CONFIG"))
	if err != nil {
		panic(err)
	}
	logger, err := applogger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()
	r := gin.Default()

	// build dependency + routes
	infra, err := app.BuildApp(r, cfg, logger)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	bootstrap.StartHTTPServer(
		r,
		cfg.Server,
		audit.NewStdoutLogger(logger),
		func(context.Context) { infra.Close() },
	)
}
