package main

import (
	"os"

	"go-volunteer/internal/app"
	"go-volunteer/internal/config"
	"go-volunteer/internal/shared/apperror"
	applogger "go-volunteer/internal/shared/logger"

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

	if err := app.RunWorker(cfg, logger); err != nil {
		logger.Fatal("run worker failed", zap.Error(err))
	}
}
