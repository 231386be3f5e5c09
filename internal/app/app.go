package app

import (
	"database/sql"
	"net/http"

	"go-volunteer/internal/config"
	"go-volunteer/internal/database"
	"go-volunteer/internal/middleware"
	"go-volunteer/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Infra holds the connections shared by the modules of one process.
type Infra struct {
	GormDB *gorm.DB
	SQLDB  *sql.DB
	Redis  *redis.Client
}

func (i *Infra) Close() {
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.SQLDB != nil {
		_ = i.SQLDB.Close()
	}
}

func connectDatabase(cfg *config.Config, logger *zap.Logger) (*Infra, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	return &Infra{GormDB: gormDB, SQLDB: sqlDB}, nil
}

// BuildApp connects the infrastructure, applies migrations and registers
// every module on router. The caller owns the returned Infra.
func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) (*Infra, error) {
	infra, err := connectDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	if cfg.Database.Migrate {
		if err := database.RunMigrations(infra.SQLDB, logger); err != nil {
			infra.Close()
			return nil, err
		}
	}

	infra.Redis, err = connection.ConnectRedisWithRetry(cfg.Redis, cfg.Database.MaxRetries, logger)
	if err != nil {
		infra.Close()
		return nil, err
	}
	logger.Info("redis connection established")

	router.Use(middleware.RequestID(), middleware.ContextLogger(logger))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if err := registerModules(router, cfg, infra, logger); err != nil {
		infra.Close()
		return nil, err
	}
	return infra, nil
}
