package scheduler

import (
	"go-volunteer/internal/domain"
	"go-volunteer/internal/middleware"
	"go-volunteer/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, jwtSecret string) {
	maintenance := r.Group("/maintenance/scheduler")
	maintenance.Use(
		middleware.AuthMiddleware(jwtSecret),
		middleware.RBACAuthorize(rbacService, domain.ResourceMaintenance, domain.ActionRun),
	)
	{
		maintenance.POST("/run", handler.Run)
	}
}
