package attendance

import (
	"go-volunteer/internal/domain"
	"go-volunteer/internal/middleware"
	"go-volunteer/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Scans are bursty at the door but a single volunteer never needs more than
// a handful per second.
const (
	scanRateLimit = rate.Limit(2)
	scanBurst     = 5
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
	jwtSecret string,
) {
	auth := middleware.AuthMiddleware(jwtSecret)
	scanLimit := middleware.RateLimitByUser(scanRateLimit, scanBurst)

	events := r.Group("/events/:eventId")
	events.Use(auth)
	{
		events.POST("/attendance-tokens", handler.IssueToken)
		events.GET("/attendance/me", handler.GetMine)
	}

	attendance := r.Group("/attendance")
	attendance.Use(auth, middleware.ExtractUserID())
	{
		attendance.POST("/scan", scanLimit, middleware.Idempotency(rdb), handler.Scan)
		attendance.POST("/token", scanLimit, middleware.Idempotency(rdb), handler.RedeemToken)
		attendance.GET("/pending-feedback", handler.PendingFeedback)
	}

	maintenance := r.Group("/maintenance/attendance")
	maintenance.Use(auth, middleware.RBACAuthorize(rbacService, domain.ResourceMaintenance, domain.ActionRun))
	{
		maintenance.POST("/validate", handler.ValidateOpenSessions)
	}
}
