package middleware

import (
	"go-volunteer/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger attaches a logger tagged with the request id. It must run
// after RequestID; AuthMiddleware later adds the user id to the same logger.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLogger := logger.With(zap.String("request_id", c.GetString("request_id")))
		c.Request = c.Request.WithContext(contextutil.WithLogger(c.Request.Context(), reqLogger))
		c.Next()
	}
}
