package feedback

import (
	"go-volunteer/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, jwtSecret string) {
	auth := middleware.AuthMiddleware(jwtSecret)

	records := r.Group("/attendance/:id/feedback")
	records.Use(auth)
	{
		records.POST("", handler.Submit)
		records.POST("/override", handler.Override)
	}

	events := r.Group("/events/:eventId/feedback")
	events.Use(auth)
	{
		events.GET("", handler.ListForEvent)
		events.GET("/export", handler.Export)
	}
}
