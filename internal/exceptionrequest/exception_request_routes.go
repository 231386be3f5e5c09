package exceptionrequest

import (
	"go-volunteer/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, jwtSecret string) {
	exceptions := r.Group("/attendance/:id/exception")
	exceptions.Use(middleware.AuthMiddleware(jwtSecret))
	{
		exceptions.POST("", handler.Submit)
		exceptions.POST("/review", handler.Review)
	}
}
