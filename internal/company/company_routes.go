package company

import (
	"github.com/gin-gonic/gin"

	"staffpay/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	companies := r.Group("/companies")
	companies.Use(middleware.AuthMiddleware())
	{
		companies.POST("", handler.Create)
		companies.GET("", handler.GetAll)
		companies.GET("/:id", handler.GetById)
		companies.PUT("/:id", handler.Update)
		companies.DELETE("/:id", handler.Delete)
	}
}
