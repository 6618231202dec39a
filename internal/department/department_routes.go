package department

import (
	"github.com/gin-gonic/gin"

	"staffpay/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware())
	{
		departments.POST("", handler.Create)
		departments.GET("", handler.GetAll)
		departments.GET("/:id", handler.GetById)
		departments.PUT("/:id", handler.Update)
		departments.DELETE("/:id", handler.Delete)
	}
}
