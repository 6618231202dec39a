package designation

import (
	"github.com/gin-gonic/gin"

	"staffpay/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	designations := r.Group("/designations")
	designations.Use(middleware.AuthMiddleware())
	{
		designations.POST("", handler.Create)
		designations.GET("", handler.GetAll)
		designations.GET("/:id", handler.GetById)
		designations.PUT("/:id", handler.Update)
		designations.DELETE("/:id", handler.Delete)
	}
}
