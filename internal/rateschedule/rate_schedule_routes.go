package rateschedule

import (
	"staffpay/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	schedules := r.Group("/salary-rate-schedules")
	schedules.Use(middleware.AuthMiddleware())
	{
		schedules.POST("", handler.Create)
		schedules.GET("", handler.GetAll)
		schedules.GET("/active/:category/:subCategory", handler.GetActiveRate)
		schedules.GET("/rate-for-date/:category/:subCategory", handler.GetRateForDate)
		schedules.GET("/:id", handler.GetById)
		schedules.PUT("/:id", handler.Update)
		schedules.DELETE("/:id", handler.Delete)
	}
}
