package employee

import (
	"github.com/gin-gonic/gin"

	"staffpay/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.POST("", handler.Create)
		employees.GET("", handler.GetAll)
		employees.GET("/options", handler.GetOptions)
		employees.GET("/:id", handler.GetById)
		employees.PUT("/:id", handler.Update)
		employees.DELETE("/:id", handler.Delete)

		employees.POST("/:id/assign", handler.AssignToCompany)
		employees.POST("/:id/leave", handler.LeaveCompany)
		employees.GET("/:id/employment-history", handler.GetEmploymentHistory)
	}
}
