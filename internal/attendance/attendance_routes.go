package attendance

import (
	"github.com/gin-gonic/gin"

	"staffpay/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	attendances := r.Group("/attendance")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.POST("", handler.Upsert)
		attendances.POST("/bulk", handler.BulkUpsert)
		attendances.GET("/company/:companyId/:month", handler.GetByCompanyAndMonth)
		attendances.GET("/employee/:employeeId", handler.GetByEmployee)
	}
}
