package payroll

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"staffpay/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	payroll := r.Group("/payroll")
	payroll.Use(middleware.AuthMiddleware())
	{
		payroll.POST("/calculate-payroll", middleware.RateLimitByIP(1, 3), handler.Calculate)
		payroll.POST("/finalize", middleware.Idempotency(rdb), handler.Finalize)
		payroll.GET("/report", handler.GetReport)
		payroll.GET("/by-month/:companyId/:month", handler.GetByMonth)
		payroll.GET("/stats", handler.GetStats)
		payroll.GET("/employee-report/:employeeId", handler.GetEmployeeReport)
	}
}
