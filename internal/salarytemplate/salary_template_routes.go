package salarytemplate

import (
	"staffpay/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	templates := r.Group("/salary-templates")
	templates.Use(middleware.AuthMiddleware())
	{
		templates.POST("", handler.Create)
		templates.GET("/company/:companyId", handler.GetActiveByCompany)
		templates.GET("/:id", handler.GetById)
		templates.PUT("/:id", handler.Update)
		templates.DELETE("/:id", handler.Delete)
	}
}
