package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"staffpay/internal/attendance"
	"staffpay/internal/company"
	"staffpay/internal/department"
	"staffpay/internal/designation"
	"staffpay/internal/employee"
	"staffpay/internal/messaging/kafka"
	"staffpay/internal/payroll"
	"staffpay/internal/rateschedule"
	"staffpay/internal/salarytemplate"
	"staffpay/internal/shared/counter"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	designationRepo := designation.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB)
	rateScheduleRepo := rateschedule.NewRepository(gormDB)
	salaryTemplateRepo := salarytemplate.NewRepository(gormDB)

	// --- Services ---
	attendanceService := attendance.NewService(db, attendanceRepo)
	companyService := company.NewService(companyRepo)
	departmentService := department.NewService(departmentRepo)
	designationService := designation.NewService(designationRepo)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb)
	payrollService := payroll.NewServiceWithOutbox(db, payrollRepo, salaryTemplateRepo, outboxRepo)
	rateScheduleService := rateschedule.NewService(db, rateScheduleRepo)
	salaryTemplateService := salarytemplate.NewService(salaryTemplateRepo)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	companyHandler := company.NewHandler(companyService)
	departmentHandler := department.NewHandler(departmentService)
	designationHandler := designation.NewHandler(designationService)
	employeeHandler := employee.NewHandler(employeeService)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	rateScheduleHandler := rateschedule.NewHandler(rateScheduleService)
	salaryTemplateHandler := salarytemplate.NewHandler(salaryTemplateService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		attendance.RegisterRoutes(api, attendanceHandler)
		company.RegisterRoutes(api, companyHandler)
		department.RegisterRoutes(api, departmentHandler)
		designation.RegisterRoutes(api, designationHandler)
		employee.RegisterRoutes(api, employeeHandler)
		payroll.RegisterRoutes(api, payrollHandler, rdb)
		rateschedule.RegisterRoutes(api, rateScheduleHandler)
		salarytemplate.RegisterRoutes(api, salaryTemplateHandler)
	}

	return nil
}
