package app

import (
	"database/sql"

	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/appointment"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/customer"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/employee"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/jobassignment"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/messaging/kafka"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/middleware"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/shared/counter"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/timetracking"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/workload"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	counterRepo := counter.NewRepository(gormDB)
	customerRepo := customer.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	appointmentRepo := appointment.NewRepository(gormDB)
	timerRepo := timetracking.NewTimerRepository(gormDB)
	timeLogRepo := timetracking.NewTimeLogRepository(gormDB)
	assignmentRepo := jobassignment.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	customerService := customer.NewService(db, customerRepo)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb)
	appointmentService := appointment.NewService(db, appointmentRepo, customerRepo, employeeRepo, outboxRepo)
	availabilityService := appointment.NewAvailabilityService(appointmentRepo, employeeRepo)
	timetrackingService := timetracking.NewService(db, timerRepo, timeLogRepo, appointmentRepo, employeeRepo, outboxRepo)
	workloadService := workload.NewService(employeeRepo, appointmentRepo, timeLogRepo, rdb)
	assignmentService := jobassignment.NewService(db, assignmentRepo, employeeRepo)

	// --- Handlers ---
	customerHandler := customer.NewHandler(customerService)
	employeeHandler := employee.NewHandler(employeeService)
	appointmentHandler := appointment.NewHandler(appointmentService, availabilityService, rdb)
	timetrackingHandler := timetracking.NewHandler(timetrackingService)
	workloadHandler := workload.NewHandler(workloadService)
	assignmentHandler := jobassignment.NewHandler(assignmentService)

	// --- Global middleware ---
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))
	router.Use(middleware.RateLimitByIP(rate.Limit(20), 40))

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		customer.RegisterRoutes(api, customerHandler)
		employee.RegisterRoutes(api, employeeHandler)
		appointment.RegisterRoutes(api, appointmentHandler, rdb)
		timetracking.RegisterRoutes(api, timetrackingHandler)
		workload.RegisterRoutes(api, workloadHandler)
		jobassignment.RegisterRoutes(api, assignmentHandler)
	}

	return nil
}
