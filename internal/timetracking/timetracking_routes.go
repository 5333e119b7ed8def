package timetracking

import (
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	timers := r.Group("/timers")
	timers.Use(middleware.AuthMiddleware())
	{
		timers.POST("", middleware.RateLimitByUser(2, 5), h.StartTimer)
		timers.GET("/active", h.GetActiveTimer)
		timers.POST("/:id/stop", middleware.RateLimitByUser(2, 5), h.StopTimer)
	}

	logs := r.Group("/time-logs")
	logs.Use(middleware.AuthMiddleware())
	{
		logs.POST("", h.CreateTimeLog)
		logs.GET("/my", h.ListMyTimeLogs)
		logs.PATCH("/:id", h.UpdateTimeLog)
		logs.DELETE("/:id", h.DeleteTimeLog)
	}

	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("/:employeeId/time-logs", middleware.RoleMiddleware("ADMIN", "MANAGER"), h.ListByEmployee)
	}

	appointments := r.Group("/appointments")
	appointments.Use(middleware.AuthMiddleware())
	{
		appointments.GET("/:id/time-logs", middleware.RoleMiddleware("ADMIN", "MANAGER"), h.ListByAppointment)
	}
}
