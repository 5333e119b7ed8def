package workload

import (
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	workload := r.Group("/workload")
	workload.Use(middleware.AuthMiddleware())
	{
		workload.GET("/my", h.GetMySnapshot)
		workload.GET("/team", middleware.RoleMiddleware("ADMIN", "MANAGER"), h.GetTeam)
	}

	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("/:employeeId/workload", middleware.RoleMiddleware("ADMIN", "MANAGER"), h.GetByEmployee)
	}
}
