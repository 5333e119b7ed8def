package employee

import (
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("/options", h.GetOptions)
		employees.GET("", middleware.RoleMiddleware("ADMIN", "MANAGER"), h.GetAll)
		employees.POST("", middleware.RoleMiddleware("ADMIN", "MANAGER"), middleware.RateLimitByUser(1, 5), h.Create)
		employees.GET("/:employeeId", h.GetByID)
		employees.PUT("/:employeeId", middleware.RoleMiddleware("ADMIN", "MANAGER"), middleware.RateLimitByUser(1, 5), h.Update)
		employees.DELETE("/:employeeId", middleware.RoleMiddleware("ADMIN", "MANAGER"), middleware.RateLimitByUser(0.1, 1), h.Delete)
	}
}
