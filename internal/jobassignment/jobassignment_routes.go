package jobassignment

import (
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	assignments := r.Group("/assignments")
	assignments.Use(middleware.AuthMiddleware())
	{
		assignments.GET("/my", h.ListMine)
		assignments.POST("", middleware.RoleMiddleware("ADMIN", "MANAGER"), h.Create)
		assignments.GET("", middleware.RoleMiddleware("ADMIN", "MANAGER"), h.GetAll)
		assignments.GET("/:id", h.GetByID)
		assignments.PATCH("/:id", middleware.RoleMiddleware("ADMIN", "MANAGER"), h.Update)
		assignments.DELETE("/:id", middleware.RoleMiddleware("ADMIN", "MANAGER"), h.Delete)
	}
}
