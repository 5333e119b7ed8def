package customer

import (
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	customers := r.Group("/customers")
	customers.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware("ADMIN", "MANAGER"))
	{
		customers.POST("", h.Create)
		customers.GET("", h.GetAll)
		customers.GET("/:customerId", h.GetByID)
		customers.PUT("/:customerId", h.Update)
		customers.DELETE("/:customerId", h.Delete)
	}
}
