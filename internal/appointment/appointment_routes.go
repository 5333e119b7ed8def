package appointment

import (
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, redisClient *redis.Client) {
	appointments := r.Group("/appointments")
	appointments.Use(middleware.AuthMiddleware())
	{
		appointments.GET("/availability", h.GetAvailability)
		appointments.GET("/my", h.ListMine)
		appointments.GET("/assigned", h.ListAssigned)
		if redisClient != nil {
			appointments.POST("", middleware.Idempotency(redisClient), h.Create)
		} else {
			appointments.POST("", h.Create)
		}
		appointments.GET("", middleware.RoleMiddleware("ADMIN", "MANAGER"), h.GetAll)
		appointments.GET("/:id", h.GetByID)
		appointments.PATCH("/:id", h.Update)
		appointments.DELETE("/:id", middleware.RoleMiddleware("ADMIN", "MANAGER"), h.Delete)
	}

	customers := r.Group("/customers")
	customers.Use(middleware.AuthMiddleware())
	{
		customers.GET("/:customerId/appointments", middleware.RoleMiddleware("ADMIN", "MANAGER"), h.ListByCustomer)
	}
}
