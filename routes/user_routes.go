package routes

import (
	"gorent/internal/handlers"
	"gorent/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupUserRoutes(r *gin.RouterGroup, userHandler *handlers.UserHandler, secret string) {
	users := r.Group("/users")
	users.Use(middleware.AuthRequired(secret))
	{
		users.GET("", middleware.AdminRequired(), userHandler.GetAllUsers)
		users.PUT("/:id/role", middleware.AdminRequired(), userHandler.SetRole)

		// Self-or-admin, enforced in the handler
		users.GET("/:id/personal-info", userHandler.GetPersonalInfo)
		users.PUT("/:id/personal-info", userHandler.UpdatePersonalInfo)
		users.PUT("/:id/change-password", userHandler.ChangePassword)
	}
}
