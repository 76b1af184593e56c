package routes

import (
	"gorent/internal/handlers"

	"github.com/gin-gonic/gin"
)

func SetupHomeRoutes(r *gin.Engine, homeHandler *handlers.HomeHandler) {
	r.GET("/", homeHandler.Root)
	r.GET("/health", homeHandler.Health)
	r.GET("/home", homeHandler.Home)
}
