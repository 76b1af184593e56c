package routes

import (
	"gorent/internal/handlers"
	"gorent/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupCarRoutes(r *gin.RouterGroup, carHandler *handlers.CarHandler, secret string) {
	cars := r.Group("/cars")
	{
		// Public catalog
		cars.GET("", carHandler.GetAllCars)
		cars.GET("/popular", carHandler.GetPopularCars)
		cars.GET("/:id", carHandler.GetCar)
		cars.GET("/:id/booked-days", carHandler.GetBookedDays)

		// Authenticated
		cars.GET("/:id/client-review", middleware.AuthRequired(secret), carHandler.GetClientReview)

		// Admin management
		admin := cars.Group("")
		admin.Use(middleware.AuthRequired(secret), middleware.AdminRequired())
		{
			admin.POST("", carHandler.CreateCar)
			admin.PUT("/:id", carHandler.UpdateCar)
			admin.DELETE("/:id", carHandler.DeleteCar)
			admin.POST("/:id/recalculate-stats", carHandler.RecalculateStats)
		}
	}
}
