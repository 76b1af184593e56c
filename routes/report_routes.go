package routes

import (
	"gorent/internal/handlers"
	"gorent/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupReportRoutes(r *gin.RouterGroup, reportHandler *handlers.ReportHandler, secret string) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthRequired(secret), middleware.StaffRequired())
	{
		reports.GET("/bookings", reportHandler.BookingsReport)
		reports.GET("/revenue", reportHandler.RevenueReport)
		reports.GET("/cars", reportHandler.CarsReport)
		reports.GET("/users", reportHandler.UsersReport)
	}
}
