package routes

import (
	"gorent/internal/handlers"
	"gorent/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(r *gin.RouterGroup, bookingHandler *handlers.BookingHandler, secret string) {
	bookings := r.Group("/bookings")
	bookings.Use(middleware.AuthRequired(secret))
	{
		bookings.POST("", bookingHandler.CreateBooking)
		// The :id here is a user id; the handler enforces self-or-staff.
		bookings.GET("/:id", bookingHandler.GetUserBookings)
		bookings.PUT("/:id/status", middleware.StaffRequired(), bookingHandler.UpdateStatus)
		bookings.DELETE("/:id", bookingHandler.CancelBooking)

		bookings.GET("", middleware.AdminRequired(), bookingHandler.GetAllBookings)
	}
}
