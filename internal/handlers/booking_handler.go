package handlers

import (
	"gorent/internal/apperrors"
	"gorent/internal/middleware"
	"gorent/internal/models"
	"gorent/internal/services"
	"gorent/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingHandler struct {
	bookingService services.BookingService
}

func NewBookingHandler(bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// CreateBooking books a car for the authenticated client.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var request services.CreateBookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, apperrors.Validation("Invalid request body"))
		return
	}

	// Clients always book for themselves; staff may book on behalf of a
	// client by passing client_id explicitly.
	userID, _ := middleware.CurrentUserID(c)
	role, _ := middleware.CurrentUserRole(c)
	if role == models.UserRoleClient || request.ClientID == "" {
		request.ClientID = userID.Hex()
	}

	response, err := h.bookingService.CreateBooking(c.Request.Context(), &request)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Booking created successfully", response)
}

// GetAllBookings lists every booking, admin only.
func (h *BookingHandler) GetAllBookings(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	status := models.BookingStatus(c.Query("status"))

	bookings, total, err := h.bookingService.GetAllBookings(c.Request.Context(), status, params)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Bookings retrieved successfully", bookings, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// GetUserBookings lists the bookings of the user named in the path. Clients
// may only read their own; staff may read anyone's.
func (h *BookingHandler) GetUserBookings(c *gin.Context) {
	targetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.RespondError(c, apperrors.Validation("Invalid user ID"))
		return
	}

	callerID, _ := middleware.CurrentUserID(c)
	role, _ := middleware.CurrentUserRole(c)
	if callerID != targetID && role != models.UserRoleAdmin && role != models.UserRoleSupportAgent {
		utils.RespondError(c, apperrors.Forbidden("You can only view your own bookings"))
		return
	}

	params := utils.GetPaginationParams(c)
	bookings, total, err := h.bookingService.GetUserBookings(c.Request.Context(), targetID, params)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Bookings retrieved successfully", bookings, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// UpdateStatus moves a booking along the status lifecycle, staff only.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.RespondError(c, apperrors.Validation("Invalid booking ID"))
		return
	}

	var request struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&request); err != nil || request.Status == "" {
		utils.RespondError(c, apperrors.Validation("status is required"))
		return
	}

	booking, err := h.bookingService.UpdateStatus(c.Request.Context(), bookingID, models.BookingStatus(request.Status))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking status updated", booking)
}

// CancelBooking cancels a booking for its owner or an admin.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.RespondError(c, apperrors.Validation("Invalid booking ID"))
		return
	}

	callerID, _ := middleware.CurrentUserID(c)
	role, _ := middleware.CurrentUserRole(c)

	booking, err := h.bookingService.CancelBooking(c.Request.Context(), bookingID, callerID, role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking cancelled", booking)
}
