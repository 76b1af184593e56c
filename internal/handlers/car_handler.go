package handlers

import (
	"strconv"

	"gorent/internal/apperrors"
	"gorent/internal/middleware"
	"gorent/internal/models"
	"gorent/internal/repositories/interfaces"
	"gorent/internal/services"
	"gorent/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CarHandler struct {
	carService      services.CarService
	bookingService  services.BookingService
	feedbackService services.FeedbackService
}

func NewCarHandler(
	carService services.CarService,
	bookingService services.BookingService,
	feedbackService services.FeedbackService,
) *CarHandler {
	return &CarHandler{
		carService:      carService,
		bookingService:  bookingService,
		feedbackService: feedbackService,
	}
}

// GetAllCars serves the public catalog with filters and pagination.
func (h *CarHandler) GetAllCars(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	filter := &interfaces.CarFilter{
		Type:          models.CarType(c.Query("type")),
		Transmission:  models.Transmission(c.Query("transmission")),
		OnlyAvailable: c.Query("available") == "true",
	}
	if v := c.Query("min_price"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = price
		}
	}
	if v := c.Query("max_price"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = price
		}
	}

	cars, total, err := h.carService.GetAllCars(c.Request.Context(), filter, params)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Cars retrieved successfully", cars, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *CarHandler) GetPopularCars(c *gin.Context) {
	cars, err := h.carService.GetPopularCars(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Popular cars retrieved successfully", cars)
}

func (h *CarHandler) GetCar(c *gin.Context) {
	carID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.RespondError(c, apperrors.Validation("Invalid car ID"))
		return
	}

	car, err := h.carService.GetCar(c.Request.Context(), carID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Car retrieved successfully", car)
}

// GetBookedDays returns the occupied date ranges for a car's calendar.
func (h *CarHandler) GetBookedDays(c *gin.Context) {
	carID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.RespondError(c, apperrors.Validation("Invalid car ID"))
		return
	}

	ranges, err := h.bookingService.GetBookedDays(c.Request.Context(), carID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Booked days retrieved successfully", ranges)
}

// GetClientReview returns the caller's own feedback for the car.
func (h *CarHandler) GetClientReview(c *gin.Context) {
	carID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.RespondError(c, apperrors.Validation("Invalid car ID"))
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, apperrors.Unauthorized("Authentication required"))
		return
	}

	feedback, err := h.feedbackService.GetUserCarFeedback(c.Request.Context(), userID, carID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Review retrieved successfully", feedback)
}

func (h *CarHandler) CreateCar(c *gin.Context) {
	var request services.CreateCarRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, apperrors.Validation("Invalid request body"))
		return
	}

	car, err := h.carService.CreateCar(c.Request.Context(), &request)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Car created successfully", car)
}

func (h *CarHandler) UpdateCar(c *gin.Context) {
	carID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.RespondError(c, apperrors.Validation("Invalid car ID"))
		return
	}

	var request services.UpdateCarRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, apperrors.Validation("Invalid request body"))
		return
	}

	car, err := h.carService.UpdateCar(c.Request.Context(), carID, &request)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Car updated successfully", car)
}

func (h *CarHandler) DeleteCar(c *gin.Context) {
	carID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.RespondError(c, apperrors.Validation("Invalid car ID"))
		return
	}

	if err := h.carService.DeleteCar(c.Request.Context(), carID); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Car deleted successfully", nil)
}

// RecalculateStats rebuilds the car's denormalized counters.
func (h *CarHandler) RecalculateStats(c *gin.Context) {
	carID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.RespondError(c, apperrors.Validation("Invalid car ID"))
		return
	}

	car, err := h.carService.RecalculateStats(c.Request.Context(), carID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Car stats recalculated", car)
}
