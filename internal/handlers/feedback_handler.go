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

type FeedbackHandler struct {
	feedbackService services.FeedbackService
}

func NewFeedbackHandler(feedbackService services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// CreateFeedback records the caller's review of a car.
func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	var request services.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, apperrors.Validation("Invalid request body"))
		return
	}

	// Reviews are always authored by the caller.
	userID, _ := middleware.CurrentUserID(c)
	role, _ := middleware.CurrentUserRole(c)
	if role == models.UserRoleClient || request.UserID == "" {
		request.UserID = userID.Hex()
	}

	feedback, err := h.feedbackService.CreateFeedback(c.Request.Context(), &request)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Feedback created successfully", feedback)
}

// GetAllFeedbacks lists feedbacks with an optional car filter, staff only.
func (h *FeedbackHandler) GetAllFeedbacks(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	carID := primitive.NilObjectID
	if v := c.Query("car_id"); v != "" {
		id, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			utils.RespondError(c, apperrors.Validation("Invalid car_id filter"))
			return
		}
		carID = id
	}

	feedbacks, total, err := h.feedbackService.GetCarFeedbacks(c.Request.Context(), carID, params)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Feedbacks retrieved successfully", feedbacks, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// GetRecentFeedbacks serves the landing-page strip, no auth.
func (h *FeedbackHandler) GetRecentFeedbacks(c *gin.Context) {
	feedbacks, err := h.feedbackService.GetRecentFeedbacks(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Recent feedbacks retrieved successfully", feedbacks)
}
