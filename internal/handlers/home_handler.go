package handlers

import (
	"net/http"

	"gorent/internal/services"
	"gorent/internal/utils"

	"github.com/gin-gonic/gin"
)

type HomeHandler struct {
	carService      services.CarService
	feedbackService services.FeedbackService
	version         string
}

func NewHomeHandler(carService services.CarService, feedbackService services.FeedbackService, version string) *HomeHandler {
	return &HomeHandler{
		carService:      carService,
		feedbackService: feedbackService,
		version:         version,
	}
}

func (h *HomeHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": utils.AppName,
		"version": h.version,
		"status":  "ok",
	})
}

func (h *HomeHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": utils.AppName,
		"version": h.version,
	})
}

// Home aggregates the landing-page payload. Failures of either section
// degrade to an empty list rather than failing the whole page.
func (h *HomeHandler) Home(c *gin.Context) {
	ctx := c.Request.Context()

	popular, err := h.carService.GetPopularCars(ctx)
	if err != nil {
		popular = nil
	}

	recent, err := h.feedbackService.GetRecentFeedbacks(ctx)
	if err != nil {
		recent = nil
	}

	utils.SuccessResponse(c, "Home content retrieved successfully", gin.H{
		"popular_cars":     popular,
		"recent_feedbacks": recent,
	})
}
