package routes

import (
	"gorent/internal/handlers"
	"gorent/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupFeedbackRoutes(r *gin.RouterGroup, feedbackHandler *handlers.FeedbackHandler, secret string) {
	feedbacks := r.Group("/feedbacks")
	{
		feedbacks.GET("/recent", feedbackHandler.GetRecentFeedbacks)

		feedbacks.POST("", middleware.AuthRequired(secret), feedbackHandler.CreateFeedback)
		feedbacks.GET("", middleware.AuthRequired(secret), middleware.StaffRequired(), feedbackHandler.GetAllFeedbacks)
	}
}
