package interfaces

import (
	"context"

	"gorent/internal/models"
	"gorent/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Feedback, error)
	GetByUserAndCar(ctx context.Context, userID, carID primitive.ObjectID) (*models.Feedback, error)

	GetAll(ctx context.Context, carID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Feedback, int64, error)
	GetRecent(ctx context.Context, limit int) ([]*models.Feedback, error)

	// Aggregates feeding the car's denormalized rating fields
	RatingStats(ctx context.Context, carID primitive.ObjectID) (average float64, count int64, err error)
}
