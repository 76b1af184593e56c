package mongodb

import (
	"context"
	"fmt"
	"time"

	"gorent/internal/apperrors"
	"gorent/internal/models"
	"gorent/internal/repositories/interfaces"
	"gorent/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type feedbackRepository struct {
	collection *mongo.Collection
}

func NewFeedbackRepository(db *mongo.Database) interfaces.FeedbackRepository {
	return &feedbackRepository{
		collection: db.Collection("feedbacks"),
	}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	now := time.Now()
	feedback.ID = primitive.NewObjectID()
	feedback.CreatedAt = now
	feedback.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, feedback)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.Conflict("Feedback for this car already exists")
		}
		return fmt.Errorf("failed to create feedback: %w", err)
	}

	return nil
}

func (r *feedbackRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Feedback, error) {
	var feedback models.Feedback
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&feedback)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("Feedback")
		}
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}

	return &feedback, nil
}

func (r *feedbackRepository) GetByUserAndCar(ctx context.Context, userID, carID primitive.ObjectID) (*models.Feedback, error) {
	var feedback models.Feedback
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID, "car_id": carID}).Decode(&feedback)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("Feedback")
		}
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}

	return &feedback, nil
}

func (r *feedbackRepository) GetAll(ctx context.Context, carID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Feedback, int64, error) {
	filter := bson.M{}
	if !carID.IsZero() {
		filter["car_id"] = carID
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count feedbacks: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query feedbacks: %w", err)
	}
	defer cursor.Close(ctx)

	var feedbacks []*models.Feedback
	if err := cursor.All(ctx, &feedbacks); err != nil {
		return nil, 0, fmt.Errorf("failed to decode feedbacks: %w", err)
	}

	return feedbacks, total, nil
}

func (r *feedbackRepository) GetRecent(ctx context.Context, limit int) ([]*models.Feedback, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent feedbacks: %w", err)
	}
	defer cursor.Close(ctx)

	var feedbacks []*models.Feedback
	if err := cursor.All(ctx, &feedbacks); err != nil {
		return nil, fmt.Errorf("failed to decode recent feedbacks: %w", err)
	}

	return feedbacks, nil
}

func (r *feedbackRepository) RatingStats(ctx context.Context, carID primitive.ObjectID) (float64, int64, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"car_id": carID})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query car feedbacks: %w", err)
	}
	defer cursor.Close(ctx)

	var feedbacks []*models.Feedback
	if err := cursor.All(ctx, &feedbacks); err != nil {
		return 0, 0, fmt.Errorf("failed to decode car feedbacks: %w", err)
	}

	if len(feedbacks) == 0 {
		return 0, 0, nil
	}

	var sum float64
	for _, f := range feedbacks {
		sum += f.Rating
	}

	return sum / float64(len(feedbacks)), int64(len(feedbacks)), nil
}
