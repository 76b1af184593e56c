package services

import (
	"context"

	"gorent/internal/apperrors"
	"gorent/internal/models"
	"gorent/internal/repositories/interfaces"
	"gorent/internal/utils"
	"gorent/internal/validators"
	"gorent/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FeedbackService interface {
	CreateFeedback(ctx context.Context, request *CreateFeedbackRequest) (*models.Feedback, error)
	GetCarFeedbacks(ctx context.Context, carID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Feedback, int64, error)
	GetRecentFeedbacks(ctx context.Context) ([]*FeedbackWithCar, error)
	GetUserCarFeedback(ctx context.Context, userID, carID primitive.ObjectID) (*models.Feedback, error)
}

type feedbackService struct {
	feedbackRepo interfaces.FeedbackRepository
	carRepo      interfaces.CarRepository
	userRepo     interfaces.UserRepository
	logger       *logger.Logger
}

type CreateFeedbackRequest struct {
	UserID    string  `json:"user_id" validate:"required,object_id"`
	CarID     string  `json:"car_id" validate:"required,object_id"`
	BookingID string  `json:"booking_id" validate:"omitempty,object_id"`
	Rating    float64 `json:"rating" validate:"required,rating_value"`
	Comment   string  `json:"comment" validate:"max=1000"`
}

// FeedbackWithCar decorates a feedback with the reviewed car and the
// author's display name for landing-page style listings.
type FeedbackWithCar struct {
	*models.Feedback
	Car      *models.CarSummary `json:"car,omitempty"`
	UserName string             `json:"user_name,omitempty"`
}

func NewFeedbackService(
	feedbackRepo interfaces.FeedbackRepository,
	carRepo interfaces.CarRepository,
	userRepo interfaces.UserRepository,
	logger *logger.Logger,
) FeedbackService {
	return &feedbackService{
		feedbackRepo: feedbackRepo,
		carRepo:      carRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

func (s *feedbackService) CreateFeedback(ctx context.Context, request *CreateFeedbackRequest) (*models.Feedback, error) {
	if err := validators.ValidateStruct(request); err != nil {
		return nil, err
	}

	userID, err := primitive.ObjectIDFromHex(request.UserID)
	if err != nil {
		return nil, apperrors.Validation("Invalid user id")
	}
	carID, err := primitive.ObjectIDFromHex(request.CarID)
	if err != nil {
		return nil, apperrors.Validation("Invalid car id")
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}

	existing, err := s.feedbackRepo.GetByUserAndCar(ctx, userID, carID)
	if err != nil && !apperrors.Is(err, apperrors.KindNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("You have already reviewed this car")
	}

	feedback := &models.Feedback{
		UserID:  userID,
		CarID:   carID,
		Rating:  request.Rating,
		Comment: request.Comment,
	}
	if request.BookingID != "" {
		bookingID, err := primitive.ObjectIDFromHex(request.BookingID)
		if err != nil {
			return nil, apperrors.Validation("Invalid booking id")
		}
		feedback.BookingID = &bookingID
	}

	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, err
	}

	// Push the new average onto the car record so listings do not need
	// a join.
	average, count, err := s.feedbackRepo.RatingStats(ctx, carID)
	if err == nil {
		err = s.carRepo.SetStats(ctx, carID, int64(car.BookingCount), average, count)
	}
	if err != nil {
		s.logger.WithError(err).WithCarID(carID).Warn("Failed to refresh car rating after feedback")
	}

	s.logger.WithUserID(userID).WithCarID(carID).WithField("rating", request.Rating).Info("Feedback created")
	return feedback, nil
}

func (s *feedbackService) GetCarFeedbacks(ctx context.Context, carID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Feedback, int64, error) {
	if !carID.IsZero() {
		if _, err := s.carRepo.GetByID(ctx, carID); err != nil {
			return nil, 0, err
		}
	}
	return s.feedbackRepo.GetAll(ctx, carID, params)
}

func (s *feedbackService) GetUserCarFeedback(ctx context.Context, userID, carID primitive.ObjectID) (*models.Feedback, error) {
	return s.feedbackRepo.GetByUserAndCar(ctx, userID, carID)
}

func (s *feedbackService) GetRecentFeedbacks(ctx context.Context) ([]*FeedbackWithCar, error) {
	feedbacks, err := s.feedbackRepo.GetRecent(ctx, utils.RecentFeedbackN)
	if err != nil {
		return nil, err
	}

	result := make([]*FeedbackWithCar, 0, len(feedbacks))
	for _, feedback := range feedbacks {
		item := &FeedbackWithCar{Feedback: feedback}
		if car, err := s.carRepo.GetByID(ctx, feedback.CarID); err == nil {
			item.Car = car.Summary()
		}
		if user, err := s.userRepo.GetByID(ctx, feedback.UserID); err == nil {
			item.UserName = user.FullName()
		}
		result = append(result, item)
	}

	return result, nil
}
