package services

import (
	"context"
	"time"

	"gorent/internal/apperrors"
	"gorent/internal/models"
	"gorent/internal/repositories/interfaces"
	"gorent/internal/utils"
	"gorent/internal/validators"
	"gorent/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CarService interface {
	CreateCar(ctx context.Context, request *CreateCarRequest) (*models.Car, error)
	GetCar(ctx context.Context, id primitive.ObjectID) (*models.Car, error)
	GetAllCars(ctx context.Context, filter *interfaces.CarFilter, params *utils.PaginationParams) ([]*models.Car, int64, error)
	GetPopularCars(ctx context.Context) ([]*models.Car, error)
	UpdateCar(ctx context.Context, id primitive.ObjectID, request *UpdateCarRequest) (*models.Car, error)
	DeleteCar(ctx context.Context, id primitive.ObjectID) error
	RecalculateStats(ctx context.Context, id primitive.ObjectID) (*models.Car, error)
}

type carService struct {
	carRepo      interfaces.CarRepository
	bookingRepo  interfaces.BookingRepository
	feedbackRepo interfaces.FeedbackRepository
	logger       *logger.Logger
}

type CreateCarRequest struct {
	CarNumber    string  `json:"car_number" validate:"required,min=4,max=16"`
	Brand        string  `json:"brand" validate:"required"`
	Model        string  `json:"model" validate:"required"`
	Year         int     `json:"year" validate:"required,min=1990"`
	Type         string  `json:"type" validate:"required,oneof=sedan suv hatchback minivan luxury"`
	Transmission string  `json:"transmission" validate:"required,oneof=manual automatic"`
	FuelType     string  `json:"fuel_type" validate:"required,oneof=petrol diesel hybrid electric"`
	Seats        int     `json:"seats" validate:"required,min=2,max=9"`
	PricePerDay  float64 `json:"price_per_day" validate:"required,gt=0"`
	ImageURL     string  `json:"image_url" validate:"omitempty,url"`
	LocationID   string  `json:"location_id" validate:"omitempty,object_id"`
}

// UpdateCarRequest uses pointers so absent fields are left untouched.
type UpdateCarRequest struct {
	Brand        *string  `json:"brand"`
	Model        *string  `json:"model"`
	Year         *int     `json:"year" validate:"omitempty,min=1990"`
	Type         *string  `json:"type" validate:"omitempty,oneof=sedan suv hatchback minivan luxury"`
	Transmission *string  `json:"transmission" validate:"omitempty,oneof=manual automatic"`
	FuelType     *string  `json:"fuel_type" validate:"omitempty,oneof=petrol diesel hybrid electric"`
	Seats        *int     `json:"seats" validate:"omitempty,min=2,max=9"`
	PricePerDay  *float64 `json:"price_per_day" validate:"omitempty,gt=0"`
	ImageURL     *string  `json:"image_url" validate:"omitempty,url"`
	Available    *bool    `json:"available"`
}

func NewCarService(
	carRepo interfaces.CarRepository,
	bookingRepo interfaces.BookingRepository,
	feedbackRepo interfaces.FeedbackRepository,
	logger *logger.Logger,
) CarService {
	return &carService{
		carRepo:      carRepo,
		bookingRepo:  bookingRepo,
		feedbackRepo: feedbackRepo,
		logger:       logger,
	}
}

func (s *carService) CreateCar(ctx context.Context, request *CreateCarRequest) (*models.Car, error) {
	if err := validators.ValidateStruct(request); err != nil {
		return nil, err
	}

	car := &models.Car{
		CarNumber:    request.CarNumber,
		Brand:        request.Brand,
		Model:        request.Model,
		Year:         request.Year,
		Type:         models.CarType(request.Type),
		Transmission: models.Transmission(request.Transmission),
		FuelType:     models.FuelType(request.FuelType),
		Seats:        request.Seats,
		PricePerDay:  request.PricePerDay,
		ImageURL:     request.ImageURL,
		Available:    true,
	}

	if request.LocationID != "" {
		locationID, err := primitive.ObjectIDFromHex(request.LocationID)
		if err != nil {
			return nil, apperrors.Validation("Invalid location id")
		}
		car.LocationID = &locationID
	}

	if err := s.carRepo.Create(ctx, car); err != nil {
		return nil, err
	}

	s.logger.WithCarID(car.ID).WithField("car_number", car.CarNumber).Info("Car created")
	return car, nil
}

func (s *carService) GetCar(ctx context.Context, id primitive.ObjectID) (*models.Car, error) {
	return s.carRepo.GetByID(ctx, id)
}

func (s *carService) GetAllCars(ctx context.Context, filter *interfaces.CarFilter, params *utils.PaginationParams) ([]*models.Car, int64, error) {
	return s.carRepo.GetAll(ctx, filter, params)
}

func (s *carService) GetPopularCars(ctx context.Context) ([]*models.Car, error) {
	return s.carRepo.GetPopular(ctx, utils.PopularCarsLimit)
}

func (s *carService) UpdateCar(ctx context.Context, id primitive.ObjectID, request *UpdateCarRequest) (*models.Car, error) {
	if err := validators.ValidateStruct(request); err != nil {
		return nil, err
	}

	if _, err := s.carRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if request.Brand != nil {
		updates["brand"] = *request.Brand
	}
	if request.Model != nil {
		updates["model"] = *request.Model
	}
	if request.Year != nil {
		updates["year"] = *request.Year
	}
	if request.Type != nil {
		updates["type"] = models.CarType(*request.Type)
	}
	if request.Transmission != nil {
		updates["transmission"] = models.Transmission(*request.Transmission)
	}
	if request.FuelType != nil {
		updates["fuel_type"] = models.FuelType(*request.FuelType)
	}
	if request.Seats != nil {
		updates["seats"] = *request.Seats
	}
	if request.PricePerDay != nil {
		updates["price_per_day"] = *request.PricePerDay
	}
	if request.ImageURL != nil {
		updates["image_url"] = *request.ImageURL
	}
	if request.Available != nil {
		updates["available"] = *request.Available
	}

	if len(updates) == 0 {
		return nil, apperrors.Validation("No fields to update")
	}

	if err := s.carRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}

	return s.carRepo.GetByID(ctx, id)
}

func (s *carService) DeleteCar(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.carRepo.GetByID(ctx, id); err != nil {
		return err
	}

	// A car with live bookings cannot be removed; cancel or complete
	// them first.
	blocking, err := s.bookingRepo.GetByCar(ctx, id, models.BlockingStatuses, time.Time{}, time.Time{})
	if err != nil {
		return err
	}
	if len(blocking) > 0 {
		return apperrors.Conflict("Car has active bookings and cannot be deleted")
	}

	if err := s.carRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.WithCarID(id).Info("Car deleted")
	return nil
}

// RecalculateStats rebuilds the car's denormalized counters from the
// bookings and feedbacks collections. Safe to run repeatedly.
func (s *carService) RecalculateStats(ctx context.Context, id primitive.ObjectID) (*models.Car, error) {
	if _, err := s.carRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	bookingCount, err := s.bookingRepo.CountByCar(ctx, id)
	if err != nil {
		return nil, err
	}

	average, reviewCount, err := s.feedbackRepo.RatingStats(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.carRepo.SetStats(ctx, id, bookingCount, average, reviewCount); err != nil {
		return nil, err
	}

	s.logger.WithCarID(id).WithFields(map[string]interface{}{
		"booking_count":  bookingCount,
		"average_rating": average,
		"review_count":   reviewCount,
	}).Info("Car stats recalculated")

	return s.carRepo.GetByID(ctx, id)
}
