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

type BookingService interface {
	CreateBooking(ctx context.Context, request *CreateBookingRequest) (*BookingResponse, error)
	GetBooking(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	GetAllBookings(ctx context.Context, status models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetUserBookings(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, next models.BookingStatus) (*models.Booking, error)
	CancelBooking(ctx context.Context, id primitive.ObjectID, actorID primitive.ObjectID, actorRole models.UserRole) (*models.Booking, error)
	GetBookedDays(ctx context.Context, carID primitive.ObjectID) ([]BookedRange, error)
}

type bookingService struct {
	bookingRepo interfaces.BookingRepository
	carRepo     interfaces.CarRepository
	userRepo    interfaces.UserRepository
	logger      *logger.Logger
}

type CreateBookingRequest struct {
	CarID             string `json:"car_id" validate:"required,object_id"`
	ClientID          string `json:"client_id" validate:"required,object_id"`
	PickupTime        string `json:"pickup_time" validate:"required"`
	DropoffTime       string `json:"drop_off_time" validate:"required"`
	PickupLocationID  string `json:"pickup_location_id" validate:"omitempty,object_id"`
	DropoffLocationID string `json:"drop_off_location_id" validate:"omitempty,object_id"`
}

type BookingResponse struct {
	ID            primitive.ObjectID   `json:"id"`
	BookingNumber string               `json:"booking_number"`
	Status        models.BookingStatus `json:"status"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	PickupTime    time.Time            `json:"pickup_time"`
	DropoffTime   time.Time            `json:"drop_off_time"`
	RentalDays    int                  `json:"rental_days"`
	TotalPrice    float64              `json:"total_price"`
	Currency      string               `json:"currency"`
	Car           *models.CarSummary   `json:"car"`
}

// BookedRange is one occupied window in a car's calendar.
type BookedRange struct {
	PickupTime  time.Time `json:"pickup_time"`
	DropoffTime time.Time `json:"drop_off_time"`
}

func NewBookingService(
	bookingRepo interfaces.BookingRepository,
	carRepo interfaces.CarRepository,
	userRepo interfaces.UserRepository,
	logger *logger.Logger,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		carRepo:     carRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, request *CreateBookingRequest) (*BookingResponse, error) {
	if err := validators.ValidateStruct(request); err != nil {
		return nil, err
	}

	clientID, _ := primitive.ObjectIDFromHex(request.ClientID)
	carID, _ := primitive.ObjectIDFromHex(request.CarID)

	client, err := s.userRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	if !car.Available {
		return nil, apperrors.Validation(utils.ErrCarUnavailable)
	}

	pickup, err := utils.ParseDateTime(request.PickupTime)
	if err != nil {
		return nil, apperrors.Validation("Invalid pickup time",
			apperrors.FieldError{Field: "pickup_time", Message: "unrecognized datetime format"})
	}
	dropoff, err := utils.ParseDateTime(request.DropoffTime)
	if err != nil {
		return nil, apperrors.Validation("Invalid drop-off time",
			apperrors.FieldError{Field: "drop_off_time", Message: "unrecognized datetime format"})
	}

	if err := validators.ValidateBookingWindow(pickup, dropoff); err != nil {
		return nil, err
	}

	// Advisory pre-check; the authoritative check runs atomically with the
	// insert inside CreateIfAvailable.
	overlapping, err := s.bookingRepo.FindOverlapping(ctx, carID, pickup, dropoff)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if len(overlapping) > 0 {
		return nil, apperrors.Validation(utils.ErrCarAlreadyBooked)
	}

	rentalDays := utils.RentalDays(pickup, dropoff)
	totalPrice := car.PricePerDay * float64(rentalDays)

	bookingNumber, err := s.generateBookingNumber(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	booking := &models.Booking{
		BookingNumber: bookingNumber,
		UserID:        client.ID,
		CarID:         car.ID,
		PickupTime:    pickup,
		DropoffTime:   dropoff,
		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusUnpaid,
		RentalDays:    rentalDays,
		TotalPrice:    totalPrice,
		Currency:      utils.DefaultCurrency,
	}
	if request.PickupLocationID != "" {
		id, _ := primitive.ObjectIDFromHex(request.PickupLocationID)
		booking.PickupLocationID = &id
	}
	if request.DropoffLocationID != "" {
		id, _ := primitive.ObjectIDFromHex(request.DropoffLocationID)
		booking.DropoffLocationID = &id
	}

	if err := s.bookingRepo.CreateIfAvailable(ctx, booking); err != nil {
		return nil, err
	}

	// Denormalized counter; separate write, repaired on demand through the
	// car stats recomputation.
	if err := s.carRepo.IncrementBookingCount(ctx, car.ID, 1); err != nil {
		s.logger.WithError(err).WithCarID(car.ID).Warn("Failed to increment car booking count")
	}

	s.logger.LogBookingEvent(booking.ID, "created", map[string]interface{}{
		"car_id":      car.ID.Hex(),
		"user_id":     client.ID.Hex(),
		"rental_days": rentalDays,
		"total_price": totalPrice,
	})

	return &BookingResponse{
		ID:            booking.ID,
		BookingNumber: booking.BookingNumber,
		Status:        booking.Status,
		PaymentStatus: booking.PaymentStatus,
		PickupTime:    booking.PickupTime,
		DropoffTime:   booking.DropoffTime,
		RentalDays:    booking.RentalDays,
		TotalPrice:    booking.TotalPrice,
		Currency:      booking.Currency,
		Car:           car.Summary(),
	}, nil
}

// generateBookingNumber draws random four digit numbers until one is free.
// The original scheme did not check for collisions; the bounded retry loop
// closes that gap without changing the number format.
func (s *bookingService) generateBookingNumber(ctx context.Context) (string, error) {
	var lastErr error
	for i := 0; i < utils.BookingNumberRetries; i++ {
		number := utils.GenerateBookingNumber()
		exists, err := s.bookingRepo.BookingNumberExists(ctx, number)
		if err != nil {
			lastErr = err
			continue
		}
		if !exists {
			return number, nil
		}
	}
	if lastErr != nil {
		return "", lastErr
	}
	return "", apperrors.Conflict("Could not allocate a booking number")
}

func (s *bookingService) GetBooking(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *bookingService) GetAllBookings(ctx context.Context, status models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return s.bookingRepo.GetAll(ctx, status, params)
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return s.bookingRepo.GetByUser(ctx, userID, params)
}

func (s *bookingService) UpdateStatus(ctx context.Context, id primitive.ObjectID, next models.BookingStatus) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validators.ValidateStatusTransition(booking.Status, next); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	booking.Status = next

	// A completed rental is settled if the client has not paid up front.
	if next == models.BookingStatusCompleted && booking.PaymentStatus == models.PaymentStatusUnpaid {
		if err := s.bookingRepo.UpdatePaymentStatus(ctx, id, models.PaymentStatusPaid); err != nil {
			return nil, err
		}
		booking.PaymentStatus = models.PaymentStatusPaid
	}

	s.logger.LogBookingEvent(id, "status_changed", map[string]interface{}{"status": string(next)})

	return booking, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, id primitive.ObjectID, actorID primitive.ObjectID, actorRole models.UserRole) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	isAdmin := actorRole == models.UserRoleAdmin
	if !isAdmin && booking.UserID != actorID {
		return nil, apperrors.Forbidden("Only the booking owner may cancel it")
	}

	// Cancelling twice is a no-op; the payment status must not move again.
	if booking.Status == models.BookingStatusCancelled {
		return booking, nil
	}
	if booking.Status == models.BookingStatusCompleted {
		return nil, apperrors.Conflict("Completed bookings cannot be cancelled")
	}

	if !isAdmin && time.Until(booking.PickupTime) < utils.CancellationCutoff {
		return nil, apperrors.Validation(utils.ErrCancellationLate)
	}

	refund := booking.PaymentStatus == models.PaymentStatusPaid
	if err := s.bookingRepo.Cancel(ctx, id, actorID, refund); err != nil {
		return nil, err
	}

	if err := s.carRepo.IncrementBookingCount(ctx, booking.CarID, -1); err != nil {
		s.logger.WithError(err).WithCarID(booking.CarID).Warn("Failed to decrement car booking count")
	}

	s.logger.LogBookingEvent(id, "cancelled", map[string]interface{}{
		"cancelled_by": actorID.Hex(),
		"refunded":     refund,
	})

	return s.bookingRepo.GetByID(ctx, id)
}

func (s *bookingService) GetBookedDays(ctx context.Context, carID primitive.ObjectID) ([]BookedRange, error) {
	if _, err := s.carRepo.GetByID(ctx, carID); err != nil {
		return nil, err
	}

	from := utils.StartOfDay(time.Now())
	to := from.AddDate(0, 0, utils.DefaultBookedDaysAhead)

	bookings, err := s.bookingRepo.GetByCar(ctx, carID, models.BlockingStatuses, from, to)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	ranges := make([]BookedRange, 0, len(bookings))
	for _, b := range bookings {
		ranges = append(ranges, BookedRange{
			PickupTime:  b.PickupTime,
			DropoffTime: b.DropoffTime,
		})
	}

	return ranges, nil
}
