package interfaces

import (
	"context"
	"time"

	"gorent/internal/models"
	"gorent/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	GetByBookingNumber(ctx context.Context, bookingNumber string) (*models.Booking, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// Availability
	FindOverlapping(ctx context.Context, carID primitive.ObjectID, pickup, dropoff time.Time) ([]*models.Booking, error)
	// CreateIfAvailable re-runs the overlap check and inserts inside one
	// transaction so two concurrent requests cannot both book the window.
	CreateIfAvailable(ctx context.Context, booking *models.Booking) error
	BookingNumberExists(ctx context.Context, bookingNumber string) (bool, error)

	// Status operations
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) error
	UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) error
	Cancel(ctx context.Context, id primitive.ObjectID, cancelledBy primitive.ObjectID, refund bool) error

	// Search and filtering
	GetAll(ctx context.Context, status models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetByCar(ctx context.Context, carID primitive.ObjectID, statuses []models.BookingStatus, from, to time.Time) ([]*models.Booking, error)
	GetByDateRange(ctx context.Context, from, to time.Time) ([]*models.Booking, error)

	// Aggregates for the car stats repair operation
	CountByCar(ctx context.Context, carID primitive.ObjectID) (int64, error)
}
