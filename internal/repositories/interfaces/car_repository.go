package interfaces

import (
	"context"

	"gorent/internal/models"
	"gorent/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CarFilter narrows the catalog listing.
type CarFilter struct {
	Type          models.CarType
	Transmission  models.Transmission
	OnlyAvailable bool
	MinPrice      float64
	MaxPrice      float64
}

type CarRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, car *models.Car) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Car, error)
	GetByCarNumber(ctx context.Context, carNumber string) (*models.Car, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Catalog
	GetAll(ctx context.Context, filter *CarFilter, params *utils.PaginationParams) ([]*models.Car, int64, error)
	GetPopular(ctx context.Context, limit int) ([]*models.Car, error)

	// Denormalized aggregates
	IncrementBookingCount(ctx context.Context, id primitive.ObjectID, delta int) error
	SetStats(ctx context.Context, id primitive.ObjectID, bookingCount int64, averageRating float64, reviewCount int64) error
}
