package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CarType string
type Transmission string
type FuelType string

const (
	CarTypeSedan     CarType = "sedan"
	CarTypeSUV       CarType = "suv"
	CarTypeHatchback CarType = "hatchback"
	CarTypeMinivan   CarType = "minivan"
	CarTypeLuxury    CarType = "luxury"

	TransmissionManual    Transmission = "manual"
	TransmissionAutomatic Transmission = "automatic"

	FuelTypePetrol   FuelType = "petrol"
	FuelTypeDiesel   FuelType = "diesel"
	FuelTypeHybrid   FuelType = "hybrid"
	FuelTypeElectric FuelType = "electric"
)

type Car struct {
	ID           primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	CarNumber    string              `json:"car_number" bson:"car_number" validate:"required"` // registration plate, business key
	Brand        string              `json:"brand" bson:"brand" validate:"required"`
	Model        string              `json:"model" bson:"model" validate:"required"`
	Year         int                 `json:"year" bson:"year" validate:"required,min=1990"`
	Type         CarType             `json:"type" bson:"type" validate:"required"`
	Transmission Transmission        `json:"transmission" bson:"transmission" validate:"required"`
	FuelType     FuelType            `json:"fuel_type" bson:"fuel_type" validate:"required"`
	Seats        int                 `json:"seats" bson:"seats" validate:"required,min=2,max=9"`
	PricePerDay  float64             `json:"price_per_day" bson:"price_per_day" validate:"required,gt=0"`
	ImageURL     string              `json:"image_url" bson:"image_url"`
	LocationID   *primitive.ObjectID `json:"location_id" bson:"location_id"`
	Available    bool                `json:"available" bson:"available" default:"true"`

	// Denormalized aggregates, maintained as write side effects and
	// repairable through the recalculate-stats operation.
	BookingCount  int     `json:"booking_count" bson:"booking_count" default:"0"`
	AverageRating float64 `json:"average_rating" bson:"average_rating" default:"0"`
	ReviewCount   int     `json:"review_count" bson:"review_count" default:"0"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// CarSummary is the car shape embedded in booking responses.
type CarSummary struct {
	ID          primitive.ObjectID `json:"id"`
	CarNumber   string             `json:"car_number"`
	Brand       string             `json:"brand"`
	Model       string             `json:"model"`
	Year        int                `json:"year"`
	PricePerDay float64            `json:"price_per_day"`
	ImageURL    string             `json:"image_url"`
}

func (c *Car) Summary() *CarSummary {
	return &CarSummary{
		ID:          c.ID,
		CarNumber:   c.CarNumber,
		Brand:       c.Brand,
		Model:       c.Model,
		Year:        c.Year,
		PricePerDay: c.PricePerDay,
		ImageURL:    c.ImageURL,
	}
}
