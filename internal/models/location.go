package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Location is a pickup/drop-off branch office.
type Location struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" validate:"required"`
	Address     string             `json:"address" bson:"address" validate:"required"`
	City        string             `json:"city" bson:"city" validate:"required"`
	Country     string             `json:"country" bson:"country"`
	PostalCode  string             `json:"postal_code" bson:"postal_code"`
	Coordinates []float64          `json:"coordinates" bson:"coordinates"` // [lng, lat]
	IsActive    bool               `json:"is_active" bson:"is_active" default:"true"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}
