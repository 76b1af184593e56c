package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback is a client's review of a car. One per (user, car) pair, enforced
// by a repository existence check backed by a unique compound index.
type Feedback struct {
	ID        primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID  `json:"user_id" bson:"user_id" validate:"required"`
	CarID     primitive.ObjectID  `json:"car_id" bson:"car_id" validate:"required"`
	BookingID *primitive.ObjectID `json:"booking_id" bson:"booking_id"`
	Rating    float64             `json:"rating" bson:"rating" validate:"required,min=1,max=5"`
	Comment   string              `json:"comment" bson:"comment" validate:"max=1000"`
	CreatedAt time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time           `json:"updated_at" bson:"updated_at"`
}
