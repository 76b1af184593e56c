package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string
type PaymentStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"

	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// BlockingStatuses are the booking states that occupy a car's calendar and
// participate in the overlap check.
var BlockingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusActive,
}

type Booking struct {
	ID                primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	BookingNumber     string              `json:"booking_number" bson:"booking_number" validate:"required,len=4"`
	UserID            primitive.ObjectID  `json:"user_id" bson:"user_id" validate:"required"`
	CarID             primitive.ObjectID  `json:"car_id" bson:"car_id" validate:"required"`
	PickupLocationID  *primitive.ObjectID `json:"pickup_location_id" bson:"pickup_location_id"`
	DropoffLocationID *primitive.ObjectID `json:"dropoff_location_id" bson:"dropoff_location_id"`
	PickupTime        time.Time           `json:"pickup_time" bson:"pickup_time" validate:"required"`
	DropoffTime       time.Time           `json:"dropoff_time" bson:"dropoff_time" validate:"required"`
	Status            BookingStatus       `json:"status" bson:"status" default:"pending"`
	PaymentStatus     PaymentStatus       `json:"payment_status" bson:"payment_status" default:"unpaid"`
	RentalDays        int                 `json:"rental_days" bson:"rental_days"`
	TotalPrice        float64             `json:"total_price" bson:"total_price"`
	Currency          string              `json:"currency" bson:"currency" default:"USD"`
	CancelledAt       *time.Time          `json:"cancelled_at" bson:"cancelled_at"`
	CancelledBy       *primitive.ObjectID `json:"cancelled_by" bson:"cancelled_by"`
	CreatedAt         time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at" bson:"updated_at"`
}

func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusCompleted || b.Status == BookingStatusCancelled
}

// Overlaps reports whether the booking's window intersects [pickup, dropoff]
// under inclusive bounds: a booking ending exactly when another starts is a
// conflict.
func (b *Booking) Overlaps(pickup, dropoff time.Time) bool {
	return !b.PickupTime.After(dropoff) && !b.DropoffTime.Before(pickup)
}

// ValidStatusTransitions maps each booking status to the states support
// staff may move it to.
var ValidStatusTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusActive, BookingStatusCancelled},
	BookingStatusActive:    {BookingStatusCompleted},
	BookingStatusCompleted: {},
	BookingStatusCancelled: {},
}

func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	for _, s := range ValidStatusTransitions[b.Status] {
		if s == next {
			return true
		}
	}
	return false
}
