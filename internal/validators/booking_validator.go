package validators

import (
	"time"

	"gorent/internal/apperrors"
	"gorent/internal/models"
	"gorent/internal/utils"
)

// ValidateBookingWindow checks the parsed pickup/drop-off pair. Equal
// timestamps are rejected; a zero-length rental is invalid.
func ValidateBookingWindow(pickup, dropoff time.Time) error {
	if !pickup.Before(dropoff) {
		return apperrors.Validation(utils.ErrPickupNotBeforeDropoff,
			apperrors.FieldError{Field: "pickup_time", Message: "must be strictly before drop_off time"})
	}
	if utils.RentalDays(pickup, dropoff) > utils.MaxRentalDays {
		return apperrors.Validation("Rental period is too long",
			apperrors.FieldError{Field: "drop_off_time", Message: "rental may not exceed 90 days"})
	}
	return nil
}

func ValidateStatusTransition(current, next models.BookingStatus) error {
	switch next {
	case models.BookingStatusPending, models.BookingStatusConfirmed,
		models.BookingStatusActive, models.BookingStatusCompleted,
		models.BookingStatusCancelled:
	default:
		return apperrors.Validation("Unknown booking status",
			apperrors.FieldError{Field: "status", Message: "unrecognized status value"})
	}

	b := models.Booking{Status: current}
	if !b.CanTransitionTo(next) {
		return apperrors.Conflict("Booking cannot move from " + string(current) + " to " + string(next))
	}
	return nil
}
