package utils

import "time"

// Application Constants
const (
	AppName    = "GoRent"
	AppVersion = "1.0.0"

	// Default values
	DefaultCurrency = "USD"
	DefaultTimeZone = "UTC"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	PasswordMinLength = 8
	PasswordMaxLength = 128

	// Booking Constants
	BookingNumberLength    = 4
	BookingNumberMin       = 1000
	BookingNumberMax       = 9999
	BookingNumberRetries   = 5
	MillisecondsPerDay     = 24 * 60 * 60 * 1000
	CancellationCutoff     = 24 * time.Hour
	MaxRentalDays          = 90
	DefaultBookedDaysAhead = 180

	// Feedback
	MinRating        = 1.0
	MaxRating        = 5.0
	MaxCommentLength = 1000
	RecentFeedbackN  = 6

	// Cache
	PopularCarsCacheTTL = 10 * time.Minute
	CarCacheTTL         = 5 * time.Minute
	PopularCarsLimit    = 8

	// Response statuses
	StatusSuccess = "success"
	StatusError   = "error"
)

// Common error messages
const (
	ErrValidationFailed       = "Validation failed"
	ErrInternalServer         = "Internal server error"
	ErrUnauthorized           = "Authentication required"
	ErrForbidden              = "Insufficient permissions"
	ErrCarAlreadyBooked       = "Car is already booked for the selected dates"
	ErrCarUnavailable         = "Car is not available for booking"
	ErrCancellationLate       = "Bookings can only be cancelled at least 24 hours before the pickup time"
	ErrPickupNotBeforeDropoff = "Pickup time must be before drop-off time"
)
