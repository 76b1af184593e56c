package services

import (
	"context"
	"testing"
	"time"

	"gorent/internal/apperrors"
	"gorent/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type bookingFixture struct {
	service     BookingService
	bookingRepo *fakeBookingRepo
	carRepo     *fakeCarRepo
	userRepo    *fakeUserRepo
	client      *models.User
	car         *models.Car
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	bookingRepo := newFakeBookingRepo()
	carRepo := newFakeCarRepo()
	userRepo := newFakeUserRepo()

	client := &models.User{
		FirstName: "Test",
		LastName:  "Client",
		Email:     "client@example.com",
		Role:      models.UserRoleClient,
		IsActive:  true,
	}
	require.NoError(t, userRepo.Create(context.Background(), client))

	car := &models.Car{
		CarNumber:   "AB-1234",
		Brand:       "Toyota",
		Model:       "Corolla",
		Year:        2022,
		PricePerDay: 100,
		Available:   true,
	}
	require.NoError(t, carRepo.Create(context.Background(), car))

	return &bookingFixture{
		service:     NewBookingService(bookingRepo, carRepo, userRepo, newTestLogger()),
		bookingRepo: bookingRepo,
		carRepo:     carRepo,
		userRepo:    userRepo,
		client:      client,
		car:         car,
	}
}

func (f *bookingFixture) request(pickup, dropoff string) *CreateBookingRequest {
	return &CreateBookingRequest{
		CarID:       f.car.ID.Hex(),
		ClientID:    f.client.ID.Hex(),
		PickupTime:  pickup,
		DropoffTime: dropoff,
	}
}

func TestCreateBookingSuccess(t *testing.T) {
	f := newBookingFixture(t)

	res, err := f.service.CreateBooking(context.Background(),
		f.request("2026-01-01T10:00:00Z", "2026-01-03T10:00:00Z"))
	require.NoError(t, err)

	assert.Equal(t, 2, res.RentalDays)
	assert.Equal(t, 200.0, res.TotalPrice)
	assert.Equal(t, models.BookingStatusPending, res.Status)
	assert.Equal(t, models.PaymentStatusUnpaid, res.PaymentStatus)
	assert.Len(t, res.BookingNumber, 4)
	require.NotNil(t, res.Car)
	assert.Equal(t, "AB-1234", res.Car.CarNumber)

	// counter side effect
	car, err := f.carRepo.GetByID(context.Background(), f.car.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, car.BookingCount)
}

func TestCreateBookingPartialDayRoundsUp(t *testing.T) {
	f := newBookingFixture(t)

	res, err := f.service.CreateBooking(context.Background(),
		f.request("2026-01-01T10:00:00Z", "2026-01-02T11:00:00Z"))
	require.NoError(t, err)

	assert.Equal(t, 2, res.RentalDays)
	assert.Equal(t, 200.0, res.TotalPrice)
}

func TestCreateBookingRoundTrip(t *testing.T) {
	f := newBookingFixture(t)

	res, err := f.service.CreateBooking(context.Background(),
		f.request("2026-01-01T10:00:00Z", "2026-01-03T10:00:00Z"))
	require.NoError(t, err)

	stored, err := f.service.GetBooking(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.ID, stored.ID)
	assert.True(t, stored.PickupTime.Equal(res.PickupTime))
	assert.True(t, stored.DropoffTime.Equal(res.DropoffTime))
	assert.Equal(t, res.TotalPrice, stored.TotalPrice)
}

func TestCreateBookingOverlapRejected(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	_, err := f.service.CreateBooking(ctx, f.request("2026-01-01T00:00:00Z", "2026-01-05T00:00:00Z"))
	require.NoError(t, err)

	_, err = f.service.CreateBooking(ctx, f.request("2026-01-04T00:00:00Z", "2026-01-08T00:00:00Z"))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Car is already booked for the selected dates", appErr.Message)
}

func TestCreateBookingTouchingWindowsConflict(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	_, err := f.service.CreateBooking(ctx, f.request("2026-01-01T00:00:00Z", "2026-01-05T00:00:00Z"))
	require.NoError(t, err)

	// starts the instant the existing one ends: inclusive bounds make
	// this a conflict
	_, err = f.service.CreateBooking(ctx, f.request("2026-01-05T00:00:00Z", "2026-01-09T00:00:00Z"))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestCreateBookingCancelledDoesNotBlock(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	// Dates must stay far enough in the future that the 24h
	// cancellation cutoff does not trip against the real clock.
	res, err := f.service.CreateBooking(ctx, f.request("2030-01-01T00:00:00Z", "2030-01-05T00:00:00Z"))
	require.NoError(t, err)

	_, err = f.service.CancelBooking(ctx, res.ID, f.client.ID, models.UserRoleClient)
	require.NoError(t, err)

	_, err = f.service.CreateBooking(ctx, f.request("2030-01-02T00:00:00Z", "2030-01-04T00:00:00Z"))
	assert.NoError(t, err)
}

func TestCreateBookingEqualTimesRejected(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.CreateBooking(context.Background(),
		f.request("2026-01-01T10:00:00Z", "2026-01-01T10:00:00Z"))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestCreateBookingUnparseableTime(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.CreateBooking(context.Background(),
		f.request("yesterday", "2026-01-03T10:00:00Z"))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestCreateBookingCarUnavailable(t *testing.T) {
	f := newBookingFixture(t)
	f.carRepo.cars[f.car.ID].Available = false

	_, err := f.service.CreateBooking(context.Background(),
		f.request("2026-01-01T10:00:00Z", "2026-01-03T10:00:00Z"))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestCreateBookingUnknownClient(t *testing.T) {
	f := newBookingFixture(t)

	req := f.request("2026-01-01T10:00:00Z", "2026-01-03T10:00:00Z")
	req.ClientID = primitive.NewObjectID().Hex()

	_, err := f.service.CreateBooking(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestCreateBookingUnknownCar(t *testing.T) {
	f := newBookingFixture(t)

	req := f.request("2026-01-01T10:00:00Z", "2026-01-03T10:00:00Z")
	req.CarID = primitive.NewObjectID().Hex()

	_, err := f.service.CreateBooking(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestCreateBookingInvalidShape(t *testing.T) {
	f := newBookingFixture(t)

	req := f.request("2026-01-01T10:00:00Z", "2026-01-03T10:00:00Z")
	req.CarID = "not-an-object-id"

	_, err := f.service.CreateBooking(context.Background(), req)
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
	assert.NotEmpty(t, appErr.Fields)
}

func TestCreateBookingNumberCollisionRetries(t *testing.T) {
	f := newBookingFixture(t)
	// first two draws collide, third is free
	f.bookingRepo.existsQueue = []bool{true, true, false}

	res, err := f.service.CreateBooking(context.Background(),
		f.request("2026-01-01T10:00:00Z", "2026-01-03T10:00:00Z"))
	require.NoError(t, err)
	assert.Len(t, res.BookingNumber, 4)
}

func TestCreateBookingNumberExhausted(t *testing.T) {
	f := newBookingFixture(t)
	f.bookingRepo.existsQueue = []bool{true, true, true, true, true}

	_, err := f.service.CreateBooking(context.Background(),
		f.request("2026-01-01T10:00:00Z", "2026-01-03T10:00:00Z"))
	assert.Error(t, err)
}

func TestUpdateStatusCompletedSettlesPayment(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	res, err := f.service.CreateBooking(ctx, f.request("2026-01-01T10:00:00Z", "2026-01-03T10:00:00Z"))
	require.NoError(t, err)

	_, err = f.service.UpdateStatus(ctx, res.ID, models.BookingStatusConfirmed)
	require.NoError(t, err)
	_, err = f.service.UpdateStatus(ctx, res.ID, models.BookingStatusActive)
	require.NoError(t, err)

	booking, err := f.service.UpdateStatus(ctx, res.ID, models.BookingStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, booking.Status)
	assert.Equal(t, models.PaymentStatusPaid, booking.PaymentStatus)
}

func TestUpdateStatusIllegalTransition(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	res, err := f.service.CreateBooking(ctx, f.request("2026-01-01T10:00:00Z", "2026-01-03T10:00:00Z"))
	require.NoError(t, err)

	_, err = f.service.UpdateStatus(ctx, res.ID, models.BookingStatusCompleted)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func futureWindow(f *bookingFixture, daysAhead int) *CreateBookingRequest {
	pickup := time.Now().AddDate(0, 0, daysAhead)
	dropoff := pickup.AddDate(0, 0, 2)
	return f.request(pickup.Format(time.RFC3339), dropoff.Format(time.RFC3339))
}

func TestCancelBookingByOwner(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	res, err := f.service.CreateBooking(ctx, futureWindow(f, 10))
	require.NoError(t, err)

	booking, err := f.service.CancelBooking(ctx, res.ID, f.client.ID, models.UserRoleClient)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, booking.Status)
	assert.Equal(t, models.PaymentStatusUnpaid, booking.PaymentStatus)
	require.NotNil(t, booking.CancelledBy)
	assert.Equal(t, f.client.ID, *booking.CancelledBy)

	// counter went up then back down
	car, err := f.carRepo.GetByID(ctx, f.car.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, car.BookingCount)
}

func TestCancelBookingRefundsPaid(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	res, err := f.service.CreateBooking(ctx, futureWindow(f, 10))
	require.NoError(t, err)
	require.NoError(t, f.bookingRepo.UpdatePaymentStatus(ctx, res.ID, models.PaymentStatusPaid))

	booking, err := f.service.CancelBooking(ctx, res.ID, f.client.ID, models.UserRoleClient)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, booking.PaymentStatus)
}

func TestCancelBookingIdempotent(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	res, err := f.service.CreateBooking(ctx, futureWindow(f, 10))
	require.NoError(t, err)
	require.NoError(t, f.bookingRepo.UpdatePaymentStatus(ctx, res.ID, models.PaymentStatusPaid))

	first, err := f.service.CancelBooking(ctx, res.ID, f.client.ID, models.UserRoleClient)
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusRefunded, first.PaymentStatus)

	second, err := f.service.CancelBooking(ctx, res.ID, f.client.ID, models.UserRoleClient)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, second.Status)
	assert.Equal(t, models.PaymentStatusRefunded, second.PaymentStatus)
	assert.Equal(t, 1, f.bookingRepo.cancelCalls)
}

func TestCancelBookingForbiddenForOtherUser(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	res, err := f.service.CreateBooking(ctx, futureWindow(f, 10))
	require.NoError(t, err)

	other := primitive.NewObjectID()
	_, err = f.service.CancelBooking(ctx, res.ID, other, models.UserRoleClient)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
}

func TestCancelBookingTooLate(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	// pickup two hours from now, inside the 24h cutoff
	pickup := time.Now().Add(2 * time.Hour)
	dropoff := pickup.AddDate(0, 0, 2)
	res, err := f.service.CreateBooking(ctx,
		f.request(pickup.Format(time.RFC3339), dropoff.Format(time.RFC3339)))
	require.NoError(t, err)

	_, err = f.service.CancelBooking(ctx, res.ID, f.client.ID, models.UserRoleClient)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Message, "24 hours")
}

func TestCancelBookingAdminBypassesCutoff(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	pickup := time.Now().Add(2 * time.Hour)
	dropoff := pickup.AddDate(0, 0, 2)
	res, err := f.service.CreateBooking(ctx,
		f.request(pickup.Format(time.RFC3339), dropoff.Format(time.RFC3339)))
	require.NoError(t, err)

	admin := primitive.NewObjectID()
	booking, err := f.service.CancelBooking(ctx, res.ID, admin, models.UserRoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, booking.Status)
}

func TestCancelCompletedBookingRejected(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	res, err := f.service.CreateBooking(ctx, futureWindow(f, 10))
	require.NoError(t, err)
	require.NoError(t, f.bookingRepo.UpdateStatus(ctx, res.ID, models.BookingStatusCompleted))

	_, err = f.service.CancelBooking(ctx, res.ID, f.client.ID, models.UserRoleAdmin)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestGetBookedDays(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	first, err := f.service.CreateBooking(ctx, futureWindow(f, 5))
	require.NoError(t, err)
	second, err := f.service.CreateBooking(ctx, futureWindow(f, 20))
	require.NoError(t, err)

	// a cancelled booking does not occupy the calendar
	_, err = f.service.CancelBooking(ctx, second.ID, f.client.ID, models.UserRoleClient)
	require.NoError(t, err)

	ranges, err := f.service.GetBookedDays(ctx, f.car.ID)
	require.NoError(t, err)
	require.Len(t, ranges, 1)
	assert.True(t, ranges[0].PickupTime.Equal(first.PickupTime))
	assert.True(t, ranges[0].DropoffTime.Equal(first.DropoffTime))
}

func TestGetBookedDaysUnknownCar(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.GetBookedDays(context.Background(), primitive.NewObjectID())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
