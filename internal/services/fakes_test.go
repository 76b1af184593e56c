package services

import (
	"context"
	"strings"
	"time"

	"gorent/internal/apperrors"
	"gorent/internal/models"
	"gorent/internal/repositories/interfaces"
	"gorent/internal/utils"
	"gorent/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestLogger() *logger.Logger {
	l, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text"})
	if err != nil {
		panic(err)
	}
	return l
}

// fakeBookingRepo is an in-memory BookingRepository with the same overlap
// semantics as the mongo implementation.
type fakeBookingRepo struct {
	bookings map[primitive.ObjectID]*models.Booking
	// when non-empty, BookingNumberExists pops answers from here instead
	// of scanning the store
	existsQueue []bool

	cancelCalls int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[primitive.ObjectID]*models.Booking{}}
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	booking.CreatedAt = time.Now()
	f.bookings[booking.ID] = booking
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, apperrors.NotFound("Booking")
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetByBookingNumber(ctx context.Context, bookingNumber string) (*models.Booking, error) {
	for _, b := range f.bookings {
		if b.BookingNumber == bookingNumber {
			copied := *b
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound("Booking")
}

func (f *fakeBookingRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	if _, ok := f.bookings[id]; !ok {
		return apperrors.NotFound("Booking")
	}
	return nil
}

func (f *fakeBookingRepo) FindOverlapping(ctx context.Context, carID primitive.ObjectID, pickup, dropoff time.Time) ([]*models.Booking, error) {
	var out []*models.Booking
	for _, b := range f.bookings {
		if b.CarID != carID {
			continue
		}
		blocking := false
		for _, s := range models.BlockingStatuses {
			if b.Status == s {
				blocking = true
			}
		}
		if blocking && b.Overlaps(pickup, dropoff) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CreateIfAvailable(ctx context.Context, booking *models.Booking) error {
	overlapping, _ := f.FindOverlapping(ctx, booking.CarID, booking.PickupTime, booking.DropoffTime)
	if len(overlapping) > 0 {
		return apperrors.Validation(utils.ErrCarAlreadyBooked)
	}
	return f.Create(ctx, booking)
}

func (f *fakeBookingRepo) BookingNumberExists(ctx context.Context, bookingNumber string) (bool, error) {
	if len(f.existsQueue) > 0 {
		answer := f.existsQueue[0]
		f.existsQueue = f.existsQueue[1:]
		return answer, nil
	}
	for _, b := range f.bookings {
		if b.BookingNumber == bookingNumber {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return apperrors.NotFound("Booking")
	}
	b.Status = status
	return nil
}

func (f *fakeBookingRepo) UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return apperrors.NotFound("Booking")
	}
	b.PaymentStatus = status
	return nil
}

func (f *fakeBookingRepo) Cancel(ctx context.Context, id primitive.ObjectID, cancelledBy primitive.ObjectID, refund bool) error {
	b, ok := f.bookings[id]
	if !ok {
		return apperrors.NotFound("Booking")
	}
	f.cancelCalls++
	now := time.Now()
	b.Status = models.BookingStatusCancelled
	b.CancelledAt = &now
	b.CancelledBy = &cancelledBy
	if refund {
		b.PaymentStatus = models.PaymentStatusRefunded
	}
	return nil
}

func (f *fakeBookingRepo) GetAll(ctx context.Context, status models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	var out []*models.Booking
	for _, b := range f.bookings {
		if status == "" || b.Status == status {
			out = append(out, b)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeBookingRepo) GetByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	var out []*models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeBookingRepo) GetByCar(ctx context.Context, carID primitive.ObjectID, statuses []models.BookingStatus, from, to time.Time) ([]*models.Booking, error) {
	var out []*models.Booking
	for _, b := range f.bookings {
		if b.CarID != carID {
			continue
		}
		if len(statuses) > 0 {
			match := false
			for _, s := range statuses {
				if b.Status == s {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		if !to.IsZero() && b.PickupTime.After(to) {
			continue
		}
		if !from.IsZero() && b.DropoffTime.Before(from) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) GetByDateRange(ctx context.Context, from, to time.Time) ([]*models.Booking, error) {
	var out []*models.Booking
	for _, b := range f.bookings {
		if !from.IsZero() && b.CreatedAt.Before(from) {
			continue
		}
		if !to.IsZero() && b.CreatedAt.After(to) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) CountByCar(ctx context.Context, carID primitive.ObjectID) (int64, error) {
	var n int64
	for _, b := range f.bookings {
		if b.CarID == carID {
			n++
		}
	}
	return n, nil
}

type fakeCarRepo struct {
	cars map[primitive.ObjectID]*models.Car

	incrementCalls []int
	statsSet       bool
	deleted        map[primitive.ObjectID]bool
}

func newFakeCarRepo() *fakeCarRepo {
	return &fakeCarRepo{
		cars:    map[primitive.ObjectID]*models.Car{},
		deleted: map[primitive.ObjectID]bool{},
	}
}

func (f *fakeCarRepo) Create(ctx context.Context, car *models.Car) error {
	for _, existing := range f.cars {
		if existing.CarNumber == car.CarNumber {
			return apperrors.Conflict("Car number is already registered")
		}
	}
	if car.ID.IsZero() {
		car.ID = primitive.NewObjectID()
	}
	f.cars[car.ID] = car
	return nil
}

func (f *fakeCarRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Car, error) {
	c, ok := f.cars[id]
	if !ok {
		return nil, apperrors.NotFound("Car")
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCarRepo) GetByCarNumber(ctx context.Context, carNumber string) (*models.Car, error) {
	for _, c := range f.cars {
		if c.CarNumber == carNumber {
			copied := *c
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound("Car")
}

func (f *fakeCarRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	if _, ok := f.cars[id]; !ok {
		return apperrors.NotFound("Car")
	}
	return nil
}

func (f *fakeCarRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.cars[id]; !ok {
		return apperrors.NotFound("Car")
	}
	delete(f.cars, id)
	f.deleted[id] = true
	return nil
}

func (f *fakeCarRepo) GetAll(ctx context.Context, filter *interfaces.CarFilter, params *utils.PaginationParams) ([]*models.Car, int64, error) {
	var out []*models.Car
	for _, c := range f.cars {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCarRepo) GetPopular(ctx context.Context, limit int) ([]*models.Car, error) {
	var out []*models.Car
	for _, c := range f.cars {
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeCarRepo) IncrementBookingCount(ctx context.Context, id primitive.ObjectID, delta int) error {
	c, ok := f.cars[id]
	if !ok {
		return apperrors.NotFound("Car")
	}
	c.BookingCount += delta
	f.incrementCalls = append(f.incrementCalls, delta)
	return nil
}

func (f *fakeCarRepo) SetStats(ctx context.Context, id primitive.ObjectID, bookingCount int64, averageRating float64, reviewCount int64) error {
	c, ok := f.cars[id]
	if !ok {
		return apperrors.NotFound("Car")
	}
	c.BookingCount = int(bookingCount)
	c.AverageRating = averageRating
	c.ReviewCount = int(reviewCount)
	f.statsSet = true
	return nil
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	exists, _ := f.EmailExists(ctx, user.Email)
	if exists {
		return apperrors.Conflict("Email is already registered")
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.Email = strings.ToLower(user.Email)
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.NotFound("User")
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(email)
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound("User")
}

func (f *fakeUserRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	if _, ok := f.users[id]; !ok {
		return apperrors.NotFound("User")
	}
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	u, ok := f.users[id]
	if !ok {
		return apperrors.NotFound("User")
	}
	u.Password = passwordHash
	return nil
}

func (f *fakeUserRepo) GetAll(ctx context.Context, role models.UserRole, params *utils.PaginationParams) ([]*models.User, int64, error) {
	var out []*models.User
	for _, u := range f.users {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(email)
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeFeedbackRepo struct {
	feedbacks map[primitive.ObjectID]*models.Feedback
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{feedbacks: map[primitive.ObjectID]*models.Feedback{}}
}

func (f *fakeFeedbackRepo) Create(ctx context.Context, feedback *models.Feedback) error {
	for _, existing := range f.feedbacks {
		if existing.UserID == feedback.UserID && existing.CarID == feedback.CarID {
			return apperrors.Conflict("You have already reviewed this car")
		}
	}
	if feedback.ID.IsZero() {
		feedback.ID = primitive.NewObjectID()
	}
	feedback.CreatedAt = time.Now()
	f.feedbacks[feedback.ID] = feedback
	return nil
}

func (f *fakeFeedbackRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Feedback, error) {
	fb, ok := f.feedbacks[id]
	if !ok {
		return nil, apperrors.NotFound("Feedback")
	}
	copied := *fb
	return &copied, nil
}

func (f *fakeFeedbackRepo) GetByUserAndCar(ctx context.Context, userID, carID primitive.ObjectID) (*models.Feedback, error) {
	for _, fb := range f.feedbacks {
		if fb.UserID == userID && fb.CarID == carID {
			copied := *fb
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound("Feedback")
}

func (f *fakeFeedbackRepo) GetAll(ctx context.Context, carID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Feedback, int64, error) {
	var out []*models.Feedback
	for _, fb := range f.feedbacks {
		if carID.IsZero() || fb.CarID == carID {
			out = append(out, fb)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeFeedbackRepo) GetRecent(ctx context.Context, limit int) ([]*models.Feedback, error) {
	var out []*models.Feedback
	for _, fb := range f.feedbacks {
		out = append(out, fb)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeFeedbackRepo) RatingStats(ctx context.Context, carID primitive.ObjectID) (float64, int64, error) {
	var sum float64
	var count int64
	for _, fb := range f.feedbacks {
		if fb.CarID == carID {
			sum += fb.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return sum / float64(count), count, nil
}

type fakeLocationRepo struct {
	locations map[primitive.ObjectID]*models.Location
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: map[primitive.ObjectID]*models.Location{}}
}

func (f *fakeLocationRepo) Create(ctx context.Context, location *models.Location) error {
	if location.ID.IsZero() {
		location.ID = primitive.NewObjectID()
	}
	f.locations[location.ID] = location
	return nil
}

func (f *fakeLocationRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Location, error) {
	l, ok := f.locations[id]
	if !ok {
		return nil, apperrors.NotFound("Location")
	}
	copied := *l
	return &copied, nil
}

func (f *fakeLocationRepo) GetAll(ctx context.Context) ([]*models.Location, error) {
	var out []*models.Location
	for _, l := range f.locations {
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeLocationRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	if _, ok := f.locations[id]; !ok {
		return apperrors.NotFound("Location")
	}
	return nil
}

func (f *fakeLocationRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.locations[id]; !ok {
		return apperrors.NotFound("Location")
	}
	delete(f.locations, id)
	return nil
}
