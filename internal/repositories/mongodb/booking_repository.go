package mongodb

import (
	"context"
	"fmt"
	"time"

	"gorent/internal/apperrors"
	"gorent/internal/models"
	"gorent/internal/repositories/interfaces"
	"gorent/internal/utils"
	"gorent/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type bookingRepository struct {
	db         *database.MongoDB
	collection *mongo.Collection
}

func NewBookingRepository(db *database.MongoDB) interfaces.BookingRepository {
	return &bookingRepository{
		db:         db,
		collection: db.Collection("bookings"),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	now := time.Now()
	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	var booking models.Booking
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("Booking")
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

func (r *bookingRepository) GetByBookingNumber(ctx context.Context, bookingNumber string) (*models.Booking, error) {
	var booking models.Booking
	err := r.collection.FindOne(ctx, bson.M{"booking_number": bookingNumber}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("Booking")
		}
		return nil, fmt.Errorf("failed to get booking by number: %w", err)
	}

	return &booking, nil
}

func (r *bookingRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("Booking")
	}

	return nil
}

func overlapFilter(carID primitive.ObjectID, pickup, dropoff time.Time) bson.M {
	// Inclusive bounds on both ends: a booking ending exactly when another
	// starts counts as a conflict.
	return bson.M{
		"car_id":       carID,
		"status":       bson.M{"$in": models.BlockingStatuses},
		"pickup_time":  bson.M{"$lte": dropoff},
		"dropoff_time": bson.M{"$gte": pickup},
	}
}

func (r *bookingRepository) FindOverlapping(ctx context.Context, carID primitive.ObjectID, pickup, dropoff time.Time) ([]*models.Booking, error) {
	cursor, err := r.collection.Find(ctx, overlapFilter(carID, pickup, dropoff))
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode overlapping bookings: %w", err)
	}

	return bookings, nil
}

// CreateIfAvailable re-checks the overlap window and inserts the booking in
// a single transaction, closing the race between check and insert.
func (r *bookingRepository) CreateIfAvailable(ctx context.Context, booking *models.Booking) error {
	now := time.Now()
	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	_, err := r.db.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		count, err := r.collection.CountDocuments(sessCtx,
			overlapFilter(booking.CarID, booking.PickupTime, booking.DropoffTime))
		if err != nil {
			return nil, fmt.Errorf("failed to check booking overlap: %w", err)
		}
		if count > 0 {
			return nil, apperrors.Validation(utils.ErrCarAlreadyBooked)
		}

		if _, err := r.collection.InsertOne(sessCtx, booking); err != nil {
			return nil, fmt.Errorf("failed to create booking: %w", err)
		}
		return nil, nil
	})

	return err
}

func (r *bookingRepository) BookingNumberExists(ctx context.Context, bookingNumber string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"booking_number": bookingNumber})
	if err != nil {
		return false, fmt.Errorf("failed to check booking number: %w", err)
	}
	return count > 0, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) error {
	return r.Update(ctx, id, map[string]interface{}{"status": status})
}

func (r *bookingRepository) UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) error {
	return r.Update(ctx, id, map[string]interface{}{"payment_status": status})
}

func (r *bookingRepository) Cancel(ctx context.Context, id primitive.ObjectID, cancelledBy primitive.ObjectID, refund bool) error {
	now := time.Now()
	updates := map[string]interface{}{
		"status":       models.BookingStatusCancelled,
		"cancelled_at": now,
		"cancelled_by": cancelledBy,
	}
	if refund {
		updates["payment_status"] = models.PaymentStatusRefunded
	}

	return r.Update(ctx, id, updates)
}

func (r *bookingRepository) GetAll(ctx context.Context, status models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	return r.findPage(ctx, filter, params)
}

func (r *bookingRepository) GetByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return r.findPage(ctx, bson.M{"user_id": userID}, params)
}

func (r *bookingRepository) GetByCar(ctx context.Context, carID primitive.ObjectID, statuses []models.BookingStatus, from, to time.Time) ([]*models.Booking, error) {
	filter := bson.M{"car_id": carID}
	if !to.IsZero() {
		filter["pickup_time"] = bson.M{"$lte": to}
	}
	if !from.IsZero() {
		filter["dropoff_time"] = bson.M{"$gte": from}
	}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query car bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode car bookings: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) GetByDateRange(ctx context.Context, from, to time.Time) ([]*models.Booking, error) {
	filter := bson.M{}
	if !from.IsZero() || !to.IsZero() {
		created := bson.M{}
		if !from.IsZero() {
			created["$gte"] = from
		}
		if !to.IsZero() {
			created["$lte"] = to
		}
		filter["created_at"] = created
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings by date range: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByCar(ctx context.Context, carID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"car_id": carID})
	if err != nil {
		return 0, fmt.Errorf("failed to count car bookings: %w", err)
	}
	return count, nil
}

func (r *bookingRepository) findPage(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, total, nil
}
