package mongodb

import (
	"context"
	"fmt"
	"time"

	"gorent/internal/apperrors"
	"gorent/internal/models"
	"gorent/internal/repositories/interfaces"
	"gorent/internal/services"
	"gorent/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type carRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewCarRepository(db *mongo.Database, cache services.CacheService) interfaces.CarRepository {
	return &carRepository{
		collection: db.Collection("cars"),
		cache:      cache,
	}
}

func (r *carRepository) Create(ctx context.Context, car *models.Car) error {
	now := time.Now()
	car.ID = primitive.NewObjectID()
	car.CreatedAt = now
	car.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, car)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.Conflict("Car with this registration number already exists")
		}
		return fmt.Errorf("failed to create car: %w", err)
	}

	r.invalidatePopular(ctx)

	return nil
}

func (r *carRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Car, error) {
	// Try cache first
	var cached models.Car
	if err := r.cache.Get(ctx, services.CacheKeyCarPrefix+id.Hex(), &cached); err == nil {
		return &cached, nil
	}

	var car models.Car
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&car)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("Car")
		}
		return nil, fmt.Errorf("failed to get car: %w", err)
	}

	r.cache.Set(ctx, services.CacheKeyCarPrefix+id.Hex(), &car, utils.CarCacheTTL)

	return &car, nil
}

func (r *carRepository) GetByCarNumber(ctx context.Context, carNumber string) (*models.Car, error) {
	var car models.Car
	err := r.collection.FindOne(ctx, bson.M{"car_number": carNumber}).Decode(&car)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("Car")
		}
		return nil, fmt.Errorf("failed to get car by number: %w", err)
	}

	return &car, nil
}

func (r *carRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.Conflict("Car with this registration number already exists")
		}
		return fmt.Errorf("failed to update car: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("Car")
	}

	r.invalidate(ctx, id)

	return nil
}

func (r *carRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete car: %w", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.NotFound("Car")
	}

	r.invalidate(ctx, id)

	return nil
}

func (r *carRepository) GetAll(ctx context.Context, filter *interfaces.CarFilter, params *utils.PaginationParams) ([]*models.Car, int64, error) {
	query := bson.M{}
	if filter != nil {
		if filter.Type != "" {
			query["type"] = filter.Type
		}
		if filter.Transmission != "" {
			query["transmission"] = filter.Transmission
		}
		if filter.OnlyAvailable {
			query["available"] = true
		}
		price := bson.M{}
		if filter.MinPrice > 0 {
			price["$gte"] = filter.MinPrice
		}
		if filter.MaxPrice > 0 {
			price["$lte"] = filter.MaxPrice
		}
		if len(price) > 0 {
			query["price_per_day"] = price
		}
	}

	if search := params.GetSearchFilter([]string{"brand", "model", "car_number"}); len(search) > 0 {
		query = bson.M{"$and": []bson.M{query, search}}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count cars: %w", err)
	}

	cursor, err := r.collection.Find(ctx, query, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query cars: %w", err)
	}
	defer cursor.Close(ctx)

	var cars []*models.Car
	if err := cursor.All(ctx, &cars); err != nil {
		return nil, 0, fmt.Errorf("failed to decode cars: %w", err)
	}

	return cars, total, nil
}

func (r *carRepository) GetPopular(ctx context.Context, limit int) ([]*models.Car, error) {
	var cached []*models.Car
	if err := r.cache.Get(ctx, services.CacheKeyPopularCars, &cached); err == nil && len(cached) > 0 {
		return cached, nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "booking_count", Value: -1}, {Key: "average_rating", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"available": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query popular cars: %w", err)
	}
	defer cursor.Close(ctx)

	var cars []*models.Car
	if err := cursor.All(ctx, &cars); err != nil {
		return nil, fmt.Errorf("failed to decode popular cars: %w", err)
	}

	r.cache.Set(ctx, services.CacheKeyPopularCars, cars, utils.PopularCarsCacheTTL)

	return cars, nil
}

func (r *carRepository) IncrementBookingCount(ctx context.Context, id primitive.ObjectID, delta int) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"booking_count": delta},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to increment booking count: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("Car")
	}

	r.invalidate(ctx, id)

	return nil
}

func (r *carRepository) SetStats(ctx context.Context, id primitive.ObjectID, bookingCount int64, averageRating float64, reviewCount int64) error {
	return r.Update(ctx, id, map[string]interface{}{
		"booking_count":  bookingCount,
		"average_rating": averageRating,
		"review_count":   reviewCount,
	})
}

func (r *carRepository) invalidate(ctx context.Context, id primitive.ObjectID) {
	r.cache.Delete(ctx, services.CacheKeyCarPrefix+id.Hex())
	r.invalidatePopular(ctx)
}

func (r *carRepository) invalidatePopular(ctx context.Context) {
	r.cache.Delete(ctx, services.CacheKeyPopularCars)
}
