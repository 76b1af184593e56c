package interfaces

import (
	"context"

	"gorent/internal/models"
	"gorent/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error

	GetAll(ctx context.Context, role models.UserRole, params *utils.PaginationParams) ([]*models.User, int64, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}
