package services

import (
	"context"

	"gorent/internal/apperrors"
	"gorent/internal/models"
	"gorent/internal/repositories/interfaces"
	"gorent/internal/utils"
	"gorent/internal/validators"
	"gorent/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetAllUsers(ctx context.Context, role models.UserRole, params *utils.PaginationParams) ([]*models.User, int64, error)
	UpdatePersonalInfo(ctx context.Context, id primitive.ObjectID, request *UpdatePersonalInfoRequest) (*models.User, error)
	ChangePassword(ctx context.Context, id primitive.ObjectID, request *ChangePasswordRequest, skipCurrentCheck bool) error
	SetRole(ctx context.Context, id primitive.ObjectID, role models.UserRole) (*models.User, error)
}

type userService struct {
	userRepo interfaces.UserRepository
	logger   *logger.Logger
}

type UpdatePersonalInfoRequest struct {
	FirstName      *string `json:"first_name" validate:"omitempty,min=2,max=50"`
	LastName       *string `json:"last_name" validate:"omitempty,min=2,max=50"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Phone          *string `json:"phone"`
	DateOfBirth    *string `json:"date_of_birth"`
	DrivingLicence *string `json:"driving_licence"`
	ProfilePicture *string `json:"profile_picture" validate:"omitempty,url"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" validate:"required"`
}

func NewUserService(userRepo interfaces.UserRepository, logger *logger.Logger) UserService {
	return &userService{userRepo: userRepo, logger: logger}
}

func (s *userService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) GetAllUsers(ctx context.Context, role models.UserRole, params *utils.PaginationParams) ([]*models.User, int64, error) {
	return s.userRepo.GetAll(ctx, role, params)
}

func (s *userService) UpdatePersonalInfo(ctx context.Context, id primitive.ObjectID, request *UpdatePersonalInfoRequest) (*models.User, error) {
	if err := validators.ValidateStruct(request); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if request.FirstName != nil {
		updates["first_name"] = *request.FirstName
	}
	if request.LastName != nil {
		updates["last_name"] = *request.LastName
	}
	if request.Email != nil {
		updates["email"] = *request.Email
	}
	if request.Phone != nil {
		updates["phone"] = *request.Phone
	}
	if request.DateOfBirth != nil {
		dob, err := utils.ParseDateTime(*request.DateOfBirth)
		if err != nil {
			return nil, apperrors.Validation("Invalid date_of_birth format")
		}
		updates["date_of_birth"] = dob
	}
	if request.DrivingLicence != nil {
		updates["driving_licence"] = *request.DrivingLicence
	}
	if request.ProfilePicture != nil {
		updates["profile_picture"] = *request.ProfilePicture
	}

	if len(updates) == 0 {
		return nil, apperrors.Validation("No fields to update")
	}

	if err := s.userRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}

	s.logger.WithUserID(id).Info("Personal info updated")
	return s.userRepo.GetByID(ctx, id)
}

// ChangePassword verifies the caller's current password before re-hashing.
// Admins resetting someone else's password pass skipCurrentCheck.
func (s *userService) ChangePassword(ctx context.Context, id primitive.ObjectID, request *ChangePasswordRequest, skipCurrentCheck bool) error {
	if err := validators.ValidateStruct(request); err != nil {
		return err
	}
	if err := validators.ValidatePassword(request.NewPassword); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !skipCurrentCheck {
		if request.CurrentPassword == "" {
			return apperrors.Validation("current_password is required")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.CurrentPassword)); err != nil {
			return apperrors.Unauthorized("Current password is incorrect")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Internal(err)
	}

	if err := s.userRepo.UpdatePassword(ctx, id, string(hash)); err != nil {
		return err
	}

	s.logger.LogAuthEvent(id, "password_change", true)
	return nil
}

func (s *userService) SetRole(ctx context.Context, id primitive.ObjectID, role models.UserRole) (*models.User, error) {
	valid := false
	for _, r := range models.ValidRoles {
		if r == role {
			valid = true
			break
		}
	}
	if !valid {
		return nil, apperrors.Validation("Unknown role")
	}

	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, id, map[string]interface{}{"role": role}); err != nil {
		return nil, err
	}

	s.logger.WithUserID(id).WithField("role", role).Info("User role changed")
	return s.userRepo.GetByID(ctx, id)
}
