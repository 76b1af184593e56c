package services

import (
	"context"
	"time"

	"gorent/internal/apperrors"
	"gorent/internal/config"
	"gorent/internal/models"
	"gorent/internal/repositories/interfaces"
	"gorent/internal/utils"
	"gorent/internal/validators"
	"gorent/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, request *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error)
}

type authService struct {
	userRepo interfaces.UserRepository
	security *config.SecurityConfig
	logger   *logger.Logger
}

type RegisterRequest struct {
	FirstName      string `json:"first_name" validate:"required,min=2,max=50"`
	LastName       string `json:"last_name" validate:"required,min=2,max=50"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone"`
	Password       string `json:"password" validate:"required"`
	DrivingLicence string `json:"driving_licence"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int64        `json:"expires_in"`
}

func NewAuthService(userRepo interfaces.UserRepository, security *config.SecurityConfig, logger *logger.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		security: security,
		logger:   logger,
	}
}

func (s *authService) Register(ctx context.Context, request *RegisterRequest) (*AuthResponse, error) {
	if err := validators.ValidateStruct(request); err != nil {
		return nil, err
	}
	if err := validators.ValidatePassword(request.Password); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.EmailExists(ctx, request.Email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if exists {
		return nil, apperrors.Conflict("Email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &models.User{
		FirstName:      request.FirstName,
		LastName:       request.LastName,
		Email:          request.Email,
		Phone:          request.Phone,
		Password:       string(hash),
		Role:           models.UserRoleClient,
		DrivingLicence: request.DrivingLicence,
		IsActive:       true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.LogAuthEvent(user.ID, "sign_up", true)

	return s.issueTokens(user)
}

func (s *authService) Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error) {
	if err := validators.ValidateStruct(request); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, request.Email)
	if err != nil {
		// Not-found and bad-password collapse into one message so the
		// endpoint does not leak which emails exist.
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil, apperrors.Unauthorized("Invalid email or password")
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperrors.Forbidden("Account is deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)); err != nil {
		s.logger.LogAuthEvent(user.ID, "sign_in", false)
		return nil, apperrors.Unauthorized("Invalid email or password")
	}

	now := time.Now()
	if err := s.userRepo.Update(ctx, user.ID, map[string]interface{}{"last_login_at": now}); err != nil {
		s.logger.WithError(err).WithUserID(user.ID).Warn("Failed to record login time")
	}
	user.LastLoginAt = &now

	s.logger.LogAuthEvent(user.ID, "sign_in", true)

	return s.issueTokens(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := utils.ValidateToken(refreshToken, s.security.JWTSecret)
	if err != nil {
		return nil, apperrors.Unauthorized("Invalid or expired refresh token")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil, apperrors.Unauthorized("Invalid or expired refresh token")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.Forbidden("Account is deactivated")
	}

	return s.issueTokens(user)
}

func (s *authService) issueTokens(user *models.User) (*AuthResponse, error) {
	pair, err := utils.GenerateTokenPair(user, s.security.JWTSecret,
		s.security.JWTAccessTokenTTL, s.security.JWTRefreshTokenTTL)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}
