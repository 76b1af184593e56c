package services

import (
	"context"
	"testing"
	"time"

	"gorent/internal/apperrors"
	"gorent/internal/config"
	"gorent/internal/models"
	"gorent/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture() (AuthService, *fakeUserRepo) {
	userRepo := newFakeUserRepo()
	security := &config.SecurityConfig{
		JWTSecret:          "test-secret",
		JWTAccessTokenTTL:  time.Hour,
		JWTRefreshTokenTTL: 24 * time.Hour,
	}
	return NewAuthService(userRepo, security, newTestLogger()), userRepo
}

func registerReq() *RegisterRequest {
	return &RegisterRequest{
		FirstName: "New",
		LastName:  "Client",
		Email:     "new@example.com",
		Password:  "secret123",
	}
}

func TestRegisterSuccess(t *testing.T) {
	service, userRepo := newAuthFixture()

	res, err := service.Register(context.Background(), registerReq())
	require.NoError(t, err)

	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.Equal(t, "Bearer", res.TokenType)
	assert.Equal(t, models.UserRoleClient, res.User.Role)
	assert.True(t, res.User.IsActive)

	stored, err := userRepo.GetByEmail(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))

	claims, err := utils.ValidateToken(res.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, claims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _ := newAuthFixture()
	ctx := context.Background()

	_, err := service.Register(ctx, registerReq())
	require.NoError(t, err)

	_, err = service.Register(ctx, registerReq())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestRegisterWeakPassword(t *testing.T) {
	service, _ := newAuthFixture()

	req := registerReq()
	req.Password = "short"

	_, err := service.Register(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestLoginSuccess(t *testing.T) {
	service, _ := newAuthFixture()
	ctx := context.Background()

	_, err := service.Register(ctx, registerReq())
	require.NoError(t, err)

	res, err := service.Login(ctx, &LoginRequest{Email: "new@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "new@example.com", res.User.Email)
}

func TestLoginBadCredentials(t *testing.T) {
	service, _ := newAuthFixture()
	ctx := context.Background()

	_, err := service.Register(ctx, registerReq())
	require.NoError(t, err)

	tests := []struct {
		name string
		req  *LoginRequest
	}{
		{"wrong password", &LoginRequest{Email: "new@example.com", Password: "wrong1234"}},
		{"unknown email", &LoginRequest{Email: "nobody@example.com", Password: "secret123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(ctx, tt.req)
			require.Error(t, err)
			assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))

			// wrong password and unknown email are indistinguishable
			var appErr *apperrors.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "Invalid email or password", appErr.Message)
		})
	}
}

func TestLoginDeactivatedAccount(t *testing.T) {
	service, userRepo := newAuthFixture()
	ctx := context.Background()

	res, err := service.Register(ctx, registerReq())
	require.NoError(t, err)
	userRepo.users[res.User.ID].IsActive = false

	_, err = service.Login(ctx, &LoginRequest{Email: "new@example.com", Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
}

func TestRefresh(t *testing.T) {
	service, _ := newAuthFixture()
	ctx := context.Background()

	registered, err := service.Register(ctx, registerReq())
	require.NoError(t, err)

	refreshed, err := service.Refresh(ctx, registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, registered.User.ID, refreshed.User.ID)
}

func TestRefreshInvalidToken(t *testing.T) {
	service, _ := newAuthFixture()

	_, err := service.Refresh(context.Background(), "garbage")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
}
