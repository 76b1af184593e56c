package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gorent/internal/models"
	"gorent/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const middlewareSecret = "middleware-test-secret"

func protectedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	chain := append([]gin.HandlerFunc{AuthRequired(middlewareSecret)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		id, _ := CurrentUserID(c)
		role, _ := CurrentUserRole(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id.Hex(), "role": role})
	})
	r.GET("/protected", chain...)
	return r
}

func accessTokenFor(t *testing.T, role models.UserRole, secret string, ttl time.Duration) (primitive.ObjectID, string) {
	t.Helper()
	user := &models.User{
		ID:        primitive.NewObjectID(),
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Role:      role,
	}
	pair, err := utils.GenerateTokenPair(user, secret, ttl, ttl)
	require.NoError(t, err)
	return user.ID, pair.AccessToken
}

func TestAuthRequired(t *testing.T) {
	r := protectedRouter()

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not a bearer token", "Basic abc123", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestAuthRequiredValidToken(t *testing.T) {
	r := protectedRouter()
	userID, token := accessTokenFor(t, models.UserRoleClient, middlewareSecret, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.Hex())
}

func TestAuthRequiredExpiredToken(t *testing.T) {
	r := protectedRouter()
	_, token := accessTokenFor(t, models.UserRoleClient, middlewareSecret, -time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredWrongSecret(t *testing.T) {
	r := protectedRouter()
	_, token := accessTokenFor(t, models.UserRoleClient, "some-other-secret", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRolesRequired(t *testing.T) {
	tests := []struct {
		name  string
		chain gin.HandlerFunc
		role  models.UserRole
		want  int
	}{
		{"admin passes admin gate", AdminRequired(), models.UserRoleAdmin, http.StatusOK},
		{"agent blocked by admin gate", AdminRequired(), models.UserRoleSupportAgent, http.StatusForbidden},
		{"client blocked by staff gate", StaffRequired(), models.UserRoleClient, http.StatusForbidden},
		{"agent passes staff gate", StaffRequired(), models.UserRoleSupportAgent, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := protectedRouter(tt.chain)
			_, token := accessTokenFor(t, tt.role, middlewareSecret, time.Hour)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRolesRequiredWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/staff", StaffRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// role never set on the context
	req := httptest.NewRequest(http.MethodGet, "/staff", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
