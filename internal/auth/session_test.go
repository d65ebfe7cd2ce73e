package auth

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uuid.UUID, email string, ttl time.Duration) error {
	return m.Called(ctx, tokenID, userID, email, ttl).Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uuid.UUID, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uuid.UUID), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	return m.Called(ctx, tokenID).Error(0)
}

func (m *MockTokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	return m.Called(ctx, tokenID, ttl).Error(0)
}

func (m *MockTokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func TestSession_CurrentUser(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name      string
		claims    *Claims
		revoked   bool
		wantOK    bool
		wantID    uuid.UUID
		expectsBL bool
	}{
		{name: "no claims", wantOK: false},
		{
			name:      "valid",
			claims:    &Claims{UserID: userID.String(), TokenType: TokenTypeAccess, RegisteredClaims: jwt.RegisteredClaims{ID: "jti-1"}},
			expectsBL: true,
			wantOK:    true,
			wantID:    userID,
		},
		{
			name:      "revoked",
			claims:    &Claims{UserID: userID.String(), TokenType: TokenTypeAccess, RegisteredClaims: jwt.RegisteredClaims{ID: "jti-1"}},
			revoked:   true,
			expectsBL: true,
			wantOK:    false,
		},
		{
			name:   "refresh token claims",
			claims: &Claims{UserID: userID.String(), TokenType: TokenTypeRefresh, RegisteredClaims: jwt.RegisteredClaims{ID: "jti-1"}},
			wantOK: false,
		},
		{
			name:   "malformed user id",
			claims: &Claims{UserID: "42", TokenType: TokenTypeAccess},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockTokenStore)
			if tt.expectsBL {
				store.On("IsAccessTokenBlacklisted", mock.Anything, "jti-1").Return(tt.revoked, nil)
			}

			ctx := context.Background()
			if tt.claims != nil {
				ctx = ContextWithClaims(ctx, tt.claims)
			}

			id, ok := NewSession(store, zerolog.Nop()).CurrentUser(ctx)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
			store.AssertExpectations(t)
		})
	}
}

func TestSession_Middleware(t *testing.T) {
	userID := uuid.New()

	run := func(t *testing.T, kind string, revoked bool, lookupErr error, log zerolog.Logger) (bool, error) {
		claims := &Claims{UserID: userID.String(), TokenType: kind, RegisteredClaims: jwt.RegisteredClaims{ID: "jti-2"}}
		store := new(MockTokenStore)
		store.On("IsAccessTokenBlacklisted", mock.Anything, "jti-2").Return(revoked, lookupErr)
		session := NewSession(store, log)

		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		c.Set("user", &jwt.Token{Claims: claims, Valid: true})

		reached := false
		err := session.Middleware()(func(c echo.Context) error {
			reached = true
			got, ok := session.CurrentUser(c.Request().Context())
			require.True(t, ok)
			assert.Equal(t, userID, got)
			return nil
		})(c)
		return reached, err
	}

	t.Run("attaches claims", func(t *testing.T) {
		reached, err := run(t, TokenTypeAccess, false, nil, zerolog.Nop())
		assert.NoError(t, err)
		assert.True(t, reached)
	})

	t.Run("revoked token", func(t *testing.T) {
		reached, err := run(t, TokenTypeAccess, true, nil, zerolog.Nop())
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
		assert.False(t, reached)
	})

	t.Run("refresh token", func(t *testing.T) {
		reached, err := run(t, TokenTypeRefresh, false, nil, zerolog.Nop())
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
		assert.False(t, reached)
	})

	t.Run("blacklist unavailable", func(t *testing.T) {
		var buf bytes.Buffer
		reached, err := run(t, TokenTypeAccess, false, errors.New("redis: connection refused"), zerolog.New(&buf))
		assert.NoError(t, err)
		assert.True(t, reached)
		assert.Contains(t, buf.String(), `"level":"warn"`)
		assert.Contains(t, buf.String(), "connection refused")
	})
}
