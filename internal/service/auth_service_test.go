package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"specialties/internal/auth"
	"specialties/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uuid.UUID, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uuid.UUID, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uuid.UUID), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockTokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		nameField     string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:      "successful registration",
			email:     "Pro@Example.com ",
			password:  "password123",
			nameField: "Test Provider",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "pro@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:      "user already exists",
			email:     "existing@example.com",
			password:  "password123",
			nameField: "Existing Provider",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))
			user, err := service.Register(context.Background(), tt.email, tt.password, tt.nameField)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, "pro@example.com", user.Email)
				assert.Equal(t, tt.nameField, user.Name)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.password)))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	userID := uuid.New()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           userID,
					Email:        "test@example.com",
					PasswordHash: string(hashed),
				}, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, userID, "test@example.com", auth.RefreshTokenExpiry).Return(nil)
			},
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "nope",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           userID,
					Email:        "test@example.com",
					PasswordHash: string(hashed),
				}, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "user not found",
			email:    "notfound@example.com",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockTokenStore)

			service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), mockTokenStore)
			accessToken, refreshToken, user, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.Equal(t, userID, user.ID)
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	userID := uuid.New()
	tokenID, refresh, err := jwtService.GenerateRefreshToken(userID, "pro@example.com")
	require.NoError(t, err)

	t.Run("known token", func(t *testing.T) {
		store := new(MockTokenStore)
		store.On("GetRefreshToken", mock.Anything, tokenID).Return(userID, "pro@example.com", nil)

		access, err := NewAuthService(new(MockUserRepository), jwtService, store).RefreshToken(context.Background(), refresh)
		require.NoError(t, err)

		claims, err := jwtService.ValidateToken(access)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
	})

	t.Run("revoked token", func(t *testing.T) {
		store := new(MockTokenStore)
		store.On("GetRefreshToken", mock.Anything, tokenID).Return(uuid.Nil, "", assert.AnError)

		_, err := NewAuthService(new(MockUserRepository), jwtService, store).RefreshToken(context.Background(), refresh)
		assert.Equal(t, ErrInvalidRefreshToken, err)
	})

	t.Run("access token", func(t *testing.T) {
		access, err := jwtService.GenerateAccessToken(userID, "pro@example.com")
		require.NoError(t, err)
		store := new(MockTokenStore)

		_, err = NewAuthService(new(MockUserRepository), jwtService, store).RefreshToken(context.Background(), access)
		assert.Equal(t, ErrInvalidRefreshToken, err)
		store.AssertNotCalled(t, "GetRefreshToken", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Logout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	userID := uuid.New()
	tokenID, refresh, err := jwtService.GenerateRefreshToken(userID, "pro@example.com")
	require.NoError(t, err)
	accessToken, err := jwtService.GenerateAccessToken(userID, "pro@example.com")
	require.NoError(t, err)
	access, err := jwtService.ValidateToken(accessToken)
	require.NoError(t, err)

	t.Run("revokes both tokens", func(t *testing.T) {
		store := new(MockTokenStore)
		store.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)
		store.On("BlacklistAccessToken", mock.Anything, access.ID, mock.AnythingOfType("time.Duration")).Return(nil)

		err := NewAuthService(new(MockUserRepository), jwtService, store).Logout(context.Background(), refresh, access)
		assert.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("refresh token of another user", func(t *testing.T) {
		store := new(MockTokenStore)
		other := *access
		other.UserID = uuid.New().String()

		err := NewAuthService(new(MockUserRepository), jwtService, store).Logout(context.Background(), refresh, &other)
		assert.Equal(t, ErrInvalidRefreshToken, err)
		store.AssertNotCalled(t, "DeleteRefreshToken", mock.Anything, mock.Anything)
	})

	t.Run("access token in place of refresh token", func(t *testing.T) {
		store := new(MockTokenStore)

		err := NewAuthService(new(MockUserRepository), jwtService, store).Logout(context.Background(), accessToken, access)
		assert.Equal(t, ErrInvalidRefreshToken, err)
		store.AssertNotCalled(t, "DeleteRefreshToken", mock.Anything, mock.Anything)
	})
}
