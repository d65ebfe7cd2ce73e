package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"specialties/internal/auth"
	"specialties/internal/model"
	"specialties/internal/repository"
)

const bcryptCost = 10

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserAlreadyExists is returned when trying to register an existing user.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidRefreshToken is returned when refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// AuthService handles provider authentication.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*model.User, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *model.User, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	// Logout revokes refreshToken and, when given, the access token it is called with.
	Logout(ctx context.Context, refreshToken string, access *auth.Claims) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Register creates a new provider account with a hashed password.
func (s *authService) Register(ctx context.Context, email, password, name string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login authenticates a provider and returns access and refresh tokens.
func (s *authService) Login(ctx context.Context, email, password string) (string, string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}
	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}
	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, user.Email, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, user, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil || claims.ID == "" || !claims.IsRefresh() {
		return "", ErrInvalidRefreshToken
	}

	storedUserID, storedEmail, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}
	if storedUserID.String() != claims.UserID || storedEmail != claims.Email {
		return "", ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(storedUserID, storedEmail)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string, access *auth.Claims) error {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil || claims.ID == "" || !claims.IsRefresh() {
		return ErrInvalidRefreshToken
	}
	if access != nil && access.UserID != claims.UserID {
		return ErrInvalidRefreshToken
	}

	if err := s.tokenStore.DeleteRefreshToken(ctx, claims.ID); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}

	if access != nil && access.ID != "" && access.ExpiresAt != nil {
		if ttl := time.Until(access.ExpiresAt.Time); ttl > 0 {
			if err := s.tokenStore.BlacklistAccessToken(ctx, access.ID, ttl); err != nil {
				return fmt.Errorf("revoke access token: %w", err)
			}
		}
	}
	return nil
}
