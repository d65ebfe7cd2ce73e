package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"specialties/internal/auth"
	apperrors "specialties/internal/errors"
	"specialties/internal/panel"
	"specialties/internal/service"
)

const (
	// AccessTokenCookie holds the access token for browser sessions.
	AccessTokenCookie = "token"
	// RefreshTokenCookie holds the refresh token for browser sessions.
	RefreshTokenCookie = "refresh_token"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	panels      *panel.Registry
	secure      bool
}

// NewAuthHandler creates a new auth handler. secureCookies marks session
// cookies Secure and should be set outside development.
func NewAuthHandler(authService service.AuthService, panels *panel.Registry, secureCookies bool) *AuthHandler {
	return &AuthHandler{authService: authService, panels: panels, secure: secureCookies}
}

// RegisterRequest represents a provider registration request.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest represents a logout request.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse represents an authentication response.
type AuthResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token,omitempty"`
	User         interface{} `json:"user,omitempty"`
}

// Register godoc
// @Summary Register a new provider
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			return echo.NewHTTPError(http.StatusConflict, apperrors.ErrorResponse{
				Error: err.Error(),
				Code:  "USER_ALREADY_EXISTS",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "failed to register user",
			Code:  "REGISTRATION_FAILED",
		})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "user registered successfully",
		"user":    user,
	})
}

// Login godoc
// @Summary Login provider
// @Description Returns tokens and also sets them as HttpOnly cookies for the HTML pages.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	accessToken, refreshToken, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_CREDENTIALS",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "failed to login",
			Code:  "LOGIN_FAILED",
		})
	}

	h.setSessionCookies(c, accessToken, refreshToken)
	return c.JSON(http.StatusOK, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	})
}

// Refresh godoc
// @Summary Refresh access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	accessToken, err := h.authService.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_REFRESH_TOKEN",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "failed to refresh token",
			Code:  "REFRESH_FAILED",
		})
	}

	return c.JSON(http.StatusOK, AuthResponse{
		AccessToken: accessToken,
	})
}

// Logout godoc
// @Summary Logout provider
// @Description Revokes the refresh token and the access token used for the call, and forgets the provider's panel.
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LogoutRequest true "Refresh token"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req LogoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.logout(c, req.RefreshToken); err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_REFRESH_TOKEN",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "failed to logout",
			Code:  "LOGOUT_FAILED",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "logged out successfully",
	})
}

func (h *AuthHandler) logout(c echo.Context, refreshToken string) error {
	claims, _ := auth.ClaimsFromContext(c.Request().Context())
	if err := h.authService.Logout(c.Request().Context(), refreshToken, claims); err != nil {
		return err
	}
	if claims != nil {
		if id, err := uuid.Parse(claims.UserID); err == nil {
			h.panels.Drop(id)
		}
	}
	h.clearSessionCookies(c)
	return nil
}

// RenewSession retries a page request once with a fresh access token when
// the auth middlewares after it reject the request and the refresh_token
// cookie is still valid.
func (h *AuthHandler) RenewSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
			return err
		}
		ck, cerr := c.Cookie(RefreshTokenCookie)
		if cerr != nil || ck.Value == "" {
			return err
		}
		accessToken, rerr := h.authService.RefreshToken(c.Request().Context(), ck.Value)
		if rerr != nil {
			return err
		}

		c.SetCookie(h.cookie(AccessTokenCookie, accessToken, auth.AccessTokenExpiry))
		req := c.Request().Clone(c.Request().Context())
		req.Header.Del("Cookie")
		for _, existing := range c.Request().Cookies() {
			if existing.Name != AccessTokenCookie {
				req.AddCookie(existing)
			}
		}
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: accessToken})
		c.SetRequest(req)
		return next(c)
	}
}

func (h *AuthHandler) setSessionCookies(c echo.Context, accessToken, refreshToken string) {
	c.SetCookie(h.cookie(AccessTokenCookie, accessToken, auth.AccessTokenExpiry))
	c.SetCookie(h.cookie(RefreshTokenCookie, refreshToken, auth.RefreshTokenExpiry))
}

func (h *AuthHandler) clearSessionCookies(c echo.Context) {
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		ck := h.cookie(name, "", 0)
		ck.MaxAge = -1
		c.SetCookie(ck)
	}
}

func (h *AuthHandler) cookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_FAILED",
		})
	}
	return nil
}
