package auth

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"specialties/internal/errors"
)

type claimsKey struct{}

// ContextWithClaims attaches verified token claims to ctx.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the claims attached by the session middleware.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	return claims, ok && claims != nil
}

// Session resolves the authenticated identity of the current request.
type Session struct {
	tokens TokenStoreInterface
	log    zerolog.Logger
}

// NewSession creates a session accessor backed by the token store.
func NewSession(tokens TokenStoreInterface, log zerolog.Logger) *Session {
	return &Session{tokens: tokens, log: log}
}

// CurrentUser returns the caller's user id, or false when the request carries
// no valid access token claims or the token has been revoked since it was verified.
func (s *Session) CurrentUser(ctx context.Context) (uuid.UUID, bool) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok || !claims.IsAccess() {
		return uuid.Nil, false
	}
	if claims.ID != "" && s.revoked(ctx, claims.ID) {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// revoked fails open: when the blacklist cannot be read the token is accepted.
func (s *Session) revoked(ctx context.Context, tokenID string) bool {
	revoked, err := s.tokens.IsAccessTokenBlacklisted(ctx, tokenID)
	if err != nil {
		s.log.Warn().Err(err).Str("token_id", tokenID).Msg("token blacklist unavailable, accepting token")
		return false
	}
	return revoked
}

// Middleware runs after echo-jwt: it rejects refresh tokens and revoked access
// tokens and moves the parsed claims into the request context.
func (s *Session) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{Error: "invalid token", Code: "INVALID_TOKEN"})
			}
			claims, ok := token.Claims.(*Claims)
			if !ok || !claims.IsAccess() {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{Error: "invalid token", Code: "INVALID_TOKEN"})
			}
			ctx := c.Request().Context()
			if s.revoked(ctx, claims.ID) {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{Error: "token revoked", Code: "TOKEN_REVOKED"})
			}
			c.SetRequest(c.Request().WithContext(ContextWithClaims(ctx, claims)))
			return next(c)
		}
	}
}
