package router

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"specialties/docs"
	"specialties/internal/auth"
	"specialties/internal/config"
	apperrors "specialties/internal/errors"
	"specialties/internal/handler"
	"specialties/internal/logger"
	"specialties/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log *logger.Logger,
	session *auth.Session,
	authHandler *handler.AuthHandler,
	specialtyHandler *handler.SpecialtyHandler,
	pageHandler *handler.PageHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(log.EchoMiddleware())
	e.Use(middleware.Recover())

	e.Validator = NewValidator()

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	requireToken := echojwt.WithConfig(JWTConfig(cfg.JWTSecret))

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.GET("/categories", specialtyHandler.ListCategories)

	// Secured routes (require JWT authentication)
	secured := api.Group("", requireToken, session.Middleware())

	secured.POST("/auth/logout", authHandler.Logout)
	secured.GET("/me", func(c echo.Context) error {
		claims, ok := auth.ClaimsFromContext(c.Request().Context())
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		return c.JSON(http.StatusOK, echo.Map{"user_id": claims.UserID, "email": claims.Email})
	})

	// Specialty routes
	secured.GET("/specialties", specialtyHandler.GetPanel)
	secured.POST("/specialties", specialtyHandler.AddSpecialty)
	secured.PUT("/specialties/form", specialtyHandler.UpdateForm)
	secured.DELETE("/specialties/:id", specialtyHandler.RemoveSpecialty)
	secured.GET("/notifications", specialtyHandler.DrainNotifications)

	// HTML pages, cookie session with CSRF protected forms
	csrf := middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup:    "form:_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSameSite: http.SameSiteLaxMode,
	})
	page := []echo.MiddlewareFunc{csrf, redirectToLogin, authHandler.RenewSession, requireToken, session.Middleware()}

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/specialties")
	})
	e.GET("/login", pageHandler.LoginForm, csrf)
	e.POST("/login", pageHandler.Login, csrf)
	e.POST("/logout", pageHandler.Logout, page...)
	e.GET("/specialties", pageHandler.Specialties, page...)
	e.POST("/specialties", pageHandler.AddSpecialty, page...)
	e.POST("/specialties/:id/remove", pageHandler.RemoveSpecialty, page...)
}

// JWTConfig accepts the access token from the Authorization header or the
// session cookie and parses it into auth.Claims.
func JWTConfig(secret string) echojwt.Config {
	return echojwt.Config{
		SigningKey:  []byte(secret),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ,cookie:" + handler.AccessTokenCookie,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: "missing or invalid token",
				Code:  "UNAUTHENTICATED",
			})
		},
	}
}

// redirectToLogin turns a 401 from the auth middlewares into a redirect.
func redirectToLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code == http.StatusUnauthorized {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return err
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns a validator that also understands the "category" tag.
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		_, ok := model.ParseCategory(strings.TrimSpace(fl.Field().String()))
		return ok
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
