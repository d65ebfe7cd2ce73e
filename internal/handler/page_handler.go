package handler

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"specialties/internal/notify"
	"specialties/internal/panel"
	"specialties/internal/service"
	"specialties/internal/web"
)

// PageHandler serves the server-rendered provider pages.
type PageHandler struct {
	auth   *AuthHandler
	panels *panel.Registry
	toasts notify.Sink
	log    zerolog.Logger
}

// NewPageHandler creates a new page handler.
func NewPageHandler(authHandler *AuthHandler, panels *panel.Registry, toasts notify.Sink, log zerolog.Logger) *PageHandler {
	return &PageHandler{auth: authHandler, panels: panels, toasts: toasts, log: log}
}

// Specialties renders the panel together with pending toasts.
func (h *PageHandler) Specialties(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	ctx := c.Request().Context()
	p := h.panels.Get(ctx, userID)

	toasts, err := h.toasts.Drain(ctx, userID)
	if err != nil {
		h.log.Warn().Err(err).Str("user_id", userID.String()).Msg("drain toasts")
	}

	return render(c, http.StatusOK, func(buf *bytes.Buffer) error {
		return web.RenderSpecialties(buf, web.SpecialtiesPage{
			View:      p.View(),
			Toasts:    toasts,
			CSRFToken: csrfToken(c),
		})
	})
}

// AddSpecialty handles the add form. The outcome reaches the user as a toast
// on the page it redirects to.
func (h *PageHandler) AddSpecialty(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	p := h.panels.Get(c.Request().Context(), userID)

	p.SetForm(c.FormValue("category"), c.FormValue("experience"))
	if err := p.Add(c.Request().Context()); err != nil {
		h.log.Debug().Err(err).Str("user_id", userID.String()).Msg("add specialty rejected")
	}
	return c.Redirect(http.StatusSeeOther, "/specialties")
}

// RemoveSpecialty handles a badge's remove button.
func (h *PageHandler) RemoveSpecialty(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/specialties")
	}
	p := h.panels.Get(c.Request().Context(), userID)

	if err := p.Remove(c.Request().Context(), id); err != nil {
		h.log.Debug().Err(err).Str("user_id", userID.String()).Msg("remove specialty rejected")
	}
	return c.Redirect(http.StatusSeeOther, "/specialties")
}

// LoginForm renders the sign-in page.
func (h *PageHandler) LoginForm(c echo.Context) error {
	return h.renderLogin(c, http.StatusOK, web.LoginPage{})
}

// Login signs the provider in and sets the session cookies.
func (h *PageHandler) Login(c echo.Context) error {
	email := c.FormValue("email")
	password := c.FormValue("password")
	if email == "" || password == "" {
		return h.renderLogin(c, http.StatusBadRequest, web.LoginPage{Error: "Email and password are required", Email: email})
	}

	accessToken, refreshToken, _, err := h.auth.authService.Login(c.Request().Context(), email, password)
	if err != nil {
		msg := "Sign in failed, please try again"
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrInvalidCredentials) {
			msg = "Invalid email or password"
			status = http.StatusUnauthorized
		}
		return h.renderLogin(c, status, web.LoginPage{Error: msg, Email: email})
	}

	h.auth.setSessionCookies(c, accessToken, refreshToken)
	return c.Redirect(http.StatusSeeOther, "/specialties")
}

// Logout revokes the browser session and returns to the sign-in page.
func (h *PageHandler) Logout(c echo.Context) error {
	if ck, err := c.Cookie(RefreshTokenCookie); err == nil && ck.Value != "" {
		if err := h.auth.logout(c, ck.Value); err != nil {
			h.log.Warn().Err(err).Msg("logout")
		}
	}
	h.auth.clearSessionCookies(c)
	return c.Redirect(http.StatusSeeOther, "/login")
}

func (h *PageHandler) renderLogin(c echo.Context, status int, page web.LoginPage) error {
	page.CSRFToken = csrfToken(c)
	return render(c, status, func(buf *bytes.Buffer) error {
		return web.RenderLogin(buf, page)
	})
}

// render buffers the page so a template error never leaves a half-written body.
func render(c echo.Context, status int, fn func(*bytes.Buffer) error) error {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return err
	}
	return c.HTMLBlob(status, buf.Bytes())
}
