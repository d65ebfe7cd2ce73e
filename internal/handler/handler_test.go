package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"specialties/internal/auth"
	"specialties/internal/model"
	"specialties/internal/notify"
	"specialties/internal/panel"
	"specialties/internal/router"
)

// memStore is an owner-scoped in-memory store, newest row first.
type memStore struct {
	mu         sync.Mutex
	rows       []model.Specialty
	failCreate error
	failDelete error
}

func (s *memStore) List(context.Context) ([]model.Specialty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Specialty, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

func (s *memStore) Create(_ context.Context, sp *model.Specialty) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreate != nil {
		return s.failCreate
	}
	sp.ID = uuid.New()
	sp.CreatedAt = time.Now()
	s.rows = append([]model.Specialty{*sp}, s.rows...)
	return nil
}

func (s *memStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDelete != nil {
		return s.failDelete
	}
	for i, r := range s.rows {
		if r.ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			break
		}
	}
	return nil
}

func (s *memStore) seed(category model.Category, years int) uuid.UUID {
	sp := &model.Specialty{Category: category, ExperienceYears: years}
	_ = s.Create(context.Background(), sp)
	return sp.ID
}

type fixedSession struct{ id uuid.UUID }

func (f fixedSession) CurrentUser(context.Context) (uuid.UUID, bool) {
	return f.id, true
}

type env struct {
	userID uuid.UUID
	store  *memStore
	toasts *notify.Memory
	panels *panel.Registry
	echo   *echo.Echo
}

func newEnv(t *testing.T) *env {
	t.Helper()
	userID := uuid.New()
	store := &memStore{}
	toasts := notify.NewMemory()

	e := echo.New()
	e.Validator = router.NewValidator()

	return &env{
		userID: userID,
		store:  store,
		toasts: toasts,
		echo:   e,
		panels: panel.NewRegistry(panel.Deps{
			Stores: func(uuid.UUID) panel.Store { return store },
			Notifiers: func(id uuid.UUID) panel.Notifier {
				return notify.For(toasts, id, zerolog.Nop())
			},
			Session: fixedSession{id: userID},
			Logger:  zerolog.Nop(),
		}),
	}
}

func (e *env) claims() *auth.Claims {
	return &auth.Claims{UserID: e.userID.String(), Email: "provider@example.com", TokenType: auth.TokenTypeAccess}
}

// jsonRequest builds a request signed in as the env user.
func (e *env) jsonRequest(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req = req.WithContext(auth.ContextWithClaims(req.Context(), e.claims()))
	rec := httptest.NewRecorder()
	return e.echo.NewContext(req, rec), rec
}

// formRequest builds a signed in form post.
func (e *env) formRequest(target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req = req.WithContext(auth.ContextWithClaims(req.Context(), e.claims()))
	rec := httptest.NewRecorder()
	return e.echo.NewContext(req, rec), rec
}

func (e *env) drain(t *testing.T) []notify.Toast {
	t.Helper()
	toasts, err := e.toasts.Drain(context.Background(), e.userID)
	require.NoError(t, err)
	return toasts
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he), "expected *echo.HTTPError, got %v", err)
	return he.Code
}

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, password, name string) (*model.User, error) {
	args := m.Called(ctx, email, password, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, string, *model.User, error) {
	args := m.Called(ctx, email, password)
	var user *model.User
	if u := args.Get(2); u != nil {
		user = u.(*model.User)
	}
	return args.String(0), args.String(1), user, args.Error(3)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, refreshToken string, access *auth.Claims) error {
	args := m.Called(ctx, refreshToken, access)
	return args.Error(0)
}

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
