// Package panel holds the specialty manager a provider works with: the list of
// their specialties, the pending add form and the busy flag of an in-flight
// create. Rows are never filtered here; the Store handed to a panel is already
// scoped to its owner by the store's access policy.
package panel

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apperrors "specialties/internal/errors"
	"specialties/internal/model"
)

// Toast texts.
const (
	MsgAdded         = "Specialty added successfully!"
	MsgAddFailed     = "Failed to add specialty"
	MsgRemoved       = "Specialty removed successfully!"
	MsgRemoveFailed  = "Failed to remove specialty"
	MsgLoginRequired = "You must be logged in to add specialties"
	MsgDuplicate     = "You already offer this specialty"
)

// Store is the row-oriented view of the specialties table.
type Store interface {
	List(ctx context.Context) ([]model.Specialty, error)
	Create(ctx context.Context, specialty *model.Specialty) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Session resolves the authenticated user, if any.
type Session interface {
	CurrentUser(ctx context.Context) (uuid.UUID, bool)
}

// Notifier shows transient messages to the user.
type Notifier interface {
	Success(ctx context.Context, msg string)
	Error(ctx context.Context, msg string)
}

// Form holds the pending values of the add form. Experience is kept as typed.
type Form struct {
	Category   string `json:"category"`
	Experience string `json:"experience"`
}

func emptyForm() Form {
	return Form{Experience: "0"}
}

// Panel is one provider's specialty manager.
type Panel struct {
	store    Store
	session  Session
	notifier Notifier
	log      zerolog.Logger

	mu          sync.Mutex
	mounted     bool
	specialties []model.Specialty
	form        Form
	busy        bool
}

// New creates an unmounted panel with an empty list.
func New(store Store, session Session, notifier Notifier, log zerolog.Logger) *Panel {
	return &Panel{
		store:    store,
		session:  session,
		notifier: notifier,
		log:      log,
		form:     emptyForm(),
	}
}

// Mount loads the list the first time the panel is shown. A mount whose load
// failed is retried on the next call.
func (p *Panel) Mount(ctx context.Context) {
	p.mu.Lock()
	mounted := p.mounted
	p.mu.Unlock()
	if !mounted {
		p.Load(ctx)
	}
}

// Load replaces the list with every visible specialty, most recent first.
// On failure the error is logged and the previous list is kept.
func (p *Panel) Load(ctx context.Context) {
	rows, err := p.store.List(ctx)
	if err != nil {
		p.log.Error().Err(&apperrors.StoreError{Op: "select", Err: err}).
			Str("op", "load").
			Msg("load specialties")
		return
	}

	p.mu.Lock()
	p.specialties = rows
	p.mounted = true
	p.mu.Unlock()
}

// SetForm records the values currently entered in the add form.
func (p *Panel) SetForm(category, experience string) {
	p.mu.Lock()
	p.form = Form{Category: strings.TrimSpace(category), Experience: experience}
	p.mu.Unlock()
}

// Add creates a specialty from the pending form values.
func (p *Panel) Add(ctx context.Context) error {
	p.mu.Lock()
	if p.busy {
		p.mu.Unlock()
		return apperrors.ErrBusy
	}
	form := p.form
	if form.Category == "" {
		p.mu.Unlock()
		return apperrors.ErrNoCategory
	}
	category, ok := model.ParseCategory(form.Category)
	if !ok {
		p.mu.Unlock()
		return apperrors.ErrInvalidCategory
	}
	p.busy = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.busy = false
		p.mu.Unlock()
	}()

	userID, ok := p.session.CurrentUser(ctx)
	if !ok {
		p.notifier.Error(ctx, MsgLoginRequired)
		return apperrors.ErrUnauthenticated
	}

	specialty := &model.Specialty{
		UserID:          userID,
		Category:        category,
		ExperienceYears: ParseExperience(form.Experience),
	}
	if err := p.store.Create(ctx, specialty); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateCategory) {
			p.log.Warn().Str("op", "add").Str("category", string(category)).Msg("duplicate specialty rejected")
			p.notifier.Error(ctx, MsgDuplicate)
			return err
		}
		storeErr := &apperrors.StoreError{Op: "insert", Err: err}
		p.log.Error().Err(storeErr).
			Str("op", "add").
			Str("category", string(category)).
			Msg("add specialty")
		p.notifier.Error(ctx, MsgAddFailed)
		return storeErr
	}

	p.notifier.Success(ctx, MsgAdded)
	p.mu.Lock()
	p.form = emptyForm()
	p.mu.Unlock()
	p.Load(ctx)
	return nil
}

// Remove deletes a displayed specialty. Ids not in the current list are rejected
// without reaching the store.
func (p *Panel) Remove(ctx context.Context, id uuid.UUID) error {
	if !p.displays(id) {
		return apperrors.ErrUnknownSpecialty
	}

	if err := p.store.Delete(ctx, id); err != nil {
		storeErr := &apperrors.StoreError{Op: "delete", Err: err}
		p.log.Error().Err(storeErr).
			Str("op", "remove").
			Str("specialty_id", id.String()).
			Msg("remove specialty")
		p.notifier.Error(ctx, MsgRemoveFailed)
		return storeErr
	}

	p.notifier.Success(ctx, MsgRemoved)
	p.Load(ctx)
	return nil
}

func (p *Panel) displays(id uuid.UUID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, s := range p.specialties {
		if s.ID == id {
			return true
		}
	}
	return false
}

// View returns a snapshot of what the panel renders.
func (p *Panel) View() View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return BuildView(p.specialties, p.form, p.busy)
}

// ParseExperience converts the experience input to years. Empty or non-numeric
// input yields 0, as do negative numbers.
func ParseExperience(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
