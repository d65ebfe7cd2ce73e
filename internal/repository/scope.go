package repository

import (
	"context"

	"github.com/google/uuid"

	apperrors "specialties/internal/errors"
	"specialties/internal/model"
)

// UniquenessPolicy decides who keeps one specialty per category per user.
type UniquenessPolicy string

const (
	// UniquenessClient leaves uniqueness to the category picker.
	UniquenessClient UniquenessPolicy = "client"
	// UniquenessStore makes the store reject duplicates.
	UniquenessStore UniquenessPolicy = "store"
)

// OwnerScope is the access policy of the specialties table: every read, insert
// and delete made through it only ever sees the rows of one owner. Callers
// above it do no row filtering of their own.
type OwnerScope struct {
	repo   SpecialtyRepository
	owner  uuid.UUID
	policy UniquenessPolicy
}

// NewOwnerScope binds repo to owner.
func NewOwnerScope(repo SpecialtyRepository, owner uuid.UUID, policy UniquenessPolicy) *OwnerScope {
	return &OwnerScope{repo: repo, owner: owner, policy: policy}
}

// Owner returns the user the scope is bound to.
func (s *OwnerScope) Owner() uuid.UUID {
	return s.owner
}

// List returns every visible specialty, most recent first.
func (s *OwnerScope) List(ctx context.Context) ([]model.Specialty, error) {
	return s.repo.ListByUser(ctx, s.owner)
}

// Create inserts specialty, which must be tagged with the scope owner.
func (s *OwnerScope) Create(ctx context.Context, specialty *model.Specialty) error {
	if specialty.UserID != s.owner {
		return apperrors.ErrAccessDenied
	}
	if s.policy == UniquenessStore {
		return s.repo.CreateUnique(ctx, specialty)
	}
	return s.repo.Create(ctx, specialty)
}

// Delete removes the specialty with the given id if the owner can see it.
func (s *OwnerScope) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteForUser(ctx, s.owner, id)
}
