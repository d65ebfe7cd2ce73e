package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "specialties/internal/errors"
	"specialties/internal/model"
)

// SpecialtyRepository defines specialty persistence operations.
type SpecialtyRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Specialty, error)
	Create(ctx context.Context, specialty *model.Specialty) error
	// CreateUnique inserts unless the user already has a row for the same category.
	CreateUnique(ctx context.Context, specialty *model.Specialty) error
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error
}

type specialtyRepository struct {
	db *gorm.DB
}

// NewSpecialtyRepository creates a new specialty repository.
func NewSpecialtyRepository(db *gorm.DB) SpecialtyRepository {
	return &specialtyRepository{db: db}
}

// ListByUser returns the user's specialties, most recent first. Rows created
// in the same instant are ordered by id so the order is stable.
func (r *specialtyRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Specialty, error) {
	var specialties []model.Specialty
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&specialties).Error; err != nil {
		return nil, err
	}
	return specialties, nil
}

// Create inserts a specialty. is_verified is left to the column default.
func (r *specialtyRepository) Create(ctx context.Context, specialty *model.Specialty) error {
	return r.db.WithContext(ctx).Omit("IsVerified").Create(specialty).Error
}

func (r *specialtyRepository) CreateUnique(ctx context.Context, specialty *model.Specialty) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Specialty{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND category = ?", specialty.UserID, specialty.Category).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperrors.ErrDuplicateCategory
		}
		return tx.Omit("IsVerified").Create(specialty).Error
	})
}

// DeleteForUser removes one specialty. A row owned by someone else is not
// visible to the caller, so deleting it affects nothing and is not an error.
func (r *specialtyRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Specialty{}).Error
}
