package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Specialty links a provider to a service category and their years of experience.
// IsVerified is owned by an external verification process and never written here.
type Specialty struct {
	ID              uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID          uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index:idx_specialties_user_category"`
	Category        Category  `json:"category" gorm:"type:varchar(32);not null;index:idx_specialties_user_category"`
	ExperienceYears int       `json:"experience_years" gorm:"not null;default:0"`
	IsVerified      bool      `json:"is_verified" gorm:"not null;default:false"`
	CreatedAt       time.Time `json:"created_at" gorm:"index"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name.
func (Specialty) TableName() string {
	return "specialties"
}

// BeforeCreate sets UUID before creating the record.
func (s *Specialty) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
