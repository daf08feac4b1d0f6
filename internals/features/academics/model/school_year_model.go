package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SchoolYear struct {
	SchoolYearID uuid.UUID `gorm:"column:school_year_id;type:uuid;default:gen_random_uuid();primaryKey" json:"school_year_id"`

	// e.g. "2025-2026"
	SchoolYearLabel    string `gorm:"column:school_year_label;type:varchar(20);not null;uniqueIndex" json:"school_year_label"`
	SchoolYearIsActive bool   `gorm:"column:school_year_is_active;not null;default:false;index" json:"school_year_is_active"`

	SchoolYearCreatedAt time.Time      `gorm:"column:school_year_created_at;not null;default:now()" json:"school_year_created_at"`
	SchoolYearUpdatedAt time.Time      `gorm:"column:school_year_updated_at;not null;default:now()" json:"school_year_updated_at"`
	SchoolYearDeletedAt gorm.DeletedAt `gorm:"column:school_year_deleted_at;index" json:"-"`
}

func (SchoolYear) TableName() string { return "school_years" }

func (m *SchoolYear) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.SchoolYearCreatedAt.IsZero() {
		m.SchoolYearCreatedAt = now
	}
	m.SchoolYearUpdatedAt = now
	return nil
}

func (m *SchoolYear) BeforeUpdate(tx *gorm.DB) error {
	m.SchoolYearUpdatedAt = time.Now()
	return nil
}
