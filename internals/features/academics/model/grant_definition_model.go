package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GrantDefinition is the scholarship/discount catalog. Instances applied to a
// student ledger live in student_ledger_grants (finance/ledger).
type GrantDefinition struct {
	GrantID   uuid.UUID `gorm:"column:grant_id;type:uuid;default:gen_random_uuid();primaryKey" json:"grant_id"`
	GrantName string    `gorm:"column:grant_name;type:varchar(120);not null;uniqueIndex" json:"grant_name"`

	// default discount suggested when attaching; the instance row carries the
	// amount actually applied
	GrantDefaultAmountCentavos *int64 `gorm:"column:grant_default_amount_centavos;check:grant_default_amount_centavos>=0" json:"grant_default_amount_centavos,omitempty"`

	GrantSponsor  *string `gorm:"column:grant_sponsor;type:varchar(120)" json:"grant_sponsor,omitempty"`
	GrantIsActive bool    `gorm:"column:grant_is_active;not null;default:true;index" json:"grant_is_active"`

	GrantCreatedAt time.Time      `gorm:"column:grant_created_at;not null;default:now()" json:"grant_created_at"`
	GrantUpdatedAt time.Time      `gorm:"column:grant_updated_at;not null;default:now()" json:"grant_updated_at"`
	GrantDeletedAt gorm.DeletedAt `gorm:"column:grant_deleted_at;index" json:"-"`
}

func (GrantDefinition) TableName() string { return "grants" }

func (m *GrantDefinition) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.GrantCreatedAt.IsZero() {
		m.GrantCreatedAt = now
	}
	m.GrantUpdatedAt = now
	return nil
}

func (m *GrantDefinition) BeforeUpdate(tx *gorm.DB) error {
	m.GrantUpdatedAt = time.Now()
	return nil
}
