// file: internals/features/approvals/exams/model/exam_permit_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================================
   ENUMS
========================================================= */

type ExamTerm string

const (
	ExamTermPrelim   ExamTerm = "prelim"
	ExamTermMidterm  ExamTerm = "midterm"
	ExamTermPrefinal ExamTerm = "prefinal"
	ExamTermFinal    ExamTerm = "final"
)

type PermitStatus string

const (
	PermitStatusPending  PermitStatus = "pending"
	PermitStatusApproved PermitStatus = "approved"
	PermitStatusDenied   PermitStatus = "denied"
)

/* =========================================================
   MODEL — exam_permits

   The paid amount is snapshotted when the permit is filed
   and never refreshed: the approval judges the money that
   was in when the student queued, not whatever trickled in
   later. One permit per ledger and term.
========================================================= */

type ExamPermit struct {
	ExamPermitID uuid.UUID `gorm:"column:exam_permit_id;type:uuid;default:gen_random_uuid();primaryKey" json:"exam_permit_id"`

	ExamPermitLedgerID uuid.UUID `gorm:"column:exam_permit_ledger_id;type:uuid;not null;uniqueIndex:uniq_permit_ledger_term,priority:1" json:"exam_permit_ledger_id"`
	ExamPermitTerm     ExamTerm  `gorm:"column:exam_permit_term;type:varchar(10);not null;uniqueIndex:uniq_permit_ledger_term,priority:2" json:"exam_permit_term"`

	ExamPermitRequiredCentavos int64 `gorm:"column:exam_permit_required_centavos;not null;check:exam_permit_required_centavos > 0" json:"exam_permit_required_centavos"`
	ExamPermitPaidCentavos     int64 `gorm:"column:exam_permit_paid_centavos;not null;default:0" json:"exam_permit_paid_centavos"`

	ExamPermitStatus PermitStatus `gorm:"column:exam_permit_status;type:varchar(10);not null;default:'pending';index" json:"exam_permit_status"`

	ExamPermitDecidedByUserID *uuid.UUID `gorm:"column:exam_permit_decided_by_user_id;type:uuid" json:"exam_permit_decided_by_user_id,omitempty"`
	ExamPermitDecidedAt       *time.Time `gorm:"column:exam_permit_decided_at" json:"exam_permit_decided_at,omitempty"`
	ExamPermitRemarks         *string    `gorm:"column:exam_permit_remarks;type:text" json:"exam_permit_remarks,omitempty"`

	ExamPermitCreatedAt time.Time      `gorm:"column:exam_permit_created_at;not null;default:now()" json:"exam_permit_created_at"`
	ExamPermitUpdatedAt time.Time      `gorm:"column:exam_permit_updated_at;not null;default:now()" json:"exam_permit_updated_at"`
	ExamPermitDeletedAt gorm.DeletedAt `gorm:"column:exam_permit_deleted_at;index" json:"exam_permit_deleted_at,omitempty"`
}

func (ExamPermit) TableName() string { return "exam_permits" }

func (m *ExamPermit) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.ExamPermitCreatedAt.IsZero() {
		m.ExamPermitCreatedAt = now
	}
	m.ExamPermitUpdatedAt = now
	return nil
}

func (m *ExamPermit) BeforeUpdate(tx *gorm.DB) error {
	m.ExamPermitUpdatedAt = time.Now()
	return nil
}

// MeetsRequirement is the approval rule: paying exactly the required
// amount is enough.
func (m *ExamPermit) MeetsRequirement() bool {
	return m.ExamPermitPaidCentavos >= m.ExamPermitRequiredCentavos
}
