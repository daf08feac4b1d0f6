// file: internals/features/finance/overdue/model/escalation_run_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

/* =========================================================
   MODEL — escalation_runs

   Audit row for every bulk overdue sweep. Single-ledger
   flag flips do not create runs.
========================================================= */

type EscalationRun struct {
	EscalationRunID uuid.UUID `gorm:"column:escalation_run_id;type:uuid;default:gen_random_uuid();primaryKey" json:"escalation_run_id"`

	EscalationRunSchoolYearID   uuid.UUID      `gorm:"column:escalation_run_school_year_id;type:uuid;not null;index" json:"escalation_run_school_year_id"`
	EscalationRunDepartmentID   *uuid.UUID     `gorm:"column:escalation_run_department_id;type:uuid" json:"escalation_run_department_id,omitempty"`
	EscalationRunClassification *string        `gorm:"column:escalation_run_classification;type:varchar(20)" json:"escalation_run_classification,omitempty"`
	EscalationRunYearLevels     pq.StringArray `gorm:"column:escalation_run_year_levels;type:text[]" json:"escalation_run_year_levels,omitempty"`

	// ledgers with a due date on or before the cutoff are candidates
	EscalationRunCutoff time.Time `gorm:"column:escalation_run_cutoff;not null" json:"escalation_run_cutoff"`

	EscalationRunCandidateCount int `gorm:"column:escalation_run_candidate_count;not null;default:0" json:"escalation_run_candidate_count"`
	EscalationRunMarkedCount    int `gorm:"column:escalation_run_marked_count;not null;default:0" json:"escalation_run_marked_count"`
	EscalationRunSkippedCount   int `gorm:"column:escalation_run_skipped_count;not null;default:0" json:"escalation_run_skipped_count"`

	EscalationRunTriggeredByUserID uuid.UUID `gorm:"column:escalation_run_triggered_by_user_id;type:uuid;not null" json:"escalation_run_triggered_by_user_id"`

	EscalationRunCreatedAt time.Time `gorm:"column:escalation_run_created_at;not null;default:now()" json:"escalation_run_created_at"`
}

func (EscalationRun) TableName() string { return "escalation_runs" }

func (m *EscalationRun) BeforeCreate(tx *gorm.DB) error {
	if m.EscalationRunCreatedAt.IsZero() {
		m.EscalationRunCreatedAt = time.Now()
	}
	return nil
}
