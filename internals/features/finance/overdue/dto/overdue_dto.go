// file: internals/features/finance/overdue/dto/overdue_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"campushub_backend/internals/features/finance/overdue/model"
)

type BulkMarkOverdueDTO struct {
	SchoolYearID   uuid.UUID  `json:"school_year_id" validate:"required"`
	DepartmentID   *uuid.UUID `json:"department_id,omitempty"`
	Classification string     `json:"classification,omitempty" validate:"omitempty,oneof=new old transferee"`
	YearLevels     []string   `json:"year_levels,omitempty" validate:"max=20,dive,min=1,max=20"`
	Cutoff         *time.Time `json:"cutoff,omitempty"`
}

type EscalationRunResponse struct {
	EscalationRunID uuid.UUID  `json:"escalation_run_id"`
	SchoolYearID    uuid.UUID  `json:"school_year_id"`
	DepartmentID    *uuid.UUID `json:"department_id,omitempty"`
	Classification  *string    `json:"classification,omitempty"`
	YearLevels      []string   `json:"year_levels,omitempty"`
	Cutoff          time.Time  `json:"cutoff"`

	CandidateCount int `json:"candidate_count"`
	MarkedCount    int `json:"marked_count"`
	SkippedCount   int `json:"skipped_count"`

	TriggeredByUserID uuid.UUID `json:"triggered_by_user_id"`
	CreatedAt         time.Time `json:"created_at"`
}

func ToEscalationRunResponse(m model.EscalationRun) EscalationRunResponse {
	return EscalationRunResponse{
		EscalationRunID:   m.EscalationRunID,
		SchoolYearID:      m.EscalationRunSchoolYearID,
		DepartmentID:      m.EscalationRunDepartmentID,
		Classification:    m.EscalationRunClassification,
		YearLevels:        m.EscalationRunYearLevels,
		Cutoff:            m.EscalationRunCutoff,
		CandidateCount:    m.EscalationRunCandidateCount,
		MarkedCount:       m.EscalationRunMarkedCount,
		SkippedCount:      m.EscalationRunSkippedCount,
		TriggeredByUserID: m.EscalationRunTriggeredByUserID,
		CreatedAt:         m.EscalationRunCreatedAt,
	}
}

func ToEscalationRunResponses(list []model.EscalationRun) []EscalationRunResponse {
	out := make([]EscalationRunResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToEscalationRunResponse(m))
	}
	return out
}
