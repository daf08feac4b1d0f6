// file: internals/features/approvals/exams/dto/exam_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"campushub_backend/internals/features/approvals/exams/model"
)

type CreatePermitDTO struct {
	LedgerID         uuid.UUID `json:"ledger_id" validate:"required"`
	Term             string    `json:"term" validate:"required,oneof=prelim midterm prefinal final"`
	RequiredCentavos int64     `json:"required_centavos" validate:"required,gt=0"`
	Remarks          string    `json:"remarks" validate:"omitempty,max=500"`
}

type DenyPermitDTO struct {
	Remarks string `json:"remarks" validate:"required,min=3,max=500"`
}

type BulkApproveDTO struct {
	PermitIDs []uuid.UUID `json:"permit_ids" validate:"required,min=1,max=500,dive,required"`
}

type PermitResponse struct {
	ExamPermitID uuid.UUID `json:"exam_permit_id"`
	LedgerID     uuid.UUID `json:"ledger_id"`
	Term         string    `json:"term"`

	RequiredCentavos int64 `json:"required_centavos"`
	PaidCentavos     int64 `json:"paid_centavos"`

	Status          string     `json:"status"`
	DecidedByUserID *uuid.UUID `json:"decided_by_user_id,omitempty"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
	Remarks         *string    `json:"remarks,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToPermitResponse(m model.ExamPermit) PermitResponse {
	return PermitResponse{
		ExamPermitID:     m.ExamPermitID,
		LedgerID:         m.ExamPermitLedgerID,
		Term:             string(m.ExamPermitTerm),
		RequiredCentavos: m.ExamPermitRequiredCentavos,
		PaidCentavos:     m.ExamPermitPaidCentavos,
		Status:           string(m.ExamPermitStatus),
		DecidedByUserID:  m.ExamPermitDecidedByUserID,
		DecidedAt:        m.ExamPermitDecidedAt,
		Remarks:          m.ExamPermitRemarks,
		CreatedAt:        m.ExamPermitCreatedAt,
		UpdatedAt:        m.ExamPermitUpdatedAt,
	}
}

func ToPermitResponses(list []model.ExamPermit) []PermitResponse {
	out := make([]PermitResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToPermitResponse(m))
	}
	return out
}
