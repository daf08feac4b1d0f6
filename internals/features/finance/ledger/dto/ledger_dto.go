package dto

import (
	"time"

	"github.com/google/uuid"

	"campushub_backend/internals/features/finance/ledger/model"
)

////////////////////////////////////////////////////////////////////////////////
// STUDENT LEDGERS — DTO
////////////////////////////////////////////////////////////////////////////////

type LedgerCreateDTO struct {
	StudentID    uuid.UUID `json:"student_id" validate:"required"`
	SchoolYearID uuid.UUID `json:"school_year_id" validate:"required"`
}

// Assessment (full set of fee components; absent = 0)
type AssessmentDTO struct {
	RegistrationFeeCentavos int64      `json:"registration_fee_centavos" validate:"min=0"`
	TuitionFeeCentavos      int64      `json:"tuition_fee_centavos" validate:"min=0"`
	MiscFeeCentavos         int64      `json:"misc_fee_centavos" validate:"min=0"`
	BooksFeeCentavos        int64      `json:"books_fee_centavos" validate:"min=0"`
	OtherFeeCentavos        int64      `json:"other_fee_centavos" validate:"min=0"`
	DueDate                 *time.Time `json:"due_date,omitempty"`
}

type ApplyGrantDTO struct {
	GrantID        uuid.UUID `json:"grant_id" validate:"required"`
	AmountCentavos int64     `json:"amount_centavos" validate:"required,gt=0"`
}

type RecordPaymentDTO struct {
	AmountCentavos int64  `json:"amount_centavos" validate:"required,gt=0"`
	Method         string `json:"method" validate:"required,oneof=cash check online adjustment"`
	Reference      string `json:"reference,omitempty"`
}

type ReversePaymentDTO struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

////////////////////////////////////////////////////////////////////////////////
// RESPONSES
////////////////////////////////////////////////////////////////////////////////

type LedgerResponse struct {
	StudentLedgerID uuid.UUID `json:"student_ledger_id"`
	StudentID       uuid.UUID `json:"student_id"`
	SchoolYearID    uuid.UUID `json:"school_year_id"`

	RegistrationFeeCentavos int64 `json:"registration_fee_centavos"`
	TuitionFeeCentavos      int64 `json:"tuition_fee_centavos"`
	MiscFeeCentavos         int64 `json:"misc_fee_centavos"`
	BooksFeeCentavos        int64 `json:"books_fee_centavos"`
	OtherFeeCentavos        int64 `json:"other_fee_centavos"`

	TotalAssessedCentavos int64 `json:"total_assessed_centavos"`
	GrantDiscountCentavos int64 `json:"grant_discount_centavos"`
	TotalPaidCentavos     int64 `json:"total_paid_centavos"`
	BalanceCentavos       int64 `json:"balance_centavos"`

	PaymentStatus string     `json:"payment_status"`
	IsOverdue     bool       `json:"is_overdue"`
	OverdueSince  *time.Time `json:"overdue_since,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BalanceResponse struct {
	StudentLedgerID       uuid.UUID `json:"student_ledger_id"`
	TotalAssessedCentavos int64     `json:"total_assessed_centavos"`
	GrantDiscountCentavos int64     `json:"grant_discount_centavos"`
	TotalPaidCentavos     int64     `json:"total_paid_centavos"`
	BalanceCentavos       int64     `json:"balance_centavos"`
	PaymentStatus         string    `json:"payment_status"`
}

type PaymentResponse struct {
	LedgerPaymentID   uuid.UUID  `json:"ledger_payment_id"`
	LedgerID          uuid.UUID  `json:"ledger_id"`
	AmountCentavos    int64      `json:"amount_centavos"`
	Method            string     `json:"method"`
	Reference         *string    `json:"reference,omitempty"`
	ReversesPaymentID *uuid.UUID `json:"reverses_payment_id,omitempty"`
	ReversalReason    *string    `json:"reversal_reason,omitempty"`
	RecordedByUserID  uuid.UUID  `json:"recorded_by_user_id"`
	RecordedAt        time.Time  `json:"recorded_at"`
}

type AppliedGrantResponse struct {
	StudentLedgerGrantID uuid.UUID `json:"student_ledger_grant_id"`
	GrantID              uuid.UUID `json:"grant_id"`
	AmountCentavos       int64     `json:"amount_centavos"`
	AppliedByUserID      uuid.UUID `json:"applied_by_user_id"`
	AppliedAt            time.Time `json:"applied_at"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func ToLedgerResponse(m model.StudentLedger) LedgerResponse {
	return LedgerResponse{
		StudentLedgerID:         m.StudentLedgerID,
		StudentID:               m.StudentLedgerStudentID,
		SchoolYearID:            m.StudentLedgerSchoolYearID,
		RegistrationFeeCentavos: m.StudentLedgerRegistrationFeeCentavos,
		TuitionFeeCentavos:      m.StudentLedgerTuitionFeeCentavos,
		MiscFeeCentavos:         m.StudentLedgerMiscFeeCentavos,
		BooksFeeCentavos:        m.StudentLedgerBooksFeeCentavos,
		OtherFeeCentavos:        m.StudentLedgerOtherFeeCentavos,
		TotalAssessedCentavos:   m.TotalAssessedCentavos(),
		GrantDiscountCentavos:   m.StudentLedgerGrantDiscountCentavos,
		TotalPaidCentavos:       m.StudentLedgerTotalPaidCentavos,
		BalanceCentavos:         m.BalanceCentavos(),
		PaymentStatus:           string(m.StudentLedgerPaymentStatus),
		IsOverdue:               m.StudentLedgerIsOverdue,
		OverdueSince:            m.StudentLedgerOverdueSince,
		DueDate:                 m.StudentLedgerDueDate,
		CreatedAt:               m.StudentLedgerCreatedAt,
		UpdatedAt:               m.StudentLedgerUpdatedAt,
	}
}

func ToLedgerResponses(list []model.StudentLedger) []LedgerResponse {
	out := make([]LedgerResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToLedgerResponse(m))
	}
	return out
}

func ToBalanceResponse(m model.StudentLedger) BalanceResponse {
	return BalanceResponse{
		StudentLedgerID:       m.StudentLedgerID,
		TotalAssessedCentavos: m.TotalAssessedCentavos(),
		GrantDiscountCentavos: m.StudentLedgerGrantDiscountCentavos,
		TotalPaidCentavos:     m.StudentLedgerTotalPaidCentavos,
		BalanceCentavos:       m.BalanceCentavos(),
		PaymentStatus:         string(m.StudentLedgerPaymentStatus),
	}
}

func ToPaymentResponse(m model.LedgerPayment) PaymentResponse {
	return PaymentResponse{
		LedgerPaymentID:   m.LedgerPaymentID,
		LedgerID:          m.LedgerPaymentLedgerID,
		AmountCentavos:    m.LedgerPaymentAmountCentavos,
		Method:            string(m.LedgerPaymentMethod),
		Reference:         m.LedgerPaymentReference,
		ReversesPaymentID: m.LedgerPaymentReversesPaymentID,
		ReversalReason:    m.LedgerPaymentReversalReason,
		RecordedByUserID:  m.LedgerPaymentRecordedByUserID,
		RecordedAt:        m.LedgerPaymentRecordedAt,
	}
}

func ToPaymentResponses(list []model.LedgerPayment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToPaymentResponse(m))
	}
	return out
}

func ToAppliedGrantResponse(m model.StudentLedgerGrant) AppliedGrantResponse {
	return AppliedGrantResponse{
		StudentLedgerGrantID: m.StudentLedgerGrantID,
		GrantID:              m.StudentLedgerGrantGrantID,
		AmountCentavos:       m.StudentLedgerGrantAmountCentavos,
		AppliedByUserID:      m.StudentLedgerGrantAppliedByUserID,
		AppliedAt:            m.StudentLedgerGrantCreatedAt,
	}
}

func ToAppliedGrantResponses(list []model.StudentLedgerGrant) []AppliedGrantResponse {
	out := make([]AppliedGrantResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToAppliedGrantResponse(m))
	}
	return out
}
