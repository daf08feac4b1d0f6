package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================================
   ENUM — payment status (derived, recomputed in-tx)
========================================================= */

type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

/* =========================================================
   MODEL — student_ledgers

   One row per (student, school year). Fee line items and
   total_paid are raw fields; balance is derived only and
   never stored. total_paid changes exclusively through the
   payment recorder.
========================================================= */

type StudentLedger struct {
	StudentLedgerID uuid.UUID `gorm:"column:student_ledger_id;type:uuid;default:gen_random_uuid();primaryKey" json:"student_ledger_id"`

	StudentLedgerStudentID    uuid.UUID `gorm:"column:student_ledger_student_id;type:uuid;not null;index;uniqueIndex:uniq_student_year,priority:1" json:"student_ledger_student_id"`
	StudentLedgerSchoolYearID uuid.UUID `gorm:"column:student_ledger_school_year_id;type:uuid;not null;index;uniqueIndex:uniq_student_year,priority:2" json:"student_ledger_school_year_id"`

	// Assessed fee line items (each >= 0)
	StudentLedgerRegistrationFeeCentavos int64 `gorm:"column:student_ledger_registration_fee_centavos;not null;default:0;check:student_ledger_registration_fee_centavos>=0" json:"student_ledger_registration_fee_centavos"`
	StudentLedgerTuitionFeeCentavos      int64 `gorm:"column:student_ledger_tuition_fee_centavos;not null;default:0;check:student_ledger_tuition_fee_centavos>=0" json:"student_ledger_tuition_fee_centavos"`
	StudentLedgerMiscFeeCentavos         int64 `gorm:"column:student_ledger_misc_fee_centavos;not null;default:0;check:student_ledger_misc_fee_centavos>=0" json:"student_ledger_misc_fee_centavos"`
	StudentLedgerBooksFeeCentavos        int64 `gorm:"column:student_ledger_books_fee_centavos;not null;default:0;check:student_ledger_books_fee_centavos>=0" json:"student_ledger_books_fee_centavos"`
	StudentLedgerOtherFeeCentavos        int64 `gorm:"column:student_ledger_other_fee_centavos;not null;default:0;check:student_ledger_other_fee_centavos>=0" json:"student_ledger_other_fee_centavos"`

	// Sum of applied grant instances; recomputed from student_ledger_grants
	// inside the same tx as any attach/detach
	StudentLedgerGrantDiscountCentavos int64 `gorm:"column:student_ledger_grant_discount_centavos;not null;default:0;check:student_ledger_grant_discount_centavos>=0" json:"student_ledger_grant_discount_centavos"`

	// Fold over ledger_payments; written only by the payment recorder
	StudentLedgerTotalPaidCentavos int64 `gorm:"column:student_ledger_total_paid_centavos;not null;default:0" json:"student_ledger_total_paid_centavos"`

	StudentLedgerPaymentStatus PaymentStatus `gorm:"column:student_ledger_payment_status;type:varchar(10);not null;default:'unpaid';index" json:"student_ledger_payment_status"`

	StudentLedgerIsOverdue    bool       `gorm:"column:student_ledger_is_overdue;not null;default:false;index" json:"student_ledger_is_overdue"`
	StudentLedgerOverdueSince *time.Time `gorm:"column:student_ledger_overdue_since" json:"student_ledger_overdue_since,omitempty"`
	StudentLedgerDueDate      *time.Time `gorm:"column:student_ledger_due_date;type:date" json:"student_ledger_due_date,omitempty"`

	StudentLedgerCreatedAt time.Time      `gorm:"column:student_ledger_created_at;not null;default:now();index" json:"student_ledger_created_at"`
	StudentLedgerUpdatedAt time.Time      `gorm:"column:student_ledger_updated_at;not null;default:now()" json:"student_ledger_updated_at"`
	StudentLedgerDeletedAt gorm.DeletedAt `gorm:"column:student_ledger_deleted_at;index" json:"-"`
}

func (StudentLedger) TableName() string { return "student_ledgers" }

func (m *StudentLedger) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.StudentLedgerCreatedAt.IsZero() {
		m.StudentLedgerCreatedAt = now
	}
	m.StudentLedgerUpdatedAt = now
	return nil
}

func (m *StudentLedger) BeforeUpdate(tx *gorm.DB) error {
	m.StudentLedgerUpdatedAt = time.Now()
	return nil
}

/* =========================================================
   Derivations (pure)
========================================================= */

func (m *StudentLedger) TotalAssessedCentavos() int64 {
	return m.StudentLedgerRegistrationFeeCentavos +
		m.StudentLedgerTuitionFeeCentavos +
		m.StudentLedgerMiscFeeCentavos +
		m.StudentLedgerBooksFeeCentavos +
		m.StudentLedgerOtherFeeCentavos
}

// BalanceCentavos = max(assessed - discount - paid, 0). Never persisted.
func (m *StudentLedger) BalanceCentavos() int64 {
	return Balance(m.TotalAssessedCentavos(), m.StudentLedgerGrantDiscountCentavos, m.StudentLedgerTotalPaidCentavos)
}

func Balance(assessed, discount, paid int64) int64 {
	b := assessed - discount - paid
	if b < 0 {
		return 0
	}
	return b
}

// DerivePaymentStatus: paid iff balance == 0, unpaid iff nothing paid, else partial.
func DerivePaymentStatus(assessed, discount, paid int64) PaymentStatus {
	if Balance(assessed, discount, paid) == 0 {
		return PaymentStatusPaid
	}
	if paid == 0 {
		return PaymentStatusUnpaid
	}
	return PaymentStatusPartial
}

// Recompute refreshes the derived status from the raw fields. Must be called
// inside the same transaction as the raw-field mutation.
func (m *StudentLedger) Recompute() {
	m.StudentLedgerPaymentStatus = DerivePaymentStatus(
		m.TotalAssessedCentavos(),
		m.StudentLedgerGrantDiscountCentavos,
		m.StudentLedgerTotalPaidCentavos,
	)
}
