package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================================
   ENUM — payment method
========================================================= */

type PaymentMethod string

const (
	PaymentMethodCash       PaymentMethod = "cash"
	PaymentMethodCheck      PaymentMethod = "check"
	PaymentMethodOnline     PaymentMethod = "online"
	PaymentMethodAdjustment PaymentMethod = "adjustment"
)

/* =========================================================
   MODEL — ledger_payments

   Append-only. A correction is a new negative-amount row
   pointing at the original via reverses_payment_id; history
   is never edited or deleted.
========================================================= */

type LedgerPayment struct {
	LedgerPaymentID uuid.UUID `gorm:"column:ledger_payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"ledger_payment_id"`

	LedgerPaymentLedgerID uuid.UUID `gorm:"column:ledger_payment_ledger_id;type:uuid;not null;index" json:"ledger_payment_ledger_id"`

	// negative only on reversal rows
	LedgerPaymentAmountCentavos int64         `gorm:"column:ledger_payment_amount_centavos;not null" json:"ledger_payment_amount_centavos"`
	LedgerPaymentMethod         PaymentMethod `gorm:"column:ledger_payment_method;type:varchar(20);not null;default:'cash'" json:"ledger_payment_method"`
	LedgerPaymentReference      *string       `gorm:"column:ledger_payment_reference;type:varchar(120)" json:"ledger_payment_reference,omitempty"`

	LedgerPaymentReversesPaymentID *uuid.UUID `gorm:"column:ledger_payment_reverses_payment_id;type:uuid;index" json:"ledger_payment_reverses_payment_id,omitempty"`
	LedgerPaymentReversalReason    *string    `gorm:"column:ledger_payment_reversal_reason;type:text" json:"ledger_payment_reversal_reason,omitempty"`

	LedgerPaymentRecordedByUserID uuid.UUID `gorm:"column:ledger_payment_recorded_by_user_id;type:uuid;not null" json:"ledger_payment_recorded_by_user_id"`
	LedgerPaymentRecordedAt       time.Time `gorm:"column:ledger_payment_recorded_at;not null;default:now();index" json:"ledger_payment_recorded_at"`

	LedgerPaymentCreatedAt time.Time `gorm:"column:ledger_payment_created_at;not null;default:now()" json:"ledger_payment_created_at"`
}

func (LedgerPayment) TableName() string { return "ledger_payments" }

func (m *LedgerPayment) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.LedgerPaymentRecordedAt.IsZero() {
		m.LedgerPaymentRecordedAt = now
	}
	if m.LedgerPaymentCreatedAt.IsZero() {
		m.LedgerPaymentCreatedAt = now
	}
	return nil
}

func (m *LedgerPayment) IsReversal() bool {
	return m.LedgerPaymentReversesPaymentID != nil
}
