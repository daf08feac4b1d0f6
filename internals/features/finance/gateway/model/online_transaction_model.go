// file: internals/features/finance/gateway/model/online_transaction_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================================================
   ENUMS
========================================================= */

type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "pending"
	TransactionStatusVerified TransactionStatus = "verified"
	TransactionStatusFailed   TransactionStatus = "failed"
	TransactionStatusRefunded TransactionStatus = "refunded"
)

type PaymentProvider string

const (
	ProviderGcash        PaymentProvider = "gcash"
	ProviderMaya         PaymentProvider = "maya"
	ProviderBankTransfer PaymentProvider = "bank_transfer"
	ProviderMidtrans     PaymentProvider = "midtrans"
	ProviderOther        PaymentProvider = "other"
)

/* =========================================================
   MODEL — online_transactions

   One row per payment attempt against a student ledger.
   The provider reference is unique so a replayed callback
   always lands on the same row.

   Transitions:
     pending  -> verified | failed
     verified -> refunded
   Everything else is rejected by the verifier.
========================================================= */

type OnlineTransaction struct {
	OnlineTransactionID uuid.UUID `gorm:"column:online_transaction_id;type:uuid;default:gen_random_uuid();primaryKey" json:"online_transaction_id"`

	OnlineTransactionLedgerID uuid.UUID `gorm:"column:online_transaction_ledger_id;type:uuid;not null;index" json:"online_transaction_ledger_id"`

	OnlineTransactionProvider  PaymentProvider `gorm:"column:online_transaction_provider;type:varchar(20);not null;default:'other'" json:"online_transaction_provider"`
	OnlineTransactionReference string          `gorm:"column:online_transaction_reference;type:varchar(120);not null;uniqueIndex:uniq_online_transaction_reference" json:"online_transaction_reference"`

	// gross is what the payer sent; net (gross - fee) is what the ledger is credited
	OnlineTransactionGrossCentavos int64 `gorm:"column:online_transaction_gross_centavos;not null;check:online_transaction_gross_centavos >= 0" json:"online_transaction_gross_centavos"`
	OnlineTransactionFeeCentavos   int64 `gorm:"column:online_transaction_fee_centavos;not null;default:0;check:online_transaction_fee_centavos >= 0" json:"online_transaction_fee_centavos"`
	OnlineTransactionNetCentavos   int64 `gorm:"column:online_transaction_net_centavos;not null;default:0" json:"online_transaction_net_centavos"`

	OnlineTransactionStatus TransactionStatus `gorm:"column:online_transaction_status;type:varchar(20);not null;default:'pending';index" json:"online_transaction_status"`

	// credit row written on verification; refund reverses exactly this payment
	OnlineTransactionPaymentID *uuid.UUID `gorm:"column:online_transaction_payment_id;type:uuid" json:"online_transaction_payment_id,omitempty"`

	OnlineTransactionFailureReason *string `gorm:"column:online_transaction_failure_reason;type:text" json:"online_transaction_failure_reason,omitempty"`
	OnlineTransactionRefundRemarks *string `gorm:"column:online_transaction_refund_remarks;type:text" json:"online_transaction_refund_remarks,omitempty"`

	OnlineTransactionMeta datatypes.JSON `gorm:"column:online_transaction_meta;type:jsonb" json:"online_transaction_meta,omitempty"`

	// per-transition stamps
	OnlineTransactionVerifiedAt       *time.Time `gorm:"column:online_transaction_verified_at" json:"online_transaction_verified_at,omitempty"`
	OnlineTransactionVerifiedByUserID *uuid.UUID `gorm:"column:online_transaction_verified_by_user_id;type:uuid" json:"online_transaction_verified_by_user_id,omitempty"`
	OnlineTransactionFailedAt         *time.Time `gorm:"column:online_transaction_failed_at" json:"online_transaction_failed_at,omitempty"`
	OnlineTransactionRefundedAt       *time.Time `gorm:"column:online_transaction_refunded_at" json:"online_transaction_refunded_at,omitempty"`
	OnlineTransactionRefundedByUserID *uuid.UUID `gorm:"column:online_transaction_refunded_by_user_id;type:uuid" json:"online_transaction_refunded_by_user_id,omitempty"`

	OnlineTransactionCreatedAt time.Time      `gorm:"column:online_transaction_created_at;not null;default:now()" json:"online_transaction_created_at"`
	OnlineTransactionUpdatedAt time.Time      `gorm:"column:online_transaction_updated_at;not null;default:now()" json:"online_transaction_updated_at"`
	OnlineTransactionDeletedAt gorm.DeletedAt `gorm:"column:online_transaction_deleted_at;index" json:"online_transaction_deleted_at,omitempty"`
}

func (OnlineTransaction) TableName() string { return "online_transactions" }

func (m *OnlineTransaction) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.OnlineTransactionCreatedAt.IsZero() {
		m.OnlineTransactionCreatedAt = now
	}
	m.OnlineTransactionUpdatedAt = now
	if m.OnlineTransactionNetCentavos == 0 {
		m.OnlineTransactionNetCentavos = m.OnlineTransactionGrossCentavos - m.OnlineTransactionFeeCentavos
	}
	return nil
}

func (m *OnlineTransaction) BeforeUpdate(tx *gorm.DB) error {
	m.OnlineTransactionUpdatedAt = time.Now()
	return nil
}

// CanTransitionTo reports whether the status machine allows moving
// from the current status to target.
func (m *OnlineTransaction) CanTransitionTo(target TransactionStatus) bool {
	switch m.OnlineTransactionStatus {
	case TransactionStatusPending:
		return target == TransactionStatusVerified || target == TransactionStatusFailed
	case TransactionStatusVerified:
		return target == TransactionStatusRefunded
	default:
		return false
	}
}
