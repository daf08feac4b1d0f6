package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	database "campushub_backend/internals/databases"
	"campushub_backend/internals/features/finance/ledger/model"
	"campushub_backend/internals/helpers/apperr"
)

/* =========================================================
   Payment Recorder

   The only legal writer of student_ledger_total_paid.
   Appends an immutable payment row and folds it into the
   ledger inside one locked transaction.
========================================================= */

type PaymentRecorder struct {
	DB *gorm.DB
}

func NewPaymentRecorder(db *gorm.DB) *PaymentRecorder { return &PaymentRecorder{DB: db} }

func (r *PaymentRecorder) Record(ctx context.Context, ledgerID uuid.UUID, amountCentavos int64, method model.PaymentMethod, reference string, actorID uuid.UUID) (*model.LedgerPayment, error) {
	var out *model.LedgerPayment
	err := database.WithRetry(r.DB.WithContext(ctx), func(tx *gorm.DB) error {
		p, err := r.RecordInTx(tx, ledgerID, amountCentavos, method, reference, actorID)
		if err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RecordInTx appends a payment within an existing transaction. The gateway
// verifier composes this into its own locked scope so a verification's state
// change and its ledger credit commit or abort together.
func (r *PaymentRecorder) RecordInTx(tx *gorm.DB, ledgerID uuid.UUID, amountCentavos int64, method model.PaymentMethod, reference string, actorID uuid.UUID) (*model.LedgerPayment, error) {
	if amountCentavos <= 0 {
		return nil, apperr.Validation("payment amount must be positive")
	}

	m, err := LockLedger(tx, ledgerID)
	if err != nil {
		return nil, err
	}

	p := model.LedgerPayment{
		LedgerPaymentLedgerID:         ledgerID,
		LedgerPaymentAmountCentavos:   amountCentavos,
		LedgerPaymentMethod:           method,
		LedgerPaymentRecordedByUserID: actorID,
	}
	if s := strings.TrimSpace(reference); s != "" {
		p.LedgerPaymentReference = &s
	}
	if err := tx.Create(&p).Error; err != nil {
		return nil, err
	}

	m.StudentLedgerTotalPaidCentavos += amountCentavos
	m.Recompute()
	if err := tx.Save(m).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRecorder) Reverse(ctx context.Context, ledgerID, originalPaymentID uuid.UUID, reason string, actorID uuid.UUID) (*model.LedgerPayment, error) {
	var out *model.LedgerPayment
	err := database.WithRetry(r.DB.WithContext(ctx), func(tx *gorm.DB) error {
		p, err := r.ReverseInTx(tx, ledgerID, originalPaymentID, reason, actorID)
		if err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReverseInTx inserts a negative correction row for the original payment.
// History is never edited; the auditable sum stays intact.
func (r *PaymentRecorder) ReverseInTx(tx *gorm.DB, ledgerID, originalPaymentID uuid.UUID, reason string, actorID uuid.UUID) (*model.LedgerPayment, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperr.Validation("reversal reason is required")
	}

	m, err := LockLedger(tx, ledgerID)
	if err != nil {
		return nil, err
	}

	var original model.LedgerPayment
	if err := tx.
		Where("ledger_payment_id = ? AND ledger_payment_ledger_id = ?", originalPaymentID, ledgerID).
		First(&original).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("original payment not found on this ledger")
		}
		return nil, err
	}
	if original.IsReversal() {
		return nil, apperr.Invariant("cannot reverse a reversal record")
	}

	var already int64
	if err := tx.Model(&model.LedgerPayment{}).
		Where("ledger_payment_reverses_payment_id = ?", originalPaymentID).
		Count(&already).Error; err != nil {
		return nil, err
	}
	if already > 0 {
		return nil, apperr.Invariant("payment already reversed")
	}

	rev := model.LedgerPayment{
		LedgerPaymentLedgerID:          ledgerID,
		LedgerPaymentAmountCentavos:    -original.LedgerPaymentAmountCentavos,
		LedgerPaymentMethod:            model.PaymentMethodAdjustment,
		LedgerPaymentReference:         original.LedgerPaymentReference,
		LedgerPaymentReversesPaymentID: &original.LedgerPaymentID,
		LedgerPaymentReversalReason:    &reason,
		LedgerPaymentRecordedByUserID:  actorID,
	}
	if err := tx.Create(&rev).Error; err != nil {
		return nil, err
	}

	m.StudentLedgerTotalPaidCentavos -= original.LedgerPaymentAmountCentavos
	m.Recompute()
	if err := tx.Save(m).Error; err != nil {
		return nil, err
	}
	return &rev, nil
}

// TotalPaid folds the payment history; used by tests and consistency checks.
func (r *PaymentRecorder) TotalPaid(ctx context.Context, ledgerID uuid.UUID) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&model.LedgerPayment{}).
		Where("ledger_payment_ledger_id = ?", ledgerID).
		Select("COALESCE(SUM(ledger_payment_amount_centavos), 0)").
		Scan(&total).Error
	return total, err
}
