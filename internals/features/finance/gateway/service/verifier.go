// file: internals/features/finance/gateway/service/verifier.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	database "campushub_backend/internals/databases"
	"campushub_backend/internals/features/finance/gateway/model"
	ledgerModel "campushub_backend/internals/features/finance/ledger/model"
	ledgerService "campushub_backend/internals/features/finance/ledger/service"
	"campushub_backend/internals/helpers/apperr"
)

/* =========================================================
   Verifier — online transaction state machine

   All transitions run in a single tx with the transaction
   row locked FOR UPDATE, so concurrent callbacks and manual
   actions serialize per transaction. Ledger credits reuse
   the payment recorder inside the same tx, all-or-nothing.
========================================================= */

type Verifier struct {
	DB       *gorm.DB
	Recorder *ledgerService.PaymentRecorder
}

func NewVerifier(db *gorm.DB) *Verifier {
	return &Verifier{DB: db, Recorder: ledgerService.NewPaymentRecorder(db)}
}

// CreatePending registers a new payment attempt. The provider reference is
// unique, so retried registrations land on the existing row.
func (v *Verifier) CreatePending(ctx context.Context, ledgerID uuid.UUID, provider model.PaymentProvider, reference string, grossCentavos, feeCentavos int64, meta []byte) (*model.OnlineTransaction, error) {
	if reference == "" {
		return nil, apperr.Validation("reference is required")
	}
	if grossCentavos <= 0 {
		return nil, apperr.Validation("gross amount must be positive")
	}
	if feeCentavos < 0 || feeCentavos >= grossCentavos {
		return nil, apperr.Validation("fee must be non-negative and below the gross amount")
	}

	// the ledger must exist before money can be attempted against it
	var ledger ledgerModel.StudentLedger
	if err := v.DB.WithContext(ctx).
		Select("student_ledger_id").
		First(&ledger, "student_ledger_id = ?", ledgerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("ledger not found")
		}
		return nil, err
	}

	fresh := model.OnlineTransaction{
		OnlineTransactionLedgerID:      ledgerID,
		OnlineTransactionProvider:      provider,
		OnlineTransactionReference:     reference,
		OnlineTransactionGrossCentavos: grossCentavos,
		OnlineTransactionFeeCentavos:   feeCentavos,
		OnlineTransactionNetCentavos:   grossCentavos - feeCentavos,
		OnlineTransactionStatus:        model.TransactionStatusPending,
		OnlineTransactionMeta:          meta,
	}
	if err := v.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&fresh).Error; err != nil {
		return nil, err
	}

	var out model.OnlineTransaction
	if err := v.DB.WithContext(ctx).
		First(&out, "online_transaction_reference = ?", reference).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// Verify moves pending -> verified and credits the net amount to the
// ledger. Verifying an already-verified transaction is a no-op, so a
// replayed callback never double-credits.
func (v *Verifier) Verify(ctx context.Context, transactionID, actorID uuid.UUID) (*model.OnlineTransaction, error) {
	var out model.OnlineTransaction
	err := database.WithRetry(v.DB.WithContext(ctx), func(tx *gorm.DB) error {
		t, err := lockTransaction(tx, transactionID)
		if err != nil {
			return err
		}
		if t.OnlineTransactionStatus == model.TransactionStatusVerified {
			out = *t
			return nil
		}
		if !t.CanTransitionTo(model.TransactionStatusVerified) {
			return apperr.Newf(apperr.KindInvalidTransition, "cannot verify a %s transaction", t.OnlineTransactionStatus)
		}

		net := t.OnlineTransactionGrossCentavos - t.OnlineTransactionFeeCentavos
		if net <= 0 {
			return apperr.Invariant("net amount must be positive to verify")
		}

		pay, err := v.Recorder.RecordInTx(tx, t.OnlineTransactionLedgerID, net,
			ledgerModel.PaymentMethodOnline, t.OnlineTransactionReference, actorID)
		if err != nil {
			return err
		}

		now := time.Now()
		t.OnlineTransactionStatus = model.TransactionStatusVerified
		t.OnlineTransactionNetCentavos = net
		t.OnlineTransactionPaymentID = &pay.LedgerPaymentID
		t.OnlineTransactionVerifiedAt = &now
		// uuid.Nil means the gateway callback acted, not a person
		if actorID != uuid.Nil {
			t.OnlineTransactionVerifiedByUserID = &actorID
		}
		if err := tx.Save(t).Error; err != nil {
			return err
		}
		out = *t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkFailed moves pending -> failed. The reason is mandatory: a failed
// attempt with no explanation is useless to the cashier reviewing it.
func (v *Verifier) MarkFailed(ctx context.Context, transactionID uuid.UUID, reason string, actorID uuid.UUID) (*model.OnlineTransaction, error) {
	if reason == "" {
		return nil, apperr.Validation("failure reason is required")
	}

	var out model.OnlineTransaction
	err := database.WithRetry(v.DB.WithContext(ctx), func(tx *gorm.DB) error {
		t, err := lockTransaction(tx, transactionID)
		if err != nil {
			return err
		}
		if !t.CanTransitionTo(model.TransactionStatusFailed) {
			return apperr.Newf(apperr.KindInvalidTransition, "cannot fail a %s transaction", t.OnlineTransactionStatus)
		}

		now := time.Now()
		t.OnlineTransactionStatus = model.TransactionStatusFailed
		t.OnlineTransactionFailureReason = &reason
		t.OnlineTransactionFailedAt = &now
		if err := tx.Save(t).Error; err != nil {
			return err
		}
		out = *t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Refund moves verified -> refunded and reverses exactly the credit that
// verification wrote, never the gross amount. Remarks are optional; the
// ledger reversal row still gets an audit reason either way.
func (v *Verifier) Refund(ctx context.Context, transactionID uuid.UUID, remarks string, actorID uuid.UUID) (*model.OnlineTransaction, error) {
	remarks = strings.TrimSpace(remarks)

	var out model.OnlineTransaction
	err := database.WithRetry(v.DB.WithContext(ctx), func(tx *gorm.DB) error {
		t, err := lockTransaction(tx, transactionID)
		if err != nil {
			return err
		}
		if !t.CanTransitionTo(model.TransactionStatusRefunded) {
			return apperr.Newf(apperr.KindInvalidTransition, "cannot refund a %s transaction", t.OnlineTransactionStatus)
		}
		if t.OnlineTransactionPaymentID == nil {
			return apperr.Invariant("verified transaction has no payment to reverse")
		}

		reason := remarks
		if reason == "" {
			reason = "gateway refund of " + t.OnlineTransactionReference
		}
		if _, err := v.Recorder.ReverseInTx(tx, t.OnlineTransactionLedgerID,
			*t.OnlineTransactionPaymentID, reason, actorID); err != nil {
			return err
		}

		now := time.Now()
		t.OnlineTransactionStatus = model.TransactionStatusRefunded
		t.OnlineTransactionRefundedAt = &now
		if remarks != "" {
			t.OnlineTransactionRefundRemarks = &remarks
		}
		if actorID != uuid.Nil {
			t.OnlineTransactionRefundedByUserID = &actorID
		}
		if err := tx.Save(t).Error; err != nil {
			return err
		}
		out = *t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByReference resolves a provider reference to our transaction row.
func (v *Verifier) FindByReference(ctx context.Context, reference string) (*model.OnlineTransaction, error) {
	var t model.OnlineTransaction
	if err := v.DB.WithContext(ctx).
		First(&t, "online_transaction_reference = ?", reference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("transaction not found")
		}
		return nil, err
	}
	return &t, nil
}

func lockTransaction(tx *gorm.DB, id uuid.UUID) (*model.OnlineTransaction, error) {
	var t model.OnlineTransaction
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&t, "online_transaction_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("transaction not found")
		}
		return nil, err
	}
	return &t, nil
}
