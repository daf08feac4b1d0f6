package service

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	database "campushub_backend/internals/databases"
	academicsModel "campushub_backend/internals/features/academics/model"
	"campushub_backend/internals/features/finance/gateway/model"
	ledgerModel "campushub_backend/internals/features/finance/ledger/model"
	ledgerService "campushub_backend/internals/features/finance/ledger/service"
	"campushub_backend/internals/helpers/apperr"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("CAMPUSHUB_TEST_DSN")
	if dsn == "" {
		t.Skip("CAMPUSHUB_TEST_DSN not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	database.RunMigrations(db)
	return db
}

func seedLedger(t *testing.T, db *gorm.DB, tuitionCentavos int64) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	student := academicsModel.Student{
		StudentNumber:    fmt.Sprintf("T-%s", uuid.NewString()[:8]),
		StudentFirstName: "Jose",
		StudentLastName:  "Rizal",
		StudentYearLevel: "3",
	}
	require.NoError(t, db.Create(&student).Error)
	year := academicsModel.SchoolYear{
		SchoolYearLabel: fmt.Sprintf("SY-%s", uuid.NewString()[:8]),
	}
	require.NoError(t, db.Create(&year).Error)

	store := ledgerService.NewLedgerStore(db)
	ledger, err := store.CreateOrGet(ctx, student.StudentID, year.SchoolYearID)
	require.NoError(t, err)
	_, err = store.PostAssessment(ctx, ledger.StudentLedgerID,
		ledgerService.FeeLineItems{TuitionCentavos: tuitionCentavos}, nil, uuid.New())
	require.NoError(t, err)
	return ledger.StudentLedgerID
}

func ledgerPaid(t *testing.T, db *gorm.DB, ledgerID uuid.UUID) int64 {
	t.Helper()
	var m ledgerModel.StudentLedger
	require.NoError(t, db.First(&m, "student_ledger_id = ?", ledgerID).Error)
	return m.StudentLedgerTotalPaidCentavos
}

func TestVerifyCreditsNetOnce(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	v := NewVerifier(db)
	actor := uuid.New()

	ledgerID := seedLedger(t, db, 20000)

	ref := fmt.Sprintf("GC-%s", uuid.NewString()[:12])
	txn, err := v.CreatePending(ctx, ledgerID, model.ProviderGcash, ref, 1030, 30, nil)
	require.NoError(t, err)
	require.Equal(t, model.TransactionStatusPending, txn.OnlineTransactionStatus)
	require.Equal(t, int64(1000), txn.OnlineTransactionNetCentavos)

	verified, err := v.Verify(ctx, txn.OnlineTransactionID, actor)
	require.NoError(t, err)
	require.Equal(t, model.TransactionStatusVerified, verified.OnlineTransactionStatus)
	require.NotNil(t, verified.OnlineTransactionPaymentID)
	require.Equal(t, int64(1000), ledgerPaid(t, db, ledgerID))

	// replayed verification is a no-op, not a second credit
	again, err := v.Verify(ctx, txn.OnlineTransactionID, actor)
	require.NoError(t, err)
	require.Equal(t, model.TransactionStatusVerified, again.OnlineTransactionStatus)
	require.Equal(t, int64(1000), ledgerPaid(t, db, ledgerID))
}

func TestCreatePendingIsIdempotentOnReference(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	v := NewVerifier(db)

	ledgerID := seedLedger(t, db, 20000)
	ref := fmt.Sprintf("GC-%s", uuid.NewString()[:12])

	first, err := v.CreatePending(ctx, ledgerID, model.ProviderGcash, ref, 5000, 0, nil)
	require.NoError(t, err)
	second, err := v.CreatePending(ctx, ledgerID, model.ProviderGcash, ref, 5000, 0, nil)
	require.NoError(t, err)
	require.Equal(t, first.OnlineTransactionID, second.OnlineTransactionID)
}

func TestRefundReversesExactlyNet(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	v := NewVerifier(db)
	actor := uuid.New()

	ledgerID := seedLedger(t, db, 20000)
	ref := fmt.Sprintf("GC-%s", uuid.NewString()[:12])

	txn, err := v.CreatePending(ctx, ledgerID, model.ProviderGcash, ref, 1030, 30, nil)
	require.NoError(t, err)
	_, err = v.Verify(ctx, txn.OnlineTransactionID, actor)
	require.NoError(t, err)
	require.Equal(t, int64(1000), ledgerPaid(t, db, ledgerID))

	refunded, err := v.Refund(ctx, txn.OnlineTransactionID, "payer dispute", actor)
	require.NoError(t, err)
	require.Equal(t, model.TransactionStatusRefunded, refunded.OnlineTransactionStatus)
	require.Equal(t, int64(0), ledgerPaid(t, db, ledgerID))

	// refunded is terminal: a second refund is rejected and reverses nothing
	_, err = v.Refund(ctx, txn.OnlineTransactionID, "payer dispute", actor)
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindInvalidTransition))
	require.Equal(t, int64(0), ledgerPaid(t, db, ledgerID))
}

func TestStateMachineGuards(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	v := NewVerifier(db)
	actor := uuid.New()

	ledgerID := seedLedger(t, db, 20000)
	ref := fmt.Sprintf("GC-%s", uuid.NewString()[:12])

	txn, err := v.CreatePending(ctx, ledgerID, model.ProviderGcash, ref, 2000, 0, nil)
	require.NoError(t, err)

	// refunding a pending transaction is rejected
	_, err = v.Refund(ctx, txn.OnlineTransactionID, "slip of the finger", actor)
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindInvalidTransition))

	_, err = v.MarkFailed(ctx, txn.OnlineTransactionID, "payer abandoned checkout", actor)
	require.NoError(t, err)

	// a failed transaction is terminal
	_, err = v.Verify(ctx, txn.OnlineTransactionID, actor)
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindInvalidTransition))

	// failing it a second time is rejected too
	_, err = v.MarkFailed(ctx, txn.OnlineTransactionID, "duplicate notification", actor)
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindInvalidTransition))

	// failure reason is mandatory
	ref2 := fmt.Sprintf("GC-%s", uuid.NewString()[:12])
	txn2, err := v.CreatePending(ctx, ledgerID, model.ProviderGcash, ref2, 2000, 0, nil)
	require.NoError(t, err)
	_, err = v.MarkFailed(ctx, txn2.OnlineTransactionID, "", actor)
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestCreatePendingRejectsBadAmounts(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	v := NewVerifier(db)

	ledgerID := seedLedger(t, db, 20000)

	_, err := v.CreatePending(ctx, ledgerID, model.ProviderGcash, fmt.Sprintf("GC-%s", uuid.NewString()[:12]), 0, 0, nil)
	require.True(t, apperr.Is(err, apperr.KindValidation))

	// fee swallowing the whole gross leaves nothing to credit
	_, err = v.CreatePending(ctx, ledgerID, model.ProviderGcash, fmt.Sprintf("GC-%s", uuid.NewString()[:12]), 100, 100, nil)
	require.True(t, apperr.Is(err, apperr.KindValidation))
}
