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
	"campushub_backend/internals/features/approvals/exams/model"
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

func seedPaidLedger(t *testing.T, db *gorm.DB, assessedCentavos, paidCentavos int64) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	student := academicsModel.Student{
		StudentNumber:    fmt.Sprintf("T-%s", uuid.NewString()[:8]),
		StudentFirstName: "Liza",
		StudentLastName:  "Cruz",
		StudentYearLevel: "2",
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
		ledgerService.FeeLineItems{TuitionCentavos: assessedCentavos}, nil, uuid.New())
	require.NoError(t, err)

	if paidCentavos > 0 {
		recorder := ledgerService.NewPaymentRecorder(db)
		_, err = recorder.Record(ctx, ledger.StudentLedgerID, paidCentavos, ledgerModel.PaymentMethodCash, "OR-1", uuid.New())
		require.NoError(t, err)
	}
	return ledger.StudentLedgerID
}

func TestPermitSnapshotIsFrozen(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := NewPermitService(db)
	recorder := ledgerService.NewPaymentRecorder(db)
	actor := uuid.New()

	ledgerID := seedPaidLedger(t, db, 100000, 40000)

	permit, err := svc.Create(ctx, ledgerID, model.ExamTermMidterm, 50000, "")
	require.NoError(t, err)
	require.Equal(t, int64(40000), permit.ExamPermitPaidCentavos)

	// money arriving after filing does not rescue this permit
	_, err = recorder.Record(ctx, ledgerID, 20000, ledgerModel.PaymentMethodCash, "OR-2", actor)
	require.NoError(t, err)

	_, err = svc.Approve(ctx, permit.ExamPermitID, actor)
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindPrecondition))

	// a fresh permit for the next term sees the new total
	next, err := svc.Create(ctx, ledgerID, model.ExamTermFinal, 50000, "")
	require.NoError(t, err)
	require.Equal(t, int64(60000), next.ExamPermitPaidCentavos)

	approved, err := svc.Approve(ctx, next.ExamPermitID, actor)
	require.NoError(t, err)
	require.Equal(t, model.PermitStatusApproved, approved.ExamPermitStatus)
}

func TestApproveAtExactBoundary(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := NewPermitService(db)
	actor := uuid.New()

	ledgerID := seedPaidLedger(t, db, 100000, 50000)

	permit, err := svc.Create(ctx, ledgerID, model.ExamTermPrelim, 50000, "")
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, permit.ExamPermitID, actor)
	require.NoError(t, err)
	require.Equal(t, model.PermitStatusApproved, approved.ExamPermitStatus)

	// a decided permit cannot be decided again
	_, err = svc.Deny(ctx, permit.ExamPermitID, "too late", actor)
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindInvalidTransition))
}

func TestDenyRequiresRemarks(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := NewPermitService(db)
	actor := uuid.New()

	ledgerID := seedPaidLedger(t, db, 100000, 0)
	permit, err := svc.Create(ctx, ledgerID, model.ExamTermPrelim, 50000, "")
	require.NoError(t, err)

	_, err = svc.Deny(ctx, permit.ExamPermitID, "", actor)
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindValidation))

	denied, err := svc.Deny(ctx, permit.ExamPermitID, "settle at least half of the assessment", actor)
	require.NoError(t, err)
	require.Equal(t, model.PermitStatusDenied, denied.ExamPermitStatus)
}

func TestOnePermitPerLedgerAndTerm(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := NewPermitService(db)

	ledgerID := seedPaidLedger(t, db, 100000, 0)

	_, err := svc.Create(ctx, ledgerID, model.ExamTermPrelim, 50000, "")
	require.NoError(t, err)

	_, err = svc.Create(ctx, ledgerID, model.ExamTermPrelim, 50000, "")
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindInvariant))
}

func TestBulkApproveReportsPerPermit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := NewPermitService(db)
	actor := uuid.New()

	covered := seedPaidLedger(t, db, 100000, 50000)
	short := seedPaidLedger(t, db, 100000, 10000)

	p1, err := svc.Create(ctx, covered, model.ExamTermMidterm, 50000, "")
	require.NoError(t, err)
	p2, err := svc.Create(ctx, short, model.ExamTermMidterm, 50000, "")
	require.NoError(t, err)

	results := svc.BulkApprove(ctx, []uuid.UUID{p1.ExamPermitID, p2.ExamPermitID, uuid.New()}, actor)
	require.Len(t, results, 3)

	require.True(t, results[0].Approved)
	require.False(t, results[1].Approved)
	require.Contains(t, results[1].Error, "does not cover")
	require.False(t, results[2].Approved)
}
