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
	"campushub_backend/internals/features/finance/ledger/model"
	"campushub_backend/internals/helpers/apperr"
)

// Flow tests need a real Postgres because the store leans on FOR UPDATE
// and unique indexes. Set CAMPUSHUB_TEST_DSN to run them.
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

func seedStudentAndYear(t *testing.T, db *gorm.DB) (uuid.UUID, uuid.UUID) {
	t.Helper()
	student := academicsModel.Student{
		StudentNumber:    fmt.Sprintf("T-%s", uuid.NewString()[:8]),
		StudentFirstName: "Maria",
		StudentLastName:  "Santos",
		StudentYearLevel: "2",
	}
	require.NoError(t, db.Create(&student).Error)

	year := academicsModel.SchoolYear{
		SchoolYearLabel: fmt.Sprintf("SY-%s", uuid.NewString()[:8]),
	}
	require.NoError(t, db.Create(&year).Error)

	return student.StudentID, year.SchoolYearID
}

func TestCreateOrGetIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	store := NewLedgerStore(db)

	studentID, yearID := seedStudentAndYear(t, db)

	first, err := store.CreateOrGet(ctx, studentID, yearID)
	require.NoError(t, err)
	second, err := store.CreateOrGet(ctx, studentID, yearID)
	require.NoError(t, err)
	require.Equal(t, first.StudentLedgerID, second.StudentLedgerID)

	// a fresh ledger with nothing assessed derives as paid
	require.Equal(t, model.PaymentStatusPaid, first.StudentLedgerPaymentStatus)
}

func TestAssessGrantPayFlow(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	store := NewLedgerStore(db)
	recorder := NewPaymentRecorder(db)
	actor := uuid.New()

	studentID, yearID := seedStudentAndYear(t, db)
	ledger, err := store.CreateOrGet(ctx, studentID, yearID)
	require.NoError(t, err)

	_, err = store.PostAssessment(ctx, ledger.StudentLedgerID, FeeLineItems{
		TuitionCentavos: 10000,
		MiscCentavos:    500,
	}, nil, actor)
	require.NoError(t, err)

	grant := academicsModel.GrantDefinition{
		GrantName:     fmt.Sprintf("Scholarship %s", uuid.NewString()[:8]),
		GrantIsActive: true,
	}
	require.NoError(t, db.Create(&grant).Error)

	after, err := store.ApplyGrant(ctx, ledger.StudentLedgerID, grant.GrantID, 2000, actor)
	require.NoError(t, err)
	require.Equal(t, int64(8500), after.BalanceCentavos())
	require.Equal(t, model.PaymentStatusUnpaid, after.StudentLedgerPaymentStatus)

	_, err = recorder.Record(ctx, ledger.StudentLedgerID, 8500, model.PaymentMethodCash, "OR-1001", actor)
	require.NoError(t, err)

	settled, err := store.Get(ctx, ledger.StudentLedgerID)
	require.NoError(t, err)
	require.Equal(t, int64(0), settled.BalanceCentavos())
	require.Equal(t, model.PaymentStatusPaid, settled.StudentLedgerPaymentStatus)

	// a second grant pushing the discount past the assessment is rejected
	big := academicsModel.GrantDefinition{
		GrantName:     fmt.Sprintf("Full Ride %s", uuid.NewString()[:8]),
		GrantIsActive: true,
	}
	require.NoError(t, db.Create(&big).Error)

	_, err = store.ApplyGrant(ctx, ledger.StudentLedgerID, big.GrantID, 9000, actor)
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindInvariant))

	// and the rollback left the discount untouched
	unchanged, err := store.Get(ctx, ledger.StudentLedgerID)
	require.NoError(t, err)
	require.Equal(t, int64(2000), unchanged.StudentLedgerGrantDiscountCentavos)
}

func TestApplySameGrantTwice(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	store := NewLedgerStore(db)
	actor := uuid.New()

	studentID, yearID := seedStudentAndYear(t, db)
	ledger, err := store.CreateOrGet(ctx, studentID, yearID)
	require.NoError(t, err)

	_, err = store.PostAssessment(ctx, ledger.StudentLedgerID, FeeLineItems{TuitionCentavos: 50000}, nil, actor)
	require.NoError(t, err)

	grant := academicsModel.GrantDefinition{
		GrantName:     fmt.Sprintf("Sibling Discount %s", uuid.NewString()[:8]),
		GrantIsActive: true,
	}
	require.NoError(t, db.Create(&grant).Error)

	_, err = store.ApplyGrant(ctx, ledger.StudentLedgerID, grant.GrantID, 1000, actor)
	require.NoError(t, err)

	_, err = store.ApplyGrant(ctx, ledger.StudentLedgerID, grant.GrantID, 1000, actor)
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindInvariant))
}

func TestReversePayment(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	store := NewLedgerStore(db)
	recorder := NewPaymentRecorder(db)
	actor := uuid.New()

	studentID, yearID := seedStudentAndYear(t, db)
	ledger, err := store.CreateOrGet(ctx, studentID, yearID)
	require.NoError(t, err)

	_, err = store.PostAssessment(ctx, ledger.StudentLedgerID, FeeLineItems{TuitionCentavos: 20000}, nil, actor)
	require.NoError(t, err)

	pay, err := recorder.Record(ctx, ledger.StudentLedgerID, 5000, model.PaymentMethodCheck, "CHK-77", actor)
	require.NoError(t, err)

	rev, err := recorder.Reverse(ctx, ledger.StudentLedgerID, pay.LedgerPaymentID, "bounced check", actor)
	require.NoError(t, err)
	require.Equal(t, int64(-5000), rev.LedgerPaymentAmountCentavos)
	require.True(t, rev.IsReversal())

	after, err := store.Get(ctx, ledger.StudentLedgerID)
	require.NoError(t, err)
	require.Equal(t, int64(0), after.StudentLedgerTotalPaidCentavos)
	require.Equal(t, model.PaymentStatusUnpaid, after.StudentLedgerPaymentStatus)

	// reversing twice is rejected
	_, err = recorder.Reverse(ctx, ledger.StudentLedgerID, pay.LedgerPaymentID, "again", actor)
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindInvariant))

	// a reversal row itself cannot be reversed
	_, err = recorder.Reverse(ctx, ledger.StudentLedgerID, rev.LedgerPaymentID, "undo the undo", actor)
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindInvariant))
}

func TestRemoveGrantRecomputes(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	store := NewLedgerStore(db)
	actor := uuid.New()

	studentID, yearID := seedStudentAndYear(t, db)
	ledger, err := store.CreateOrGet(ctx, studentID, yearID)
	require.NoError(t, err)

	_, err = store.PostAssessment(ctx, ledger.StudentLedgerID, FeeLineItems{TuitionCentavos: 30000}, nil, actor)
	require.NoError(t, err)

	grant := academicsModel.GrantDefinition{
		GrantName:     fmt.Sprintf("Academic Grant %s", uuid.NewString()[:8]),
		GrantIsActive: true,
	}
	require.NoError(t, db.Create(&grant).Error)

	_, err = store.ApplyGrant(ctx, ledger.StudentLedgerID, grant.GrantID, 5000, actor)
	require.NoError(t, err)

	var inst model.StudentLedgerGrant
	require.NoError(t, db.
		Where("student_ledger_grant_ledger_id = ?", ledger.StudentLedgerID).
		First(&inst).Error)

	after, err := store.RemoveGrant(ctx, ledger.StudentLedgerID, inst.StudentLedgerGrantID, actor)
	require.NoError(t, err)
	require.Equal(t, int64(0), after.StudentLedgerGrantDiscountCentavos)
	require.Equal(t, int64(30000), after.BalanceCentavos())

	// removing it again is a not-found
	_, err = store.RemoveGrant(ctx, ledger.StudentLedgerID, inst.StudentLedgerGrantID, actor)
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindNotFound))

	// a removed grant can be re-applied, e.g. after fixing a wrong amount
	reapplied, err := store.ApplyGrant(ctx, ledger.StudentLedgerID, grant.GrantID, 4000, actor)
	require.NoError(t, err)
	require.Equal(t, int64(4000), reapplied.StudentLedgerGrantDiscountCentavos)
	require.Equal(t, int64(26000), reapplied.BalanceCentavos())
}
