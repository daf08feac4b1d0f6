package service

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	database "campushub_backend/internals/databases"
	academicsModel "campushub_backend/internals/features/academics/model"
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

func seedYear(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	year := academicsModel.SchoolYear{
		SchoolYearLabel: fmt.Sprintf("SY-%s", uuid.NewString()[:8]),
	}
	require.NoError(t, db.Create(&year).Error)
	return year.SchoolYearID
}

func seedDueLedger(t *testing.T, db *gorm.DB, yearID uuid.UUID, tuitionCentavos int64, due time.Time) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	student := academicsModel.Student{
		StudentNumber:    fmt.Sprintf("T-%s", uuid.NewString()[:8]),
		StudentFirstName: "Ana",
		StudentLastName:  "Reyes",
		StudentYearLevel: "1",
	}
	require.NoError(t, db.Create(&student).Error)

	store := ledgerService.NewLedgerStore(db)
	ledger, err := store.CreateOrGet(ctx, student.StudentID, yearID)
	require.NoError(t, err)
	_, err = store.PostAssessment(ctx, ledger.StudentLedgerID,
		ledgerService.FeeLineItems{TuitionCentavos: tuitionCentavos}, &due, uuid.New())
	require.NoError(t, err)
	return ledger.StudentLedgerID
}

func TestMarkAndClearOverdue(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := NewEscalationService(db)

	yearID := seedYear(t, db)
	due := time.Now().AddDate(0, 0, -10)
	ledgerID := seedDueLedger(t, db, yearID, 10000, due)

	m, err := svc.MarkOverdue(ctx, ledgerID)
	require.NoError(t, err)
	require.True(t, m.StudentLedgerIsOverdue)
	require.NotNil(t, m.StudentLedgerOverdueSince)
	firstSince := *m.StudentLedgerOverdueSince

	// re-marking keeps the original timestamp
	m, err = svc.MarkOverdue(ctx, ledgerID)
	require.NoError(t, err)
	require.Equal(t, firstSince.Unix(), m.StudentLedgerOverdueSince.Unix())

	m, err = svc.ClearOverdue(ctx, ledgerID)
	require.NoError(t, err)
	require.False(t, m.StudentLedgerIsOverdue)
	require.Nil(t, m.StudentLedgerOverdueSince)

	// clearing twice is harmless
	_, err = svc.ClearOverdue(ctx, ledgerID)
	require.NoError(t, err)
}

func TestMarkOverdueSkipsSettledLedger(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := NewEscalationService(db)
	recorder := ledgerService.NewPaymentRecorder(db)

	yearID := seedYear(t, db)
	due := time.Now().AddDate(0, 0, -10)
	ledgerID := seedDueLedger(t, db, yearID, 10000, due)

	_, err := recorder.Record(ctx, ledgerID, 10000, ledgerModel.PaymentMethodCash, "OR-9", uuid.New())
	require.NoError(t, err)

	// a settled ledger comes back untouched, same as a bulk sweep skip
	m, err := svc.MarkOverdue(ctx, ledgerID)
	require.NoError(t, err)
	require.False(t, m.StudentLedgerIsOverdue)
	require.Nil(t, m.StudentLedgerOverdueSince)
}

func TestBulkMarkOverdue(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := NewEscalationService(db)
	recorder := ledgerService.NewPaymentRecorder(db)
	actor := uuid.New()

	yearID := seedYear(t, db)
	due := time.Now().AddDate(0, 0, -5)

	const n = 4
	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, seedDueLedger(t, db, yearID, 10000, due))
	}

	// settle one of them before the sweep
	_, err := recorder.Record(ctx, ids[0], 10000, ledgerModel.PaymentMethodCash, "OR-10", actor)
	require.NoError(t, err)

	res, err := svc.BulkMarkOverdue(ctx, BulkScope{SchoolYearID: yearID, Cutoff: time.Now()}, actor)
	require.NoError(t, err)
	require.Equal(t, n, res.Candidates)
	require.Equal(t, n-1, res.Marked)
	require.Equal(t, 1, res.Skipped)
	require.Equal(t, n-1, res.Run.EscalationRunMarkedCount)

	// second sweep finds every candidate already handled
	res2, err := svc.BulkMarkOverdue(ctx, BulkScope{SchoolYearID: yearID, Cutoff: time.Now()}, actor)
	require.NoError(t, err)
	require.Equal(t, 0, res2.Marked)
	require.Equal(t, n, res2.Skipped)
}

func TestBulkMarkOverdueScopeFilters(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := NewEscalationService(db)
	actor := uuid.New()

	yearID := seedYear(t, db)
	due := time.Now().AddDate(0, 0, -3)

	// in scope year but wrong classification/year level
	seedDueLedger(t, db, yearID, 10000, due)

	transferee := academicsModel.Student{
		StudentNumber:         fmt.Sprintf("T-%s", uuid.NewString()[:8]),
		StudentFirstName:      "Jose",
		StudentLastName:       "Santos",
		StudentYearLevel:      "2",
		StudentClassification: academicsModel.StudentClassificationTransferee,
	}
	require.NoError(t, db.Create(&transferee).Error)

	store := ledgerService.NewLedgerStore(db)
	ledger, err := store.CreateOrGet(ctx, transferee.StudentID, yearID)
	require.NoError(t, err)
	_, err = store.PostAssessment(ctx, ledger.StudentLedgerID,
		ledgerService.FeeLineItems{TuitionCentavos: 10000}, &due, actor)
	require.NoError(t, err)

	res, err := svc.BulkMarkOverdue(ctx, BulkScope{
		SchoolYearID:   yearID,
		Classification: "transferee",
		YearLevels:     []string{"2"},
		Cutoff:         time.Now(),
	}, actor)
	require.NoError(t, err)
	require.Equal(t, 1, res.Candidates)
	require.Equal(t, 1, res.Marked)
	require.Equal(t, 0, res.Skipped)
}

func TestBulkMarkOverdueUnknownYear(t *testing.T) {
	db := openTestDB(t)
	svc := NewEscalationService(db)

	_, err := svc.BulkMarkOverdue(context.Background(), BulkScope{SchoolYearID: uuid.New(), Cutoff: time.Now()}, uuid.New())
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindNotFound))
}
