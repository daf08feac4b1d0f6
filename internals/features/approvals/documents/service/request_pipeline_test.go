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
	"campushub_backend/internals/features/approvals/documents/model"
	"campushub_backend/internals/helpers/apperr"
)

// fakeReceipts pretends the listed paths exist on disk.
type fakeReceipts map[string]bool

func (f fakeReceipts) Exists(path string) bool { return f[path] }

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

func seedStudent(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	student := academicsModel.Student{
		StudentNumber:    fmt.Sprintf("T-%s", uuid.NewString()[:8]),
		StudentFirstName: "Carlo",
		StudentLastName:  "Dizon",
		StudentYearLevel: "4",
	}
	require.NoError(t, db.Create(&student).Error)
	return student.StudentID
}

func newRequest(t *testing.T, p *RequestPipeline, studentID uuid.UUID, receipt *string) *model.DocumentRequest {
	t.Helper()
	m, err := p.Create(context.Background(), CreateRequestInput{
		StudentID:   studentID,
		Type:        model.DocumentTypeTranscript,
		Copies:      2,
		Processing:  model.ProcessingNormal,
		ReceiptPath: receipt,
	})
	require.NoError(t, err)
	return m
}

func TestTwoStageApproval(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	receipt := "receipts/or-123.pdf"
	p := NewRequestPipeline(db, fakeReceipts{receipt: true})
	registrar := uuid.New()
	accounting := uuid.New()

	studentID := seedStudent(t, db)
	req := newRequest(t, p, studentID, &receipt)
	require.Equal(t, int64(30000), req.DocumentRequestFeeCentavos)
	require.Equal(t, "awaiting_registrar", req.OverallStatus())

	// accounting cannot move before the registrar
	_, err := p.AccountingDecide(ctx, req.DocumentRequestID, true, "", accounting)
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindPrecondition))

	req2, err := p.RegistrarDecide(ctx, req.DocumentRequestID, true, "records complete", registrar)
	require.NoError(t, err)
	require.Equal(t, model.StageApproved, req2.DocumentRequestRegistrarStatus)
	require.Equal(t, "awaiting_payment_check", req2.OverallStatus())

	// a stage decides once
	_, err = p.RegistrarDecide(ctx, req.DocumentRequestID, false, "changed my mind", registrar)
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindInvalidTransition))

	req3, err := p.AccountingDecide(ctx, req.DocumentRequestID, true, "", accounting)
	require.NoError(t, err)
	require.Equal(t, model.StageApproved, req3.DocumentRequestAccountingStatus)
	require.Equal(t, "ready_for_release", req3.OverallStatus())
}

func TestAccountingApprovalNeedsReceiptOnDisk(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	missing := "receipts/nowhere.pdf"
	p := NewRequestPipeline(db, fakeReceipts{})
	actor := uuid.New()

	studentID := seedStudent(t, db)
	req := newRequest(t, p, studentID, &missing)

	_, err := p.RegistrarDecide(ctx, req.DocumentRequestID, true, "", actor)
	require.NoError(t, err)

	// attached path that does not resolve to a file blocks approval
	_, err = p.AccountingDecide(ctx, req.DocumentRequestID, true, "", actor)
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindNotFound))

	// but a rejection never needs the receipt
	out, err := p.AccountingDecide(ctx, req.DocumentRequestID, false, "no proof of payment", actor)
	require.NoError(t, err)
	require.Equal(t, model.StageRejected, out.DocumentRequestAccountingStatus)
	require.Equal(t, "rejected", out.OverallStatus())
}

func TestAccountingApprovalWithoutReceiptReference(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	p := NewRequestPipeline(db, fakeReceipts{})
	actor := uuid.New()

	studentID := seedStudent(t, db)
	req := newRequest(t, p, studentID, nil)

	_, err := p.RegistrarDecide(ctx, req.DocumentRequestID, true, "", actor)
	require.NoError(t, err)

	// nothing attached, nothing to validate on disk
	out, err := p.AccountingDecide(ctx, req.DocumentRequestID, true, "paid at the cashier", actor)
	require.NoError(t, err)
	require.Equal(t, model.StageApproved, out.DocumentRequestAccountingStatus)
}

func TestRejectionRequiresRemarks(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	p := NewRequestPipeline(db, fakeReceipts{})
	actor := uuid.New()

	studentID := seedStudent(t, db)
	req := newRequest(t, p, studentID, nil)

	_, err := p.RegistrarDecide(ctx, req.DocumentRequestID, false, "", actor)
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestAttachReceiptOnlyWhilePending(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	receipt := "receipts/or-777.pdf"
	p := NewRequestPipeline(db, fakeReceipts{receipt: true})
	actor := uuid.New()

	studentID := seedStudent(t, db)
	req := newRequest(t, p, studentID, nil)

	_, err := p.RegistrarDecide(ctx, req.DocumentRequestID, true, "", actor)
	require.NoError(t, err)

	out, err := p.AttachReceipt(ctx, req.DocumentRequestID, receipt)
	require.NoError(t, err)
	require.Equal(t, receipt, *out.DocumentRequestReceiptPath)

	_, err = p.AccountingDecide(ctx, req.DocumentRequestID, true, "", actor)
	require.NoError(t, err)

	// once accounting decided, the receipt is frozen
	_, err = p.AttachReceipt(ctx, req.DocumentRequestID, "receipts/other.pdf")
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindInvalidTransition))
}

func TestCreateUnknownStudent(t *testing.T) {
	db := openTestDB(t)
	p := NewRequestPipeline(db, fakeReceipts{})

	_, err := p.Create(context.Background(), CreateRequestInput{
		StudentID:  uuid.New(),
		Type:       model.DocumentTypeDiploma,
		Copies:     1,
		Processing: model.ProcessingNormal,
	})
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindNotFound))
}
