// file: internals/features/approvals/exams/service/permit_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	database "campushub_backend/internals/databases"
	"campushub_backend/internals/features/approvals/exams/model"
	ledgerModel "campushub_backend/internals/features/finance/ledger/model"
	"campushub_backend/internals/helpers/apperr"
)

/* =========================================================
   Permit Service

   A permit freezes the ledger's paid total at filing time.
   Approval compares that snapshot to the required amount;
   a later payment means filing a fresh permit for the next
   term, not editing this one.
========================================================= */

type PermitService struct {
	DB *gorm.DB
}

func NewPermitService(db *gorm.DB) *PermitService {
	return &PermitService{DB: db}
}

// Create files a permit with the paid amount snapshotted from the ledger.
func (s *PermitService) Create(ctx context.Context, ledgerID uuid.UUID, term model.ExamTerm, requiredCentavos int64, remarks string) (*model.ExamPermit, error) {
	if requiredCentavos <= 0 {
		return nil, apperr.Validation("required amount must be positive")
	}

	var ledger ledgerModel.StudentLedger
	if err := s.DB.WithContext(ctx).
		First(&ledger, "student_ledger_id = ?", ledgerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("ledger not found")
		}
		return nil, err
	}

	m := model.ExamPermit{
		ExamPermitLedgerID:         ledgerID,
		ExamPermitTerm:             term,
		ExamPermitRequiredCentavos: requiredCentavos,
		ExamPermitPaidCentavos:     ledger.StudentLedgerTotalPaidCentavos,
		ExamPermitStatus:           model.PermitStatusPending,
	}
	if remarks != "" {
		m.ExamPermitRemarks = &remarks
	}
	if err := s.DB.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Invariant("permit already filed for this term")
		}
		return nil, err
	}
	return &m, nil
}

// Approve passes a pending permit whose snapshot covers the requirement.
func (s *PermitService) Approve(ctx context.Context, permitID, actorID uuid.UUID) (*model.ExamPermit, error) {
	var out model.ExamPermit
	err := database.WithRetry(s.DB.WithContext(ctx), func(tx *gorm.DB) error {
		m, err := lockPermit(tx, permitID)
		if err != nil {
			return err
		}
		if m.ExamPermitStatus != model.PermitStatusPending {
			return apperr.Newf(apperr.KindInvalidTransition, "permit already %s", m.ExamPermitStatus)
		}
		if !m.MeetsRequirement() {
			return apperr.Precondition("paid amount does not cover the requirement")
		}

		now := time.Now()
		m.ExamPermitStatus = model.PermitStatusApproved
		m.ExamPermitDecidedByUserID = &actorID
		m.ExamPermitDecidedAt = &now
		if err := tx.Save(m).Error; err != nil {
			return err
		}
		out = *m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Deny rejects a pending permit. Remarks are mandatory so the student
// knows what to settle.
func (s *PermitService) Deny(ctx context.Context, permitID uuid.UUID, remarks string, actorID uuid.UUID) (*model.ExamPermit, error) {
	if remarks == "" {
		return nil, apperr.Validation("denial remarks are required")
	}

	var out model.ExamPermit
	err := database.WithRetry(s.DB.WithContext(ctx), func(tx *gorm.DB) error {
		m, err := lockPermit(tx, permitID)
		if err != nil {
			return err
		}
		if m.ExamPermitStatus != model.PermitStatusPending {
			return apperr.Newf(apperr.KindInvalidTransition, "permit already %s", m.ExamPermitStatus)
		}

		now := time.Now()
		m.ExamPermitStatus = model.PermitStatusDenied
		m.ExamPermitDecidedByUserID = &actorID
		m.ExamPermitDecidedAt = &now
		m.ExamPermitRemarks = &remarks
		if err := tx.Save(m).Error; err != nil {
			return err
		}
		out = *m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// BulkOutcome is the per-permit result of a bulk approval.
type BulkOutcome struct {
	PermitID uuid.UUID `json:"permit_id"`
	Approved bool      `json:"approved"`
	Error    string    `json:"error,omitempty"`
}

// BulkApprove tries each permit independently; one failure never stops
// the rest.
func (s *PermitService) BulkApprove(ctx context.Context, permitIDs []uuid.UUID, actorID uuid.UUID) []BulkOutcome {
	out := make([]BulkOutcome, 0, len(permitIDs))
	for _, id := range permitIDs {
		if _, err := s.Approve(ctx, id, actorID); err != nil {
			out = append(out, BulkOutcome{PermitID: id, Approved: false, Error: err.Error()})
			continue
		}
		out = append(out, BulkOutcome{PermitID: id, Approved: true})
	}
	return out
}

// Get returns a permit by id.
func (s *PermitService) Get(ctx context.Context, permitID uuid.UUID) (*model.ExamPermit, error) {
	var m model.ExamPermit
	if err := s.DB.WithContext(ctx).
		First(&m, "exam_permit_id = ?", permitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("permit not found")
		}
		return nil, err
	}
	return &m, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func lockPermit(tx *gorm.DB, id uuid.UUID) (*model.ExamPermit, error) {
	var m model.ExamPermit
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "exam_permit_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("permit not found")
		}
		return nil, err
	}
	return &m, nil
}
