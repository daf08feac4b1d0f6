// file: internals/features/finance/overdue/service/escalation_service.go
package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	database "campushub_backend/internals/databases"
	academicsModel "campushub_backend/internals/features/academics/model"
	ledgerModel "campushub_backend/internals/features/finance/ledger/model"
	ledgerService "campushub_backend/internals/features/finance/ledger/service"
	"campushub_backend/internals/features/finance/overdue/model"
	"campushub_backend/internals/helpers/apperr"
)

/* =========================================================
   Escalation Service

   Flags unpaid ledgers past their due date. A bulk sweep
   works per ledger in its own locked tx: one contended row
   never poisons the rest of the run.
========================================================= */

type EscalationService struct {
	DB *gorm.DB
}

func NewEscalationService(db *gorm.DB) *EscalationService {
	return &EscalationService{DB: db}
}

// MarkOverdue flags a single ledger. A settled balance means there is
// nothing to escalate, so the ledger comes back unchanged, same as the
// bulk sweep skipping it. Flagging an already-overdue ledger is a no-op
// and keeps the original overdue_since.
func (s *EscalationService) MarkOverdue(ctx context.Context, ledgerID uuid.UUID) (*ledgerModel.StudentLedger, error) {
	var out ledgerModel.StudentLedger
	err := database.WithRetry(s.DB.WithContext(ctx), func(tx *gorm.DB) error {
		m, err := ledgerService.LockLedger(tx, ledgerID)
		if err != nil {
			return err
		}
		if m.BalanceCentavos() == 0 || m.StudentLedgerIsOverdue {
			out = *m
			return nil
		}

		now := time.Now()
		m.StudentLedgerIsOverdue = true
		m.StudentLedgerOverdueSince = &now
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

// ClearOverdue removes the flag, usually after the balance is settled.
// Clearing a ledger that is not overdue is a no-op.
func (s *EscalationService) ClearOverdue(ctx context.Context, ledgerID uuid.UUID) (*ledgerModel.StudentLedger, error) {
	var out ledgerModel.StudentLedger
	err := database.WithRetry(s.DB.WithContext(ctx), func(tx *gorm.DB) error {
		m, err := ledgerService.LockLedger(tx, ledgerID)
		if err != nil {
			return err
		}
		if !m.StudentLedgerIsOverdue {
			out = *m
			return nil
		}

		m.StudentLedgerIsOverdue = false
		m.StudentLedgerOverdueSince = nil
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

// BulkScope narrows a sweep to a school year and optionally a department,
// a student classification, or a set of year levels.
type BulkScope struct {
	SchoolYearID   uuid.UUID
	DepartmentID   *uuid.UUID
	Classification string
	YearLevels     []string
	Cutoff         time.Time
}

// BulkResult is what one sweep did.
type BulkResult struct {
	Run        model.EscalationRun
	Candidates int
	Marked     int
	Skipped    int
}

// BulkMarkOverdue sweeps every ledger in scope whose due date is on or
// before the cutoff. Candidates are flagged one by one so a concurrent
// payment that clears a balance mid-sweep simply turns that ledger into
// a skip. The run is recorded with its counts either way.
func (s *EscalationService) BulkMarkOverdue(ctx context.Context, scope BulkScope, actorID uuid.UUID) (*BulkResult, error) {
	if scope.SchoolYearID == uuid.Nil {
		return nil, apperr.Validation("school_year_id is required")
	}
	if scope.Cutoff.IsZero() {
		scope.Cutoff = time.Now()
	}

	var sy academicsModel.SchoolYear
	if err := s.DB.WithContext(ctx).
		Select("school_year_id").
		First(&sy, "school_year_id = ?", scope.SchoolYearID).Error; err != nil {
		return nil, apperr.NotFound("school year not found")
	}

	q := s.DB.WithContext(ctx).Model(&ledgerModel.StudentLedger{}).
		Select("student_ledger_id").
		Where("student_ledger_school_year_id = ?", scope.SchoolYearID).
		Where("student_ledger_due_date IS NOT NULL AND student_ledger_due_date <= ?", scope.Cutoff)
	if scope.DepartmentID != nil || scope.Classification != "" || len(scope.YearLevels) > 0 {
		q = q.Joins("JOIN students ON students.student_id = student_ledgers.student_ledger_student_id")
		if scope.DepartmentID != nil {
			q = q.Where("students.student_department_id = ?", *scope.DepartmentID)
		}
		if scope.Classification != "" {
			q = q.Where("students.student_classification = ?", scope.Classification)
		}
		if len(scope.YearLevels) > 0 {
			q = q.Where("students.student_year_level IN ?", scope.YearLevels)
		}
	}

	var ids []uuid.UUID
	if err := q.Pluck("student_ledger_id", &ids).Error; err != nil {
		return nil, err
	}

	res := BulkResult{Candidates: len(ids)}
	for _, id := range ids {
		// counters move outside the closure: a retried tx must not double-count
		var marked bool
		err := database.WithRetry(s.DB.WithContext(ctx), func(tx *gorm.DB) error {
			marked = false
			m, err := ledgerService.LockLedger(tx, id)
			if err != nil {
				return err
			}
			if m.BalanceCentavos() == 0 || m.StudentLedgerIsOverdue {
				return nil
			}
			now := time.Now()
			m.StudentLedgerIsOverdue = true
			m.StudentLedgerOverdueSince = &now
			if err := tx.Save(m).Error; err != nil {
				return err
			}
			marked = true
			return nil
		})
		switch {
		case err != nil:
			log.Printf("[WARN] overdue sweep skipped ledger %s: %v", id, err)
			res.Skipped++
		case marked:
			res.Marked++
		default:
			res.Skipped++
		}
	}

	run := model.EscalationRun{
		EscalationRunSchoolYearID:      scope.SchoolYearID,
		EscalationRunDepartmentID:      scope.DepartmentID,
		EscalationRunYearLevels:        scope.YearLevels,
		EscalationRunCutoff:            scope.Cutoff,
		EscalationRunCandidateCount:    res.Candidates,
		EscalationRunMarkedCount:       res.Marked,
		EscalationRunSkippedCount:      res.Skipped,
		EscalationRunTriggeredByUserID: actorID,
	}
	if scope.Classification != "" {
		run.EscalationRunClassification = &scope.Classification
	}
	if err := s.DB.WithContext(ctx).Create(&run).Error; err != nil {
		return nil, err
	}
	res.Run = run

	return &res, nil
}
