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
	academicsModel "campushub_backend/internals/features/academics/model"
	"campushub_backend/internals/features/finance/ledger/model"
	"campushub_backend/internals/helpers/apperr"
)

/* =========================================================
   Ledger Entity Store

   Single source of truth for a student's financial account.
   Every mutation runs inside a transaction holding the
   ledger row FOR UPDATE, so payments, grants, assessments
   and overdue flags can never interleave into an
   inconsistent total_paid/balance pair.
========================================================= */

type LedgerStore struct {
	DB *gorm.DB
}

func NewLedgerStore(db *gorm.DB) *LedgerStore { return &LedgerStore{DB: db} }

type FeeLineItems struct {
	RegistrationCentavos int64
	TuitionCentavos      int64
	MiscCentavos         int64
	BooksCentavos        int64
	OtherCentavos        int64
}

// CreateOrGet is idempotent: the (student, school year) unique index absorbs
// concurrent creates and the loser re-reads the winner's row.
func (s *LedgerStore) CreateOrGet(ctx context.Context, studentID, schoolYearID uuid.UUID) (*model.StudentLedger, error) {
	var m model.StudentLedger
	err := s.DB.WithContext(ctx).
		Where("student_ledger_student_id = ? AND student_ledger_school_year_id = ?", studentID, schoolYearID).
		First(&m).Error
	if err == nil {
		return &m, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := model.StudentLedger{
		StudentLedgerStudentID:    studentID,
		StudentLedgerSchoolYearID: schoolYearID,
		StudentLedgerPaymentStatus: model.DerivePaymentStatus(0, 0, 0),
	}
	if err := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&fresh).Error; err != nil {
		return nil, err
	}

	// re-read either our insert or the concurrent winner
	if err := s.DB.WithContext(ctx).
		Where("student_ledger_student_id = ? AND student_ledger_school_year_id = ?", studentID, schoolYearID).
		First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// PostAssessment sets the assessed fee components and optionally the due
// date, then recomputes the derived status inside the same tx.
func (s *LedgerStore) PostAssessment(ctx context.Context, ledgerID uuid.UUID, items FeeLineItems, dueDate *time.Time, actorID uuid.UUID) (*model.StudentLedger, error) {
	if items.RegistrationCentavos < 0 || items.TuitionCentavos < 0 ||
		items.MiscCentavos < 0 || items.BooksCentavos < 0 || items.OtherCentavos < 0 {
		return nil, apperr.Validation("fee line items must not be negative")
	}

	var out model.StudentLedger
	err := database.WithRetry(s.DB.WithContext(ctx), func(tx *gorm.DB) error {
		m, err := LockLedger(tx, ledgerID)
		if err != nil {
			return err
		}

		m.StudentLedgerRegistrationFeeCentavos = items.RegistrationCentavos
		m.StudentLedgerTuitionFeeCentavos = items.TuitionCentavos
		m.StudentLedgerMiscFeeCentavos = items.MiscCentavos
		m.StudentLedgerBooksFeeCentavos = items.BooksCentavos
		m.StudentLedgerOtherFeeCentavos = items.OtherCentavos
		if dueDate != nil {
			m.StudentLedgerDueDate = dueDate
		}

		if m.StudentLedgerGrantDiscountCentavos > m.TotalAssessedCentavos() {
			return apperr.Invariant("assessment below currently applied grant discount")
		}

		m.Recompute()
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

// ApplyGrant attaches a grant instance and recomputes the ledger's discount
// from the live instance rows; the whole attach rolls back when the new
// discount would exceed the assessed total, so no unclamped intermediate is
// ever persisted.
func (s *LedgerStore) ApplyGrant(ctx context.Context, ledgerID, grantID uuid.UUID, amountCentavos int64, actorID uuid.UUID) (*model.StudentLedger, error) {
	if amountCentavos <= 0 {
		return nil, apperr.Validation("grant amount must be positive")
	}

	var out model.StudentLedger
	err := database.WithRetry(s.DB.WithContext(ctx), func(tx *gorm.DB) error {
		m, err := LockLedger(tx, ledgerID)
		if err != nil {
			return err
		}

		var def academicsModel.GrantDefinition
		if err := tx.Where("grant_id = ?", grantID).First(&def).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("grant not found")
			}
			return err
		}
		if !def.GrantIsActive {
			return apperr.Validation("grant is inactive")
		}

		inst := model.StudentLedgerGrant{
			StudentLedgerGrantLedgerID:        ledgerID,
			StudentLedgerGrantGrantID:         grantID,
			StudentLedgerGrantAmountCentavos:  amountCentavos,
			StudentLedgerGrantAppliedByUserID: actorID,
		}
		if err := tx.Create(&inst).Error; err != nil {
			if isUniqueViolation(err) {
				return apperr.Invariant("grant already applied to this ledger")
			}
			return err
		}

		discount, err := sumGrantInstances(tx, ledgerID)
		if err != nil {
			return err
		}
		if discount > m.TotalAssessedCentavos() {
			return apperr.Invariant("grant discount would exceed total assessed fees")
		}

		m.StudentLedgerGrantDiscountCentavos = discount
		m.Recompute()
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

// RemoveGrant deletes an applied instance and recomputes the discount. The
// row goes away for real so the grant can be applied again later (a clerk
// correcting a wrong amount removes and re-applies). Removing after payments
// can only lower the discount; the read-time balance clamp is the safety net
// against over-payment edge cases.
func (s *LedgerStore) RemoveGrant(ctx context.Context, ledgerID, ledgerGrantID uuid.UUID, actorID uuid.UUID) (*model.StudentLedger, error) {
	var out model.StudentLedger
	err := database.WithRetry(s.DB.WithContext(ctx), func(tx *gorm.DB) error {
		m, err := LockLedger(tx, ledgerID)
		if err != nil {
			return err
		}

		res := tx.Where("student_ledger_grant_id = ? AND student_ledger_grant_ledger_id = ?", ledgerGrantID, ledgerID).
			Delete(&model.StudentLedgerGrant{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("applied grant not found on this ledger")
		}

		discount, err := sumGrantInstances(tx, ledgerID)
		if err != nil {
			return err
		}
		m.StudentLedgerGrantDiscountCentavos = discount
		m.Recompute()
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

// Get is a lock-free snapshot read.
func (s *LedgerStore) Get(ctx context.Context, ledgerID uuid.UUID) (*model.StudentLedger, error) {
	var m model.StudentLedger
	if err := s.DB.WithContext(ctx).
		Where("student_ledger_id = ?", ledgerID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("ledger not found")
		}
		return nil, err
	}
	return &m, nil
}

/* =========================================================
   Shared tx helpers (also used by recorder/verifier/overdue)
========================================================= */

// LockLedger reads the ledger row FOR UPDATE within tx.
func LockLedger(tx *gorm.DB, ledgerID uuid.UUID) (*model.StudentLedger, error) {
	var m model.StudentLedger
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("student_ledger_id = ?", ledgerID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("ledger not found")
		}
		return nil, err
	}
	return &m, nil
}

func sumGrantInstances(tx *gorm.DB, ledgerID uuid.UUID) (int64, error) {
	var total int64
	err := tx.Model(&model.StudentLedgerGrant{}).
		Where("student_ledger_grant_ledger_id = ?", ledgerID).
		Select("COALESCE(SUM(student_ledger_grant_amount_centavos), 0)").
		Scan(&total).Error
	return total, err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
