package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentLedgerGrant is one applied grant instance on one ledger (the
// many-to-many between the grants catalog and student_ledgers). The ledger's
// grant_discount column is the sum over its instance rows. Removal deletes
// the row outright so the same grant can be re-applied; the recomputed
// discount on the ledger is the audit trail.
type StudentLedgerGrant struct {
	StudentLedgerGrantID uuid.UUID `gorm:"column:student_ledger_grant_id;type:uuid;default:gen_random_uuid();primaryKey" json:"student_ledger_grant_id"`

	StudentLedgerGrantLedgerID uuid.UUID `gorm:"column:student_ledger_grant_ledger_id;type:uuid;not null;index;uniqueIndex:uniq_ledger_grant,priority:1" json:"student_ledger_grant_ledger_id"`
	StudentLedgerGrantGrantID  uuid.UUID `gorm:"column:student_ledger_grant_grant_id;type:uuid;not null;index;uniqueIndex:uniq_ledger_grant,priority:2" json:"student_ledger_grant_grant_id"`

	StudentLedgerGrantAmountCentavos int64 `gorm:"column:student_ledger_grant_amount_centavos;not null;check:student_ledger_grant_amount_centavos>=0" json:"student_ledger_grant_amount_centavos"`

	StudentLedgerGrantAppliedByUserID uuid.UUID `gorm:"column:student_ledger_grant_applied_by_user_id;type:uuid;not null" json:"student_ledger_grant_applied_by_user_id"`

	StudentLedgerGrantCreatedAt time.Time `gorm:"column:student_ledger_grant_created_at;not null;default:now()" json:"student_ledger_grant_created_at"`
}

func (StudentLedgerGrant) TableName() string { return "student_ledger_grants" }

func (m *StudentLedgerGrant) BeforeCreate(tx *gorm.DB) error {
	if m.StudentLedgerGrantCreatedAt.IsZero() {
		m.StudentLedgerGrantCreatedAt = time.Now()
	}
	return nil
}
