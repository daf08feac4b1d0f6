// file: internals/features/approvals/documents/model/document_request_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================================
   ENUMS
========================================================= */

type DocumentType string

const (
	DocumentTypeTranscript     DocumentType = "transcript"
	DocumentTypeDiploma        DocumentType = "diploma"
	DocumentTypeGoodMoral      DocumentType = "good_moral"
	DocumentTypeEnrollmentCert DocumentType = "enrollment_cert"
	DocumentTypeForm137        DocumentType = "form_137"
)

type ProcessingSpeed string

const (
	ProcessingNormal ProcessingSpeed = "normal"
	ProcessingRush   ProcessingSpeed = "rush"
)

type StageStatus string

const (
	StagePending  StageStatus = "pending"
	StageApproved StageStatus = "approved"
	StageRejected StageStatus = "rejected"
)

/* =========================================================
   MODEL — document_requests

   Two independent approval stages. Registrar decides on
   record completeness, accounting decides on payment. The
   accounting stage only opens after the registrar stage is
   approved; each stage is decided once.
========================================================= */

type DocumentRequest struct {
	DocumentRequestID uuid.UUID `gorm:"column:document_request_id;type:uuid;default:gen_random_uuid();primaryKey" json:"document_request_id"`

	DocumentRequestStudentID uuid.UUID `gorm:"column:document_request_student_id;type:uuid;not null;index" json:"document_request_student_id"`

	DocumentRequestType       DocumentType    `gorm:"column:document_request_type;type:varchar(30);not null" json:"document_request_type"`
	DocumentRequestCopies     int             `gorm:"column:document_request_copies;not null;default:1;check:document_request_copies > 0" json:"document_request_copies"`
	DocumentRequestProcessing ProcessingSpeed `gorm:"column:document_request_processing;type:varchar(10);not null;default:'normal'" json:"document_request_processing"`
	DocumentRequestPurpose    *string         `gorm:"column:document_request_purpose;type:text" json:"document_request_purpose,omitempty"`

	// frozen at create, never recomputed
	DocumentRequestFeeCentavos int64 `gorm:"column:document_request_fee_centavos;not null;check:document_request_fee_centavos >= 0" json:"document_request_fee_centavos"`

	// payment receipt presented to accounting
	DocumentRequestReceiptPath *string `gorm:"column:document_request_receipt_path;type:varchar(255)" json:"document_request_receipt_path,omitempty"`

	// registrar stage
	DocumentRequestRegistrarStatus  StageStatus `gorm:"column:document_request_registrar_status;type:varchar(10);not null;default:'pending';index" json:"document_request_registrar_status"`
	DocumentRequestRegistrarUserID  *uuid.UUID  `gorm:"column:document_request_registrar_user_id;type:uuid" json:"document_request_registrar_user_id,omitempty"`
	DocumentRequestRegistrarAt      *time.Time  `gorm:"column:document_request_registrar_at" json:"document_request_registrar_at,omitempty"`
	DocumentRequestRegistrarRemarks *string     `gorm:"column:document_request_registrar_remarks;type:text" json:"document_request_registrar_remarks,omitempty"`

	// accounting stage
	DocumentRequestAccountingStatus  StageStatus `gorm:"column:document_request_accounting_status;type:varchar(10);not null;default:'pending';index" json:"document_request_accounting_status"`
	DocumentRequestAccountingUserID  *uuid.UUID  `gorm:"column:document_request_accounting_user_id;type:uuid" json:"document_request_accounting_user_id,omitempty"`
	DocumentRequestAccountingAt      *time.Time  `gorm:"column:document_request_accounting_at" json:"document_request_accounting_at,omitempty"`
	DocumentRequestAccountingRemarks *string     `gorm:"column:document_request_accounting_remarks;type:text" json:"document_request_accounting_remarks,omitempty"`

	DocumentRequestCreatedAt time.Time      `gorm:"column:document_request_created_at;not null;default:now()" json:"document_request_created_at"`
	DocumentRequestUpdatedAt time.Time      `gorm:"column:document_request_updated_at;not null;default:now()" json:"document_request_updated_at"`
	DocumentRequestDeletedAt gorm.DeletedAt `gorm:"column:document_request_deleted_at;index" json:"document_request_deleted_at,omitempty"`
}

func (DocumentRequest) TableName() string { return "document_requests" }

func (m *DocumentRequest) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.DocumentRequestCreatedAt.IsZero() {
		m.DocumentRequestCreatedAt = now
	}
	m.DocumentRequestUpdatedAt = now
	return nil
}

func (m *DocumentRequest) BeforeUpdate(tx *gorm.DB) error {
	m.DocumentRequestUpdatedAt = time.Now()
	return nil
}

// OverallStatus folds the two stages into one label for listings.
func (m *DocumentRequest) OverallStatus() string {
	if m.DocumentRequestRegistrarStatus == StageRejected || m.DocumentRequestAccountingStatus == StageRejected {
		return "rejected"
	}
	if m.DocumentRequestRegistrarStatus == StageApproved && m.DocumentRequestAccountingStatus == StageApproved {
		return "ready_for_release"
	}
	if m.DocumentRequestRegistrarStatus == StageApproved {
		return "awaiting_payment_check"
	}
	return "awaiting_registrar"
}

/* =========================================================
   Fee schedule
========================================================= */

// base fee per copy, in centavos
var documentBaseFees = map[DocumentType]int64{
	DocumentTypeTranscript:     15000,
	DocumentTypeDiploma:        50000,
	DocumentTypeGoodMoral:      10000,
	DocumentTypeEnrollmentCert: 10000,
	DocumentTypeForm137:        20000,
}

// ComputeFee returns the total fee for a request. Rush processing costs
// half again the normal price; the ×1.5 is applied to the whole amount
// and truncated to a centavo.
func ComputeFee(docType DocumentType, copies int, processing ProcessingSpeed) (int64, bool) {
	base, ok := documentBaseFees[docType]
	if !ok || copies <= 0 {
		return 0, false
	}
	total := base * int64(copies)
	if processing == ProcessingRush {
		total = total * 3 / 2
	}
	return total, true
}
