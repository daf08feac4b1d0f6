// file: internals/features/approvals/documents/service/request_pipeline.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	database "campushub_backend/internals/databases"
	academicsModel "campushub_backend/internals/features/academics/model"
	"campushub_backend/internals/features/approvals/documents/model"
	"campushub_backend/internals/helpers/apperr"
	"campushub_backend/internals/helpers/storage"
)

/* =========================================================
   Request Pipeline

   Registrar decides first, accounting second. Decisions are
   one-shot per stage; re-deciding is rejected. Each decision
   runs with the request row locked FOR UPDATE so two clerks
   cannot decide the same stage at once.
========================================================= */

type RequestPipeline struct {
	DB       *gorm.DB
	Receipts storage.ReceiptChecker
}

func NewRequestPipeline(db *gorm.DB, receipts storage.ReceiptChecker) *RequestPipeline {
	return &RequestPipeline{DB: db, Receipts: receipts}
}

type CreateRequestInput struct {
	StudentID   uuid.UUID
	Type        model.DocumentType
	Copies      int
	Processing  model.ProcessingSpeed
	Purpose     *string
	ReceiptPath *string
}

// Create opens a request with its fee frozen from the schedule.
func (p *RequestPipeline) Create(ctx context.Context, in CreateRequestInput) (*model.DocumentRequest, error) {
	fee, ok := model.ComputeFee(in.Type, in.Copies, in.Processing)
	if !ok {
		return nil, apperr.Validation("unknown document type or invalid copy count")
	}

	var student academicsModel.Student
	if err := p.DB.WithContext(ctx).
		Select("student_id").
		First(&student, "student_id = ?", in.StudentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("student not found")
		}
		return nil, err
	}

	m := model.DocumentRequest{
		DocumentRequestStudentID:   in.StudentID,
		DocumentRequestType:        in.Type,
		DocumentRequestCopies:      in.Copies,
		DocumentRequestProcessing:  in.Processing,
		DocumentRequestPurpose:     in.Purpose,
		DocumentRequestFeeCentavos: fee,
		DocumentRequestReceiptPath: in.ReceiptPath,
	}
	if err := p.DB.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// AttachReceipt records the payment receipt path. Allowed only while the
// accounting stage is still pending.
func (p *RequestPipeline) AttachReceipt(ctx context.Context, requestID uuid.UUID, path string) (*model.DocumentRequest, error) {
	if path == "" {
		return nil, apperr.Validation("receipt path is required")
	}

	var out model.DocumentRequest
	err := database.WithRetry(p.DB.WithContext(ctx), func(tx *gorm.DB) error {
		m, err := lockRequest(tx, requestID)
		if err != nil {
			return err
		}
		if m.DocumentRequestAccountingStatus != model.StagePending {
			return apperr.InvalidTransition("accounting stage already decided")
		}

		m.DocumentRequestReceiptPath = &path
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

// RegistrarDecide approves or rejects the registrar stage.
func (p *RequestPipeline) RegistrarDecide(ctx context.Context, requestID uuid.UUID, approve bool, remarks string, actorID uuid.UUID) (*model.DocumentRequest, error) {
	if !approve && remarks == "" {
		return nil, apperr.Validation("rejection remarks are required")
	}

	var out model.DocumentRequest
	err := database.WithRetry(p.DB.WithContext(ctx), func(tx *gorm.DB) error {
		m, err := lockRequest(tx, requestID)
		if err != nil {
			return err
		}
		if m.DocumentRequestRegistrarStatus != model.StagePending {
			return apperr.Newf(apperr.KindInvalidTransition, "registrar stage already %s", m.DocumentRequestRegistrarStatus)
		}

		now := time.Now()
		if approve {
			m.DocumentRequestRegistrarStatus = model.StageApproved
		} else {
			m.DocumentRequestRegistrarStatus = model.StageRejected
		}
		m.DocumentRequestRegistrarUserID = &actorID
		m.DocumentRequestRegistrarAt = &now
		if remarks != "" {
			m.DocumentRequestRegistrarRemarks = &remarks
		}

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

// AccountingDecide approves or rejects the accounting stage. The stage
// only opens after registrar approval. When a receipt reference is
// attached, approval requires the file to actually exist on disk.
func (p *RequestPipeline) AccountingDecide(ctx context.Context, requestID uuid.UUID, approve bool, remarks string, actorID uuid.UUID) (*model.DocumentRequest, error) {
	if !approve && remarks == "" {
		return nil, apperr.Validation("rejection remarks are required")
	}

	var out model.DocumentRequest
	err := database.WithRetry(p.DB.WithContext(ctx), func(tx *gorm.DB) error {
		m, err := lockRequest(tx, requestID)
		if err != nil {
			return err
		}
		if m.DocumentRequestAccountingStatus != model.StagePending {
			return apperr.Newf(apperr.KindInvalidTransition, "accounting stage already %s", m.DocumentRequestAccountingStatus)
		}
		if m.DocumentRequestRegistrarStatus != model.StageApproved {
			return apperr.Precondition("registrar approval is required first")
		}

		if approve && m.DocumentRequestReceiptPath != nil && *m.DocumentRequestReceiptPath != "" {
			if !p.Receipts.Exists(*m.DocumentRequestReceiptPath) {
				return apperr.NotFound("payment receipt file not found")
			}
		}

		now := time.Now()
		if approve {
			m.DocumentRequestAccountingStatus = model.StageApproved
		} else {
			m.DocumentRequestAccountingStatus = model.StageRejected
		}
		m.DocumentRequestAccountingUserID = &actorID
		m.DocumentRequestAccountingAt = &now
		if remarks != "" {
			m.DocumentRequestAccountingRemarks = &remarks
		}

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

// Get returns a request by id.
func (p *RequestPipeline) Get(ctx context.Context, requestID uuid.UUID) (*model.DocumentRequest, error) {
	var m model.DocumentRequest
	if err := p.DB.WithContext(ctx).
		First(&m, "document_request_id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("document request not found")
		}
		return nil, err
	}
	return &m, nil
}

func lockRequest(tx *gorm.DB, id uuid.UUID) (*model.DocumentRequest, error) {
	var m model.DocumentRequest
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "document_request_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("document request not found")
		}
		return nil, err
	}
	return &m, nil
}
