// file: internals/features/approvals/documents/dto/document_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"campushub_backend/internals/features/approvals/documents/model"
)

////////////////////////////////////////////////////////////////////////////////
// DOCUMENT REQUESTS — DTO
////////////////////////////////////////////////////////////////////////////////

type CreateRequestDTO struct {
	StudentID   uuid.UUID `json:"student_id" validate:"required"`
	Type        string    `json:"type" validate:"required,oneof=transcript diploma good_moral enrollment_cert form_137"`
	Copies      int       `json:"copies" validate:"required,gt=0,max=50"`
	Processing  string    `json:"processing" validate:"required,oneof=normal rush"`
	Purpose     *string   `json:"purpose,omitempty" validate:"omitempty,max=500"`
	ReceiptPath *string   `json:"receipt_path,omitempty" validate:"omitempty,max=255"`
}

type StageDecisionDTO struct {
	Approve bool   `json:"approve"`
	Remarks string `json:"remarks,omitempty" validate:"max=500"`
}

type AttachReceiptDTO struct {
	ReceiptPath string `json:"receipt_path" validate:"required,max=255"`
}

type QuoteFeeDTO struct {
	Type       string `json:"type" validate:"required,oneof=transcript diploma good_moral enrollment_cert form_137"`
	Copies     int    `json:"copies" validate:"required,gt=0,max=50"`
	Processing string `json:"processing" validate:"required,oneof=normal rush"`
}

////////////////////////////////////////////////////////////////////////////////
// RESPONSES
////////////////////////////////////////////////////////////////////////////////

type StageResponse struct {
	Status  string     `json:"status"`
	UserID  *uuid.UUID `json:"user_id,omitempty"`
	At      *time.Time `json:"at,omitempty"`
	Remarks *string    `json:"remarks,omitempty"`
}

type RequestResponse struct {
	DocumentRequestID uuid.UUID `json:"document_request_id"`
	StudentID         uuid.UUID `json:"student_id"`

	Type       string  `json:"type"`
	Copies     int     `json:"copies"`
	Processing string  `json:"processing"`
	Purpose    *string `json:"purpose,omitempty"`

	FeeCentavos int64   `json:"fee_centavos"`
	ReceiptPath *string `json:"receipt_path,omitempty"`

	Registrar  StageResponse `json:"registrar"`
	Accounting StageResponse `json:"accounting"`

	OverallStatus string `json:"overall_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type FeeQuoteResponse struct {
	Type        string `json:"type"`
	Copies      int    `json:"copies"`
	Processing  string `json:"processing"`
	FeeCentavos int64  `json:"fee_centavos"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func ToRequestResponse(m model.DocumentRequest) RequestResponse {
	return RequestResponse{
		DocumentRequestID: m.DocumentRequestID,
		StudentID:         m.DocumentRequestStudentID,
		Type:              string(m.DocumentRequestType),
		Copies:            m.DocumentRequestCopies,
		Processing:        string(m.DocumentRequestProcessing),
		Purpose:           m.DocumentRequestPurpose,
		FeeCentavos:       m.DocumentRequestFeeCentavos,
		ReceiptPath:       m.DocumentRequestReceiptPath,
		Registrar: StageResponse{
			Status:  string(m.DocumentRequestRegistrarStatus),
			UserID:  m.DocumentRequestRegistrarUserID,
			At:      m.DocumentRequestRegistrarAt,
			Remarks: m.DocumentRequestRegistrarRemarks,
		},
		Accounting: StageResponse{
			Status:  string(m.DocumentRequestAccountingStatus),
			UserID:  m.DocumentRequestAccountingUserID,
			At:      m.DocumentRequestAccountingAt,
			Remarks: m.DocumentRequestAccountingRemarks,
		},
		OverallStatus: m.OverallStatus(),
		CreatedAt:     m.DocumentRequestCreatedAt,
		UpdatedAt:     m.DocumentRequestUpdatedAt,
	}
}

func ToRequestResponses(list []model.DocumentRequest) []RequestResponse {
	out := make([]RequestResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToRequestResponse(m))
	}
	return out
}
