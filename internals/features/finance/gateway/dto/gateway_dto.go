// file: internals/features/finance/gateway/dto/gateway_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"campushub_backend/internals/features/finance/gateway/model"
)

////////////////////////////////////////////////////////////////////////////////
// ONLINE TRANSACTIONS — DTO
////////////////////////////////////////////////////////////////////////////////

type CreateTransactionDTO struct {
	LedgerID      uuid.UUID      `json:"ledger_id" validate:"required"`
	Provider      string         `json:"provider" validate:"required,oneof=gcash maya bank_transfer midtrans other"`
	Reference     string         `json:"reference" validate:"required,min=4,max=120"`
	GrossCentavos int64          `json:"gross_centavos" validate:"required,gt=0"`
	FeeCentavos   int64          `json:"fee_centavos" validate:"min=0"`
	Meta          datatypes.JSON `json:"meta,omitempty"`
}

type CheckoutDTO struct {
	LedgerID      uuid.UUID `json:"ledger_id" validate:"required"`
	GrossCentavos int64     `json:"gross_centavos" validate:"required,gt=0"`
	Description   string    `json:"description,omitempty" validate:"max=120"`
	PayerFirst    string    `json:"payer_first_name" validate:"required,max=60"`
	PayerLast     string    `json:"payer_last_name,omitempty" validate:"max=60"`
	PayerEmail    string    `json:"payer_email" validate:"required,email"`
	PayerPhone    string    `json:"payer_phone,omitempty" validate:"max=30"`
}

type FailTransactionDTO struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

type RefundTransactionDTO struct {
	Remarks string `json:"remarks" validate:"omitempty,max=500"`
}

// MidtransCallbackDTO mirrors the notification body Midtrans posts.
type MidtransCallbackDTO struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	PaymentType       string `json:"payment_type"`
}

////////////////////////////////////////////////////////////////////////////////
// RESPONSES
////////////////////////////////////////////////////////////////////////////////

type TransactionResponse struct {
	OnlineTransactionID uuid.UUID `json:"online_transaction_id"`
	LedgerID            uuid.UUID `json:"ledger_id"`
	Provider            string    `json:"provider"`
	Reference           string    `json:"reference"`

	GrossCentavos int64 `json:"gross_centavos"`
	FeeCentavos   int64 `json:"fee_centavos"`
	NetCentavos   int64 `json:"net_centavos"`

	Status        string     `json:"status"`
	PaymentID     *uuid.UUID `json:"payment_id,omitempty"`
	FailureReason *string    `json:"failure_reason,omitempty"`
	RefundRemarks *string    `json:"refund_remarks,omitempty"`

	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	FailedAt   *time.Time `json:"failed_at,omitempty"`
	RefundedAt *time.Time `json:"refunded_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CheckoutResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	SnapToken   string              `json:"snap_token"`
	RedirectURL string              `json:"redirect_url"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func ToTransactionResponse(m model.OnlineTransaction) TransactionResponse {
	return TransactionResponse{
		OnlineTransactionID: m.OnlineTransactionID,
		LedgerID:            m.OnlineTransactionLedgerID,
		Provider:            string(m.OnlineTransactionProvider),
		Reference:           m.OnlineTransactionReference,
		GrossCentavos:       m.OnlineTransactionGrossCentavos,
		FeeCentavos:         m.OnlineTransactionFeeCentavos,
		NetCentavos:         m.OnlineTransactionNetCentavos,
		Status:              string(m.OnlineTransactionStatus),
		PaymentID:           m.OnlineTransactionPaymentID,
		FailureReason:       m.OnlineTransactionFailureReason,
		RefundRemarks:       m.OnlineTransactionRefundRemarks,
		VerifiedAt:          m.OnlineTransactionVerifiedAt,
		FailedAt:            m.OnlineTransactionFailedAt,
		RefundedAt:          m.OnlineTransactionRefundedAt,
		CreatedAt:           m.OnlineTransactionCreatedAt,
		UpdatedAt:           m.OnlineTransactionUpdatedAt,
	}
}

func ToTransactionResponses(list []model.OnlineTransaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToTransactionResponse(m))
	}
	return out
}
