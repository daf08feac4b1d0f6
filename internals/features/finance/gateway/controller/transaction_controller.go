// file: internals/features/finance/gateway/controller/transaction_controller.go
package controller

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"campushub_backend/internals/features/finance/gateway/dto"
	"campushub_backend/internals/features/finance/gateway/model"
	"campushub_backend/internals/features/finance/gateway/service"
	helper "campushub_backend/internals/helpers"
	helperAuth "campushub_backend/internals/helpers/auth"
)

type TransactionHandler struct {
	DB       *gorm.DB
	Verifier *service.Verifier
}

func NewTransactionHandler(db *gorm.DB) *TransactionHandler {
	return &TransactionHandler{DB: db, Verifier: service.NewVerifier(db)}
}

// -----------------------------------------
// List (GET /transactions)
// Filters: ledger_id, provider, status
// -----------------------------------------
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	q := h.DB.WithContext(c.UserContext()).Model(&model.OnlineTransaction{})

	if v := c.Query("ledger_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("online_transaction_ledger_id = ?", id)
		}
	}
	if v := c.Query("provider"); v != "" {
		q = q.Where("online_transaction_provider = ?", strings.ToLower(v))
	}
	if v := c.Query("status"); v != "" {
		q = q.Where("online_transaction_status = ?", strings.ToLower(v))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var list []model.OnlineTransaction
	if err := q.Order("online_transaction_created_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "", dto.ToTransactionResponses(list), helper.BuildMeta(total, p))
}

// -----------------------------------------
// Detail (GET /transactions/:id)
// -----------------------------------------
func (h *TransactionHandler) Detail(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var t model.OnlineTransaction
	if err := h.DB.WithContext(c.UserContext()).
		First(&t, "online_transaction_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "transaction not found")
	}
	return helper.JsonOK(c, "", dto.ToTransactionResponse(t))
}

// -----------------------------------------
// Create (POST /transactions) — register a pending attempt
// Idempotent on the provider reference.
// -----------------------------------------
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(c, in); err != nil {
		return err
	}

	t, err := h.Verifier.CreatePending(c.UserContext(), in.LedgerID,
		model.PaymentProvider(in.Provider), in.Reference, in.GrossCentavos, in.FeeCentavos, in.Meta)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "transaction registered", dto.ToTransactionResponse(*t))
}

// -----------------------------------------
// Checkout (POST /transactions/checkout)
// Registers a midtrans attempt and returns the Snap token.
// -----------------------------------------
func (h *TransactionHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(c, in); err != nil {
		return err
	}

	reference := fmt.Sprintf("CHB-%s", uuid.NewString())

	t, err := h.Verifier.CreatePending(c.UserContext(), in.LedgerID,
		model.ProviderMidtrans, reference, in.GrossCentavos, 0, nil)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	token, redirectURL, err := service.GenerateSnapToken(reference, in.GrossCentavos, in.Description, service.PayerInput{
		FirstName: in.PayerFirst,
		LastName:  in.PayerLast,
		Email:     in.PayerEmail,
		Phone:     in.PayerPhone,
	})
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	return helper.JsonCreated(c, "checkout created", dto.CheckoutResponse{
		Transaction: dto.ToTransactionResponse(*t),
		SnapToken:   token,
		RedirectURL: redirectURL,
	})
}

// -----------------------------------------
// Verify (POST /transactions/:id/verify) — manual confirmation
// -----------------------------------------
func (h *TransactionHandler) Verify(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	actor, err := helperAuth.ActorID(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	t, err := h.Verifier.Verify(c.UserContext(), id, actor)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "transaction verified", dto.ToTransactionResponse(*t))
}

// -----------------------------------------
// Fail (POST /transactions/:id/fail)
// -----------------------------------------
func (h *TransactionHandler) Fail(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	actor, err := helperAuth.ActorID(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var in dto.FailTransactionDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(c, in); err != nil {
		return err
	}

	t, err := h.Verifier.MarkFailed(c.UserContext(), id, in.Reason, actor)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "transaction marked failed", dto.ToTransactionResponse(*t))
}

// -----------------------------------------
// Refund (POST /transactions/:id/refund)
// -----------------------------------------
func (h *TransactionHandler) Refund(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	actor, err := helperAuth.ActorID(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var in dto.RefundTransactionDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(c, in); err != nil {
		return err
	}

	t, err := h.Verifier.Refund(c.UserContext(), id, in.Remarks, actor)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "transaction refunded", dto.ToTransactionResponse(*t))
}
