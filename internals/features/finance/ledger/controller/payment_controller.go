// file: internals/features/finance/ledger/controller/payment_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campushub_backend/internals/features/finance/ledger/dto"
	"campushub_backend/internals/features/finance/ledger/model"
	"campushub_backend/internals/features/finance/ledger/service"
	helper "campushub_backend/internals/helpers"
	helperAuth "campushub_backend/internals/helpers/auth"
)

type PaymentHandler struct {
	DB       *gorm.DB
	Recorder *service.PaymentRecorder
}

func NewPaymentHandler(db *gorm.DB) *PaymentHandler {
	return &PaymentHandler{DB: db, Recorder: service.NewPaymentRecorder(db)}
}

// -----------------------------------------
// Record (POST /ledgers/:id/payments)
// Counter payments only; online credits arrive through the gateway verifier.
// -----------------------------------------
func (h *PaymentHandler) Record(c *fiber.Ctx) error {
	ledgerID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	actor, err := helperAuth.ActorID(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var in dto.RecordPaymentDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(c, in); err != nil {
		return err
	}

	pay, err := h.Recorder.Record(c.UserContext(), ledgerID, in.AmountCentavos, model.PaymentMethod(in.Method), in.Reference, actor)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "payment recorded", dto.ToPaymentResponse(*pay))
}

// -----------------------------------------
// Reverse (POST /ledgers/:id/payments/:paymentId/reverse)
// -----------------------------------------
func (h *PaymentHandler) Reverse(c *fiber.Ctx) error {
	ledgerID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	paymentID, err := helper.ParseUUIDParam(c, "paymentId")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	actor, err := helperAuth.ActorID(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var in dto.ReversePaymentDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(c, in); err != nil {
		return err
	}

	rev, err := h.Recorder.Reverse(c.UserContext(), ledgerID, paymentID, in.Reason, actor)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "payment reversed", dto.ToPaymentResponse(*rev))
}

// -----------------------------------------
// History (GET /ledgers/:id/payments)
// Append-only stream, newest first.
// -----------------------------------------
func (h *PaymentHandler) History(c *fiber.Ctx) error {
	ledgerID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	p := helper.ParseFiber(c, "recorded_at", "desc", helper.AdminOpts)

	q := h.DB.WithContext(c.UserContext()).Model(&model.LedgerPayment{}).
		Where("ledger_payment_ledger_id = ?", ledgerID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var list []model.LedgerPayment
	if err := q.Order("ledger_payment_recorded_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "", dto.ToPaymentResponses(list), helper.BuildMeta(total, p))
}
