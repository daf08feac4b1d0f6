// file: internals/features/finance/gateway/controller/callback_controller.go
package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"campushub_backend/internals/features/finance/gateway/dto"
	"campushub_backend/internals/features/finance/gateway/model"
	"campushub_backend/internals/features/finance/gateway/service"
	helper "campushub_backend/internals/helpers"
	"campushub_backend/internals/helpers/apperr"
)

type CallbackHandler struct {
	DB       *gorm.DB
	Verifier *service.Verifier
}

func NewCallbackHandler(db *gorm.DB) *CallbackHandler {
	return &CallbackHandler{DB: db, Verifier: service.NewVerifier(db)}
}

// -----------------------------------------
// Midtrans (POST /callbacks/midtrans) — no auth
//
// Every event body is logged before any state change. Replays are
// harmless: verify on a verified row is a no-op and the outcome is
// recorded on the event. We answer 200 for everything we understood,
// even when the mapped action is rejected by the state machine, so
// the provider stops retrying.
// -----------------------------------------
func (h *CallbackHandler) Midtrans(c *fiber.Ctx) error {
	var in dto.MidtransCallbackDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if in.OrderID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "order_id is required")
	}

	event := model.GatewayCallbackEvent{
		GatewayCallbackEventProvider:  model.ProviderMidtrans,
		GatewayCallbackEventReference: in.OrderID,
		GatewayCallbackEventStatus:    in.TransactionStatus,
		GatewayCallbackEventPayload:   c.Body(),
	}
	if err := h.DB.WithContext(c.UserContext()).Create(&event).Error; err != nil {
		log.Printf("[ERROR] callback event log failed for %s: %v", in.OrderID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "event log failed")
	}

	outcome := h.apply(c, in)

	if err := h.DB.WithContext(c.UserContext()).
		Model(&model.GatewayCallbackEvent{}).
		Where("gateway_callback_event_id = ?", event.GatewayCallbackEventID).
		Update("gateway_callback_event_outcome", outcome).Error; err != nil {
		log.Printf("[WARN] callback outcome update failed for %s: %v", in.OrderID, err)
	}

	return helper.JsonOK(c, "callback processed", fiber.Map{"outcome": outcome})
}

func (h *CallbackHandler) apply(c *fiber.Ctx, in dto.MidtransCallbackDTO) string {
	t, err := h.Verifier.FindByReference(c.UserContext(), in.OrderID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return "ignored: unknown reference"
		}
		return "error: " + err.Error()
	}

	action := service.MapProviderStatus(model.ProviderMidtrans, in.TransactionStatus, in.FraudStatus)
	switch action {
	case service.ActionVerify:
		if _, err := h.Verifier.Verify(c.UserContext(), t.OnlineTransactionID, uuid.Nil); err != nil {
			return "error: " + err.Error()
		}
		return "applied: verified"
	case service.ActionFail:
		reason := "provider status " + in.TransactionStatus
		if _, err := h.Verifier.MarkFailed(c.UserContext(), t.OnlineTransactionID, reason, uuid.Nil); err != nil {
			if apperr.Is(err, apperr.KindInvalidTransition) {
				return "ignored: " + err.Error()
			}
			return "error: " + err.Error()
		}
		return "applied: failed"
	case service.ActionRefund:
		reason := "provider status " + in.TransactionStatus
		if _, err := h.Verifier.Refund(c.UserContext(), t.OnlineTransactionID, reason, uuid.Nil); err != nil {
			if apperr.Is(err, apperr.KindInvalidTransition) {
				return "ignored: " + err.Error()
			}
			return "error: " + err.Error()
		}
		return "applied: refunded"
	default:
		return "ignored: no action for status " + in.TransactionStatus
	}
}
