// file: internals/features/finance/gateway/service/status_map.go
package service

import (
	"strings"

	"campushub_backend/internals/features/finance/gateway/model"
)

// CallbackAction tells the callback handler what to do with an event.
type CallbackAction int

const (
	ActionNone CallbackAction = iota
	ActionVerify
	ActionFail
	ActionRefund
)

// MapProviderStatus converts a raw provider status string into the state
// machine action for our transaction. Unknown statuses map to ActionNone
// so a new provider status can never corrupt a transaction.
func MapProviderStatus(provider model.PaymentProvider, rawStatus, fraudStatus string) CallbackAction {
	ts := strings.ToLower(strings.TrimSpace(rawStatus))
	fraud := strings.ToLower(strings.TrimSpace(fraudStatus))

	switch provider {
	case model.ProviderMidtrans:
		switch ts {
		case "capture":
			if fraud == "accept" {
				return ActionVerify
			}
			if fraud == "challenge" {
				return ActionNone
			}
			return ActionFail
		case "settlement":
			return ActionVerify
		case "pending":
			return ActionNone
		case "deny", "cancel", "expire", "failure":
			return ActionFail
		case "refund", "partial_refund":
			return ActionRefund
		}
		return ActionNone

	case model.ProviderGcash, model.ProviderMaya:
		switch ts {
		case "success", "paid", "payment_success", "completed":
			return ActionVerify
		case "pending", "processing":
			return ActionNone
		case "failed", "declined", "expired", "cancelled", "voided":
			return ActionFail
		case "refunded":
			return ActionRefund
		}
		return ActionNone

	default:
		// bank transfers and manual channels never auto-transition
		return ActionNone
	}
}
