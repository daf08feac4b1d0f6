package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"campushub_backend/internals/features/finance/gateway/model"
)

func TestMapProviderStatusMidtrans(t *testing.T) {
	cases := []struct {
		rawStatus   string
		fraudStatus string
		want        CallbackAction
	}{
		{"settlement", "", ActionVerify},
		{"capture", "accept", ActionVerify},
		{"capture", "challenge", ActionNone},
		{"capture", "deny", ActionFail},
		{"pending", "", ActionNone},
		{"deny", "", ActionFail},
		{"cancel", "", ActionFail},
		{"expire", "", ActionFail},
		{"failure", "", ActionFail},
		{"refund", "", ActionRefund},
		{"partial_refund", "", ActionRefund},
		{"some_new_status", "", ActionNone},
		{"", "", ActionNone},
	}
	for _, tc := range cases {
		got := MapProviderStatus(model.ProviderMidtrans, tc.rawStatus, tc.fraudStatus)
		assert.Equal(t, tc.want, got, "status=%q fraud=%q", tc.rawStatus, tc.fraudStatus)
	}

	// case and whitespace are normalized
	assert.Equal(t, ActionVerify, MapProviderStatus(model.ProviderMidtrans, " Settlement ", ""))
}

func TestMapProviderStatusWallets(t *testing.T) {
	for _, p := range []model.PaymentProvider{model.ProviderGcash, model.ProviderMaya} {
		assert.Equal(t, ActionVerify, MapProviderStatus(p, "success", ""))
		assert.Equal(t, ActionVerify, MapProviderStatus(p, "payment_success", ""))
		assert.Equal(t, ActionNone, MapProviderStatus(p, "processing", ""))
		assert.Equal(t, ActionFail, MapProviderStatus(p, "declined", ""))
		assert.Equal(t, ActionRefund, MapProviderStatus(p, "refunded", ""))
		assert.Equal(t, ActionNone, MapProviderStatus(p, "mystery", ""))
	}
}

func TestMapProviderStatusManualChannels(t *testing.T) {
	// bank transfers are verified by a person, never by callback
	assert.Equal(t, ActionNone, MapProviderStatus(model.ProviderBankTransfer, "success", ""))
	assert.Equal(t, ActionNone, MapProviderStatus(model.ProviderOther, "paid", ""))
}
