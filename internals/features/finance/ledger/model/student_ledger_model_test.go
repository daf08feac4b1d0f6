package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBalance(t *testing.T) {
	assert.Equal(t, int64(8500), Balance(10500, 2000, 0))
	assert.Equal(t, int64(0), Balance(10500, 2000, 8500))
	assert.Equal(t, int64(0), Balance(0, 0, 0))

	// overpayment clamps to zero instead of going negative
	assert.Equal(t, int64(0), Balance(10000, 0, 15000))
	assert.Equal(t, int64(0), Balance(10000, 12000, 0))
}

func TestDerivePaymentStatus(t *testing.T) {
	// zero balance wins even when nothing was paid
	assert.Equal(t, PaymentStatusPaid, DerivePaymentStatus(0, 0, 0))
	assert.Equal(t, PaymentStatusPaid, DerivePaymentStatus(5000, 5000, 0))
	assert.Equal(t, PaymentStatusPaid, DerivePaymentStatus(10500, 2000, 8500))

	assert.Equal(t, PaymentStatusUnpaid, DerivePaymentStatus(10500, 2000, 0))
	assert.Equal(t, PaymentStatusPartial, DerivePaymentStatus(10500, 2000, 1))
	assert.Equal(t, PaymentStatusPartial, DerivePaymentStatus(10500, 2000, 8499))
}

func TestRecompute(t *testing.T) {
	m := StudentLedger{
		StudentLedgerTuitionFeeCentavos:    10000,
		StudentLedgerMiscFeeCentavos:       500,
		StudentLedgerGrantDiscountCentavos: 2000,
	}
	m.Recompute()
	assert.Equal(t, int64(10500), m.TotalAssessedCentavos())
	assert.Equal(t, int64(8500), m.BalanceCentavos())
	assert.Equal(t, PaymentStatusUnpaid, m.StudentLedgerPaymentStatus)

	m.StudentLedgerTotalPaidCentavos = 3000
	m.Recompute()
	assert.Equal(t, int64(5500), m.BalanceCentavos())
	assert.Equal(t, PaymentStatusPartial, m.StudentLedgerPaymentStatus)

	m.StudentLedgerTotalPaidCentavos = 8500
	m.Recompute()
	assert.Equal(t, int64(0), m.BalanceCentavos())
	assert.Equal(t, PaymentStatusPaid, m.StudentLedgerPaymentStatus)
}

func TestLedgerPaymentIsReversal(t *testing.T) {
	p := LedgerPayment{}
	assert.False(t, p.IsReversal())

	orig := p.LedgerPaymentID
	p.LedgerPaymentReversesPaymentID = &orig
	assert.True(t, p.IsReversal())
}
