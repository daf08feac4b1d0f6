package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	pending := OnlineTransaction{OnlineTransactionStatus: TransactionStatusPending}
	assert.True(t, pending.CanTransitionTo(TransactionStatusVerified))
	assert.True(t, pending.CanTransitionTo(TransactionStatusFailed))
	assert.False(t, pending.CanTransitionTo(TransactionStatusRefunded))
	assert.False(t, pending.CanTransitionTo(TransactionStatusPending))

	verified := OnlineTransaction{OnlineTransactionStatus: TransactionStatusVerified}
	assert.True(t, verified.CanTransitionTo(TransactionStatusRefunded))
	assert.False(t, verified.CanTransitionTo(TransactionStatusFailed))
	assert.False(t, verified.CanTransitionTo(TransactionStatusVerified))

	// terminal states go nowhere
	for _, s := range []TransactionStatus{TransactionStatusFailed, TransactionStatusRefunded} {
		m := OnlineTransaction{OnlineTransactionStatus: s}
		for _, target := range []TransactionStatus{TransactionStatusPending, TransactionStatusVerified, TransactionStatusFailed, TransactionStatusRefunded} {
			assert.False(t, m.CanTransitionTo(target), "from %s to %s", s, target)
		}
	}
}
