package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairKeyUnordered(t *testing.T) {
	a := TransferCandidate{
		Outgoing: Transaction{ID: "tx-b"},
		Incoming: Transaction{ID: "tx-a"},
	}
	b := TransferCandidate{
		Outgoing: Transaction{ID: "tx-a"},
		Incoming: Transaction{ID: "tx-b"},
	}

	assert.Equal(t, "tx-a|tx-b", a.PairKey())
	assert.Equal(t, a.PairKey(), b.PairKey(), "key must not depend on leg order")
}

func TestPairFromCandidate(t *testing.T) {
	c := TransferCandidate{
		Outgoing:           Transaction{ID: "out-1", AccountID: "checking"},
		Incoming:           Transaction{ID: "in-1", AccountID: "savings"},
		Amount:             50.00,
		DateDifferenceDays: 1,
		Confidence:         95,
	}

	pair := PairFromCandidate(c)
	assert.Equal(t, "out-1", pair.OutgoingID)
	assert.Equal(t, "in-1", pair.IncomingID)
	assert.Equal(t, 50.00, pair.Amount)
	assert.Equal(t, 1, pair.DateDifferenceDays)
	assert.False(t, pair.ConfirmedAt.IsZero())
	assert.Equal(t, c.PairKey(), pair.Key())
}

func TestTransactionDirection(t *testing.T) {
	debit := Transaction{Amount: -50}
	credit := Transaction{Amount: 50}
	zero := Transaction{Amount: 0}

	assert.True(t, debit.IsOutgoing())
	assert.False(t, debit.IsIncoming())
	assert.True(t, credit.IsIncoming())
	assert.False(t, credit.IsOutgoing())
	assert.False(t, zero.IsOutgoing())
	assert.False(t, zero.IsIncoming())
}
