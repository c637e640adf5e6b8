package model

import "time"

// TransferPair is a confirmed transfer between two accounts, as persisted.
// Identity is the ordered (outgoing, incoming) transaction pair; committing
// the same pair twice is a no-op.
type TransferPair struct {
	ConfirmedAt        time.Time
	OutgoingID         string
	IncomingID         string
	Amount             float64
	DateDifferenceDays int
}

// PairFromCandidate builds the persistable pair for a confirmed candidate.
func PairFromCandidate(c TransferCandidate) TransferPair {
	return TransferPair{
		OutgoingID:         c.Outgoing.ID,
		IncomingID:         c.Incoming.ID,
		Amount:             c.Amount,
		DateDifferenceDays: c.DateDifferenceDays,
		ConfirmedAt:        time.Now(),
	}
}

// Key returns the unordered pair identity, mirroring TransferCandidate.PairKey.
func (p TransferPair) Key() string {
	a, b := p.OutgoingID, p.IncomingID
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}
