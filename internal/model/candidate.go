package model

import "fmt"

// TransferCandidate is a likely inter-account transfer: an outgoing debit
// and an incoming credit of equal magnitude on different accounts. It is a
// pure function of its two transactions and exists only for the duration of
// one review cycle; it is never persisted on its own.
type TransferCandidate struct {
	Outgoing           Transaction
	Incoming           Transaction
	Amount             float64 // absolute magnitude shared by both legs
	DateDifferenceDays int
	Confidence         int // 0-100, decays with date drift
}

// PairKey returns the unordered identity of the candidate's transaction
// pair, used to deduplicate candidates across matcher passes.
func (c TransferCandidate) PairKey() string {
	a, b := c.Outgoing.ID, c.Incoming.ID
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

func (c TransferCandidate) String() string {
	return fmt.Sprintf("%s -> %s $%.2f (%dd apart, confidence %d)",
		c.Outgoing.AccountID, c.Incoming.AccountID, c.Amount, c.DateDifferenceDays, c.Confidence)
}

// ReviewDecision is the disposition a user assigns to a surfaced candidate.
type ReviewDecision int

const (
	// DecisionIgnore removes the candidate from consideration for this run.
	DecisionIgnore ReviewDecision = iota
	// DecisionConfirm stages the candidate for the bulk commit.
	DecisionConfirm
)

// PendingReview wraps a candidate with the display context the prompter
// needs to present it.
type PendingReview struct {
	Candidate       TransferCandidate
	Window          DateRange
	Index           int // 1-based position within the window's candidates
	Total           int
	CoveragePercent int
}
