// Package match implements transfer-pair candidate detection.
package match

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mazerunner70/housef3/internal/model"
)

// DefaultMaxDriftDays is the widest date gap a candidate pair may span.
// At 5 points of confidence per day, 7 days keeps every surfaced
// candidate at 65 or better; anything further apart is noise.
const DefaultMaxDriftDays = 7

// Matcher finds transfer-pair candidates within a date window. It holds no
// state and is safe to reuse across windows; the same pair of transactions
// always produces the same candidate.
type Matcher struct {
	maxDriftDays int
}

// NewMatcher creates a matcher with the default drift tolerance.
func NewMatcher() *Matcher {
	return &Matcher{maxDriftDays: DefaultMaxDriftDays}
}

// NewMatcherWithDrift creates a matcher with a custom drift tolerance in days.
func NewMatcherWithDrift(maxDriftDays int) *Matcher {
	if maxDriftDays <= 0 {
		maxDriftDays = DefaultMaxDriftDays
	}
	return &Matcher{maxDriftDays: maxDriftDays}
}

// FindCandidates pairs every outgoing transaction with every incoming
// transaction of equal magnitude on a different account, scoring each pair
// by date proximity. The caller must pass exactly the transactions dated
// within window; transactions outside it are skipped. The result is
// deduplicated by unordered pair and sorted by confidence descending.
//
// This is O(n*m) over the debits and credits in the window, which is why
// scans are chunked rather than run over the whole history at once.
func (m *Matcher) FindCandidates(window model.DateRange, transactions []model.Transaction) []model.TransferCandidate {
	var outgoing, incoming []model.Transaction
	for _, txn := range transactions {
		if !window.ContainsDate(txn.Date) {
			continue
		}
		switch {
		case txn.IsOutgoing():
			outgoing = append(outgoing, txn)
		case txn.IsIncoming():
			incoming = append(incoming, txn)
		}
	}

	seen := make(map[string]struct{})
	var candidates []model.TransferCandidate

	for _, out := range outgoing {
		for _, in := range incoming {
			if out.AccountID == in.AccountID {
				continue
			}
			if out.Currency != in.Currency {
				continue
			}
			if !amountsMatch(out.Amount, in.Amount) {
				continue
			}

			days := model.DaysBetween(out.Date, in.Date)
			if days > m.maxDriftDays {
				continue
			}

			c := model.TransferCandidate{
				Outgoing:           out,
				Incoming:           in,
				Amount:             in.Amount,
				DateDifferenceDays: days,
				Confidence:         Confidence(days),
			}

			if _, dup := seen[c.PairKey()]; dup {
				continue
			}
			seen[c.PairKey()] = struct{}{}
			candidates = append(candidates, c)
		}
	}

	sortCandidates(candidates)
	return candidates
}

// Confidence scores a pair by date proximity: same-day pairs score 100 and
// each day of drift costs 5 points, floored at 0.
func Confidence(dateDifferenceDays int) int {
	score := 100 - 5*dateDifferenceDays
	if score < 0 {
		score = 0
	}
	return score
}

// amountsMatch compares the absolute magnitudes of the two legs exactly,
// avoiding float equality pitfalls on amounts like 0.1+0.2.
func amountsMatch(outAmount, inAmount float64) bool {
	out := decimal.NewFromFloat(outAmount).Abs()
	in := decimal.NewFromFloat(inAmount).Abs()
	return out.Equal(in)
}

// sortCandidates orders by confidence descending, breaking ties by the
// outgoing date and then by transaction IDs so output is deterministic.
func sortCandidates(candidates []model.TransferCandidate) {
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if !a.Outgoing.Date.Equal(b.Outgoing.Date) {
			return a.Outgoing.Date.Before(b.Outgoing.Date)
		}
		if a.Outgoing.ID != b.Outgoing.ID {
			return a.Outgoing.ID < b.Outgoing.ID
		}
		return a.Incoming.ID < b.Incoming.ID
	})
}
