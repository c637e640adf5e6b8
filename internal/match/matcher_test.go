package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazerunner70/housef3/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func txn(id, account string, day time.Time, amount float64) model.Transaction {
	return model.Transaction{
		ID:        id,
		AccountID: account,
		Date:      day,
		Name:      "test transaction",
		Currency:  "USD",
		Amount:    amount,
	}
}

func TestFindCandidatesBasicPair(t *testing.T) {
	window := model.NewDateRange(date(2024, 1, 1), date(2024, 1, 30))
	transactions := []model.Transaction{
		txn("out-1", "checking", date(2024, 1, 10), -50.00),
		txn("in-1", "savings", date(2024, 1, 11), 50.00),
	}

	candidates := NewMatcher().FindCandidates(window, transactions)
	require.Len(t, candidates, 1)

	c := candidates[0]
	assert.Equal(t, "out-1", c.Outgoing.ID)
	assert.Equal(t, "in-1", c.Incoming.ID)
	assert.Equal(t, 50.00, c.Amount)
	assert.Equal(t, 1, c.DateDifferenceDays)
	assert.Equal(t, 95, c.Confidence)
}

func TestFindCandidatesFilters(t *testing.T) {
	window := model.NewDateRange(date(2024, 1, 1), date(2024, 1, 30))

	tests := []struct {
		name         string
		transactions []model.Transaction
		want         int
	}{
		{
			name: "same account never pairs",
			transactions: []model.Transaction{
				txn("out-1", "checking", date(2024, 1, 10), -50.00),
				txn("in-1", "checking", date(2024, 1, 11), 50.00),
			},
			want: 0,
		},
		{
			name: "different magnitudes never pair",
			transactions: []model.Transaction{
				txn("out-1", "checking", date(2024, 1, 10), -50.00),
				txn("in-1", "savings", date(2024, 1, 11), 50.01),
			},
			want: 0,
		},
		{
			name: "currency mismatch never pairs",
			transactions: []model.Transaction{
				txn("out-1", "checking", date(2024, 1, 10), -50.00),
				{ID: "in-1", AccountID: "savings", Date: date(2024, 1, 11), Name: "eur leg", Currency: "EUR", Amount: 50.00},
			},
			want: 0,
		},
		{
			name: "beyond drift tolerance",
			transactions: []model.Transaction{
				txn("out-1", "checking", date(2024, 1, 1), -50.00),
				txn("in-1", "savings", date(2024, 1, 9), 50.00),
			},
			want: 0,
		},
		{
			name: "at drift tolerance",
			transactions: []model.Transaction{
				txn("out-1", "checking", date(2024, 1, 1), -50.00),
				txn("in-1", "savings", date(2024, 1, 8), 50.00),
			},
			want: 1,
		},
		{
			name: "outside window skipped",
			transactions: []model.Transaction{
				txn("out-1", "checking", date(2024, 2, 10), -50.00),
				txn("in-1", "savings", date(2024, 2, 11), 50.00),
			},
			want: 0,
		},
		{
			name: "two debits never pair",
			transactions: []model.Transaction{
				txn("out-1", "checking", date(2024, 1, 10), -50.00),
				txn("out-2", "savings", date(2024, 1, 11), -50.00),
			},
			want: 0,
		},
	}

	matcher := NewMatcher()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := matcher.FindCandidates(window, tt.transactions)
			assert.Len(t, candidates, tt.want)
		})
	}
}

func TestFindCandidatesIncomingLegBeforeOutgoing(t *testing.T) {
	// Posting order between banks is not deterministic; the credit can land
	// before the debit.
	window := model.NewDateRange(date(2024, 1, 1), date(2024, 1, 30))
	transactions := []model.Transaction{
		txn("in-1", "savings", date(2024, 1, 10), 50.00),
		txn("out-1", "checking", date(2024, 1, 12), -50.00),
	}

	candidates := NewMatcher().FindCandidates(window, transactions)
	require.Len(t, candidates, 1)
	assert.Equal(t, 2, candidates[0].DateDifferenceDays)
	assert.Equal(t, 90, candidates[0].Confidence)
}

func TestFindCandidatesAmbiguousPairs(t *testing.T) {
	// One debit matching two possible credits surfaces both; the user
	// decides which one is the real transfer.
	window := model.NewDateRange(date(2024, 1, 1), date(2024, 1, 30))
	transactions := []model.Transaction{
		txn("out-1", "checking", date(2024, 1, 10), -50.00),
		txn("in-1", "savings", date(2024, 1, 10), 50.00),
		txn("in-2", "brokerage", date(2024, 1, 12), 50.00),
	}

	candidates := NewMatcher().FindCandidates(window, transactions)
	require.Len(t, candidates, 2)

	// Sorted by confidence descending.
	assert.Equal(t, "in-1", candidates[0].Incoming.ID)
	assert.Equal(t, 100, candidates[0].Confidence)
	assert.Equal(t, "in-2", candidates[1].Incoming.ID)
	assert.Equal(t, 90, candidates[1].Confidence)
}

func TestFindCandidatesDeterministicOrder(t *testing.T) {
	window := model.NewDateRange(date(2024, 1, 1), date(2024, 1, 30))
	transactions := []model.Transaction{
		txn("out-2", "checking", date(2024, 1, 12), -25.00),
		txn("out-1", "checking", date(2024, 1, 10), -50.00),
		txn("in-2", "savings", date(2024, 1, 12), 25.00),
		txn("in-1", "savings", date(2024, 1, 10), 50.00),
	}

	matcher := NewMatcher()
	first := matcher.FindCandidates(window, transactions)
	second := matcher.FindCandidates(window, transactions)
	require.Equal(t, first, second, "same input must give same output")
	require.Len(t, first, 2)
	assert.True(t, first[0].Outgoing.Date.Before(first[1].Outgoing.Date) ||
		first[0].Outgoing.Date.Equal(first[1].Outgoing.Date))
}

func TestFindCandidatesFractionalAmounts(t *testing.T) {
	// 0.1+0.2 style float sums must still compare equal by magnitude.
	window := model.NewDateRange(date(2024, 1, 1), date(2024, 1, 30))
	transactions := []model.Transaction{
		txn("out-1", "checking", date(2024, 1, 10), -1234.56),
		txn("in-1", "savings", date(2024, 1, 10), 1234.56),
	}

	candidates := NewMatcher().FindCandidates(window, transactions)
	assert.Len(t, candidates, 1)
}

func TestCustomDriftTolerance(t *testing.T) {
	window := model.NewDateRange(date(2024, 1, 1), date(2024, 1, 30))
	transactions := []model.Transaction{
		txn("out-1", "checking", date(2024, 1, 1), -50.00),
		txn("in-1", "savings", date(2024, 1, 4), 50.00),
	}

	assert.Len(t, NewMatcherWithDrift(2).FindCandidates(window, transactions), 0)
	assert.Len(t, NewMatcherWithDrift(3).FindCandidates(window, transactions), 1)

	// Non-positive drift falls back to the default.
	assert.Len(t, NewMatcherWithDrift(0).FindCandidates(window, transactions), 1)
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		days int
		want int
	}{
		{0, 100},
		{1, 95},
		{2, 90},
		{7, 65},
		{20, 0},
		{100, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Confidence(tt.days), "days=%d", tt.days)
	}
}
