// Package coverage tracks which portions of the transaction history have
// been scanned for transfers, and plans the next window to scan.
package coverage

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/mazerunner70/housef3/internal/common"
	"github.com/mazerunner70/housef3/internal/model"
	"github.com/mazerunner70/housef3/internal/service"
)

// Store holds the merged set of date intervals already scanned (the checked
// range) and the full span of available history (the account range). The
// checked range only ever grows; it resets solely through an explicit
// user-initiated Reset.
type Store struct {
	prefs  service.CoveragePreferences
	ledger service.Ledger
}

// NewStore creates a coverage store over the given persistence and ledger.
func NewStore(prefs service.CoveragePreferences, ledger service.Ledger) *Store {
	return &Store{prefs: prefs, ledger: ledger}
}

// CheckedRange returns the union of all fully-reviewed date spans, or nil
// when nothing has been checked yet.
func (s *Store) CheckedRange(ctx context.Context) (*model.DateRange, error) {
	checked, err := s.prefs.GetCheckedRange(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load checked range: %w", err)
	}
	return checked, nil
}

// AccountRange returns the span from the earliest to the latest transaction
// date, or nil when the ledger is empty.
func (s *Store) AccountRange(ctx context.Context) (*model.DateRange, error) {
	account, err := s.ledger.GetAccountDateRange(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load account range: %w", err)
	}
	return account, nil
}

// Extend merges r into the checked range. The new range must be non-empty
// and adjacent to (overlapping or touching within one day of) the existing
// checked range: a disjoint extend would silently bridge a gap that was
// never actually scanned, so it is rejected rather than persisted.
func (s *Store) Extend(ctx context.Context, r model.DateRange) error {
	if !r.Valid() {
		return fmt.Errorf("%w: %s", common.ErrInvalidRange, r)
	}
	if r.Start.Equal(r.End) {
		// A zero-width range indicates a caller bug.
		return fmt.Errorf("%w: zero-width range %s", common.ErrInvalidRange, r)
	}

	checked, err := s.prefs.GetCheckedRange(ctx)
	if err != nil {
		return fmt.Errorf("failed to load checked range: %w", err)
	}

	merged := r
	if checked != nil {
		if !checked.Adjacent(r) {
			return fmt.Errorf("%w: %s does not touch %s", common.ErrNonAdjacentRange, r, checked)
		}
		merged = checked.Union(r)
	}

	if err := s.prefs.SaveCheckedRange(ctx, merged); err != nil {
		return fmt.Errorf("failed to persist checked range: %w", err)
	}

	slog.Debug("Extended checked range", "added", r.String(), "checked", merged.String())
	return nil
}

// Reset clears the checked range so the next sweep starts from scratch.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.prefs.ClearCheckedRange(ctx); err != nil {
		return fmt.Errorf("failed to clear checked range: %w", err)
	}
	slog.Info("Checked range reset")
	return nil
}

// ProgressPercent reports how much of the account range has been checked,
// rounded to the nearest whole percent and clamped to [0, 100]. An empty
// ledger or single-day history reports 0.
func (s *Store) ProgressPercent(ctx context.Context) (int, error) {
	account, err := s.AccountRange(ctx)
	if err != nil {
		return 0, err
	}
	if account == nil {
		return 0, nil
	}

	checked, err := s.CheckedRange(ctx)
	if err != nil {
		return 0, err
	}

	return progressPercent(checked, *account), nil
}

func progressPercent(checked *model.DateRange, account model.DateRange) int {
	totalDays := account.Days()
	if totalDays == 0 || checked == nil {
		return 0
	}

	// Only the checked portion inside the account range counts.
	overlap := *checked
	if overlap.Start.Before(account.Start) {
		overlap.Start = account.Start
	}
	if overlap.End.After(account.End) {
		overlap.End = account.End
	}
	if overlap.Start.After(overlap.End) {
		return 0
	}

	pct := int(math.Round(float64(overlap.Days()) / float64(totalDays) * 100))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct
}
