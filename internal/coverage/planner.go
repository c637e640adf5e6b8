package coverage

import (
	"time"

	"github.com/mazerunner70/housef3/internal/model"
)

// Planner defaults, in days. Chunks are kept small because the matcher is
// quadratic over a window's transactions; the overlap margin re-scans the
// frontier so transfer legs straddling a chunk boundary are not missed.
const (
	DefaultChunkDays   = 30
	DefaultOverlapDays = 3
)

// Planner proposes the next date window to scan. It walks the account
// range oldest-first, always staying adjacent to the checked frontier so
// the coverage store never sees a disjoint extend.
type Planner struct {
	chunkDays   int
	overlapDays int
}

// NewPlanner creates a planner with the given chunk and overlap sizes in
// days. Non-positive values fall back to the defaults.
func NewPlanner(chunkDays, overlapDays int) *Planner {
	// A one-day chunk could never widen the checked range; treat anything
	// below two days as unset.
	if chunkDays < 2 {
		chunkDays = DefaultChunkDays
	}
	if overlapDays < 0 {
		overlapDays = DefaultOverlapDays
	}
	if overlapDays >= chunkDays {
		overlapDays = chunkDays - 1
	}
	return &Planner{chunkDays: chunkDays, overlapDays: overlapDays}
}

// Recommend returns the next window to scan, or nil when the checked range
// already covers the whole account range. The recommendation is always a
// subset of account and overlaps the checked range by the overlap margin.
func (p *Planner) Recommend(checked *model.DateRange, account model.DateRange) *model.DateRange {
	if !account.Valid() {
		return nil
	}

	if checked == nil || checked.IsZero() {
		return p.clip(account.Start, account)
	}

	if checked.Contains(account) {
		return nil // fully scanned
	}

	// Oldest-first: close any gap before the checked range before moving
	// the frontier forward.
	if checked.Start.After(account.Start) {
		end := checked.Start.AddDate(0, 0, p.overlapDays)
		start := end.AddDate(0, 0, -(p.chunkDays - 1))
		if start.Before(account.Start) {
			start = account.Start
		}
		return p.clipEnd(start, end, account)
	}

	// Advance the frontier, backing up by the overlap margin into already
	// checked territory.
	start := checked.End.AddDate(0, 0, -p.overlapDays)
	if start.Before(account.Start) {
		start = account.Start
	}
	return p.clip(start, account)
}

// clip builds a chunk-sized window from start, clipped to the account range.
func (p *Planner) clip(start time.Time, account model.DateRange) *model.DateRange {
	end := start.AddDate(0, 0, p.chunkDays-1)
	return p.clipEnd(start, end, account)
}

func (p *Planner) clipEnd(start, end time.Time, account model.DateRange) *model.DateRange {
	if end.After(account.End) {
		end = account.End
	}
	if start.After(end) {
		start = end
	}
	r := model.DateRange{Start: start, End: end}
	return &r
}
