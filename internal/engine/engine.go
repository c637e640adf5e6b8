// Package engine implements the transfer review cycle: recommend a window,
// match candidates, collect decisions, commit, extend coverage, advance.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mazerunner70/housef3/internal/common"
	"github.com/mazerunner70/housef3/internal/coverage"
	"github.com/mazerunner70/housef3/internal/match"
	"github.com/mazerunner70/housef3/internal/model"
	"github.com/mazerunner70/housef3/internal/service"
)

// State identifies where the engine is within one review cycle.
type State string

// Review cycle states.
const (
	StateIdle              State = "idle"
	StateScanning          State = "scanning"
	StateAwaitingDecisions State = "awaiting_decisions"
	StateCommitting        State = "committing"
	StateAdvancing         State = "advancing"
)

// Config holds tuning options for the review engine.
type Config struct {
	ChunkDays    int
	OverlapDays  int
	MaxDriftDays int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		ChunkDays:    coverage.DefaultChunkDays,
		OverlapDays:  coverage.DefaultOverlapDays,
		MaxDriftDays: match.DefaultMaxDriftDays,
	}
}

// ReviewEngine orchestrates the systematic sweep over transaction history.
// One engine instance serves one user session; state is never persisted
// server-side, so an abandoned sweep simply resumes from the last committed
// window.
type ReviewEngine struct {
	ledger   service.Ledger
	gateway  service.TransferGateway
	coverage *coverage.Store
	planner  *coverage.Planner
	matcher  *match.Matcher
	prompter Prompter

	mu       sync.Mutex
	running  bool
	state    State
	staged   []model.TransferPair
	resolved map[string]struct{} // pair keys already decided this run
	stats    service.ReviewStats
}

// New creates a review engine over the full storage layer with default
// configuration.
func New(storage service.Storage, prompter Prompter) *ReviewEngine {
	return NewWithConfig(storage, prompter, DefaultConfig())
}

// NewWithConfig creates a review engine over the full storage layer.
func NewWithConfig(storage service.Storage, prompter Prompter, cfg Config) *ReviewEngine {
	return NewWithDependencies(storage, storage, storage, prompter, cfg)
}

// NewWithDependencies wires the engine from its narrow collaborator
// interfaces. Tests use this to substitute individual collaborators.
func NewWithDependencies(ledger service.Ledger, prefs service.CoveragePreferences, gateway service.TransferGateway, prompter Prompter, cfg Config) *ReviewEngine {
	return &ReviewEngine{
		ledger:   ledger,
		gateway:  gateway,
		coverage: coverage.NewStore(prefs, ledger),
		planner:  coverage.NewPlanner(cfg.ChunkDays, cfg.OverlapDays),
		matcher:  match.NewMatcherWithDrift(cfg.MaxDriftDays),
		prompter: prompter,
		state:    StateIdle,
	}
}

// State returns the engine's current cycle state.
func (e *ReviewEngine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Coverage exposes the engine's coverage store for progress display.
func (e *ReviewEngine) Coverage() *coverage.Store {
	return e.coverage
}

// Run drives review cycles until the planner reports full coverage or an
// unrecoverable error occurs. A window is committed into the checked range
// only after every candidate found in it has been confirmed or ignored and
// the confirmations have been durably persisted; a failed commit leaves the
// checked range untouched so the window is retried on the next run.
func (e *ReviewEngine) Run(ctx context.Context) (*service.ReviewStats, error) {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return nil, common.ErrScanInFlight
	}
	e.running = true
	e.stats = service.ReviewStats{}
	e.resolved = make(map[string]struct{})
	// A failed commit can leave pairs staged from the aborted run; they
	// must not survive into this one.
	e.staged = nil
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	sessionID := uuid.NewString()
	started := time.Now()
	logger := slog.With("session_id", sessionID)
	logger.Info("Starting transfer review sweep")

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		account, err := e.coverage.AccountRange(ctx)
		if err != nil {
			return nil, err
		}
		if account == nil {
			logger.Info("No transactions available, nothing to scan")
			break
		}
		if account.Days() == 0 {
			// A single-day history cannot be chunked into a non-empty
			// window, and the checked range cannot represent it.
			logger.Info("History spans a single day, nothing to scan")
			break
		}

		checked, err := e.coverage.CheckedRange(ctx)
		if err != nil {
			return nil, err
		}

		window := e.planner.Recommend(checked, *account)
		if window == nil {
			logger.Info("Checked range covers full history, sweep complete")
			break
		}

		if err := e.runCycle(ctx, logger, *window); err != nil {
			return nil, err
		}

		e.setState(StateAdvancing)
	}

	e.setState(StateIdle)

	e.mu.Lock()
	e.stats.Duration = time.Since(started)
	stats := e.stats
	e.mu.Unlock()

	logger.Info("Review sweep finished",
		"windows_scanned", stats.WindowsScanned,
		"candidates_found", stats.CandidatesFound,
		"confirmed", stats.Confirmed,
		"ignored", stats.Ignored,
		"commit_failures", stats.CommitFailures,
		"duration", stats.Duration)

	return &stats, nil
}

// runCycle performs one scan-resolve-commit-extend pass over a window.
func (e *ReviewEngine) runCycle(ctx context.Context, logger *slog.Logger, window model.DateRange) error {
	e.setState(StateScanning)
	logger.Info("Scanning window", "window", window.String())

	var transactions []model.Transaction
	fetchErr := common.WithRetry(ctx, func() error {
		var err error
		transactions, err = e.ledger.GetTransactionsInRange(ctx, window)
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: true}
		}
		return nil
	}, service.RetryOptions{MaxAttempts: 3, InitialDelay: 200 * time.Millisecond})
	if fetchErr != nil {
		return fmt.Errorf("failed to fetch transactions for %s: %w", window, fetchErr)
	}

	// Overlap margins re-scan the frontier, so candidates resolved in a
	// previous window of this run are not surfaced again.
	candidates := e.filterResolved(e.matcher.FindCandidates(window, transactions))

	e.mu.Lock()
	e.stats.WindowsScanned++
	e.stats.CandidatesFound += len(candidates)
	e.mu.Unlock()

	// An empty window is vacuously resolved but still needs to be marked
	// checked, so fall through to the commit step either way.
	if len(candidates) > 0 {
		if err := e.collectDecisions(ctx, window, candidates); err != nil {
			return err
		}
	}

	if err := e.commit(ctx, logger, window); err != nil {
		return err
	}

	return nil
}

// collectDecisions surfaces each candidate and records its disposition.
// The cycle may not proceed until every candidate is resolved one way or
// the other; a prompter error aborts the cycle with coverage untouched.
func (e *ReviewEngine) collectDecisions(ctx context.Context, window model.DateRange, candidates []model.TransferCandidate) error {
	e.setState(StateAwaitingDecisions)

	percent, err := e.coverage.ProgressPercent(ctx)
	if err != nil {
		percent = 0
	}

	for i, candidate := range candidates {
		pending := model.PendingReview{
			Candidate:       candidate,
			Window:          window,
			Index:           i + 1,
			Total:           len(candidates),
			CoveragePercent: percent,
		}

		decision, err := e.prompter.ReviewCandidate(ctx, pending)
		if err != nil {
			return fmt.Errorf("%w: review aborted with %d of %d remaining: %w",
				common.ErrUnresolvedCandidates, len(candidates)-i, len(candidates), err)
		}

		e.mu.Lock()
		e.resolved[candidate.PairKey()] = struct{}{}
		switch decision {
		case model.DecisionConfirm:
			e.staged = append(e.staged, model.PairFromCandidate(candidate))
			e.stats.Confirmed++
		case model.DecisionIgnore:
			e.stats.Ignored++
		}
		e.mu.Unlock()
	}

	return nil
}

// commit persists staged pairs and, only on success, extends the checked
// range with the scanned window. Partial per-pair failures are reported but
// do not block the window from being marked reviewed; a wholesale gateway
// failure leaves everything untouched for retry.
func (e *ReviewEngine) commit(ctx context.Context, logger *slog.Logger, window model.DateRange) error {
	e.setState(StateCommitting)

	e.mu.Lock()
	staged := e.staged
	e.mu.Unlock()

	if len(staged) > 0 {
		var result *service.CommitResult
		commitErr := common.WithRetry(ctx, func() error {
			var err error
			result, err = e.gateway.MarkTransferPairs(ctx, staged)
			if err != nil {
				return &common.RetryableError{Err: err, Retryable: true}
			}
			return nil
		}, service.RetryOptions{MaxAttempts: 3, InitialDelay: 200 * time.Millisecond})
		if commitErr != nil {
			// Stay in Committing: the window must be retried or abandoned
			// explicitly, never silently marked checked.
			return fmt.Errorf("failed to commit %d pairs for %s: %w", len(staged), window, commitErr)
		}

		if result.FailureCount() > 0 {
			e.mu.Lock()
			e.stats.CommitFailures += result.FailureCount()
			e.mu.Unlock()

			partial := &common.PartialCommitError{
				Succeeded: result.SuccessCount(),
				Failed:    result.FailureCount(),
			}
			logger.Warn("Some pairs failed to persist", "window", window.String(), "error", partial)
			for _, failed := range result.Failed {
				logger.Warn("Pair not persisted",
					"outgoing_id", failed.Pair.OutgoingID,
					"incoming_id", failed.Pair.IncomingID,
					"reason", failed.Reason)
			}
		} else {
			logger.Info("Committed pairs", "window", window.String(), "count", result.SuccessCount())
		}
	}

	e.mu.Lock()
	e.staged = nil
	e.mu.Unlock()

	if err := e.coverage.Extend(ctx, window); err != nil {
		return fmt.Errorf("failed to extend checked range with %s: %w", window, err)
	}

	return nil
}

// filterResolved drops candidates whose pair was already confirmed or
// ignored earlier in this run.
func (e *ReviewEngine) filterResolved(candidates []model.TransferCandidate) []model.TransferCandidate {
	e.mu.Lock()
	defer e.mu.Unlock()

	fresh := candidates[:0]
	for _, c := range candidates {
		if _, done := e.resolved[c.PairKey()]; !done {
			fresh = append(fresh, c)
		}
	}
	return fresh
}

func (e *ReviewEngine) setState(s State) {
	e.mu.Lock()
	prev := e.state
	e.state = s
	e.mu.Unlock()
	if prev != s {
		slog.Debug("Review cycle transition", "from", string(prev), "to", string(s))
	}
}
