// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/mazerunner70/housef3/internal/model"
)

// Ledger is the transaction store the engine reads from. It is the
// authoritative source for transaction history; this core never mutates
// transactions.
type Ledger interface {
	// GetTransactionsInRange returns all transactions dated within the
	// range, inclusive of both endpoints, across all accounts.
	GetTransactionsInRange(ctx context.Context, r model.DateRange) ([]model.Transaction, error)
	// GetAccountDateRange returns the span from the earliest to the latest
	// transaction date, or nil when the ledger is empty.
	GetAccountDateRange(ctx context.Context) (*model.DateRange, error)
}

// CoveragePreferences persists the checked range. A missing or zero-width
// stored range means "nothing checked yet" and is reported as nil.
type CoveragePreferences interface {
	GetCheckedRange(ctx context.Context) (*model.DateRange, error)
	SaveCheckedRange(ctx context.Context, r model.DateRange) error
	ClearCheckedRange(ctx context.Context) error
}

// FailedPair describes a single pair that could not be persisted.
type FailedPair struct {
	Pair   model.TransferPair
	Reason string
}

// CommitResult is the per-pair outcome of a bulk commit. Pairs are
// committed independently; a failure of one does not block the others.
type CommitResult struct {
	Successful []model.TransferPair
	Failed     []FailedPair
}

// SuccessCount returns the number of pairs that persisted.
func (r *CommitResult) SuccessCount() int { return len(r.Successful) }

// FailureCount returns the number of pairs that did not persist.
func (r *CommitResult) FailureCount() int { return len(r.Failed) }

// TransferGateway applies confirmed pairs to persistent storage.
// Committing an already-marked pair must be a safe no-op, because overlap
// windows can resurface the same candidate across chunks.
type TransferGateway interface {
	MarkTransferPairs(ctx context.Context, pairs []model.TransferPair) (*CommitResult, error)
	GetTransferPairs(ctx context.Context, r model.DateRange) ([]model.TransferPair, error)
}

// TransactionWriter ingests transactions from import sources.
type TransactionWriter interface {
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
}

// Storage is the full persistence contract, implemented by the SQLite layer.
type Storage interface {
	Ledger
	CoveragePreferences
	TransferGateway
	TransactionWriter

	Migrate(ctx context.Context) error
	Close() error
}

// ReviewStats shows the results of a review sweep.
type ReviewStats struct {
	WindowsScanned  int
	CandidatesFound int
	Confirmed       int
	Ignored         int
	CommitFailures  int
	Duration        time.Duration
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
