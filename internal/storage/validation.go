// Package storage provides the data persistence layer for the housef3 core.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mazerunner70/housef3/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrEmptySlice         = errors.New("slice cannot be empty")
	ErrInvalidDateRange   = errors.New("invalid date range")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidPair        = errors.New("invalid transfer pair")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateDateRange ensures a range is well-formed with start before end.
func validateDateRange(r model.DateRange) error {
	if !r.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidDateRange, r)
	}
	return nil
}

// validateTransactions validates a slice of transactions.
func validateTransactions(transactions []model.Transaction) error {
	if transactions == nil {
		return fmt.Errorf("%w: transactions", ErrNilParameter)
	}
	if len(transactions) == 0 {
		return fmt.Errorf("%w: transactions", ErrEmptySlice)
	}

	for i, txn := range transactions {
		if err := validateTransaction(&txn); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
	}
	return nil
}

// validateTransaction validates a single transaction.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidTransaction)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	if txn.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidTransaction)
	}
	if txn.AccountID == "" {
		return fmt.Errorf("%w: missing account ID", ErrInvalidTransaction)
	}
	return nil
}

// validatePair validates a transfer pair before it is persisted.
func validatePair(pair *model.TransferPair) error {
	if pair == nil {
		return fmt.Errorf("%w: pair", ErrNilParameter)
	}
	if pair.OutgoingID == "" {
		return fmt.Errorf("%w: missing outgoing ID", ErrInvalidPair)
	}
	if pair.IncomingID == "" {
		return fmt.Errorf("%w: missing incoming ID", ErrInvalidPair)
	}
	if pair.OutgoingID == pair.IncomingID {
		return fmt.Errorf("%w: outgoing and incoming IDs are identical", ErrInvalidPair)
	}
	if pair.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidPair)
	}
	if pair.DateDifferenceDays < 0 {
		return fmt.Errorf("%w: negative date difference", ErrInvalidPair)
	}
	return nil
}
