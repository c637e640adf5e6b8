package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mazerunner70/housef3/internal/model"
)

// SaveTransactions saves multiple transactions to the database. Duplicates
// (by ID or content hash) are skipped silently so repeated imports are safe.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(transactions); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (
			id, hash, date, name, merchant_name, amount, currency, account_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, txn := range transactions {
		if txn.Hash == "" {
			txn.Hash = txn.GenerateHash()
		}
		currency := txn.Currency
		if currency == "" {
			currency = "USD"
		}

		if _, err := stmt.ExecContext(ctx,
			txn.ID,
			txn.Hash,
			txn.Date,
			txn.Name,
			txn.MerchantName,
			txn.Amount,
			currency,
			txn.AccountID,
		); err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", txn.ID, err)
		}
	}

	return tx.Commit()
}

// GetTransactionsInRange returns all transactions dated within the range,
// inclusive of both endpoints, ordered by date.
func (s *SQLiteStorage) GetTransactionsInRange(ctx context.Context, r model.DateRange) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateDateRange(r); err != nil {
		return nil, err
	}

	// The end of the closed interval covers the entire final day.
	endExclusive := model.TruncateToDay(r.End).AddDate(0, 0, 1)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hash, date, name, merchant_name, amount, currency, account_id
		FROM transactions
		WHERE date >= ? AND date < ?
		ORDER BY date, id
	`, model.TruncateToDay(r.Start), endExclusive)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var merchantName sql.NullString
		if err := rows.Scan(
			&txn.ID,
			&txn.Hash,
			&txn.Date,
			&txn.Name,
			&merchantName,
			&txn.Amount,
			&txn.Currency,
			&txn.AccountID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.MerchantName = merchantName.String
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}

// GetAccountDateRange returns the span from the earliest to the latest
// transaction date across all accounts, or nil when the ledger is empty.
func (s *SQLiteStorage) GetAccountDateRange(ctx context.Context) (*model.DateRange, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	// MIN/MAX strip the column's DATETIME decltype, so the driver would
	// hand the dates back as TEXT; scalar subqueries on the bare column
	// keep them scannable as time values.
	var earliest, latest sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT date FROM transactions ORDER BY date ASC LIMIT 1),
			(SELECT date FROM transactions ORDER BY date DESC LIMIT 1)
	`).Scan(&earliest, &latest)
	if err != nil {
		return nil, fmt.Errorf("failed to query account date range: %w", err)
	}

	if !earliest.Valid || !latest.Valid {
		return nil, nil
	}

	r := model.NewDateRange(earliest.Time, latest.Time)
	return &r, nil
}

// transactionExists reports whether a transaction ID is present in the ledger.
func (s *SQLiteStorage) transactionExists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM transactions WHERE id = ?`, id).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("failed to look up transaction %s: %w", id, err)
	}
	return true, nil
}
