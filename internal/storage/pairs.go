package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mazerunner70/housef3/internal/model"
	"github.com/mazerunner70/housef3/internal/service"
)

// MarkTransferPairs persists confirmed transfer pairs. Pairs are committed
// independently: one bad pair does not block the rest, and the per-pair
// outcome is reported back so the caller can reconcile its staging set.
// Re-committing an existing (outgoing, incoming) pair is a no-op success,
// which makes overlap-window re-scans safe.
func (s *SQLiteStorage) MarkTransferPairs(ctx context.Context, pairs []model.TransferPair) (*service.CommitResult, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if pairs == nil {
		return nil, fmt.Errorf("%w: pairs", ErrNilParameter)
	}

	result := &service.CommitResult{}

	for _, pair := range pairs {
		if err := s.markTransferPair(ctx, pair); err != nil {
			slog.Warn("Failed to persist transfer pair",
				"outgoing_id", pair.OutgoingID,
				"incoming_id", pair.IncomingID,
				"error", err)
			result.Failed = append(result.Failed, service.FailedPair{
				Pair:   pair,
				Reason: err.Error(),
			})
			continue
		}
		result.Successful = append(result.Successful, pair)
	}

	return result, nil
}

func (s *SQLiteStorage) markTransferPair(ctx context.Context, pair model.TransferPair) error {
	if err := validatePair(&pair); err != nil {
		return err
	}

	for _, id := range []string{pair.OutgoingID, pair.IncomingID} {
		exists, err := s.transactionExists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: unknown transaction %s", ErrInvalidPair, id)
		}
	}

	confirmedAt := pair.ConfirmedAt
	if confirmedAt.IsZero() {
		confirmedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transfer_pairs (outgoing_id, incoming_id, amount, date_difference_days, confirmed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(outgoing_id, incoming_id) DO NOTHING
	`, pair.OutgoingID, pair.IncomingID, pair.Amount, pair.DateDifferenceDays, confirmedAt)
	if err != nil {
		return fmt.Errorf("failed to insert transfer pair: %w", err)
	}

	return nil
}

// GetTransferPairs returns confirmed pairs whose outgoing transaction is
// dated within the range, ordered oldest first. This is a display-only
// query; coverage logic never reads it.
func (s *SQLiteStorage) GetTransferPairs(ctx context.Context, r model.DateRange) ([]model.TransferPair, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateDateRange(r); err != nil {
		return nil, err
	}

	endExclusive := model.TruncateToDay(r.End).AddDate(0, 0, 1)

	rows, err := s.db.QueryContext(ctx, `
		SELECT p.outgoing_id, p.incoming_id, p.amount, p.date_difference_days, p.confirmed_at
		FROM transfer_pairs p
		JOIN transactions t ON t.id = p.outgoing_id
		WHERE t.date >= ? AND t.date < ?
		ORDER BY t.date, p.outgoing_id
	`, model.TruncateToDay(r.Start), endExclusive)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfer pairs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var pairs []model.TransferPair
	for rows.Next() {
		var pair model.TransferPair
		if err := rows.Scan(
			&pair.OutgoingID,
			&pair.IncomingID,
			&pair.Amount,
			&pair.DateDifferenceDays,
			&pair.ConfirmedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transfer pair: %w", err)
		}
		pairs = append(pairs, pair)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transfer pairs: %w", err)
	}

	return pairs, nil
}
