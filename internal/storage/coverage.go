package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mazerunner70/housef3/internal/model"
)

// GetCheckedRange returns the persisted checked range, or nil when nothing
// has been checked yet. A stored zero-width range is treated the same as a
// missing row.
func (s *SQLiteStorage) GetCheckedRange(ctx context.Context) (*model.DateRange, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var start, end sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT checked_start, checked_end FROM coverage WHERE id = 1
	`).Scan(&start, &end)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("failed to query checked range: %w", err)
	}

	if !start.Valid || !end.Valid || !start.Time.Before(end.Time) {
		return nil, nil
	}

	r := model.NewDateRange(start.Time, end.Time)
	return &r, nil
}

// SaveCheckedRange persists the checked range, replacing any previous value.
func (s *SQLiteStorage) SaveCheckedRange(ctx context.Context, r model.DateRange) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateDateRange(r); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO coverage (id, checked_start, checked_end, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			checked_start = excluded.checked_start,
			checked_end = excluded.checked_end,
			updated_at = excluded.updated_at
	`, model.TruncateToDay(r.Start), model.TruncateToDay(r.End), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save checked range: %w", err)
	}
	return nil
}

// ClearCheckedRange removes the checked range, returning the engine to a
// nothing-checked-yet state.
func (s *SQLiteStorage) ClearCheckedRange(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM coverage WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to clear checked range: %w", err)
	}
	return nil
}
