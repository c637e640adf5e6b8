package coverage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazerunner70/housef3/internal/common"
	"github.com/mazerunner70/housef3/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rng(start, end time.Time) model.DateRange {
	return model.DateRange{Start: start, End: end}
}

// fakePrefs is an in-memory CoveragePreferences.
type fakePrefs struct {
	checked *model.DateRange
	saves   int
}

func (f *fakePrefs) GetCheckedRange(_ context.Context) (*model.DateRange, error) {
	return f.checked, nil
}

func (f *fakePrefs) SaveCheckedRange(_ context.Context, r model.DateRange) error {
	f.saves++
	f.checked = &r
	return nil
}

func (f *fakePrefs) ClearCheckedRange(_ context.Context) error {
	f.checked = nil
	return nil
}

// fakeLedger is an in-memory Ledger serving only the account range.
type fakeLedger struct {
	account *model.DateRange
}

func (f *fakeLedger) GetTransactionsInRange(_ context.Context, _ model.DateRange) ([]model.Transaction, error) {
	return nil, nil
}

func (f *fakeLedger) GetAccountDateRange(_ context.Context) (*model.DateRange, error) {
	return f.account, nil
}

func TestExtendFromEmpty(t *testing.T) {
	prefs := &fakePrefs{}
	store := NewStore(prefs, &fakeLedger{})
	ctx := context.Background()

	window := rng(date(2024, 1, 1), date(2024, 1, 30))
	require.NoError(t, store.Extend(ctx, window))

	checked, err := store.CheckedRange(ctx)
	require.NoError(t, err)
	require.NotNil(t, checked)
	assert.Equal(t, window, *checked)
}

func TestExtendMergesOverlapping(t *testing.T) {
	prefs := &fakePrefs{}
	store := NewStore(prefs, &fakeLedger{})
	ctx := context.Background()

	require.NoError(t, store.Extend(ctx, rng(date(2024, 1, 1), date(2024, 1, 30))))
	require.NoError(t, store.Extend(ctx, rng(date(2024, 1, 27), date(2024, 2, 25))))

	checked, err := store.CheckedRange(ctx)
	require.NoError(t, err)
	require.NotNil(t, checked)
	assert.Equal(t, date(2024, 1, 1), checked.Start)
	assert.Equal(t, date(2024, 2, 25), checked.End)
}

func TestExtendMergesTouching(t *testing.T) {
	prefs := &fakePrefs{}
	store := NewStore(prefs, &fakeLedger{})
	ctx := context.Background()

	require.NoError(t, store.Extend(ctx, rng(date(2024, 1, 1), date(2024, 1, 10))))
	require.NoError(t, store.Extend(ctx, rng(date(2024, 1, 11), date(2024, 1, 20))))

	checked, err := store.CheckedRange(ctx)
	require.NoError(t, err)
	assert.Equal(t, rng(date(2024, 1, 1), date(2024, 1, 20)), *checked)
}

func TestExtendNeverShrinks(t *testing.T) {
	prefs := &fakePrefs{}
	store := NewStore(prefs, &fakeLedger{})
	ctx := context.Background()

	require.NoError(t, store.Extend(ctx, rng(date(2024, 1, 1), date(2024, 3, 31))))
	require.NoError(t, store.Extend(ctx, rng(date(2024, 2, 1), date(2024, 2, 10))))

	checked, err := store.CheckedRange(ctx)
	require.NoError(t, err)
	assert.Equal(t, rng(date(2024, 1, 1), date(2024, 3, 31)), *checked)
}

func TestExtendRejectsZeroWidth(t *testing.T) {
	prefs := &fakePrefs{}
	store := NewStore(prefs, &fakeLedger{})
	ctx := context.Background()

	err := store.Extend(ctx, rng(date(2024, 1, 5), date(2024, 1, 5)))
	require.ErrorIs(t, err, common.ErrInvalidRange)
	assert.Zero(t, prefs.saves, "rejected extend must not persist")

	checked, err := store.CheckedRange(ctx)
	require.NoError(t, err)
	assert.Nil(t, checked)
}

func TestExtendRejectsInvalid(t *testing.T) {
	prefs := &fakePrefs{}
	store := NewStore(prefs, &fakeLedger{})
	ctx := context.Background()

	err := store.Extend(ctx, rng(date(2024, 1, 10), date(2024, 1, 1)))
	require.ErrorIs(t, err, common.ErrInvalidRange)

	err = store.Extend(ctx, model.DateRange{})
	require.ErrorIs(t, err, common.ErrInvalidRange)
}

func TestExtendRejectsDisjoint(t *testing.T) {
	prefs := &fakePrefs{}
	store := NewStore(prefs, &fakeLedger{})
	ctx := context.Background()

	require.NoError(t, store.Extend(ctx, rng(date(2024, 1, 1), date(2024, 1, 10))))

	// A gap of one full day (Jan 11 unscanned) must not be bridged.
	err := store.Extend(ctx, rng(date(2024, 1, 12), date(2024, 1, 20)))
	require.ErrorIs(t, err, common.ErrNonAdjacentRange)

	checked, err := store.CheckedRange(ctx)
	require.NoError(t, err)
	assert.Equal(t, rng(date(2024, 1, 1), date(2024, 1, 10)), *checked)
}

func TestReset(t *testing.T) {
	prefs := &fakePrefs{}
	store := NewStore(prefs, &fakeLedger{})
	ctx := context.Background()

	require.NoError(t, store.Extend(ctx, rng(date(2024, 1, 1), date(2024, 1, 30))))
	require.NoError(t, store.Reset(ctx))

	checked, err := store.CheckedRange(ctx)
	require.NoError(t, err)
	assert.Nil(t, checked)
}

func TestProgressPercent(t *testing.T) {
	account := rng(date(2024, 1, 1), date(2024, 1, 31)) // 30 days

	tests := []struct {
		name    string
		checked *model.DateRange
		want    int
	}{
		{"nothing checked", nil, 0},
		{"half checked", ptr(rng(date(2024, 1, 1), date(2024, 1, 16))), 50},
		{"fully checked", ptr(account), 100},
		{"checked wider than history", ptr(rng(date(2023, 12, 1), date(2024, 2, 15))), 100},
		{"checked outside history", ptr(rng(date(2023, 1, 1), date(2023, 2, 1))), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(&fakePrefs{checked: tt.checked}, &fakeLedger{account: &account})
			pct, err := store.ProgressPercent(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, pct)
		})
	}
}

func TestProgressPercentEmptyLedger(t *testing.T) {
	store := NewStore(&fakePrefs{}, &fakeLedger{})
	pct, err := store.ProgressPercent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, pct)
}

func TestProgressPercentSingleDayHistory(t *testing.T) {
	account := rng(date(2024, 1, 1), date(2024, 1, 1))
	store := NewStore(&fakePrefs{}, &fakeLedger{account: &account})
	pct, err := store.ProgressPercent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, pct)
}

func ptr(r model.DateRange) *model.DateRange {
	return &r
}
