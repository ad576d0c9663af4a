package history_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EHLuC/ecotrip/internal/greenops"
	"github.com/EHLuC/ecotrip/internal/history"
	"github.com/EHLuC/ecotrip/internal/storage"
)

func fixedClock() func() time.Time {
	ts := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return func() time.Time { return ts }
}

func entry(id string, km, kg float64) history.Entry {
	return history.Entry{ID: id, DistanceKm: km, Mode: greenops.ModeCar, EmissionKg: kg, Date: "14/03/2026"}
}

func TestLoad_MissingKeyIsEmpty(t *testing.T) {
	s := history.New(storage.NewMemoryStore())

	entries, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NotNil(t, entries)
}

func TestLoad_Corrupted(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemoryStore()
	require.NoError(t, backend.Set(ctx, history.DefaultKey, []byte(`{not json`)))

	s := history.New(backend)
	_, err := s.Load(ctx)
	require.ErrorIs(t, err, history.ErrCorrupted)
}

func TestLoad_EmptyValueIsEmptyLog(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemoryStore()
	require.NoError(t, backend.Set(ctx, history.DefaultKey, []byte("  ")))

	entries, err := history.New(backend).Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLoad_TruncatesToCapacity(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemoryStore()
	require.NoError(t, backend.Set(ctx, history.DefaultKey,
		[]byte(`[{"id":"a","distance_km":1},{"id":"b","distance_km":2},{"id":"c","distance_km":3}]`)))

	entries, err := history.New(backend, history.WithCapacity(2)).Load(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].ID)
	assert.Equal(t, "b", entries[1].ID)
}

func TestAppend_CapsAtCapacity(t *testing.T) {
	ctx := context.Background()
	s := history.New(storage.NewMemoryStore())

	var entries []history.Entry
	var err error
	for i := range 11 {
		entries, err = s.Append(ctx, entry(fmt.Sprintf("e%02d", i), float64(i+1), 1))
		require.NoError(t, err)
	}

	require.Len(t, entries, history.DefaultCapacity)
	assert.Equal(t, "e10", entries[0].ID, "newest first")
	for _, e := range entries {
		assert.NotEqual(t, "e00", e.ID, "oldest entry evicted")
	}
}

func TestAppend_PersistsBeforeReturning(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemoryStore()
	s := history.New(backend)

	_, err := s.Append(ctx, entry("first", 10, 1.2))
	require.NoError(t, err)

	reloaded, err := history.New(backend).Load(ctx)
	require.NoError(t, err)
	require.Len(t, reloaded, 1)
	assert.Equal(t, "first", reloaded[0].ID)
	assert.InDelta(t, 1.2, reloaded[0].EmissionKg, 1e-9)
}

func TestAppend_RejectsInvalidDistance(t *testing.T) {
	s := history.New(storage.NewMemoryStore())
	_, err := s.Append(context.Background(), entry("bad", 0, 0))
	require.ErrorIs(t, err, greenops.ErrInvalidDistance)
	assert.Empty(t, s.Entries())
}

type failingStore struct{ storage.Store }

func (failingStore) Set(context.Context, string, []byte) error { return errors.New("disk full") }

func TestAppend_BackendFailureKeepsLog(t *testing.T) {
	s := history.New(failingStore{storage.NewMemoryStore()})
	_, err := s.Append(context.Background(), entry("x", 1, 0.1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "saving history")
	assert.Empty(t, s.Entries())
}

func TestRecord(t *testing.T) {
	ctx := context.Background()
	s := history.New(storage.NewMemoryStore(), history.WithClock(fixedClock()))

	e, entries, err := s.Record(ctx, 12.5, greenops.ModeBus, 0.625)
	require.NoError(t, err)

	assert.Len(t, e.ID, 26)
	assert.Equal(t, 12.5, e.DistanceKm)
	assert.Equal(t, greenops.ModeBus, e.Mode)
	assert.InDelta(t, 0.63, e.EmissionKg, 1e-9)
	assert.Equal(t, "14/03/2026", e.Date)
	assert.True(t, e.Time().Equal(fixedClock()()))
	assert.Equal(t, []history.Entry{e}, entries)
}

func TestRecord_IDsAreMonotonic(t *testing.T) {
	ctx := context.Background()
	s := history.New(storage.NewMemoryStore(), history.WithClock(fixedClock()))

	first, _, err := s.Record(ctx, 1, greenops.ModeCar, 0.12)
	require.NoError(t, err)
	second, _, err := s.Record(ctx, 2, greenops.ModeCar, 0.24)
	require.NoError(t, err)

	assert.Less(t, first.ID, second.ID)
}

func TestRecord_DateLayout(t *testing.T) {
	s := history.New(storage.NewMemoryStore(),
		history.WithClock(fixedClock()),
		history.WithDateLayout("2006-01-02"))

	e, _, err := s.Record(context.Background(), 3, greenops.ModeTrain, 0.12)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", e.Date)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemoryStore()
	s := history.New(backend)

	_, err := s.Append(ctx, entry("a", 5, 0.6))
	require.NoError(t, err)
	require.NoError(t, s.Clear(ctx))

	assert.Empty(t, s.Entries())
	assert.False(t, backend.Has(history.DefaultKey))

	reloaded, err := history.New(backend).Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, reloaded)
}

func TestEntries_ReturnsCopy(t *testing.T) {
	s := history.New(storage.NewMemoryStore())
	_, err := s.Append(context.Background(), entry("a", 5, 0.6))
	require.NoError(t, err)

	got := s.Entries()
	got[0].ID = "mutated"
	assert.Equal(t, "a", s.Entries()[0].ID)
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name    string
		entries []history.Entry
		want    history.Totals
	}{
		{name: "empty", want: history.Totals{}},
		{
			name:    "two entries",
			entries: []history.Entry{entry("a", 1, 50), entry("b", 1, 30)},
			want:    history.Totals{Count: 2, TotalEmissionKg: 80, TotalTreesToOffset: 4},
		},
		{
			name:    "rounded total",
			entries: []history.Entry{entry("a", 1, 0.1), entry("b", 1, 0.2)},
			want:    history.Totals{Count: 2, TotalEmissionKg: 0.3, TotalTreesToOffset: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, history.Aggregate(tt.entries))
		})
	}
}

func TestStore_Aggregate(t *testing.T) {
	ctx := context.Background()
	s := history.New(storage.NewMemoryStore())
	_, err := s.Append(ctx, entry("a", 1, 50))
	require.NoError(t, err)
	_, err = s.Append(ctx, entry("b", 1, 30))
	require.NoError(t, err)

	assert.Equal(t, history.Totals{Count: 2, TotalEmissionKg: 80, TotalTreesToOffset: 4}, s.Aggregate())
}

func TestEntry_TimeInvalidID(t *testing.T) {
	assert.True(t, history.Entry{ID: "not-a-ulid"}.Time().IsZero())
}

func TestOptions(t *testing.T) {
	s := history.New(storage.NewMemoryStore(), history.WithKey("custom"), history.WithCapacity(0))
	assert.Equal(t, "custom", s.Key())
	assert.Equal(t, history.DefaultCapacity, s.Capacity())
}
