// Package history keeps the capped, newest-first log of past calculations
// and persists it as a single JSON array under one storage key.
package history

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/EHLuC/ecotrip/internal/greenops"
	"github.com/EHLuC/ecotrip/internal/logging"
	"github.com/EHLuC/ecotrip/internal/storage"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrCorrupted indicates the stored history exists but is not a valid log.
// Callers should surface it and offer a reset rather than overwrite.
const ErrCorrupted = constError("history data corrupted")

const (
	// DefaultKey is the storage key holding the log.
	DefaultKey = "ecotrip-history"

	// DefaultCapacity is the maximum number of retained entries.
	DefaultCapacity = 10

	// DefaultDateLayout renders dates as day/month/year.
	DefaultDateLayout = "02/01/2006"
)

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithCapacity overrides the retained entry count. Values below 1 are ignored.
func WithCapacity(capacity int) Option {
	return func(s *Store) {
		if capacity >= 1 {
			s.capacity = capacity
		}
	}
}

// WithClock overrides the time source used for IDs and date labels.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithDateLayout sets the time layout used for Entry.Date.
func WithDateLayout(layout string) Option {
	return func(s *Store) {
		if layout != "" {
			s.dateLayout = layout
		}
	}
}

// Store is the in-memory history log backed by a storage.Store.
// Safe for concurrent use.
type Store struct {
	mu sync.Mutex

	backend    storage.Store
	key        string
	capacity   int
	now        func() time.Time
	dateLayout string
	entropy    *ulid.MonotonicEntropy

	entries []Entry
}

// New creates a history Store over backend. Call Load to read persisted state.
func New(backend storage.Store, opts ...Option) *Store {
	s := &Store{
		backend:    backend,
		key:        DefaultKey,
		capacity:   DefaultCapacity,
		now:        time.Now,
		dateLayout: DefaultDateLayout,
		entropy:    ulid.Monotonic(rand.Reader, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key.
func (s *Store) Key() string { return s.key }

// Capacity returns the maximum number of retained entries.
func (s *Store) Capacity() int { return s.capacity }

// Load reads the persisted log. A missing key yields an empty log; data that
// does not decode as a log returns an error wrapping ErrCorrupted and leaves
// the in-memory log unchanged.
func (s *Store) Load(ctx context.Context) ([]Entry, error) {
	log := logging.FromContext(ctx)

	data, err := s.backend.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		s.mu.Lock()
		s.entries = nil
		s.mu.Unlock()
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}

	var entries []Entry
	if len(bytes.TrimSpace(data)) > 0 {
		if err = json.Unmarshal(data, &entries); err != nil {
			log.Warn().
				Ctx(ctx).
				Str("component", "history").
				Str("operation", "load").
				Str("key", s.key).
				Err(err).
				Msg("stored history is not a valid log")
			return nil, fmt.Errorf("%w: %w", ErrCorrupted, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(entries) > s.capacity {
		entries = entries[:s.capacity]
	}
	s.entries = entries

	log.Debug().
		Ctx(ctx).
		Str("component", "history").
		Str("operation", "load").
		Int("entries", len(entries)).
		Msg("history loaded")

	return s.snapshot(), nil
}

// Append inserts entry at the front, truncates to capacity and persists the
// result before returning the new log.
func (s *Store) Append(ctx context.Context, entry Entry) ([]Entry, error) {
	if err := greenops.ValidateDistance(entry.DistanceKm); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Entry, 0, min(len(s.entries)+1, s.capacity))
	next = append(next, entry)
	for _, e := range s.entries {
		if len(next) == s.capacity {
			break
		}
		next = append(next, e)
	}

	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	s.entries = next

	logging.FromContext(ctx).Debug().
		Ctx(ctx).
		Str("component", "history").
		Str("operation", "append").
		Str("id", entry.ID).
		Int("entries", len(next)).
		Msg("history entry appended")

	return s.snapshot(), nil
}

// Record builds a new entry stamped with the store clock and appends it.
func (s *Store) Record(
	ctx context.Context,
	distanceKm float64,
	mode greenops.TransportMode,
	emissionKg float64,
) (Entry, []Entry, error) {
	if err := greenops.ValidateDistance(distanceKm); err != nil {
		return Entry{}, nil, err
	}

	entry, err := s.newEntry(distanceKm, mode, emissionKg)
	if err != nil {
		return Entry{}, nil, err
	}

	entries, err := s.Append(ctx, entry)
	if err != nil {
		return Entry{}, nil, err
	}
	return entry, entries, nil
}

// Clear empties the log and deletes the storage key.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	s.entries = nil

	logging.FromContext(ctx).Info().
		Ctx(ctx).
		Str("component", "history").
		Str("operation", "clear").
		Msg("history cleared")

	return nil
}

// Entries returns a copy of the in-memory log, newest first.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Aggregate summarises the in-memory log.
func (s *Store) Aggregate() Totals {
	return Aggregate(s.Entries())
}

func (s *Store) newEntry(distanceKm float64, mode greenops.TransportMode, emissionKg float64) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	id, err := ulid.New(ulid.Timestamp(now), s.entropy)
	if err != nil {
		return Entry{}, fmt.Errorf("generating entry id: %w", err)
	}

	return Entry{
		ID:         id.String(),
		DistanceKm: distanceKm,
		Mode:       mode,
		EmissionKg: greenops.RoundKg(emissionKg),
		Date:       now.Format(s.dateLayout),
	}, nil
}

// persist writes entries as a JSON array. Caller must hold s.mu.
func (s *Store) persist(ctx context.Context, entries []Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}
	if err = s.backend.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}

// snapshot copies the log. Caller must hold s.mu.
func (s *Store) snapshot() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
