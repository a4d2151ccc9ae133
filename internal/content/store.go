package content

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/eduforge/eduforge/internal/auth"
	"github.com/eduforge/eduforge/internal/fault"
)

// RecentLimit caps the cached list of recent records.
const RecentLimit = 10

func errMissingField(field string) error {
	return fault.New(fault.KindPersistence, "content record missing required "+field)
}

// State is an observable snapshot of the store: the loading flag, the last
// error, and a copy of the cached records.
type State struct {
	Loading bool
	Err     error
	Records []Record
}

// Config contains all required parameters for the store.
type Config struct {
	Table  Table
	Auth   auth.Provider
	Logger *slog.Logger

	// Limit overrides RecentLimit (zero uses the default).
	Limit int
}

// validate checks if all required parameters are present.
func (cfg Config) validate() error {
	if cfg.Table == nil {
		return errors.New("table is required")
	}
	if cfg.Auth == nil {
		return errors.New("auth provider is required")
	}
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	return nil
}

// Store caches the current user's most recent content records and owns the
// save/fetch protocol against the backing table.
//
// The cache is the only shared mutable state in the store. It is mutated
// exclusively by completed fetches, and only by wholesale replacement: if
// multiple fetches are in flight, the last one to complete wins. A fetch
// failure leaves the previous cache untouched.
type Store struct {
	table  Table
	auth   auth.Provider
	logger *slog.Logger
	limit  int

	mu      sync.Mutex
	records []Record
	loading bool
	err     error
}

// NewStore creates a store with an empty cache.
func NewStore(cfg Config) (*Store, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	limit := cfg.Limit
	if limit <= 0 {
		limit = RecentLimit
	}

	return &Store{
		table:  cfg.Table,
		auth:   cfg.Auth,
		logger: cfg.Logger,
		limit:  limit,
	}, nil
}

// FetchRecent loads the newest records owned by the current user and
// replaces the cache wholesale. On failure the previous cache is kept and
// the error becomes observable via State. The loading flag is cleared on
// every completion path.
func (s *Store) FetchRecent(ctx context.Context) ([]Record, error) {
	s.setLoading()
	defer s.clearLoading()

	id, err := s.auth.CurrentUser(ctx)
	if err != nil {
		s.setError(err)
		return nil, err
	}

	records, err := s.table.Recent(ctx, id.ID, s.limit)
	if err != nil {
		err = fault.Upgrade(err, fault.KindPersistence, "fetching recent content failed")
		s.setError(err)
		return nil, err
	}

	s.mu.Lock()
	s.records = records
	s.err = nil
	s.mu.Unlock()

	s.logger.Debug("refreshed content cache", "count", len(records), "user", id.ID)
	return s.Recent(), nil
}

// Save persists one record for the current user, then refreshes the cache.
//
// The record must carry a type, subject, grade, chapter, and content; the
// store stamps the owner and update timestamp and defaults metadata. There
// is no optimistic insert: the cache reflects only confirmed server state,
// via the triggered re-fetch. A refresh failure after a confirmed insert is
// recorded in State but does not fail the save. Insert failures re-raise so
// the caller can surface a retry without losing the artifact.
func (s *Store) Save(ctx context.Context, rec Record) error {
	id, err := s.auth.CurrentUser(ctx)
	if err != nil {
		s.setError(err)
		return err
	}

	if err := rec.validateForSave(); err != nil {
		s.setError(err)
		return err
	}

	rec.UserID = id.ID
	rec.UpdatedAt = time.Now().UTC()
	if rec.Metadata == nil {
		rec.Metadata = map[string]any{}
	}

	if err := s.table.Insert(ctx, rec); err != nil {
		err = fault.Upgrade(err, fault.KindPersistence, "saving content record failed")
		s.setError(err)
		return err
	}

	s.logger.Info("saved content record",
		"type", rec.Type,
		"subject", rec.Subject,
		"grade", rec.Grade,
		"chapter", rec.Chapter,
	)

	if _, err := s.FetchRecent(ctx); err != nil {
		// The insert is confirmed; only the cache refresh failed. State
		// carries the error, the save itself succeeded.
		s.logger.Warn("refresh after save failed", "error", err)
	}
	return nil
}

// Recent returns a copy of the cached records, newest first.
func (s *Store) Recent() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// State returns an observable snapshot of the store.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]Record, len(s.records))
	copy(records, s.records)
	return State{Loading: s.loading, Err: s.err, Records: records}
}

func (s *Store) setLoading() {
	s.mu.Lock()
	s.loading = true
	s.err = nil
	s.mu.Unlock()
}

func (s *Store) clearLoading() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *Store) setError(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}
