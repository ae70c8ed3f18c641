// Package snapshot provides the read-only local tier for holiday
// descriptions: a JSON document of curated records loaded into memory at
// startup and consulted when the authoritative store misses or is down.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-holidays/descriptions"
	"github.com/goliatone/go-holidays/internal/descriptionkey"
	"github.com/goliatone/go-holidays/internal/identity"
	"github.com/goliatone/go-holidays/internal/logging"
	"github.com/goliatone/go-holidays/pkg/interfaces"
)

// Document is the serialised snapshot format: canonical or legacy
// serialised keys mapped onto description records.
type Document map[string]*descriptions.Record

// Store holds the in-memory snapshot. Load fails soft: a missing or
// malformed file yields an empty store plus a logged warning so the
// resolver keeps working against the remote tier alone.
type Store struct {
	path   string
	logger interfaces.Logger
	clock  func() time.Time

	mu      sync.RWMutex
	records map[string]*descriptions.Record
}

// Option customises store construction.
type Option func(*Store)

// WithLogger sets the logger used for load warnings.
func WithLogger(provider interfaces.LoggerProvider) Option {
	return func(s *Store) {
		s.logger = logging.SnapshotLogger(provider)
	}
}

// WithClock overrides the time source used when filling record defaults.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewStore constructs a store bound to the given snapshot path. The file is
// not read until Load is called.
func NewStore(path string, opts ...Option) *Store {
	store := &Store{
		path:    path,
		logger:  logging.NoOp(),
		clock:   time.Now,
		records: map[string]*descriptions.Record{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	return store
}

// Load reads the snapshot file and replaces the in-memory map. Records that
// fail the curation filter (manual or fully confident) are skipped. Load
// never returns an error for a missing or corrupt file; it logs and leaves
// the store empty instead.
func (s *Store) Load(ctx context.Context) {
	if s == nil {
		return
	}

	select {
	case <-ctx.Done():
		return
	default:
	}

	records, err := s.read()
	if err != nil {
		s.logger.Warn("snapshot unavailable, continuing without local tier",
			"path", s.path,
			"error", err,
		)
		records = map[string]*descriptions.Record{}
	}

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()

	if len(records) > 0 {
		s.logger.Info("snapshot loaded", "path", s.path, "records", len(records))
	}
}

// Refresh re-reads the snapshot file. Unlike Load it reports read failures
// so callers triggering an explicit refresh can surface them; the previous
// in-memory map is kept on failure.
func (s *Store) Refresh(ctx context.Context) error {
	if s == nil {
		return errors.New("snapshot: store is nil")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	records, err := s.read()
	if err != nil {
		return fmt.Errorf("snapshot: refresh %q: %w", s.path, err)
	}

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()

	s.logger.Info("snapshot refreshed", "path", s.path, "records", len(records))
	return nil
}

// Get returns the record stored under the exact serialised key, if any.
// The returned record is a copy; callers may mutate it freely.
func (s *Store) Get(key string) (*descriptions.Record, bool) {
	if s == nil {
		return nil, false
	}
	s.mu.RLock()
	record, ok := s.records[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return record.Clone(), true
}

// Len reports how many records the snapshot currently holds.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Replace swaps the entire record map. Used by the refresh command when the
// new snapshot is assembled from the authoritative store instead of disk.
func (s *Store) Replace(records Document) {
	if s == nil {
		return
	}
	next := make(map[string]*descriptions.Record, len(records))
	for key, record := range records {
		if record == nil || !Curated(record) {
			continue
		}
		next[key] = record.Clone()
	}
	s.mu.Lock()
	s.records = next
	s.mu.Unlock()
}

// Curated reports whether a record belongs in the snapshot: manually
// reviewed entries always qualify, generated ones only at full confidence.
func Curated(record *descriptions.Record) bool {
	if record == nil {
		return false
	}
	return record.IsManual || record.Confidence == 1.0
}

func (s *Store) read() (map[string]*descriptions.Record, error) {
	if s.path == "" {
		return nil, errors.New("snapshot path not configured")
	}

	file, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return decodeDocument(file, s.clock)
}

func decodeDocument(r io.Reader, clock func() time.Time) (map[string]*descriptions.Record, error) {
	decoder := json.NewDecoder(r)

	var doc Document
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	now := clock().UTC()
	records := make(map[string]*descriptions.Record, len(doc))
	for key, record := range doc {
		if record == nil {
			continue
		}
		normalizeRecord(key, record, now)
		if !Curated(record) {
			continue
		}
		records[key] = record
	}
	return records, nil
}

// normalizeRecord fills fields older snapshot documents omit so lookups see
// a complete record regardless of which exporter produced the file.
func normalizeRecord(key string, record *descriptions.Record, now time.Time) {
	parsed := descriptionkey.Parse(key)
	if record.HolidayName == "" {
		record.HolidayName = parsed.HolidayName
	}
	if record.CountryName == "" {
		record.CountryName = parsed.CountryCode
	}
	if record.Locale == "" {
		record.Locale = parsed.Locale
	}
	if record.GeneratedAt.IsZero() {
		record.GeneratedAt = now
	}
	if record.ID == uuid.Nil {
		canonical := descriptionkey.Canonical(descriptionkey.Identity{
			HolidayName:       record.HolidayName,
			CountryIdentifier: record.CountryName,
			Locale:            record.Locale,
		})
		record.ID = identity.DescriptionUUID(canonical.String())
	}
}
