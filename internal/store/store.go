// Package store implements the record store: the single owner of all
// URL records and their click logs, backed by a snapshot persistence
// collaborator.
package store

import (
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"shortlinks/internal/domain"
	"shortlinks/internal/logging"
	"shortlinks/internal/shortcode"
	"shortlinks/internal/snapshot"
)

const (
	maxRetries = 5

	component = "core"
	module    = "store"
)

// CodeGenerator defines the interface for short code generation.
type CodeGenerator interface {
	Generate() string
}

// Options tune store behavior.
type Options struct {
	// CreateDelay is the simulated network latency waited on every
	// create. Zero disables the wait (tests).
	CreateDelay time.Duration
}

// Store holds the ordered record collection, most-recent-first. All
// mutations go through Create, AppendClick and Reset; every mutation
// persists the full snapshot and reports to the logging collaborator.
type Store struct {
	mu      sync.Mutex
	records []*domain.URLRecord
	byCode  map[string]*domain.URLRecord
	byID    map[string]*domain.URLRecord

	snap     snapshot.Store
	gen      CodeGenerator
	clock    domain.Clock
	reporter logging.Reporter
	opts     Options

	sleep func(time.Duration)
}

// New creates a Store and loads the persisted snapshot. A load failure
// is reported and the store starts empty; it is never raised.
func New(snap snapshot.Store, gen CodeGenerator, clock domain.Clock, reporter logging.Reporter, opts Options) *Store {
	if reporter == nil {
		reporter = logging.Nop{}
	}

	s := &Store{
		byCode:   make(map[string]*domain.URLRecord),
		byID:     make(map[string]*domain.URLRecord),
		snap:     snap,
		gen:      gen,
		clock:    clock,
		reporter: reporter,
		opts:     opts,
		sleep:    time.Sleep,
	}

	records, err := snap.Load()
	if err != nil {
		reporter.Report(component, logging.LevelError, module,
			"failed to load snapshot", map[string]any{"error": err.Error()})
		return s
	}

	for _, r := range records {
		s.records = append(s.records, r)
		s.byCode[r.ShortCode] = r
		s.byID[r.ID] = r
	}
	if len(records) > 0 {
		reporter.Report(component, logging.LevelInfo, module,
			"snapshot loaded", map[string]any{"count": len(records)})
	}
	return s
}

// Create validates the input, assigns a short code and inserts a new
// record at the head of the collection. customCode may be empty, in
// which case codes are generated and retried on collision.
// validityMinutes values below 1 fall back to the default duration.
func (s *Store) Create(originalURL, customCode string, validityMinutes int) (*domain.URLRecord, error) {
	if err := validateURL(originalURL); err != nil {
		s.reporter.Report(component, logging.LevelWarning, module,
			"URL validation failed", map[string]any{"original_url": originalURL})
		return nil, err
	}
	if validityMinutes < 1 {
		validityMinutes = domain.DefaultValidityMinutes
	}

	// Simulated network latency. Pure wait, no cancellation.
	if s.opts.CreateDelay > 0 {
		s.sleep(s.opts.CreateDelay)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	code := customCode
	if code != "" {
		if !shortcode.Validate(code) {
			s.reporter.Report(component, logging.LevelWarning, module,
				"short code validation failed", map[string]any{"custom_code": code})
			return nil, domain.ErrInvalidShortCode
		}
		if _, exists := s.byCode[code]; exists {
			s.reporter.Report(component, logging.LevelWarning, module,
				"duplicate short code rejected", map[string]any{"custom_code": code})
			return nil, domain.ErrDuplicateShortCode
		}
	} else {
		generated, err := s.generateUniqueLocked()
		if err != nil {
			return nil, err
		}
		code = generated
	}

	now := s.clock.Now().UTC()
	record := &domain.URLRecord{
		ID:              uuid.NewString(),
		OriginalURL:     originalURL,
		ShortCode:       code,
		CreatedAt:       now,
		ExpiresAt:       now.Add(time.Duration(validityMinutes) * time.Minute),
		ValidityMinutes: validityMinutes,
		Clicks:          []domain.ClickEvent{},
	}

	// Head insertion keeps the collection most-recent-first.
	s.records = append([]*domain.URLRecord{record}, s.records...)
	s.byCode[code] = record
	s.byID[record.ID] = record

	s.persistLocked()
	s.reporter.Report(component, logging.LevelInfo, module,
		"URL created", map[string]any{
			"short_code":   code,
			"original_url": originalURL,
			"expires_at":   record.ExpiresAt,
		})

	return record.Clone(), nil
}

// generateUniqueLocked draws codes until one does not collide with an
// existing record. Generation alone guarantees nothing; this check is
// the uniqueness enforcement.
func (s *Store) generateUniqueLocked() (string, error) {
	for attempt := 0; attempt < maxRetries; attempt++ {
		code := s.gen.Generate()
		if _, exists := s.byCode[code]; !exists {
			return code, nil
		}
	}
	return "", errors.New("max retries exceeded: unable to generate unique short code")
}

// Lookup returns the record with the given short code. The match is
// exact and case-sensitive.
func (s *Store) Lookup(code string) (*domain.URLRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.byCode[code]
	if !exists {
		return nil, domain.ErrNotFound
	}
	return record.Clone(), nil
}

// Get returns the record with the given ID.
func (s *Store) Get(id string) (*domain.URLRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.byID[id]
	if !exists {
		return nil, domain.ErrNotFound
	}
	return record.Clone(), nil
}

// Update structurally replaces the record with the same ID, preserving
// its position and all other records. Identity fields (ID, short code)
// are not replaceable.
func (s *Store) Update(record *domain.URLRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.byID[record.ID]
	if !exists {
		return domain.ErrNotFound
	}

	updated := record.Clone()
	updated.ShortCode = existing.ShortCode

	for i, r := range s.records {
		if r.ID == record.ID {
			s.records[i] = updated
			break
		}
	}
	s.byID[updated.ID] = updated
	s.byCode[updated.ShortCode] = updated

	s.persistLocked()
	return nil
}

// AppendClick appends one click event to the record with the given ID,
// preserving the order of all other records, and persists the snapshot.
func (s *Store) AppendClick(urlID string, click domain.ClickEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.byID[urlID]
	if !exists {
		return domain.ErrNotFound
	}

	record.Clicks = append(record.Clicks, click)

	s.persistLocked()
	s.reporter.Report(component, logging.LevelInfo, module,
		"click recorded", map[string]any{
			"url_id":     urlID,
			"short_code": record.ShortCode,
			"referrer":   click.Referrer,
			"location":   click.Geolocation.Location(),
		})
	return nil
}

// Snapshot returns a deep copy of all records, most-recent-first.
func (s *Store) Snapshot() []*domain.URLRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.URLRecord, len(s.records))
	for i, r := range s.records {
		out[i] = r.Clone()
	}
	return out
}

// Len returns the number of records held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Reset clears every record and persists the empty snapshot. This is
// the only operation that shrinks a click log.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	s.byCode = make(map[string]*domain.URLRecord)
	s.byID = make(map[string]*domain.URLRecord)

	s.persistLocked()
	s.reporter.Report(component, logging.LevelInfo, module, "store reset", nil)
}

// persistLocked saves the full snapshot. Failures are reported, never
// propagated; the in-memory state stays authoritative.
func (s *Store) persistLocked() {
	if err := s.snap.Save(s.records); err != nil {
		s.reporter.Report(component, logging.LevelError, module,
			"failed to save snapshot", map[string]any{"error": err.Error()})
	}
}

func validateURL(raw string) error {
	if raw == "" {
		return domain.ErrInvalidURL
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return domain.ErrInvalidURL
	}
	if parsed.Host == "" {
		return domain.ErrInvalidURL
	}
	return nil
}
