// Package snapshot defines the persistence collaborator for the record
// store: full-snapshot load at startup, full-snapshot save on change.
package snapshot

import "shortlinks/internal/domain"

// Store is the contract for snapshot persistence. The concrete medium is
// irrelevant to the core; only full-snapshot semantics are required.
type Store interface {
	// Load returns the persisted records in stored order, or (nil, nil)
	// when no snapshot exists yet.
	Load() ([]*domain.URLRecord, error)

	// Save replaces the persisted snapshot with the given records.
	Save(records []*domain.URLRecord) error
}
