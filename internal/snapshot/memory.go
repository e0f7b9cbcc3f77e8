package snapshot

import (
	"sync"

	"shortlinks/internal/domain"
)

// Memory is an in-process snapshot store, used in tests and when no
// durable medium is configured.
type Memory struct {
	mu      sync.Mutex
	records []*domain.URLRecord

	// LoadErr and SaveErr, when set, are returned by the matching
	// operation. Tests use them to exercise persistence-failure paths.
	LoadErr error
	SaveErr error
}

// NewMemory creates an empty in-memory snapshot store.
func NewMemory() *Memory {
	return &Memory{}
}

// Load returns a deep copy of the held snapshot.
func (m *Memory) Load() ([]*domain.URLRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.records == nil {
		return nil, nil
	}

	out := make([]*domain.URLRecord, len(m.records))
	for i, r := range m.records {
		out[i] = r.Clone()
	}
	return out, nil
}

// Save replaces the held snapshot with a deep copy of records.
func (m *Memory) Save(records []*domain.URLRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}

	m.records = make([]*domain.URLRecord, len(records))
	for i, r := range records {
		m.records[i] = r.Clone()
	}
	return nil
}
