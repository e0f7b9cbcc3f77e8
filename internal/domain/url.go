package domain

import "time"

// URLRecord represents a shortened URL entry and its click history.
type URLRecord struct {
	ID              string       `json:"id"`
	OriginalURL     string       `json:"original_url"`
	ShortCode       string       `json:"short_code"`
	CreatedAt       time.Time    `json:"created_at"`
	ExpiresAt       time.Time    `json:"expires_at"`
	ValidityMinutes int          `json:"validity_minutes"`
	Clicks          []ClickEvent `json:"clicks"`
}

// IsExpired returns true if the record has expired at the given time.
// A record expiring exactly at now is still considered live.
func (r *URLRecord) IsExpired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// IsActive is the derived convenience form of the expiry check.
func (r *URLRecord) IsActive(now time.Time) bool {
	return !r.IsExpired(now)
}

// Clone creates a deep copy of the record, including its click log.
func (r *URLRecord) Clone() *URLRecord {
	clicks := make([]ClickEvent, len(r.Clicks))
	copy(clicks, r.Clicks)

	return &URLRecord{
		ID:              r.ID,
		OriginalURL:     r.OriginalURL,
		ShortCode:       r.ShortCode,
		CreatedAt:       r.CreatedAt,
		ExpiresAt:       r.ExpiresAt,
		ValidityMinutes: r.ValidityMinutes,
		Clicks:          clicks,
	}
}

// ValidityOptions are the durations (in minutes) the presentation layer
// offers when creating a record. The store accepts any positive value.
var ValidityOptions = []int{30, 60, 180, 360, 720, 1440, 4320, 10080}

// DefaultValidityMinutes is used when the caller does not choose a duration.
const DefaultValidityMinutes = 30
