// Package lifecycle classifies records by expiry and drives the
// redirect countdown.
package lifecycle

import (
	"time"

	"shortlinks/internal/domain"
)

// IsExpired reports whether the record is expired at the given time.
// The boundary instant itself is still live.
func IsExpired(record *domain.URLRecord, now time.Time) bool {
	return record.IsExpired(now)
}

// Classify partitions records into active and expired at the given
// time, preserving their relative order.
func Classify(records []*domain.URLRecord, now time.Time) (active, expired []*domain.URLRecord) {
	for _, r := range records {
		if IsExpired(r, now) {
			expired = append(expired, r)
		} else {
			active = append(active, r)
		}
	}
	return active, expired
}
