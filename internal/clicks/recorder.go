// Package clicks records click events against live URL records.
package clicks

import (
	"github.com/google/uuid"

	"shortlinks/internal/domain"
	"shortlinks/internal/logging"
	"shortlinks/internal/store"
)

const (
	component = "core"
	module    = "clicks"
)

// Recorder validates that a record is live and appends synthesized
// click events to it. It is the only mutator of click logs.
type Recorder struct {
	store    *store.Store
	enricher Enricher
	clock    domain.Clock
	reporter logging.Reporter
}

// NewRecorder creates a Recorder over the given store.
func NewRecorder(s *store.Store, enricher Enricher, clock domain.Clock, reporter logging.Reporter) *Recorder {
	if reporter == nil {
		reporter = logging.Nop{}
	}
	return &Recorder{
		store:    s,
		enricher: enricher,
		clock:    clock,
		reporter: reporter,
	}
}

// Record appends one click event to the record with the given ID.
// referrer may be empty, in which case a synthetic source is chosen.
// Returns domain.ErrNotFound for unknown IDs and domain.ErrExpired for
// dead links; in both cases nothing is recorded.
func (r *Recorder) Record(urlID, referrer, userAgent string) (*domain.ClickEvent, error) {
	record, err := r.store.Get(urlID)
	if err != nil {
		r.reporter.Report(component, logging.LevelWarning, module,
			"URL not found", map[string]any{"url_id": urlID})
		return nil, err
	}

	if record.IsExpired(r.clock.Now()) {
		r.reporter.Report(component, logging.LevelWarning, module,
			"URL expired", map[string]any{
				"short_code": record.ShortCode,
				"expires_at": record.ExpiresAt,
			})
		return nil, domain.ErrExpired
	}

	if referrer == "" {
		referrer = r.enricher.ReferralSource()
	}

	click := domain.ClickEvent{
		ID:          uuid.NewString(),
		Timestamp:   r.clock.Now().UTC(),
		Referrer:    referrer,
		Geolocation: r.enricher.Geolocation(),
		UserAgent:   userAgent,
		IPAddress:   r.enricher.IPAddress(),
	}

	if err := r.store.AppendClick(urlID, click); err != nil {
		return nil, err
	}
	return &click, nil
}
