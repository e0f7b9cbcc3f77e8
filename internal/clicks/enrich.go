package clicks

import (
	"fmt"
	"math/rand"

	"shortlinks/internal/domain"
)

// Enricher supplies the simulated click context: geolocation, a referral
// source for clicks arriving without one, and a client address. A real
// resolver can replace the synthetic one without touching the recorder.
type Enricher interface {
	Geolocation() domain.Geolocation
	ReferralSource() string
	IPAddress() string
}

// geoReference is the fixed reference set synthetic geolocations are
// drawn from.
var geoReference = []domain.Geolocation{
	{Country: "United States", City: "New York", Latitude: 40.7128, Longitude: -74.0060},
	{Country: "United Kingdom", City: "London", Latitude: 51.5074, Longitude: -0.1278},
	{Country: "Canada", City: "Toronto", Latitude: 43.6532, Longitude: -79.3832},
	{Country: "Australia", City: "Sydney", Latitude: -33.8688, Longitude: 151.2093},
	{Country: "Germany", City: "Berlin", Latitude: 52.5200, Longitude: 13.4050},
	{Country: "Japan", City: "Tokyo", Latitude: 35.6762, Longitude: 139.6503},
	{Country: "France", City: "Paris", Latitude: 48.8566, Longitude: 2.3522},
	{Country: "Brazil", City: "São Paulo", Latitude: -23.5505, Longitude: -46.6333},
}

var referralSources = []string{
	"Direct", "Google", "Facebook", "LinkedIn",
	"Email", "WhatsApp", "YouTube", "Instagram",
}

// SyntheticEnricher draws uniformly from fixed reference tables. It
// stands in for real geolocation/referrer resolution, which the system
// deliberately does not do.
type SyntheticEnricher struct {
	rng *rand.Rand
}

// NewSyntheticEnricher creates an enricher seeded from the given source.
// A nil rng uses the shared global source.
func NewSyntheticEnricher(rng *rand.Rand) *SyntheticEnricher {
	return &SyntheticEnricher{rng: rng}
}

func (e *SyntheticEnricher) intn(n int) int {
	if e.rng != nil {
		return e.rng.Intn(n)
	}
	return rand.Intn(n)
}

// Geolocation returns one entry from the fixed reference set.
func (e *SyntheticEnricher) Geolocation() domain.Geolocation {
	return geoReference[e.intn(len(geoReference))]
}

// ReferralSource returns one of the synthetic traffic sources.
func (e *SyntheticEnricher) ReferralSource() string {
	return referralSources[e.intn(len(referralSources))]
}

// IPAddress synthesizes a private address; it carries no real network
// information.
func (e *SyntheticEnricher) IPAddress() string {
	return fmt.Sprintf("192.168.1.%d", e.intn(255))
}
