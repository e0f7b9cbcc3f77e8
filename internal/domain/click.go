package domain

import "time"

// Geolocation is one entry from the synthetic geo reference set.
// It is a simulated signal, never resolved from a real network address.
type Geolocation struct {
	Country   string  `json:"country"`
	City      string  `json:"city"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Location renders the "City, Country" label used by the geographic
// aggregation.
func (g Geolocation) Location() string {
	return g.City + ", " + g.Country
}

// ClickEvent represents one recorded access attempt against a record.
type ClickEvent struct {
	ID          string      `json:"id"`
	Timestamp   time.Time   `json:"timestamp"`
	Referrer    string      `json:"referrer"`
	Geolocation Geolocation `json:"geolocation"`
	UserAgent   string      `json:"user_agent"`
	IPAddress   string      `json:"ip_address"`
}
