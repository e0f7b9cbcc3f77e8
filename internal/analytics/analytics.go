// Package analytics derives aggregate statistics from click event logs.
//
// Every function here is a pure transform over a snapshot: no internal
// state, fresh results on every call, and empty input yields empty or
// zero-valued output rather than an error.
package analytics

import (
	"sort"
	"time"

	"shortlinks/internal/domain"
)

// DirectReferrer is the label substituted for a missing referrer.
const DirectReferrer = "Direct"

// TopLocations caps the geographic breakdown.
const TopLocations = 10

// TaggedClick is a click event annotated with its source record.
type TaggedClick struct {
	domain.ClickEvent
	ShortCode   string
	OriginalURL string
}

// Flatten unions the click logs of all records into a single sequence,
// tagging each click with its source record. Record order (and the
// chronological order within each record) is preserved.
func Flatten(records []*domain.URLRecord) []TaggedClick {
	var out []TaggedClick
	for _, r := range records {
		for _, c := range r.Clicks {
			out = append(out, TaggedClick{
				ClickEvent:  c,
				ShortCode:   r.ShortCode,
				OriginalURL: r.OriginalURL,
			})
		}
	}
	return out
}

// ForRecord selects the clicks of a single record.
func ForRecord(record *domain.URLRecord) []TaggedClick {
	if record == nil {
		return nil
	}
	return Flatten([]*domain.URLRecord{record})
}

// LocationCount is one entry of the geographic breakdown.
type LocationCount struct {
	Location string
	Count    int
}

// GeoBreakdown groups clicks by "City, Country", sorted descending by
// count and truncated to the top 10. Ties keep first-encountered order.
// Clicks without a geolocation are skipped.
func GeoBreakdown(clicks []TaggedClick) []LocationCount {
	counts := make(map[string]int)
	var order []string

	for _, c := range clicks {
		if c.Geolocation == (domain.Geolocation{}) {
			continue
		}
		location := c.Geolocation.Location()
		if _, seen := counts[location]; !seen {
			order = append(order, location)
		}
		counts[location]++
	}

	out := make([]LocationCount, 0, len(order))
	for _, location := range order {
		out = append(out, LocationCount{Location: location, Count: counts[location]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})

	if len(out) > TopLocations {
		out = out[:TopLocations]
	}
	return out
}

// ReferrerCount is one entry of the referrer breakdown.
type ReferrerCount struct {
	Referrer string
	Count    int
}

// ReferrerBreakdown groups clicks by referrer (missing referrers count
// as Direct), sorted descending by count, untruncated. Ties keep
// first-encountered order.
func ReferrerBreakdown(clicks []TaggedClick) []ReferrerCount {
	counts := make(map[string]int)
	var order []string

	for _, c := range clicks {
		referrer := c.Referrer
		if referrer == "" {
			referrer = DirectReferrer
		}
		if _, seen := counts[referrer]; !seen {
			order = append(order, referrer)
		}
		counts[referrer]++
	}

	out := make([]ReferrerCount, 0, len(order))
	for _, referrer := range order {
		out = append(out, ReferrerCount{Referrer: referrer, Count: counts[referrer]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// HourBucket is one hour-of-day bucket of the hourly histogram.
type HourBucket struct {
	Hour  int
	Count int
}

// HourlyHistogram buckets clicks by hour of day (0-23) interpreted in
// the given location. A nil location uses time.Local. Always returns
// all 24 buckets.
func HourlyHistogram(clicks []TaggedClick, loc *time.Location) []HourBucket {
	if loc == nil {
		loc = time.Local
	}

	out := make([]HourBucket, 24)
	for i := range out {
		out[i].Hour = i
	}
	for _, c := range clicks {
		out[c.Timestamp.In(loc).Hour()].Count++
	}
	return out
}

// DayBucket is one calendar-day bucket of the daily histogram.
type DayBucket struct {
	Date    string // ISO date, YYYY-MM-DD
	Weekday string // short label, e.g. "Mon"
	Count   int
}

// DailyHistogram buckets clicks over a fixed 7-day window: today (per
// now's location) and the preceding six days, oldest first. Days with
// no clicks stay at zero; clicks outside the window are ignored.
func DailyHistogram(clicks []TaggedClick, now time.Time) []DayBucket {
	loc := now.Location()

	out := make([]DayBucket, 0, 7)
	index := make(map[string]int, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		date := day.Format("2006-01-02")
		index[date] = len(out)
		out = append(out, DayBucket{
			Date:    date,
			Weekday: day.Format("Mon"),
		})
	}

	for _, c := range clicks {
		date := c.Timestamp.In(loc).Format("2006-01-02")
		if i, ok := index[date]; ok {
			out[i].Count++
		}
	}
	return out
}

// Summary holds the headline statistics of a click collection.
type Summary struct {
	TotalClicks     int
	UniqueLocations int
	TrafficSources  int
	PeakHour        int // hour-of-day with the most clicks; lowest index wins ties
	PeakHourClicks  int
}

// Summarize computes the summary statistics over the given clicks,
// interpreting hours in the given location.
func Summarize(clicks []TaggedClick, loc *time.Location) Summary {
	s := Summary{
		TotalClicks:     len(clicks),
		UniqueLocations: len(GeoBreakdown(clicks)),
		TrafficSources:  len(ReferrerBreakdown(clicks)),
	}

	for _, bucket := range HourlyHistogram(clicks, loc) {
		if bucket.Count > s.PeakHourClicks {
			s.PeakHour = bucket.Hour
			s.PeakHourClicks = bucket.Count
		}
	}
	return s
}

// StoreSummary holds record-level statistics over the whole store.
type StoreSummary struct {
	TotalURLs       int
	ActiveURLs      int
	ExpiredURLs     int
	TotalClicks     int
	AvgClicksPerURL float64
}

// SummarizeStore computes record counts and click totals over a store
// snapshot at the given time.
func SummarizeStore(records []*domain.URLRecord, now time.Time) StoreSummary {
	s := StoreSummary{TotalURLs: len(records)}

	for _, r := range records {
		if r.IsExpired(now) {
			s.ExpiredURLs++
		} else {
			s.ActiveURLs++
		}
		s.TotalClicks += len(r.Clicks)
	}
	if s.TotalURLs > 0 {
		s.AvgClicksPerURL = float64(s.TotalClicks) / float64(s.TotalURLs)
	}
	return s
}

// RecentClicks returns the newest clicks first, at most limit entries.
// The sort is stable over the flattened input order.
func RecentClicks(clicks []TaggedClick, limit int) []TaggedClick {
	out := make([]TaggedClick, len(clicks))
	copy(out, clicks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
