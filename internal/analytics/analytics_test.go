package analytics_test

import (
	"fmt"
	"testing"
	"time"

	"shortlinks/internal/analytics"
	"shortlinks/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tokyo  = domain.Geolocation{Country: "Japan", City: "Tokyo", Latitude: 35.6762, Longitude: 139.6503}
	london = domain.Geolocation{Country: "United Kingdom", City: "London", Latitude: 51.5074, Longitude: -0.1278}
	paris  = domain.Geolocation{Country: "France", City: "Paris", Latitude: 48.8566, Longitude: 2.3522}
)

func click(ts time.Time, referrer string, geo domain.Geolocation) domain.ClickEvent {
	return domain.ClickEvent{
		ID:          fmt.Sprintf("click-%d", ts.UnixNano()),
		Timestamp:   ts,
		Referrer:    referrer,
		Geolocation: geo,
	}
}

func TestFlatten_TagsClicksWithSourceRecord(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	records := []*domain.URLRecord{
		{
			ShortCode:   "abc123",
			OriginalURL: "https://a.example.com",
			Clicks: []domain.ClickEvent{
				click(now, "Google", tokyo),
				click(now.Add(time.Minute), "", london),
			},
		},
		{
			ShortCode:   "xyz789",
			OriginalURL: "https://b.example.com",
			Clicks:      []domain.ClickEvent{click(now.Add(2*time.Minute), "Email", paris)},
		},
	}

	flat := analytics.Flatten(records)
	require.Len(t, flat, 3)
	assert.Equal(t, "abc123", flat[0].ShortCode)
	assert.Equal(t, "https://a.example.com", flat[1].OriginalURL)
	assert.Equal(t, "xyz789", flat[2].ShortCode)
}

func TestForRecord(t *testing.T) {
	now := time.Now()
	record := &domain.URLRecord{
		ShortCode: "abc123",
		Clicks:    []domain.ClickEvent{click(now, "Google", tokyo)},
	}

	assert.Len(t, analytics.ForRecord(record), 1)
	assert.Empty(t, analytics.ForRecord(nil))
}

func TestGeoBreakdown_CountsAndSorts(t *testing.T) {
	now := time.Now()
	clicks := []analytics.TaggedClick{
		{ClickEvent: click(now, "", tokyo)},
		{ClickEvent: click(now, "", london)},
		{ClickEvent: click(now, "", tokyo)},
		{ClickEvent: click(now, "", tokyo)},
		{ClickEvent: click(now, "", london)},
		{ClickEvent: click(now, "", paris)},
	}

	geo := analytics.GeoBreakdown(clicks)
	require.Len(t, geo, 3)
	assert.Equal(t, analytics.LocationCount{Location: "Tokyo, Japan", Count: 3}, geo[0])
	assert.Equal(t, analytics.LocationCount{Location: "London, United Kingdom", Count: 2}, geo[1])
	assert.Equal(t, analytics.LocationCount{Location: "Paris, France", Count: 1}, geo[2])
}

func TestGeoBreakdown_TiesKeepFirstEncounteredOrder(t *testing.T) {
	now := time.Now()
	clicks := []analytics.TaggedClick{
		{ClickEvent: click(now, "", london)},
		{ClickEvent: click(now, "", tokyo)},
	}

	geo := analytics.GeoBreakdown(clicks)
	require.Len(t, geo, 2)
	assert.Equal(t, "London, United Kingdom", geo[0].Location)
	assert.Equal(t, "Tokyo, Japan", geo[1].Location)
}

func TestGeoBreakdown_TruncatesToTopTen(t *testing.T) {
	now := time.Now()
	var clicks []analytics.TaggedClick
	for i := 0; i < 15; i++ {
		geo := domain.Geolocation{Country: "X", City: fmt.Sprintf("City%02d", i)}
		clicks = append(clicks, analytics.TaggedClick{ClickEvent: click(now, "", geo)})
	}

	assert.Len(t, analytics.GeoBreakdown(clicks), 10)
}

func TestGeoBreakdown_SkipsMissingGeolocation(t *testing.T) {
	now := time.Now()
	clicks := []analytics.TaggedClick{
		{ClickEvent: click(now, "", domain.Geolocation{})},
		{ClickEvent: click(now, "", tokyo)},
	}

	geo := analytics.GeoBreakdown(clicks)
	require.Len(t, geo, 1)
	assert.Equal(t, "Tokyo, Japan", geo[0].Location)
}

func TestGeoBreakdown_Empty(t *testing.T) {
	assert.Empty(t, analytics.GeoBreakdown(nil))
}

func TestReferrerBreakdown(t *testing.T) {
	now := time.Now()
	clicks := []analytics.TaggedClick{
		{ClickEvent: click(now, "Google", tokyo)},
		{ClickEvent: click(now, "", tokyo)},
		{ClickEvent: click(now, "Google", tokyo)},
		{ClickEvent: click(now, "Email", tokyo)},
		{ClickEvent: click(now, "", tokyo)},
		{ClickEvent: click(now, "", tokyo)},
	}

	refs := analytics.ReferrerBreakdown(clicks)
	require.Len(t, refs, 3)
	assert.Equal(t, analytics.ReferrerCount{Referrer: "Direct", Count: 3}, refs[0])
	assert.Equal(t, analytics.ReferrerCount{Referrer: "Google", Count: 2}, refs[1])
	assert.Equal(t, analytics.ReferrerCount{Referrer: "Email", Count: 1}, refs[2])
}

func TestReferrerBreakdown_Empty(t *testing.T) {
	assert.Empty(t, analytics.ReferrerBreakdown(nil))
}

func TestHourlyHistogram(t *testing.T) {
	base := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	clicks := []analytics.TaggedClick{
		{ClickEvent: click(base.Add(9*time.Hour), "", tokyo)},
		{ClickEvent: click(base.Add(9*time.Hour+30*time.Minute), "", tokyo)},
		{ClickEvent: click(base.Add(23*time.Hour), "", tokyo)},
	}

	hist := analytics.HourlyHistogram(clicks, time.UTC)
	require.Len(t, hist, 24)
	assert.Equal(t, 2, hist[9].Count)
	assert.Equal(t, 1, hist[23].Count)
	assert.Equal(t, 0, hist[0].Count)
	for i, bucket := range hist {
		assert.Equal(t, i, bucket.Hour)
	}
}

func TestHourlyHistogram_InterpretsHoursInLocation(t *testing.T) {
	// 23:30 UTC is 08:30 the next day in UTC+9.
	jst := time.FixedZone("JST", 9*60*60)
	ts := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)
	clicks := []analytics.TaggedClick{{ClickEvent: click(ts, "", tokyo)}}

	assert.Equal(t, 1, analytics.HourlyHistogram(clicks, time.UTC)[23].Count)
	assert.Equal(t, 1, analytics.HourlyHistogram(clicks, jst)[8].Count)
}

func TestHourlyHistogram_Empty(t *testing.T) {
	hist := analytics.HourlyHistogram(nil, time.UTC)
	require.Len(t, hist, 24)
	for _, bucket := range hist {
		assert.Zero(t, bucket.Count)
	}
}

func TestDailyHistogram_AlwaysSevenEntries(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC) // a Tuesday

	days := analytics.DailyHistogram(nil, now)
	require.Len(t, days, 7)

	assert.Equal(t, "2026-03-04", days[0].Date)
	assert.Equal(t, "Wed", days[0].Weekday)
	assert.Equal(t, "2026-03-10", days[6].Date)
	assert.Equal(t, "Tue", days[6].Weekday)
	for _, d := range days {
		assert.Zero(t, d.Count)
	}
}

func TestDailyHistogram_CountsClicksPerCalendarDay(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	clicks := []analytics.TaggedClick{
		{ClickEvent: click(now.Add(-2*time.Hour), "", tokyo)},                 // today
		{ClickEvent: click(now.AddDate(0, 0, -1), "", tokyo)},                 // yesterday
		{ClickEvent: click(now.AddDate(0, 0, -1).Add(-time.Hour), "", tokyo)}, // yesterday
		{ClickEvent: click(now.AddDate(0, 0, -6), "", tokyo)},                 // oldest in window
		{ClickEvent: click(now.AddDate(0, 0, -10), "", tokyo)},                // outside window
	}

	days := analytics.DailyHistogram(clicks, now)
	require.Len(t, days, 7)
	assert.Equal(t, 1, days[0].Count, "oldest window day")
	assert.Equal(t, 2, days[5].Count, "yesterday")
	assert.Equal(t, 1, days[6].Count, "today")

	total := 0
	for _, d := range days {
		total += d.Count
	}
	assert.Equal(t, 4, total, "clicks outside the window are ignored")
}

func TestSummarize(t *testing.T) {
	base := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	clicks := []analytics.TaggedClick{
		{ClickEvent: click(base.Add(9*time.Hour), "Google", tokyo)},
		{ClickEvent: click(base.Add(9*time.Hour), "", london)},
		{ClickEvent: click(base.Add(14*time.Hour), "Google", tokyo)},
	}

	s := analytics.Summarize(clicks, time.UTC)
	assert.Equal(t, 3, s.TotalClicks)
	assert.Equal(t, 2, s.UniqueLocations)
	assert.Equal(t, 2, s.TrafficSources)
	assert.Equal(t, 9, s.PeakHour)
	assert.Equal(t, 2, s.PeakHourClicks)
}

func TestSummarize_PeakHourTieBreaksToLowestIndex(t *testing.T) {
	base := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	clicks := []analytics.TaggedClick{
		{ClickEvent: click(base.Add(17*time.Hour), "", tokyo)},
		{ClickEvent: click(base.Add(5*time.Hour), "", tokyo)},
	}

	s := analytics.Summarize(clicks, time.UTC)
	assert.Equal(t, 5, s.PeakHour)
}

func TestSummarize_Empty(t *testing.T) {
	s := analytics.Summarize(nil, time.UTC)
	assert.Zero(t, s.TotalClicks)
	assert.Zero(t, s.UniqueLocations)
	assert.Zero(t, s.TrafficSources)
	assert.Zero(t, s.PeakHour)
	assert.Zero(t, s.PeakHourClicks)
}

func TestSummarizeStore(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	records := []*domain.URLRecord{
		{
			ShortCode: "live01",
			ExpiresAt: now.Add(time.Hour),
			Clicks:    []domain.ClickEvent{click(now, "", tokyo), click(now, "", london)},
		},
		{
			ShortCode: "dead01",
			ExpiresAt: now.Add(-time.Minute),
			Clicks:    []domain.ClickEvent{click(now, "", paris)},
		},
	}

	s := analytics.SummarizeStore(records, now)
	assert.Equal(t, 2, s.TotalURLs)
	assert.Equal(t, 1, s.ActiveURLs)
	assert.Equal(t, 1, s.ExpiredURLs)
	assert.Equal(t, 3, s.TotalClicks)
	assert.InDelta(t, 1.5, s.AvgClicksPerURL, 0.001)
}

func TestSummarizeStore_Empty(t *testing.T) {
	s := analytics.SummarizeStore(nil, time.Now())
	assert.Zero(t, s.TotalURLs)
	assert.Zero(t, s.AvgClicksPerURL)
}

func TestRecentClicks(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	var clicks []analytics.TaggedClick
	for i := 0; i < 15; i++ {
		clicks = append(clicks, analytics.TaggedClick{
			ClickEvent: click(base.Add(time.Duration(i)*time.Minute), "", tokyo),
		})
	}

	recent := analytics.RecentClicks(clicks, 10)
	require.Len(t, recent, 10)
	assert.Equal(t, base.Add(14*time.Minute), recent[0].Timestamp)
	assert.Equal(t, base.Add(5*time.Minute), recent[9].Timestamp)

	// Input order is untouched.
	assert.Equal(t, base, clicks[0].Timestamp)
}

func TestRecentClicks_Empty(t *testing.T) {
	assert.Empty(t, analytics.RecentClicks(nil, 10))
}
