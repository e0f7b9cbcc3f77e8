package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"shortlinks/internal/analytics"
	"shortlinks/internal/clicks"
	"shortlinks/internal/config"
	"shortlinks/internal/domain"
	"shortlinks/internal/lifecycle"
	"shortlinks/internal/logging"
	"shortlinks/internal/shortcode"
	"shortlinks/internal/snapshot"
	"shortlinks/internal/store"
)

const usage = `usage: shortlinks <command> [flags]

commands:
  create <url>      create a short link
  click <code>      simulate a redirect through a short link
  list              list all records with their status
  stats [code]      show click analytics (all records, or one)
  reset             clear the registry
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	snap, closeSnap, err := openSnapshot(cfg)
	if err != nil {
		slog.Error("failed to open snapshot store", "error", err)
		os.Exit(1)
	}
	defer closeSnap()

	reporter := logging.NewSlogReporter(slog.Default())
	clock := domain.RealClock{}
	s := store.New(snap, shortcode.NewGenerator(), clock, reporter, store.Options{
		CreateDelay: cfg.CreateDelay,
	})
	recorder := clicks.NewRecorder(s, clicks.NewSyntheticEnricher(nil), clock, reporter)

	var cmdErr error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "create":
		cmdErr = runCreate(s, cfg, args)
	case "click":
		cmdErr = runClick(s, recorder, args)
	case "list":
		cmdErr = runList(s, clock)
	case "stats":
		cmdErr = runStats(s, clock, args)
	case "reset":
		s.Reset()
		fmt.Println("registry cleared")
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if cmdErr != nil {
		fmt.Fprintln(os.Stderr, "error:", cmdErr)
		os.Exit(1)
	}
}

func openSnapshot(cfg *config.Config) (snapshot.Store, func(), error) {
	switch cfg.SnapshotBackend {
	case config.BackendMemory:
		return snapshot.NewMemory(), func() {}, nil
	case config.BackendSQLite:
		db, err := snapshot.OpenSQLite(cfg.SnapshotPath)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { db.Close() }, nil
	default:
		return snapshot.NewFile(cfg.SnapshotPath), func() {}, nil
	}
}

func runCreate(s *store.Store, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	code := fs.String("code", "", "custom short code (alphanumeric)")
	minutes := fs.Int("minutes", cfg.ValidityMinutes, "validity in minutes")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("create needs exactly one URL argument")
	}

	record, err := s.Create(fs.Arg(0), *code, *minutes)
	if err != nil {
		return err
	}

	fmt.Printf("created %s -> %s (expires %s)\n",
		record.ShortCode, record.OriginalURL,
		record.ExpiresAt.Local().Format(time.RFC1123))
	return nil
}

func runClick(s *store.Store, recorder *clicks.Recorder, args []string) error {
	fs := flag.NewFlagSet("click", flag.ExitOnError)
	referrer := fs.String("referrer", "", "referrer label (synthetic source when empty)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("click needs exactly one short code argument")
	}

	record, err := s.Lookup(fs.Arg(0))
	if err != nil {
		return err
	}

	click, err := recorder.Record(record.ID, *referrer, "shortlinks-cli")
	if err != nil {
		return err
	}

	// Countdown before the simulated redirect, one tick per second.
	countdown := lifecycle.NewCountdown(lifecycle.DefaultCountdownTicks)
	for countdown.State() == lifecycle.Counting {
		fmt.Printf("redirecting in %d...\n", countdown.Remaining())
		time.Sleep(time.Second)
		countdown.Tick()
	}
	countdown.Tick() // Firing -> Fired

	fmt.Printf("-> %s (from %s, %s)\n",
		record.OriginalURL, click.Referrer, click.Geolocation.Location())
	return nil
}

func runList(s *store.Store, clock domain.Clock) error {
	records := s.Snapshot()
	now := clock.Now()

	active, expired := lifecycle.Classify(records, now)
	summary := analytics.SummarizeStore(records, now)
	fmt.Printf("%d records (%d active, %d expired), %d clicks, %.1f clicks/url\n\n",
		summary.TotalURLs, summary.ActiveURLs, summary.ExpiredURLs,
		summary.TotalClicks, summary.AvgClicksPerURL)

	printRecords := func(label string, recs []*domain.URLRecord) {
		for _, r := range recs {
			fmt.Printf("  [%s] %-8s %-40s %3d clicks  expires %s\n",
				label, r.ShortCode, truncate(r.OriginalURL, 40),
				len(r.Clicks), r.ExpiresAt.Local().Format("2006-01-02 15:04"))
		}
	}
	printRecords("active ", active)
	printRecords("expired", expired)
	return nil
}

func runStats(s *store.Store, clock domain.Clock, args []string) error {
	var tagged []analytics.TaggedClick
	if len(args) > 0 {
		record, err := s.Lookup(args[0])
		if err != nil {
			return err
		}
		tagged = analytics.ForRecord(record)
	} else {
		tagged = analytics.Flatten(s.Snapshot())
	}

	now := clock.Now()
	summary := analytics.Summarize(tagged, now.Location())
	fmt.Printf("total clicks:     %d\n", summary.TotalClicks)
	fmt.Printf("unique locations: %d\n", summary.UniqueLocations)
	fmt.Printf("traffic sources:  %d\n", summary.TrafficSources)
	fmt.Printf("peak hour:        %02d:00 (%d clicks)\n\n", summary.PeakHour, summary.PeakHourClicks)

	if summary.TotalClicks == 0 {
		fmt.Println("no click data available")
		return nil
	}

	fmt.Println("top locations:")
	for _, g := range analytics.GeoBreakdown(tagged) {
		fmt.Printf("  %-30s %d\n", g.Location, g.Count)
	}

	fmt.Println("\ntraffic sources:")
	for _, r := range analytics.ReferrerBreakdown(tagged) {
		fmt.Printf("  %-30s %d\n", r.Referrer, r.Count)
	}

	fmt.Println("\ndaily clicks (last 7 days):")
	for _, d := range analytics.DailyHistogram(tagged, now) {
		fmt.Printf("  %s %s %s\n", d.Date, d.Weekday, strings.Repeat("#", d.Count))
	}

	fmt.Println("\nrecent clicks:")
	for _, c := range analytics.RecentClicks(tagged, 10) {
		fmt.Printf("  %s  %-25s %-12s %s\n",
			c.Timestamp.Local().Format("15:04:05"),
			c.Geolocation.Location(), c.Referrer, c.ShortCode)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
