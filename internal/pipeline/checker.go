package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stormpetrel/bomwatch/internal/domain"
	"github.com/stormpetrel/bomwatch/internal/observability"
)

// Store is the key-value persistence the pipeline depends on: the user's
// saved location (read-only here) and the per-cycle results.
type Store interface {
	Location(ctx context.Context) (domain.Coordinate, string, bool, error)
	SaveResult(ctx context.Context, result domain.CheckResult) error
	SaveDebugLog(ctx context.Context, lines []string) error
	SaveWarning(ctx context.Context, warning domain.Warning) error
	ClearResults(ctx context.Context) error
}

// FeedFetcher retrieves the raw warning feed for a region and resolves the
// region's warnings page, used as the link fallback.
type FeedFetcher interface {
	FetchWarningFeed(ctx context.Context, region domain.Region) (string, error)
	WarningsPage(region domain.Region) string
}

// Notifier delivers one warning notification. Delivery is best-effort: the
// checker logs failures and moves on.
type Notifier interface {
	Notify(ctx context.Context, warning domain.Warning, locationName string) error
}

// Checker runs one warning check cycle at a time: read the saved location,
// classify the region, fetch and parse its feed, classify and dedupe the
// warnings, notify the newly eligible ones, and persist a summary. It owns
// the previously-notified ID set, replaced wholesale after every cycle.
type Checker struct {
	store    Store
	fetcher  FeedFetcher
	notifier Notifier
	logger   *slog.Logger
	metrics  *observability.Metrics

	mu       sync.Mutex
	notified map[string]struct{}
	ready    atomic.Bool
}

// NewChecker wires a Checker. The notified set starts empty, so warnings
// active when the process starts are re-notified once.
func NewChecker(store Store, fetcher FeedFetcher, notifier Notifier, logger *slog.Logger, metrics *observability.Metrics) *Checker {
	return &Checker{
		store:    store,
		fetcher:  fetcher,
		notifier: notifier,
		logger:   logger,
		metrics:  metrics,
		notified: make(map[string]struct{}),
	}
}

// CheckReadiness returns nil once at least one cycle has completed.
func (c *Checker) CheckReadiness(_ context.Context) error {
	if !c.ready.Load() {
		return errors.New("no check cycle has completed yet")
	}
	return nil
}

// Check runs one complete cycle. It never fails: fetch and parse problems
// degrade to an empty warning list, and anything unexpected is recovered at
// the top so the scheduler is never derailed. The accumulated debug log is
// persisted even on the failure path.
func (c *Checker) Check(ctx context.Context) (result domain.CheckResult) {
	start := time.Now()
	c.metrics.ChecksRun.Inc()
	clog := newCycleLog(c.logger)

	defer func() {
		if r := recover(); r != nil {
			c.metrics.CheckFailures.Inc()
			clog.warnf("check aborted: %v", r)
			if err := c.store.SaveDebugLog(ctx, clog.lines); err != nil {
				c.logger.Error("persist debug log failed", "error", err)
			}
			result = domain.CheckResult{CheckedAt: domain.Now(), Warnings: []domain.Warning{}, DebugLog: clog.lines}
		}
		c.metrics.CheckDuration.Observe(time.Since(start).Seconds())
	}()

	coord, storedName, hasLocation, err := c.store.Location(ctx)
	if err != nil {
		c.metrics.CheckFailures.Inc()
		clog.warnf("read location: %v", err)
		if err := c.store.SaveDebugLog(ctx, clog.lines); err != nil {
			c.logger.Error("persist debug log failed", "error", err)
		}
		return domain.CheckResult{CheckedAt: domain.Now(), Warnings: []domain.Warning{}, DebugLog: clog.lines}
	}

	if !hasLocation {
		clog.logf("no location set")
		if err := c.store.ClearResults(ctx); err != nil {
			c.logger.Error("clear results failed", "error", err)
		}
		return domain.CheckResult{CheckedAt: domain.Now(), Warnings: []domain.Warning{}, DebugLog: clog.lines}
	}

	if !domain.InAustralia(coord.Lat, coord.Lon) {
		clog.logf("location outside Australia: %.4f, %.4f", coord.Lat, coord.Lon)
		return c.finishCycle(ctx, domain.CheckResult{
			CheckedAt: domain.Now(),
			Warnings:  []domain.Warning{},
			DebugLog:  clog.lines,
		})
	}

	region := domain.ClassifyRegion(coord.Lat, coord.Lon)
	locationName := storedName
	if locationName == "" {
		locationName = domain.NearestCapital(coord.Lat, coord.Lon)
	}
	clog.logf("checking warnings for %s, %s (%.4f, %.4f)", orUnknown(locationName), region, coord.Lat, coord.Lon)

	unique := c.collectWarnings(ctx, region, locationName, clog)
	clog.logf("unique warnings for %s: %d", region, len(unique))
	for i, w := range unique {
		clog.logf("%d. [%s] %s", i+1, w.Severity, w.Title)
	}

	eligible := domain.DecideNotifications(unique, c.snapshotNotified())
	for _, w := range eligible {
		clog.logf("sending notification: %s", w.Title)
		if err := c.notifier.Notify(ctx, w, locationName); err != nil {
			clog.warnf("notify %s: %v", w.ID, err)
			continue
		}
		c.metrics.NotificationsSent.Inc()
		if err := c.store.SaveWarning(ctx, w); err != nil {
			clog.warnf("save warning %s: %v", w.ID, err)
		}
	}

	c.replaceNotified(domain.IDSet(unique))

	return c.finishCycle(ctx, domain.CheckResult{
		CheckedAt:    domain.Now(),
		AlertCount:   len(unique),
		Region:       region,
		LocationName: locationName,
		Warnings:     unique,
		DebugLog:     clog.lines,
	})
}

// collectWarnings fetches, parses, filters, and dedupes the region's feed.
// Any fetch failure degrades to zero warnings for this cycle.
func (c *Checker) collectWarnings(ctx context.Context, region domain.Region, locationName string, clog *cycleLog) []domain.Warning {
	fetchStart := time.Now()
	feedText, err := c.fetcher.FetchWarningFeed(ctx, region)
	c.metrics.FeedFetchDuration.Observe(time.Since(fetchStart).Seconds())
	if err != nil {
		c.metrics.FeedFetchErrors.Inc()
		clog.warnf("feed fetch failed: %v", err)
		return []domain.Warning{}
	}

	items := domain.ParseFeed(feedText)
	c.metrics.WarningsParsed.Observe(float64(len(items)))
	clog.logf("parsed %d feed items", len(items))

	pageURL := c.fetcher.WarningsPage(region)
	warnings := make([]domain.Warning, 0, len(items))
	for _, item := range items {
		if !domain.IsRelevant(item, region, locationName) {
			clog.logf("skipping non-%s item: %s", region, item.Title)
			continue
		}
		warnings = append(warnings, domain.BuildWarning(item, region, pageURL))
	}

	return domain.Dedupe(warnings)
}

// finishCycle persists the summary, updates the gauges, and marks the
// checker ready. Persistence failures are logged, not propagated: the cycle
// still completes with its in-memory result.
func (c *Checker) finishCycle(ctx context.Context, result domain.CheckResult) domain.CheckResult {
	if err := c.store.SaveResult(ctx, result); err != nil {
		c.logger.Error("persist check result failed", "error", err)
	}
	c.metrics.WarningsActive.Set(float64(result.AlertCount))
	c.metrics.LastCheckTime.Set(float64(result.CheckedAt.Unix()))
	c.ready.Store(true)
	return result
}

func (c *Checker) snapshotNotified() map[string]struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot := make(map[string]struct{}, len(c.notified))
	for id := range c.notified {
		snapshot[id] = struct{}{}
	}
	return snapshot
}

// replaceNotified swaps in the new ID set atomically. Last writer wins; the
// set is never merged.
func (c *Checker) replaceNotified(ids map[string]struct{}) {
	c.mu.Lock()
	c.notified = ids
	c.mu.Unlock()
}

func orUnknown(name string) string {
	if name == "" {
		return "Unknown"
	}
	return name
}

// cycleLog accumulates the human-readable trace persisted as debugLog while
// also emitting it through the structured logger.
type cycleLog struct {
	logger *slog.Logger
	lines  []string
}

func newCycleLog(logger *slog.Logger) *cycleLog {
	return &cycleLog{logger: logger}
}

func (l *cycleLog) logf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	l.lines = append(l.lines, line)
	l.logger.Debug(line)
}

func (l *cycleLog) warnf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	l.lines = append(l.lines, line)
	l.logger.Warn(line)
}
