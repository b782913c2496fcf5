package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/stormpetrel/bomwatch/internal/domain"
	"github.com/stormpetrel/bomwatch/internal/observability"
)

// Scheduler drives the Checker: one cycle immediately on start, then one per
// tick, plus on-demand cycles requested through CheckNow. Cycles never
// overlap because all of them run on the scheduler goroutine.
type Scheduler struct {
	checker  *Checker
	clock    clockwork.Clock
	interval time.Duration
	requests chan checkRequest
	logger   *slog.Logger
	metrics  *observability.Metrics
}

type checkRequest struct {
	reply chan domain.CheckResult
}

// NewScheduler creates a Scheduler. Tests pass a fake clock to step through
// ticks deterministically.
func NewScheduler(checker *Checker, clock clockwork.Clock, interval time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Scheduler {
	return &Scheduler{
		checker:  checker,
		clock:    clock,
		interval: interval,
		requests: make(chan checkRequest),
		logger:   logger,
		metrics:  metrics,
	}
}

// Run executes the check loop until the context is cancelled. A failed
// cycle never stops the loop; the Checker recovers its own errors.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval)
	s.metrics.SchedulerRunning.Set(1)
	defer s.metrics.SchedulerRunning.Set(0)

	// Run-on-start: don't make the user wait a full interval for the
	// first result after the service comes up.
	s.checker.Check(ctx)

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			s.checker.Check(ctx)
		case req := <-s.requests:
			req.reply <- s.checker.Check(ctx)
		}
	}
}

// CheckNow requests an immediate cycle and waits for its result. It is the
// "check now" trigger behind the HTTP surface.
func (s *Scheduler) CheckNow(ctx context.Context) (domain.CheckResult, error) {
	req := checkRequest{reply: make(chan domain.CheckResult, 1)}

	select {
	case s.requests <- req:
	case <-ctx.Done():
		return domain.CheckResult{}, ctx.Err()
	}

	select {
	case result := <-req.reply:
		return result, nil
	case <-ctx.Done():
		return domain.CheckResult{}, ctx.Err()
	}
}

// LogNotifier is the sink used when Kafka publishing is disabled: eligible
// warnings are only logged.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, warning domain.Warning, locationName string) error {
	n.logger.Info("warning notification",
		"id", warning.ID,
		"title", warning.Title,
		"type", warning.Type,
		"severity", warning.Severity,
		"state", warning.Region,
		"location", locationName,
	)
	return nil
}
