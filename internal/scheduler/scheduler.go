package scheduler

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/harshajxn/PricePulse/internal/pricing"
	"github.com/harshajxn/PricePulse/internal/store"
	"github.com/harshajxn/PricePulse/internal/tracker"
)

const (
	defaultInterval    = time.Hour
	defaultConcurrency = 1
)

// Scheduler periodically re-scrapes every tracked URL. It owns no global
// state: stores, tracker and interval are injected, and a single tick can be
// driven synchronously in tests.
type Scheduler struct {
	store       store.ProductStore
	tracker     *tracker.Tracker
	logger      *zap.Logger
	interval    time.Duration
	concurrency int

	scrapes  metric.Int64Counter
	failures metric.Int64Counter
	points   metric.Int64Counter
	price    metric.Float64Gauge
}

func New(st store.ProductStore, tr *tracker.Tracker, logger *zap.Logger, meter metric.Meter, interval time.Duration, concurrency int) *Scheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	s := &Scheduler{
		store:       st,
		tracker:     tr,
		logger:      logger.Named("scheduler"),
		interval:    interval,
		concurrency: concurrency,
	}
	if meter != nil {
		s.scrapes, _ = meter.Int64Counter("scheduler_scrapes_total",
			metric.WithDescription("Number of scheduled scrape attempts"))
		s.failures, _ = meter.Int64Counter("scheduler_scrape_failures_total",
			metric.WithDescription("Number of scheduled scrapes that failed or missed the price"))
		s.points, _ = meter.Int64Counter("scheduler_price_points_total",
			metric.WithDescription("Number of price points recorded by the scheduler"))
		s.price, _ = meter.Float64Gauge("product_price",
			metric.WithDescription("Last scraped price per tracked URL"))
	}
	return s
}

// Run blocks until ctx is cancelled, ticking once immediately and then on
// every interval.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("scheduler started", zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Tick(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopping")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick scrapes all tracked URLs once. Failures on individual URLs are logged
// and skipped; one bad URL never aborts the batch.
func (s *Scheduler) Tick(ctx context.Context) {
	urls, err := s.store.ListTrackedURLs(ctx)
	if err != nil {
		s.logger.Error("failed to list tracked urls", zap.Error(err))
		return
	}
	if len(urls) == 0 {
		return
	}

	s.logger.Info("tick started", zap.Int("urls", len(urls)))

	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup
	for _, url := range urls {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		default:
		}

		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			s.scrapeOne(ctx, url)
		}(url)
	}
	wg.Wait()

	s.logger.Info("tick finished", zap.Int("urls", len(urls)))
}

func (s *Scheduler) scrapeOne(ctx context.Context, url string) {
	s.count(ctx, s.scrapes)

	res, err := s.tracker.RegisterOrRefresh(ctx, url)
	if err != nil {
		s.count(ctx, s.failures)
		s.logger.Error("scrape failed", zap.String("url", url), zap.Error(err))
		return
	}
	if res.Status == tracker.StatusFetchFailed {
		s.count(ctx, s.failures)
		s.logger.Warn("fetch failed, will retry next tick", zap.String("url", url))
		return
	}

	snap := res.Snapshot
	if !snap.HasPrice() {
		s.count(ctx, s.failures)
		return
	}

	s.count(ctx, s.points)
	if v, ok := pricing.Parse(snap.Price); ok && s.price != nil {
		s.price.Record(ctx, v, metric.WithAttributes(attribute.String("url", url)))
	}
}

func (s *Scheduler) count(ctx context.Context, c metric.Int64Counter) {
	if c != nil {
		c.Add(ctx, 1)
	}
}
