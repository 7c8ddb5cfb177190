package reports

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/scaledesk/scaledesk/internal/serial"
	"github.com/scaledesk/scaledesk/internal/warranty"
)

// Records supplies serial snapshots and the reporting clock.
type Records interface {
	List(ctx context.Context) ([]serial.Record, error)
	Now() time.Time
}

// ProductCounter reports catalogue size.
type ProductCounter interface {
	Count(ctx context.Context) (int, error)
}

// Service builds reports over serial records.
type Service struct {
	records  Records
	products ProductCounter
	cache    *StatsCache
	logger   *slog.Logger
}

// NewService builds Service. products and cache may be nil.
func NewService(records Records, products ProductCounter, cache *StatsCache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{records: records, products: products, cache: cache, logger: logger}
}

// Now exposes the reporting clock.
func (s *Service) Now() time.Time {
	return s.records.Now()
}

// Dashboard returns totals for today, served from cache while the record set
// is unchanged.
func (s *Service) Dashboard(ctx context.Context) (Stats, error) {
	now := s.records.Now()
	key, err := s.cache.BuildKey(ctx, "reports", "dashboard", now.Format(warranty.DateLayout))
	if err != nil {
		s.logger.Warn("dashboard cache key", slog.Any("error", err))
		return s.loadStats(ctx, now)
	}
	var stats Stats
	err = s.cache.FetchJSON(ctx, key, &stats, func(ctx context.Context) (any, error) {
		return s.loadStats(ctx, now)
	})
	return stats, err
}

func (s *Service) loadStats(ctx context.Context, now time.Time) (Stats, error) {
	var (
		records  []serial.Record
		products int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.records.List(gctx)
		return err
	})
	if s.products != nil {
		g.Go(func() error {
			var err error
			products, err = s.products.Count(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	stats := ComputeStats(records, now)
	stats.Products = products
	return stats, nil
}

// Sales summarises sales within r.
func (s *Service) Sales(ctx context.Context, r Range) (SalesSummary, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return SalesSummary{}, err
	}
	sales, err := SalesInRange(records, r)
	if err != nil {
		return SalesSummary{}, err
	}
	return Summarize(r, sales), nil
}

// Snapshot lists every record.
func (s *Service) Snapshot(ctx context.Context) ([]serial.Record, error) {
	return s.records.List(ctx)
}
