package app

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/scaledesk/scaledesk/internal/billing"
	"github.com/scaledesk/scaledesk/internal/export"
	"github.com/scaledesk/scaledesk/internal/product"
	"github.com/scaledesk/scaledesk/internal/reports"
	"github.com/scaledesk/scaledesk/internal/serial"
	"github.com/scaledesk/scaledesk/internal/warranty/tracker"
	"github.com/scaledesk/scaledesk/jobs"
	"github.com/scaledesk/scaledesk/report"
)

// Services are the domain services shared by the API server and the worker.
type Services struct {
	Serials  *serial.Service
	Products *product.Service
	Warranty *tracker.Service
	Reports  *reports.Service
	Stats    *reports.StatsCache
}

// ServiceParams groups the collaborators needed by NewServices. Redis may be
// nil, which disables the stats cache.
type ServiceParams struct {
	Logger *slog.Logger
	Stores *Stores
	Redis  *redis.Client
	TTL    time.Duration
	Clock  func() time.Time
}

// NewServices wires the domain services together.
func NewServices(p ServiceParams) *Services {
	var stats *reports.StatsCache
	if p.Redis != nil {
		stats = reports.NewStatsCache(p.Redis, p.TTL)
	}
	products := product.NewService(p.Stores.Products, nil, p.Logger)
	opts := []serial.ServiceOption{serial.WithCatalogue(products)}
	if stats != nil {
		opts = append(opts, serial.WithNotifier(stats))
	}
	if p.Clock != nil {
		opts = append(opts, serial.WithClock(p.Clock))
	}
	serials := serial.NewService(p.Stores.Serials, p.Logger, opts...)
	products.SetSerials(serials)

	return &Services{
		Serials:  serials,
		Products: products,
		Warranty: tracker.NewService(serials),
		Reports:  reports.NewService(serials, products, stats, p.Logger),
		Stats:    stats,
	}
}

// Handlers builds every HTTP handler over svc. jobHandler may be nil.
func Handlers(logger *slog.Logger, svc *Services, gotenberg *report.Client, jobHandler *jobs.Handler) (RouterParams, error) {
	pdf, err := billing.NewPDFExporter(gotenberg)
	if err != nil {
		return RouterParams{}, err
	}
	return RouterParams{
		Logger:          logger,
		SerialHandler:   serial.NewHandler(logger, svc.Serials),
		ExportHandler:   export.NewHandler(logger, svc.Serials),
		ProductHandler:  product.NewHandler(logger, svc.Products),
		WarrantyHandler: tracker.NewHandler(logger, svc.Warranty),
		BillingHandler:  billing.NewHandler(logger, svc.Serials, pdf),
		ReportsHandler:  reports.NewHandler(logger, svc.Reports),
		ReportHandler:   report.NewHandler(gotenberg, logger),
		JobHandler:      jobHandler,
	}, nil
}
