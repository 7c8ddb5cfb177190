package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/scaledesk/scaledesk/internal/billing"
	"github.com/scaledesk/scaledesk/internal/export"
	"github.com/scaledesk/scaledesk/internal/observability"
	"github.com/scaledesk/scaledesk/internal/platform/httpx"
	"github.com/scaledesk/scaledesk/internal/product"
	"github.com/scaledesk/scaledesk/internal/reports"
	"github.com/scaledesk/scaledesk/internal/serial"
	"github.com/scaledesk/scaledesk/internal/warranty/tracker"
	"github.com/scaledesk/scaledesk/jobs"
	"github.com/scaledesk/scaledesk/report"
)

// RouterParams groups dependencies for building the HTTP router. Optional
// handlers are skipped when nil.
type RouterParams struct {
	Logger  *slog.Logger
	Config  *Config
	Metrics *observability.Metrics

	SerialHandler   *serial.Handler
	ExportHandler   *export.Handler
	ProductHandler  *product.Handler
	WarrantyHandler *tracker.Handler
	BillingHandler  *billing.Handler
	ReportsHandler  *reports.Handler
	ReportHandler   *report.Handler
	JobHandler      *jobs.Handler
}

// NewRouter constructs the chi.Router with the API defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "no route for "+r.URL.Path)
	})

	r.Route("/serials", func(r chi.Router) {
		if params.ExportHandler != nil {
			params.ExportHandler.RegisterSerials(r)
		}
		params.SerialHandler.Register(r)
	})
	r.Route("/products", params.ProductHandler.Register)
	r.Route("/warranty", params.WarrantyHandler.Register)
	r.Route("/billing", params.BillingHandler.Register)
	r.Route("/reports", params.ReportsHandler.Register)
	r.Get("/dashboard", params.ReportsHandler.Dashboard)
	if params.ReportHandler != nil {
		r.Route("/report", params.ReportHandler.MountRoutes)
	}
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}
	return r
}
