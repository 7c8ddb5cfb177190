package reports

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/scaledesk/scaledesk/internal/export"
	"github.com/scaledesk/scaledesk/internal/platform/httpx"
	"github.com/scaledesk/scaledesk/internal/warranty"
)

// Handler serves report and dashboard endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register mounts /reports routes onto r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/sales", h.sales)
	r.Get("/sales/export", h.salesExport)
	r.Get("/warranty/export", h.warrantyExport)
	r.Get("/serials/export", h.serialsExport)
}

// Dashboard serves GET /dashboard.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.fail(w, "dashboard", err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

func (h *Handler) rangeOf(q url.Values) Range {
	rng := DefaultRange(h.service.Now())
	if v := strings.TrimSpace(q.Get("start")); v != "" {
		rng.Start = v
	}
	if v := strings.TrimSpace(q.Get("end")); v != "" {
		rng.End = v
	}
	return rng
}

func (h *Handler) sales(w http.ResponseWriter, r *http.Request) {
	sum, err := h.service.Sales(r.Context(), h.rangeOf(r.URL.Query()))
	if err != nil {
		h.fail(w, "sales report", err)
		return
	}
	httpx.JSON(w, http.StatusOK, sum)
}

func (h *Handler) salesExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	rng := h.rangeOf(r.URL.Query())
	sum, err := h.service.Sales(r.Context(), rng)
	if err != nil {
		h.fail(w, "sales export", err)
		return
	}
	export.Serve(w, h.logger, format, export.ProjectSales(sum.Items),
		export.FileName(format, "Sales", rng.Start, "to", rng.End))
}

func (h *Handler) warrantyExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	records, err := h.service.Snapshot(r.Context())
	if err != nil {
		h.fail(w, "warranty export", err)
		return
	}
	now := h.service.Now()
	export.Serve(w, h.logger, format, export.ProjectWarranty(records, now),
		export.FileName(format, "Warranty", "Report", now.Format(warranty.DateLayout)))
}

func (h *Handler) serialsExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	records, err := h.service.Snapshot(r.Context())
	if err != nil {
		h.fail(w, "serials export", err)
		return
	}
	now := h.service.Now()
	export.Serve(w, h.logger, format, export.ProjectAll(records, now),
		export.FileName(format, "All", "Serials", now.Format(warranty.DateLayout)))
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	h.logger.Error(op, slog.Any("error", err))
	httpx.RespondError(w, err)
}
