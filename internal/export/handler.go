package export

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/scaledesk/scaledesk/internal/platform/httpx"
	"github.com/scaledesk/scaledesk/internal/serial"
)

// Records supplies the listing snapshot.
type Records interface {
	List(ctx context.Context) ([]serial.Record, error)
	Now() time.Time
}

// Handler serves the export of the current serial list view.
type Handler struct {
	logger  *slog.Logger
	records Records
}

// NewHandler builds Handler.
func NewHandler(logger *slog.Logger, records Records) *Handler {
	return &Handler{logger: logger, records: records}
}

// RegisterSerials mounts GET /export on a serials router.
func (h *Handler) RegisterSerials(r chi.Router) {
	r.Get("/export", h.serials)
}

// serials exports the filtered and sorted view, unpaginated.
func (h *Handler) serials(w http.ResponseWriter, r *http.Request) {
	format, err := ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	records, err := h.records.List(r.Context())
	if err != nil {
		h.logger.Error("export serials", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	now := h.records.Now()
	view := serial.ViewFromQuery(r.URL.Query())
	sheet := ProjectAll(view.Ordered(records), now)

	Serve(w, h.logger, format, sheet, FileName(format, "Serials", now.Format("2006-01-02")))
}

// Serve encodes sheet and writes it as a download.
func Serve(w http.ResponseWriter, logger *slog.Logger, format Format, sheet Sheet, filename string) {
	body, err := Encode(format, sheet)
	if err != nil {
		logger.Error("encode export", slog.String("sheet", sheet.Name), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Attachment(w, format.ContentType(), filename, body)
}
