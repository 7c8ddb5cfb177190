package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/scaledesk/scaledesk/internal/platform/httpx"
	"github.com/scaledesk/scaledesk/internal/serial"
	"github.com/scaledesk/scaledesk/report"
)

// Records loads the unit being billed.
type Records interface {
	Get(ctx context.Context, id string) (serial.Record, error)
	Now() time.Time
}

// Summary is the invoice dialog payload, amounts pre-formatted.
type Summary struct {
	Invoice
	Amount       string `json:"amount"`
	OtherCharges string `json:"other_charges"`
	Advance      string `json:"advance"`
	Balance      string `json:"balance"`
	FileName     string `json:"file_name"`
}

// Handler serves invoice endpoints.
type Handler struct {
	logger  *slog.Logger
	records Records
	pdf     *PDFExporter
}

// NewHandler builds Handler.
func NewHandler(logger *slog.Logger, records Records, pdf *PDFExporter) *Handler {
	return &Handler{logger: logger, records: records, pdf: pdf}
}

// Register mounts billing routes onto r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/{id}", h.summary)
	r.Get("/{id}/pdf", h.document)
	r.Get("/{id}/share", h.share)
}

func (h *Handler) invoice(r *http.Request) (Invoice, error) {
	rec, err := h.records.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return Invoice{}, err
	}
	q := r.URL.Query()
	return NewInvoice(rec, ParseAmount(q.Get("other_charges")), ParseAmount(q.Get("advance")), h.records.Now()), nil
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	inv, err := h.invoice(r)
	if err != nil {
		h.fail(w, "invoice summary", err)
		return
	}
	httpx.JSON(w, http.StatusOK, Summary{
		Invoice:      inv,
		Amount:       FormatCurrency(inv.Totals.LineTotal),
		OtherCharges: FormatCurrency(inv.Totals.OtherCharges),
		Advance:      FormatCurrency(inv.Totals.Advance),
		Balance:      FormatCurrency(inv.Totals.Balance),
		FileName:     inv.FileName(),
	})
}

func (h *Handler) document(w http.ResponseWriter, r *http.Request) {
	inv, err := h.invoice(r)
	if err != nil {
		h.fail(w, "invoice pdf", err)
		return
	}
	pdf, err := h.pdf.PDF(r.Context(), inv)
	if err != nil {
		if errors.Is(err, report.ErrRender) {
			err = fmt.Errorf("%w: %v", httpx.ErrUnavailable, err)
		}
		h.fail(w, "invoice pdf", err)
		return
	}
	httpx.Attachment(w, "application/pdf", inv.FileName(), pdf)
}

func (h *Handler) share(w http.ResponseWriter, r *http.Request) {
	inv, err := h.invoice(r)
	if err != nil {
		h.fail(w, "invoice share", err)
		return
	}
	httpx.JSON(w, http.StatusOK, ShareLink(inv))
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	h.logger.Error(op, slog.Any("error", err))
	httpx.RespondError(w, err)
}
