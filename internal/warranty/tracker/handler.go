package tracker

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/scaledesk/scaledesk/internal/platform/httpx"
	"github.com/scaledesk/scaledesk/internal/warranty"
)

// Handler serves the warranty tracker.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register mounts tracker routes onto r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.list)
	r.Put("/{id}", h.edit)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	sum, err := h.service.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.logger.Error("list warranties", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, sum)
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	var window warranty.Window
	if err := httpx.DecodeJSON(r, &window); err != nil {
		httpx.RespondError(w, err)
		return
	}
	item, err := h.service.Edit(r.Context(), chi.URLParam(r, "id"), window)
	if err != nil {
		h.logger.Error("edit warranty", slog.String("id", chi.URLParam(r, "id")), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}
