package serial

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/scaledesk/scaledesk/internal/platform/httpx"
	"github.com/scaledesk/scaledesk/internal/warranty"
)

// Handler serves the serial record API.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register mounts the serial routes onto r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/sort-options", h.sortOptions)
	r.Get("/duplicates", h.duplicates)
	r.Get("/warranty-preview", h.warrantyPreview)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// ViewFromQuery builds list state from query parameters. A column parameter
// selects an explicit column sort; otherwise sort names a preset.
func ViewFromQuery(q url.Values) View {
	view := NewView().WithCriteria(Criteria{
		Search:   strings.TrimSpace(q.Get("search")),
		Brand:    selector(q.Get("brand")),
		Capacity: selector(q.Get("capacity")),
		Status:   NormalizeSelector(selector(q.Get("status"))),
	})
	if column := q.Get("column"); column != "" {
		view = view.ToggleColumn(column)
		if Direction(q.Get("dir")) == Desc {
			view = view.ToggleColumn(column)
		}
	} else if preset := q.Get("sort"); preset != "" {
		view = view.WithPreset(preset)
	}
	if size := q.Get("page_size"); size != "" {
		view = view.WithPageSize(atoi(size))
	}
	return view.WithPage(atoi(q.Get("page")))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Query(r.Context(), ViewFromQuery(r.URL.Query()))
	if err != nil {
		h.fail(w, "list serials", err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, "get serial", err)
		return
	}
	httpx.JSON(w, http.StatusOK, rec)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var rec Record
	if err := httpx.DecodeJSON(r, &rec); err != nil {
		httpx.RespondError(w, err)
		return
	}
	created, err := h.service.Create(r.Context(), rec)
	if err != nil {
		h.fail(w, "create serial", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var rec Record
	if err := httpx.DecodeJSON(r, &rec); err != nil {
		httpx.RespondError(w, err)
		return
	}
	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), rec)
	if err != nil {
		h.fail(w, "update serial", err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, "delete serial", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) duplicates(w http.ResponseWriter, r *http.Request) {
	dups, err := h.service.Duplicates(r.Context())
	if err != nil {
		h.fail(w, "duplicate serials", err)
		return
	}
	httpx.JSON(w, http.StatusOK, dups)
}

func (h *Handler) sortOptions(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, SortOptions)
}

type warrantyPreview struct {
	warranty.Window
	Status warranty.Status `json:"warranty_status"`
}

func (h *Handler) warrantyPreview(w http.ResponseWriter, r *http.Request) {
	window, ok := warranty.Derive(r.URL.Query().Get("sale_date"))
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "sale_date must be an ISO date")
		return
	}
	httpx.JSON(w, http.StatusOK, warrantyPreview{
		Window: window,
		Status: warranty.StatusAt(window.End, h.service.Now()),
	})
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	h.logger.Error(op, slog.Any("error", err))
	httpx.RespondError(w, err)
}

func selector(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return All
	}
	return v
}

// NormalizeSelector folds the legacy "Available" status selector into its
// canonical value; other selectors pass through.
func NormalizeSelector(v string) string {
	if v == statusAvailable {
		return string(StatusInStock)
	}
	return v
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
