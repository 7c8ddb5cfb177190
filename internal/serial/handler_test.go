package serial

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, records ...Record) (*httptest.Server, *MemoryRepository) {
	t.Helper()
	repo := NewMemoryRepository(records...)
	svc := NewService(repo, nil, WithClock(fixedClock("2025-03-14")))
	handler := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), svc)

	r := chi.NewRouter()
	r.Route("/serials", handler.Register)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, repo
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHandlerListAppliesQuery(t *testing.T) {
	srv, _ := newTestServer(t,
		Record{ID: "1", SerialNumber: "B2", Brand: "Essae", Capacity: ptr(50), Status: StatusSold},
		Record{ID: "2", SerialNumber: "A1", Brand: "Atom", Capacity: ptr(30), Status: StatusInStock},
		Record{ID: "3", SerialNumber: "A10", Brand: "Essae", Capacity: ptr(30), Status: StatusInStock},
	)

	resp := do(t, http.MethodGet, srv.URL+"/serials?brand=Essae&sort=serial_asc", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, []string{"A10", "B2"}, serials(result.Items))
	assert.Equal(t, 2, result.Pagination.Total)
	assert.Equal(t, []string{"Essae", "Atom"}, result.Brands)
}

func TestHandlerCreateAndGet(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/serials", `{
		"serial_number": "SN-1", "capacity": "50kg", "status": "Sold",
		"customer_name": "Anil", "customer_phone": "9876543210", "date_sold": "2024-03-15",
		"bill_book_number": "3", "bill_number": "44"
	}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created Record
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "2025-03-15", created.WarrantyEndDate)
	assert.Equal(t, "9876543210", created.CustomerMobile)

	resp = do(t, http.MethodGet, srv.URL+"/serials/"+created.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandlerValidationProblem(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/serials", `{"serial_number": "SN-1", "status": "Sold"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))

	resp = do(t, http.MethodPost, srv.URL+"/serials", `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandlerMissingRecord(t *testing.T) {
	srv, _ := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, do(t, http.MethodGet, srv.URL+"/serials/none", "").StatusCode)
	assert.Equal(t, http.StatusNotFound, do(t, http.MethodDelete, srv.URL+"/serials/none", "").StatusCode)
	assert.Equal(t, http.StatusNotFound, do(t, http.MethodPut, srv.URL+"/serials/none", `{"serial_number":"x"}`).StatusCode)
}

func TestHandlerDelete(t *testing.T) {
	srv, repo := newTestServer(t, Record{ID: "1", SerialNumber: "A"})

	resp := do(t, http.MethodDelete, srv.URL+"/serials/1", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, err := repo.Get(context.Background(), "1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHandlerWarrantyPreview(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/serials/warranty-preview?sale_date=2024-03-15", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "2024-03-15", body["warranty_start_date"])
	assert.Equal(t, "2025-03-15", body["warranty_end_date"])
	assert.Equal(t, "Active", body["warranty_status"])

	resp = do(t, http.MethodGet, srv.URL+"/serials/warranty-preview?sale_date=someday", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandlerDerivesWarrantyStatusOnRead(t *testing.T) {
	srv, _ := newTestServer(t, Record{ID: "1", SerialNumber: "A1", Status: StatusSold,
		WarrantyEndDate: "2025-03-13", WarrantyStatus: "Active"})

	resp := do(t, http.MethodGet, srv.URL+"/serials/1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rec Record
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	assert.Equal(t, "Expired", rec.WarrantyStatus)

	resp = do(t, http.MethodGet, srv.URL+"/serials", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Expired", result.Items[0].WarrantyStatus)
}

func TestHandlerDuplicates(t *testing.T) {
	srv, _ := newTestServer(t,
		Record{ID: "1", SerialNumber: "X"},
		Record{ID: "2", SerialNumber: "X"},
	)

	resp := do(t, http.MethodGet, srv.URL+"/serials/duplicates", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var dups []Duplicate
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&dups))
	require.Len(t, dups, 1)
	assert.Equal(t, []string{"1", "2"}, dups[0].IDs)
}
