package reports

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scaledesk/scaledesk/internal/platform/httpx"
	"github.com/scaledesk/scaledesk/internal/serial"
)

var today = time.Date(2024, time.April, 10, 11, 0, 0, 0, time.UTC)

func price(v float64) *float64 { return &v }

type fakeRecords struct {
	records []serial.Record
	calls   atomic.Int32
	err     error
}

func (f *fakeRecords) List(context.Context) ([]serial.Record, error) {
	f.calls.Add(1)
	return f.records, f.err
}

func (f *fakeRecords) Now() time.Time { return today }

type fixedCount int

func (c fixedCount) Count(context.Context) (int, error) { return int(c), nil }

func snapshot() []serial.Record {
	return []serial.Record{
		{ID: "1", SerialNumber: "A", Status: serial.StatusSold, SellingPrice: price(1500), SaleDate: "2024-03-10", WarrantyEndDate: "2025-03-10"},
		{ID: "2", SerialNumber: "B", Status: serial.StatusSold, SellingPrice: price(2500.5), SaleDate: "2024-04-10", WarrantyEndDate: "2024-04-09"},
		{ID: "3", SerialNumber: "C", Status: serial.Status("Available")},
		{ID: "4", SerialNumber: "D", Status: serial.StatusInStock, SaleDate: "garbage"},
		{ID: "5", SerialNumber: "E", Status: serial.StatusSold, SaleDate: "2024-03-09T10:00:00Z"},
	}
}

func TestSalesInRangeIsInclusive(t *testing.T) {
	sales, err := SalesInRange(snapshot(), Range{Start: "2024-03-10", End: "2024-04-10"})
	require.NoError(t, err)
	ids := []string{}
	for _, s := range sales {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"1", "2"}, ids)

	sum := Summarize(Range{}, sales)
	assert.Equal(t, 2, sum.Count)
	assert.True(t, sum.Revenue.Equal(decimal.RequireFromString("4000.5")))
	assert.Equal(t, "Rs.4,001", sum.RevenueText)
}

func TestSalesInRangeRejectsBadRange(t *testing.T) {
	_, err := SalesInRange(snapshot(), Range{Start: "x", End: "2024-01-01"})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, err = SalesInRange(snapshot(), Range{Start: "2024-05-01", End: "2024-04-01"})
	assert.ErrorIs(t, err, ErrRange)
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(snapshot(), today)
	assert.Equal(t, 5, stats.Serials)
	assert.Equal(t, 2, stats.InStock)
	assert.Equal(t, 3, stats.Sold)
	assert.Equal(t, 1, stats.ActiveWarranty)
	assert.Equal(t, 1, stats.ExpiredWarranty)
	assert.Equal(t, "Rs.4,001", stats.SalesValueText)
	assert.Equal(t, "2024-04-10", stats.Date)
}

func newCachedService(t *testing.T, records *fakeRecords) (*Service, *StatsCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := NewStatsCache(client, time.Minute)
	return NewService(records, fixedCount(4), cache, nil), cache
}

func TestDashboardCachesUntilBump(t *testing.T) {
	ctx := context.Background()
	records := &fakeRecords{records: snapshot()}
	svc, cache := newCachedService(t, records)

	first, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, first.Products)
	assert.Equal(t, 3, first.Sold)

	records.records = snapshot()[:1]
	second, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, second.Sold)
	assert.EqualValues(t, 1, records.calls.Load())

	require.NoError(t, cache.Bump(ctx))
	third, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, third.Sold)
	assert.EqualValues(t, 2, records.calls.Load())
}

func TestDashboardWithoutCache(t *testing.T) {
	records := &fakeRecords{records: snapshot()}
	svc := NewService(records, nil, nil, nil)

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.InStock)
	assert.Zero(t, stats.Products)

	records.err = errors.New("store down")
	_, err = svc.Dashboard(context.Background())
	assert.Error(t, err)
}

func TestStatsCacheVersion(t *testing.T) {
	ctx := context.Background()
	_, cache := newCachedService(t, &fakeRecords{})

	key, err := cache.BuildKey(ctx, "reports", "x")
	require.NoError(t, err)
	assert.Equal(t, "reports:x:v1", key)

	require.NoError(t, cache.Bump(ctx))
	key, err = cache.BuildKey(ctx, "reports", "x")
	require.NoError(t, err)
	assert.Equal(t, "reports:x:v2", key)

	var nilCache *StatsCache
	key, err = nilCache.BuildKey(ctx, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "a:b", key)
	assert.NoError(t, nilCache.Bump(ctx))
}

func newRouter(records *fakeRecords) chi.Router {
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), NewService(records, nil, nil, nil))
	r := chi.NewRouter()
	r.Route("/reports", h.Register)
	r.Get("/dashboard", h.Dashboard)
	return r
}

func TestHandlerSalesDefaultsToLastMonth(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&fakeRecords{records: snapshot()}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/sales", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Range Range `json:"range"`
		Count int   `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, Range{Start: "2024-03-10", End: "2024-04-10"}, body.Range)
	assert.Equal(t, 2, body.Count)
}

func TestHandlerSalesBadRange(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&fakeRecords{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/sales?start=soon", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerExports(t *testing.T) {
	r := newRouter(&fakeRecords{records: snapshot()})

	cases := map[string]string{
		"/reports/sales/export?start=2024-03-01&end=2024-03-31": `attachment; filename="Sales_2024-03-01_to_2024-03-31.xlsx"`,
		"/reports/warranty/export?format=csv":                   `attachment; filename="Warranty_Report_2024-04-10.csv"`,
		"/reports/serials/export":                               `attachment; filename="All_Serials_2024-04-10.xlsx"`,
	}
	for path, disposition := range cases {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, disposition, rec.Header().Get("Content-Disposition"), path)
		assert.NotZero(t, rec.Body.Len(), path)
	}
}

func TestHandlerDashboard(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&fakeRecords{records: snapshot()}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sold":3`)
}
