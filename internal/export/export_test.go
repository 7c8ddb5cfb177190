package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"

	"github.com/scaledesk/scaledesk/internal/serial"
)

var now = time.Date(2025, time.March, 16, 8, 0, 0, 0, time.UTC)

func f(v float64) *float64 { return &v }

func fixtures() []serial.Record {
	return []serial.Record{
		{
			ID: "1", Brand: "Essae", Model: "DS-852", Capacity: f(30), SerialNumber: "WS-2",
			SellingPrice: f(1500), Status: serial.StatusSold, CustomerName: "Anil", CustomerMobile: "9876543210",
			SaleDate: "2024-03-15", WarrantyStartDate: "2024-03-15", WarrantyEndDate: "2025-03-15",
			BillBookNumber: "7", BillNumber: "112",
		},
		{ID: "2", Brand: "Atom", SerialNumber: "WS-10", Status: serial.Status("Available")},
	}
}

func TestProjectAllKeepsNumbersNumeric(t *testing.T) {
	sheet := ProjectAll(fixtures(), now)
	if sheet.Name != SheetAll || len(sheet.Rows) != 2 {
		t.Fatalf("unexpected sheet %q with %d rows", sheet.Name, len(sheet.Rows))
	}
	if len(sheet.Header) != len(sheet.Rows[0]) {
		t.Fatalf("header has %d columns, row has %d", len(sheet.Header), len(sheet.Rows[0]))
	}
	if v, ok := sheet.Rows[0][2].(float64); !ok || v != 30 {
		t.Fatalf("capacity cell = %#v, want float64 30", sheet.Rows[0][2])
	}
	if v, ok := sheet.Rows[0][4].(float64); !ok || v != 1500 {
		t.Fatalf("price cell = %#v, want float64 1500", sheet.Rows[0][4])
	}
	if sheet.Rows[1][2] != "" || sheet.Rows[1][4] != "" {
		t.Fatalf("absent numbers should be empty strings, got %#v", sheet.Rows[1])
	}
	if sheet.Rows[1][5] != "In Stock" {
		t.Fatalf("status = %v, want In Stock", sheet.Rows[1][5])
	}
	if sheet.Rows[0][12] != "Expired" || sheet.Rows[1][12] != "N/A" {
		t.Fatalf("warranty status cells = %v, %v", sheet.Rows[0][12], sheet.Rows[1][12])
	}
}

func TestProjectSalesColumns(t *testing.T) {
	sheet := ProjectSales(fixtures()[:1])
	want := []string{"Essae", "DS-852", "30", "WS-2", "1500", "Anil", "9876543210", "2024-03-15", "2025-03-15", "7", "112"}
	if got := sheet.Strings()[0]; !reflect.DeepEqual(got, want) {
		t.Fatalf("row = %v, want %v", got, want)
	}
}

func TestProjectWarrantySkipsRecordsWithoutEndDate(t *testing.T) {
	sheet := ProjectWarranty(fixtures(), now)
	if len(sheet.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(sheet.Rows))
	}
	if sheet.Rows[0][7] != "Expired" {
		t.Fatalf("status = %v", sheet.Rows[0][7])
	}
	active := ProjectWarranty(fixtures(), time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC))
	if active.Rows[0][7] != "Active" {
		t.Fatalf("end date should be inclusive, got %v", active.Rows[0][7])
	}
}

func TestWriteCSV(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := WriteCSV(buf, ProjectSales(fixtures())); err != nil {
		t.Fatalf("csv error: %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	if err != nil {
		t.Fatalf("csv read error: %v", err)
	}
	if len(records) != 3 || records[0][0] != "Brand" || records[2][3] != "WS-10" {
		t.Fatalf("unexpected csv %v", records)
	}
}

func TestWriteXLSX(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := WriteXLSX(buf, ProjectAll(fixtures(), now)); err != nil {
		t.Fatalf("xlsx error: %v", err)
	}
	book, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer book.Close()

	if name := book.GetSheetName(0); name != SheetAll {
		t.Fatalf("sheet name = %q", name)
	}
	header, err := book.GetCellValue(SheetAll, "D1")
	if err != nil || header != "Serial Number" {
		t.Fatalf("D1 = %q, %v", header, err)
	}
	price, err := book.GetCellValue(SheetAll, "E2")
	if err != nil || price != "1500" {
		t.Fatalf("E2 = %q, %v", price, err)
	}
	typ, err := book.GetCellType(SheetAll, "E2")
	if err != nil {
		t.Fatalf("cell type: %v", err)
	}
	if typ == excelize.CellTypeSharedString || typ == excelize.CellTypeInlineString {
		t.Fatalf("price should be numeric, got type %v", typ)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatXLSX, "XLSX": FormatXLSX, "csv": FormatCSV} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Fatal("expected error for pdf")
	}
}

type stubRecords []serial.Record

func (s stubRecords) List(_ context.Context) ([]serial.Record, error) { return s, nil }
func (s stubRecords) Now() time.Time { return now }

func TestSerialsExportFollowsView(t *testing.T) {
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), stubRecords(fixtures()))
	r := chi.NewRouter()
	r.Route("/serials", h.RegisterSerials)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/serials/export?format=csv&sort=serial_desc&page_size=10&page=2", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="Serials_2025-03-16.csv"` {
		t.Fatalf("content disposition = %q", cd)
	}
	rows, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("csv read: %v", err)
	}
	if len(rows) != 3 || rows[1][3] != "WS-10" || rows[2][3] != "WS-2" {
		t.Fatalf("unexpected export rows %v", rows)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/serials/export?format=pdf", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
