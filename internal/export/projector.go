// Package export projects serial records into flat sheets and writes them as
// CSV or XLSX.
package export

import (
	"strconv"
	"time"

	"github.com/scaledesk/scaledesk/internal/serial"
	"github.com/scaledesk/scaledesk/internal/warranty"
)

// Sheet names.
const (
	SheetSales      = "Sales"
	SheetWarranties = "Warranties"
	SheetAll        = "All Serials"
)

// Sheet is a named header plus rows. Cells are string or float64; absent
// numbers are empty strings.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

var (
	salesHeader = []string{
		"Brand", "Model", "Capacity (kg)", "Serial Number", "Selling Price", "Customer Name",
		"Customer Mobile", "Sale Date", "Warranty End", "Bill Book No", "Bill No",
	}
	warrantyHeader = []string{
		"Serial Number", "Brand", "Model", "Customer Name", "Customer Mobile",
		"Warranty Start", "Warranty End", "Status",
	}
	allHeader = []string{
		"Brand", "Model", "Capacity (kg)", "Serial Number", "Selling Price", "Status", "Customer Name",
		"Customer Mobile", "Sale Date", "Warranty End", "Bill Book No", "Bill No", "Warranty Status",
	}
)

// ProjectSales lays out sold units for the sales sheet. Callers pass records
// already narrowed to the reporting range.
func ProjectSales(records []serial.Record) Sheet {
	sheet := Sheet{Name: SheetSales, Header: salesHeader, Rows: make([][]any, 0, len(records))}
	for _, r := range records {
		sheet.Rows = append(sheet.Rows, []any{
			r.Brand, r.Model, number(r.Capacity), r.SerialNumber, number(r.SellingPrice), r.CustomerName,
			r.CustomerMobile, r.SaleDate, r.WarrantyEndDate, r.BillBookNumber, r.BillNumber,
		})
	}
	return sheet
}

// ProjectWarranty lays out every record carrying a warranty end date, with
// its status evaluated at now.
func ProjectWarranty(records []serial.Record, now time.Time) Sheet {
	sheet := Sheet{Name: SheetWarranties, Header: warrantyHeader, Rows: [][]any{}}
	for _, r := range records {
		if r.WarrantyEndDate == "" {
			continue
		}
		sheet.Rows = append(sheet.Rows, []any{
			r.SerialNumber, r.Brand, r.Model, r.CustomerName, r.CustomerMobile,
			r.WarrantyStartDate, r.WarrantyEndDate, string(warranty.StatusAt(r.WarrantyEndDate, now)),
		})
	}
	return sheet
}

// ProjectAll dumps every record.
func ProjectAll(records []serial.Record, now time.Time) Sheet {
	sheet := Sheet{Name: SheetAll, Header: allHeader, Rows: make([][]any, 0, len(records))}
	for _, r := range records {
		sheet.Rows = append(sheet.Rows, []any{
			r.Brand, r.Model, number(r.Capacity), r.SerialNumber, number(r.SellingPrice),
			string(serial.NormalizeStatus(string(r.Status))), r.CustomerName, r.CustomerMobile,
			r.SaleDate, r.WarrantyEndDate, r.BillBookNumber, r.BillNumber,
			string(warranty.StatusAt(r.WarrantyEndDate, now)),
		})
	}
	return sheet
}

// Strings renders every cell as text for document and CSV output.
func (s Sheet) Strings() [][]string {
	out := make([][]string, 0, len(s.Rows))
	for _, row := range s.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = cellText(c)
		}
		out = append(out, cells)
	}
	return out
}

func number(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func cellText(c any) string {
	switch v := c.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
