// Package billing computes invoice totals for a sold unit and renders them as
// a PDF document and as a shareable chat message.
package billing

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/scaledesk/scaledesk/internal/serial"
	"github.com/scaledesk/scaledesk/internal/warranty"
)

// Company is the letterhead printed on invoices.
type Company struct {
	Name    string
	Tagline string
	GSTIN   string
	Address string
	Mobile  string
	City    string
	Bank    string
	IFSC    string
	Branch  string
	Terms   []string
}

// DefaultCompany is the dealership letterhead.
var DefaultCompany = Company{
	Name:    "JAIN SCALES",
	Tagline: "Dealer of Weighing Instruments",
	GSTIN:   "23XXXXX1234X1ZX",
	Address: "Khandwa, Madhya Pradesh",
	Mobile:  "+91-XXXXXXXXXX",
	City:    "Khandwa",
	Bank:    "Canara Bank",
	IFSC:    "CNRB0002546",
	Branch:  "Khandwa",
	Terms: []string{
		"18% interest will be charged after 15 days.",
		"Goods once sold will not be taken back.",
	},
}

// Totals is the computed money side of an invoice. Quantity is always one.
type Totals struct {
	Price        decimal.Decimal `json:"price"`
	OtherCharges decimal.Decimal `json:"other_charges"`
	Advance      decimal.Decimal `json:"advance"`
	LineTotal    decimal.Decimal `json:"line_total"`
	Balance      decimal.Decimal `json:"balance"`
}

// Compute derives line total and balance. The balance may be negative.
func Compute(price, otherCharges, advance decimal.Decimal) Totals {
	return Totals{
		Price:        price,
		OtherCharges: otherCharges,
		Advance:      advance,
		LineTotal:    price,
		Balance:      price.Add(otherCharges).Sub(advance),
	}
}

// ParseAmount reads a user-entered amount. Blank or malformed input is zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Invoice is the single source both renderers read from.
type Invoice struct {
	Company        Company   `json:"-"`
	BillBookNumber string    `json:"bill_book_number"`
	BillNumber     string    `json:"bill_number"`
	CustomerName   string    `json:"customer_name"`
	CustomerMobile string    `json:"customer_mobile"`
	SaleDate       string    `json:"sale_date"`
	Model          string    `json:"model"`
	Capacity       string    `json:"capacity"`
	SerialNumber   string    `json:"serial_number"`
	Totals         Totals    `json:"totals"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// NewInvoice assembles an invoice for rec with the dialog-entered charges.
func NewInvoice(rec serial.Record, otherCharges, advance decimal.Decimal, now time.Time) Invoice {
	price := decimal.Zero
	if rec.SellingPrice != nil {
		price = decimal.NewFromFloat(*rec.SellingPrice)
	}
	return Invoice{
		Company:        DefaultCompany,
		BillBookNumber: dash(rec.BillBookNumber),
		BillNumber:     dash(rec.BillNumber),
		CustomerName:   dash(rec.CustomerName),
		CustomerMobile: dash(rec.CustomerMobile),
		SaleDate:       warranty.FormatDisplay(rec.SaleDate),
		Model:          dash(rec.Model),
		Capacity:       serial.FormatCapacity(rec.Capacity),
		SerialNumber:   dash(rec.SerialNumber),
		Totals:         Compute(price, otherCharges, advance),
		GeneratedAt:    now,
	}
}

// FileName is Bill_<bill number or serial>_<yyyyMMdd>.pdf.
func (inv Invoice) FileName() string {
	ref := inv.BillNumber
	if ref == "-" {
		ref = inv.SerialNumber
	}
	return "Bill_" + ref + "_" + inv.GeneratedAt.Format("20060102") + ".pdf"
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
