package serial

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/scaledesk/scaledesk/internal/platform/httpx"
)

// Status is the canonical stock status of a serialized unit.
type Status string

const (
	// StatusInStock marks a unit still held by the dealership.
	StatusInStock Status = "In Stock"
	// StatusSold marks a unit handed over to a customer.
	StatusSold Status = "Sold"

	statusAvailable = "Available"
)

// Record is one serialized unit of inventory after legacy field aliases have
// been folded into canonical fields.
type Record struct {
	ID                string    `json:"id"`
	ProductID         string    `json:"product_id,omitempty"`
	SerialNumber      string    `json:"serial_number" validate:"required"`
	Brand             string    `json:"brand"`
	Model             string    `json:"model"`
	Capacity          *float64  `json:"capacity"`
	PurchaseDate      string    `json:"purchase_date"`
	SellingPrice      *float64  `json:"selling_price"`
	Status            Status    `json:"status"`
	CustomerName      string    `json:"customer_name" validate:"required_if=Status Sold"`
	CustomerMobile    string    `json:"customer_mobile" validate:"required_if=Status Sold"`
	SaleDate          string    `json:"sale_date" validate:"required_if=Status Sold"`
	BillBookNumber    string    `json:"bill_book_number" validate:"required_if=Status Sold"`
	BillNumber        string    `json:"bill_number" validate:"required_if=Status Sold"`
	WarrantyStartDate string    `json:"warranty_start_date"`
	WarrantyEndDate   string    `json:"warranty_end_date"`
	WarrantyStatus    string    `json:"warranty_status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// IsSold reports whether the unit has been sold.
func (r Record) IsSold() bool {
	return r.Status == StatusSold
}

// CapacityValue returns the numeric capacity, 0 when absent.
func (r Record) CapacityValue() float64 {
	if r.Capacity == nil {
		return 0
	}
	return *r.Capacity
}

// PriceValue returns the selling price, 0 when absent.
func (r Record) PriceValue() float64 {
	if r.SellingPrice == nil {
		return 0
	}
	return *r.SellingPrice
}

// RawRecord is the wire/storage shape of a serial record. It accepts the
// legacy aliases (customer_phone, date_sold, "Available") and loosely typed
// capacity and price values. Normalize is the only place aliases are read.
type RawRecord struct {
	ID                string    `json:"id"`
	ProductID         string    `json:"product_id"`
	SerialNumber      string    `json:"serial_number"`
	Brand             string    `json:"brand"`
	Model             string    `json:"model"`
	Capacity          any       `json:"capacity"`
	PurchaseDate      string    `json:"purchase_date"`
	SellingPrice      any       `json:"selling_price"`
	Status            string    `json:"status"`
	CustomerName      string    `json:"customer_name"`
	CustomerMobile    string    `json:"customer_mobile"`
	CustomerPhone     string    `json:"customer_phone"`
	SaleDate          string    `json:"sale_date"`
	DateSold          string    `json:"date_sold"`
	BillBookNumber    string    `json:"bill_book_number"`
	BillNumber        string    `json:"bill_number"`
	WarrantyStartDate string    `json:"warranty_start_date"`
	WarrantyEndDate   string    `json:"warranty_end_date"`
	WarrantyStatus    string    `json:"warranty_status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Normalize builds the canonical Record.
func (raw RawRecord) Normalize() Record {
	rec := Record{
		ID:                raw.ID,
		ProductID:         raw.ProductID,
		SerialNumber:      raw.SerialNumber,
		Brand:             raw.Brand,
		Model:             raw.Model,
		PurchaseDate:      raw.PurchaseDate,
		Status:            NormalizeStatus(raw.Status),
		CustomerName:      raw.CustomerName,
		CustomerMobile:    firstNonEmpty(raw.CustomerMobile, raw.CustomerPhone),
		SaleDate:          firstNonEmpty(raw.SaleDate, raw.DateSold),
		BillBookNumber:    raw.BillBookNumber,
		BillNumber:        raw.BillNumber,
		WarrantyStartDate: raw.WarrantyStartDate,
		WarrantyEndDate:   raw.WarrantyEndDate,
		WarrantyStatus:    raw.WarrantyStatus,
		CreatedAt:         raw.CreatedAt,
		UpdatedAt:         raw.UpdatedAt,
	}
	if v, ok := ParseCapacity(raw.Capacity); ok {
		rec.Capacity = &v
	}
	if v, ok := parseAmount(raw.SellingPrice); ok {
		rec.SellingPrice = &v
	}
	return rec
}

// UnmarshalJSON decodes either canonical or legacy payloads into a Record.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw RawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = raw.Normalize()
	return nil
}

// Template carries the catalogue attributes copied onto a new serial record.
type Template struct {
	Brand    string
	Model    string
	Capacity *float64
}

// Duplicate lists records sharing one serial number.
type Duplicate struct {
	SerialNumber string   `json:"serial_number"`
	IDs          []string `json:"ids"`
}

var (
	// ErrNotFound indicates a missing serial record.
	ErrNotFound = fmt.Errorf("serial record: %w", httpx.ErrNotFound)
	// ErrValidation wraps required-field failures.
	ErrValidation = fmt.Errorf("serial record: %w", httpx.ErrValidation)
)

// NormalizeStatus maps legacy and empty statuses to canonical values. Any other
// non-empty value passes through unchanged.
func NormalizeStatus(raw string) Status {
	if raw == "" || raw == statusAvailable {
		return StatusInStock
	}
	return Status(raw)
}

// ParseCapacity coerces a numeric or string-with-unit capacity into a number.
// Strings keep only their digits, so "50kg" yields 50. Empty or digitless
// input reports false.
func ParseCapacity(v any) (float64, bool) {
	switch c := v.(type) {
	case nil:
		return 0, false
	case float64:
		return c, true
	case *float64:
		if c == nil {
			return 0, false
		}
		return *c, true
	case float32:
		return float64(c), true
	case int:
		return float64(c), true
	case int32:
		return float64(c), true
	case int64:
		return float64(c), true
	case json.Number:
		f, err := c.Float64()
		return f, err == nil
	case string:
		digits := stripNonDigits(c)
		if digits == "" {
			return 0, false
		}
		n, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return 0, false
		}
		return float64(n), true
	default:
		return 0, false
	}
}

// FormatCapacity renders a capacity as "<n> kg", or "-" when absent.
func FormatCapacity(c *float64) string {
	if c == nil {
		return "-"
	}
	return CapacityString(*c) + " kg"
}

// CapacityString renders the decimal string form used by the capacity filter.
func CapacityString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseAmount accepts numbers or numeric strings. Blank or invalid input is
// treated as absent.
func parseAmount(v any) (float64, bool) {
	switch a := v.(type) {
	case nil:
		return 0, false
	case float64:
		return a, true
	case float32:
		return float64(a), true
	case int:
		return float64(a), true
	case int32:
		return float64(a), true
	case int64:
		return float64(a), true
	case json.Number:
		f, err := a.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(a)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
