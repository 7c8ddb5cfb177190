package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/scaledesk/scaledesk/internal/billing"
	"github.com/scaledesk/scaledesk/internal/serial"
	"github.com/scaledesk/scaledesk/internal/warranty"
)

// Stats are the dashboard totals.
type Stats struct {
	Date            string          `json:"date"`
	Products        int             `json:"products"`
	Serials         int             `json:"serials"`
	InStock         int             `json:"in_stock"`
	Sold            int             `json:"sold"`
	SalesValue      decimal.Decimal `json:"sales_value"`
	SalesValueText  string          `json:"sales_value_text"`
	ActiveWarranty  int             `json:"active_warranty"`
	ExpiredWarranty int             `json:"expired_warranty"`
}

// ComputeStats derives dashboard totals from the snapshot as of now.
func ComputeStats(records []serial.Record, now time.Time) Stats {
	stats := Stats{
		Date:       now.Format(warranty.DateLayout),
		Serials:    len(records),
		SalesValue: decimal.Zero,
	}
	for _, rec := range records {
		switch serial.NormalizeStatus(string(rec.Status)) {
		case serial.StatusInStock:
			stats.InStock++
		case serial.StatusSold:
			stats.Sold++
			if rec.SellingPrice != nil {
				stats.SalesValue = stats.SalesValue.Add(decimal.NewFromFloat(*rec.SellingPrice))
			}
		}
		switch warranty.StatusAt(rec.WarrantyEndDate, now) {
		case warranty.StatusActive:
			stats.ActiveWarranty++
		case warranty.StatusExpired:
			stats.ExpiredWarranty++
		}
	}
	stats.SalesValueText = billing.FormatCurrency(stats.SalesValue)
	return stats
}
