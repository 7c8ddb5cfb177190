// Package reports aggregates serial records into sales summaries, dashboard
// statistics and report exports.
package reports

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/scaledesk/scaledesk/internal/billing"
	"github.com/scaledesk/scaledesk/internal/platform/httpx"
	"github.com/scaledesk/scaledesk/internal/serial"
	"github.com/scaledesk/scaledesk/internal/warranty"
)

// ErrRange reports an unusable date range.
var ErrRange = fmt.Errorf("reports: invalid date range: %w", httpx.ErrValidation)

// Range is an inclusive span of calendar dates.
type Range struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DefaultRange covers the month ending today.
func DefaultRange(now time.Time) Range {
	return Range{
		Start: now.AddDate(0, -1, 0).Format(warranty.DateLayout),
		End:   now.Format(warranty.DateLayout),
	}
}

// SalesSummary is the sales report header plus its rows.
type SalesSummary struct {
	Range       Range           `json:"range"`
	Count       int             `json:"count"`
	Revenue     decimal.Decimal `json:"revenue"`
	RevenueText string          `json:"revenue_text"`
	Items       []serial.Record `json:"items"`
}

// SalesInRange keeps records whose sale date falls within r, both ends
// included. Records with missing or unparseable sale dates are skipped.
func SalesInRange(records []serial.Record, r Range) ([]serial.Record, error) {
	start, ok := warranty.ParseDate(r.Start)
	if !ok {
		return nil, ErrRange
	}
	end, ok := warranty.ParseDate(r.End)
	if !ok || end.Before(start) {
		return nil, ErrRange
	}
	out := []serial.Record{}
	for _, rec := range records {
		sold, ok := warranty.ParseDate(rec.SaleDate)
		if !ok {
			continue
		}
		if sold.Before(start) || sold.After(end) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// Summarize totals the selling price of sales.
func Summarize(r Range, sales []serial.Record) SalesSummary {
	revenue := decimal.Zero
	for _, rec := range sales {
		if rec.SellingPrice != nil {
			revenue = revenue.Add(decimal.NewFromFloat(*rec.SellingPrice))
		}
	}
	return SalesSummary{
		Range:       r,
		Count:       len(sales),
		Revenue:     revenue,
		RevenueText: billing.FormatCurrency(revenue),
		Items:       sales,
	}
}
