// Package tracker lists sold units with their live warranty state and edits
// warranty windows.
package tracker

import (
	"context"
	"strings"
	"time"

	"github.com/scaledesk/scaledesk/internal/serial"
	"github.com/scaledesk/scaledesk/internal/warranty"
)

// Records is the serial-side collaborator.
type Records interface {
	List(ctx context.Context) ([]serial.Record, error)
	UpdateWarranty(ctx context.Context, id string, window warranty.Window) (serial.Record, error)
	Now() time.Time
}

// Item is a tracked unit with its status derived at read time.
type Item struct {
	serial.Record
	Status    warranty.Status `json:"warranty_status"`
	StartText string          `json:"warranty_start_display"`
	EndText   string          `json:"warranty_end_display"`
}

// Summary is the tracker listing.
type Summary struct {
	Items   []Item `json:"items"`
	Total   int    `json:"total"`
	Active  int    `json:"active"`
	Expired int    `json:"expired"`
}

// Service derives tracker views over serial records.
type Service struct {
	records Records
}

// NewService builds Service.
func NewService(records Records) *Service {
	return &Service{records: records}
}

// List returns tracked units matching search. Counts cover the matching items.
func (s *Service) List(ctx context.Context, search string) (Summary, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Track(records, search, s.records.Now()), nil
}

// Edit replaces the warranty window of record id.
func (s *Service) Edit(ctx context.Context, id string, window warranty.Window) (Item, error) {
	rec, err := s.records.UpdateWarranty(ctx, id, window)
	if err != nil {
		return Item{}, err
	}
	return itemOf(rec, s.records.Now()), nil
}

// Track selects sold units or units carrying a warranty end date, narrows them
// by a case-insensitive serial or customer search, and derives each status.
func Track(records []serial.Record, search string, now time.Time) Summary {
	q := strings.ToLower(strings.TrimSpace(search))
	sum := Summary{Items: []Item{}}
	for _, rec := range records {
		if !rec.IsSold() && rec.WarrantyEndDate == "" {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(rec.SerialNumber), q) &&
			!strings.Contains(strings.ToLower(rec.CustomerName), q) {
			continue
		}
		item := itemOf(rec, now)
		switch item.Status {
		case warranty.StatusActive:
			sum.Active++
		case warranty.StatusExpired:
			sum.Expired++
		}
		sum.Items = append(sum.Items, item)
	}
	sum.Total = len(sum.Items)
	return sum
}

func itemOf(rec serial.Record, now time.Time) Item {
	return Item{
		Record:    rec,
		Status:    warranty.StatusAt(rec.WarrantyEndDate, now),
		StartText: warranty.FormatDisplay(rec.WarrantyStartDate),
		EndText:   warranty.FormatDisplay(rec.WarrantyEndDate),
	}
}
