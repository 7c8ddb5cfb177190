package serial

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/scaledesk/scaledesk/internal/warranty"
)

// Repository is the record store collaborator. Listing always returns the full
// set; filtering, sorting and paging happen in-process.
type Repository interface {
	List(ctx context.Context) ([]Record, error)
	Get(ctx context.Context, id string) (Record, error)
	Create(ctx context.Context, rec Record) (Record, error)
	Update(ctx context.Context, id string, rec Record) (Record, error)
	Delete(ctx context.Context, id string) error
}

// Catalogue resolves product templates for auto-filling new records.
type Catalogue interface {
	Template(ctx context.Context, productID string) (Template, error)
}

// ChangeNotifier is told after every successful mutation.
type ChangeNotifier interface {
	Bump(ctx context.Context) error
}

// Service coordinates serial record operations.
type Service struct {
	repo      Repository
	catalogue Catalogue
	notifier  ChangeNotifier
	logger    *slog.Logger
	validate  *validator.Validate
	now       func() time.Time
}

// ServiceOption customises Service.
type ServiceOption func(*Service)

// WithCatalogue enables product auto-fill.
func WithCatalogue(c Catalogue) ServiceOption {
	return func(s *Service) { s.catalogue = c }
}

// WithNotifier registers a mutation listener.
func WithNotifier(n ChangeNotifier) ServiceOption {
	return func(s *Service) { s.notifier = n }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// NewService builds Service.
func NewService(repo Repository, logger *slog.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		repo:     repo,
		logger:   logger,
		validate: validator.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now exposes the service clock.
func (s *Service) Now() time.Time {
	return s.now()
}

// List returns the full snapshot with warranty status derived at read time.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range records {
		records[i] = current(records[i], now)
	}
	return records, nil
}

// Get loads one record.
func (s *Service) Get(ctx context.Context, id string) (Record, error) {
	if strings.TrimSpace(id) == "" {
		return Record{}, ErrNotFound
	}
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}
	return current(rec, s.now()), nil
}

// Query runs the list pipeline over a fresh snapshot.
func (s *Service) Query(ctx context.Context, view View) (Result, error) {
	records, err := s.List(ctx)
	if err != nil {
		return Result{}, err
	}
	return view.Apply(records), nil
}

// Duplicates reports serial numbers stored more than once.
func (s *Service) Duplicates(ctx context.Context) ([]Duplicate, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return DuplicateSerials(records), nil
}

// Create stores a new record.
func (s *Service) Create(ctx context.Context, rec Record) (Record, error) {
	rec.SerialNumber = strings.TrimSpace(rec.SerialNumber)
	s.fillFromCatalogue(ctx, &rec)
	if err := s.check(rec); err != nil {
		return Record{}, err
	}
	now := s.now()
	rec.ID = uuid.NewString()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	applySaleDate(nil, &rec)
	rec.WarrantyStatus = string(warranty.StatusAt(rec.WarrantyEndDate, now))

	created, err := s.repo.Create(ctx, rec)
	if err != nil {
		return Record{}, fmt.Errorf("serial: create: %w", err)
	}
	s.changed(ctx)
	return current(created, now), nil
}

// Update replaces the editable fields of record id.
func (s *Service) Update(ctx context.Context, id string, rec Record) (Record, error) {
	prev, err := s.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}
	rec.SerialNumber = strings.TrimSpace(rec.SerialNumber)
	if err := s.check(rec); err != nil {
		return Record{}, err
	}
	now := s.now()
	rec.ID = prev.ID
	rec.CreatedAt = prev.CreatedAt
	rec.UpdatedAt = now
	applySaleDate(&prev, &rec)
	rec.WarrantyStatus = string(warranty.StatusAt(rec.WarrantyEndDate, now))

	updated, err := s.repo.Update(ctx, id, rec)
	if err != nil {
		return Record{}, fmt.Errorf("serial: update: %w", err)
	}
	s.changed(ctx)
	return current(updated, now), nil
}

// UpdateWarranty edits the warranty window of a record without re-deriving it
// from the sale date. An empty date clears its field; an unparseable one
// leaves the stored value in place.
func (s *Service) UpdateWarranty(ctx context.Context, id string, window warranty.Window) (Record, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}
	now := s.now()
	if editableDate(window.Start) {
		rec.WarrantyStartDate = window.Start
	}
	if editableDate(window.End) {
		rec.WarrantyEndDate = window.End
	}
	rec.WarrantyStatus = string(warranty.StatusAt(rec.WarrantyEndDate, now))
	rec.UpdatedAt = now

	updated, err := s.repo.Update(ctx, id, rec)
	if err != nil {
		return Record{}, fmt.Errorf("serial: update warranty: %w", err)
	}
	s.changed(ctx)
	return current(updated, now), nil
}

// Delete removes record id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

// current replaces the stored status hint with one derived at now.
func current(rec Record, now time.Time) Record {
	rec.WarrantyStatus = string(warranty.StatusAt(rec.WarrantyEndDate, now))
	return rec
}

func editableDate(s string) bool {
	if s == "" {
		return true
	}
	_, ok := warranty.ParseDate(s)
	return ok
}

// SweepWarrantyStatus rewrites stored warranty status hints that no longer
// match a fresh derivation and returns how many records changed.
func (s *Service) SweepWarrantyStatus(ctx context.Context) (int, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	now := s.now()
	changed := 0
	for _, rec := range records {
		fresh := string(warranty.StatusAt(rec.WarrantyEndDate, now))
		if rec.WarrantyStatus == fresh {
			continue
		}
		rec.WarrantyStatus = fresh
		rec.UpdatedAt = now
		if _, err := s.repo.Update(ctx, rec.ID, rec); err != nil {
			return changed, fmt.Errorf("serial: sweep %s: %w", rec.ID, err)
		}
		changed++
	}
	if changed > 0 {
		s.changed(ctx)
	}
	return changed, nil
}

// applySaleDate derives the warranty window when the sale date is assigned or
// changed, unless the same save also edited the warranty end date.
func applySaleDate(prev, rec *Record) {
	if rec.SaleDate == "" {
		return
	}
	if prev != nil && prev.SaleDate == rec.SaleDate {
		return
	}
	endEdited := rec.WarrantyEndDate != ""
	if prev != nil {
		endEdited = rec.WarrantyEndDate != prev.WarrantyEndDate
	}
	if endEdited {
		return
	}
	window, ok := warranty.Derive(rec.SaleDate)
	if !ok {
		return
	}
	rec.WarrantyStartDate = window.Start
	rec.WarrantyEndDate = window.End
}

func (s *Service) fillFromCatalogue(ctx context.Context, rec *Record) {
	if s.catalogue == nil || rec.ProductID == "" {
		return
	}
	tpl, err := s.catalogue.Template(ctx, rec.ProductID)
	if err != nil {
		s.logger.Warn("serial auto-fill skipped", slog.String("product_id", rec.ProductID), slog.Any("error", err))
		return
	}
	if rec.Brand == "" {
		rec.Brand = tpl.Brand
	}
	if rec.Model == "" {
		rec.Model = tpl.Model
	}
	if rec.Capacity == nil && tpl.Capacity != nil {
		c := *tpl.Capacity
		rec.Capacity = &c
	}
}

func (s *Service) check(rec Record) error {
	err := s.validate.Struct(rec)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
	}
	return fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(fields, ", "))
}

func (s *Service) changed(ctx context.Context) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Bump(ctx); err != nil {
		s.logger.Warn("serial change notify", slog.Any("error", err))
	}
}
