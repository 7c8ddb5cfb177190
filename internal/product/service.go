package product

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/scaledesk/scaledesk/internal/serial"
)

// Repository persists products.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, id string, p Product) (Product, error)
	Delete(ctx context.Context, id string) error
}

// SerialLister supplies the serial snapshot for stock counts.
type SerialLister interface {
	List(ctx context.Context) ([]serial.Record, error)
}

var _ serial.Catalogue = (*Service)(nil)

// Service coordinates catalogue operations.
type Service struct {
	repo     Repository
	serials  SerialLister
	logger   *slog.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewService builds Service. serials may be nil until the serial service is
// wired with SetSerials.
func NewService(repo Repository, serials SerialLister, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, serials: serials, logger: logger, validate: validator.New(), now: time.Now}
}

// SetSerials attaches the serial lister. The serial service depends on this
// one for auto-fill, so one side must be wired late.
func (s *Service) SetSerials(serials SerialLister) {
	s.serials = serials
}

// List returns the catalogue.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

// Count returns the catalogue size.
func (s *Service) Count(ctx context.Context) (int, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(products), nil
}

// Get loads one product.
func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	if strings.TrimSpace(id) == "" {
		return Product{}, ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// Create stores a new product.
func (s *Service) Create(ctx context.Context, p Product) (Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := s.check(p); err != nil {
		return Product{}, err
	}
	now := s.now()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return Product{}, fmt.Errorf("product: create: %w", err)
	}
	return created, nil
}

// Update replaces the editable fields of product id.
func (s *Service) Update(ctx context.Context, id string, p Product) (Product, error) {
	prev, err := s.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	p.Name = strings.TrimSpace(p.Name)
	if err := s.check(p); err != nil {
		return Product{}, err
	}
	p.ID = prev.ID
	p.CreatedAt = prev.CreatedAt
	p.UpdatedAt = s.now()
	updated, err := s.repo.Update(ctx, id, p)
	if err != nil {
		return Product{}, fmt.Errorf("product: update: %w", err)
	}
	return updated, nil
}

// Delete removes product id. Linked serial records keep their reference.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// Template exposes the attributes copied onto new serial records.
func (s *Service) Template(ctx context.Context, id string) (serial.Template, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return serial.Template{}, err
	}
	tpl := serial.Template{Brand: p.Brand, Model: p.Model}
	if c, ok := serial.ParseCapacity(p.Capacity); ok {
		tpl.Capacity = &c
	}
	return tpl, nil
}

// Overview loads products and serials concurrently and counts linked stock.
func (s *Service) Overview(ctx context.Context, c Criteria) (Overview, error) {
	var (
		products []Product
		records  []serial.Record
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.repo.List(gctx)
		return err
	})
	if s.serials != nil {
		g.Go(func() error {
			var err error
			records, err = s.serials.List(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	return BuildOverview(products, records, c), nil
}

// BuildOverview matches products against c and counts their serials.
func BuildOverview(products []Product, records []serial.Record, c Criteria) Overview {
	byProduct := make(map[string][]serial.Record)
	for _, rec := range records {
		if rec.ProductID != "" {
			byProduct[rec.ProductID] = append(byProduct[rec.ProductID], rec)
		}
	}

	out := Overview{Items: []Stock{}, Brands: []string{}, Capacities: []string{}}
	q := strings.ToLower(strings.TrimSpace(c.Search))
	for _, p := range products {
		if p.Brand != "" && !slices.Contains(out.Brands, p.Brand) {
			out.Brands = append(out.Brands, p.Brand)
		}
		if p.Capacity != "" && !slices.Contains(out.Capacities, p.Capacity) {
			out.Capacities = append(out.Capacities, p.Capacity)
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Brand), q) {
			continue
		}
		if on(c.Capacity) && p.Capacity != c.Capacity {
			continue
		}
		if on(c.Brand) && p.Brand != c.Brand {
			continue
		}
		stock := Stock{Product: p}
		for _, rec := range byProduct[p.ID] {
			stock.Total++
			switch serial.NormalizeStatus(string(rec.Status)) {
			case serial.StatusInStock:
				stock.InStock++
			case serial.StatusSold:
				stock.Sold++
			}
		}
		out.Items = append(out.Items, stock)
	}
	return out
}

func on(selector string) bool {
	return selector != "" && selector != serial.All
}

func (s *Service) check(p Product) error {
	err := s.validate.Struct(p)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}
	return err
}
