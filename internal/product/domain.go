// Package product manages the catalogue of scale models that serial records
// are registered against.
package product

import (
	"fmt"
	"time"

	"github.com/scaledesk/scaledesk/internal/platform/httpx"
)

// Product is a catalogue entry. Capacity is a free label such as "50kg".
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"product_name" validate:"required"`
	Capacity  string    `json:"capacity"`
	Brand     string    `json:"brand"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Criteria narrows the inventory overview.
type Criteria struct {
	Search   string
	Capacity string
	Brand    string
}

// Stock counts the serial records linked to one product.
type Stock struct {
	Product
	Total   int `json:"total"`
	InStock int `json:"in_stock"`
	Sold    int `json:"sold"`
}

// Overview is the inventory page payload.
type Overview struct {
	Items      []Stock  `json:"items"`
	Brands     []string `json:"brands"`
	Capacities []string `json:"capacities"`
}

var (
	// ErrNotFound indicates a missing product.
	ErrNotFound = fmt.Errorf("product: %w", httpx.ErrNotFound)
	// ErrValidation wraps required-field failures.
	ErrValidation = fmt.Errorf("product: %w", httpx.ErrValidation)
)
