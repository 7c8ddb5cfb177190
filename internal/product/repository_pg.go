package product

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scaledesk/scaledesk/internal/platform/db"
)

const selectProducts = `SELECT id, name, capacity, brand, model, created_at, updated_at FROM products`

type pgRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository stores products in the products table.
func NewPostgresRepository(db *pgxpool.Pool) Repository {
	return &pgRepository{db: db}
}

func (r *pgRepository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.db.Query(ctx, selectProducts+` ORDER BY created_at, id`)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, db.Classify(rows.Err())
}

func (r *pgRepository) Get(ctx context.Context, id string) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, selectProducts+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, db.Classify(err)
}

func (r *pgRepository) Create(ctx context.Context, p Product) (Product, error) {
	_, err := r.db.Exec(ctx, `INSERT INTO products (id, name, capacity, brand, model, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Name, p.Capacity, p.Brand, p.Model, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return Product{}, db.Classify(err)
	}
	return p, nil
}

func (r *pgRepository) Update(ctx context.Context, id string, p Product) (Product, error) {
	tag, err := r.db.Exec(ctx, `UPDATE products SET name = $2, capacity = $3, brand = $4, model = $5,
		updated_at = $6 WHERE id = $1`, id, p.Name, p.Capacity, p.Brand, p.Model, p.UpdatedAt)
	if err != nil {
		return Product{}, db.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (r *pgRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return db.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Capacity, &p.Brand, &p.Model, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
