package serial

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scaledesk/scaledesk/internal/platform/db"
)

const selectColumns = `SELECT id, COALESCE(product_id, ''), serial_number, brand, model, capacity, purchase_date,
	selling_price, status, customer_name, customer_mobile, customer_phone, sale_date, date_sold,
	bill_book_number, bill_number, warranty_start_date, warranty_end_date, warranty_status,
	created_at, updated_at FROM serials`

type pgRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository stores records in the serials table.
func NewPostgresRepository(db *pgxpool.Pool) Repository {
	return &pgRepository{db: db}
}

func (r *pgRepository) List(ctx context.Context) ([]Record, error) {
	rows, err := r.db.Query(ctx, selectColumns+` ORDER BY created_at, id`)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, db.Classify(rows.Err())
}

func (r *pgRepository) Get(ctx context.Context, id string) (Record, error) {
	rec, err := scanRecord(r.db.QueryRow(ctx, selectColumns+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, db.Classify(err)
}

func (r *pgRepository) Create(ctx context.Context, rec Record) (Record, error) {
	query := `INSERT INTO serials (id, product_id, serial_number, brand, model, capacity, purchase_date,
		selling_price, status, customer_name, customer_mobile, sale_date, bill_book_number, bill_number,
		warranty_start_date, warranty_end_date, warranty_status, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.db.Exec(ctx, query, rec.ID, rec.ProductID, rec.SerialNumber, rec.Brand, rec.Model,
		capacityColumn(rec.Capacity), rec.PurchaseDate, rec.SellingPrice, string(rec.Status),
		rec.CustomerName, rec.CustomerMobile, rec.SaleDate, rec.BillBookNumber, rec.BillNumber,
		rec.WarrantyStartDate, rec.WarrantyEndDate, rec.WarrantyStatus, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return Record{}, db.Classify(err)
	}
	return rec, nil
}

// Update rewrites the canonical columns and clears the legacy ones, so an
// aliased value is migrated the first time its record is saved.
func (r *pgRepository) Update(ctx context.Context, id string, rec Record) (Record, error) {
	query := `UPDATE serials SET product_id = NULLIF($2, ''), serial_number = $3, brand = $4, model = $5,
		capacity = $6, purchase_date = $7, selling_price = $8, status = $9, customer_name = $10,
		customer_mobile = $11, customer_phone = '', sale_date = $12, date_sold = '', bill_book_number = $13,
		bill_number = $14, warranty_start_date = $15, warranty_end_date = $16, warranty_status = $17,
		updated_at = $18 WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, rec.ProductID, rec.SerialNumber, rec.Brand, rec.Model,
		capacityColumn(rec.Capacity), rec.PurchaseDate, rec.SellingPrice, string(rec.Status),
		rec.CustomerName, rec.CustomerMobile, rec.SaleDate, rec.BillBookNumber, rec.BillNumber,
		rec.WarrantyStartDate, rec.WarrantyEndDate, rec.WarrantyStatus, rec.UpdatedAt)
	if err != nil {
		return Record{}, db.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (r *pgRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM serials WHERE id = $1`, id)
	if err != nil {
		return db.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRecord(row pgx.Row) (Record, error) {
	var (
		raw      RawRecord
		capacity *string
		price    *float64
	)
	err := row.Scan(&raw.ID, &raw.ProductID, &raw.SerialNumber, &raw.Brand, &raw.Model, &capacity,
		&raw.PurchaseDate, &price, &raw.Status, &raw.CustomerName, &raw.CustomerMobile, &raw.CustomerPhone,
		&raw.SaleDate, &raw.DateSold, &raw.BillBookNumber, &raw.BillNumber, &raw.WarrantyStartDate,
		&raw.WarrantyEndDate, &raw.WarrantyStatus, &raw.CreatedAt, &raw.UpdatedAt)
	if err != nil {
		return Record{}, db.Classify(err)
	}
	if capacity != nil {
		raw.Capacity = *capacity
	}
	if price != nil {
		raw.SellingPrice = *price
	}
	return raw.Normalize(), nil
}

func capacityColumn(c *float64) *string {
	if c == nil {
		return nil
	}
	s := CapacityString(*c)
	return &s
}
