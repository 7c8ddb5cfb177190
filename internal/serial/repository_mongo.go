package serial

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scaledesk/scaledesk/internal/platform/docstore"
)

// document is the stored shape. Capacity and selling price stay loosely typed
// since imported documents mix numbers and strings.
type document struct {
	ID                string    `bson:"_id"`
	ProductID         string    `bson:"product_id,omitempty"`
	SerialNumber      string    `bson:"serial_number"`
	Brand             string    `bson:"brand"`
	Model             string    `bson:"model"`
	Capacity          any       `bson:"capacity"`
	PurchaseDate      string    `bson:"purchase_date"`
	SellingPrice      any       `bson:"selling_price"`
	Status            string    `bson:"status"`
	CustomerName      string    `bson:"customer_name"`
	CustomerMobile    string    `bson:"customer_mobile"`
	CustomerPhone     string    `bson:"customer_phone,omitempty"`
	SaleDate          string    `bson:"sale_date"`
	DateSold          string    `bson:"date_sold,omitempty"`
	BillBookNumber    string    `bson:"bill_book_number"`
	BillNumber        string    `bson:"bill_number"`
	WarrantyStartDate string    `bson:"warranty_start_date"`
	WarrantyEndDate   string    `bson:"warranty_end_date"`
	WarrantyStatus    string    `bson:"warranty_status"`
	CreatedAt         time.Time `bson:"created_at"`
	UpdatedAt         time.Time `bson:"updated_at"`
}

func (d document) normalize() Record {
	return RawRecord{
		ID:                d.ID,
		ProductID:         d.ProductID,
		SerialNumber:      d.SerialNumber,
		Brand:             d.Brand,
		Model:             d.Model,
		Capacity:          d.Capacity,
		PurchaseDate:      d.PurchaseDate,
		SellingPrice:      d.SellingPrice,
		Status:            d.Status,
		CustomerName:      d.CustomerName,
		CustomerMobile:    d.CustomerMobile,
		CustomerPhone:     d.CustomerPhone,
		SaleDate:          d.SaleDate,
		DateSold:          d.DateSold,
		BillBookNumber:    d.BillBookNumber,
		BillNumber:        d.BillNumber,
		WarrantyStartDate: d.WarrantyStartDate,
		WarrantyEndDate:   d.WarrantyEndDate,
		WarrantyStatus:    d.WarrantyStatus,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}.Normalize()
}

func toDocument(rec Record) document {
	doc := document{
		ID:                rec.ID,
		ProductID:         rec.ProductID,
		SerialNumber:      rec.SerialNumber,
		Brand:             rec.Brand,
		Model:             rec.Model,
		PurchaseDate:      rec.PurchaseDate,
		Status:            string(rec.Status),
		CustomerName:      rec.CustomerName,
		CustomerMobile:    rec.CustomerMobile,
		SaleDate:          rec.SaleDate,
		BillBookNumber:    rec.BillBookNumber,
		BillNumber:        rec.BillNumber,
		WarrantyStartDate: rec.WarrantyStartDate,
		WarrantyEndDate:   rec.WarrantyEndDate,
		WarrantyStatus:    rec.WarrantyStatus,
		CreatedAt:         rec.CreatedAt,
		UpdatedAt:         rec.UpdatedAt,
	}
	if rec.Capacity != nil {
		doc.Capacity = *rec.Capacity
	}
	if rec.SellingPrice != nil {
		doc.SellingPrice = *rec.SellingPrice
	}
	return doc
}

type mongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository stores records in the serials collection of db.
func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection(docstore.SerialsCollection)}
}

func (r *mongoRepository) List(ctx context.Context) ([]Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	var docs []document
	err := docstore.Retry(ctx, 3, func(ctx context.Context) error {
		cursor, err := r.coll.Find(ctx, bson.M{}, opts)
		if err != nil {
			return err
		}
		docs = nil
		return cursor.All(ctx, &docs)
	})
	if err != nil {
		return nil, docstore.Classify(err)
	}
	records := make([]Record, 0, len(docs))
	for _, d := range docs {
		records = append(records, d.normalize())
	}
	return records, nil
}

func (r *mongoRepository) Get(ctx context.Context, id string) (Record, error) {
	var doc document
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, docstore.Classify(err)
	}
	return doc.normalize(), nil
}

func (r *mongoRepository) Create(ctx context.Context, rec Record) (Record, error) {
	if _, err := r.coll.InsertOne(ctx, toDocument(rec)); err != nil {
		return Record{}, docstore.Classify(err)
	}
	return rec, nil
}

// Update replaces the whole document, dropping any legacy alias fields.
func (r *mongoRepository) Update(ctx context.Context, id string, rec Record) (Record, error) {
	doc := toDocument(rec)
	doc.ID = id
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return Record{}, docstore.Classify(err)
	}
	if res.MatchedCount == 0 {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (r *mongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return docstore.Classify(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
