package product

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scaledesk/scaledesk/internal/platform/docstore"
)

type document struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"product_name"`
	Capacity  string    `bson:"capacity"`
	Brand     string    `bson:"brand"`
	Model     string    `bson:"model"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type mongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository stores products in the products collection of db.
func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection(docstore.ProductsCollection)}
}

func (r *mongoRepository) List(ctx context.Context) ([]Product, error) {
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
	products := make([]Product, 0, len(docs))
	for _, d := range docs {
		products = append(products, Product(d))
	}
	return products, nil
}

func (r *mongoRepository) Get(ctx context.Context, id string) (Product, error) {
	var doc document
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, docstore.Classify(err)
	}
	return Product(doc), nil
}

func (r *mongoRepository) Create(ctx context.Context, p Product) (Product, error) {
	if _, err := r.coll.InsertOne(ctx, document(p)); err != nil {
		return Product{}, docstore.Classify(err)
	}
	return p, nil
}

func (r *mongoRepository) Update(ctx context.Context, id string, p Product) (Product, error) {
	doc := document(p)
	doc.ID = id
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return Product{}, docstore.Classify(err)
	}
	if res.MatchedCount == 0 {
		return Product{}, ErrNotFound
	}
	return p, nil
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
