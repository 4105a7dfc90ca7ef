package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/spoilme-vintage/store-api/pkg/global"
	"github.com/spoilme-vintage/store-api/pkg/models"
)

func GetPublishedProducts(ctx context.Context) ([]*models.Product, error) {
	collection := GetCollection("products")

	cursor, err := collection.Find(ctx, bson.D{{Key: "status", Value: "published"}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []*models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func GetProductByCode(ctx context.Context, code string) (*models.Product, error) {
	collection := GetCollection("products")

	var product models.Product
	err := collection.FindOne(ctx, bson.D{{Key: "code", Value: code}}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: product %s", global.ErrNotFound, code)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	collection := GetCollection("products")

	var product models.Product
	err := collection.FindOne(ctx, bson.D{{Key: "slug", Value: slug}}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: product %s", global.ErrNotFound, slug)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func CreateProducts(ctx context.Context, products []*models.Product) ([]*models.Product, error) {
	collection := GetCollection("products")

	docs := make([]interface{}, len(products))
	for i, product := range products {
		product.SetTimestamps()
		docs[i] = product
	}

	if _, err := collection.InsertMany(ctx, docs); err != nil {
		return nil, fmt.Errorf("failed to insert products: %w", err)
	}
	return products, nil
}

// UpdateProductByCode applies a partial update and returns the new document.
func UpdateProductByCode(ctx context.Context, code string, updates map[string]interface{}) (*models.Product, error) {
	collection := GetCollection("products")

	updates["updated_at"] = time.Now()
	update := bson.D{{Key: "$set", Value: updates}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product models.Product
	err := collection.FindOneAndUpdate(ctx, bson.D{{Key: "code", Value: code}}, update, opts).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: product %s", global.ErrNotFound, code)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func DeleteProductByCode(ctx context.Context, code string) (*models.Product, error) {
	collection := GetCollection("products")

	var product models.Product
	err := collection.FindOneAndDelete(ctx, bson.D{{Key: "code", Value: code}}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: product %s", global.ErrNotFound, code)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// NextProductSequence increments and returns the SPV code counter.
func NextProductSequence(ctx context.Context) (int64, error) {
	collection := GetCollection("counters")

	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "value", Value: int64(1)}}}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var counter struct {
		Value int64 `bson:"value"`
	}
	err := collection.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: "product_code"}}, update, opts).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to advance product counter: %w", err)
	}
	return counter.Value, nil
}
