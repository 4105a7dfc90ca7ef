package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/spoilme-vintage/store-api/pkg/models"
)

func CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	collection := GetCollection("reviews")

	review.SetTimestamps()
	result, err := collection.InsertOne(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("failed to insert review: %w", err)
	}
	if oid, ok := result.InsertedID.(bson.ObjectID); ok {
		review.ID = oid
	}
	return review, nil
}

func GetProductReviews(ctx context.Context, productID bson.ObjectID) ([]*models.Review, error) {
	collection := GetCollection("reviews")

	cursor, err := collection.Find(ctx,
		bson.D{{Key: "product_id", Value: productID}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []*models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// HasReviewed reports whether the customer already reviewed the product.
// The review bonus is awarded once per customer per product.
func HasReviewed(ctx context.Context, customerID, productID bson.ObjectID) (bool, error) {
	collection := GetCollection("reviews")

	count, err := collection.CountDocuments(ctx, bson.D{
		{Key: "customer_id", Value: customerID},
		{Key: "product_id", Value: productID},
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// HasPurchased reports whether the customer has a delivered or shipped
// order containing the product, which marks the review as verified.
func HasPurchased(ctx context.Context, customerID bson.ObjectID, productCode string) (bool, error) {
	collection := GetCollection("orders")

	count, err := collection.CountDocuments(ctx, bson.D{
		{Key: "customer_id", Value: customerID},
		{Key: "items.code", Value: productCode},
		{Key: "status", Value: bson.D{{Key: "$in", Value: bson.A{"shipped", "delivered"}}}},
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
