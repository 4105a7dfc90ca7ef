package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/spoilme-vintage/store-api/pkg/global"
	"github.com/spoilme-vintage/store-api/pkg/models"
)

func CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	collection := GetCollection("orders")

	order.SetTimestamps()
	result, err := collection.InsertOne(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}
	if oid, ok := result.InsertedID.(bson.ObjectID); ok {
		order.ID = oid
	}
	return order, nil
}

func GetOrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	collection := GetCollection("orders")

	var order models.Order
	err := collection.FindOne(ctx, bson.D{{Key: "order_number", Value: orderNumber}}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: order %s", global.ErrNotFound, orderNumber)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func GetCustomerOrders(ctx context.Context, customerID bson.ObjectID, page, limit int) ([]*models.Order, error) {
	collection := GetCollection("orders")

	skip := int64((page - 1) * limit)
	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, bson.D{{Key: "customer_id", Value: customerID}}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []*models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
