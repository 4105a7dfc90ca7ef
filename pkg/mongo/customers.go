package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/spoilme-vintage/store-api/pkg/global"
	"github.com/spoilme-vintage/store-api/pkg/models"
)

func CreateCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	collection := GetCollection("customers")

	// Unique email index turns duplicates into a write error.
	result, err := collection.InsertOne(ctx, customer)
	if mongo.IsDuplicateKeyError(err) {
		return nil, fmt.Errorf("%w: email already exists", global.ErrInvalidInput)
	}
	if err != nil {
		return nil, err
	}
	if oid, ok := result.InsertedID.(bson.ObjectID); ok {
		customer.ID = oid
	}
	return customer, nil
}

func GetCustomerByID(ctx context.Context, id bson.ObjectID) (*models.Customer, error) {
	collection := GetCollection("customers")

	var customer models.Customer
	err := collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&customer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: customer %s", global.ErrNotFound, id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// UpdateMembership replaces the customer's membership snapshot. Renewal and
// lapse transitions are computed by the caller via MembershipState methods.
func UpdateMembership(ctx context.Context, id bson.ObjectID, membership models.MembershipState) error {
	collection := GetCollection("customers")

	result, err := collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "membership", Value: membership}}}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: customer %s", global.ErrNotFound, id.Hex())
	}
	return nil
}

// UpdateOrderStats bumps the running order counters after checkout.
func UpdateOrderStats(ctx context.Context, id bson.ObjectID, orderTotal float64) error {
	collection := GetCollection("customers")

	_, err := collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{
			{Key: "$inc", Value: bson.D{
				{Key: "total_orders", Value: 1},
				{Key: "total_spent", Value: orderTotal},
			}},
			{Key: "$currentDate", Value: bson.D{
				{Key: "last_order_date", Value: true},
				{Key: "updated_at", Value: true},
			}},
		},
	)
	return err
}
