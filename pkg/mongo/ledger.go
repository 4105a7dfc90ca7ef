package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/spoilme-vintage/store-api/pkg/global"
	"github.com/spoilme-vintage/store-api/pkg/models"
)

// LoyaltyLogEntry is the audit record written alongside every balance
// mutation. The balance itself lives on the customer document; this
// collection only explains how it got there.
type LoyaltyLogEntry struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerID bson.ObjectID `bson:"customer_id" json:"customer_id"`
	Reason     string        `bson:"reason" json:"reason"` // purchase, review, share, redemption
	Points     int           `bson:"points" json:"points"` // negative for redemptions
	ProductID  string        `bson:"product_id,omitempty" json:"product_id,omitempty"`
	OrderID    string        `bson:"order_id,omitempty" json:"order_id,omitempty"`
	CreatedAt  time.Time     `bson:"created_at" json:"created_at"`
}

// AccruePoints adds points to the customer's balance and writes the audit
// entry. Accruals never race destructively (both increments land), so a
// plain $inc is enough here.
func AccruePoints(ctx context.Context, entry LoyaltyLogEntry) error {
	if entry.Points <= 0 {
		return fmt.Errorf("%w: accrual must be positive", global.ErrInvalidInput)
	}

	customers := GetCollection("customers")
	result, err := customers.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: entry.CustomerID}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "loyalty_points", Value: entry.Points}}}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: customer %s", global.ErrNotFound, entry.CustomerID.Hex())
	}

	entry.CreatedAt = time.Now()
	if _, err := GetCollection("loyalty_log").InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to write loyalty log: %w", err)
	}
	return nil
}

// RedeemPoints spends points via a compare-and-set against the live
// balance: the decrement only lands if the balance still covers the
// request at write time. This is what closes the double-spend race two
// simultaneous checkouts would otherwise win together.
func RedeemPoints(ctx context.Context, customerID bson.ObjectID, points int, orderID string) error {
	if points <= 0 {
		return fmt.Errorf("%w: redemption must be positive", global.ErrInvalidInput)
	}

	customers := GetCollection("customers")
	result, err := customers.UpdateOne(ctx,
		bson.D{
			{Key: "_id", Value: customerID},
			{Key: "loyalty_points", Value: bson.D{{Key: "$gte", Value: points}}},
		},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "loyalty_points", Value: -points}}}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return classifyRedeemMiss(ctx, customerID, points)
	}

	log := LoyaltyLogEntry{
		CustomerID: customerID,
		Reason:     "redemption",
		Points:     -points,
		OrderID:    orderID,
		CreatedAt:  time.Now(),
	}
	if _, err := GetCollection("loyalty_log").InsertOne(ctx, log); err != nil {
		return fmt.Errorf("failed to write loyalty log: %w", err)
	}
	return nil
}

// classifyRedeemMiss distinguishes "balance too low" from "another
// mutation won the race" after a zero-match CAS attempt.
func classifyRedeemMiss(ctx context.Context, customerID bson.ObjectID, points int) error {
	var customer models.Customer
	err := GetCollection("customers").FindOne(ctx, bson.D{{Key: "_id", Value: customerID}}).Decode(&customer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: customer %s", global.ErrNotFound, customerID.Hex())
	}
	if err != nil {
		return err
	}
	if customer.LoyaltyPoints < points {
		return fmt.Errorf("%w: requested %d, balance %d", global.ErrInsufficientPoints, points, customer.LoyaltyPoints)
	}
	// Balance would cover it now, so the CAS lost to a concurrent write.
	// The caller may re-fetch and retry once.
	return global.ErrConcurrencyConflict
}
