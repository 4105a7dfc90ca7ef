package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type LoyaltySegment struct {
	Segment          string  `json:"segment" bson:"_id"`
	MinPoints        int     `json:"min_points" bson:"min_points"`
	MaxPoints        int     `json:"max_points" bson:"max_points"`
	CustomerCount    int     `json:"customer_count" bson:"count"`
	AvgOrders        float64 `json:"avg_orders" bson:"avg_orders"`
	TotalPoints      int     `json:"total_points" bson:"total_points"`
	AvgSpentCustomer float64 `json:"avg_spent_per_customer" bson:"avg_spent_per_customer"`
}

type LoyaltySegmentsResult struct {
	Segments       []LoyaltySegment `json:"segments"`
	TotalCustomers int              `json:"total_customers"`
}

// GetLoyaltySegments buckets customers by outstanding loyalty balance.
// The 1000 boundary marks the first redeemable block; 10000 is the
// non-member redemption cap.
func GetLoyaltySegments(ctx context.Context) (*LoyaltySegmentsResult, error) {
	collection := GetCollection("customers")

	pipeline := bson.A{
		bson.D{
			{Key: "$bucket", Value: bson.D{
				{Key: "groupBy", Value: "$loyalty_points"},
				{Key: "boundaries", Value: bson.A{0, 1000, 5000, 10000, 50000}},
				{Key: "default", Value: "50000+"},
				{Key: "output", Value: bson.D{
					{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
					{Key: "avg_orders", Value: bson.D{{Key: "$avg", Value: "$total_orders"}}},
					{Key: "total_points", Value: bson.D{{Key: "$sum", Value: "$loyalty_points"}}},
					{Key: "avg_spent_per_customer", Value: bson.D{{Key: "$avg", Value: "$total_spent"}}},
					{Key: "min_points", Value: bson.D{{Key: "$min", Value: "$loyalty_points"}}},
					{Key: "max_points", Value: bson.D{{Key: "$max", Value: "$loyalty_points"}}},
				}},
			}},
		},
		bson.D{
			{Key: "$addFields", Value: bson.D{
				{Key: "segment", Value: bson.D{
					{Key: "$switch", Value: bson.D{
						{Key: "branches", Value: bson.A{
							bson.D{
								{Key: "case", Value: bson.D{{Key: "$eq", Value: bson.A{"$_id", 0}}}},
								{Key: "then", Value: "Below first block (0-1000)"},
							},
							bson.D{
								{Key: "case", Value: bson.D{{Key: "$eq", Value: bson.A{"$_id", 1000}}}},
								{Key: "then", Value: "Redeemable (1000-5000)"},
							},
							bson.D{
								{Key: "case", Value: bson.D{{Key: "$eq", Value: bson.A{"$_id", 5000}}}},
								{Key: "then", Value: "Accumulating (5000-10000)"},
							},
							bson.D{
								{Key: "case", Value: bson.D{{Key: "$eq", Value: bson.A{"$_id", 10000}}}},
								{Key: "then", Value: "Above non-member cap (10000-50000)"},
							},
						}},
						{Key: "default", Value: "Power saver (50000+)"},
					}},
				}},
			}},
		},
		bson.D{
			{Key: "$project", Value: bson.D{
				{Key: "_id", Value: "$segment"},
				{Key: "min_points", Value: 1},
				{Key: "max_points", Value: 1},
				{Key: "count", Value: 1},
				{Key: "total_points", Value: 1},
				{Key: "avg_orders", Value: bson.D{{Key: "$round", Value: bson.A{"$avg_orders", 2}}}},
				{Key: "avg_spent_per_customer", Value: bson.D{{Key: "$round", Value: bson.A{"$avg_spent_per_customer", 2}}}},
			}},
		},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var segments []LoyaltySegment
	if err := cursor.All(ctx, &segments); err != nil {
		return nil, err
	}

	totalCustomers := 0
	for _, segment := range segments {
		totalCustomers += segment.CustomerCount
	}

	return &LoyaltySegmentsResult{
		Segments:       segments,
		TotalCustomers: totalCustomers,
	}, nil
}

type VaultMonthUsage struct {
	MonthKey       string  `json:"month_key" bson:"_id"`
	Buyers         int     `json:"buyers" bson:"buyers"`
	TotalPurchases int     `json:"total_purchases" bson:"total_purchases"`
	AvgPerBuyer    float64 `json:"avg_per_buyer" bson:"avg_per_buyer"`
	MaxPerBuyer    int     `json:"max_per_buyer" bson:"max_per_buyer"`
}

// GetVaultUsageByMonth rolls the vault ledger up per calendar month so
// staff can see how hard the ladder caps are being pushed.
func GetVaultUsageByMonth(ctx context.Context) ([]VaultMonthUsage, error) {
	collection := GetCollection("vault_ledger")

	pipeline := bson.A{
		bson.D{
			{Key: "$group", Value: bson.D{
				{Key: "_id", Value: "$month_key"},
				{Key: "buyers", Value: bson.D{{Key: "$sum", Value: 1}}},
				{Key: "total_purchases", Value: bson.D{{Key: "$sum", Value: "$count"}}},
				{Key: "avg_per_buyer", Value: bson.D{{Key: "$avg", Value: "$count"}}},
				{Key: "max_per_buyer", Value: bson.D{{Key: "$max", Value: "$count"}}},
			}},
		},
		bson.D{
			{Key: "$addFields", Value: bson.D{
				{Key: "avg_per_buyer", Value: bson.D{{Key: "$round", Value: bson.A{"$avg_per_buyer", 2}}}},
			}},
		},
		bson.D{
			{Key: "$sort", Value: bson.D{{Key: "_id", Value: -1}}},
		},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var usage []VaultMonthUsage
	if err := cursor.All(ctx, &usage); err != nil {
		return nil, err
	}
	return usage, nil
}

type TierBreakdown struct {
	Tier          string  `json:"tier" bson:"_id"`
	CustomerCount int     `json:"customer_count" bson:"count"`
	AvgMonths     float64 `json:"avg_membership_months" bson:"avg_months"`
	AvgPoints     float64 `json:"avg_loyalty_points" bson:"avg_points"`
}

// GetMembershipTierBreakdown groups active members by tier.
func GetMembershipTierBreakdown(ctx context.Context) ([]TierBreakdown, error) {
	collection := GetCollection("customers")

	pipeline := bson.A{
		bson.D{
			{Key: "$match", Value: bson.D{{Key: "membership.is_member", Value: true}}},
		},
		bson.D{
			{Key: "$group", Value: bson.D{
				{Key: "_id", Value: "$membership.tier"},
				{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
				{Key: "avg_months", Value: bson.D{{Key: "$avg", Value: "$membership.membership_months"}}},
				{Key: "avg_points", Value: bson.D{{Key: "$avg", Value: "$loyalty_points"}}},
			}},
		},
		bson.D{
			{Key: "$addFields", Value: bson.D{
				{Key: "avg_months", Value: bson.D{{Key: "$round", Value: bson.A{"$avg_months", 2}}}},
				{Key: "avg_points", Value: bson.D{{Key: "$round", Value: bson.A{"$avg_points", 2}}}},
			}},
		},
		bson.D{
			{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}},
		},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var breakdown []TierBreakdown
	if err := cursor.All(ctx, &breakdown); err != nil {
		return nil, err
	}
	return breakdown, nil
}
