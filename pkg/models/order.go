package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type CreateOrderRequest struct {
	CustomerID    bson.ObjectID `json:"customer_id" validate:"required"`
	SessionID     string        `json:"session_id" validate:"required"`
	Currency      string        `json:"currency" validate:"required,oneof=ZAR USD"`
	RedeemPoints  int           `json:"redeem_points" validate:"gte=0"`
	PaymentMethod string        `json:"payment_method" validate:"required,oneof=payfast paypal"`
	Notes         string        `json:"notes"`
}

// OrderItem carries the engine-resolved unit price. AppliedTier records
// which membership price basis won so support can explain a charge.
type OrderItem struct {
	ProductID   string  `json:"product_id" bson:"product_id" validate:"required"`
	Code        string  `json:"code" bson:"code" validate:"required"`
	Name        string  `json:"name" bson:"name" validate:"required"`
	VariantKey  string  `json:"variant_key,omitempty" bson:"variant_key,omitempty"` // ring size
	Material    string  `json:"material,omitempty" bson:"material,omitempty"`
	Quantity    int     `json:"quantity" bson:"quantity" validate:"required,gte=1"`
	UnitPrice   float64 `json:"unit_price" bson:"unit_price" validate:"gte=0"`
	AppliedTier string  `json:"applied_tier" bson:"applied_tier"`
	PromoActive bool    `json:"promo_active" bson:"promo_active"`
	VaultItem   bool    `json:"vault_item" bson:"vault_item"`
	Subtotal    float64 `json:"subtotal" bson:"subtotal" validate:"gte=0"`
}

// OrderTotals is the financial breakdown handed to the payment processor.
type OrderTotals struct {
	Subtotal        float64 `json:"subtotal" bson:"subtotal" validate:"gte=0"`
	LoyaltyDiscount float64 `json:"loyalty_discount" bson:"loyalty_discount" validate:"gte=0"`
	PointsRedeemed  int     `json:"points_redeemed" bson:"points_redeemed" validate:"gte=0"`
	GrandTotal      float64 `json:"grand_total" bson:"grand_total" validate:"gte=0"`
}

// PaymentInitiation records the hand-off to the external processor.
// Capture and confirmation arrive asynchronously and are not modeled here.
type PaymentInitiation struct {
	Processor string  `json:"processor" bson:"processor" validate:"required,oneof=payfast paypal"`
	Amount    float64 `json:"amount" bson:"amount" validate:"gte=0"`
	Currency  string  `json:"currency" bson:"currency" validate:"required,oneof=ZAR USD"`
	Status    string  `json:"status" bson:"status" validate:"required,oneof=initiated completed failed"`
}

type Order struct {
	ID            bson.ObjectID     `json:"id" bson:"_id,omitempty"`
	OrderNumber   string            `json:"order_number" bson:"order_number" validate:"required"`
	CustomerID    bson.ObjectID     `json:"customer_id" bson:"customer_id" validate:"required"`
	Currency      string            `json:"currency" bson:"currency" validate:"required,oneof=ZAR USD"`
	Status        string            `json:"status" bson:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
	Items         []OrderItem       `json:"items" bson:"items" validate:"required,min=1,dive"`
	Totals        OrderTotals       `json:"totals" bson:"totals"`
	Payment       PaymentInitiation `json:"payment" bson:"payment"`
	PointsAccrued int               `json:"points_accrued" bson:"points_accrued" validate:"gte=0"`
	Notes         string            `json:"notes" bson:"notes,omitempty"`
	CreatedAt     time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at" bson:"updated_at"`
}

// CalculateTotals sums item subtotals and applies the loyalty discount.
// The grand total never goes below zero.
func (o *Order) CalculateTotals(loyaltyDiscount float64, pointsRedeemed int) {
	var subtotal float64
	for i := range o.Items {
		o.Items[i].Subtotal = o.Items[i].UnitPrice * float64(o.Items[i].Quantity)
		subtotal += o.Items[i].Subtotal
	}
	o.Totals.Subtotal = subtotal
	o.Totals.LoyaltyDiscount = loyaltyDiscount
	o.Totals.PointsRedeemed = pointsRedeemed
	o.Totals.GrandTotal = subtotal - loyaltyDiscount
	if o.Totals.GrandTotal < 0 {
		o.Totals.GrandTotal = 0
	}
}

func (o *Order) SetTimestamps() {
	now := time.Now()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now
}

// GetItemCount returns the total number of units in the order
func (o *Order) GetItemCount() int {
	var count int
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

func (o *Order) CanBeCancelled() bool {
	return o.Status == "pending" || o.Status == "processing"
}

func GenerateOrderNumber() string {
	now := time.Now()
	return fmt.Sprintf("SPV-%s-%s",
		now.Format("20060102"),
		uuid.NewString()[:8],
	)
}
