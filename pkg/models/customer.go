package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/spoilme-vintage/store-api/pkg/config"
)

// Membership tiers, in ascending order of entitlement.
const (
	TierNone    = "none"
	TierBasic   = "basic"
	TierPremium = "premium"
	TierDeluxe  = "deluxe"
)

func ValidTier(tier string) bool {
	switch tier {
	case TierNone, TierBasic, TierPremium, TierDeluxe:
		return true
	}
	return false
}

// MembershipState is the entitlement snapshot the pricing and vault engines
// consume. MembershipMonths counts consecutive non-lapsed billing months and
// only drives the vault ladder.
type MembershipState struct {
	IsMember         bool       `bson:"is_member" json:"is_member"`
	Tier             string     `bson:"tier" json:"tier" validate:"oneof=none basic premium deluxe"`
	MembershipMonths int        `bson:"membership_months" json:"membership_months" validate:"gte=0"`
	LapsedAt         *time.Time `bson:"lapsed_at,omitempty" json:"lapsed_at,omitempty"`
}

// IsAtLeastBasic reports whether the user holds any paid tier.
func (m *MembershipState) IsAtLeastBasic() bool {
	return m.IsMember && m.Tier != TierNone && m.Tier != ""
}

func (m *MembershipState) IsDeluxe() bool {
	return m.IsMember && m.Tier == TierDeluxe
}

// RecordRenewal applies a successful renewal billing event. A renewal inside
// the configured grace window heals a pending lapse without resetting the
// month counter; otherwise a recorded lapse resets it first.
func (m *MembershipState) RecordRenewal(cfg *config.Engine, now time.Time) {
	if m.LapsedAt != nil {
		if cfg.LapsePolicy == config.LapseImmediate ||
			now.Sub(*m.LapsedAt) > time.Duration(cfg.LapseGraceDays)*24*time.Hour {
			m.MembershipMonths = 0
		}
		m.LapsedAt = nil
	}
	m.IsMember = true
	m.MembershipMonths++
}

// RecordLapse marks a missed billing cycle or cancellation. Under the
// immediate policy the ladder counter resets on the spot; under the grace
// policy the reset is deferred to the next renewal decision.
func (m *MembershipState) RecordLapse(cfg *config.Engine, now time.Time) {
	m.IsMember = false
	if cfg.LapsePolicy == config.LapseImmediate {
		m.MembershipMonths = 0
	}
	t := now
	m.LapsedAt = &t
}

// Customer represents a storefront account, carrying the membership and
// loyalty state the engine reads.
type Customer struct {
	ID            bson.ObjectID   `bson:"_id,omitempty" json:"id"`
	Email         string          `bson:"email" json:"email" validate:"required,email"`
	Password      string          `bson:"password" json:"-" validate:"required,min=6"` // Never expose in JSON
	FirstName     string          `bson:"first_name" json:"first_name" validate:"required,min=2,max=50"`
	LastName      string          `bson:"last_name" json:"last_name" validate:"required,min=2,max=50"`
	Phone         string          `bson:"phone,omitempty" json:"phone,omitempty" validate:"max=20"`
	Currency      string          `bson:"currency" json:"currency" validate:"oneof=ZAR USD"`
	Membership    MembershipState `bson:"membership" json:"membership"`
	LoyaltyPoints int             `bson:"loyalty_points" json:"loyalty_points" validate:"gte=0"`
	AccountStatus string          `bson:"account_status" json:"account_status" validate:"required,oneof=active inactive suspended deleted"`
	TotalOrders   int             `bson:"total_orders" json:"total_orders" validate:"gte=0"`
	TotalSpent    float64         `bson:"total_spent" json:"total_spent" validate:"gte=0"`
	LastOrderDate time.Time       `bson:"last_order_date,omitempty" json:"last_order_date,omitempty"`
	CreatedAt     time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `bson:"updated_at" json:"updated_at"`
}

type CreateCustomerRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required,min=2,max=50"`
	LastName  string `json:"last_name" validate:"required,min=2,max=50"`
	Phone     string `json:"phone" validate:"max=20"`
	Currency  string `json:"currency" validate:"omitempty,oneof=ZAR USD"`
}

// SetTimestamps sets created_at on first call and always updates updated_at
func (c *Customer) SetTimestamps() {
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

// GetFullName returns the customer's full name
func (c *Customer) GetFullName() string {
	return c.FirstName + " " + c.LastName
}

func (c *Customer) IsActive() bool {
	return c.AccountStatus == "active"
}

// UpdateOrderStats updates the customer's order statistics
func (c *Customer) UpdateOrderStats(orderAmount float64) {
	c.TotalOrders++
	c.TotalSpent += orderAmount
	c.LastOrderDate = time.Now()
	c.UpdatedAt = time.Now()
}
