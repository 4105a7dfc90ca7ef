package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Material is a product option that adds a flat currency delta to the
// resolved price, e.g. a sterling silver upgrade on stud earrings.
type Material struct {
	Name        string  `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Modifier    float64 `json:"modifier" bson:"modifier" validate:"gte=0"`
	Description string  `json:"description" bson:"description" validate:"max=200"`
}

// RingStock maps a ring size label ("5", "6.5") to available quantity.
type RingStock map[string]int

// Product represents a jewelry catalog item.
//
// Prices are stored per currency: ZAR is mandatory, USD optional. Base price
// resolution falls back USD->ZAR, the compare-at (RRP) price deliberately
// does not. Promo prices of zero or less mean "no promo".
type Product struct {
	ID          bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Code        string        `json:"code" bson:"code" validate:"required,min=3,max=50"` // SPV-00X
	Name        string        `json:"name" bson:"name" validate:"required,min=2,max=200"`
	Slug        string        `json:"slug" bson:"slug" validate:"required,min=2,max=200"`
	Description string        `json:"description" bson:"description" validate:"max=2000"`
	Category    string        `json:"category" bson:"category" validate:"required,min=2,max=100"`
	Type        string        `json:"type" bson:"type" validate:"required,oneof=Ring Stud Dangle Pendant Bracelet Watch 'Jewelry Box' 'Perfume Holder' Other"`
	Status      string        `json:"status" bson:"status" validate:"required,oneof=published draft"`
	Images      []string      `json:"images" bson:"images"`
	Tags        []string      `json:"tags" bson:"tags" validate:"dive,min=2,max=50"`

	// Pricing
	Price             float64 `json:"price" bson:"price" validate:"required,gt=0"` // ZAR
	PriceUSD          float64 `json:"price_usd,omitempty" bson:"price_usd,omitempty" validate:"gte=0"`
	CompareAtPrice    float64 `json:"compare_at_price,omitempty" bson:"compare_at_price,omitempty" validate:"gte=0"`
	CompareAtPriceUSD float64 `json:"compare_at_price_usd,omitempty" bson:"compare_at_price_usd,omitempty" validate:"gte=0"`
	MemberPrice       float64 `json:"member_price,omitempty" bson:"member_price,omitempty" validate:"gte=0"`
	MemberPriceUSD    float64 `json:"member_price_usd,omitempty" bson:"member_price_usd,omitempty" validate:"gte=0"`

	// Promo window. Bounds are RFC3339 strings; an absent or malformed
	// bound leaves that side of the window open.
	PromoPrice     float64 `json:"promo_price,omitempty" bson:"promo_price,omitempty"`
	PromoStartsAt  string  `json:"promo_starts_at,omitempty" bson:"promo_starts_at,omitempty"`
	PromoExpiresAt string  `json:"promo_expires_at,omitempty" bson:"promo_expires_at,omitempty"`

	// Tier-specific promo overrides, applied only while the promo is active.
	PromoBasicMemberPrice   float64 `json:"promo_basic_member_price,omitempty" bson:"promo_basic_member_price,omitempty"`
	PromoPremiumMemberPrice float64 `json:"promo_premium_member_price,omitempty" bson:"promo_premium_member_price,omitempty"`
	PromoDeluxeMemberPrice  float64 `json:"promo_deluxe_member_price,omitempty" bson:"promo_deluxe_member_price,omitempty"`

	// Inventory
	Stock     int       `json:"stock" bson:"stock" validate:"gte=0"`
	RingStock RingStock `json:"ring_stock,omitempty" bson:"ring_stock,omitempty"`
	SoldOut   bool      `json:"sold_out" bson:"sold_out"` // admin override, wins over counts
	SoldCount int       `json:"sold_count" bson:"sold_count" validate:"gte=0"`

	// Options
	Materials []Material `json:"materials,omitempty" bson:"materials,omitempty" validate:"dive"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// IsRing reports whether stock is tracked per ring size.
func (p *Product) IsRing() bool {
	return p.Type == "Ring" && p.RingStock != nil
}

// HasPromoPrice reports whether a promo price is configured at all;
// window evaluation is the pricing package's job.
func (p *Product) HasPromoPrice() bool {
	return p.PromoPrice > 0
}

// MaterialByName returns the named option modifier, or nil.
func (p *Product) MaterialByName(name string) *Material {
	for i := range p.Materials {
		if p.Materials[i].Name == name {
			return &p.Materials[i]
		}
	}
	return nil
}

// TotalStock returns the scalar stock, or the sum across ring sizes.
func (p *Product) TotalStock() int {
	if p.IsRing() {
		total := 0
		for _, qty := range p.RingStock {
			total += qty
		}
		return total
	}
	return p.Stock
}

func (p *Product) IsPublished() bool {
	return p.Status == "published"
}

func (p *Product) SetTimestamps() {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

type CreateProductRequest struct {
	Name              string     `json:"name" validate:"required,min=2,max=200"`
	Description       string     `json:"description" validate:"max=2000"`
	Category          string     `json:"category" validate:"required,min=2,max=100"`
	Type              string     `json:"type" validate:"required"`
	Price             float64    `json:"price" validate:"required,gt=0"`
	PriceUSD          float64    `json:"price_usd" validate:"gte=0"`
	CompareAtPrice    float64    `json:"compare_at_price" validate:"gte=0"`
	CompareAtPriceUSD float64    `json:"compare_at_price_usd" validate:"gte=0"`
	MemberPrice       float64    `json:"member_price" validate:"gte=0"`
	MemberPriceUSD    float64    `json:"member_price_usd" validate:"gte=0"`
	Stock             int        `json:"stock" validate:"gte=0"`
	RingStock         RingStock  `json:"ring_stock"`
	Materials         []Material `json:"materials"`
	Images            []string   `json:"images"`
	Tags              []string   `json:"tags" validate:"dive,min=2,max=50"`
}

// GenerateCode produces the next SPV product code from a sequence value.
func GenerateCode(seq int64) string {
	return fmt.Sprintf("SPV-%03d", seq)
}

// GenerateSlug derives a URL slug from the product name.
func GenerateSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, slug)
}

func (req *CreateProductRequest) ToProduct(seq int64) *Product {
	now := time.Now()
	product := &Product{
		ID:                bson.NewObjectID(),
		Code:              GenerateCode(seq),
		Name:              req.Name,
		Slug:              GenerateSlug(req.Name),
		Description:       req.Description,
		Category:          req.Category,
		Type:              req.Type,
		Status:            "draft",
		Price:             req.Price,
		PriceUSD:          req.PriceUSD,
		CompareAtPrice:    req.CompareAtPrice,
		CompareAtPriceUSD: req.CompareAtPriceUSD,
		MemberPrice:       req.MemberPrice,
		MemberPriceUSD:    req.MemberPriceUSD,
		Stock:             req.Stock,
		RingStock:         req.RingStock,
		Materials:         req.Materials,
		Images:            req.Images,
		Tags:              req.Tags,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if product.Tags == nil {
		product.Tags = []string{}
	}
	return product
}
