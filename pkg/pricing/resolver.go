package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spoilme-vintage/store-api/pkg/config"
	"github.com/spoilme-vintage/store-api/pkg/global"
	"github.com/spoilme-vintage/store-api/pkg/models"
)

// Context is the ephemeral input to one price resolution. It is built per
// request and never persisted or cached across currencies.
type Context struct {
	Product    *models.Product
	Currency   string
	Now        time.Time
	Membership models.MembershipState
	Material   string // selected option modifier, empty for none
}

// Quote is the engine's answer: the single price to charge and why.
type Quote struct {
	UnitPrice     float64  `json:"unit_price"`
	AppliedTier   string   `json:"applied_tier"` // tier whose promo override won, or "none"
	IsPromoActive bool     `json:"is_promo_active"`
	// CompareAtPrice is the RRP for strikethrough display, present only
	// when it exceeds the unit price.
	CompareAtPrice *float64 `json:"compare_at_price,omitempty"`
	// MemberUpsellPrice is what a non-member would pay as a member,
	// shown as a join incentive.
	MemberUpsellPrice float64 `json:"member_upsell_price"`
}

// Resolve computes the price the user actually pays. Precedence, in order:
// tier-specific promo override, then the cheaper of standard member price
// and promo price for members during a promo, then promo price, member
// price, base price. Option modifiers are added after tier resolution and
// the result is clamped at zero.
func Resolve(ctx Context, cfg *config.Engine) (Quote, error) {
	if ctx.Product == nil {
		return Quote{}, fmt.Errorf("%w: product is required", global.ErrInvalidInput)
	}
	if !models.ValidCurrency(ctx.Currency) {
		return Quote{}, fmt.Errorf("%w: %q", global.ErrInvalidCurrency, ctx.Currency)
	}
	if ctx.Product.Price <= 0 {
		return Quote{}, fmt.Errorf("%w: product %s has no base price", global.ErrInvalidInput, ctx.Product.Code)
	}

	p := ctx.Product
	base := basePrice(p, ctx.Currency)
	standardMember := standardMemberPrice(p, ctx.Currency, base, cfg)

	promoActive := IsPromoActive(p, ctx.Now)
	member := ctx.Membership.IsAtLeastBasic()

	unit := base
	appliedTier := models.TierNone

	switch {
	case !promoActive && !member:
		unit = base
	case !promoActive && member:
		unit = standardMember
	case promoActive && !member:
		unit = decimal.NewFromFloat(p.PromoPrice)
	default: // promo active, member
		if override, ok := tierOverride(p, ctx.Membership.Tier); ok {
			unit = override
			appliedTier = ctx.Membership.Tier
		} else {
			// No override configured for this tier: the member still
			// gets whichever of the flat member price and the promo
			// price is cheaper, but no tier badge.
			promo := decimal.NewFromFloat(p.PromoPrice)
			unit = decimal.Min(standardMember, promo)
		}
	}

	if ctx.Material != "" {
		mat := p.MaterialByName(ctx.Material)
		if mat == nil {
			return Quote{}, fmt.Errorf("%w: unknown material %q for product %s", global.ErrInvalidInput, ctx.Material, p.Code)
		}
		unit = unit.Add(decimal.NewFromFloat(mat.Modifier))
	}
	if unit.IsNegative() {
		unit = decimal.Zero
	}

	quote := Quote{
		UnitPrice:     round2(unit),
		AppliedTier:   appliedTier,
		IsPromoActive: promoActive,
	}

	// The RRP deliberately does not fall back USD->ZAR: an unset USD
	// compare-at price means no RRP is shown in USD. Do not "fix" this
	// without a product decision.
	if rrp := compareAtPrice(p, ctx.Currency); rrp > quote.UnitPrice {
		quote.CompareAtPrice = &rrp
	}

	if promoActive && p.PromoBasicMemberPrice > 0 {
		quote.MemberUpsellPrice = round2(decimal.NewFromFloat(p.PromoBasicMemberPrice))
	} else {
		quote.MemberUpsellPrice = round2(standardMember)
	}

	return quote, nil
}

// basePrice resolves the currency base price. USD falls back to the ZAR
// value when no USD price is configured.
func basePrice(p *models.Product, currency string) decimal.Decimal {
	if currency == models.CurrencyUSD && p.PriceUSD > 0 {
		return decimal.NewFromFloat(p.PriceUSD)
	}
	return decimal.NewFromFloat(p.Price)
}

// standardMemberPrice resolves the flat member price, defaulting to the
// configured ratio of base (80%) when unset for the currency.
func standardMemberPrice(p *models.Product, currency string, base decimal.Decimal, cfg *config.Engine) decimal.Decimal {
	if currency == models.CurrencyUSD {
		if p.MemberPriceUSD > 0 {
			return decimal.NewFromFloat(p.MemberPriceUSD)
		}
	} else if p.MemberPrice > 0 {
		return decimal.NewFromFloat(p.MemberPrice)
	}
	return base.Mul(decimal.NewFromFloat(cfg.MemberPriceRatio))
}

func tierOverride(p *models.Product, tier string) (decimal.Decimal, bool) {
	var price float64
	switch tier {
	case models.TierBasic:
		price = p.PromoBasicMemberPrice
	case models.TierPremium:
		price = p.PromoPremiumMemberPrice
	case models.TierDeluxe:
		price = p.PromoDeluxeMemberPrice
	}
	if price > 0 {
		return decimal.NewFromFloat(price), true
	}
	return decimal.Decimal{}, false
}

func compareAtPrice(p *models.Product, currency string) float64 {
	if currency == models.CurrencyUSD {
		return round2(decimal.NewFromFloat(p.CompareAtPriceUSD))
	}
	return round2(decimal.NewFromFloat(p.CompareAtPrice))
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
