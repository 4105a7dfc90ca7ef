package pricing

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/spoilme-vintage/store-api/pkg/config"
	"github.com/spoilme-vintage/store-api/pkg/global"
	"github.com/spoilme-vintage/store-api/pkg/models"
)

var resolveNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func member(tier string) models.MembershipState {
	return models.MembershipState{IsMember: true, Tier: tier}
}

func resolve(t *testing.T, ctx Context) Quote {
	t.Helper()
	ctx.Now = resolveNow
	quote, err := Resolve(ctx, config.Default())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	return quote
}

func TestDeluxeMemberDefaultDiscount(t *testing.T) {
	// basePrice(ZAR)=1000, no promo, deluxe member, member price unset
	// -> 80% default, no tier badge.
	p := &models.Product{Code: "SPV-001", Price: 1000}
	quote := resolve(t, Context{Product: p, Currency: models.CurrencyZAR, Membership: member(models.TierDeluxe)})
	if quote.UnitPrice != 800.00 {
		t.Errorf("unit price = %v, want 800.00", quote.UnitPrice)
	}
	if quote.AppliedTier != models.TierNone {
		t.Errorf("applied tier = %q, want none", quote.AppliedTier)
	}
	if quote.IsPromoActive {
		t.Error("no promo should be active")
	}
}

func TestDeluxePromoOverrideWins(t *testing.T) {
	p := &models.Product{
		Code:                   "SPV-002",
		Price:                  1000,
		PromoPrice:             700,
		PromoDeluxeMemberPrice: 600,
	}
	quote := resolve(t, Context{Product: p, Currency: models.CurrencyZAR, Membership: member(models.TierDeluxe)})
	if quote.UnitPrice != 600.00 {
		t.Errorf("unit price = %v, want 600.00", quote.UnitPrice)
	}
	if quote.AppliedTier != models.TierDeluxe {
		t.Errorf("applied tier = %q, want deluxe", quote.AppliedTier)
	}
}

func TestNonMemberGetsPromoPrice(t *testing.T) {
	p := &models.Product{
		Code:                   "SPV-002",
		Price:                  1000,
		PromoPrice:             700,
		PromoDeluxeMemberPrice: 600,
	}
	quote := resolve(t, Context{Product: p, Currency: models.CurrencyZAR})
	if quote.UnitPrice != 700.00 {
		t.Errorf("unit price = %v, want 700.00", quote.UnitPrice)
	}
	if quote.AppliedTier != models.TierNone {
		t.Errorf("applied tier = %q, want none", quote.AppliedTier)
	}
	if !quote.IsPromoActive {
		t.Error("promo should be active")
	}
}

func TestMemberWithoutOverrideNeverWorseThanMemberPrice(t *testing.T) {
	cases := []struct {
		name       string
		promoPrice float64
		want       float64
	}{
		// promo cheaper than the 80% member price
		{"promo cheaper", 700, 700},
		// member price cheaper than the promo
		{"member price cheaper", 900, 800},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &models.Product{Code: "SPV-003", Price: 1000, PromoPrice: tc.promoPrice}
			quote := resolve(t, Context{Product: p, Currency: models.CurrencyZAR, Membership: member(models.TierPremium)})
			if quote.UnitPrice != tc.want {
				t.Errorf("unit price = %v, want %v", quote.UnitPrice, tc.want)
			}
			if quote.UnitPrice > 800 {
				t.Errorf("member paid %v, worse than the flat member price 800", quote.UnitPrice)
			}
			if quote.AppliedTier != models.TierNone {
				t.Errorf("no tier badge expected without an override, got %q", quote.AppliedTier)
			}
		})
	}
}

func TestTierOverrideOnlyForOwnTier(t *testing.T) {
	p := &models.Product{
		Code:                  "SPV-004",
		Price:                 1000,
		PromoPrice:            700,
		PromoBasicMemberPrice: 650,
	}
	// Premium member has no premium override: falls back to
	// min(member price, promo price), not the basic override.
	quote := resolve(t, Context{Product: p, Currency: models.CurrencyZAR, Membership: member(models.TierPremium)})
	if quote.UnitPrice != 700.00 {
		t.Errorf("unit price = %v, want 700.00", quote.UnitPrice)
	}
	if quote.AppliedTier != models.TierNone {
		t.Errorf("applied tier = %q, want none", quote.AppliedTier)
	}
}

func TestUSDBaseFallsBackCompareAtDoesNot(t *testing.T) {
	p := &models.Product{
		Code:           "SPV-005",
		Price:          1000,
		CompareAtPrice: 1500,
		// No USD price, no USD compare-at.
	}
	quote := resolve(t, Context{Product: p, Currency: models.CurrencyUSD})
	if quote.UnitPrice != 1000.00 {
		t.Errorf("USD base should fall back to ZAR value, got %v", quote.UnitPrice)
	}
	if quote.CompareAtPrice != nil {
		t.Errorf("USD compare-at must not fall back to ZAR, got %v", *quote.CompareAtPrice)
	}

	p.PriceUSD = 60
	p.CompareAtPriceUSD = 90
	quote = resolve(t, Context{Product: p, Currency: models.CurrencyUSD})
	if quote.UnitPrice != 60.00 {
		t.Errorf("USD unit price = %v, want 60.00", quote.UnitPrice)
	}
	if quote.CompareAtPrice == nil || *quote.CompareAtPrice != 90.00 {
		t.Errorf("USD compare-at = %v, want 90.00", quote.CompareAtPrice)
	}
}

func TestCompareAtOmittedWhenNotHigher(t *testing.T) {
	p := &models.Product{Code: "SPV-006", Price: 1000, CompareAtPrice: 1000}
	quote := resolve(t, Context{Product: p, Currency: models.CurrencyZAR})
	if quote.CompareAtPrice != nil {
		t.Errorf("compare-at equal to unit price should be omitted, got %v", *quote.CompareAtPrice)
	}
}

func TestMaterialModifierAppliedAfterTierLogic(t *testing.T) {
	p := &models.Product{
		Code:      "SPV-007",
		Price:     29,
		Materials: []models.Material{{Name: "Sterling Silver", Modifier: 30}},
	}
	quote := resolve(t, Context{
		Product:    p,
		Currency:   models.CurrencyZAR,
		Membership: member(models.TierBasic),
		Material:   "Sterling Silver",
	})
	// 80% of 29 = 23.20, plus the 30 modifier.
	if quote.UnitPrice != 53.20 {
		t.Errorf("unit price = %v, want 53.20", quote.UnitPrice)
	}
}

func TestNegativePriceClampsToZero(t *testing.T) {
	p := &models.Product{
		Code:       "SPV-008",
		Price:      10,
		PromoPrice: 5,
		Materials:  []models.Material{{Name: "Discount Chain", Modifier: -20}},
	}
	quote := resolve(t, Context{Product: p, Currency: models.CurrencyZAR, Material: "Discount Chain"})
	if quote.UnitPrice != 0 {
		t.Errorf("unit price = %v, want clamp to 0", quote.UnitPrice)
	}
}

func TestUnknownMaterialRejected(t *testing.T) {
	p := &models.Product{Code: "SPV-009", Price: 100}
	_, err := Resolve(Context{Product: p, Currency: models.CurrencyZAR, Now: resolveNow, Material: "Platinum"}, config.Default())
	if !errors.Is(err, global.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestInvalidCurrencyRejected(t *testing.T) {
	p := &models.Product{Code: "SPV-010", Price: 100}
	_, err := Resolve(Context{Product: p, Currency: "EUR", Now: resolveNow}, config.Default())
	if !errors.Is(err, global.ErrInvalidCurrency) {
		t.Errorf("expected ErrInvalidCurrency, got %v", err)
	}
}

func TestMemberUpsellPrice(t *testing.T) {
	// During a promo with a basic override, non-members see that override
	// as the join incentive; otherwise the flat member price.
	withOverride := &models.Product{Code: "SPV-011", Price: 1000, PromoPrice: 700, PromoBasicMemberPrice: 650}
	quote := resolve(t, Context{Product: withOverride, Currency: models.CurrencyZAR})
	if quote.MemberUpsellPrice != 650.00 {
		t.Errorf("upsell = %v, want 650.00", quote.MemberUpsellPrice)
	}

	plain := &models.Product{Code: "SPV-012", Price: 1000}
	quote = resolve(t, Context{Product: plain, Currency: models.CurrencyZAR})
	if quote.MemberUpsellPrice != 800.00 {
		t.Errorf("upsell = %v, want 800.00", quote.MemberUpsellPrice)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	p := &models.Product{
		Code:                   "SPV-013",
		Price:                  1000,
		CompareAtPrice:         1500,
		PromoPrice:             700,
		PromoDeluxeMemberPrice: 600,
		PromoStartsAt:          "2026-08-01T00:00:00Z",
		PromoExpiresAt:         "2026-09-01T00:00:00Z",
	}
	ctx := Context{Product: p, Currency: models.CurrencyZAR, Now: resolveNow, Membership: member(models.TierDeluxe)}
	first, err := Resolve(ctx, config.Default())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	second, err := Resolve(ctx, config.Default())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical contexts produced different quotes: %+v vs %+v", first, second)
	}
}
