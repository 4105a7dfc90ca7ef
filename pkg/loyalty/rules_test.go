package loyalty

import (
	"errors"
	"testing"

	"github.com/spoilme-vintage/store-api/pkg/config"
	"github.com/spoilme-vintage/store-api/pkg/global"
	"github.com/spoilme-vintage/store-api/pkg/models"
)

var cfg = config.Default()

func nonMember() models.MembershipState { return models.MembershipState{} }
func basicMember() models.MembershipState {
	return models.MembershipState{IsMember: true, Tier: models.TierBasic}
}

func TestPurchasePoints(t *testing.T) {
	cases := []struct {
		total    float64
		currency string
		want     int
	}{
		{100, models.CurrencyZAR, 10},
		{99.99, models.CurrencyZAR, 9},
		{9, models.CurrencyZAR, 0},
		{30, models.CurrencyUSD, 10},
		{2.99, models.CurrencyUSD, 0},
		{0, models.CurrencyZAR, 0},
	}
	for _, tc := range cases {
		got, err := PurchasePoints(tc.total, tc.currency, cfg)
		if err != nil {
			t.Fatalf("PurchasePoints(%v, %s): %v", tc.total, tc.currency, err)
		}
		if got != tc.want {
			t.Errorf("PurchasePoints(%v, %s) = %d, want %d", tc.total, tc.currency, got, tc.want)
		}
	}
}

func TestPurchasePointsRejectsBadInput(t *testing.T) {
	if _, err := PurchasePoints(-1, models.CurrencyZAR, cfg); !errors.Is(err, global.ErrInvalidInput) {
		t.Errorf("negative total: got %v", err)
	}
	if _, err := PurchasePoints(100, "GBP", cfg); !errors.Is(err, global.ErrInvalidCurrency) {
		t.Errorf("bad currency: got %v", err)
	}
}

func TestFlatBonuses(t *testing.T) {
	if got := ReviewPoints(cfg); got != 100 {
		t.Errorf("review bonus = %d, want 100", got)
	}
	if got := SharePoints(cfg); got != 50 {
		t.Errorf("share bonus = %d, want 50", got)
	}
}

func TestAccrualReasonsDistinct(t *testing.T) {
	// The ledger filters reversals by reason, so every reason string
	// must stay unique.
	reasons := []string{ReasonPurchase, ReasonReview, ReasonShare, ReasonReversal}
	seen := map[string]bool{}
	for _, r := range reasons {
		if seen[r] {
			t.Errorf("duplicate accrual reason %q", r)
		}
		seen[r] = true
	}
	if ReasonReversal != "redemption_reversal" {
		t.Errorf("reversal reason = %q, want redemption_reversal", ReasonReversal)
	}
}

func TestReviewAwardRequiresVerifiedPurchase(t *testing.T) {
	if got := ReviewAward(true, cfg); got != 100 {
		t.Errorf("verified review award = %d, want 100", got)
	}
	if got := ReviewAward(false, cfg); got != 0 {
		t.Errorf("unverified review award = %d, want 0", got)
	}
}

func TestMaxRedeemableNonMemberCap(t *testing.T) {
	// Non-member with 15000 points requesting everything is clamped to
	// the 10000-point cap.
	got, err := MaxRedeemable(nonMember(), 15000, 15000, cfg)
	if err != nil {
		t.Fatalf("MaxRedeemable: %v", err)
	}
	if got != 10000 {
		t.Errorf("non-member clamp = %d, want 10000", got)
	}

	// Members are limited only by balance.
	got, err = MaxRedeemable(basicMember(), 15000, 15000, cfg)
	if err != nil {
		t.Fatalf("MaxRedeemable: %v", err)
	}
	if got != 15000 {
		t.Errorf("member clamp = %d, want 15000", got)
	}
}

func TestMaxRedeemableWholeBlocks(t *testing.T) {
	got, err := MaxRedeemable(basicMember(), 2500, 2500, cfg)
	if err != nil {
		t.Fatalf("MaxRedeemable: %v", err)
	}
	if got != 2000 {
		t.Errorf("expected rounding down to 2000, got %d", got)
	}

	got, err = MaxRedeemable(basicMember(), 999, 999, cfg)
	if err != nil {
		t.Fatalf("MaxRedeemable: %v", err)
	}
	if got != 0 {
		t.Errorf("sub-block balance should clamp to 0, got %d", got)
	}
}

func TestDiscountFor(t *testing.T) {
	// Scenario: non-member redeeming the capped 10000 points on a ZAR
	// order gets R100.00.
	got, err := DiscountFor(10000, models.CurrencyZAR, cfg)
	if err != nil {
		t.Fatalf("DiscountFor: %v", err)
	}
	if got != 100.00 {
		t.Errorf("ZAR discount = %v, want 100.00", got)
	}

	got, err = DiscountFor(3000, models.CurrencyUSD, cfg)
	if err != nil {
		t.Fatalf("DiscountFor: %v", err)
	}
	if got != 15.00 {
		t.Errorf("USD discount = %v, want 15.00", got)
	}
}

func TestValidateRedemption(t *testing.T) {
	if err := ValidateRedemption(basicMember(), 5000, 3000, cfg); err != nil {
		t.Errorf("valid redemption rejected: %v", err)
	}
	if err := ValidateRedemption(basicMember(), 5000, 1500, cfg); !errors.Is(err, global.ErrInvalidInput) {
		t.Errorf("non-block redemption: got %v", err)
	}
	if err := ValidateRedemption(basicMember(), 2000, 3000, cfg); !errors.Is(err, global.ErrInsufficientPoints) {
		t.Errorf("over-balance redemption: got %v", err)
	}
	if err := ValidateRedemption(nonMember(), 15000, 12000, cfg); !errors.Is(err, global.ErrEntitlementDenied) {
		t.Errorf("over-cap non-member redemption: got %v", err)
	}
	if err := ValidateRedemption(nonMember(), 15000, 12000, cfg); errors.Is(err, global.ErrLimitExceeded) {
		t.Errorf("over-cap non-member redemption misclassified as a hard limit: %v", err)
	}
}
