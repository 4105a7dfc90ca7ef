package vault

import (
	"errors"
	"testing"

	"github.com/spoilme-vintage/store-api/pkg/config"
	"github.com/spoilme-vintage/store-api/pkg/global"
	"github.com/spoilme-vintage/store-api/pkg/models"
)

var cfg = config.Default()

func deluxe(months int) models.MembershipState {
	return models.MembershipState{IsMember: true, Tier: models.TierDeluxe, MembershipMonths: months}
}

func TestCapLadder(t *testing.T) {
	cases := []struct {
		months int
		want   int
	}{
		{0, 5},
		{1, 7},
		{2, 7},
		{3, cfg.VaultUnlimitedCap},
		{12, cfg.VaultUnlimitedCap},
	}
	for _, tc := range cases {
		if got := CapFor(tc.months, cfg); got != tc.want {
			t.Errorf("CapFor(%d) = %d, want %d", tc.months, got, tc.want)
		}
	}
}

func TestNonDeluxeDeniedOutright(t *testing.T) {
	cases := []models.MembershipState{
		{},
		{IsMember: true, Tier: models.TierBasic},
		{IsMember: true, Tier: models.TierPremium},
		{IsMember: false, Tier: models.TierDeluxe}, // lapsed
	}
	for _, m := range cases {
		_, err := Check(m, 0, cfg)
		if !errors.Is(err, global.ErrEntitlementDenied) {
			t.Errorf("membership %+v: expected ErrEntitlementDenied, got %v", m, err)
		}
		// It must specifically not read as a limit problem.
		if errors.Is(err, global.ErrLimitExceeded) {
			t.Errorf("membership %+v: denial must not be a limit error", m)
		}
	}
}

func TestNewMemberSixthPurchaseDenied(t *testing.T) {
	// membershipMonths = 0: five purchases fit, the sixth is denied.
	for count := 0; count < 5; count++ {
		decision, err := Check(deluxe(0), count, cfg)
		if err != nil {
			t.Fatalf("purchase %d: %v", count+1, err)
		}
		if decision.Remaining != 5-count {
			t.Errorf("purchase %d: remaining = %d, want %d", count+1, decision.Remaining, 5-count)
		}
	}
	decision, err := Check(deluxe(0), 5, cfg)
	if !errors.Is(err, global.ErrLimitExceeded) {
		t.Fatalf("sixth attempt: expected ErrLimitExceeded, got %v", err)
	}
	if decision.Remaining != 0 {
		t.Errorf("sixth attempt: remaining = %d, want 0", decision.Remaining)
	}
}

func TestEstablishedMemberEighthPurchaseDenied(t *testing.T) {
	// membershipMonths = 1, seven purchases made: the eighth attempt is
	// denied with remaining 0.
	decision, err := Check(deluxe(1), 7, cfg)
	if !errors.Is(err, global.ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}
	if decision.Remaining != 0 {
		t.Errorf("remaining = %d, want 0", decision.Remaining)
	}
	if decision.Cap != 7 {
		t.Errorf("cap = %d, want 7", decision.Cap)
	}
}

func TestUnlimitedTierAllowsManyPurchases(t *testing.T) {
	// membershipMonths >= 3: at least 50 purchases in one month.
	for count := 0; count < 50; count++ {
		decision, err := Check(deluxe(3), count, cfg)
		if err != nil {
			t.Fatalf("purchase %d: %v", count+1, err)
		}
		if !decision.Unlimited {
			t.Fatalf("purchase %d: expected unlimited rung", count+1)
		}
	}
}

func TestNegativeCountRejected(t *testing.T) {
	if _, err := Check(deluxe(0), -1, cfg); !errors.Is(err, global.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
