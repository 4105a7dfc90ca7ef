package pricing

import (
	"testing"
	"time"

	"github.com/spoilme-vintage/store-api/pkg/models"
)

var promoNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func TestPromoInactiveWithoutPrice(t *testing.T) {
	cases := []float64{0, -1, -0.01}
	for _, price := range cases {
		p := &models.Product{
			PromoPrice:    price,
			PromoStartsAt: "2026-01-01T00:00:00Z",
		}
		if IsPromoActive(p, promoNow) {
			t.Errorf("promo price %v should never be active", price)
		}
	}
}

func TestPromoWindowBounds(t *testing.T) {
	cases := []struct {
		name   string
		starts string
		ends   string
		want   bool
	}{
		{"no bounds", "", "", true},
		{"inside window", "2026-08-01T00:00:00Z", "2026-09-01T00:00:00Z", true},
		{"before start", "2026-08-20T00:00:00Z", "", false},
		{"after end", "", "2026-08-10T00:00:00Z", false},
		{"start boundary counts", "2026-08-15T12:00:00Z", "", true},
		{"end boundary excluded", "", "2026-08-15T12:00:00Z", false},
		{"malformed start is open", "next tuesday", "2026-09-01T00:00:00Z", true},
		// A malformed expiry must make the promo open-ended, not inactive.
		{"malformed end is open", "2026-08-01T00:00:00Z", "garbage", true},
		{"both malformed", "??", "??", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &models.Product{
				PromoPrice:     99,
				PromoStartsAt:  tc.starts,
				PromoExpiresAt: tc.ends,
			}
			if got := IsPromoActive(p, promoNow); got != tc.want {
				t.Errorf("IsPromoActive = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPromoNilProduct(t *testing.T) {
	if IsPromoActive(nil, promoNow) {
		t.Error("nil product cannot have an active promo")
	}
}
