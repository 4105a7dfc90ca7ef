package pricing

import (
	"time"

	"github.com/spoilme-vintage/store-api/pkg/models"
)

// IsPromoActive reports whether the product's promotional price applies at
// the given moment. A promo price of zero or less is never active. Each
// window bound is optional, and a bound that fails to parse is treated as
// absent rather than killing the promo — an unparseable expiry leaves the
// promo open-ended. That lenience matches how the storefront has always
// behaved and admin-entered dates depend on it.
func IsPromoActive(p *models.Product, now time.Time) bool {
	if p == nil || p.PromoPrice <= 0 {
		return false
	}

	if start, ok := parseBound(p.PromoStartsAt); ok && start.After(now) {
		return false
	}
	if end, ok := parseBound(p.PromoExpiresAt); ok && !end.After(now) {
		return false
	}
	return true
}

// parseBound parses an RFC3339 promo bound. ok is false for an empty or
// malformed value, meaning the bound is open.
func parseBound(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
