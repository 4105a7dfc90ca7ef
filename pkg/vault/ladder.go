package vault

import (
	"fmt"

	"github.com/spoilme-vintage/store-api/pkg/config"
	"github.com/spoilme-vintage/store-api/pkg/global"
	"github.com/spoilme-vintage/store-api/pkg/models"
)

// Decision is the ladder's answer to a purchase check.
type Decision struct {
	Allowed   bool `json:"allowed"`
	Cap       int  `json:"cap"`
	Remaining int  `json:"remaining"`
	// Unlimited marks the sentinel cap so the UI can say "unlimited"
	// instead of printing the sentinel number.
	Unlimited bool `json:"unlimited"`
}

// CapFor returns the monthly purchase cap for a member with the given
// count of consecutive membership months. The top rung is a large finite
// sentinel rather than literal infinity so reporting stays finite.
func CapFor(membershipMonths int, cfg *config.Engine) int {
	switch {
	case membershipMonths >= cfg.VaultUnlimitedMonths:
		return cfg.VaultUnlimitedCap
	case membershipMonths >= cfg.VaultEstablishedMonths:
		return cfg.VaultCapEstablished
	default:
		return cfg.VaultCapNew
	}
}

// Check gates a vault purchase. Non-deluxe users are denied outright —
// the caller shows an upsell, not a "limit reached" message — before any
// cap arithmetic. A lapsed deluxe membership counts as non-deluxe.
func Check(membership models.MembershipState, purchasesThisMonth int, cfg *config.Engine) (Decision, error) {
	if purchasesThisMonth < 0 {
		return Decision{}, fmt.Errorf("%w: negative purchase count", global.ErrInvalidInput)
	}
	if !membership.IsDeluxe() {
		return Decision{}, fmt.Errorf("%w: vault access requires an active deluxe membership", global.ErrEntitlementDenied)
	}

	cap := CapFor(membership.MembershipMonths, cfg)
	remaining := cap - purchasesThisMonth
	if remaining <= 0 {
		return Decision{Allowed: false, Cap: cap, Remaining: 0, Unlimited: cap == cfg.VaultUnlimitedCap},
			fmt.Errorf("%w: monthly vault limit of %d reached", global.ErrLimitExceeded, cap)
	}
	return Decision{
		Allowed:   true,
		Cap:       cap,
		Remaining: remaining,
		Unlimited: cap == cfg.VaultUnlimitedCap,
	}, nil
}
