package loyalty

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/spoilme-vintage/store-api/pkg/config"
	"github.com/spoilme-vintage/store-api/pkg/global"
	"github.com/spoilme-vintage/store-api/pkg/models"
)

// Accrual reasons recorded against a loyalty mutation.
const (
	ReasonPurchase = "purchase"
	ReasonReview   = "review"
	ReasonShare    = "share"
	ReasonReversal = "redemption_reversal"
)

// PurchasePoints returns the points earned on an order total: one point
// per currency-defined spend unit, floored.
func PurchasePoints(orderTotal float64, currency string, cfg *config.Engine) (int, error) {
	if orderTotal < 0 {
		return 0, fmt.Errorf("%w: negative order total", global.ErrInvalidInput)
	}
	unit, err := spendUnit(currency, cfg)
	if err != nil {
		return 0, err
	}
	points := decimal.NewFromFloat(orderTotal).Div(unit).IntPart()
	return int(points), nil
}

// ReviewPoints is the flat bonus for a verified review.
func ReviewPoints(cfg *config.Engine) int {
	return cfg.ReviewPoints
}

// ReviewAward is what a submitted review actually earns. Only reviews
// backed by a verified purchase accrue the bonus; anyone can post a
// review, but unverified ones earn nothing.
func ReviewAward(verified bool, cfg *config.Engine) int {
	if !verified {
		return 0
	}
	return cfg.ReviewPoints
}

// SharePoints is the flat bonus for a qualifying social share. The
// per-product cooldown gate lives in the redis package; callers must
// claim the cooldown before accruing.
func SharePoints(cfg *config.Engine) int {
	return cfg.SharePoints
}

// MaxRedeemable clamps a redemption request to what the account may
// actually spend: whole blocks of RedeemBlockPoints, limited by balance,
// and for non-members by the non-member cap. Members have no cap beyond
// their balance.
func MaxRedeemable(membership models.MembershipState, balance, requested int, cfg *config.Engine) (int, error) {
	if requested < 0 || balance < 0 {
		return 0, fmt.Errorf("%w: negative points", global.ErrInvalidInput)
	}
	clamped := requested
	if clamped > balance {
		clamped = balance
	}
	if !membership.IsAtLeastBasic() && clamped > cfg.NonMemberRedeemCap {
		clamped = cfg.NonMemberRedeemCap
	}
	// Round down to a whole redemption block.
	clamped -= clamped % cfg.RedeemBlockPoints
	return clamped, nil
}

// DiscountFor converts redeemed points to an order discount:
// floor(points / block) * currency unit.
func DiscountFor(points int, currency string, cfg *config.Engine) (float64, error) {
	if points < 0 {
		return 0, fmt.Errorf("%w: negative points", global.ErrInvalidInput)
	}
	unit, err := redeemUnit(currency, cfg)
	if err != nil {
		return 0, err
	}
	blocks := int64(points / cfg.RedeemBlockPoints)
	return unit.Mul(decimal.NewFromInt(blocks)).Round(2).InexactFloat64(), nil
}

// ValidateRedemption checks a redemption request against the balance and
// caps at the moment of order placement. The request must be a whole
// multiple of the redemption block.
func ValidateRedemption(membership models.MembershipState, balance, requested int, cfg *config.Engine) error {
	if requested%cfg.RedeemBlockPoints != 0 {
		return fmt.Errorf("%w: redemption must be a multiple of %d points", global.ErrInvalidInput, cfg.RedeemBlockPoints)
	}
	maxPoints, err := MaxRedeemable(membership, balance, requested, cfg)
	if err != nil {
		return err
	}
	if requested > maxPoints {
		if requested > balance {
			return fmt.Errorf("%w: requested %d, balance %d", global.ErrInsufficientPoints, requested, balance)
		}
		// The cap only binds accounts without a membership; crossing it
		// is a membership gate, not a hard limit, so callers can upsell.
		return fmt.Errorf("%w: non-member redemption cap is %d points", global.ErrEntitlementDenied, cfg.NonMemberRedeemCap)
	}
	return nil
}

func spendUnit(currency string, cfg *config.Engine) (decimal.Decimal, error) {
	switch currency {
	case models.CurrencyZAR:
		return decimal.NewFromFloat(cfg.SpendUnitZAR), nil
	case models.CurrencyUSD:
		return decimal.NewFromFloat(cfg.SpendUnitUSD), nil
	}
	return decimal.Decimal{}, fmt.Errorf("%w: %q", global.ErrInvalidCurrency, currency)
}

func redeemUnit(currency string, cfg *config.Engine) (decimal.Decimal, error) {
	switch currency {
	case models.CurrencyZAR:
		return decimal.NewFromFloat(cfg.RedeemUnitZAR), nil
	case models.CurrencyUSD:
		return decimal.NewFromFloat(cfg.RedeemUnitUSD), nil
	}
	return decimal.Decimal{}, fmt.Errorf("%w: %q", global.ErrInvalidCurrency, currency)
}
