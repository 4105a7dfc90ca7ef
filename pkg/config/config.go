package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// LapsePolicy controls when a missed billing cycle resets membership_months.
// The business has not settled on a single interpretation, so it is a
// deployment-level knob rather than hard-coded behavior.
type LapsePolicy string

const (
	// LapseImmediate resets the counter on any lapse or cancellation.
	LapseImmediate LapsePolicy = "immediate"
	// LapseGrace resets only when the lapse exceeds GraceDays.
	LapseGrace LapsePolicy = "grace"
)

// Engine holds every tunable of the pricing, loyalty and vault rules.
// Defaults match the storefront's published terms.
type Engine struct {
	// Loyalty accrual: one point per spend unit of order total.
	SpendUnitZAR float64 `env:"LOYALTY_SPEND_UNIT_ZAR" envDefault:"10"`
	SpendUnitUSD float64 `env:"LOYALTY_SPEND_UNIT_USD" envDefault:"3"`

	ReviewPoints int `env:"LOYALTY_REVIEW_POINTS" envDefault:"100"`
	SharePoints  int `env:"LOYALTY_SHARE_POINTS" envDefault:"50"`

	// Redemption: RedeemBlockPoints points convert to one redemption unit.
	RedeemBlockPoints  int     `env:"LOYALTY_REDEEM_BLOCK_POINTS" envDefault:"1000"`
	RedeemUnitZAR      float64 `env:"LOYALTY_REDEEM_UNIT_ZAR" envDefault:"10"`
	RedeemUnitUSD      float64 `env:"LOYALTY_REDEEM_UNIT_USD" envDefault:"5"`
	NonMemberRedeemCap int     `env:"LOYALTY_NON_MEMBER_REDEEM_CAP" envDefault:"10000"`

	// Share bonus cooldown window, in minutes. Mirrors the storefront's
	// per-view flag: a fresh window allows re-claiming on the same product.
	ShareCooldownMinutes int `env:"LOYALTY_SHARE_COOLDOWN_MINUTES" envDefault:"30"`

	// Vault ladder caps keyed by consecutive membership months.
	VaultCapNew            int `env:"VAULT_CAP_NEW" envDefault:"5"`
	VaultCapEstablished    int `env:"VAULT_CAP_ESTABLISHED" envDefault:"7"`
	VaultEstablishedMonths int `env:"VAULT_ESTABLISHED_MONTHS" envDefault:"1"`
	VaultUnlimitedMonths   int `env:"VAULT_UNLIMITED_MONTHS" envDefault:"3"`
	// Large finite cap standing in for "unlimited" so reporting stays finite.
	VaultUnlimitedCap int `env:"VAULT_UNLIMITED_CAP" envDefault:"1000000"`

	// Standard member discount when no explicit member price is configured.
	MemberPriceRatio float64 `env:"MEMBER_PRICE_RATIO" envDefault:"0.8"`

	LapsePolicy    LapsePolicy `env:"MEMBERSHIP_LAPSE_POLICY" envDefault:"immediate"`
	LapseGraceDays int         `env:"MEMBERSHIP_LAPSE_GRACE_DAYS" envDefault:"7"`
}

// Load parses the engine configuration from the environment.
func Load() (*Engine, error) {
	cfg := &Engine{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse engine config: %w", err)
	}
	if cfg.LapsePolicy != LapseImmediate && cfg.LapsePolicy != LapseGrace {
		return nil, fmt.Errorf("invalid MEMBERSHIP_LAPSE_POLICY %q", cfg.LapsePolicy)
	}
	return cfg, nil
}

// Default returns the engine configuration with all defaults applied,
// ignoring the environment. Used by tests and as a fallback.
func Default() *Engine {
	return &Engine{
		SpendUnitZAR:           10,
		SpendUnitUSD:           3,
		ReviewPoints:           100,
		SharePoints:            50,
		RedeemBlockPoints:      1000,
		RedeemUnitZAR:          10,
		RedeemUnitUSD:          5,
		NonMemberRedeemCap:     10000,
		ShareCooldownMinutes:   30,
		VaultCapNew:            5,
		VaultCapEstablished:    7,
		VaultEstablishedMonths: 1,
		VaultUnlimitedMonths:   3,
		VaultUnlimitedCap:      1000000,
		MemberPriceRatio:       0.8,
		LapsePolicy:            LapseImmediate,
		LapseGraceDays:         7,
	}
}
