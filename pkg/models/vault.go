package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// VaultItem is an entry in the deluxe-only deep-discount catalog.
type VaultItem struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductName   string        `bson:"product_name" json:"product_name" validate:"required,min=2,max=200"`
	ProductImage  string        `bson:"product_image,omitempty" json:"product_image,omitempty"`
	VaultPrice    float64       `bson:"vault_price" json:"vault_price" validate:"required,gt=0"` // ZAR
	VaultPriceUSD float64       `bson:"vault_price_usd,omitempty" json:"vault_price_usd,omitempty" validate:"gte=0"`
	GoLiveDate    time.Time     `bson:"go_live_date" json:"go_live_date"`
	IsActive      bool          `bson:"is_active" json:"is_active"`
	CreatedAt     time.Time     `bson:"created_at" json:"created_at"`
}

// PriceIn returns the vault price in the requested currency, falling back
// to ZAR when USD is unset (vault prices follow base-price fallback rules).
func (v *VaultItem) PriceIn(currency string) float64 {
	if currency == CurrencyUSD && v.VaultPriceUSD > 0 {
		return v.VaultPriceUSD
	}
	return v.VaultPrice
}

// VaultLedgerEntry is the per-user, per-calendar-month purchase record the
// ladder cap is enforced against. Entries for past months are retained for
// audit and never mutated after month-end; a new month key lazily starts a
// fresh entry.
type VaultLedgerEntry struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string        `bson:"user_id" json:"user_id" validate:"required"`
	MonthKey  string        `bson:"month_key" json:"month_key" validate:"required"` // "2006-01"
	ItemIDs   []string      `bson:"item_ids" json:"item_ids"`
	Count     int           `bson:"count" json:"count" validate:"gte=0"`
	OpKeys    []string      `bson:"op_keys" json:"op_keys"` // idempotency keys of recorded cart actions
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updated_at"`
}

// MonthKey formats t as the vault ledger's calendar-month key.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// HasOpKey reports whether this cart action was already recorded.
func (e *VaultLedgerEntry) HasOpKey(opKey string) bool {
	for _, k := range e.OpKeys {
		if k == opKey {
			return true
		}
	}
	return false
}
