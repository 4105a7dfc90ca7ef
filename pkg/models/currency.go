package models

// Currencies the storefront sells in. ZAR pricing is mandatory on every
// product; USD is optional with per-field fallback rules.
const (
	CurrencyZAR = "ZAR"
	CurrencyUSD = "USD"
)

func ValidCurrency(currency string) bool {
	return currency == CurrencyZAR || currency == CurrencyUSD
}
