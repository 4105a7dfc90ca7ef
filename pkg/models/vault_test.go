package models

import (
	"testing"
	"time"
)

func TestMonthKey(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC), "2026-08"},
		{time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC), "2026-12"},
		// Local time just before midnight on the last day of the month
		// still lands in that month's UTC key only if it is before the
		// UTC boundary.
		{time.Date(2026, 1, 1, 1, 0, 0, 0, time.FixedZone("SAST", 2*3600)), "2025-12"},
	}
	for _, tc := range cases {
		if got := MonthKey(tc.in); got != tc.want {
			t.Errorf("MonthKey(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestVaultLedgerOpKeys(t *testing.T) {
	entry := VaultLedgerEntry{OpKeys: []string{"op-1", "op-2"}}
	if !entry.HasOpKey("op-1") {
		t.Error("expected op-1 to be recorded")
	}
	if entry.HasOpKey("op-9") {
		t.Error("op-9 should not be recorded")
	}
}

func TestVaultItemPriceIn(t *testing.T) {
	item := VaultItem{VaultPrice: 250, VaultPriceUSD: 15}
	if got := item.PriceIn(CurrencyUSD); got != 15 {
		t.Errorf("USD price = %v, want 15", got)
	}
	noUSD := VaultItem{VaultPrice: 250}
	if got := noUSD.PriceIn(CurrencyUSD); got != 250 {
		t.Errorf("USD fallback price = %v, want 250", got)
	}
}
