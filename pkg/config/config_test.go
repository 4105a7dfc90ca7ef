package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SpendUnitZAR != 10 || cfg.SpendUnitUSD != 3 {
		t.Errorf("unexpected spend units: ZAR=%v USD=%v", cfg.SpendUnitZAR, cfg.SpendUnitUSD)
	}
	if cfg.RedeemBlockPoints != 1000 {
		t.Errorf("expected 1000 points per redemption block, got %d", cfg.RedeemBlockPoints)
	}
	if cfg.NonMemberRedeemCap != 10000 {
		t.Errorf("expected non-member cap of 10000 points, got %d", cfg.NonMemberRedeemCap)
	}
	if cfg.VaultCapNew != 5 || cfg.VaultCapEstablished != 7 {
		t.Errorf("unexpected vault caps: new=%d established=%d", cfg.VaultCapNew, cfg.VaultCapEstablished)
	}
	if cfg.LapsePolicy != LapseImmediate {
		t.Errorf("expected immediate lapse policy by default, got %q", cfg.LapsePolicy)
	}
}

func TestLoadRejectsUnknownLapsePolicy(t *testing.T) {
	t.Setenv("MEMBERSHIP_LAPSE_POLICY", "sometimes")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown lapse policy")
	}
}

func TestDefaultMatchesEnvDefaults(t *testing.T) {
	loaded, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if *Default() != *loaded {
		t.Errorf("Default() diverges from env defaults: %+v vs %+v", Default(), loaded)
	}
}
