package models

import (
	"testing"
	"time"

	"github.com/spoilme-vintage/store-api/pkg/config"
)

func TestRecordRenewalIncrementsMonths(t *testing.T) {
	cfg := config.Default()
	m := MembershipState{IsMember: true, Tier: TierDeluxe}

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 4; i++ {
		m.RecordRenewal(cfg, now)
		if m.MembershipMonths != i {
			t.Fatalf("after %d renewals expected months=%d, got %d", i, i, m.MembershipMonths)
		}
		now = now.AddDate(0, 1, 0)
	}
}

func TestLapseResetsMonthsImmediately(t *testing.T) {
	cfg := config.Default() // immediate policy
	m := MembershipState{IsMember: true, Tier: TierDeluxe, MembershipMonths: 5}

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	m.RecordLapse(cfg, now)
	if m.MembershipMonths != 0 {
		t.Errorf("expected months reset on lapse, got %d", m.MembershipMonths)
	}
	if m.IsMember {
		t.Error("expected is_member false after lapse")
	}

	// A brief lapse still starts the ladder over.
	m.RecordRenewal(cfg, now.Add(time.Hour))
	if m.MembershipMonths != 1 {
		t.Errorf("expected months=1 after renewal post-lapse, got %d", m.MembershipMonths)
	}
}

func TestGracePolicyHealsShortLapse(t *testing.T) {
	cfg := config.Default()
	cfg.LapsePolicy = config.LapseGrace
	cfg.LapseGraceDays = 7

	m := MembershipState{IsMember: true, Tier: TierDeluxe, MembershipMonths: 5}
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	m.RecordLapse(cfg, now)
	if m.MembershipMonths != 5 {
		t.Fatalf("grace policy should defer the reset, got months=%d", m.MembershipMonths)
	}

	// Renewal within the grace window keeps the ladder.
	m.RecordRenewal(cfg, now.AddDate(0, 0, 3))
	if m.MembershipMonths != 6 {
		t.Errorf("expected months=6 after in-grace renewal, got %d", m.MembershipMonths)
	}

	// Renewal past the window starts over.
	m2 := MembershipState{IsMember: true, Tier: TierDeluxe, MembershipMonths: 5}
	m2.RecordLapse(cfg, now)
	m2.RecordRenewal(cfg, now.AddDate(0, 0, 10))
	if m2.MembershipMonths != 1 {
		t.Errorf("expected months=1 after out-of-grace renewal, got %d", m2.MembershipMonths)
	}
}

func TestTierChecks(t *testing.T) {
	deluxe := MembershipState{IsMember: true, Tier: TierDeluxe}
	basic := MembershipState{IsMember: true, Tier: TierBasic}
	lapsedDeluxe := MembershipState{IsMember: false, Tier: TierDeluxe}
	guest := MembershipState{}

	if !deluxe.IsDeluxe() || basic.IsDeluxe() || lapsedDeluxe.IsDeluxe() {
		t.Error("deluxe check wrong")
	}
	if !basic.IsAtLeastBasic() || guest.IsAtLeastBasic() {
		t.Error("basic check wrong")
	}
}
