package entitlements

import (
	"testing"
	"time"
)

func TestFilterActiveAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	caps := []RawCapability{
		{Capability: CapabilityInterview},
		{Capability: CapabilityMusicPlacement, ExpiresAt: &past},
		{Capability: CapabilitySubmission, ExpiresAt: &future},
	}

	got := FilterActiveAt(caps, now)
	if len(got) != 2 {
		t.Fatalf("expected 2 active capabilities, got %d", len(got))
	}
	if got[0].Capability != CapabilityInterview || got[1].Capability != CapabilitySubmission {
		t.Fatalf("unexpected capabilities or order: %+v", got)
	}
}

func TestFilterActiveAtNeverReturnsExpired(t *testing.T) {
	now := time.Now()
	for _, offset := range []time.Duration{-time.Hour, -time.Second, -time.Nanosecond} {
		exp := now.Add(offset)
		got := FilterActiveAt([]RawCapability{{Capability: "x", ExpiresAt: &exp}}, now)
		if len(got) != 0 {
			t.Fatalf("capability expired %v before now was retained", -offset)
		}
	}
}

func TestFilterActiveAtExpiringExactlyNowIsDropped(t *testing.T) {
	now := time.Now()
	got := FilterActiveAt([]RawCapability{{Capability: "x", ExpiresAt: &now}}, now)
	if len(got) != 0 {
		t.Fatal("capability expiring exactly at the evaluation instant must be dropped")
	}
}

func TestFilterActiveAtKeepsNilExpiry(t *testing.T) {
	got := FilterActiveAt([]RawCapability{{Capability: "x"}}, time.Now().Add(1000*time.Hour))
	if len(got) != 1 {
		t.Fatal("permanent capability was dropped")
	}
}

func TestFilterActiveEmptyInput(t *testing.T) {
	if got := FilterActive(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestHas(t *testing.T) {
	caps := []RawCapability{{Capability: CapabilityInterview}}
	if !Has(caps, CapabilityInterview) {
		t.Fatal("expected capability to be found")
	}
	if Has(caps, CapabilityMerchDiscount) {
		t.Fatal("unexpected capability reported present")
	}
}
