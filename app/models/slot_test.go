package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotValidateSubscriptionRequiresInterval(t *testing.T) {
	price := int64(999)
	s := &Slot{
		DisplayName:       "Featured Interview",
		Slug:              "featured-interview",
		Kind:              SlotKindContent,
		Visibility:        SlotVisibilityPaid,
		MonetizationModel: MonetizationSubscription,
		PriceCents:        &price,
	}

	require.ErrorIs(t, s.Validate(), ErrSubscriptionNeedsInterval)

	interval := BillingIntervalMonth
	s.BillingInterval = &interval
	require.NoError(t, s.Validate())
}

func TestSlotValidateFreeDropsPrice(t *testing.T) {
	price := int64(500)
	s := &Slot{
		DisplayName:       "Home Banner",
		Slug:              "home-banner",
		Kind:              SlotKindContent,
		Visibility:        SlotVisibilityPublic,
		MonetizationModel: MonetizationFree,
		PriceCents:        &price,
	}

	require.NoError(t, s.Validate())
	assert.Nil(t, s.PriceCents)
	assert.True(t, s.IsFree())
}

func TestEntitlementActiveAt(t *testing.T) {
	now := time.Now()
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	tests := []struct {
		name string
		e    Entitlement
		want bool
	}{
		{name: "permanent grant", e: Entitlement{IsActive: true}, want: true},
		{name: "future expiry", e: Entitlement{IsActive: true, ExpiresAt: &tomorrow}, want: true},
		{name: "expired but flag still true", e: Entitlement{IsActive: true, ExpiresAt: &yesterday}, want: false},
		{name: "deactivated", e: Entitlement{IsActive: false}, want: false},
		{name: "deactivated with future expiry", e: Entitlement{IsActive: false, ExpiresAt: &tomorrow}, want: false},
	}

	for _, tt := range tests {
		if got := tt.e.ActiveAt(now); got != tt.want {
			t.Fatalf("%s: ActiveAt = %v, want %v", tt.name, got, tt.want)
		}
	}
}
