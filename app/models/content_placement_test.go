package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentPlacementLiveAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	earlier := now.Add(-time.Hour)
	later := now.Add(time.Hour)

	tests := []struct {
		name string
		p    ContentPlacement
		want bool
	}{
		{name: "open window", p: ContentPlacement{IsActive: true}, want: true},
		{name: "inside window", p: ContentPlacement{IsActive: true, StartsAt: &earlier, EndsAt: &later}, want: true},
		{name: "starts now is live", p: ContentPlacement{IsActive: true, StartsAt: &now}, want: true},
		{name: "not started", p: ContentPlacement{IsActive: true, StartsAt: &later}, want: false},
		{name: "ended", p: ContentPlacement{IsActive: true, EndsAt: &earlier}, want: false},
		{name: "ends now is over", p: ContentPlacement{IsActive: true, EndsAt: &now}, want: false},
		{name: "inactive", p: ContentPlacement{IsActive: false}, want: false},
	}

	for _, tt := range tests {
		if got := tt.p.LiveAt(now); got != tt.want {
			t.Fatalf("%s: LiveAt = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestContentPlacementMatchesDevice(t *testing.T) {
	all := ContentPlacement{DeviceScope: DeviceScopeAll}
	mobile := ContentPlacement{DeviceScope: DeviceScopeMobile}
	desktop := ContentPlacement{DeviceScope: DeviceScopeDesktop}

	assert.True(t, all.MatchesDevice(true))
	assert.True(t, all.MatchesDevice(false))
	assert.True(t, mobile.MatchesDevice(true))
	assert.False(t, mobile.MatchesDevice(false))
	assert.False(t, desktop.MatchesDevice(true))
	assert.True(t, desktop.MatchesDevice(false))
}

func TestContentPlacementMetadata(t *testing.T) {
	p := ContentPlacement{MetadataJSON: `{"headline":"Summer Drop","theme":"dark"}`}

	meta, err := p.Metadata()
	require.NoError(t, err)
	assert.Equal(t, "Summer Drop", meta["headline"])
	assert.Equal(t, "dark", meta["theme"])

	empty := ContentPlacement{}
	meta, err = empty.Metadata()
	require.NoError(t, err)
	assert.Empty(t, meta)
}
