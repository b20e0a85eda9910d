package entitlements

import "time"

// Capability strings conferred by product purchases. Slots and features are
// unlocked by holding the matching capability.
const (
	CapabilityInterview      = "interview_access"
	CapabilityMusicPlacement = "music_placement"
	CapabilitySubmission     = "submission"
	CapabilityMerchDiscount  = "merch_discount"
)

// RawCapability is the minimal grant record used for capability checks: a
// capability string plus an optional expiry. A nil ExpiresAt means the grant
// never expires.
type RawCapability struct {
	Capability string     `json:"capability"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

// FilterActive returns only the currently valid capabilities. The evaluation
// instant is captured once so every item is judged against the same snapshot.
// Input order is preserved; the input slice is not modified.
func FilterActive(capabilities []RawCapability) []RawCapability {
	return FilterActiveAt(capabilities, time.Now())
}

// FilterActiveAt is FilterActive against an explicit evaluation instant.
func FilterActiveAt(capabilities []RawCapability, now time.Time) []RawCapability {
	active := make([]RawCapability, 0, len(capabilities))
	for _, grant := range capabilities {
		if grant.ExpiresAt == nil || grant.ExpiresAt.After(now) {
			active = append(active, grant)
		}
	}
	return active
}

// Has reports whether the capability list contains the given capability.
func Has(capabilities []RawCapability, capability string) bool {
	for _, grant := range capabilities {
		if grant.Capability == capability {
			return true
		}
	}
	return false
}
