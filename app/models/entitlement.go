package models

import "time"

const (
	EntitlementSourceSubscription = "subscription"
	EntitlementSourcePurchase     = "purchase"
	EntitlementSourceManual       = "manual"
	EntitlementSourcePromo        = "promo"
)

// Entitlement records that a user has paid for or otherwise earned access to
// one slot. Expiry is evaluated at read time; there is no background sweep
// that flips IsActive.
type Entitlement struct {
	ID        uint64     `gorm:"primaryKey" json:"id"`
	UserID    uint64     `gorm:"not null;index:idx_entitlements_user_slot,priority:1" json:"user_id"`
	SlotID    uint64     `gorm:"not null;index:idx_entitlements_user_slot,priority:2" json:"slot_id"`
	Source    string     `gorm:"type:varchar(20);not null;default:'purchase'" json:"source"`
	GrantedAt time.Time  `gorm:"not null" json:"granted_at"`
	ExpiresAt *time.Time `gorm:"type:timestamp;default:null" json:"expires_at,omitempty"`
	IsActive  bool       `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Entitlement model
func (Entitlement) TableName() string {
	return "entitlements"
}

// ActiveAt reports whether the entitlement confers access at the given
// instant. A nil ExpiresAt means a permanent grant. Expiry is authoritative
// even while the stored IsActive flag still reads true.
func (e *Entitlement) ActiveAt(now time.Time) bool {
	if !e.IsActive {
		return false
	}
	return e.ExpiresAt == nil || e.ExpiresAt.After(now)
}
