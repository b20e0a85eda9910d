package models

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	SlotKindContent = "content"
	SlotKindEvent   = "event"
	SlotKindService = "service"
	SlotKindHybrid  = "hybrid"
)

const (
	SlotVisibilityPublic  = "public"
	SlotVisibilityAccount = "account_only"
	SlotVisibilityPaid    = "paid"
)

const (
	MonetizationFree         = "free"
	MonetizationSubscription = "subscription"
	MonetizationOneTime      = "one_time"
	MonetizationPerItem      = "per_item"
	MonetizationInviteOnly   = "invite_only"
)

const (
	BillingIntervalMonth = "month"
	BillingIntervalYear  = "year"
)

// Slot is a named, addressable placement point in the content surface with its
// own visibility and monetization rules. Slots are deactivated rather than
// deleted so existing entitlements keep a valid reference.
type Slot struct {
	ID                uint64     `gorm:"primaryKey" json:"id"`
	DisplayName       string     `gorm:"type:varchar(150)" json:"display_name" validate:"required,min=3,max=150"`
	Slug              string     `gorm:"uniqueIndex;type:varchar(150)" json:"slug" validate:"required,min=2,max=150"`
	Description       string     `gorm:"type:text" json:"description" validate:"max=2000"`
	Kind              string     `gorm:"type:varchar(20);default:'content'" json:"kind" validate:"oneof=content event service hybrid"`
	Visibility        string     `gorm:"type:varchar(20);default:'public'" json:"visibility" validate:"oneof=public account_only paid"`
	MonetizationModel string     `gorm:"type:varchar(20);default:'free';index" json:"monetization_model" validate:"oneof=free subscription one_time per_item invite_only"`
	PriceCents        *int64     `gorm:"default:null" json:"price_cents,omitempty"`
	BillingInterval   *string    `gorm:"type:varchar(16);default:null" json:"billing_interval,omitempty"`
	IsActive          bool       `gorm:"default:true;index" json:"is_active"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Slot model
func (Slot) TableName() string {
	return "slots"
}

var ErrSubscriptionNeedsInterval = errors.New("subscription slots require a billing interval")

// Validate checks field constraints plus the monetization invariants:
// subscription slots must carry a billing interval, free slots carry no price.
func (s *Slot) Validate() error {
	v := validator.New()
	if err := v.Struct(s); err != nil {
		return err
	}

	switch s.MonetizationModel {
	case MonetizationSubscription:
		if s.BillingInterval == nil || (*s.BillingInterval != BillingIntervalMonth && *s.BillingInterval != BillingIntervalYear) {
			return ErrSubscriptionNeedsInterval
		}
	case MonetizationFree:
		// Price is meaningless on free slots; drop it so access checks never see one.
		s.PriceCents = nil
	}
	return nil
}

// IsFree reports whether access to the slot requires no payment at all.
func (s *Slot) IsFree() bool {
	return s.MonetizationModel == MonetizationFree
}
