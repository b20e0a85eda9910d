package models

import "time"

const (
	OrderStatusPending  = "pending"
	OrderStatusPaid     = "paid"
	OrderStatusFailed   = "failed"
	OrderStatusExpired  = "expired"
	OrderStatusRefunded = "refunded"
)

// PaymentOrder tracks one checkout session at the payment provider. Provider
// event ids are recorded on confirmation so webhook retries stay idempotent.
type PaymentOrder struct {
	ID                uint64     `gorm:"primaryKey" json:"id"`
	PublicID          string     `gorm:"uniqueIndex;type:varchar(36)" json:"public_id"`
	UserID            uint64     `gorm:"not null;index" json:"user_id"`
	SlotID            *uint64    `gorm:"default:null;index" json:"slot_id,omitempty"`
	PaymentProductID  string     `gorm:"type:varchar(100);not null;index" json:"payment_product_id"`
	AmountCents       int64      `gorm:"not null" json:"amount_cents"`
	Currency          string     `gorm:"type:varchar(3);not null;default:'eur'" json:"currency"`
	Status            string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ProviderSessionID string     `gorm:"type:varchar(191);index:ux_payment_orders_session,unique" json:"provider_session_id"`
	ProviderEventID   string     `gorm:"type:varchar(191);index" json:"provider_event_id"`
	PaidAt            *time.Time `gorm:"type:timestamp;default:null" json:"paid_at,omitempty"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the PaymentOrder model
func (PaymentOrder) TableName() string {
	return "payment_orders"
}
