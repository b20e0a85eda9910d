package models

import (
	"time"

	"gorm.io/gorm"
)

// MerchItem is a physical product sold through the store surface.
type MerchItem struct {
	ID         uint64         `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"type:varchar(200)" json:"name" validate:"required,min=2,max=200"`
	Slug       string         `gorm:"uniqueIndex;type:varchar(200)" json:"slug" validate:"required,min=2,max=200"`
	Details    string         `gorm:"type:text" json:"details" validate:"max=3000"`
	PriceCents int64          `gorm:"not null" json:"price_cents" validate:"gte=0"`
	ImageKey   string         `gorm:"type:varchar(255)" json:"image_key"`
	Stock      int            `gorm:"default:0" json:"stock"`
	IsActive   bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the MerchItem model
func (MerchItem) TableName() string {
	return "merch_items"
}
