package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Clip represents a video clip. The actual video lives at an external origin
// (VideoURL); only the poster image is stored through the media store.
type Clip struct {
	ID          uint64         `gorm:"primaryKey" json:"id"`
	UUID        string         `gorm:"uniqueIndex;type:varchar(36)" json:"uuid"`
	Title       string         `gorm:"type:varchar(255)" json:"title" validate:"required,min=3,max=255"`
	Description string         `gorm:"type:text" json:"description" validate:"max=2000"`
	VideoURL    string         `gorm:"type:varchar(500)" json:"video_url" validate:"required,url,max=500"`
	PosterKey   string         `gorm:"type:varchar(255)" json:"poster_key"`
	DurationSec int            `gorm:"default:0" json:"duration_sec"`
	Published   bool           `gorm:"type:tinyint(1);default:0" json:"published"`
	ViewCount   int64          `gorm:"default:0" json:"view_count"`
	UserID      uint64         `gorm:"index" json:"user_id"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Clip model
func (Clip) TableName() string {
	return "clips"
}

// BeforeCreate assigns the public identifier used in URLs and API payloads.
func (c *Clip) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == "" {
		c.UUID = uuid.New().String()
	}
	return nil
}
