package models

import (
	"encoding/json"
	"time"
)

const (
	PlacementContentVideo   = "video"
	PlacementContentArticle = "article"
	PlacementContentAd      = "ad"
	PlacementContentGallery = "gallery"
)

const (
	DeviceScopeAll     = "all"
	DeviceScopeMobile  = "mobile"
	DeviceScopeDesktop = "desktop"
)

// ContentPlacement assigns a content item to a slot for a time window and
// device scope. SlotKey is deliberately a loose string rather than a foreign
// key: placements may be created for slots that are not formally registered
// yet. The reconcile job flags the mismatches instead of a DB constraint.
type ContentPlacement struct {
	ID           uint64     `gorm:"primaryKey" json:"id"`
	SlotKey      string     `gorm:"type:varchar(150);not null;index" json:"slot_key"`
	ContentType  string     `gorm:"type:varchar(20);not null;default:'article'" json:"content_type"`
	ContentID    *uint64    `gorm:"default:null" json:"content_id,omitempty"`
	Priority     int        `gorm:"not null;default:0;index" json:"priority"`
	StartsAt     *time.Time `gorm:"type:timestamp;default:null" json:"starts_at,omitempty"`
	EndsAt       *time.Time `gorm:"type:timestamp;default:null" json:"ends_at,omitempty"`
	DeviceScope  string     `gorm:"type:varchar(10);not null;default:'all'" json:"device_scope"`
	MetadataJSON string     `gorm:"type:text" json:"metadata_json,omitempty"`
	IsActive     bool       `gorm:"default:true;index" json:"is_active"`
	Orphaned     bool       `gorm:"default:false" json:"orphaned"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the ContentPlacement model
func (ContentPlacement) TableName() string {
	return "content_placements"
}

// LiveAt reports whether the placement is currently live: active, started
// (start inclusive) and not yet ended (end exclusive).
func (p *ContentPlacement) LiveAt(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.StartsAt != nil && p.StartsAt.After(now) {
		return false
	}
	if p.EndsAt != nil && !p.EndsAt.After(now) {
		return false
	}
	return true
}

// MatchesDevice reports whether the placement targets the caller's device
// class. Scope "all" matches everything.
func (p *ContentPlacement) MatchesDevice(isMobile bool) bool {
	switch p.DeviceScope {
	case DeviceScopeMobile:
		return isMobile
	case DeviceScopeDesktop:
		return !isMobile
	default:
		return true
	}
}

// Metadata decodes the free-form rendering hints. An empty bag is returned
// for placements without metadata.
func (p *ContentPlacement) Metadata() (map[string]string, error) {
	if p.MetadataJSON == "" {
		return map[string]string{}, nil
	}
	meta := map[string]string{}
	if err := json.Unmarshal([]byte(p.MetadataJSON), &meta); err != nil {
		return nil, err
	}
	return meta, nil
}
