package repository

import (
	"context"

	"github.com/slotpress/slotpress/app/models"
	"gorm.io/gorm"
)

// slotRepository implements the SlotRepository interface
type slotRepository struct {
	db *gorm.DB
}

// NewSlotRepository creates a new slot repository instance
func NewSlotRepository(db *gorm.DB) SlotRepository {
	return &slotRepository{db: db}
}

// Create creates a new slot in the database
func (r *slotRepository) Create(slot *models.Slot) error {
	return r.db.Create(slot).Error
}

// GetByID retrieves a slot by its ID
func (r *slotRepository) GetByID(id uint64) (*models.Slot, error) {
	var slot models.Slot
	err := r.db.First(&slot, id).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// GetBySlug retrieves a slot by its slug
func (r *slotRepository) GetBySlug(ctx context.Context, slug string) (*models.Slot, error) {
	var slot models.Slot
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// GetAll retrieves all slots with pagination
func (r *slotRepository) GetAll(offset, limit int) ([]models.Slot, error) {
	var slots []models.Slot
	err := r.db.Order("display_name ASC").Offset(offset).Limit(limit).Find(&slots).Error
	return slots, err
}

// GetActive retrieves all active slots
func (r *slotRepository) GetActive() ([]models.Slot, error) {
	var slots []models.Slot
	err := r.db.Where("is_active = ?", true).Order("display_name ASC").Find(&slots).Error
	return slots, err
}

// ListSlugs returns the slugs of all slots, active or not
func (r *slotRepository) ListSlugs() ([]string, error) {
	var slugs []string
	err := r.db.Model(&models.Slot{}).Pluck("slug", &slugs).Error
	return slugs, err
}

// Update updates an existing slot in the database
func (r *slotRepository) Update(slot *models.Slot) error {
	return r.db.Save(slot).Error
}

// SetActive toggles a slot's active flag. Slots are never deleted so that
// existing entitlements keep a valid target.
func (r *slotRepository) SetActive(id uint64, active bool) error {
	return r.db.Model(&models.Slot{}).Where("id = ?", id).
		Update("is_active", active).Error
}

// SlugExists checks whether a slot with the given slug exists
func (r *slotRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Slot{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// SlugExistsExceptID checks whether another slot already uses the given slug
func (r *slotRepository) SlugExistsExceptID(slug string, id uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Slot{}).Where("slug = ? AND id != ?", slug, id).Count(&count).Error
	return count > 0, err
}

// Count returns the total number of slots
func (r *slotRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Slot{}).Count(&count).Error
	return count, err
}
