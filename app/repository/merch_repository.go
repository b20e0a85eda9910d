package repository

import (
	"github.com/slotpress/slotpress/app/models"
	"gorm.io/gorm"
)

// merchRepository implements the MerchRepository interface
type merchRepository struct {
	db *gorm.DB
}

// NewMerchRepository creates a new merch repository instance
func NewMerchRepository(db *gorm.DB) MerchRepository {
	return &merchRepository{db: db}
}

// Create creates a new merch item in the database
func (r *merchRepository) Create(item *models.MerchItem) error {
	return r.db.Create(item).Error
}

// GetByID retrieves a merch item by its ID
func (r *merchRepository) GetByID(id uint64) (*models.MerchItem, error) {
	var item models.MerchItem
	err := r.db.First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetBySlug retrieves a merch item by its slug
func (r *merchRepository) GetBySlug(slug string) (*models.MerchItem, error) {
	var item models.MerchItem
	err := r.db.Where("slug = ?", slug).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetActive retrieves active merch items with pagination
func (r *merchRepository) GetActive(offset, limit int) ([]models.MerchItem, error) {
	var items []models.MerchItem
	err := r.db.Where("is_active = ?", true).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error
	return items, err
}

// GetAll retrieves all merch items with pagination
func (r *merchRepository) GetAll(offset, limit int) ([]models.MerchItem, error) {
	var items []models.MerchItem
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error
	return items, err
}

// Update updates an existing merch item in the database
func (r *merchRepository) Update(item *models.MerchItem) error {
	return r.db.Save(item).Error
}

// Delete deletes a merch item by its ID
func (r *merchRepository) Delete(id uint64) error {
	return r.db.Delete(&models.MerchItem{}, id).Error
}

// Count returns the total number of merch items
func (r *merchRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.MerchItem{}).Count(&count).Error
	return count, err
}
