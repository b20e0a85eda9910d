package repository

import (
	"github.com/slotpress/slotpress/app/models"
	"gorm.io/gorm"
)

// clipRepository implements the ClipRepository interface
type clipRepository struct {
	db *gorm.DB
}

// NewClipRepository creates a new clip repository instance
func NewClipRepository(db *gorm.DB) ClipRepository {
	return &clipRepository{db: db}
}

// Create creates a new clip in the database
func (r *clipRepository) Create(clip *models.Clip) error {
	return r.db.Create(clip).Error
}

// GetByID retrieves a clip by its ID
func (r *clipRepository) GetByID(id uint64) (*models.Clip, error) {
	var clip models.Clip
	err := r.db.First(&clip, id).Error
	if err != nil {
		return nil, err
	}
	return &clip, nil
}

// GetByUUID retrieves a clip by its public UUID
func (r *clipRepository) GetByUUID(uuid string) (*models.Clip, error) {
	var clip models.Clip
	err := r.db.Where("uuid = ?", uuid).First(&clip).Error
	if err != nil {
		return nil, err
	}
	return &clip, nil
}

// GetPublished retrieves published clips with pagination
func (r *clipRepository) GetPublished(offset, limit int) ([]models.Clip, error) {
	var clips []models.Clip
	err := r.db.Where("published = ?", true).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&clips).Error
	return clips, err
}

// GetAll retrieves all clips with pagination
func (r *clipRepository) GetAll(offset, limit int) ([]models.Clip, error) {
	var clips []models.Clip
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&clips).Error
	return clips, err
}

// Update updates an existing clip in the database
func (r *clipRepository) Update(clip *models.Clip) error {
	return r.db.Save(clip).Error
}

// Delete deletes a clip by its ID
func (r *clipRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Clip{}, id).Error
}

// Count returns the total number of clips
func (r *clipRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Clip{}).Count(&count).Error
	return count, err
}
