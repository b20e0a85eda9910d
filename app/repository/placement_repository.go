package repository

import (
	"context"
	"time"

	"github.com/slotpress/slotpress/app/models"
	"gorm.io/gorm"
)

// placementRepository implements the PlacementRepository interface
type placementRepository struct {
	db *gorm.DB
}

// NewPlacementRepository creates a new placement repository instance
func NewPlacementRepository(db *gorm.DB) PlacementRepository {
	return &placementRepository{db: db}
}

// Create creates a new content placement in the database
func (r *placementRepository) Create(placement *models.ContentPlacement) error {
	return r.db.Create(placement).Error
}

// GetByID retrieves a placement by its ID
func (r *placementRepository) GetByID(id uint64) (*models.ContentPlacement, error) {
	var placement models.ContentPlacement
	err := r.db.First(&placement, id).Error
	if err != nil {
		return nil, err
	}
	return &placement, nil
}

// GetLiveBySlotKey retrieves the active placements for a slot key whose
// scheduling window contains now, ordered by priority with insertion order
// breaking ties.
func (r *placementRepository) GetLiveBySlotKey(ctx context.Context, slotKey string, now time.Time) ([]models.ContentPlacement, error) {
	var placements []models.ContentPlacement
	err := r.db.WithContext(ctx).
		Where("slot_key = ? AND is_active = ?", slotKey, true).
		Where("starts_at IS NULL OR starts_at <= ?", now).
		Where("ends_at IS NULL OR ends_at > ?", now).
		Order("priority DESC, id ASC").
		Find(&placements).Error
	if err != nil {
		return nil, err
	}
	return placements, nil
}

// GetBySlotKey retrieves all placements for a slot key regardless of state
func (r *placementRepository) GetBySlotKey(slotKey string) ([]models.ContentPlacement, error) {
	var placements []models.ContentPlacement
	err := r.db.Where("slot_key = ?", slotKey).
		Order("priority DESC, id ASC").Find(&placements).Error
	return placements, err
}

// GetAll retrieves all placements with pagination
func (r *placementRepository) GetAll(offset, limit int) ([]models.ContentPlacement, error) {
	var placements []models.ContentPlacement
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&placements).Error
	return placements, err
}

// ListActiveSlotKeys returns the distinct slot keys of all active placements
func (r *placementRepository) ListActiveSlotKeys() ([]string, error) {
	var keys []string
	err := r.db.Model(&models.ContentPlacement{}).
		Where("is_active = ?", true).
		Distinct().Pluck("slot_key", &keys).Error
	return keys, err
}

// Update updates an existing placement in the database
func (r *placementRepository) Update(placement *models.ContentPlacement) error {
	return r.db.Save(placement).Error
}

// SetActive toggles a placement's active flag
func (r *placementRepository) SetActive(id uint64, active bool) error {
	return r.db.Model(&models.ContentPlacement{}).Where("id = ?", id).
		Update("is_active", active).Error
}

// SetOrphaned flags or unflags the given placements as orphaned
func (r *placementRepository) SetOrphaned(ids []uint64, orphaned bool) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&models.ContentPlacement{}).Where("id IN ?", ids).
		Update("orphaned", orphaned).Error
}

// Count returns the total number of placements
func (r *placementRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.ContentPlacement{}).Count(&count).Error
	return count, err
}
