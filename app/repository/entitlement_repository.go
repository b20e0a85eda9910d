package repository

import (
	"context"

	"github.com/slotpress/slotpress/app/models"
	"gorm.io/gorm"
)

// entitlementRepository implements the EntitlementRepository interface
type entitlementRepository struct {
	db *gorm.DB
}

// NewEntitlementRepository creates a new entitlement repository instance
func NewEntitlementRepository(db *gorm.DB) EntitlementRepository {
	return &entitlementRepository{db: db}
}

// Create creates a new entitlement in the database
func (r *entitlementRepository) Create(entitlement *models.Entitlement) error {
	return r.db.Create(entitlement).Error
}

// GetByID retrieves an entitlement by its ID
func (r *entitlementRepository) GetByID(id uint64) (*models.Entitlement, error) {
	var entitlement models.Entitlement
	err := r.db.First(&entitlement, id).Error
	if err != nil {
		return nil, err
	}
	return &entitlement, nil
}

// GetActiveForUserSlot retrieves the newest entitlement for a user/slot pair
// whose is_active flag is set. Expiry is evaluated by the caller, not here.
func (r *entitlementRepository) GetActiveForUserSlot(ctx context.Context, userID, slotID uint64) (*models.Entitlement, error) {
	var entitlement models.Entitlement
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND slot_id = ? AND is_active = ?", userID, slotID, true).
		Order("granted_at DESC").
		First(&entitlement).Error
	if err != nil {
		return nil, err
	}
	return &entitlement, nil
}

// GetByUserID retrieves all entitlements of a user, newest first
func (r *entitlementRepository) GetByUserID(userID uint64) ([]models.Entitlement, error) {
	var entitlements []models.Entitlement
	err := r.db.Where("user_id = ?", userID).
		Order("granted_at DESC").Find(&entitlements).Error
	return entitlements, err
}

// GetBySlotID retrieves the entitlements granted for a slot with pagination
func (r *entitlementRepository) GetBySlotID(slotID uint64, offset, limit int) ([]models.Entitlement, error) {
	var entitlements []models.Entitlement
	err := r.db.Where("slot_id = ?", slotID).
		Order("granted_at DESC").Offset(offset).Limit(limit).Find(&entitlements).Error
	return entitlements, err
}

// Update updates an existing entitlement in the database
func (r *entitlementRepository) Update(entitlement *models.Entitlement) error {
	return r.db.Save(entitlement).Error
}

// Deactivate revokes an entitlement without deleting the grant record
func (r *entitlementRepository) Deactivate(id uint64) error {
	return r.db.Model(&models.Entitlement{}).Where("id = ?", id).
		Update("is_active", false).Error
}

// Count returns the total number of entitlements
func (r *entitlementRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Entitlement{}).Count(&count).Error
	return count, err
}
