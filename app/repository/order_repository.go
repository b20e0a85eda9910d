package repository

import (
	"github.com/slotpress/slotpress/app/models"
	"gorm.io/gorm"
)

// orderRepository implements the OrderRepository interface
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository instance
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create creates a new payment order in the database
func (r *orderRepository) Create(order *models.PaymentOrder) error {
	return r.db.Create(order).Error
}

// GetByPublicID retrieves an order by its public UUID
func (r *orderRepository) GetByPublicID(publicID string) (*models.PaymentOrder, error) {
	var order models.PaymentOrder
	err := r.db.Where("public_id = ?", publicID).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByProviderSessionID retrieves an order by the checkout session ID the
// payment provider assigned to it
func (r *orderRepository) GetByProviderSessionID(sessionID string) (*models.PaymentOrder, error) {
	var order models.PaymentOrder
	err := r.db.Where("provider_session_id = ?", sessionID).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByUserID retrieves a user's orders with pagination, newest first
func (r *orderRepository) GetByUserID(userID uint64, offset, limit int) ([]models.PaymentOrder, error) {
	var orders []models.PaymentOrder
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error
	return orders, err
}

// Update updates an existing payment order in the database
func (r *orderRepository) Update(order *models.PaymentOrder) error {
	return r.db.Save(order).Error
}

// Count returns the total number of payment orders
func (r *orderRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.PaymentOrder{}).Count(&count).Error
	return count, err
}
