package repository

import (
	"context"
	"time"

	"github.com/slotpress/slotpress/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint64) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
}

// SlotRepository defines the interface for slot registry operations. Slots
// are deactivated, never deleted, so there is deliberately no Delete.
type SlotRepository interface {
	Create(slot *models.Slot) error
	GetByID(id uint64) (*models.Slot, error)
	GetBySlug(ctx context.Context, slug string) (*models.Slot, error)
	GetAll(offset, limit int) ([]models.Slot, error)
	GetActive() ([]models.Slot, error)
	ListSlugs() ([]string, error)
	Update(slot *models.Slot) error
	SetActive(id uint64, active bool) error
	SlugExists(slug string) (bool, error)
	SlugExistsExceptID(slug string, id uint64) (bool, error)
	Count() (int64, error)
}

// PlacementRepository defines the interface for content placement operations
type PlacementRepository interface {
	Create(placement *models.ContentPlacement) error
	GetByID(id uint64) (*models.ContentPlacement, error)
	GetLiveBySlotKey(ctx context.Context, slotKey string, now time.Time) ([]models.ContentPlacement, error)
	GetBySlotKey(slotKey string) ([]models.ContentPlacement, error)
	GetAll(offset, limit int) ([]models.ContentPlacement, error)
	ListActiveSlotKeys() ([]string, error)
	Update(placement *models.ContentPlacement) error
	SetActive(id uint64, active bool) error
	SetOrphaned(ids []uint64, orphaned bool) error
	Count() (int64, error)
}

// EntitlementRepository defines the interface for entitlement grants
type EntitlementRepository interface {
	Create(entitlement *models.Entitlement) error
	GetByID(id uint64) (*models.Entitlement, error)
	GetActiveForUserSlot(ctx context.Context, userID, slotID uint64) (*models.Entitlement, error)
	GetByUserID(userID uint64) ([]models.Entitlement, error)
	GetBySlotID(slotID uint64, offset, limit int) ([]models.Entitlement, error)
	Update(entitlement *models.Entitlement) error
	Deactivate(id uint64) error
	Count() (int64, error)
}

// ArticleRepository defines the interface for news article operations
type ArticleRepository interface {
	Create(article *models.Article) error
	GetByID(id uint64) (*models.Article, error)
	GetBySlug(slug string) (*models.Article, error)
	GetPublished(offset, limit int) ([]models.Article, error)
	GetAll(offset, limit int) ([]models.Article, error)
	Update(article *models.Article) error
	Delete(id uint64) error
	Count() (int64, error)
	SlugExists(slug string) (bool, error)
	SlugExistsExceptID(slug string, id uint64) (bool, error)
}

// ClipRepository defines the interface for video clip operations
type ClipRepository interface {
	Create(clip *models.Clip) error
	GetByID(id uint64) (*models.Clip, error)
	GetByUUID(uuid string) (*models.Clip, error)
	GetPublished(offset, limit int) ([]models.Clip, error)
	GetAll(offset, limit int) ([]models.Clip, error)
	Update(clip *models.Clip) error
	Delete(id uint64) error
	Count() (int64, error)
}

// MerchRepository defines the interface for merch store items
type MerchRepository interface {
	Create(item *models.MerchItem) error
	GetByID(id uint64) (*models.MerchItem, error)
	GetBySlug(slug string) (*models.MerchItem, error)
	GetActive(offset, limit int) ([]models.MerchItem, error)
	GetAll(offset, limit int) ([]models.MerchItem, error)
	Update(item *models.MerchItem) error
	Delete(id uint64) error
	Count() (int64, error)
}

// OrderRepository defines the interface for payment order tracking
type OrderRepository interface {
	Create(order *models.PaymentOrder) error
	GetByPublicID(publicID string) (*models.PaymentOrder, error)
	GetByProviderSessionID(sessionID string) (*models.PaymentOrder, error)
	GetByUserID(userID uint64, offset, limit int) ([]models.PaymentOrder, error)
	Update(order *models.PaymentOrder) error
	Count() (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User        UserRepository
	Slot        SlotRepository
	Placement   PlacementRepository
	Entitlement EntitlementRepository
	Article     ArticleRepository
	Clip        ClipRepository
	Merch       MerchRepository
	Order       OrderRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Slot:        NewSlotRepository(db),
		Placement:   NewPlacementRepository(db),
		Entitlement: NewEntitlementRepository(db),
		Article:     NewArticleRepository(db),
		Clip:        NewClipRepository(db),
		Merch:       NewMerchRepository(db),
		Order:       NewOrderRepository(db),
	}
}
