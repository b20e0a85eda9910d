package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slotpress/slotpress/app/models"
	"github.com/slotpress/slotpress/internal/pkg/products"
)

var (
	ErrSlotNotPurchasable = errors.New("slot is not purchasable")
	ErrSessionNotPaid     = errors.New("checkout session is not paid")
)

// Repository is the slice of persistence the checkout flow needs.
type Repository interface {
	GetSlotByID(id uint64) (*models.Slot, error)
	CreateOrder(order *models.PaymentOrder) error
	GetOrderByProviderSessionID(sessionID string) (*models.PaymentOrder, error)
	UpdateOrder(order *models.PaymentOrder) error
	CreateEntitlement(entitlement *models.Entitlement) error
}

// Provider is the checkout operations the service needs from the payment
// provider client.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, amountCents int64, currency, reference string) (*CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

// Service drives the checkout lifecycle: opening provider sessions for slot
// purchases and converting paid sessions into entitlements.
type Service struct {
	repo     Repository
	provider Provider
	now      func() time.Time
}

// NewService creates a payments service from an injected repository and
// provider client.
func NewService(repo Repository, provider Provider) *Service {
	return &Service{repo: repo, provider: provider, now: time.Now}
}

// BeginCheckout opens a provider checkout session for the given slot and
// records a pending order. The caller redirects the buyer to the returned URL.
func (s *Service) BeginCheckout(ctx context.Context, userID uint64, slotID uint64) (*models.PaymentOrder, string, error) {
	if userID == 0 {
		return nil, "", errors.New("user_id is required")
	}

	slot, err := s.repo.GetSlotByID(slotID)
	if err != nil {
		return nil, "", err
	}
	if !slot.IsActive || slot.IsFree() || slot.PriceCents == nil || *slot.PriceCents <= 0 {
		return nil, "", ErrSlotNotPurchasable
	}

	product := products.GetProductBySlotSlug(slot.Slug)

	order := &models.PaymentOrder{
		PublicID:         uuid.New().String(),
		UserID:           userID,
		SlotID:           &slot.ID,
		PaymentProductID: product.PaymentProductID,
		AmountCents:      *slot.PriceCents,
		Currency:         "eur",
		Status:           models.OrderStatusPending,
	}

	session, err := s.provider.CreateCheckoutSession(ctx, order.AmountCents, order.Currency, order.PublicID)
	if err != nil {
		return nil, "", fmt.Errorf("create checkout session: %w", err)
	}
	order.ProviderSessionID = session.ID

	if err := s.repo.CreateOrder(order); err != nil {
		return nil, "", err
	}

	log.Infof("[Payments] opened checkout session %s for user %d slot %s", session.ID, userID, slot.Slug)
	return order, session.URL, nil
}

// ConfirmCheckout settles the order behind a provider session after a webhook
// or return-URL verification. Processing the same event id twice is a no-op,
// so provider retries never double-grant.
func (s *Service) ConfirmCheckout(ctx context.Context, sessionID, eventID string) (*models.PaymentOrder, error) {
	order, err := s.repo.GetOrderByProviderSessionID(strings.TrimSpace(sessionID))
	if err != nil {
		return nil, err
	}

	if order.Status == models.OrderStatusPaid {
		if eventID != "" && order.ProviderEventID != eventID {
			log.Warnf("[Payments] duplicate confirmation for order %s (event %s, already settled by %s)",
				order.PublicID, eventID, order.ProviderEventID)
		}
		return order, nil
	}

	session, err := s.provider.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("verify checkout session: %w", err)
	}

	switch session.Status {
	case SessionStatusPaid:
		// fall through to settlement
	case SessionStatusExpired:
		order.Status = models.OrderStatusExpired
		if err := s.repo.UpdateOrder(order); err != nil {
			return nil, err
		}
		return order, ErrSessionNotPaid
	default:
		return order, ErrSessionNotPaid
	}

	now := s.now()
	order.Status = models.OrderStatusPaid
	order.ProviderEventID = strings.TrimSpace(eventID)
	order.PaidAt = &now
	if err := s.repo.UpdateOrder(order); err != nil {
		return nil, err
	}

	if err := s.grantForOrder(order, now); err != nil {
		// The order is settled; a failed grant must surface loudly but must
		// not flip the order back to pending.
		log.Errorf("[Payments] order %s paid but grant failed: %v", order.PublicID, err)
		return order, err
	}

	log.Infof("[Payments] order %s settled, user %d granted access", order.PublicID, order.UserID)
	return order, nil
}

func (s *Service) grantForOrder(order *models.PaymentOrder, now time.Time) error {
	if order.SlotID == nil {
		return errors.New("order has no slot to grant")
	}

	entitlement := &models.Entitlement{
		UserID:    order.UserID,
		SlotID:    *order.SlotID,
		Source:    models.EntitlementSourcePurchase,
		GrantedAt: now,
		IsActive:  true,
	}

	if product := products.GetProductByPaymentID(order.PaymentProductID); product != nil && product.ValidityDays > 0 {
		expires := now.AddDate(0, 0, product.ValidityDays)
		entitlement.ExpiresAt = &expires
	}

	return s.repo.CreateEntitlement(entitlement)
}

// gormRepository adapts a GORM handle to the Repository interface.
type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a payments repository from a GORM DB handle.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetSlotByID(id uint64) (*models.Slot, error) {
	var slot models.Slot
	if err := r.db.First(&slot, id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *gormRepository) CreateOrder(order *models.PaymentOrder) error {
	return r.db.Create(order).Error
}

func (r *gormRepository) GetOrderByProviderSessionID(sessionID string) (*models.PaymentOrder, error) {
	var order models.PaymentOrder
	if err := r.db.Where("provider_session_id = ?", sessionID).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormRepository) UpdateOrder(order *models.PaymentOrder) error {
	return r.db.Save(order).Error
}

func (r *gormRepository) CreateEntitlement(entitlement *models.Entitlement) error {
	return r.db.Create(entitlement).Error
}
