package payments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/slotpress/slotpress/app/models"
)

type fakeRepo struct {
	slots        map[uint64]*models.Slot
	orders       map[string]*models.PaymentOrder
	entitlements []models.Entitlement
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		slots:  make(map[uint64]*models.Slot),
		orders: make(map[string]*models.PaymentOrder),
	}
}

func (f *fakeRepo) GetSlotByID(id uint64) (*models.Slot, error) {
	if s, ok := f.slots[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) CreateOrder(order *models.PaymentOrder) error {
	f.orders[order.ProviderSessionID] = order
	return nil
}

func (f *fakeRepo) GetOrderByProviderSessionID(sessionID string) (*models.PaymentOrder, error) {
	if o, ok := f.orders[sessionID]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) UpdateOrder(order *models.PaymentOrder) error {
	f.orders[order.ProviderSessionID] = order
	return nil
}

func (f *fakeRepo) CreateEntitlement(entitlement *models.Entitlement) error {
	f.entitlements = append(f.entitlements, *entitlement)
	return nil
}

type fakeProvider struct {
	sessions map[string]*CheckoutSession
	nextID   string
}

func (f *fakeProvider) CreateCheckoutSession(ctx context.Context, amountCents int64, currency, reference string) (*CheckoutSession, error) {
	s := &CheckoutSession{
		ID:          f.nextID,
		URL:         "https://pay.example.com/" + f.nextID,
		Status:      SessionStatusOpen,
		AmountCents: amountCents,
		Currency:    currency,
		Reference:   reference,
	}
	f.sessions[f.nextID] = s
	return s, nil
}

func (f *fakeProvider) GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	return f.sessions[sessionID], nil
}

func paidInterviewSlot() *models.Slot {
	price := int64(14900)
	return &models.Slot{
		ID:                3,
		Slug:              "interview",
		MonetizationModel: models.MonetizationOneTime,
		PriceCents:        &price,
		IsActive:          true,
	}
}

func setupService(t *testing.T) (*Service, *fakeRepo, *fakeProvider) {
	t.Helper()
	repo := newFakeRepo()
	provider := &fakeProvider{sessions: make(map[string]*CheckoutSession), nextID: "cs_1"}
	return NewService(repo, provider), repo, provider
}

func TestBeginCheckoutOpensSessionAndRecordsOrder(t *testing.T) {
	svc, repo, _ := setupService(t)
	repo.slots[3] = paidInterviewSlot()

	order, url, err := svc.BeginCheckout(context.Background(), 42, 3)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/cs_1", url)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, int64(14900), order.AmountCents)
	assert.Equal(t, "prod_interview_standard", order.PaymentProductID)
	assert.NotEmpty(t, order.PublicID)
	require.NotNil(t, order.SlotID)
	assert.Equal(t, uint64(3), *order.SlotID)
}

func TestBeginCheckoutRejectsFreeSlot(t *testing.T) {
	svc, repo, _ := setupService(t)
	repo.slots[1] = &models.Slot{ID: 1, Slug: "news-feed", MonetizationModel: models.MonetizationFree, IsActive: true}

	_, _, err := svc.BeginCheckout(context.Background(), 42, 1)
	assert.ErrorIs(t, err, ErrSlotNotPurchasable)
}

func TestBeginCheckoutRejectsInactiveSlot(t *testing.T) {
	svc, repo, _ := setupService(t)
	slot := paidInterviewSlot()
	slot.IsActive = false
	repo.slots[3] = slot

	_, _, err := svc.BeginCheckout(context.Background(), 42, 3)
	assert.ErrorIs(t, err, ErrSlotNotPurchasable)
}

func TestConfirmCheckoutGrantsEntitlement(t *testing.T) {
	svc, repo, provider := setupService(t)
	repo.slots[3] = paidInterviewSlot()

	order, _, err := svc.BeginCheckout(context.Background(), 42, 3)
	require.NoError(t, err)

	provider.sessions[order.ProviderSessionID].Status = SessionStatusPaid

	settled, err := svc.ConfirmCheckout(context.Background(), order.ProviderSessionID, "evt_1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, settled.Status)
	assert.Equal(t, "evt_1", settled.ProviderEventID)
	require.NotNil(t, settled.PaidAt)

	require.Len(t, repo.entitlements, 1)
	ent := repo.entitlements[0]
	assert.Equal(t, uint64(42), ent.UserID)
	assert.Equal(t, uint64(3), ent.SlotID)
	assert.Equal(t, models.EntitlementSourcePurchase, ent.Source)
	assert.True(t, ent.IsActive)
	// The interview product is a permanent grant.
	assert.Nil(t, ent.ExpiresAt)
}

func TestConfirmCheckoutTimeBoxedProductSetsExpiry(t *testing.T) {
	svc, repo, provider := setupService(t)
	price := int64(9900)
	repo.slots[5] = &models.Slot{
		ID: 5, Slug: "music-placement",
		MonetizationModel: models.MonetizationOneTime,
		PriceCents:        &price, IsActive: true,
	}

	order, _, err := svc.BeginCheckout(context.Background(), 42, 5)
	require.NoError(t, err)
	provider.sessions[order.ProviderSessionID].Status = SessionStatusPaid

	_, err = svc.ConfirmCheckout(context.Background(), order.ProviderSessionID, "evt_1")
	require.NoError(t, err)

	require.Len(t, repo.entitlements, 1)
	require.NotNil(t, repo.entitlements[0].ExpiresAt)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), *repo.entitlements[0].ExpiresAt, time.Minute)
}

func TestConfirmCheckoutIsIdempotent(t *testing.T) {
	svc, repo, provider := setupService(t)
	repo.slots[3] = paidInterviewSlot()

	order, _, err := svc.BeginCheckout(context.Background(), 42, 3)
	require.NoError(t, err)
	provider.sessions[order.ProviderSessionID].Status = SessionStatusPaid

	_, err = svc.ConfirmCheckout(context.Background(), order.ProviderSessionID, "evt_1")
	require.NoError(t, err)
	// Provider retries the webhook with the same and a different event id.
	_, err = svc.ConfirmCheckout(context.Background(), order.ProviderSessionID, "evt_1")
	require.NoError(t, err)
	_, err = svc.ConfirmCheckout(context.Background(), order.ProviderSessionID, "evt_2")
	require.NoError(t, err)

	assert.Len(t, repo.entitlements, 1)
}

func TestConfirmCheckoutUnpaidSessionDoesNotGrant(t *testing.T) {
	svc, repo, provider := setupService(t)
	repo.slots[3] = paidInterviewSlot()

	order, _, err := svc.BeginCheckout(context.Background(), 42, 3)
	require.NoError(t, err)
	provider.sessions[order.ProviderSessionID].Status = SessionStatusOpen

	_, err = svc.ConfirmCheckout(context.Background(), order.ProviderSessionID, "evt_1")
	assert.ErrorIs(t, err, ErrSessionNotPaid)
	assert.Empty(t, repo.entitlements)
}

func TestConfirmCheckoutExpiredSessionMarksOrderExpired(t *testing.T) {
	svc, repo, provider := setupService(t)
	repo.slots[3] = paidInterviewSlot()

	order, _, err := svc.BeginCheckout(context.Background(), 42, 3)
	require.NoError(t, err)
	provider.sessions[order.ProviderSessionID].Status = SessionStatusExpired

	settled, err := svc.ConfirmCheckout(context.Background(), order.ProviderSessionID, "evt_1")
	assert.ErrorIs(t, err, ErrSessionNotPaid)
	assert.Equal(t, models.OrderStatusExpired, settled.Status)
	assert.Empty(t, repo.entitlements)
}
