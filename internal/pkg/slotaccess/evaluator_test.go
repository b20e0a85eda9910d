package slotaccess

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/slotpress/slotpress/app/models"
)

type fakeStore struct {
	slots        map[string]*models.Slot
	entitlements map[[2]uint64]*models.Entitlement
	slotErr      error
	entErr       error
}

func (f *fakeStore) GetSlotBySlug(ctx context.Context, slug string) (*models.Slot, error) {
	if f.slotErr != nil {
		return nil, f.slotErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s, ok := f.slots[slug]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) GetActiveEntitlement(ctx context.Context, userID, slotID uint64) (*models.Entitlement, error) {
	if f.entErr != nil {
		return nil, f.entErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e, ok := f.entitlements[[2]uint64{userID, slotID}]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func freeSlot(slug string) *models.Slot {
	return &models.Slot{ID: 1, Slug: slug, MonetizationModel: models.MonetizationFree, IsActive: true}
}

func paidSlot(slug string) *models.Slot {
	price := int64(14900)
	return &models.Slot{ID: 2, Slug: slug, MonetizationModel: models.MonetizationOneTime, PriceCents: &price, IsActive: true}
}

func newEvaluator(store Store) *Evaluator {
	return NewEvaluator(store, DefaultConfig())
}

func TestEvaluateAccessFreeSlotAnonymous(t *testing.T) {
	e := newEvaluator(&fakeStore{slots: map[string]*models.Slot{"news-feed": freeSlot("news-feed")}})

	got := e.EvaluateAccess(context.Background(), "news-feed", nil, false)
	assert.True(t, got.HasAccess)
	assert.Empty(t, got.Reason)
	require.NotNil(t, got.Slot)
}

func TestEvaluateAccessPaidSlotAnonymous(t *testing.T) {
	e := newEvaluator(&fakeStore{slots: map[string]*models.Slot{"interview": paidSlot("interview")}})

	got := e.EvaluateAccess(context.Background(), "interview", nil, false)
	assert.False(t, got.HasAccess)
	assert.Equal(t, ReasonUnauthenticated, got.Reason)
}

func TestEvaluateAccessPaidSlotNoEntitlement(t *testing.T) {
	e := newEvaluator(&fakeStore{slots: map[string]*models.Slot{"interview": paidSlot("interview")}})

	got := e.EvaluateAccess(context.Background(), "interview", &Session{UserID: 42}, false)
	assert.False(t, got.HasAccess)
	assert.Equal(t, ReasonPaymentRequired, got.Reason)
}

func TestEvaluateAccessPaidSlotActiveEntitlement(t *testing.T) {
	slot := paidSlot("interview")
	store := &fakeStore{
		slots: map[string]*models.Slot{"interview": slot},
		entitlements: map[[2]uint64]*models.Entitlement{
			{42, slot.ID}: {UserID: 42, SlotID: slot.ID, IsActive: true},
		},
	}
	e := newEvaluator(store)

	got := e.EvaluateAccess(context.Background(), "interview", &Session{UserID: 42}, false)
	assert.True(t, got.HasAccess)
}

func TestEvaluateAccessExpiredEntitlementDenies(t *testing.T) {
	slot := paidSlot("interview")
	yesterday := time.Now().Add(-24 * time.Hour)
	store := &fakeStore{
		slots: map[string]*models.Slot{"interview": slot},
		entitlements: map[[2]uint64]*models.Entitlement{
			// is_active still reads true; expiry must win.
			{42, slot.ID}: {UserID: 42, SlotID: slot.ID, IsActive: true, ExpiresAt: &yesterday},
		},
	}
	e := newEvaluator(store)

	got := e.EvaluateAccess(context.Background(), "interview", &Session{UserID: 42}, false)
	assert.False(t, got.HasAccess)
	assert.Equal(t, ReasonPaymentRequired, got.Reason)
}

func TestEvaluateAccessAdminBypassesPaywall(t *testing.T) {
	e := newEvaluator(&fakeStore{slots: map[string]*models.Slot{"interview": paidSlot("interview")}})

	got := e.EvaluateAccess(context.Background(), "interview", &Session{UserID: 7}, true)
	assert.True(t, got.HasAccess)
}

func TestEvaluateAccessInactiveSlot(t *testing.T) {
	slot := paidSlot("retired")
	slot.IsActive = false
	e := newEvaluator(&fakeStore{slots: map[string]*models.Slot{"retired": slot}})

	got := e.EvaluateAccess(context.Background(), "retired", &Session{UserID: 42}, true)
	assert.False(t, got.HasAccess)
	assert.Equal(t, ReasonInactiveSlot, got.Reason)
}

func TestEvaluateAccessMissingSlotFailsOpen(t *testing.T) {
	e := newEvaluator(&fakeStore{})

	got := e.EvaluateAccess(context.Background(), "not-registered", nil, false)
	assert.True(t, got.HasAccess)
	assert.Nil(t, got.Slot)
}

func TestEvaluateAccessDevFallbackSlugSynthesizesSlot(t *testing.T) {
	e := newEvaluator(&fakeStore{})

	got := e.EvaluateAccess(context.Background(), "demo", nil, false)
	assert.True(t, got.HasAccess)
	require.NotNil(t, got.Slot)
	assert.Equal(t, "demo", got.Slot.Slug)
	assert.True(t, got.Slot.IsFree())
}

func TestEvaluateAccessBackendFaultFailOpen(t *testing.T) {
	e := newEvaluator(&fakeStore{slotErr: errors.New("connection refused")})

	got := e.EvaluateAccess(context.Background(), "interview", &Session{UserID: 42}, false)
	assert.True(t, got.HasAccess)
}

func TestEvaluateAccessBackendFaultFailClosed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FailOpenOnError = false
	e := NewEvaluator(&fakeStore{slotErr: errors.New("connection refused")}, cfg)

	got := e.EvaluateAccess(context.Background(), "interview", &Session{UserID: 42}, false)
	assert.False(t, got.HasAccess)
	assert.Equal(t, ReasonPaymentRequired, got.Reason)
}

func TestEvaluateAccessEntitlementFaultFailOpen(t *testing.T) {
	store := &fakeStore{
		slots:  map[string]*models.Slot{"interview": paidSlot("interview")},
		entErr: errors.New("backend unavailable"),
	}
	e := newEvaluator(store)

	got := e.EvaluateAccess(context.Background(), "interview", &Session{UserID: 42}, false)
	assert.True(t, got.HasAccess)
}

func TestEvaluateAccessCanceledContextIsNeutral(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := newEvaluator(&fakeStore{slots: map[string]*models.Slot{"interview": paidSlot("interview")}})

	got := e.EvaluateAccess(ctx, "interview", &Session{UserID: 42}, false)
	assert.False(t, got.HasAccess)
	assert.Empty(t, got.Reason)
	assert.Nil(t, got.Slot)
}
