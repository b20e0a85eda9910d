package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/slotpress/slotpress/app/models"
	"github.com/slotpress/slotpress/app/repository"
)

type stubSlotRepo struct {
	repository.SlotRepository
	slots map[string]*models.Slot
	err   error
}

func (s *stubSlotRepo) GetBySlug(ctx context.Context, slug string) (*models.Slot, error) {
	if s.err != nil {
		return nil, s.err
	}
	if slot, ok := s.slots[slug]; ok {
		return slot, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubEntitlementRepo struct {
	repository.EntitlementRepository
}

func (s *stubEntitlementRepo) GetActiveForUserSlot(ctx context.Context, userID, slotID uint64) (*models.Entitlement, error) {
	return nil, gorm.ErrRecordNotFound
}

type stubPlacementRepo struct {
	repository.PlacementRepository
	placements []models.ContentPlacement
	err        error
}

func (s *stubPlacementRepo) GetLiveBySlotKey(ctx context.Context, slotKey string, now time.Time) ([]models.ContentPlacement, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.placements, nil
}

type slotContentResponse struct {
	Access struct {
		HasAccess bool   `json:"has_access"`
		Reason    string `json:"reason"`
	} `json:"access"`
	Placements []models.ContentPlacement `json:"placements"`
}

func newSlotTestApp(sc *SlotController) *fiber.App {
	app := fiber.New()
	app.Get("/slots/:slug/access", sc.HandleSlotAccess)
	app.Get("/slots/:slug/content", sc.HandleSlotContent)
	return app
}

func TestHandleSlotContentFreeSlot(t *testing.T) {
	freeSlot := &models.Slot{
		ID:                1,
		DisplayName:       "Front Page Hero",
		Slug:              "front-hero",
		Kind:              models.SlotKindContent,
		MonetizationModel: models.MonetizationFree,
		IsActive:          true,
	}
	contentID := uint64(7)
	sc := NewSlotController(&repository.Repositories{
		Slot:        &stubSlotRepo{slots: map[string]*models.Slot{"front-hero": freeSlot}},
		Entitlement: &stubEntitlementRepo{},
		Placement: &stubPlacementRepo{placements: []models.ContentPlacement{
			{ID: 1, SlotKey: "front-hero", ContentType: models.PlacementContentArticle, ContentID: &contentID, Priority: 10, DeviceScope: models.DeviceScopeAll, IsActive: true},
		}},
	})
	app := newSlotTestApp(sc)

	resp, err := app.Test(httptest.NewRequest("GET", "/slots/front-hero/content", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body slotContentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Access.HasAccess)
	require.Len(t, body.Placements, 1)
	assert.Equal(t, "front-hero", body.Placements[0].SlotKey)
}

func TestHandleSlotContentPaidSlotAnonymous(t *testing.T) {
	price := int64(14900)
	paidSlot := &models.Slot{
		ID:                2,
		DisplayName:       "Premium Briefing",
		Slug:              "premium-briefing",
		Kind:              models.SlotKindContent,
		MonetizationModel: models.MonetizationOneTime,
		PriceCents:        &price,
		IsActive:          true,
	}
	sc := NewSlotController(&repository.Repositories{
		Slot:        &stubSlotRepo{slots: map[string]*models.Slot{"premium-briefing": paidSlot}},
		Entitlement: &stubEntitlementRepo{},
		Placement: &stubPlacementRepo{placements: []models.ContentPlacement{
			{ID: 1, SlotKey: "premium-briefing", ContentType: models.PlacementContentArticle, DeviceScope: models.DeviceScopeAll, IsActive: true},
		}},
	})
	app := newSlotTestApp(sc)

	resp, err := app.Test(httptest.NewRequest("GET", "/slots/premium-briefing/content", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Denied callers still get a 200 with the decision and no content, so the
	// page renders its paywall state from one response.
	var body slotContentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Access.HasAccess)
	assert.Equal(t, "unauthenticated", body.Access.Reason)
	assert.Empty(t, body.Placements)
}

func TestHandleSlotContentServesEmptyOnStoreFault(t *testing.T) {
	freeSlot := &models.Slot{
		ID:                3,
		DisplayName:       "Sidebar",
		Slug:              "sidebar",
		Kind:              models.SlotKindContent,
		MonetizationModel: models.MonetizationFree,
		IsActive:          true,
	}
	sc := NewSlotController(&repository.Repositories{
		Slot:        &stubSlotRepo{slots: map[string]*models.Slot{"sidebar": freeSlot}},
		Entitlement: &stubEntitlementRepo{},
		Placement:   &stubPlacementRepo{err: errors.New("connection refused")},
	})
	app := newSlotTestApp(sc)

	resp, err := app.Test(httptest.NewRequest("GET", "/slots/sidebar/content", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body slotContentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Access.HasAccess)
	assert.Empty(t, body.Placements)
}

func TestHandleSlotAccessUnknownSlug(t *testing.T) {
	sc := NewSlotController(&repository.Repositories{
		Slot:        &stubSlotRepo{slots: map[string]*models.Slot{}},
		Entitlement: &stubEntitlementRepo{},
		Placement:   &stubPlacementRepo{},
	})
	app := newSlotTestApp(sc)

	resp, err := app.Test(httptest.NewRequest("GET", "/slots/not-registered/access", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	// Unregistered slots fail open: content must not disappear over a
	// provisioning gap.
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, true, body["has_access"])
}
