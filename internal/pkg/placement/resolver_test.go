package placement

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotpress/slotpress/app/models"
)

// fakeStore serves placements from memory, applying the same active/window
// predicate and ordering the real repository applies in SQL.
type fakeStore struct {
	rows []models.ContentPlacement
	err  error
}

func (f *fakeStore) GetLiveBySlotKey(ctx context.Context, slotKey string, now time.Time) ([]models.ContentPlacement, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var live []models.ContentPlacement
	for _, row := range f.rows {
		if row.SlotKey == slotKey && row.LiveAt(now) {
			live = append(live, row)
		}
	}
	sort.SliceStable(live, func(i, j int) bool {
		return live[i].Priority > live[j].Priority
	})
	return live, nil
}

func ts(t time.Time) *time.Time { return &t }

func TestResolveSlotAllRespectsWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{rows: []models.ContentPlacement{
		{ID: 1, SlotKey: "home-hero", IsActive: true},
		{ID: 2, SlotKey: "home-hero", IsActive: true, StartsAt: ts(now.Add(time.Hour))},
		{ID: 3, SlotKey: "home-hero", IsActive: true, EndsAt: ts(now.Add(-time.Hour))},
		{ID: 4, SlotKey: "home-hero", IsActive: false},
		{ID: 5, SlotKey: "other", IsActive: true},
	}}
	r := NewResolver(store)

	got, err := r.ResolveSlotAll(context.Background(), "home-hero", now, false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(1), got[0].ID)

	for _, p := range got {
		if p.StartsAt != nil && p.StartsAt.After(now) {
			t.Fatal("returned a placement that has not started")
		}
		if p.EndsAt != nil && !p.EndsAt.After(now) {
			t.Fatal("returned a placement that has ended")
		}
	}
}

func TestResolveSlotPrefersHigherPriority(t *testing.T) {
	now := time.Now()
	store := &fakeStore{rows: []models.ContentPlacement{
		{ID: 1, SlotKey: "home-hero", IsActive: true, Priority: 5},
		{ID: 2, SlotKey: "home-hero", IsActive: true, Priority: 10},
	}}
	r := NewResolver(store)

	got, err := r.ResolveSlot(context.Background(), "home-hero", now, false)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 10, got.Priority)
}

func TestResolveSlotPriorityTiesAreStable(t *testing.T) {
	now := time.Now()
	store := &fakeStore{rows: []models.ContentPlacement{
		{ID: 7, SlotKey: "sidebar", IsActive: true, Priority: 3},
		{ID: 8, SlotKey: "sidebar", IsActive: true, Priority: 3},
	}}
	r := NewResolver(store)

	got, err := r.ResolveSlotAll(context.Background(), "sidebar", now, false)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(7), got[0].ID)
	assert.Equal(t, uint64(8), got[1].ID)
}

func TestResolveSlotDeviceScopeFilter(t *testing.T) {
	now := time.Now()
	store := &fakeStore{rows: []models.ContentPlacement{
		{ID: 1, SlotKey: "promo", IsActive: true, DeviceScope: models.DeviceScopeMobile, Priority: 10},
		{ID: 2, SlotKey: "promo", IsActive: true, DeviceScope: models.DeviceScopeAll, Priority: 1},
	}}
	r := NewResolver(store)

	// Desktop caller: the mobile-only placement is excluded everywhere.
	all, err := r.ResolveSlotAll(context.Background(), "promo", now, false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, uint64(2), all[0].ID)

	one, err := r.ResolveSlot(context.Background(), "promo", now, false)
	require.NoError(t, err)
	require.NotNil(t, one)
	assert.Equal(t, uint64(2), one.ID)

	// Mobile caller sees both, mobile placement first by priority.
	all, err = r.ResolveSlotAll(context.Background(), "promo", now, true)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, uint64(1), all[0].ID)
}

func TestResolveSlotEmptyWhenNothingPlaced(t *testing.T) {
	r := NewResolver(&fakeStore{})

	one, err := r.ResolveSlot(context.Background(), "empty-slot", time.Now(), false)
	require.NoError(t, err)
	assert.Nil(t, one)

	all, err := r.ResolveSlotAll(context.Background(), "empty-slot", time.Now(), false)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestResolveSlotNotProvisionedResolvesEmpty(t *testing.T) {
	store := &fakeStore{err: &mysql.MySQLError{Number: 1146, Message: "Table 'slotpress.content_placements' doesn't exist"}}
	r := NewResolver(store)

	all, err := r.ResolveSlotAll(context.Background(), "home-hero", time.Now(), false)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestResolveSlotCanceledContextResolvesEmpty(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := &fakeStore{rows: []models.ContentPlacement{{ID: 1, SlotKey: "home-hero", IsActive: true}}}
	r := NewResolver(store)

	all, err := r.ResolveSlotAll(ctx, "home-hero", time.Now(), false)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestResolveSlotUnexpectedErrorPropagates(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	r := NewResolver(store)

	_, err := r.ResolveSlotAll(context.Background(), "home-hero", time.Now(), false)
	require.Error(t, err)
}
