package placement

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/slotpress/slotpress/app/models"
)

// Store is the slice of the placement repository the resolver needs.
type Store interface {
	// GetLiveBySlotKey returns active placements for the slot key whose
	// window contains now, ordered by priority descending with insertion
	// order breaking ties.
	GetLiveBySlotKey(ctx context.Context, slotKey string, now time.Time) ([]models.ContentPlacement, error)
}

// Resolver decides which content items a slot currently shows. Window and
// activity filtering happen at the store; device-scope filtering happens here
// so the store query stays simple.
type Resolver struct {
	store Store
}

func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// ResolveSlotAll returns every placement currently live in the slot for the
// caller's device class, best first. A missing placements table (fresh
// environment) and a canceled context both yield an empty result instead of
// an error; the caller falls back to its default content.
func (r *Resolver) ResolveSlotAll(ctx context.Context, slotKey string, now time.Time, isMobile bool) ([]models.ContentPlacement, error) {
	rows, err := r.store.GetLiveBySlotKey(ctx, slotKey, now)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, nil
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if isNotProvisioned(err) {
			log.Warnf("[Placement] placements table not provisioned yet, resolving %q to empty", slotKey)
			return nil, nil
		}
		return nil, err
	}

	resolved := make([]models.ContentPlacement, 0, len(rows))
	for _, row := range rows {
		if row.MatchesDevice(isMobile) {
			resolved = append(resolved, row)
		}
	}
	return resolved, nil
}

// ResolveSlot returns the single best live placement for the slot, or nil
// when nothing is placed.
func (r *Resolver) ResolveSlot(ctx context.Context, slotKey string, now time.Time, isMobile bool) (*models.ContentPlacement, error) {
	all, err := r.ResolveSlotAll(ctx, slotKey, now, isMobile)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	return &all[0], nil
}

// mysqlErrNoSuchTable is MySQL error 1146 ("table doesn't exist"), the
// recognized not-provisioned condition.
const mysqlErrNoSuchTable = 1146

func isNotProvisioned(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlErrNoSuchTable
	}
	// GORM wraps some dialect errors as plain strings.
	return strings.Contains(err.Error(), "doesn't exist")
}
