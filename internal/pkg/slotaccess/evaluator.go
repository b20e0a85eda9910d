package slotaccess

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/slotpress/slotpress/app/models"
	"github.com/slotpress/slotpress/internal/pkg/env"
)

// Reason explains a denied access decision.
type Reason string

const (
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonInactiveSlot    Reason = "inactive_slot"
	ReasonPaymentRequired Reason = "payment_required"
)

// SlotAccess is the outcome of an access evaluation. Slot is attached when the
// slot definition was found (or synthesized for a dev fallback slug).
type SlotAccess struct {
	HasAccess bool         `json:"has_access"`
	Reason    Reason       `json:"reason,omitempty"`
	Slot      *models.Slot `json:"slot,omitempty"`
}

// Session identifies the visitor. A nil *Session means an anonymous visitor.
type Session struct {
	UserID uint64
}

// Store is the slice of the registry/entitlement repositories the evaluator
// needs.
type Store interface {
	GetSlotBySlug(ctx context.Context, slug string) (*models.Slot, error)
	// GetActiveEntitlement returns the newest entitlement for (user, slot)
	// whose is_active flag is set, or gorm.ErrRecordNotFound.
	GetActiveEntitlement(ctx context.Context, userID, slotID uint64) (*models.Entitlement, error)
}

// Config tunes the evaluator's failure policy.
type Config struct {
	// FailOpenOnError grants access when a lookup fails unexpectedly, so a
	// transient backend fault never locks out a paying user. Set to false to
	// deny (payment_required) instead. The historic behavior is fail-open.
	FailOpenOnError bool
	// DevFallbackSlugs are slugs that synthesize a free slot when no record
	// exists, used by local environments before the registry is seeded.
	DevFallbackSlugs []string
}

func DefaultConfig() Config {
	return Config{
		FailOpenOnError:  true,
		DevFallbackSlugs: []string{"demo", "sandbox"},
	}
}

// ConfigFromEnv returns the default config with the failure policy taken
// from SLOT_ACCESS_FAIL_OPEN.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.FailOpenOnError = env.GetEnv("SLOT_ACCESS_FAIL_OPEN", "true") != "false"
	return cfg
}

// Evaluator decides whether a visitor may see a slot's content and, if not,
// why. Evaluation is read-only; session and admin state are injected rather
// than read from ambient request state.
type Evaluator struct {
	store Store
	cfg   Config
	now   func() time.Time
}

func NewEvaluator(store Store, cfg Config) *Evaluator {
	return &Evaluator{store: store, cfg: cfg, now: time.Now}
}

// EvaluateAccess runs the access checks in strict order, short-circuiting on
// the first match:
//
//  1. missing slot: grant (fail-open; content must not disappear over a
//     provisioning gap), synthesizing a definition for dev fallback slugs
//  2. inactive slot: deny inactive_slot
//  3. free slot: grant
//  4. anonymous visitor: deny unauthenticated
//  5. admin: grant
//  6. no active entitlement: deny payment_required
//  7. expired entitlement: deny payment_required (expiry beats is_active)
//  8. grant
//
// A canceled context terminates silently with the neutral no-access value.
func (e *Evaluator) EvaluateAccess(ctx context.Context, slotSlug string, session *Session, isAdmin bool) SlotAccess {
	slot, err := e.store.GetSlotBySlug(ctx, slotSlug)
	if err != nil {
		if canceled(ctx, err) {
			return SlotAccess{}
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if e.isDevFallback(slotSlug) {
				return SlotAccess{HasAccess: true, Slot: devFallbackSlot(slotSlug)}
			}
			return SlotAccess{HasAccess: true}
		}
		return e.resolveFault("slot lookup", slotSlug, err)
	}

	if !slot.IsActive {
		return SlotAccess{Reason: ReasonInactiveSlot, Slot: slot}
	}

	if slot.IsFree() {
		return SlotAccess{HasAccess: true, Slot: slot}
	}

	if session == nil {
		return SlotAccess{Reason: ReasonUnauthenticated, Slot: slot}
	}

	// Admins bypass every paywall.
	if isAdmin {
		return SlotAccess{HasAccess: true, Slot: slot}
	}

	ent, err := e.store.GetActiveEntitlement(ctx, session.UserID, slot.ID)
	if err != nil {
		if canceled(ctx, err) {
			return SlotAccess{}
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SlotAccess{Reason: ReasonPaymentRequired, Slot: slot}
		}
		return e.resolveFault("entitlement lookup", slotSlug, err)
	}

	// Expiry is authoritative over the stored is_active flag.
	if !ent.ActiveAt(e.now()) {
		return SlotAccess{Reason: ReasonPaymentRequired, Slot: slot}
	}

	return SlotAccess{HasAccess: true, Slot: slot}
}

func (e *Evaluator) resolveFault(stage, slug string, err error) SlotAccess {
	if e.cfg.FailOpenOnError {
		log.Errorf("[SlotAccess] %s failed for %q, failing open: %v", stage, slug, err)
		return SlotAccess{HasAccess: true}
	}
	log.Errorf("[SlotAccess] %s failed for %q, failing closed: %v", stage, slug, err)
	return SlotAccess{Reason: ReasonPaymentRequired}
}

func (e *Evaluator) isDevFallback(slug string) bool {
	for _, s := range e.cfg.DevFallbackSlugs {
		if s == slug {
			return true
		}
	}
	return false
}

func devFallbackSlot(slug string) *models.Slot {
	return &models.Slot{
		DisplayName:       "Development Slot",
		Slug:              slug,
		Kind:              models.SlotKindContent,
		Visibility:        models.SlotVisibilityPublic,
		MonetizationModel: models.MonetizationFree,
		IsActive:          true,
	}
}

func canceled(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
