package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/slotpress/slotpress/app/models"
	"github.com/slotpress/slotpress/app/repository"
	"github.com/slotpress/slotpress/internal/pkg/placement"
	"github.com/slotpress/slotpress/internal/pkg/slotaccess"
	"github.com/slotpress/slotpress/internal/pkg/usercontext"
)

// SlotController serves the public slot surface: resolved content for a slot
// key and the access decision for a slot slug.
type SlotController struct {
	resolver  *placement.Resolver
	evaluator *slotaccess.Evaluator
}

var slotController *SlotController

// InitializeSlotController wires the resolver and evaluator to the global
// repositories
func InitializeSlotController() {
	repos := repository.GetGlobalRepositories()
	slotController = NewSlotController(repos)
}

// NewSlotController creates a slot controller on top of the given repositories
func NewSlotController(repos *repository.Repositories) *SlotController {
	return &SlotController{
		resolver:  placement.NewResolver(repos.Placement),
		evaluator: slotaccess.NewEvaluator(&slotAccessStore{repos: repos}, slotaccess.ConfigFromEnv()),
	}
}

// GetSlotController returns the initialized slot controller
func GetSlotController() *SlotController {
	if slotController == nil {
		panic("Slot controller not initialized. Call InitializeSlotController first.")
	}
	return slotController
}

// slotAccessStore adapts the repositories to the evaluator's store interface
type slotAccessStore struct {
	repos *repository.Repositories
}

func (s *slotAccessStore) GetSlotBySlug(ctx context.Context, slug string) (*models.Slot, error) {
	return s.repos.Slot.GetBySlug(ctx, slug)
}

func (s *slotAccessStore) GetActiveEntitlement(ctx context.Context, userID, slotID uint64) (*models.Entitlement, error) {
	return s.repos.Entitlement.GetActiveForUserSlot(ctx, userID, slotID)
}

// sessionFromRequest translates the request's user context into an evaluator
// session; nil for anonymous visitors.
func sessionFromRequest(c *fiber.Ctx) (*slotaccess.Session, bool) {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return nil, false
	}
	return &slotaccess.Session{UserID: userCtx.UserID}, userCtx.IsAdmin
}

// HandleSlotAccess returns the access decision for a slot slug
func (sc *SlotController) HandleSlotAccess(c *fiber.Ctx) error {
	sess, isAdmin := sessionFromRequest(c)

	access := sc.evaluator.EvaluateAccess(c.Context(), c.Params("slug"), sess, isAdmin)
	return c.JSON(access)
}

// HandleSlotContent returns the live placements for a slot. The access
// decision gates the content: denied callers get the decision and an empty
// placement list instead of an error status, so the page can render its
// paywall state from one response.
func (sc *SlotController) HandleSlotContent(c *fiber.Ctx) error {
	slug := c.Params("slug")
	sess, isAdmin := sessionFromRequest(c)

	access := sc.evaluator.EvaluateAccess(c.Context(), slug, sess, isAdmin)
	if !access.HasAccess {
		return c.JSON(fiber.Map{
			"access":     access,
			"placements": []models.ContentPlacement{},
		})
	}

	placements, err := sc.resolver.ResolveSlotAll(c.Context(), slug, time.Now(), isMobileRequest(c))
	if err != nil {
		// A broken placement store must not take the page down; serve the
		// slot empty and let the content fall back to its defaults.
		log.Errorf("[Slots] resolving %q failed, serving empty: %v", slug, err)
		placements = nil
	}
	if placements == nil {
		placements = []models.ContentPlacement{}
	}

	return c.JSON(fiber.Map{
		"access":     access,
		"placements": placements,
	})
}

// HandleSlotVariant returns only the winning placement for a slot, for
// clients that render a single variant.
func (sc *SlotController) HandleSlotVariant(c *fiber.Ctx) error {
	slug := c.Params("slug")
	sess, isAdmin := sessionFromRequest(c)

	access := sc.evaluator.EvaluateAccess(c.Context(), slug, sess, isAdmin)
	if !access.HasAccess {
		return c.JSON(fiber.Map{
			"access":    access,
			"placement": nil,
		})
	}

	variant, err := sc.resolver.ResolveSlot(c.Context(), slug, time.Now(), isMobileRequest(c))
	if err != nil {
		log.Errorf("[Slots] resolving %q failed, serving empty: %v", slug, err)
		variant = nil
	}

	return c.JSON(fiber.Map{
		"access":    access,
		"placement": variant,
	})
}
