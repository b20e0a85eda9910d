package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/slotpress/slotpress/app/models"
	"github.com/slotpress/slotpress/app/repository"
)

// AdminEntitlementController manages manual grants and revocations. Revoking
// flips is_active instead of deleting, so the purchase history stays intact.
type AdminEntitlementController struct {
	entitlementRepo repository.EntitlementRepository
	slotRepo        repository.SlotRepository
	userRepo        repository.UserRepository
}

var adminEntitlementController *AdminEntitlementController

// InitializeAdminEntitlementController initializes the admin entitlement controller with repositories
func InitializeAdminEntitlementController() {
	factory := repository.GetGlobalFactory()
	adminEntitlementController = &AdminEntitlementController{
		entitlementRepo: factory.GetEntitlementRepository(),
		slotRepo:        factory.GetSlotRepository(),
		userRepo:        factory.GetUserRepository(),
	}
}

// GetAdminEntitlementController returns the initialized admin entitlement controller
func GetAdminEntitlementController() *AdminEntitlementController {
	if adminEntitlementController == nil {
		panic("Admin entitlement controller not initialized. Call InitializeAdminEntitlementController first.")
	}
	return adminEntitlementController
}

type grantRequest struct {
	UserID    uint64     `json:"user_id"`
	SlotID    uint64     `json:"slot_id"`
	Source    string     `json:"source"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// HandleGrant manually grants a user access to a slot
func (aec *AdminEntitlementController) HandleGrant(c *fiber.Ctx) error {
	var req grantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}
	if req.UserID == 0 || req.SlotID == 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": "user_id and slot_id are required"})
	}

	if _, err := aec.userRepo.GetByID(req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load user"})
	}
	if _, err := aec.slotRepo.GetByID(req.SlotID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Slot not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load slot"})
	}

	source := req.Source
	if source == "" {
		source = models.EntitlementSourceManual
	}

	entitlement := &models.Entitlement{
		UserID:    req.UserID,
		SlotID:    req.SlotID,
		Source:    source,
		GrantedAt: time.Now(),
		ExpiresAt: req.ExpiresAt,
		IsActive:  true,
	}

	if err := aec.entitlementRepo.Create(entitlement); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create entitlement"})
	}

	return c.Status(fiber.StatusCreated).JSON(entitlement)
}

// HandleRevoke deactivates an entitlement (refund, abuse, manual correction)
func (aec *AdminEntitlementController) HandleRevoke(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid entitlement id"})
	}

	if _, err := aec.entitlementRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Entitlement not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load entitlement"})
	}

	if err := aec.entitlementRepo.Deactivate(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to revoke entitlement"})
	}

	return c.JSON(fiber.Map{"id": id, "is_active": false})
}

// HandleListByUser returns all entitlements of a user
func (aec *AdminEntitlementController) HandleListByUser(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid user id"})
	}

	entitlements, err := aec.entitlementRepo.GetByUserID(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load entitlements"})
	}

	return c.JSON(fiber.Map{"entitlements": entitlements})
}

// HandleListBySlot returns the entitlements granted for a slot
func (aec *AdminEntitlementController) HandleListBySlot(c *fiber.Ctx) error {
	slotID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid slot id"})
	}
	offset, limit := parsePagination(c, 50, 200)

	entitlements, err := aec.entitlementRepo.GetBySlotID(slotID, offset, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load entitlements"})
	}

	return c.JSON(fiber.Map{"entitlements": entitlements})
}
