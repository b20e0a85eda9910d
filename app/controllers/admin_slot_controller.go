package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/slotpress/slotpress/app/models"
	"github.com/slotpress/slotpress/app/repository"
)

// AdminSlotController manages the slot registry. Slots are the stable unit
// entitlements point at, so they can be deactivated but never deleted.
type AdminSlotController struct {
	slotRepo repository.SlotRepository
}

var adminSlotController *AdminSlotController

// InitializeAdminSlotController initializes the admin slot controller with repository
func InitializeAdminSlotController() {
	adminSlotController = NewAdminSlotController(repository.GetGlobalFactory().GetSlotRepository())
}

// NewAdminSlotController creates a new admin slot controller with repository
func NewAdminSlotController(slotRepo repository.SlotRepository) *AdminSlotController {
	return &AdminSlotController{slotRepo: slotRepo}
}

// GetAdminSlotController returns the initialized admin slot controller
func GetAdminSlotController() *AdminSlotController {
	if adminSlotController == nil {
		panic("Admin slot controller not initialized. Call InitializeAdminSlotController first.")
	}
	return adminSlotController
}

type slotRequest struct {
	DisplayName       string  `json:"display_name"`
	Slug              string  `json:"slug"`
	Description       string  `json:"description"`
	Kind              string  `json:"kind"`
	Visibility        string  `json:"visibility"`
	MonetizationModel string  `json:"monetization_model"`
	PriceCents        *int64  `json:"price_cents"`
	BillingInterval   *string `json:"billing_interval"`
}

// HandleList returns all slots with pagination
func (asc *AdminSlotController) HandleList(c *fiber.Ctx) error {
	offset, limit := parsePagination(c, 50, 200)

	slots, err := asc.slotRepo.GetAll(offset, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load slots"})
	}
	total, _ := asc.slotRepo.Count()

	return c.JSON(fiber.Map{"slots": slots, "total": total})
}

// HandleGet returns a single slot
func (asc *AdminSlotController) HandleGet(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid slot id"})
	}

	slot, err := asc.slotRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Slot not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load slot"})
	}

	return c.JSON(slot)
}

// HandleCreate registers a new slot
func (asc *AdminSlotController) HandleCreate(c *fiber.Ctx) error {
	var req slotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	slot := &models.Slot{
		DisplayName:       req.DisplayName,
		Slug:              req.Slug,
		Description:       req.Description,
		Kind:              req.Kind,
		Visibility:        req.Visibility,
		MonetizationModel: req.MonetizationModel,
		PriceCents:        req.PriceCents,
		BillingInterval:   req.BillingInterval,
		IsActive:          true,
	}
	if err := slot.Validate(); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}

	exists, err := asc.slotRepo.SlugExists(slot.Slug)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to check slug"})
	}
	if exists {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conflict", "message": "Slug is already in use"})
	}

	if err := asc.slotRepo.Create(slot); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create slot"})
	}

	return c.Status(fiber.StatusCreated).JSON(slot)
}

// HandleUpdate updates a slot's definition or pricing
func (asc *AdminSlotController) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid slot id"})
	}

	slot, err := asc.slotRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Slot not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load slot"})
	}

	var req slotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	if req.Slug != "" && req.Slug != slot.Slug {
		taken, err := asc.slotRepo.SlugExistsExceptID(req.Slug, slot.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to check slug"})
		}
		if taken {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conflict", "message": "Slug is already in use"})
		}
		slot.Slug = req.Slug
	}
	if req.DisplayName != "" {
		slot.DisplayName = req.DisplayName
	}
	if req.Description != "" {
		slot.Description = req.Description
	}
	if req.Kind != "" {
		slot.Kind = req.Kind
	}
	if req.Visibility != "" {
		slot.Visibility = req.Visibility
	}
	if req.MonetizationModel != "" {
		slot.MonetizationModel = req.MonetizationModel
	}
	if req.PriceCents != nil {
		slot.PriceCents = req.PriceCents
	}
	if req.BillingInterval != nil {
		slot.BillingInterval = req.BillingInterval
	}

	if err := slot.Validate(); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}

	if err := asc.slotRepo.Update(slot); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to update slot"})
	}

	return c.JSON(slot)
}

// HandleSetActive activates or deactivates a slot
func (asc *AdminSlotController) HandleSetActive(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid slot id"})
	}

	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	if err := asc.slotRepo.SetActive(id, req.IsActive); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to update slot"})
	}

	return c.JSON(fiber.Map{"id": id, "is_active": req.IsActive})
}
