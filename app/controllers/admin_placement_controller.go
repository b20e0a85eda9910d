package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/slotpress/slotpress/app/models"
	"github.com/slotpress/slotpress/app/repository"
	"github.com/slotpress/slotpress/internal/pkg/jobqueue"
)

// AdminPlacementController manages content placements. Slot keys are loose
// strings; the reconcile job flags the ones that match no registered slot.
type AdminPlacementController struct {
	placementRepo repository.PlacementRepository
}

var adminPlacementController *AdminPlacementController

// InitializeAdminPlacementController initializes the admin placement controller with repository
func InitializeAdminPlacementController() {
	adminPlacementController = NewAdminPlacementController(repository.GetGlobalFactory().GetPlacementRepository())
}

// NewAdminPlacementController creates a new admin placement controller with repository
func NewAdminPlacementController(placementRepo repository.PlacementRepository) *AdminPlacementController {
	return &AdminPlacementController{placementRepo: placementRepo}
}

// GetAdminPlacementController returns the initialized admin placement controller
func GetAdminPlacementController() *AdminPlacementController {
	if adminPlacementController == nil {
		panic("Admin placement controller not initialized. Call InitializeAdminPlacementController first.")
	}
	return adminPlacementController
}

type placementRequest struct {
	SlotKey      string     `json:"slot_key"`
	ContentType  string     `json:"content_type"`
	ContentID    *uint64    `json:"content_id"`
	Priority     *int       `json:"priority"`
	StartsAt     *time.Time `json:"starts_at"`
	EndsAt       *time.Time `json:"ends_at"`
	DeviceScope  string     `json:"device_scope"`
	MetadataJSON string     `json:"metadata_json"`
}

func validPlacementWindow(startsAt, endsAt *time.Time) bool {
	if startsAt == nil || endsAt == nil {
		return true
	}
	return endsAt.After(*startsAt)
}

// HandleList returns all placements with pagination
func (apc *AdminPlacementController) HandleList(c *fiber.Ctx) error {
	if slotKey := c.Query("slot_key"); slotKey != "" {
		placements, err := apc.placementRepo.GetBySlotKey(slotKey)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load placements"})
		}
		return c.JSON(fiber.Map{"placements": placements, "total": len(placements)})
	}

	offset, limit := parsePagination(c, 50, 200)
	placements, err := apc.placementRepo.GetAll(offset, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load placements"})
	}
	total, _ := apc.placementRepo.Count()

	return c.JSON(fiber.Map{"placements": placements, "total": total})
}

// HandleCreate places content into a slot
func (apc *AdminPlacementController) HandleCreate(c *fiber.Ctx) error {
	var req placementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}
	if req.SlotKey == "" || req.ContentType == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": "slot_key and content_type are required"})
	}
	if !validPlacementWindow(req.StartsAt, req.EndsAt) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": "ends_at must be after starts_at"})
	}

	placement := &models.ContentPlacement{
		SlotKey:      req.SlotKey,
		ContentType:  req.ContentType,
		ContentID:    req.ContentID,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
		DeviceScope:  req.DeviceScope,
		MetadataJSON: req.MetadataJSON,
		IsActive:     true,
	}
	if req.Priority != nil {
		placement.Priority = *req.Priority
	}
	if placement.DeviceScope == "" {
		placement.DeviceScope = models.DeviceScopeAll
	}

	if err := apc.placementRepo.Create(placement); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create placement"})
	}

	return c.Status(fiber.StatusCreated).JSON(placement)
}

// HandleUpdate updates a placement's schedule, priority or targeting
func (apc *AdminPlacementController) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid placement id"})
	}

	placement, err := apc.placementRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Placement not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load placement"})
	}

	var req placementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	if req.SlotKey != "" {
		placement.SlotKey = req.SlotKey
		// The next reconcile pass re-checks the key against the registry.
		placement.Orphaned = false
	}
	if req.ContentType != "" {
		placement.ContentType = req.ContentType
	}
	if req.ContentID != nil {
		placement.ContentID = req.ContentID
	}
	if req.Priority != nil {
		placement.Priority = *req.Priority
	}
	if req.StartsAt != nil {
		placement.StartsAt = req.StartsAt
	}
	if req.EndsAt != nil {
		placement.EndsAt = req.EndsAt
	}
	if req.DeviceScope != "" {
		placement.DeviceScope = req.DeviceScope
	}
	if req.MetadataJSON != "" {
		placement.MetadataJSON = req.MetadataJSON
	}

	if !validPlacementWindow(placement.StartsAt, placement.EndsAt) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": "ends_at must be after starts_at"})
	}

	if err := apc.placementRepo.Update(placement); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to update placement"})
	}

	return c.JSON(placement)
}

// HandleSetActive activates or deactivates a placement
func (apc *AdminPlacementController) HandleSetActive(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid placement id"})
	}

	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	if err := apc.placementRepo.SetActive(id, req.IsActive); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to update placement"})
	}

	return c.JSON(fiber.Map{"id": id, "is_active": req.IsActive})
}

// HandleReconcile enqueues a reconciliation pass, optionally scoped to one
// slot key
func (apc *AdminPlacementController) HandleReconcile(c *fiber.Ctx) error {
	job, err := jobqueue.GetManager().RunReconcileOnce(c.Query("slot_key"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to enqueue reconciliation"})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"job_id": job.ID})
}
