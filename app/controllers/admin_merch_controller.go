package controllers

import (
	"errors"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/slotpress/slotpress/app/models"
	"github.com/slotpress/slotpress/app/repository"
	"github.com/slotpress/slotpress/internal/pkg/mediastore"
)

// AdminMerchController manages merch store items and their product images
type AdminMerchController struct {
	merchRepo   repository.MerchRepository
	mediaConfig *mediastore.Config
	mediaClient *mediastore.Client
}

var adminMerchController *AdminMerchController

// InitializeAdminMerchController initializes the admin merch controller. Media
// storage is optional; without it image uploads return 503.
func InitializeAdminMerchController() {
	controller := &AdminMerchController{
		merchRepo: repository.GetGlobalFactory().GetMerchRepository(),
	}

	cfg, err := mediastore.LoadConfig()
	if err != nil {
		log.Warnf("[Admin] media storage config invalid, merch image uploads disabled: %v", err)
	} else if cfg.IsEnabled() {
		client, err := mediastore.NewClient(cfg)
		if err != nil {
			log.Warnf("[Admin] media storage unavailable, merch image uploads disabled: %v", err)
		} else {
			controller.mediaConfig = cfg
			controller.mediaClient = client
		}
	}

	adminMerchController = controller
}

// GetAdminMerchController returns the initialized admin merch controller
func GetAdminMerchController() *AdminMerchController {
	if adminMerchController == nil {
		panic("Admin merch controller not initialized. Call InitializeAdminMerchController first.")
	}
	return adminMerchController
}

type merchRequest struct {
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Details    string `json:"details"`
	PriceCents *int64 `json:"price_cents"`
	Stock      *int   `json:"stock"`
}

// HandleList returns all merch items, inactive included
func (amc *AdminMerchController) HandleList(c *fiber.Ctx) error {
	offset, limit := parsePagination(c, 50, 200)

	items, err := amc.merchRepo.GetAll(offset, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load merch items"})
	}
	total, _ := amc.merchRepo.Count()

	return c.JSON(fiber.Map{"items": items, "total": total})
}

// HandleCreate creates a new merch item
func (amc *AdminMerchController) HandleCreate(c *fiber.Ctx) error {
	var req merchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	item := &models.MerchItem{
		Name:     req.Name,
		Slug:     req.Slug,
		Details:  req.Details,
		IsActive: true,
	}
	if req.PriceCents != nil {
		item.PriceCents = *req.PriceCents
	}
	if req.Stock != nil {
		item.Stock = *req.Stock
	}
	if err := validator.New().Struct(item); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}

	if err := amc.merchRepo.Create(item); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create merch item"})
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdate updates a merch item's listing or stock
func (amc *AdminMerchController) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid merch item id"})
	}

	item, err := amc.merchRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Merch item not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load merch item"})
	}

	var req merchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Slug != "" {
		item.Slug = req.Slug
	}
	if req.Details != "" {
		item.Details = req.Details
	}
	if req.PriceCents != nil {
		item.PriceCents = *req.PriceCents
	}
	if req.Stock != nil {
		item.Stock = *req.Stock
	}

	if err := validator.New().Struct(item); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}

	if err := amc.merchRepo.Update(item); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to update merch item"})
	}

	return c.JSON(item)
}

// HandleSetActive lists or delists a merch item
func (amc *AdminMerchController) HandleSetActive(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid merch item id"})
	}

	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	item, err := amc.merchRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Merch item not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load merch item"})
	}

	item.IsActive = req.IsActive
	if err := amc.merchRepo.Update(item); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to update merch item"})
	}

	return c.JSON(fiber.Map{"id": item.ID, "is_active": item.IsActive})
}

// HandleUploadImage accepts a product image upload, resizes it and stores it
// in the media bucket
func (amc *AdminMerchController) HandleUploadImage(c *fiber.Ctx) error {
	if amc.mediaClient == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "media_storage_disabled", "message": "Media storage is not configured"})
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid merch item id"})
	}

	item, err := amc.merchRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Merch item not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load merch item"})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "image file is required"})
	}
	if fileHeader.Size > maxPosterUploadBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": "file_too_large", "message": "Image must be 10 MB or smaller"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to read upload"})
	}
	defer file.Close()

	original, err := io.ReadAll(io.LimitReader(file, maxPosterUploadBytes))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to read upload"})
	}

	thumb, err := mediastore.MakeThumbnail(original, mediastore.MerchThumbnailWidth)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "invalid_image", "message": "Could not decode product image"})
	}

	now := time.Now()
	key := amc.mediaConfig.MerchImageKey(item.Slug, now.Year(), int(now.Month()))
	url, err := amc.mediaClient.Upload(c.Context(), key, thumb, "image/jpeg")
	if err != nil {
		log.Errorf("[Admin] merch image upload failed for %s: %v", item.Slug, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to store image"})
	}

	item.ImageKey = key
	if err := amc.merchRepo.Update(item); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to update merch item"})
	}

	return c.JSON(fiber.Map{"image_key": key, "image_url": url})
}

// HandleDelete soft-deletes a merch item and removes its image from the bucket
func (amc *AdminMerchController) HandleDelete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid merch item id"})
	}

	item, err := amc.merchRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Merch item not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load merch item"})
	}

	if item.ImageKey != "" && amc.mediaClient != nil {
		if err := amc.mediaClient.Delete(c.Context(), item.ImageKey); err != nil {
			log.Warnf("[Admin] failed to delete merch image %s: %v", item.ImageKey, err)
		}
	}

	if err := amc.merchRepo.Delete(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to delete merch item"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
