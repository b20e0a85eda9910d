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
	"github.com/slotpress/slotpress/internal/pkg/usercontext"
)

const maxPosterUploadBytes = 10 << 20

// AdminClipController manages video clips and their poster images
type AdminClipController struct {
	clipRepo    repository.ClipRepository
	mediaConfig *mediastore.Config
	mediaClient *mediastore.Client
}

var adminClipController *AdminClipController

// InitializeAdminClipController initializes the admin clip controller. Media
// storage is optional; without it poster uploads return 503.
func InitializeAdminClipController() {
	controller := &AdminClipController{
		clipRepo: repository.GetGlobalFactory().GetClipRepository(),
	}

	cfg, err := mediastore.LoadConfig()
	if err != nil {
		log.Warnf("[Admin] media storage config invalid, poster uploads disabled: %v", err)
	} else if cfg.IsEnabled() {
		client, err := mediastore.NewClient(cfg)
		if err != nil {
			log.Warnf("[Admin] media storage unavailable, poster uploads disabled: %v", err)
		} else {
			controller.mediaConfig = cfg
			controller.mediaClient = client
		}
	}

	adminClipController = controller
}

// GetAdminClipController returns the initialized admin clip controller
func GetAdminClipController() *AdminClipController {
	if adminClipController == nil {
		panic("Admin clip controller not initialized. Call InitializeAdminClipController first.")
	}
	return adminClipController
}

type clipRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
	DurationSec *int   `json:"duration_sec"`
}

// HandleList returns all clips, drafts included
func (acc *AdminClipController) HandleList(c *fiber.Ctx) error {
	offset, limit := parsePagination(c, 50, 200)

	clips, err := acc.clipRepo.GetAll(offset, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load clips"})
	}
	total, _ := acc.clipRepo.Count()

	return c.JSON(fiber.Map{"clips": clips, "total": total})
}

// HandleCreate creates a new unpublished clip
func (acc *AdminClipController) HandleCreate(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	var req clipRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	clip := &models.Clip{
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		UserID:      userCtx.UserID,
	}
	if req.DurationSec != nil {
		clip.DurationSec = *req.DurationSec
	}
	if err := validator.New().Struct(clip); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}

	if err := acc.clipRepo.Create(clip); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create clip"})
	}

	return c.Status(fiber.StatusCreated).JSON(clip)
}

// HandleUpdate updates a clip's metadata
func (acc *AdminClipController) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid clip id"})
	}

	clip, err := acc.clipRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Clip not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load clip"})
	}

	var req clipRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	if req.Title != "" {
		clip.Title = req.Title
	}
	if req.Description != "" {
		clip.Description = req.Description
	}
	if req.VideoURL != "" {
		clip.VideoURL = req.VideoURL
	}
	if req.DurationSec != nil {
		clip.DurationSec = *req.DurationSec
	}

	if err := validator.New().Struct(clip); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}

	if err := acc.clipRepo.Update(clip); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to update clip"})
	}

	return c.JSON(clip)
}

// HandleSetPublished publishes or unpublishes a clip
func (acc *AdminClipController) HandleSetPublished(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid clip id"})
	}

	var req struct {
		Published bool `json:"published"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	clip, err := acc.clipRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Clip not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load clip"})
	}

	clip.Published = req.Published
	if err := acc.clipRepo.Update(clip); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to update clip"})
	}

	return c.JSON(fiber.Map{"id": clip.ID, "published": clip.Published})
}

// HandleUploadPoster accepts a poster image upload, resizes it and stores it
// in the media bucket
func (acc *AdminClipController) HandleUploadPoster(c *fiber.Ctx) error {
	if acc.mediaClient == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "media_storage_disabled", "message": "Media storage is not configured"})
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid clip id"})
	}

	clip, err := acc.clipRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Clip not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load clip"})
	}

	fileHeader, err := c.FormFile("poster")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "poster file is required"})
	}
	if fileHeader.Size > maxPosterUploadBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": "file_too_large", "message": "Poster must be 10 MB or smaller"})
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

	thumb, err := mediastore.MakeThumbnail(original, mediastore.PosterThumbnailWidth)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "invalid_image", "message": "Could not decode poster image"})
	}

	now := time.Now()
	key := acc.mediaConfig.PosterKey(clip.UUID, now.Year(), int(now.Month()))
	url, err := acc.mediaClient.Upload(c.Context(), key, thumb, "image/jpeg")
	if err != nil {
		log.Errorf("[Admin] poster upload failed for clip %s: %v", clip.UUID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to store poster"})
	}

	clip.PosterKey = key
	if err := acc.clipRepo.Update(clip); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to update clip"})
	}

	return c.JSON(fiber.Map{"poster_key": key, "poster_url": url})
}

// HandleDelete soft-deletes a clip and removes its poster from the bucket
func (acc *AdminClipController) HandleDelete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid clip id"})
	}

	clip, err := acc.clipRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Clip not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load clip"})
	}

	if clip.PosterKey != "" && acc.mediaClient != nil {
		if err := acc.mediaClient.Delete(c.Context(), clip.PosterKey); err != nil {
			log.Warnf("[Admin] failed to delete poster %s: %v", clip.PosterKey, err)
		}
	}

	if err := acc.clipRepo.Delete(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to delete clip"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
