package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/slotpress/slotpress/app/repository"
	"github.com/slotpress/slotpress/internal/pkg/metrics/counter"
	"github.com/slotpress/slotpress/internal/pkg/usercontext"
)

// HandleClipIndex renders the public clip gallery
func HandleClipIndex(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	offset, limit := parsePagination(c, 24, 100)

	clips, err := repository.GetGlobalFactory().GetClipRepository().GetPublished(offset, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch clips")
	}

	return c.Render("clips/index", fiber.Map{
		"Title":         "Clips",
		"Clips":         clips,
		"FromProtected": userCtx.IsLoggedIn,
		"IsAdmin":       userCtx.IsAdmin,
		"Flash":         flash.Get(c),
	})
}

// HandleClipShow renders a single clip page by its public UUID
func HandleClipShow(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	clip, err := repository.GetGlobalFactory().GetClipRepository().GetByUUID(c.Params("uuid"))
	if err != nil || !clip.Published {
		return c.Status(fiber.StatusNotFound).SendString("Clip not found")
	}

	if err := counter.AddClipView(clip.ID); err != nil {
		log.Warnf("[Clips] view counter for %d failed: %v", clip.ID, err)
	}

	return c.Render("clips/show", fiber.Map{
		"Title":         clip.Title,
		"Clip":          clip,
		"FromProtected": userCtx.IsLoggedIn,
		"IsAdmin":       userCtx.IsAdmin,
		"Flash":         flash.Get(c),
	})
}
