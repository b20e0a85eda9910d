package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/slotpress/slotpress/app/repository"
	"github.com/slotpress/slotpress/internal/pkg/usercontext"
)

// HandleMerchIndex renders the merch store page
func HandleMerchIndex(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	offset, limit := parsePagination(c, 24, 100)

	items, err := repository.GetGlobalFactory().GetMerchRepository().GetActive(offset, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch merch items")
	}

	return c.Render("merch/index", fiber.Map{
		"Title":         "Merch",
		"Items":         items,
		"FromProtected": userCtx.IsLoggedIn,
		"IsAdmin":       userCtx.IsAdmin,
		"Flash":         flash.Get(c),
	})
}

// HandleMerchShow renders a single merch item page
func HandleMerchShow(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	item, err := repository.GetGlobalFactory().GetMerchRepository().GetBySlug(c.Params("slug"))
	if err != nil || !item.IsActive {
		return c.Status(fiber.StatusNotFound).SendString("Merch item not found")
	}

	return c.Render("merch/show", fiber.Map{
		"Title":         item.Name,
		"Item":          item,
		"FromProtected": userCtx.IsLoggedIn,
		"IsAdmin":       userCtx.IsAdmin,
		"Flash":         flash.Get(c),
	})
}
