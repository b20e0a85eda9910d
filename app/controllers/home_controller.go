package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/slotpress/slotpress/app/repository"
	"github.com/slotpress/slotpress/internal/pkg/usercontext"
)

// HandleStart renders the start page with the latest published content
func HandleStart(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	factory := repository.GetGlobalFactory()

	articles, err := factory.GetArticleRepository().GetPublished(0, 6)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch articles")
	}
	clips, err := factory.GetClipRepository().GetPublished(0, 4)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch clips")
	}

	return c.Render("home", fiber.Map{
		"Title":         "SlotPress",
		"Articles":      articles,
		"Clips":         clips,
		"FromProtected": userCtx.IsLoggedIn,
		"IsAdmin":       userCtx.IsAdmin,
		"Flash":         flash.Get(c),
	})
}
