package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/slotpress/slotpress/app/repository"
	"github.com/slotpress/slotpress/internal/pkg/metrics/counter"
	"github.com/slotpress/slotpress/internal/pkg/usercontext"
)

// HandleArticleIndex renders the public article list
func HandleArticleIndex(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	offset, limit := parsePagination(c, 20, 100)

	articles, err := repository.GetGlobalFactory().GetArticleRepository().GetPublished(offset, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch articles")
	}

	return c.Render("articles/index", fiber.Map{
		"Title":         "News",
		"Articles":      articles,
		"FromProtected": userCtx.IsLoggedIn,
		"IsAdmin":       userCtx.IsAdmin,
		"Flash":         flash.Get(c),
	})
}

// HandleArticleShow renders a single published article
func HandleArticleShow(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	article, err := repository.GetGlobalFactory().GetArticleRepository().GetBySlug(c.Params("slug"))
	if err != nil || !article.Published {
		return c.Status(fiber.StatusNotFound).SendString("Article not found")
	}

	// Views are buffered in Redis and flushed in batches.
	if err := counter.AddArticleView(article.ID); err != nil {
		log.Warnf("[Articles] view counter for %d failed: %v", article.ID, err)
	}

	return c.Render("articles/show", fiber.Map{
		"Title":         article.Title,
		"Article":       article,
		"FromProtected": userCtx.IsLoggedIn,
		"IsAdmin":       userCtx.IsAdmin,
		"Flash":         flash.Get(c),
	})
}
