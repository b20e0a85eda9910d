package controllers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/slotpress/slotpress/app/models"
	"github.com/slotpress/slotpress/app/repository"
	"github.com/slotpress/slotpress/internal/pkg/usercontext"
)

// AdminArticleController manages news articles in the CMS
type AdminArticleController struct {
	articleRepo repository.ArticleRepository
}

var adminArticleController *AdminArticleController

// InitializeAdminArticleController initializes the admin article controller with repository
func InitializeAdminArticleController() {
	adminArticleController = NewAdminArticleController(repository.GetGlobalFactory().GetArticleRepository())
}

// NewAdminArticleController creates a new admin article controller with repository
func NewAdminArticleController(articleRepo repository.ArticleRepository) *AdminArticleController {
	return &AdminArticleController{articleRepo: articleRepo}
}

// GetAdminArticleController returns the initialized admin article controller
func GetAdminArticleController() *AdminArticleController {
	if adminArticleController == nil {
		panic("Admin article controller not initialized. Call InitializeAdminArticleController first.")
	}
	return adminArticleController
}

type articleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Excerpt string `json:"excerpt"`
	Slug    string `json:"slug"`
}

// HandleList returns all articles, drafts included
func (aac *AdminArticleController) HandleList(c *fiber.Ctx) error {
	offset, limit := parsePagination(c, 50, 200)

	articles, err := aac.articleRepo.GetAll(offset, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load articles"})
	}
	total, _ := aac.articleRepo.Count()

	return c.JSON(fiber.Map{"articles": articles, "total": total})
}

// HandleCreate creates a new draft article authored by the current admin
func (aac *AdminArticleController) HandleCreate(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	var req articleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	article := &models.Article{
		Title:   req.Title,
		Content: req.Content,
		Excerpt: req.Excerpt,
		Slug:    req.Slug,
		UserID:  userCtx.UserID,
	}
	if err := validator.New().Struct(article); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}

	exists, err := aac.articleRepo.SlugExists(article.Slug)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to check slug"})
	}
	if exists {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conflict", "message": "Slug is already in use"})
	}

	if err := aac.articleRepo.Create(article); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create article"})
	}

	return c.Status(fiber.StatusCreated).JSON(article)
}

// HandleUpdate updates an article's content or slug
func (aac *AdminArticleController) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid article id"})
	}

	article, err := aac.articleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Article not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load article"})
	}

	var req articleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	if req.Slug != "" && req.Slug != article.Slug {
		taken, err := aac.articleRepo.SlugExistsExceptID(req.Slug, article.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to check slug"})
		}
		if taken {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conflict", "message": "Slug is already in use"})
		}
		article.Slug = req.Slug
	}
	if req.Title != "" {
		article.Title = req.Title
	}
	if req.Content != "" {
		article.Content = req.Content
	}
	if req.Excerpt != "" {
		article.Excerpt = req.Excerpt
	}

	if err := validator.New().Struct(article); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}

	if err := aac.articleRepo.Update(article); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to update article"})
	}

	return c.JSON(article)
}

// HandleSetPublished publishes or unpublishes an article
func (aac *AdminArticleController) HandleSetPublished(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid article id"})
	}

	var req struct {
		Published bool `json:"published"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	article, err := aac.articleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Article not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load article"})
	}

	article.Published = req.Published
	if err := aac.articleRepo.Update(article); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to update article"})
	}

	return c.JSON(fiber.Map{"id": article.ID, "published": article.Published})
}

// HandleDelete soft-deletes an article
func (aac *AdminArticleController) HandleDelete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid article id"})
	}

	if err := aac.articleRepo.Delete(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to delete article"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
