package repository

import (
	"github.com/slotpress/slotpress/app/models"
	"gorm.io/gorm"
)

// articleRepository implements the ArticleRepository interface
type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new article repository instance
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

// Create creates a new article in the database
func (r *articleRepository) Create(article *models.Article) error {
	return r.db.Create(article).Error
}

// GetByID retrieves an article by its ID
func (r *articleRepository) GetByID(id uint64) (*models.Article, error) {
	var article models.Article
	err := r.db.Preload("User").First(&article, id).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// GetBySlug retrieves an article by its slug
func (r *articleRepository) GetBySlug(slug string) (*models.Article, error) {
	var article models.Article
	err := r.db.Preload("User").Where("slug = ?", slug).First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// GetPublished retrieves published articles with pagination
func (r *articleRepository) GetPublished(offset, limit int) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Preload("User").Where("published = ?", true).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&articles).Error
	return articles, err
}

// GetAll retrieves all articles with pagination
func (r *articleRepository) GetAll(offset, limit int) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Preload("User").Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&articles).Error
	return articles, err
}

// Update updates an existing article in the database
func (r *articleRepository) Update(article *models.Article) error {
	return r.db.Save(article).Error
}

// Delete soft deletes an article by its ID
func (r *articleRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Article{}, id).Error
}

// Count returns the total number of articles
func (r *articleRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Article{}).Count(&count).Error
	return count, err
}

// SlugExists checks whether an article with the given slug exists
func (r *articleRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Article{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// SlugExistsExceptID checks whether another article already uses the slug
func (r *articleRepository) SlugExistsExceptID(slug string, id uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Article{}).Where("slug = ? AND id != ?", slug, id).Count(&count).Error
	return count > 0, err
}
