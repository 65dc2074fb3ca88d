package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/pandamarket/backend/internal/article/domain"
)

// GormArticleRepository implements article persistence against PostgreSQL
type GormArticleRepository struct {
	db *gorm.DB
}

// NewGormArticleRepository creates a new article repository
func NewGormArticleRepository(db *gorm.DB) *GormArticleRepository {
	return &GormArticleRepository{db: db}
}

func (r *GormArticleRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Article{})
}

func (r *GormArticleRepository) Create(article *domain.Article) error {
	return r.db.Create(article).Error
}

func (r *GormArticleRepository) FindByID(id uint) (*domain.Article, error) {
	var article domain.Article
	if err := r.db.Preload("Author").First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &article, nil
}

// keywordScope narrows a query to articles matching the keyword in title or
// content, case-insensitively
func keywordScope(q *gorm.DB, keyword string) *gorm.DB {
	if keyword == "" {
		return q
	}
	pattern := "%" + keyword + "%"
	return q.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
}

func (r *GormArticleRepository) FindAll(params domain.ListParams) ([]domain.Article, error) {
	q := keywordScope(r.db.Model(&domain.Article{}), params.Keyword)

	switch params.Order {
	case domain.OrderFavorite:
		q = q.Order("favorite_count DESC, id DESC")
	case domain.OrderOldest:
		q = q.Order("created_at ASC, id ASC")
	default:
		q = q.Order("created_at DESC, id DESC")
	}

	var articles []domain.Article
	err := q.Limit(params.Limit).Offset(params.Offset).Preload("Author").Find(&articles).Error
	return articles, err
}

func (r *GormArticleRepository) Count(keyword string) (int64, error) {
	var count int64
	err := keywordScope(r.db.Model(&domain.Article{}), keyword).Count(&count).Error
	return count, err
}

func (r *GormArticleRepository) Update(article *domain.Article) error {
	return r.db.Save(article).Error
}

func (r *GormArticleRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Article{}, id).Error
}
