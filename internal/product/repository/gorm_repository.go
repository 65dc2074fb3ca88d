package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/pandamarket/backend/internal/product/domain"
)

// GormProductRepository implements product persistence against PostgreSQL
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new product repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{})
}

func (r *GormProductRepository) Create(product *domain.Product) error {
	return r.db.Create(product).Error
}

func (r *GormProductRepository) FindByID(id uint) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.Preload("Owner").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// keywordScope narrows a query to products matching the keyword in name or
// description, case-insensitively
func keywordScope(q *gorm.DB, keyword string) *gorm.DB {
	if keyword == "" {
		return q
	}
	pattern := "%" + keyword + "%"
	return q.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
}

func (r *GormProductRepository) FindAll(params domain.ListParams) ([]domain.Product, error) {
	q := keywordScope(r.db.Model(&domain.Product{}), params.Keyword)

	switch params.Order {
	case domain.OrderFavorite:
		q = q.Order("favorite_count DESC, id DESC")
	case domain.OrderOldest:
		q = q.Order("created_at ASC, id ASC")
	default:
		q = q.Order("created_at DESC, id DESC")
	}

	var products []domain.Product
	err := q.Limit(params.Limit).Offset(params.Offset).Preload("Owner").Find(&products).Error
	return products, err
}

func (r *GormProductRepository) Count(keyword string) (int64, error) {
	var count int64
	err := keywordScope(r.db.Model(&domain.Product{}), keyword).Count(&count).Error
	return count, err
}

func (r *GormProductRepository) Update(product *domain.Product) error {
	return r.db.Save(product).Error
}

func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Product{}, id).Error
}
