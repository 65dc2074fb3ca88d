package target

import (
	"errors"

	"gorm.io/gorm"

	articledomain "github.com/pandamarket/backend/internal/article/domain"
	productdomain "github.com/pandamarket/backend/internal/product/domain"
)

// store is the per-type strategy. Each implementation binds the uniform
// contract to one table; callers never build column or table names from the
// type string.
type store interface {
	find(tx *gorm.DB, id uint) (*Target, error)
	adjustFavoriteCount(tx *gorm.DB, id uint, delta int64) (*Target, error)
}

// Resolver dispatches target operations to the product or article store.
// All methods run against the *gorm.DB they are handed, so callers decide
// the transaction scope.
type Resolver struct {
	stores map[Type]store
}

// NewResolver creates a resolver covering both target types
func NewResolver() *Resolver {
	return &Resolver{
		stores: map[Type]store{
			TypeProduct: productStore{},
			TypeArticle: articleStore{},
		},
	}
}

// FindByID loads the target row, or ErrNotFound
func (r *Resolver) FindByID(tx *gorm.DB, t Type, id uint) (*Target, error) {
	s, ok := r.stores[t]
	if !ok {
		return nil, ErrUnknownType
	}
	return s.find(tx, id)
}

// IncrementFavoriteCount bumps the denormalized counter by one and returns
// the updated target
func (r *Resolver) IncrementFavoriteCount(tx *gorm.DB, t Type, id uint) (*Target, error) {
	s, ok := r.stores[t]
	if !ok {
		return nil, ErrUnknownType
	}
	return s.adjustFavoriteCount(tx, id, 1)
}

// DecrementFavoriteCount lowers the denormalized counter by one and returns
// the updated target
func (r *Resolver) DecrementFavoriteCount(tx *gorm.DB, t Type, id uint) (*Target, error) {
	s, ok := r.stores[t]
	if !ok {
		return nil, ErrUnknownType
	}
	return s.adjustFavoriteCount(tx, id, -1)
}

type productStore struct{}

func (productStore) find(tx *gorm.DB, id uint) (*Target, error) {
	var p productdomain.Product
	if err := tx.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &Target{Type: TypeProduct, ID: p.ID, OwnerID: p.OwnerID, FavoriteCount: p.FavoriteCount}, nil
}

func (productStore) adjustFavoriteCount(tx *gorm.DB, id uint, delta int64) (*Target, error) {
	res := tx.Model(&productdomain.Product{}).
		Where("id = ?", id).
		UpdateColumn("favorite_count", gorm.Expr("favorite_count + ?", delta))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return productStore{}.find(tx, id)
}

type articleStore struct{}

func (articleStore) find(tx *gorm.DB, id uint) (*Target, error) {
	var a articledomain.Article
	if err := tx.First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &Target{Type: TypeArticle, ID: a.ID, OwnerID: a.AuthorID, FavoriteCount: a.FavoriteCount}, nil
}

func (articleStore) adjustFavoriteCount(tx *gorm.DB, id uint, delta int64) (*Target, error) {
	res := tx.Model(&articledomain.Article{}).
		Where("id = ?", id).
		UpdateColumn("favorite_count", gorm.Expr("favorite_count + ?", delta))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return articleStore{}.find(tx, id)
}
