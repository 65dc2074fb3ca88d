package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/pandamarket/backend/internal/comment/domain"
	"github.com/pandamarket/backend/internal/target"
)

// GormCommentRepository implements comment persistence against PostgreSQL
type GormCommentRepository struct {
	db       *gorm.DB
	resolver *target.Resolver
}

// NewGormCommentRepository creates a new comment repository
func NewGormCommentRepository(db *gorm.DB, resolver *target.Resolver) *GormCommentRepository {
	return &GormCommentRepository{db: db, resolver: resolver}
}

func (r *GormCommentRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Comment{})
}

func (r *GormCommentRepository) Create(comment *domain.Comment) error {
	return r.db.Create(comment).Error
}

func (r *GormCommentRepository) FindByID(id uint) (*domain.Comment, error) {
	var comment domain.Comment
	if err := r.db.Preload("Author").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// targetScope narrows a query to one target's comments
func targetScope(q *gorm.DB, targetType target.Type, targetID uint) *gorm.DB {
	switch targetType {
	case target.TypeArticle:
		return q.Where("article_id = ?", targetID)
	default:
		return q.Where("product_id = ?", targetID)
	}
}

// FindByTarget returns one page ordered by creation time, tie-broken by id.
// Ids are issued in insertion order, so the (created_at, id) composite is a
// total order and the cursor never skips or repeats a row. A cursor whose
// row was deleted between pages yields an empty page: the reader sees end
// of stream instead of an error or a restart.
func (r *GormCommentRepository) FindByTarget(targetType target.Type, targetID uint, opts domain.ListOptions) ([]domain.Comment, error) {
	q := targetScope(r.db.Model(&domain.Comment{}), targetType, targetID)

	if opts.Cursor != nil {
		var pivot domain.Comment
		if err := r.db.First(&pivot, *opts.Cursor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []domain.Comment{}, nil
			}
			return nil, err
		}
		if opts.Order == domain.OrderOldest {
			q = q.Where("(created_at, id) > (?, ?)", pivot.CreatedAt, pivot.ID)
		} else {
			q = q.Where("(created_at, id) < (?, ?)", pivot.CreatedAt, pivot.ID)
		}
	}

	if opts.Order == domain.OrderOldest {
		q = q.Order("created_at ASC, id ASC")
	} else {
		q = q.Order("created_at DESC, id DESC")
	}

	var comments []domain.Comment
	err := q.Limit(opts.Limit).Preload("Author").Find(&comments).Error
	return comments, err
}

func (r *GormCommentRepository) CountByTarget(targetType target.Type, targetID uint) (int64, error) {
	var count int64
	err := targetScope(r.db.Model(&domain.Comment{}), targetType, targetID).Count(&count).Error
	return count, err
}

func (r *GormCommentRepository) TargetExists(targetType target.Type, targetID uint) (bool, error) {
	_, err := r.resolver.FindByID(r.db, targetType, targetID)
	if err != nil {
		if errors.Is(err, target.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *GormCommentRepository) Update(comment *domain.Comment) error {
	return r.db.Save(comment).Error
}

func (r *GormCommentRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Comment{}, id).Error
}
