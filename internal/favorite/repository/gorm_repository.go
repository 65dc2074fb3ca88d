package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/pandamarket/backend/internal/favorite/domain"
	"github.com/pandamarket/backend/internal/target"
)

// GormFavoriteRepository implements the favorite toggle against PostgreSQL.
// Both mutations run precondition check, relation write and counter write
// inside one transaction; the composite unique index on favorites is the
// backstop when two adds for the same tuple race past the precondition.
type GormFavoriteRepository struct {
	db       *gorm.DB
	resolver *target.Resolver
}

// NewGormFavoriteRepository creates a new favorite repository
func NewGormFavoriteRepository(db *gorm.DB, resolver *target.Resolver) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db, resolver: resolver}
}

func (r *GormFavoriteRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Favorite{})
}

// Add inserts the favorite row and increments the target counter atomically
func (r *GormFavoriteRepository) Add(userID uint, targetType target.Type, targetID uint) (*target.Target, error) {
	var updated *target.Target

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if _, err := r.resolver.FindByID(tx, targetType, targetID); err != nil {
			return err
		}

		var existing domain.Favorite
		err := tx.Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
			First(&existing).Error
		if err == nil {
			return domain.ErrAlreadyFavorited
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		fav := domain.Favorite{UserID: userID, TargetType: targetType, TargetID: targetID}
		if err := tx.Create(&fav).Error; err != nil {
			// A concurrent add may have won between the check and the
			// insert; the unique index turns that race into a conflict.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrAlreadyFavorited
			}
			return err
		}

		updated, err = r.resolver.IncrementFavoriteCount(tx, targetType, targetID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Remove deletes the favorite row and decrements the target counter atomically
func (r *GormFavoriteRepository) Remove(userID uint, targetType target.Type, targetID uint) (*target.Target, error) {
	var updated *target.Target

	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
			Delete(&domain.Favorite{})
		if res.Error != nil {
			return res.Error
		}
		// The delete observing zero rows doubles as the precondition: a
		// concurrent remover that committed first leaves nothing to delete,
		// so the second caller fails here without touching the counter.
		if res.RowsAffected == 0 {
			return domain.ErrNotFavorited
		}

		var err error
		updated, err = r.resolver.DecrementFavoriteCount(tx, targetType, targetID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Exists reports whether the user has favorited the target
func (r *GormFavoriteRepository) Exists(userID uint, targetType target.Type, targetID uint) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Favorite{}).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		Count(&count).Error
	return count > 0, err
}

// CountByTarget counts favorite rows for a target
func (r *GormFavoriteRepository) CountByTarget(targetType target.Type, targetID uint) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Favorite{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Count(&count).Error
	return count, err
}
