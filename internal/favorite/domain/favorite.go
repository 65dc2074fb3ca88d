package domain

import (
	"errors"
	"time"

	"github.com/pandamarket/backend/internal/target"
)

var (
	ErrAlreadyFavorited = errors.New("target already favorited")
	ErrNotFavorited     = errors.New("target not favorited")
)

// Favorite is one user's mark of interest on one target. At most one row
// may exist per (user_id, target_type, target_id); the composite unique
// index is the race-safety backstop for concurrent adds.
type Favorite struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	UserID     uint        `json:"user_id" gorm:"not null;index;uniqueIndex:idx_user_target"`
	TargetType target.Type `json:"target_type" gorm:"not null;size:16;uniqueIndex:idx_user_target"`
	TargetID   uint        `json:"target_id" gorm:"not null;index;uniqueIndex:idx_user_target"`
	CreatedAt  time.Time   `json:"created_at"`
}

// TableName specifies the table name
func (Favorite) TableName() string {
	return "favorites"
}

// FavoriteRepository defines the contract for the favorite toggle. Add and
// Remove run the relation write and the counter write in one transaction:
// either both commit or neither does, so the denormalized counter always
// equals the number of favorite rows for the target.
type FavoriteRepository interface {
	// Add inserts the relation and increments the target's counter.
	// Returns target.ErrNotFound when the target does not exist and
	// ErrAlreadyFavorited when the relation is already present.
	Add(userID uint, targetType target.Type, targetID uint) (*target.Target, error)

	// Remove deletes the relation and decrements the counter.
	// Returns ErrNotFavorited when no relation exists.
	Remove(userID uint, targetType target.Type, targetID uint) (*target.Target, error)

	// Exists reports whether the relation is present. Read-only.
	Exists(userID uint, targetType target.Type, targetID uint) (bool, error)

	// CountByTarget counts relation rows for a target, independent of the
	// denormalized counter.
	CountByTarget(targetType target.Type, targetID uint) (int64, error)
}
