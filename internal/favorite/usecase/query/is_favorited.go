package query

import (
	"github.com/pandamarket/backend/internal/favorite/domain"
	"github.com/pandamarket/backend/internal/target"
)

// IsFavoritedQuery asks whether a user has favorited a target
type IsFavoritedQuery struct {
	TargetType string
	TargetID   uint
	UserID     uint // zero for anonymous callers
}

// IsFavoritedHandler handles the is-favorited query
type IsFavoritedHandler struct {
	repo domain.FavoriteRepository
}

// NewIsFavoritedHandler creates a new is-favorited handler
func NewIsFavoritedHandler(repo domain.FavoriteRepository) *IsFavoritedHandler {
	return &IsFavoritedHandler{repo: repo}
}

// Handle executes the is-favorited query. Anonymous callers always get
// false, never an error.
func (h *IsFavoritedHandler) Handle(q IsFavoritedQuery) (bool, error) {
	if q.UserID == 0 {
		return false, nil
	}
	targetType, err := target.ParseType(q.TargetType)
	if err != nil {
		return false, err
	}
	return h.repo.Exists(q.UserID, targetType, q.TargetID)
}
