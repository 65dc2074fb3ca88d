package command

import (
	"fmt"

	"github.com/pandamarket/backend/internal/favorite/domain"
	"github.com/pandamarket/backend/internal/target"
)

// AddFavoriteCommand represents the command to favorite a target
type AddFavoriteCommand struct {
	TargetType string
	TargetID   uint
	UserID     uint
}

// FavoriteResult is the outcome of a toggle: the updated target plus the
// caller's new favorite state
type FavoriteResult struct {
	Target     target.Target `json:"target"`
	IsFavorite bool          `json:"is_favorite"`
}

// AddFavoriteHandler handles the add-favorite command
type AddFavoriteHandler struct {
	repo domain.FavoriteRepository
}

// NewAddFavoriteHandler creates a new add favorite handler
func NewAddFavoriteHandler(repo domain.FavoriteRepository) *AddFavoriteHandler {
	return &AddFavoriteHandler{repo: repo}
}

// Handle executes the add-favorite command
func (h *AddFavoriteHandler) Handle(cmd AddFavoriteCommand) (*FavoriteResult, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	if cmd.TargetID == 0 {
		return nil, fmt.Errorf("invalid target id")
	}
	targetType, err := target.ParseType(cmd.TargetType)
	if err != nil {
		return nil, err
	}

	updated, err := h.repo.Add(cmd.UserID, targetType, cmd.TargetID)
	if err != nil {
		return nil, err
	}

	return &FavoriteResult{Target: *updated, IsFavorite: true}, nil
}
