package command

import (
	"fmt"

	"github.com/pandamarket/backend/internal/favorite/domain"
	"github.com/pandamarket/backend/internal/target"
)

// RemoveFavoriteCommand represents the command to unfavorite a target
type RemoveFavoriteCommand struct {
	TargetType string
	TargetID   uint
	UserID     uint
}

// RemoveFavoriteHandler handles the remove-favorite command
type RemoveFavoriteHandler struct {
	repo domain.FavoriteRepository
}

// NewRemoveFavoriteHandler creates a new remove favorite handler
func NewRemoveFavoriteHandler(repo domain.FavoriteRepository) *RemoveFavoriteHandler {
	return &RemoveFavoriteHandler{repo: repo}
}

// Handle executes the remove-favorite command
func (h *RemoveFavoriteHandler) Handle(cmd RemoveFavoriteCommand) (*FavoriteResult, error) {
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

	updated, err := h.repo.Remove(cmd.UserID, targetType, cmd.TargetID)
	if err != nil {
		return nil, err
	}

	return &FavoriteResult{Target: *updated, IsFavorite: false}, nil
}
