package command

import (
	"fmt"

	"github.com/pandamarket/backend/internal/comment/domain"
)

// DeleteCommentCommand represents the command to remove a comment
type DeleteCommentCommand struct {
	CommentID   uint
	RequesterID uint
}

// DeleteCommentHandler handles comment deletion
type DeleteCommentHandler struct {
	repo domain.CommentRepository
}

// NewDeleteCommentHandler creates a new delete comment handler
func NewDeleteCommentHandler(repo domain.CommentRepository) *DeleteCommentHandler {
	return &DeleteCommentHandler{repo: repo}
}

// Handle executes the delete-comment command. Only the author may delete.
// Favorite counters are never touched here; comments and favorites are
// independent subsystems on the same targets.
func (h *DeleteCommentHandler) Handle(cmd DeleteCommentCommand) error {
	comment, err := h.repo.FindByID(cmd.CommentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != cmd.RequesterID {
		return domain.ErrNotAuthor
	}

	if err := h.repo.Delete(cmd.CommentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}
