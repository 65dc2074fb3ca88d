package command

import (
	"fmt"
	"strings"

	"github.com/pandamarket/backend/internal/comment/domain"
)

// UpdateCommentCommand represents the command to edit a comment's content
type UpdateCommentCommand struct {
	CommentID   uint
	Content     string
	RequesterID uint
}

// UpdateCommentHandler handles comment edits
type UpdateCommentHandler struct {
	repo domain.CommentRepository
}

// NewUpdateCommentHandler creates a new update comment handler
func NewUpdateCommentHandler(repo domain.CommentRepository) *UpdateCommentHandler {
	return &UpdateCommentHandler{repo: repo}
}

// Handle executes the update-comment command. Only the author may edit.
func (h *UpdateCommentHandler) Handle(cmd UpdateCommentCommand) (*domain.Comment, error) {
	content := strings.TrimSpace(cmd.Content)
	if content == "" {
		return nil, domain.ErrEmptyContent
	}

	comment, err := h.repo.FindByID(cmd.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != cmd.RequesterID {
		return nil, domain.ErrNotAuthor
	}

	comment.Content = content
	if err := h.repo.Update(comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return comment, nil
}
