package command

import (
	"fmt"
	"strings"

	"github.com/pandamarket/backend/internal/comment/domain"
	"github.com/pandamarket/backend/internal/target"
)

// CreateCommentCommand represents the command to attach a comment to a target
type CreateCommentCommand struct {
	TargetType string
	TargetID   uint
	Content    string
	AuthorID   uint
}

// CreateCommentHandler handles comment creation
type CreateCommentHandler struct {
	repo domain.CommentRepository
}

// NewCreateCommentHandler creates a new create comment handler
func NewCreateCommentHandler(repo domain.CommentRepository) *CreateCommentHandler {
	return &CreateCommentHandler{repo: repo}
}

// Handle executes the create-comment command
func (h *CreateCommentHandler) Handle(cmd CreateCommentCommand) (*domain.CommentView, error) {
	if cmd.AuthorID == 0 {
		return nil, fmt.Errorf("invalid author id")
	}
	content := strings.TrimSpace(cmd.Content)
	if content == "" {
		return nil, domain.ErrEmptyContent
	}
	targetType, err := target.ParseType(cmd.TargetType)
	if err != nil {
		return nil, err
	}

	exists, err := h.repo.TargetExists(targetType, cmd.TargetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, target.ErrNotFound
	}

	comment := &domain.Comment{
		AuthorID: cmd.AuthorID,
		Content:  content,
	}
	switch targetType {
	case target.TypeArticle:
		comment.ArticleID = &cmd.TargetID
	default:
		comment.ProductID = &cmd.TargetID
	}

	if err := h.repo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	// Reload so the view carries the author's display fields
	created, err := h.repo.FindByID(comment.ID)
	if err != nil {
		return nil, err
	}
	view := domain.NewCommentView(created)
	return &view, nil
}
