package command

import (
	"fmt"
	"strings"

	"github.com/pandamarket/backend/internal/article/domain"
)

// UpdateArticleCommand carries a partial update to an existing article.
// Nil fields are left untouched.
type UpdateArticleCommand struct {
	ArticleID   uint
	RequesterID uint
	Title       *string
	Content     *string
	Image       *string
}

// UpdateArticleHandler handles article updates
type UpdateArticleHandler struct {
	repo domain.ArticleRepository
}

// NewUpdateArticleHandler creates a new update article handler
func NewUpdateArticleHandler(repo domain.ArticleRepository) *UpdateArticleHandler {
	return &UpdateArticleHandler{repo: repo}
}

// Handle executes the update article command
func (h *UpdateArticleHandler) Handle(cmd UpdateArticleCommand) (*domain.Article, error) {
	article, err := h.repo.FindByID(cmd.ArticleID)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != cmd.RequesterID {
		return nil, domain.ErrNotAuthor
	}

	if cmd.Title != nil {
		title := strings.TrimSpace(*cmd.Title)
		if title == "" {
			return nil, fmt.Errorf("article title must not be empty")
		}
		article.Title = title
	}
	if cmd.Content != nil {
		content := strings.TrimSpace(*cmd.Content)
		if content == "" {
			return nil, fmt.Errorf("article content must not be empty")
		}
		article.Content = content
	}
	if cmd.Image != nil {
		article.Image = *cmd.Image
	}

	if err := h.repo.Update(article); err != nil {
		return nil, fmt.Errorf("failed to update article: %w", err)
	}
	return article, nil
}
