package command

import (
	"fmt"
	"strings"

	"github.com/pandamarket/backend/internal/article/domain"
)

// CreateArticleCommand represents the command to post a new article
type CreateArticleCommand struct {
	AuthorID uint
	Title    string
	Content  string
	Image    string
}

// CreateArticleHandler handles article creation
type CreateArticleHandler struct {
	repo domain.ArticleRepository
}

// NewCreateArticleHandler creates a new create article handler
func NewCreateArticleHandler(repo domain.ArticleRepository) *CreateArticleHandler {
	return &CreateArticleHandler{repo: repo}
}

// Handle executes the create article command
func (h *CreateArticleHandler) Handle(cmd CreateArticleCommand) (*domain.Article, error) {
	title := strings.TrimSpace(cmd.Title)
	content := strings.TrimSpace(cmd.Content)
	if title == "" {
		return nil, fmt.Errorf("article title is required")
	}
	if content == "" {
		return nil, fmt.Errorf("article content is required")
	}
	if cmd.AuthorID == 0 {
		return nil, fmt.Errorf("author id is required")
	}

	article := &domain.Article{
		AuthorID: cmd.AuthorID,
		Title:    title,
		Content:  content,
		Image:    cmd.Image,
	}
	if err := h.repo.Create(article); err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}
	return article, nil
}
