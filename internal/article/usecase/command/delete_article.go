package command

import (
	"github.com/pandamarket/backend/internal/article/domain"
)

// DeleteArticleCommand represents the command to remove an article
type DeleteArticleCommand struct {
	ArticleID   uint
	RequesterID uint
}

// DeleteArticleHandler handles article deletion
type DeleteArticleHandler struct {
	repo domain.ArticleRepository
}

// NewDeleteArticleHandler creates a new delete article handler
func NewDeleteArticleHandler(repo domain.ArticleRepository) *DeleteArticleHandler {
	return &DeleteArticleHandler{repo: repo}
}

// Handle executes the delete article command
func (h *DeleteArticleHandler) Handle(cmd DeleteArticleCommand) error {
	article, err := h.repo.FindByID(cmd.ArticleID)
	if err != nil {
		return err
	}
	if article.AuthorID != cmd.RequesterID {
		return domain.ErrNotAuthor
	}
	return h.repo.Delete(cmd.ArticleID)
}
