package query

import (
	"github.com/pandamarket/backend/internal/comment/domain"
	"github.com/pandamarket/backend/internal/target"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// ListCommentsQuery represents one page request against a target's comments
type ListCommentsQuery struct {
	TargetType string
	TargetID   uint
	OrderBy    string
	Cursor     *uint
	Limit      int
}

// CommentPage is one forward-only page. NextCursor is nil once a short page
// is returned; resuming anywhere other than the last seen cursor is not
// supported.
type CommentPage struct {
	Items      []domain.CommentView `json:"list"`
	NextCursor *uint                `json:"next_cursor"`
	TotalCount int64                `json:"total_count"`
}

// ListCommentsHandler handles the list-comments query
type ListCommentsHandler struct {
	repo domain.CommentRepository
}

// NewListCommentsHandler creates a new list comments handler
func NewListCommentsHandler(repo domain.CommentRepository) *ListCommentsHandler {
	return &ListCommentsHandler{repo: repo}
}

// Handle executes the list-comments query
func (h *ListCommentsHandler) Handle(q ListCommentsQuery) (*CommentPage, error) {
	targetType, err := target.ParseType(q.TargetType)
	if err != nil {
		return nil, err
	}

	exists, err := h.repo.TargetExists(targetType, q.TargetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, target.ErrNotFound
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	order := q.OrderBy
	if order != domain.OrderOldest {
		order = domain.OrderRecent
	}

	comments, err := h.repo.FindByTarget(targetType, q.TargetID, domain.ListOptions{
		Order:  order,
		Cursor: q.Cursor,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	// Counted against the same filter, independent of the page window, so
	// callers can render "X of Y".
	totalCount, err := h.repo.CountByTarget(targetType, q.TargetID)
	if err != nil {
		return nil, err
	}

	page := &CommentPage{
		Items:      make([]domain.CommentView, 0, len(comments)),
		TotalCount: totalCount,
	}
	for i := range comments {
		page.Items = append(page.Items, domain.NewCommentView(&comments[i]))
	}
	if len(comments) == limit {
		last := comments[len(comments)-1].ID
		page.NextCursor = &last
	}
	return page, nil
}
