package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/pandamarket/backend/internal/comment/domain"
	"github.com/pandamarket/backend/internal/target"
	userdomain "github.com/pandamarket/backend/internal/user/domain"
)

type memTargetKey struct {
	targetType target.Type
	targetID   uint
}

// MemoryCommentRepository is an in-memory CommentRepository used by tests
// and local development. Ids are issued monotonically so cursor pagination
// behaves exactly like the auto-increment column in PostgreSQL.
type MemoryCommentRepository struct {
	mu       sync.Mutex
	nextID   uint
	comments map[uint]*domain.Comment
	targets  map[memTargetKey]struct{}
	authors  map[uint]*userdomain.User
}

// NewMemoryCommentRepository creates an empty in-memory repository
func NewMemoryCommentRepository() *MemoryCommentRepository {
	return &MemoryCommentRepository{
		nextID:   1,
		comments: make(map[uint]*domain.Comment),
		targets:  make(map[memTargetKey]struct{}),
		authors:  make(map[uint]*userdomain.User),
	}
}

// SeedTarget registers a commentable target
func (r *MemoryCommentRepository) SeedTarget(targetType target.Type, targetID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets[memTargetKey{targetType, targetID}] = struct{}{}
}

// SeedAuthor registers a user whose display fields comment views can carry
func (r *MemoryCommentRepository) SeedAuthor(u *userdomain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.authors[u.ID] = u
}

func (r *MemoryCommentRepository) Create(comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	comment.ID = r.nextID
	r.nextID++
	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	comment.Author = r.authors[comment.AuthorID]

	stored := *comment
	r.comments[comment.ID] = &stored
	return nil
}

func (r *MemoryCommentRepository) FindByID(id uint) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.comments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	snapshot := *c
	snapshot.Author = r.authors[c.AuthorID]
	return &snapshot, nil
}

func matches(c *domain.Comment, targetType target.Type, targetID uint) bool {
	switch targetType {
	case target.TypeArticle:
		return c.ArticleID != nil && *c.ArticleID == targetID
	default:
		return c.ProductID != nil && *c.ProductID == targetID
	}
}

// before reports whether a sorts strictly before b in the given ordering
func before(a, b *domain.Comment, order string) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		if order == domain.OrderOldest {
			return a.ID < b.ID
		}
		return a.ID > b.ID
	}
	if order == domain.OrderOldest {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func (r *MemoryCommentRepository) FindByTarget(targetType target.Type, targetID uint, opts domain.ListOptions) ([]domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var pivot *domain.Comment
	if opts.Cursor != nil {
		p, ok := r.comments[*opts.Cursor]
		if !ok {
			// Cursor row deleted between pages: deterministic end of stream.
			return []domain.Comment{}, nil
		}
		pivot = p
	}

	var rows []domain.Comment
	for _, c := range r.comments {
		if !matches(c, targetType, targetID) {
			continue
		}
		if pivot != nil && !before(pivot, c, opts.Order) {
			continue
		}
		snapshot := *c
		snapshot.Author = r.authors[c.AuthorID]
		rows = append(rows, snapshot)
	}

	sort.Slice(rows, func(i, j int) bool {
		return before(&rows[i], &rows[j], opts.Order)
	})

	if opts.Limit > 0 && len(rows) > opts.Limit {
		rows = rows[:opts.Limit]
	}
	if rows == nil {
		rows = []domain.Comment{}
	}
	return rows, nil
}

func (r *MemoryCommentRepository) CountByTarget(targetType target.Type, targetID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, c := range r.comments {
		if matches(c, targetType, targetID) {
			count++
		}
	}
	return count, nil
}

func (r *MemoryCommentRepository) TargetExists(targetType target.Type, targetID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.targets[memTargetKey{targetType, targetID}]
	return ok, nil
}

func (r *MemoryCommentRepository) Update(comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.comments[comment.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Content = comment.Content
	stored.UpdatedAt = time.Now()
	comment.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *MemoryCommentRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.comments, id)
	return nil
}
