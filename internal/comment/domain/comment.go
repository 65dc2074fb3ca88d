package domain

import (
	"errors"
	"time"

	"github.com/pandamarket/backend/internal/target"
	userdomain "github.com/pandamarket/backend/internal/user/domain"
)

var (
	ErrNotFound     = errors.New("comment not found")
	ErrNotAuthor    = errors.New("not the comment author")
	ErrEmptyContent = errors.New("comment content is empty")
)

// Comment belongs to exactly one target: ProductID xor ArticleID is set,
// never both. The auto-increment id doubles as the pagination cursor since
// ids are issued in creation order.
type Comment struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	ProductID *uint            `json:"product_id,omitempty" gorm:"index"`
	ArticleID *uint            `json:"article_id,omitempty" gorm:"index"`
	AuthorID  uint             `json:"author_id" gorm:"not null;index"`
	Author    *userdomain.User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Content   string           `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// TableName specifies the table name
func (Comment) TableName() string {
	return "comments"
}

// TargetID returns the id of whichever target the comment belongs to
func (c *Comment) TargetID() uint {
	if c.ProductID != nil {
		return *c.ProductID
	}
	if c.ArticleID != nil {
		return *c.ArticleID
	}
	return 0
}

// Orderings accepted by FindByTarget
const (
	OrderRecent = "recent"
	OrderOldest = "oldest"
)

// ListOptions controls one page of a comment listing. Cursor, when set, is
// the id of the last comment of the previous page; the page resumes strictly
// after that row in the requested ordering.
type ListOptions struct {
	Order  string
	Cursor *uint
	Limit  int
}

// CommentRepository defines the contract for comment data access
type CommentRepository interface {
	Create(comment *Comment) error
	FindByID(id uint) (*Comment, error)

	// FindByTarget returns one page in the requested ordering. A cursor
	// pointing at a row that no longer exists yields an empty page, not an
	// error; the caller sees end-of-stream.
	FindByTarget(targetType target.Type, targetID uint, opts ListOptions) ([]Comment, error)

	CountByTarget(targetType target.Type, targetID uint) (int64, error)
	TargetExists(targetType target.Type, targetID uint) (bool, error)
	Update(comment *Comment) error
	Delete(id uint) error
}
