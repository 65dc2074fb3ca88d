package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"

	userdomain "github.com/pandamarket/backend/internal/user/domain"
)

var (
	ErrNotFound  = errors.New("article not found")
	ErrNotAuthor = errors.New("not the article author")
)

// List orderings accepted by FindAll
const (
	OrderRecent   = "recent"
	OrderOldest   = "oldest"
	OrderFavorite = "favorite"
)

// Article represents a community board post
type Article struct {
	ID            uint             `json:"id" gorm:"primaryKey"`
	AuthorID      uint             `json:"author_id" gorm:"not null;index"`
	Author        *userdomain.User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Title         string           `json:"title" gorm:"not null"`
	Content       string           `json:"content" gorm:"type:text;not null"`
	Image         string           `json:"image"`
	FavoriteCount int64            `json:"favorite_count" gorm:"not null;default:0"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Article) TableName() string {
	return "articles"
}

// ListParams narrows and orders an article listing
type ListParams struct {
	Keyword string
	Order   string
	Limit   int
	Offset  int
}

// ArticleRepository defines the contract for article data access
type ArticleRepository interface {
	Create(article *Article) error
	FindByID(id uint) (*Article, error)
	FindAll(params ListParams) ([]Article, error)
	Count(keyword string) (int64, error)
	Update(article *Article) error
	Delete(id uint) error
}
