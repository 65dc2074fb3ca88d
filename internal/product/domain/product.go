package domain

import (
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	userdomain "github.com/pandamarket/backend/internal/user/domain"
)

var (
	ErrNotFound = errors.New("product not found")
	ErrNotOwner = errors.New("not the product owner")
)

// List orderings accepted by FindAll
const (
	OrderRecent   = "recent"
	OrderOldest   = "oldest"
	OrderFavorite = "favorite"
)

// Product represents a listed item on the marketplace
type Product struct {
	ID            uint             `json:"id" gorm:"primaryKey"`
	OwnerID       uint             `json:"owner_id" gorm:"not null;index"`
	Owner         *userdomain.User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Name          string           `json:"name" gorm:"not null"`
	Description   string           `json:"description" gorm:"type:text"`
	Price         int64            `json:"price" gorm:"not null"`
	Images        pq.StringArray   `json:"images" gorm:"type:text[]"`
	Tags          pq.StringArray   `json:"tags" gorm:"type:text[]"`
	FavoriteCount int64            `json:"favorite_count" gorm:"not null;default:0"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// ListParams narrows and orders a product listing
type ListParams struct {
	Keyword string
	Order   string
	Limit   int
	Offset  int
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(product *Product) error
	FindByID(id uint) (*Product, error)
	FindAll(params ListParams) ([]Product, error)
	Count(keyword string) (int64, error)
	Update(product *Product) error
	Delete(id uint) error
}
