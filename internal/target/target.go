// Package target resolves the polymorphic side of favorites and comments:
// a favorite or comment points at either a product or an article, and both
// tables expose the same find/adjust-counter contract through a per-type
// strategy selected by Type.
package target

import "errors"

var (
	ErrNotFound    = errors.New("target not found")
	ErrUnknownType = errors.New("unknown target type")
)

// Type identifies which table a favorite or comment points at.
type Type string

const (
	TypeProduct Type = "product"
	TypeArticle Type = "article"
)

func (t Type) String() string {
	return string(t)
}

// ParseType validates a client-supplied target type. The plural forms are
// accepted because they appear in URL paths ("/api/products/{id}/favorite").
func ParseType(s string) (Type, error) {
	switch s {
	case "product", "products":
		return TypeProduct, nil
	case "article", "articles":
		return TypeArticle, nil
	default:
		return "", ErrUnknownType
	}
}

// Target is the slice of a product or article the favorite and comment
// subsystems care about.
type Target struct {
	Type          Type  `json:"type"`
	ID            uint  `json:"id"`
	OwnerID       uint  `json:"owner_id"`
	FavoriteCount int64 `json:"favorite_count"`
}
