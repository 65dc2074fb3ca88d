package domain

import "time"

// AnonymousNickname substitutes for an unset display name at the response
// boundary. The stored row is never rewritten.
const AnonymousNickname = "anonymous"

// Writer is the author display block attached to each comment view
type Writer struct {
	ID       uint   `json:"id"`
	Nickname string `json:"nickname"`
	Image    string `json:"image,omitempty"`
}

// CommentView is the representation handed to controllers
type CommentView struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Writer    Writer    `json:"writer"`
}

// NewCommentView maps a comment row to its response form, applying the
// anonymous-nickname fallback
func NewCommentView(c *Comment) CommentView {
	v := CommentView{
		ID:        c.ID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Writer:    Writer{ID: c.AuthorID, Nickname: AnonymousNickname},
	}
	if c.Author != nil {
		v.Writer.ID = c.Author.ID
		v.Writer.Image = c.Author.Image
		if c.Author.Nickname != "" {
			v.Writer.Nickname = c.Author.Nickname
		}
	}
	return v
}
