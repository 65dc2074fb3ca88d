package kafka

import "time"

// FavoriteEvent represents a favorite being added to or removed from a target
type FavoriteEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	UserID        uint      `json:"user_id"`
	TargetType    string    `json:"target_type"`
	TargetID      uint      `json:"target_id"`
	OwnerID       uint      `json:"owner_id"`
	FavoriteCount int64     `json:"favorite_count"`
	Timestamp     time.Time `json:"timestamp"`
}

// CommentEvent represents a comment posted on a target
type CommentEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	CommentID  uint      `json:"comment_id"`
	AuthorID   uint      `json:"author_id"`
	TargetType string    `json:"target_type"`
	TargetID   uint      `json:"target_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeFavoriteAdded   = "favorite.added"
	EventTypeFavoriteRemoved = "favorite.removed"
	EventTypeCommentCreated  = "comment.created"
)

// Kafka topics
const (
	TopicFavoriteActivity = "favorite-activity"
	TopicCommentActivity  = "comment-activity"
)
