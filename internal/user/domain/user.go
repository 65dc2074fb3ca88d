package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNicknameTaken      = errors.New("nickname already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User represents a registered account
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Email     string         `json:"email" gorm:"uniqueIndex;not null"`
	Nickname  string         `json:"nickname" gorm:"uniqueIndex;not null"`
	Password  string         `json:"-" gorm:"not null"` // Never expose password in JSON
	Image     string         `json:"image"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	Create(user *User) error
	FindByID(id uint) (*User, error)
	FindByEmail(email string) (*User, error)
	FindByNickname(nickname string) (*User, error)
	Update(user *User) error
	Delete(id uint) error
	Count() (int64, error)
}
