package repository

import (
	"sync"
	"time"

	"github.com/pandamarket/backend/internal/user/domain"
)

// MemoryUserRepository is an in-memory UserRepository used by tests and
// local development
type MemoryUserRepository struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*domain.User
}

// NewMemoryUserRepository creates an empty in-memory repository
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{nextID: 1, users: make(map[uint]*domain.User)}
}

func (r *MemoryUserRepository) Create(user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.ID = r.nextID
	r.nextID++
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *MemoryUserRepository) FindByID(id uint) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	snapshot := *u
	return &snapshot, nil
}

func (r *MemoryUserRepository) FindByEmail(email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			snapshot := *u
			return &snapshot, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MemoryUserRepository) FindByNickname(nickname string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Nickname == nickname {
			snapshot := *u
			return &snapshot, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MemoryUserRepository) Update(user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	user.UpdatedAt = time.Now()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *MemoryUserRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *MemoryUserRepository) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}
