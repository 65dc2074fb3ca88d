package repository

import (
	"sync"

	"github.com/pandamarket/backend/internal/favorite/domain"
	"github.com/pandamarket/backend/internal/target"
)

type tupleKey struct {
	userID     uint
	targetType target.Type
	targetID   uint
}

type targetKey struct {
	targetType target.Type
	targetID   uint
}

// MemoryFavoriteRepository is an in-memory FavoriteRepository used by tests
// and local development. The mutex gives each Add/Remove the same
// all-or-nothing behavior the database transaction gives the GORM
// implementation, including the uniqueness backstop for concurrent adds.
type MemoryFavoriteRepository struct {
	mu        sync.Mutex
	relations map[tupleKey]struct{}
	targets   map[targetKey]*target.Target
}

// NewMemoryFavoriteRepository creates an empty in-memory repository
func NewMemoryFavoriteRepository() *MemoryFavoriteRepository {
	return &MemoryFavoriteRepository{
		relations: make(map[tupleKey]struct{}),
		targets:   make(map[targetKey]*target.Target),
	}
}

// SeedTarget registers a target row the toggle can act on
func (r *MemoryFavoriteRepository) SeedTarget(targetType target.Type, targetID, ownerID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets[targetKey{targetType, targetID}] = &target.Target{
		Type:    targetType,
		ID:      targetID,
		OwnerID: ownerID,
	}
}

func (r *MemoryFavoriteRepository) Add(userID uint, targetType target.Type, targetID uint) (*target.Target, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tgt, ok := r.targets[targetKey{targetType, targetID}]
	if !ok {
		return nil, target.ErrNotFound
	}
	key := tupleKey{userID, targetType, targetID}
	if _, exists := r.relations[key]; exists {
		return nil, domain.ErrAlreadyFavorited
	}

	r.relations[key] = struct{}{}
	tgt.FavoriteCount++
	snapshot := *tgt
	return &snapshot, nil
}

func (r *MemoryFavoriteRepository) Remove(userID uint, targetType target.Type, targetID uint) (*target.Target, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := tupleKey{userID, targetType, targetID}
	if _, exists := r.relations[key]; !exists {
		return nil, domain.ErrNotFavorited
	}
	tgt, ok := r.targets[targetKey{targetType, targetID}]
	if !ok {
		return nil, target.ErrNotFound
	}

	delete(r.relations, key)
	tgt.FavoriteCount--
	snapshot := *tgt
	return &snapshot, nil
}

func (r *MemoryFavoriteRepository) Exists(userID uint, targetType target.Type, targetID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.relations[tupleKey{userID, targetType, targetID}]
	return exists, nil
}

func (r *MemoryFavoriteRepository) CountByTarget(targetType target.Type, targetID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for key := range r.relations {
		if key.targetType == targetType && key.targetID == targetID {
			count++
		}
	}
	return count, nil
}
