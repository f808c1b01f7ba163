package goal

import (
	"context"

	"github.com/finboard/finboard/internal/memstore"
)

type MemoryRepository struct {
	store *memstore.Store[Goal]
}

func NewMemoryRepo() *MemoryRepository {
	return &MemoryRepository{store: memstore.New[Goal]()}
}

func (r *MemoryRepository) GetAll(ctx context.Context) ([]Goal, error) {
	return r.store.All(), nil
}

func (r *MemoryRepository) Get(ctx context.Context, id int) (Goal, error) {
	if g, ok := r.store.Get(id); ok {
		return g, nil
	}
	return Goal{}, ErrGoalNotFound
}

func (r *MemoryRepository) Store(ctx context.Context, goal Goal) (int, error) {
	return r.store.Insert(goal), nil
}

func (r *MemoryRepository) Update(ctx context.Context, goal Goal) (bool, error) {
	return r.store.Replace(goal), nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id int) (bool, error) {
	return r.store.Remove(id), nil
}

func (r *MemoryRepository) Cleanup() {
	r.store.Reset()
}
