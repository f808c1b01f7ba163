package income

import (
	"context"

	"github.com/finboard/finboard/internal/memstore"
)

type MemoryRepository struct {
	store *memstore.Store[Income]
}

func NewMemoryRepo() *MemoryRepository {
	return &MemoryRepository{store: memstore.New[Income]()}
}

func (r *MemoryRepository) GetAll(ctx context.Context) ([]Income, error) {
	return r.store.All(), nil
}

func (r *MemoryRepository) Get(ctx context.Context, id int) (Income, error) {
	if i, ok := r.store.Get(id); ok {
		return i, nil
	}
	return Income{}, ErrIncomeNotFound
}

func (r *MemoryRepository) Store(ctx context.Context, income Income) (int, error) {
	return r.store.Insert(income), nil
}

func (r *MemoryRepository) Update(ctx context.Context, income Income) (bool, error) {
	return r.store.Replace(income), nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id int) (bool, error) {
	return r.store.Remove(id), nil
}

func (r *MemoryRepository) Cleanup() {
	r.store.Reset()
}
