package expense

import (
	"context"

	"github.com/finboard/finboard/internal/memstore"
)

// MemoryRepository keeps expenses in process memory. It is the default store.
type MemoryRepository struct {
	store *memstore.Store[Expense]
}

func NewMemoryRepo() *MemoryRepository {
	return &MemoryRepository{store: memstore.New[Expense]()}
}

func (r *MemoryRepository) GetAll(ctx context.Context) ([]Expense, error) {
	return r.store.All(), nil
}

func (r *MemoryRepository) Get(ctx context.Context, id int) (Expense, error) {
	if e, ok := r.store.Get(id); ok {
		return e, nil
	}
	return Expense{}, ErrExpenseNotFound
}

func (r *MemoryRepository) Store(ctx context.Context, expense Expense) (int, error) {
	return r.store.Insert(expense), nil
}

func (r *MemoryRepository) Update(ctx context.Context, expense Expense) (bool, error) {
	return r.store.Replace(expense), nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id int) (bool, error) {
	return r.store.Remove(id), nil
}

func (r *MemoryRepository) TogglePaid(ctx context.Context, id int) (bool, error) {
	return r.store.Modify(id, func(e *Expense) { e.IsPaid = !e.IsPaid }), nil
}

// Cleanup empties the repository.
func (r *MemoryRepository) Cleanup() {
	r.store.Reset()
}
