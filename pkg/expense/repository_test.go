package expense

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/finboard/finboard/internal/test_utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	code := m.Run()
	test_utils.StopPostgres()
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, Repository) {
	db := test_utils.Postgres(t)
	test_utils.Truncate(t, db, "expense")
	return context.Background(), NewRepo(db)
}

func TestRepositoryImpl_StoreAndGetAll(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	rent := Expense{
		Description: "Aluguel",
		Amount:      decimal.RequireFromString("1200.00"),
		Date:        date(2024, time.June, 1),
		DueDate:     date(2024, time.June, 10),
		Category:    "Moradia",
		IsRecurring: true,
	}

	// when
	firstId, err := repo.Store(ctx, rent)
	require.NoError(t, err)
	secondId, err := repo.Store(ctx, newExpense("Internet", "99.90", date(2024, time.July, 1)))
	require.NoError(t, err)

	// then
	assert.Equal(t, 1, firstId)
	assert.Equal(t, 2, secondId)
	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Aluguel", all[0].Description)
	assert.Equal(t, "1200.00", all[0].Amount.StringFixed(2))
	assert.Equal(t, "2024-06-10", all[0].DueDate.Format("2006-01-02"))
	assert.True(t, all[0].IsRecurring)
	assert.Equal(t, "99.90", all[1].Amount.StringFixed(2))
}

func TestRepositoryImpl_StoreAfterDeleteUsesMaxPlusOne(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	first, _ := repo.Store(ctx, newExpense("A", "1", date(2024, time.June, 1)))
	second, _ := repo.Store(ctx, newExpense("B", "1", date(2024, time.June, 1)))
	deleted, err := repo.Delete(ctx, first)
	require.NoError(t, err)
	require.True(t, deleted)

	// when
	third, err := repo.Store(ctx, newExpense("C", "1", date(2024, time.June, 1)))

	// then
	require.NoError(t, err)
	assert.Equal(t, second+1, third)
}

func TestRepositoryImpl_UpdateAndToggle(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	id, _ := repo.Store(ctx, newExpense("Luz", "150.25", date(2024, time.June, 15)))

	// when
	updated, err := repo.Update(ctx, Expense{
		Id:          id,
		Description: "Energia",
		Amount:      decimal.RequireFromString("160.00"),
		Date:        date(2024, time.June, 2),
		DueDate:     date(2024, time.June, 16),
		Category:    "Moradia",
	})
	require.NoError(t, err)
	toggled, err := repo.TogglePaid(ctx, id)
	require.NoError(t, err)

	// then
	assert.True(t, updated)
	assert.True(t, toggled)
	stored, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Energia", stored.Description)
	assert.Equal(t, "160.00", stored.Amount.StringFixed(2))
	assert.True(t, stored.IsPaid)
}

func TestRepositoryImpl_MissingId(t *testing.T) {
	ctx, repo := setupTestRepository(t)

	updated, err := repo.Update(ctx, Expense{Id: 7, Description: "x", Amount: decimal.NewFromInt(1),
		Date: date(2024, time.June, 1), DueDate: date(2024, time.June, 1), Category: "x"})
	require.NoError(t, err)
	toggled, err := repo.TogglePaid(ctx, 7)
	require.NoError(t, err)
	deleted, err := repo.Delete(ctx, 7)
	require.NoError(t, err)
	_, getErr := repo.Get(ctx, 7)

	assert.False(t, updated)
	assert.False(t, toggled)
	assert.False(t, deleted)
	assert.ErrorIs(t, getErr, ErrExpenseNotFound)
}

func TestMemoryRepository_GetAllReturnsCopy(t *testing.T) {
	// given
	memory := NewMemoryRepo()
	_, _ = memory.Store(context.Background(), newExpense("Luz", "150.25", date(2024, time.June, 15)))

	// when
	all, _ := memory.GetAll(context.Background())
	all[0].Description = "changed"

	// then
	stored, _ := memory.Get(context.Background(), 1)
	assert.Equal(t, "Luz", stored.Description)
}
