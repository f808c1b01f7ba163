package expense

import (
	"context"
	"testing"
	"time"

	"github.com/finboard/finboard/internal/event_bus"
	"github.com/finboard/finboard/internal/utils"
	"github.com/finboard/finboard/pkg/category"
	"github.com/finboard/finboard/pkg/filter"
	"github.com/finboard/finboard/pkg/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var repo = NewMemoryRepo()

var (
	service Service
	bus     *event_bus.EventBus
	clock   = &utils.MockClock{FixedNow: time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)}
)

func setup(t *testing.T) func() {
	bus = event_bus.NewEventBus()
	service = NewService(repo, bus, clock, category.AllowAll)
	return func() {
		t.Log("Teardown after test")
		repo.Cleanup()
	}
}

func newExpense(description, amount string, due time.Time) Expense {
	return Expense{
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Date:        date(2024, time.June, 1),
		DueDate:     due,
		Category:    "Moradia",
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should assign increasing ids", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		first, err := service.Create(ctx, newExpense("Aluguel", "1200", date(2024, time.June, 10)))
		require.NoError(t, err)
		second, err := service.Create(ctx, newExpense("Internet", "100", date(2024, time.July, 1)))
		require.NoError(t, err)

		// then
		assert.Equal(t, 1, first.Id)
		assert.Equal(t, 2, second.Id)
	})

	t.Run("should assign max id plus one after a delete", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		first, _ := service.Create(ctx, newExpense("A", "1", date(2024, time.June, 10)))
		second, _ := service.Create(ctx, newExpense("B", "1", date(2024, time.June, 10)))
		_, err := service.Delete(ctx, first.Id)
		require.NoError(t, err)

		// when
		third, err := service.Create(ctx, newExpense("C", "1", date(2024, time.June, 10)))

		// then
		require.NoError(t, err)
		assert.Equal(t, second.Id+1, third.Id)
		all, _ := service.All(ctx)
		assert.Equal(t, []int{second.Id, third.Id}, ids(all))
	})

	t.Run("should reject invalid expense and leave the store unchanged", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		existing, _ := service.Create(ctx, newExpense("Aluguel", "1200", date(2024, time.June, 10)))
		invalid := newExpense("  ", "0", date(2024, time.June, 10))

		// when
		_, err := service.Create(ctx, invalid)

		// then
		v, ok := validation.As(err)
		require.True(t, ok)
		assert.Equal(t, []string{"description", "amount"}, v.Fields)
		all, _ := service.All(ctx)
		assert.Len(t, all, 1)

		// and no id was consumed
		next, err := service.Create(ctx, newExpense("Internet", "100", date(2024, time.July, 1)))
		require.NoError(t, err)
		assert.Equal(t, existing.Id+1, next.Id)
	})

	t.Run("should reject category outside a strict catalog", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		catalog := category.NewCatalog(nil, []string{"Lazer"}, true)
		strict := NewService(repo, bus, clock, catalog.Policy(category.Expense))

		// when
		_, err := strict.Create(ctx, newExpense("Aluguel", "1200", date(2024, time.June, 10)))

		// then
		v, ok := validation.As(err)
		require.True(t, ok)
		assert.Equal(t, []string{"category"}, v.Fields)
	})

	t.Run("should publish created event", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		var received []event_bus.RecordChanged
		bus.Subscribe(event_bus.ExpenseCreated, func(e event_bus.Event) error {
			received = append(received, e.Data.(event_bus.RecordChanged))
			return nil
		})

		// when
		created, err := service.Create(ctx, newExpense("Aluguel", "1200", date(2024, time.June, 10)))

		// then
		require.NoError(t, err)
		assert.Equal(t, []event_bus.RecordChanged{{Id: created.Id}}, received)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("add then delete restores the store", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, _ = service.Create(ctx, newExpense("Aluguel", "1200", date(2024, time.June, 10)))
		before, _ := service.All(ctx)
		added, _ := service.Create(ctx, newExpense("Internet", "100", date(2024, time.July, 1)))

		// when
		deleted, err := service.Delete(ctx, added.Id)

		// then
		require.NoError(t, err)
		assert.True(t, deleted)
		after, _ := service.All(ctx)
		assert.Equal(t, before, after)
	})

	t.Run("unknown id is reported as not deleted", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		deleted, err := service.Delete(ctx, 42)

		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("should replace mutable fields", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, _ := service.Create(ctx, newExpense("Aluguel", "1200", date(2024, time.June, 10)))
		created.Description = "Aluguel junho"
		created.Amount = decimal.RequireFromString("1250.50")

		// when
		updated, err := service.Update(ctx, created)

		// then
		require.NoError(t, err)
		assert.Equal(t, "Aluguel junho", updated.Description)
		stored, err := service.Get(ctx, created.Id)
		require.NoError(t, err)
		assert.Equal(t, "1250.50", stored.Amount.StringFixed(2))
	})

	t.Run("unknown id leaves the store unchanged", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, _ = service.Create(ctx, newExpense("Aluguel", "1200", date(2024, time.June, 10)))
		before, _ := service.All(ctx)
		missing := newExpense("Ghost", "10", date(2024, time.June, 10))
		missing.Id = 99

		// when
		_, err := service.Update(ctx, missing)

		// then
		assert.ErrorIs(t, err, ErrExpenseNotFound)
		after, _ := service.All(ctx)
		assert.Equal(t, before, after)
	})
}

func TestServiceImpl_TogglePaid(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	// given
	created, _ := service.Create(ctx, newExpense("Aluguel", "1200", date(2024, time.June, 10)))

	// when
	toggled, err := service.TogglePaid(ctx, created.Id)
	require.NoError(t, err)
	toggledBack, err := service.TogglePaid(ctx, created.Id)
	require.NoError(t, err)

	// then
	assert.True(t, toggled.IsPaid)
	assert.False(t, toggledBack.IsPaid)

	_, err = service.TogglePaid(ctx, 99)
	assert.ErrorIs(t, err, ErrExpenseNotFound)
}

func TestServiceImpl_List(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	// given
	rent := newExpense("Aluguel", "1200", date(2024, time.June, 10))
	rent.IsPaid = true
	_, _ = service.Create(ctx, rent)
	_, _ = service.Create(ctx, newExpense("Condomínio", "300", date(2024, time.June, 10)))
	_, _ = service.Create(ctx, newExpense("Luz", "150.25", date(2024, time.June, 15)))
	_, _ = service.Create(ctx, newExpense("Água", "80.10", date(2024, time.June, 17)))
	_, _ = service.Create(ctx, newExpense("Internet", "100", date(2024, time.July, 1)))

	t.Run("classifies every listed expense", func(t *testing.T) {
		view, err := service.List(ctx, Criteria{})

		require.NoError(t, err)
		statuses := make([]Status, 0)
		for _, item := range view.Items {
			statuses = append(statuses, item.Status)
		}
		assert.Equal(t, []Status{StatusPaid, StatusOverdue, StatusDueToday, StatusDueSoon, StatusUpcoming}, statuses)
		assert.Equal(t, "1830.35", view.Totals.Total.StringFixed(2))
		assert.Equal(t, "630.35", view.Totals.Pending.StringFixed(2))
	})

	t.Run("totals cover only the filtered records", func(t *testing.T) {
		criteria := Criteria{Criteria: filter.Criteria{Month: filter.Month{Year: 2024, Month: time.June}}, Status: PaidFilterPending}

		view, err := service.List(ctx, criteria)

		require.NoError(t, err)
		assert.Len(t, view.Items, 3)
		assert.Equal(t, "530.35", view.Totals.Total.StringFixed(2))
		assert.True(t, view.Totals.Paid.IsZero())
	})
}
