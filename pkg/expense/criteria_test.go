package expense

import (
	"net/url"
	"testing"
	"time"

	"github.com/finboard/finboard/pkg/filter"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleExpenses() []Expense {
	return []Expense{
		{Id: 1, Description: "Aluguel", Amount: decimal.RequireFromString("1200.00"), Category: "Moradia",
			Date: date(2024, time.June, 1), DueDate: date(2024, time.June, 10), IsPaid: true, IsRecurring: true},
		{Id: 2, Description: "Supermercado", Amount: decimal.RequireFromString("500.00"), Category: "Alimentação",
			Date: date(2024, time.June, 2), DueDate: date(2024, time.June, 17)},
		{Id: 3, Description: "Internet", Amount: decimal.RequireFromString("100.00"), Category: "Moradia",
			Date: date(2024, time.June, 3), DueDate: date(2024, time.July, 1), IsRecurring: true},
	}
}

func ids(expenses []Expense) []int {
	out := make([]int, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, e.Id)
	}
	return out
}

func TestFilter(t *testing.T) {
	expenses := sampleExpenses()

	testCases := []struct {
		name     string
		criteria Criteria
		want     []int
	}{
		{"empty criteria keeps everything in order", Criteria{}, []int{1, 2, 3}},
		{"search matches description case-insensitively", Criteria{Criteria: filter.Criteria{Search: "MERC"}}, []int{2}},
		{"search matches category", Criteria{Criteria: filter.Criteria{Search: "morad"}}, []int{1, 3}},
		{"month matches the due date", Criteria{Criteria: filter.Criteria{Month: filter.Month{Year: 2024, Month: time.July}}}, []int{3}},
		{"category all is no constraint", Criteria{Criteria: filter.Criteria{Category: filter.AllCategories}}, []int{1, 2, 3}},
		{"category is exact", Criteria{Criteria: filter.Criteria{Category: "Moradia"}}, []int{1, 3}},
		{"paid", Criteria{Status: PaidFilterPaid}, []int{1}},
		{"pending", Criteria{Status: PaidFilterPending}, []int{2, 3}},
		{"criteria are combined", Criteria{Criteria: filter.Criteria{Category: "Moradia"}, Status: PaidFilterPending}, []int{3}},
		{"nothing matches", Criteria{Criteria: filter.Criteria{Search: "viagem"}}, []int{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(Filter(expenses, tc.criteria)))
		})
	}
}

func TestFilter_IsIdempotent(t *testing.T) {
	criteria := Criteria{Criteria: filter.Criteria{Search: "a", Category: "Moradia"}, Status: PaidFilterAll}

	once := Filter(sampleExpenses(), criteria)
	twice := Filter(once, criteria)

	assert.Equal(t, once, twice)
}

func TestCriteriaFromQuery(t *testing.T) {
	t.Run("reads every parameter", func(t *testing.T) {
		values := url.Values{"search": {"net"}, "month": {"2024-07"}, "category": {"Moradia"}, "status": {"pending"}}

		criteria, err := CriteriaFromQuery(values)

		require.NoError(t, err)
		assert.Equal(t, "net", criteria.Search)
		assert.Equal(t, filter.Month{Year: 2024, Month: time.July}, criteria.Month)
		assert.Equal(t, "Moradia", criteria.Category)
		assert.Equal(t, PaidFilterPending, criteria.Status)
	})

	t.Run("missing status means all", func(t *testing.T) {
		criteria, err := CriteriaFromQuery(url.Values{})

		require.NoError(t, err)
		assert.Equal(t, PaidFilterAll, criteria.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := CriteriaFromQuery(url.Values{"status": {"late"}})

		assert.ErrorIs(t, err, ErrInvalidPaidFilter)
	})

	t.Run("rejects malformed month", func(t *testing.T) {
		_, err := CriteriaFromQuery(url.Values{"month": {"06/2024"}})

		assert.ErrorIs(t, err, filter.ErrInvalidMonth)
	})
}

func TestAggregate(t *testing.T) {
	totals := Aggregate(sampleExpenses())

	assert.Equal(t, "1800.00", totals.Total.StringFixed(2))
	assert.Equal(t, "1200.00", totals.Paid.StringFixed(2))
	assert.Equal(t, "600.00", totals.Pending.StringFixed(2))
	assert.Equal(t, 3, totals.Count)
	assert.Equal(t, 1, totals.PaidCount)
	assert.Equal(t, 2, totals.PendingCount)
}

func TestAggregate_Empty(t *testing.T) {
	totals := Aggregate(nil)

	assert.True(t, totals.Total.IsZero())
	assert.True(t, totals.Pending.IsZero())
	assert.Equal(t, 0, totals.Count)
}
