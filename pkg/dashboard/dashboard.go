package dashboard

import (
	"github.com/finboard/finboard/pkg/expense"
	"github.com/finboard/finboard/pkg/filter"
	"github.com/finboard/finboard/pkg/goal"
	"github.com/finboard/finboard/pkg/income"
	"github.com/shopspring/decimal"
)

// Summary is everything the dashboard shows for one month.
type Summary struct {
	Month         filter.Month
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	// Tithe is 10% of TotalIncome.
	Tithe   decimal.Decimal
	Balance decimal.Decimal
	// PendingExpenses are the unpaid expenses of every month, earliest due first.
	PendingExpenses []PendingExpense
	RecentIncomes   []income.Income
	Goals           []goal.Goal
	Comparison      []MonthTotals
}

type PendingExpense struct {
	expense.Expense
	Status expense.CompactStatus
}

// MonthTotals compares the income and expenses of one month. Expenses are counted
// in the month of their due date.
type MonthTotals struct {
	Month    filter.Month
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

func (m MonthTotals) Balance() decimal.Decimal {
	return m.Income.Sub(m.Expenses)
}

// ExpenseShare is expenses as a whole percentage of income, clamped to 0..100.
// A month without income but with expenses is reported as fully spent.
func (m MonthTotals) ExpenseShare() int {
	if !m.Income.IsPositive() {
		if m.Expenses.IsPositive() {
			return 100
		}
		return 0
	}
	share := m.Expenses.Div(m.Income).Mul(decimal.NewFromInt(100)).Round(0)
	return int(min(max(share.IntPart(), 0), 100))
}
