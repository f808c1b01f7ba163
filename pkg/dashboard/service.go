package dashboard

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/finboard/finboard/internal/event_bus"
	"github.com/finboard/finboard/internal/utils"
	"github.com/finboard/finboard/pkg/expense"
	"github.com/finboard/finboard/pkg/filter"
	"github.com/finboard/finboard/pkg/goal"
	"github.com/finboard/finboard/pkg/income"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	// Summary builds the dashboard for month. The zero month means the current one.
	Summary(ctx context.Context, month filter.Month) (Summary, error)
	// Comparison returns the totals of the months months ending at month, oldest first.
	Comparison(ctx context.Context, month filter.Month, months int) ([]MonthTotals, error)
}

type Options struct {
	ComparisonMonths int
	ListLimit        int
}

type cacheKey struct {
	month filter.Month
	// statuses depend on today, so a summary never outlives its day
	day string
}

type ServiceImpl struct {
	expenses expense.Service
	incomes  income.Service
	goals    goal.Service
	clock    utils.Clock
	options  Options

	mu    sync.Mutex
	cache map[cacheKey]Summary
	// generation counts invalidations, a summary read before one is never cached
	generation uint64
}

func NewService(
	expenses expense.Service,
	incomes income.Service,
	goals goal.Service,
	clock utils.Clock,
	eventBus *event_bus.EventBus,
	options Options,
) *ServiceImpl {
	if options.ComparisonMonths < 1 {
		options.ComparisonMonths = 1
	}
	s := &ServiceImpl{
		expenses: expenses,
		incomes:  incomes,
		goals:    goals,
		clock:    clock,
		options:  options,
		cache:    make(map[cacheKey]Summary),
	}
	changes := append(slices.Clone(event_bus.TransactionEvents), event_bus.GoalEvents...)
	eventBus.SubscribeMany(changes, func(e event_bus.Event) error {
		log.Debugf("Dropping dashboard cache after %s", e.Type)
		s.invalidate()
		return nil
	})
	return s
}

func (s *ServiceImpl) Summary(ctx context.Context, month filter.Month) (Summary, error) {
	now := s.clock.Now()
	if month.IsZero() {
		month = filter.MonthOf(now)
	}

	key := cacheKey{month: month, day: now.Format("2006-01-02")}
	cached, generation, ok := s.cached(key)
	if ok {
		return cached, nil
	}

	expenses, err := s.expenses.All(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read expenses: %w", err)
	}
	incomes, err := s.incomes.All(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read incomes: %w", err)
	}
	goals, err := s.goals.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read goals: %w", err)
	}

	monthIncomes := income.Filter(incomes, income.Criteria{Criteria: filter.Criteria{Month: month}})
	monthExpenses := expense.Filter(expenses, expense.Criteria{Criteria: filter.Criteria{Month: month}})
	incomeTotals := income.Aggregate(monthIncomes)
	expenseTotals := expense.Aggregate(monthExpenses)

	summary := Summary{
		Month:           month,
		TotalIncome:     incomeTotals.TotalIncome,
		TotalExpenses:   expenseTotals.Total,
		Tithe:           incomeTotals.TotalTithe,
		Balance:         incomeTotals.TotalIncome.Sub(expenseTotals.Total),
		PendingExpenses: s.pending(expenses, now),
		RecentIncomes:   s.recent(monthIncomes),
		Goals:           goals,
		Comparison:      compare(expenses, incomes, month, s.options.ComparisonMonths),
	}

	s.store(key, summary, generation)
	return summary, nil
}

func (s *ServiceImpl) Comparison(ctx context.Context, month filter.Month, months int) ([]MonthTotals, error) {
	if month.IsZero() {
		month = filter.MonthOf(s.clock.Now())
	}
	if months < 1 {
		months = s.options.ComparisonMonths
	}

	expenses, err := s.expenses.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read expenses: %w", err)
	}
	incomes, err := s.incomes.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read incomes: %w", err)
	}
	return compare(expenses, incomes, month, months), nil
}

func (s *ServiceImpl) pending(expenses []expense.Expense, now time.Time) []PendingExpense {
	unpaid := expense.Filter(expenses, expense.Criteria{Status: expense.PaidFilterPending})
	slices.SortStableFunc(unpaid, func(a, b expense.Expense) int {
		return a.DueDate.Compare(b.DueDate)
	})

	pending := make([]PendingExpense, 0, len(unpaid))
	for _, e := range limit(unpaid, s.options.ListLimit) {
		status, _ := expense.Classify(e.DueDate, e.IsPaid, now).Compact()
		pending = append(pending, PendingExpense{Expense: e, Status: status})
	}
	return pending
}

// recent keeps the latest incomes of the month, newest first.
func (s *ServiceImpl) recent(monthIncomes []income.Income) []income.Income {
	sorted := slices.Clone(monthIncomes)
	slices.SortStableFunc(sorted, func(a, b income.Income) int {
		return b.Date.Compare(a.Date)
	})
	return limit(sorted, s.options.ListLimit)
}

func compare(expenses []expense.Expense, incomes []income.Income, last filter.Month, months int) []MonthTotals {
	comparison := make([]MonthTotals, 0, months)
	for offset := months - 1; offset >= 0; offset-- {
		month := last.AddMonths(-offset)
		totals := MonthTotals{Month: month, Income: decimal.Zero, Expenses: decimal.Zero}
		for _, i := range incomes {
			if month.Contains(i.Date) {
				totals.Income = totals.Income.Add(i.Amount)
			}
		}
		for _, e := range expenses {
			if month.Contains(e.DueDate) {
				totals.Expenses = totals.Expenses.Add(e.Amount)
			}
		}
		comparison = append(comparison, totals)
	}
	return comparison
}

func limit[T any](records []T, n int) []T {
	if n > 0 && len(records) > n {
		return records[:n]
	}
	return records
}

func (s *ServiceImpl) cached(key cacheKey) (Summary, uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	summary, ok := s.cache[key]
	return summary, s.generation, ok
}

// store keeps summary only when no change was published since generation was read.
func (s *ServiceImpl) store(key cacheKey, summary Summary, generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		return
	}
	s.cache[key] = summary
}

func (s *ServiceImpl) invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.cache)
	s.generation++
}
