package expense

import (
	"context"
	"fmt"

	"github.com/finboard/finboard/internal/event_bus"
	"github.com/finboard/finboard/internal/utils"
	"github.com/finboard/finboard/pkg/category"
	"github.com/finboard/finboard/pkg/validation"
	log "github.com/sirupsen/logrus"
)

// View is one read of the expense pipeline: the filtered, classified records and
// the totals over exactly those records.
type View struct {
	Items  []Classified
	Totals Totals
}

type Service interface {
	List(ctx context.Context, criteria Criteria) (View, error)
	// All returns every stored expense, unfiltered and unclassified.
	All(ctx context.Context) ([]Expense, error)
	Get(ctx context.Context, id int) (Expense, error)
	Create(ctx context.Context, expense Expense) (Expense, error)
	Update(ctx context.Context, expense Expense) (Expense, error)
	Delete(ctx context.Context, id int) (bool, error)
	TogglePaid(ctx context.Context, id int) (Expense, error)
}

type ServiceImpl struct {
	repo       Repository
	eventBus   *event_bus.EventBus
	clock      utils.Clock
	categories category.Policy
}

func NewService(repo Repository, eventBus *event_bus.EventBus, clock utils.Clock, categories category.Policy) Service {
	return &ServiceImpl{repo: repo, eventBus: eventBus, clock: clock, categories: categories}
}

func (s *ServiceImpl) List(ctx context.Context, criteria Criteria) (View, error) {
	expenses, err := s.repo.GetAll(ctx)
	if err != nil {
		return View{}, fmt.Errorf("failed to list expenses: %w", err)
	}

	matching := Filter(expenses, criteria)
	now := s.clock.Now()
	items := make([]Classified, 0, len(matching))
	for _, e := range matching {
		items = append(items, Classified{Expense: e, Status: Classify(e.DueDate, e.IsPaid, now)})
	}
	return View{Items: items, Totals: Aggregate(matching)}, nil
}

func (s *ServiceImpl) All(ctx context.Context) ([]Expense, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Expense, error) {
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) Create(ctx context.Context, expense Expense) (Expense, error) {
	if err := s.validate(expense); err != nil {
		return Expense{}, err
	}

	id, err := s.repo.Store(ctx, expense)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to store expense: %w", err)
	}
	expense.Id = id

	s.publish(ctx, event_bus.ExpenseCreated, id)
	return expense, nil
}

func (s *ServiceImpl) Update(ctx context.Context, expense Expense) (Expense, error) {
	if err := s.validate(expense); err != nil {
		return Expense{}, err
	}

	ok, err := s.repo.Update(ctx, expense)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to update expense: %w", err)
	}
	if !ok {
		return Expense{}, ErrExpenseNotFound
	}

	s.publish(ctx, event_bus.ExpenseUpdated, expense.Id)
	return expense, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete expense: %w", err)
	}
	if ok {
		s.publish(ctx, event_bus.ExpenseDeleted, id)
	}
	return ok, nil
}

func (s *ServiceImpl) TogglePaid(ctx context.Context, id int) (Expense, error) {
	ok, err := s.repo.TogglePaid(ctx, id)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to toggle expense: %w", err)
	}
	if !ok {
		return Expense{}, ErrExpenseNotFound
	}

	s.publish(ctx, event_bus.ExpensePaidToggled, id)
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) validate(expense Expense) error {
	if err := expense.Validate(); err != nil {
		return err
	}
	if !s.categories.Allows(expense.Category) {
		return &validation.ValidationError{Fields: []string{"category"}}
	}
	return nil
}

// publish never fails the mutation, the store already holds the change.
func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, id int) {
	err := s.eventBus.Publish(event_bus.NewEvent(ctx, eventType, event_bus.RecordChanged{Id: id}))
	if err != nil {
		log.Errorf("failed to publish %s event for expense %d: %v", eventType, id, err)
	}
}
