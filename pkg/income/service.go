package income

import (
	"context"
	"fmt"

	"github.com/finboard/finboard/internal/event_bus"
	"github.com/finboard/finboard/pkg/category"
	"github.com/finboard/finboard/pkg/validation"
	log "github.com/sirupsen/logrus"
)

// View is the filtered incomes and their totals.
type View struct {
	Items  []Income
	Totals Totals
}

type Service interface {
	List(ctx context.Context, criteria Criteria) (View, error)
	All(ctx context.Context) ([]Income, error)
	Get(ctx context.Context, id int) (Income, error)
	Create(ctx context.Context, income Income) (Income, error)
	Update(ctx context.Context, income Income) (Income, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type ServiceImpl struct {
	repo       Repository
	eventBus   *event_bus.EventBus
	categories category.Policy
}

func NewService(repo Repository, eventBus *event_bus.EventBus, categories category.Policy) Service {
	return &ServiceImpl{repo: repo, eventBus: eventBus, categories: categories}
}

func (s *ServiceImpl) List(ctx context.Context, criteria Criteria) (View, error) {
	incomes, err := s.repo.GetAll(ctx)
	if err != nil {
		return View{}, fmt.Errorf("failed to list incomes: %w", err)
	}
	matching := Filter(incomes, criteria)
	return View{Items: matching, Totals: Aggregate(matching)}, nil
}

func (s *ServiceImpl) All(ctx context.Context) ([]Income, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Income, error) {
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) Create(ctx context.Context, income Income) (Income, error) {
	if err := s.validate(income); err != nil {
		return Income{}, err
	}

	id, err := s.repo.Store(ctx, income)
	if err != nil {
		return Income{}, fmt.Errorf("failed to store income: %w", err)
	}
	income.Id = id

	s.publish(ctx, event_bus.IncomeCreated, id)
	return income, nil
}

func (s *ServiceImpl) Update(ctx context.Context, income Income) (Income, error) {
	if err := s.validate(income); err != nil {
		return Income{}, err
	}

	ok, err := s.repo.Update(ctx, income)
	if err != nil {
		return Income{}, fmt.Errorf("failed to update income: %w", err)
	}
	if !ok {
		return Income{}, ErrIncomeNotFound
	}

	s.publish(ctx, event_bus.IncomeUpdated, income.Id)
	return income, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete income: %w", err)
	}
	if ok {
		s.publish(ctx, event_bus.IncomeDeleted, id)
	}
	return ok, nil
}

func (s *ServiceImpl) validate(income Income) error {
	if err := income.Validate(); err != nil {
		return err
	}
	if !s.categories.Allows(income.Category) {
		return &validation.ValidationError{Fields: []string{"category"}}
	}
	return nil
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, id int) {
	err := s.eventBus.Publish(event_bus.NewEvent(ctx, eventType, event_bus.RecordChanged{Id: id}))
	if err != nil {
		log.Errorf("failed to publish %s event for income %d: %v", eventType, id, err)
	}
}
