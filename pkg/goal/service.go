package goal

import (
	"context"
	"fmt"

	"github.com/finboard/finboard/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	List(ctx context.Context) ([]Goal, error)
	Get(ctx context.Context, id int) (Goal, error)
	Create(ctx context.Context, goal Goal) (Goal, error)
	Update(ctx context.Context, goal Goal) (Goal, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) Service {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) List(ctx context.Context) ([]Goal, error) {
	goals, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Goal, error) {
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) Create(ctx context.Context, goal Goal) (Goal, error) {
	if err := goal.Validate(); err != nil {
		return Goal{}, err
	}
	id, err := s.repo.Store(ctx, goal)
	if err != nil {
		return Goal{}, fmt.Errorf("failed to store goal: %w", err)
	}
	goal.Id = id
	s.publish(ctx, event_bus.GoalCreated, id)
	return goal, nil
}

func (s *ServiceImpl) Update(ctx context.Context, goal Goal) (Goal, error) {
	if err := goal.Validate(); err != nil {
		return Goal{}, err
	}
	ok, err := s.repo.Update(ctx, goal)
	if err != nil {
		return Goal{}, fmt.Errorf("failed to update goal: %w", err)
	}
	if !ok {
		return Goal{}, ErrGoalNotFound
	}
	s.publish(ctx, event_bus.GoalUpdated, goal.Id)
	return goal, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete goal: %w", err)
	}
	if ok {
		s.publish(ctx, event_bus.GoalDeleted, id)
	}
	return ok, nil
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, id int) {
	err := s.eventBus.Publish(event_bus.NewEvent(ctx, eventType, event_bus.RecordChanged{Id: id}))
	if err != nil {
		log.Errorf("failed to publish %s event for goal %d: %v", eventType, id, err)
	}
}
