package goal

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/finboard/finboard/internal/rest"
	"github.com/finboard/finboard/pkg/money"
	"github.com/finboard/finboard/pkg/validation"
	log "github.com/sirupsen/logrus"
)

type GoalDTO struct {
	Id            int    `json:"id"`
	Title         string `json:"title"`
	TargetAmount  string `json:"targetAmount"`
	CurrentAmount string `json:"currentAmount"`
	Deadline      string `json:"deadline,omitempty"`
	Progress      int    `json:"progress"`
	Remaining     string `json:"remaining,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// List godoc
// @Summary List savings goals
// @Tags Goal
// @Produce json
// @Success 200 {array} GoalDTO
// @Router /api/goal [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing goals")
	goals, err := h.service.List(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "Failed to list goals", err.Error())
		return
	}

	dtos := make([]GoalDTO, 0, len(goals))
	for _, g := range goals {
		dtos = append(dtos, GoalToDTO(g))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Create godoc
// @Summary Add a savings goal
// @Tags Goal
// @Accept json
// @Produce json
// @Param goal body GoalDTO true "Goal"
// @Success 201 {object} GoalDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 422 {object} rest.ErrorResponse
// @Router /api/goal [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating goal")
	goal, ok := decodeGoal(w, r)
	if !ok {
		return
	}

	created, err := h.service.Create(r.Context(), goal)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, GoalToDTO(created))
}

// Update godoc
// @Summary Update a savings goal
// @Tags Goal
// @Accept json
// @Produce json
// @Param id path int true "Goal ID"
// @Param goal body GoalDTO true "Goal"
// @Success 200 {object} GoalDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Failure 422 {object} rest.ErrorResponse
// @Router /api/goal/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathId(r, "id")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid goal id", err.Error())
		return
	}
	goal, ok := decodeGoal(w, r)
	if !ok {
		return
	}
	goal.Id = id

	updated, err := h.service.Update(r.Context(), goal)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, GoalToDTO(updated))
}

// Delete godoc
// @Summary Delete a savings goal
// @Tags Goal
// @Param id path int true "Goal ID"
// @Success 204
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/goal/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathId(r, "id")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid goal id", err.Error())
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !deleted {
		rest.WriteError(w, http.StatusNotFound, "Goal not found", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeGoal(w http.ResponseWriter, r *http.Request) (Goal, bool) {
	var dto GoalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return Goal{}, false
	}
	goal, err := DTOToGoal(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid goal", err.Error())
		return Goal{}, false
	}
	return goal, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	if v, ok := validation.As(err); ok {
		rest.WriteValidationError(w, v)
		return
	}
	if errors.Is(err, ErrGoalNotFound) {
		rest.WriteError(w, http.StatusNotFound, "Goal not found", "")
		return
	}
	log.Errorf("goal request failed: %v", err)
	rest.WriteError(w, http.StatusInternalServerError, "Internal server error", err.Error())
}

func GoalToDTO(g Goal) GoalDTO {
	return GoalDTO{
		Id:            g.Id,
		Title:         g.Title,
		TargetAmount:  money.Fixed(g.TargetAmount),
		CurrentAmount: money.Fixed(g.CurrentAmount),
		Deadline:      rest.FormatDate(g.Deadline),
		Progress:      g.Progress(),
		Remaining:     money.Fixed(g.Remaining()),
	}
}

func DTOToGoal(dto GoalDTO) (Goal, error) {
	goal := Goal{Id: dto.Id, Title: dto.Title}
	if dto.TargetAmount != "" {
		target, err := money.Parse(dto.TargetAmount)
		if err != nil {
			return Goal{}, err
		}
		goal.TargetAmount = target
	}
	if dto.CurrentAmount != "" {
		current, err := money.Parse(dto.CurrentAmount)
		if err != nil {
			return Goal{}, err
		}
		goal.CurrentAmount = current
	}
	deadline, err := rest.ParseDate(dto.Deadline)
	if err != nil {
		return Goal{}, err
	}
	goal.Deadline = deadline
	return goal, nil
}
