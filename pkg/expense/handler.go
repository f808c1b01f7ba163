package expense

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/finboard/finboard/internal/rest"
	"github.com/finboard/finboard/pkg/money"
	"github.com/finboard/finboard/pkg/validation"
	log "github.com/sirupsen/logrus"
)

type ExpenseDTO struct {
	Id          int    `json:"id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	DueDate     string `json:"dueDate"`
	Category    string `json:"category"`
	IsPaid      bool   `json:"isPaid"`
	IsRecurring bool   `json:"isRecurring"`
	Status      string `json:"status,omitempty"`
}

type TotalsDTO struct {
	Total            string `json:"total"`
	TotalFormatted   string `json:"totalFormatted"`
	Paid             string `json:"paid"`
	PaidFormatted    string `json:"paidFormatted"`
	Pending          string `json:"pending"`
	PendingFormatted string `json:"pendingFormatted"`
	Count            int    `json:"count"`
	PaidCount        int    `json:"paidCount"`
	PendingCount     int    `json:"pendingCount"`
}

type ListDTO struct {
	Items  []ExpenseDTO `json:"items"`
	Totals TotalsDTO    `json:"totals"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// List godoc
// @Summary List expenses
// @Description Filtered expenses with their due status and the totals over the listed records
// @Tags Expense
// @Produce json
// @Param search query string false "Substring of description or category"
// @Param month query string false "YYYY-MM, matched against the due date"
// @Param category query string false "Category name or 'all'"
// @Param status query string false "all, paid or pending"
// @Success 200 {object} ListDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/expense [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing expenses")
	criteria, err := CriteriaFromQuery(r.URL.Query())
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}

	view, err := h.service.List(r.Context(), criteria)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "Failed to list expenses", err.Error())
		return
	}

	rest.WriteJSON(w, http.StatusOK, ViewToDTO(view))
}

// Create godoc
// @Summary Add an expense
// @Tags Expense
// @Accept json
// @Produce json
// @Param expense body ExpenseDTO true "Expense"
// @Success 201 {object} ExpenseDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 422 {object} rest.ErrorResponse
// @Router /api/expense [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating expense")
	expense, ok := decodeExpense(w, r)
	if !ok {
		return
	}

	created, err := h.service.Create(r.Context(), expense)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, ExpenseToDTO(created))
}

// Update godoc
// @Summary Update an expense
// @Tags Expense
// @Accept json
// @Produce json
// @Param id path int true "Expense ID"
// @Param expense body ExpenseDTO true "Expense"
// @Success 200 {object} ExpenseDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Failure 422 {object} rest.ErrorResponse
// @Router /api/expense/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathId(r, "id")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid expense id", err.Error())
		return
	}
	log.Debugf("Updating expense %d", id)

	expense, ok := decodeExpense(w, r)
	if !ok {
		return
	}
	expense.Id = id

	updated, err := h.service.Update(r.Context(), expense)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, ExpenseToDTO(updated))
}

// Delete godoc
// @Summary Delete an expense
// @Tags Expense
// @Param id path int true "Expense ID"
// @Success 204
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/expense/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathId(r, "id")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid expense id", err.Error())
		return
	}
	log.Debugf("Deleting expense %d", id)

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !deleted {
		rest.WriteError(w, http.StatusNotFound, "Expense not found", "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// TogglePaid godoc
// @Summary Flip the paid state of an expense
// @Tags Expense
// @Produce json
// @Param id path int true "Expense ID"
// @Success 200 {object} ExpenseDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/expense/{id}/paid [patch]
func (h *Handler) TogglePaid(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathId(r, "id")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid expense id", err.Error())
		return
	}
	log.Debugf("Toggling paid state of expense %d", id)

	toggled, err := h.service.TogglePaid(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, ExpenseToDTO(toggled))
}

func decodeExpense(w http.ResponseWriter, r *http.Request) (Expense, bool) {
	var dto ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return Expense{}, false
	}
	expense, err := DTOToExpense(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid expense", err.Error())
		return Expense{}, false
	}
	return expense, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	if v, ok := validation.As(err); ok {
		rest.WriteValidationError(w, v)
		return
	}
	if errors.Is(err, ErrExpenseNotFound) {
		rest.WriteError(w, http.StatusNotFound, "Expense not found", "")
		return
	}
	log.Errorf("expense request failed: %v", err)
	rest.WriteError(w, http.StatusInternalServerError, "Internal server error", err.Error())
}

func ExpenseToDTO(e Expense) ExpenseDTO {
	return ExpenseDTO{
		Id:          e.Id,
		Description: e.Description,
		Amount:      money.Fixed(e.Amount),
		Date:        rest.FormatDate(e.Date),
		DueDate:     rest.FormatDate(e.DueDate),
		Category:    e.Category,
		IsPaid:      e.IsPaid,
		IsRecurring: e.IsRecurring,
	}
}

// DTOToExpense converts the wire form. An empty amount or date is left at its zero
// value so validation can report it.
func DTOToExpense(dto ExpenseDTO) (Expense, error) {
	expense := Expense{
		Id:          dto.Id,
		Description: dto.Description,
		Category:    dto.Category,
		IsPaid:      dto.IsPaid,
		IsRecurring: dto.IsRecurring,
	}
	if dto.Amount != "" {
		amount, err := money.Parse(dto.Amount)
		if err != nil {
			return Expense{}, err
		}
		expense.Amount = amount
	}
	var err error
	if expense.Date, err = rest.ParseDate(dto.Date); err != nil {
		return Expense{}, err
	}
	if expense.DueDate, err = rest.ParseDate(dto.DueDate); err != nil {
		return Expense{}, err
	}
	return expense, nil
}

func ViewToDTO(view View) ListDTO {
	items := make([]ExpenseDTO, 0, len(view.Items))
	for _, item := range view.Items {
		dto := ExpenseToDTO(item.Expense)
		dto.Status = string(item.Status)
		items = append(items, dto)
	}
	t := view.Totals
	return ListDTO{
		Items: items,
		Totals: TotalsDTO{
			Total:            money.Fixed(t.Total),
			TotalFormatted:   money.Format(t.Total),
			Paid:             money.Fixed(t.Paid),
			PaidFormatted:    money.Format(t.Paid),
			Pending:          money.Fixed(t.Pending),
			PendingFormatted: money.Format(t.Pending),
			Count:            t.Count,
			PaidCount:        t.PaidCount,
			PendingCount:     t.PendingCount,
		},
	}
}
