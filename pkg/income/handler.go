package income

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/finboard/finboard/internal/rest"
	"github.com/finboard/finboard/pkg/money"
	"github.com/finboard/finboard/pkg/validation"
	log "github.com/sirupsen/logrus"
)

type IncomeDTO struct {
	Id          int    `json:"id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	Tithe       string `json:"tithe,omitempty"`
}

type TotalsDTO struct {
	TotalIncome          string `json:"totalIncome"`
	TotalIncomeFormatted string `json:"totalIncomeFormatted"`
	TotalTithe           string `json:"totalTithe"`
	TotalTitheFormatted  string `json:"totalTitheFormatted"`
	Count                int    `json:"count"`
}

type ListDTO struct {
	Items  []IncomeDTO `json:"items"`
	Totals TotalsDTO   `json:"totals"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// List godoc
// @Summary List incomes
// @Description Filtered incomes, each with its tithe, and the totals over the listed records
// @Tags Income
// @Produce json
// @Param search query string false "Substring of description or category"
// @Param month query string false "YYYY-MM"
// @Param category query string false "Category name or 'all'"
// @Success 200 {object} ListDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/income [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing incomes")
	criteria, err := CriteriaFromQuery(r.URL.Query())
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}

	view, err := h.service.List(r.Context(), criteria)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "Failed to list incomes", err.Error())
		return
	}

	rest.WriteJSON(w, http.StatusOK, ViewToDTO(view))
}

// Create godoc
// @Summary Add an income
// @Tags Income
// @Accept json
// @Produce json
// @Param income body IncomeDTO true "Income"
// @Success 201 {object} IncomeDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 422 {object} rest.ErrorResponse
// @Router /api/income [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating income")
	income, ok := decodeIncome(w, r)
	if !ok {
		return
	}

	created, err := h.service.Create(r.Context(), income)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, IncomeToDTO(created))
}

// Update godoc
// @Summary Update an income
// @Tags Income
// @Accept json
// @Produce json
// @Param id path int true "Income ID"
// @Param income body IncomeDTO true "Income"
// @Success 200 {object} IncomeDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Failure 422 {object} rest.ErrorResponse
// @Router /api/income/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathId(r, "id")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid income id", err.Error())
		return
	}
	log.Debugf("Updating income %d", id)

	income, ok := decodeIncome(w, r)
	if !ok {
		return
	}
	income.Id = id

	updated, err := h.service.Update(r.Context(), income)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, IncomeToDTO(updated))
}

// Delete godoc
// @Summary Delete an income
// @Tags Income
// @Param id path int true "Income ID"
// @Success 204
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/income/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathId(r, "id")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid income id", err.Error())
		return
	}
	log.Debugf("Deleting income %d", id)

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !deleted {
		rest.WriteError(w, http.StatusNotFound, "Income not found", "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeIncome(w http.ResponseWriter, r *http.Request) (Income, bool) {
	var dto IncomeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return Income{}, false
	}
	income, err := DTOToIncome(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid income", err.Error())
		return Income{}, false
	}
	return income, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	if v, ok := validation.As(err); ok {
		rest.WriteValidationError(w, v)
		return
	}
	if errors.Is(err, ErrIncomeNotFound) {
		rest.WriteError(w, http.StatusNotFound, "Income not found", "")
		return
	}
	log.Errorf("income request failed: %v", err)
	rest.WriteError(w, http.StatusInternalServerError, "Internal server error", err.Error())
}

func IncomeToDTO(i Income) IncomeDTO {
	return IncomeDTO{
		Id:          i.Id,
		Description: i.Description,
		Amount:      money.Fixed(i.Amount),
		Date:        rest.FormatDate(i.Date),
		Category:    i.Category,
		Tithe:       money.Fixed(i.Tithe()),
	}
}

// DTOToIncome converts the wire form. The tithe field is derived and ignored on input.
func DTOToIncome(dto IncomeDTO) (Income, error) {
	income := Income{
		Id:          dto.Id,
		Description: dto.Description,
		Category:    dto.Category,
	}
	if dto.Amount != "" {
		amount, err := money.Parse(dto.Amount)
		if err != nil {
			return Income{}, err
		}
		income.Amount = amount
	}
	date, err := rest.ParseDate(dto.Date)
	if err != nil {
		return Income{}, err
	}
	income.Date = date
	return income, nil
}

func ViewToDTO(view View) ListDTO {
	items := make([]IncomeDTO, 0, len(view.Items))
	for _, i := range view.Items {
		items = append(items, IncomeToDTO(i))
	}
	t := view.Totals
	return ListDTO{
		Items: items,
		Totals: TotalsDTO{
			TotalIncome:          money.Fixed(t.TotalIncome),
			TotalIncomeFormatted: money.Format(t.TotalIncome),
			TotalTithe:           money.Fixed(t.TotalTithe),
			TotalTitheFormatted:  money.Format(t.TotalTithe),
			Count:                t.Count,
		},
	}
}
