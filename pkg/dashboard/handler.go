package dashboard

import (
	"net/http"
	"strconv"

	"github.com/finboard/finboard/internal/rest"
	"github.com/finboard/finboard/pkg/expense"
	"github.com/finboard/finboard/pkg/filter"
	"github.com/finboard/finboard/pkg/goal"
	"github.com/finboard/finboard/pkg/income"
	"github.com/finboard/finboard/pkg/money"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// AmountDTO carries an amount both in wire format and formatted for display.
type AmountDTO struct {
	Value     string `json:"value"`
	Formatted string `json:"formatted"`
}

type PendingExpenseDTO struct {
	expense.ExpenseDTO
	Status string `json:"status"`
}

type MonthTotalsDTO struct {
	Month        string    `json:"month"`
	Income       AmountDTO `json:"income"`
	Expenses     AmountDTO `json:"expenses"`
	Balance      AmountDTO `json:"balance"`
	ExpenseShare int       `json:"expenseShare"`
}

type SummaryDTO struct {
	Month           string              `json:"month"`
	TotalIncome     AmountDTO           `json:"totalIncome"`
	TotalExpenses   AmountDTO           `json:"totalExpenses"`
	Tithe           AmountDTO           `json:"tithe"`
	Balance         AmountDTO           `json:"balance"`
	PendingExpenses []PendingExpenseDTO `json:"pendingExpenses"`
	RecentIncomes   []income.IncomeDTO  `json:"recentIncomes"`
	Goals           []goal.GoalDTO      `json:"goals"`
	Comparison      []MonthTotalsDTO    `json:"comparison"`
}

type Handler struct {
	service  Service
	renderer ComparisonRenderer
}

func NewHandler(service Service, renderer ComparisonRenderer) *Handler {
	return &Handler{service, renderer}
}

// GetSummary godoc
// @Summary Dashboard summary for a month
// @Tags Dashboard
// @Produce json
// @Param month query string false "YYYY-MM, defaults to the current month"
// @Success 200 {object} SummaryDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/dashboard [get]
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	month, err := filter.ParseMonth(r.URL.Query().Get("month"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid month", err.Error())
		return
	}
	log.Debugf("Building dashboard for %q", month)

	summary, err := h.service.Summary(r.Context(), month)
	if err != nil {
		log.Errorf("failed to build dashboard: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Failed to build dashboard", err.Error())
		return
	}

	rest.WriteJSON(w, http.StatusOK, SummaryToDTO(summary))
}

// GetComparison godoc
// @Summary Income versus expenses per month
// @Tags Dashboard
// @Produce json
// @Produce text/csv
// @Param month query string false "Last month of the range, YYYY-MM"
// @Param months query int false "Number of months"
// @Param format query string false "csv for a CSV export"
// @Success 200 {array} MonthTotalsDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/dashboard/comparison [get]
func (h *Handler) GetComparison(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	month, err := filter.ParseMonth(query.Get("month"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid month", err.Error())
		return
	}
	months := 0
	if value := query.Get("months"); value != "" {
		months, err = strconv.Atoi(value)
		if err != nil || months < 1 || months > 120 {
			rest.WriteError(w, http.StatusBadRequest, "Invalid months", "months must be a number between 1 and 120")
			return
		}
	}

	comparison, err := h.service.Comparison(r.Context(), month, months)
	if err != nil {
		log.Errorf("failed to build comparison: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Failed to build comparison", err.Error())
		return
	}

	if query.Get("format") == "csv" || r.Header.Get("Accept") == "text/csv" {
		csv, err := h.renderer.RenderComparison(comparison)
		if err != nil {
			rest.WriteError(w, http.StatusInternalServerError, "Failed to render csv", err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="comparison.csv"`)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			log.Errorf("failed to write csv: %v", err)
		}
		return
	}

	rest.WriteJSON(w, http.StatusOK, comparisonToDTO(comparison))
}

func amount(d decimal.Decimal) AmountDTO {
	return AmountDTO{Value: money.Fixed(d), Formatted: money.Format(d)}
}

func SummaryToDTO(s Summary) SummaryDTO {
	pending := make([]PendingExpenseDTO, 0, len(s.PendingExpenses))
	for _, p := range s.PendingExpenses {
		pending = append(pending, PendingExpenseDTO{ExpenseDTO: expense.ExpenseToDTO(p.Expense), Status: string(p.Status)})
	}
	incomes := make([]income.IncomeDTO, 0, len(s.RecentIncomes))
	for _, i := range s.RecentIncomes {
		incomes = append(incomes, income.IncomeToDTO(i))
	}
	goals := make([]goal.GoalDTO, 0, len(s.Goals))
	for _, g := range s.Goals {
		goals = append(goals, goal.GoalToDTO(g))
	}
	return SummaryDTO{
		Month:           s.Month.String(),
		TotalIncome:     amount(s.TotalIncome),
		TotalExpenses:   amount(s.TotalExpenses),
		Tithe:           amount(s.Tithe),
		Balance:         amount(s.Balance),
		PendingExpenses: pending,
		RecentIncomes:   incomes,
		Goals:           goals,
		Comparison:      comparisonToDTO(s.Comparison),
	}
}

func comparisonToDTO(comparison []MonthTotals) []MonthTotalsDTO {
	dtos := make([]MonthTotalsDTO, 0, len(comparison))
	for _, m := range comparison {
		dtos = append(dtos, MonthTotalsDTO{
			Month:        m.Month.String(),
			Income:       amount(m.Income),
			Expenses:     amount(m.Expenses),
			Balance:      amount(m.Balance()),
			ExpenseShare: m.ExpenseShare(),
		})
	}
	return dtos
}
