package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/finboard/finboard/internal/config"
	"github.com/finboard/finboard/internal/utils"
	"github.com/finboard/finboard/pkg/dashboard"
	"github.com/finboard/finboard/pkg/expense"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) *mux.Router {
	t.Helper()
	clock := &utils.MockClock{FixedNow: time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)}
	deps := BuildDependencies(MemoryRepositories(), clock, config.Defaults())
	r := mux.NewRouter()
	SetupMiddleware(r)
	RegisterRoutes(r, deps, config.Defaults())
	return r
}

func serve(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutes_ExpenseFlowsIntoDashboard(t *testing.T) {
	// given
	r := newRouter(t)
	created := serve(r, http.MethodPost, "/api/expense", `{
		"description": "Supermercado",
		"amount": "500.00",
		"date": "2024-06-10",
		"dueDate": "2024-06-17",
		"category": "Alimentação"
	}`)
	require.Equal(t, http.StatusCreated, created.Code)
	var expenseDTO expense.ExpenseDTO
	require.NoError(t, json.NewDecoder(created.Body).Decode(&expenseDTO))
	assert.Equal(t, 1, expenseDTO.Id)

	// when
	before := serve(r, http.MethodGet, "/api/dashboard?month=2024-06", "")
	toggled := serve(r, http.MethodPatch, "/api/expense/1/paid", "")
	after := serve(r, http.MethodGet, "/api/dashboard?month=2024-06", "")

	// then
	require.Equal(t, http.StatusOK, before.Code)
	var summary dashboard.SummaryDTO
	require.NoError(t, json.NewDecoder(before.Body).Decode(&summary))
	require.Len(t, summary.PendingExpenses, 1)
	assert.Equal(t, "due-soon", summary.PendingExpenses[0].Status)
	assert.Equal(t, "500.00", summary.TotalExpenses.Value)

	assert.Equal(t, http.StatusOK, toggled.Code)

	require.Equal(t, http.StatusOK, after.Code)
	var refreshed dashboard.SummaryDTO
	require.NoError(t, json.NewDecoder(after.Body).Decode(&refreshed))
	assert.Empty(t, refreshed.PendingExpenses)
	assert.Equal(t, "500.00", refreshed.TotalExpenses.Value)
}

func TestRoutes_UnknownIdsAndMethods(t *testing.T) {
	r := newRouter(t)

	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodDelete, "/api/income/42", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodPatch, "/api/expense/42/paid", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, serve(r, http.MethodPatch, "/api/income", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/index.html", "").Code)
}

func TestRoutes_Categories(t *testing.T) {
	r := newRouter(t)

	w := serve(r, http.MethodGet, "/api/category?type=expense", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Moradia")
}

func TestMiddleware_RequestId(t *testing.T) {
	r := newRouter(t)

	t.Run("generates an id", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/healthz", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, w.Header().Get(requestIdHeader), 36)
	})

	t.Run("keeps the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(requestIdHeader, "abc-123")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Header().Get(requestIdHeader))
	})
}

func TestMemoryBackendSeedsSampleData(t *testing.T) {
	// given
	cfg := config.Defaults()
	cfg.Server.Timezone = "UTC"
	cfg.Server.Port = 0

	// when
	a, err := NewApplication(t.Context(), cfg)

	// then
	require.NoError(t, err)
	incomes, err := a.deps.IncomeService.All(t.Context())
	require.NoError(t, err)
	assert.NotEmpty(t, incomes)
}

func TestNewApplication_RejectsBadSettings(t *testing.T) {
	cfg := config.Defaults()
	cfg.Server.Timezone = "Nowhere/Invalid"
	_, err := NewApplication(t.Context(), cfg)
	assert.Error(t, err)

	cfg = config.Defaults()
	cfg.Server.Timezone = "UTC"
	cfg.Store.Backend = "sqlite"
	_, err = NewApplication(t.Context(), cfg)
	assert.Error(t, err)
}
