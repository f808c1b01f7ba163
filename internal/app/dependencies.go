package app

import (
	"github.com/finboard/finboard/internal/config"
	"github.com/finboard/finboard/internal/event_bus"
	"github.com/finboard/finboard/internal/seed"
	"github.com/finboard/finboard/internal/utils"
	"github.com/finboard/finboard/pkg/category"
	"github.com/finboard/finboard/pkg/dashboard"
	"github.com/finboard/finboard/pkg/expense"
	"github.com/finboard/finboard/pkg/goal"
	"github.com/finboard/finboard/pkg/income"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories is the record store backend the services run on.
type Repositories struct {
	Expenses expense.Repository
	Incomes  income.Repository
	Goals    goal.Repository
}

func MemoryRepositories() Repositories {
	return Repositories{
		Expenses: expense.NewMemoryRepo(),
		Incomes:  income.NewMemoryRepo(),
		Goals:    goal.NewMemoryRepo(),
	}
}

func PostgresRepositories(db *pgxpool.Pool) Repositories {
	return Repositories{
		Expenses: expense.NewRepo(db),
		Incomes:  income.NewRepo(db),
		Goals:    goal.NewRepo(db),
	}
}

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	Catalog         *category.Catalog
	CategoryHandler *category.Handler

	ExpenseService expense.Service
	ExpenseHandler *expense.Handler

	IncomeService income.Service
	IncomeHandler *income.Handler

	GoalService goal.Service
	GoalHandler *goal.Handler

	DashboardService *dashboard.ServiceImpl
	ComparisonCsv    *dashboard.CsvComparisonRendererImpl
	DashboardHandler *dashboard.Handler

	Seeder *seed.Seeder
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(repos Repositories, clock utils.Clock, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = clock

	deps.Catalog = category.NewCatalog(cfg.Categories.Income, cfg.Categories.Expense, cfg.Categories.Strict)
	deps.CategoryHandler = category.NewHandler(deps.Catalog)

	deps.ExpenseService = expense.NewService(repos.Expenses, deps.EventBus, clock, deps.Catalog.Policy(category.Expense))
	deps.ExpenseHandler = expense.NewHandler(deps.ExpenseService)

	deps.IncomeService = income.NewService(repos.Incomes, deps.EventBus, deps.Catalog.Policy(category.Income))
	deps.IncomeHandler = income.NewHandler(deps.IncomeService)

	deps.GoalService = goal.NewService(repos.Goals, deps.EventBus)
	deps.GoalHandler = goal.NewHandler(deps.GoalService)

	deps.DashboardService = dashboard.NewService(
		deps.ExpenseService,
		deps.IncomeService,
		deps.GoalService,
		clock,
		deps.EventBus,
		dashboard.Options{
			ComparisonMonths: cfg.Dashboard.ComparisonMonths,
			ListLimit:        cfg.Dashboard.ListLimit,
		},
	)
	deps.ComparisonCsv = dashboard.NewCsvComparisonRenderer()
	deps.DashboardHandler = dashboard.NewHandler(deps.DashboardService, deps.ComparisonCsv)

	deps.Seeder = seed.NewSeeder(deps.ExpenseService, deps.IncomeService, deps.GoalService, clock)

	return deps
}
