package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/finboard/finboard/internal/config"
	"github.com/finboard/finboard/internal/utils"
	"github.com/finboard/finboard/pkg/expense"
	"github.com/finboard/finboard/pkg/goal"
	"github.com/finboard/finboard/pkg/income"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Seeder fills empty stores through the services, so seeded records are validated
// and announced on the event bus like any other.
type Seeder struct {
	expenses expense.Service
	incomes  income.Service
	goals    goal.Service
	clock    utils.Clock
}

func NewSeeder(expenses expense.Service, incomes income.Service, goals goal.Service, clock utils.Clock) *Seeder {
	return &Seeder{expenses: expenses, incomes: incomes, goals: goals, clock: clock}
}

// Seed loads the data set named by mode. Stores that already hold records are left alone.
func (s *Seeder) Seed(ctx context.Context, mode string, expenseCategories, incomeCategories []string) error {
	if mode == "" || mode == config.SeedNone {
		return nil
	}

	empty, err := s.storesEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		log.Info("Stores already hold records, skipping seed")
		return nil
	}

	switch mode {
	case config.SeedSample:
		err = s.sample(ctx)
	case config.SeedDemo:
		err = s.demo(ctx, 42, expenseCategories, incomeCategories)
	default:
		return fmt.Errorf("unknown seed mode %q", mode)
	}
	if err != nil {
		return fmt.Errorf("failed to seed %s data: %w", mode, err)
	}
	log.Infof("Seeded %s data", mode)
	return nil
}

func (s *Seeder) storesEmpty(ctx context.Context) (bool, error) {
	expenses, err := s.expenses.All(ctx)
	if err != nil {
		return false, err
	}
	incomes, err := s.incomes.All(ctx)
	if err != nil {
		return false, err
	}
	goals, err := s.goals.List(ctx)
	if err != nil {
		return false, err
	}
	return len(expenses) == 0 && len(incomes) == 0 && len(goals) == 0, nil
}

// sample is the small fixed data set the dashboard was designed around.
func (s *Seeder) sample(ctx context.Context) error {
	today := utils.DateIn(s.clock.Now(), time.UTC)
	days := func(n int) time.Time { return today.AddDate(0, 0, n) }

	expenses := []expense.Expense{
		{Description: "Aluguel", Amount: decimal.NewFromInt(1200), Date: days(-10), DueDate: days(-5), Category: "Moradia", IsPaid: true, IsRecurring: true},
		{Description: "Supermercado", Amount: decimal.NewFromInt(500), Date: days(-5), DueDate: days(2), Category: "Alimentação"},
		{Description: "Internet", Amount: decimal.NewFromInt(100), Date: days(0), DueDate: days(10), Category: "Moradia", IsRecurring: true},
	}
	for _, e := range expenses {
		if _, err := s.expenses.Create(ctx, e); err != nil {
			return err
		}
	}

	incomes := []income.Income{
		{Description: "Salário", Amount: decimal.NewFromInt(4500), Date: days(-10), Category: "Trabalho"},
		{Description: "Freelance", Amount: decimal.NewFromInt(500), Date: days(-3), Category: "Projetos"},
	}
	for _, i := range incomes {
		if _, err := s.incomes.Create(ctx, i); err != nil {
			return err
		}
	}

	goals := []goal.Goal{
		{Title: "Reserva de emergência", TargetAmount: decimal.NewFromInt(10000), CurrentAmount: decimal.NewFromInt(3000), Deadline: days(180)},
		{Title: "Férias", TargetAmount: decimal.NewFromInt(5000), CurrentAmount: decimal.NewFromInt(1500), Deadline: days(90)},
	}
	for _, g := range goals {
		if _, err := s.goals.Create(ctx, g); err != nil {
			return err
		}
	}
	return nil
}

const demoMonths = 6

// demo generates a few months of plausible records. The same seed always yields the same data.
func (s *Seeder) demo(ctx context.Context, seed int64, expenseCategories, incomeCategories []string) error {
	faker := gofakeit.New(seed)
	today := utils.DateIn(s.clock.Now(), time.UTC)
	firstOfMonth := today.AddDate(0, 0, 1-today.Day())

	for m := demoMonths - 1; m >= 0; m-- {
		month := firstOfMonth.AddDate(0, -m, 0)

		salary := income.Income{
			Description: "Salário",
			Amount:      amount(faker.Price(4000, 5500)),
			Date:        month.AddDate(0, 0, 4),
			Category:    pick(faker, incomeCategories, "Trabalho"),
		}
		if _, err := s.incomes.Create(ctx, salary); err != nil {
			return err
		}
		if faker.Bool() {
			extra := income.Income{
				Description: "Projeto " + faker.Company(),
				Amount:      amount(faker.Price(200, 1500)),
				Date:        month.AddDate(0, 0, faker.Number(0, 27)),
				Category:    pick(faker, incomeCategories, "Projetos"),
			}
			if _, err := s.incomes.Create(ctx, extra); err != nil {
				return err
			}
		}

		for n := faker.Number(4, 8); n > 0; n-- {
			due := month.AddDate(0, 0, faker.Number(0, 27))
			e := expense.Expense{
				Description: faker.ProductName(),
				Amount:      amount(faker.Price(20, 900)),
				Date:        due.AddDate(0, 0, -faker.Number(0, 10)),
				DueDate:     due,
				Category:    pick(faker, expenseCategories, "Outras"),
				IsPaid:      due.Before(today) && faker.Number(1, 10) > 2,
				IsRecurring: faker.Number(1, 10) > 7,
			}
			if _, err := s.expenses.Create(ctx, e); err != nil {
				return err
			}
		}
	}

	for n := faker.Number(1, 3); n > 0; n-- {
		target := amount(faker.Price(2000, 20000))
		g := goal.Goal{
			Title:         faker.HipsterWord() + " " + faker.City(),
			TargetAmount:  target,
			CurrentAmount: target.Mul(decimal.NewFromFloat(faker.Float64Range(0, 1))).Round(2),
			Deadline:      today.AddDate(0, faker.Number(1, 18), 0),
		}
		if _, err := s.goals.Create(ctx, g); err != nil {
			return err
		}
	}
	return nil
}

func amount(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value).Round(2)
}

func pick(faker *gofakeit.Faker, names []string, fallback string) string {
	if len(names) == 0 {
		return fallback
	}
	return faker.RandomString(names)
}
