package income

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrIncomeNotFound = errors.New("income not found")

type Repository interface {
	// GetAll returns every income in insertion order.
	GetAll(ctx context.Context) ([]Income, error)
	Get(ctx context.Context, id int) (Income, error)
	// Store assigns the next id (highest existing id + 1) and appends the income.
	Store(ctx context.Context, income Income) (int, error)
	Update(ctx context.Context, income Income) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Income, error) {
	rows, err := r.db.Query(ctx, `SELECT id, description, amount::text, date, category FROM income ORDER BY id`)
	if err != nil {
		err := fmt.Errorf("could not query incomes: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	incomes := make([]Income, 0)
	for rows.Next() {
		i, err := scanIncome(rows)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		incomes = append(incomes, i)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating income rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return incomes, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id int) (Income, error) {
	row := r.db.QueryRow(ctx, `SELECT id, description, amount::text, date, category FROM income WHERE id = $1`, id)
	i, err := scanIncome(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Income{}, ErrIncomeNotFound
	}
	if err != nil {
		log.Error(err)
		return Income{}, err
	}
	return i, nil
}

func (r *RepositoryImpl) Store(ctx context.Context, income Income) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `LOCK TABLE income IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		err := fmt.Errorf("could not lock income table: %w", err)
		log.Error(err)
		return 0, err
	}

	query := `INSERT INTO income (id, description, amount, date, category)
			  SELECT COALESCE(MAX(id), 0) + 1, $1, $2::numeric, $3, $4 FROM income
			  RETURNING id`
	var id int
	err = tx.QueryRow(ctx, query, income.Description, income.Amount.String(), asDate(income.Date), income.Category).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not insert income: %w", err)
		log.Error(err)
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		err := fmt.Errorf("could not commit income: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, income Income) (bool, error) {
	query := `UPDATE income SET description = $1, amount = $2::numeric, date = $3, category = $4 WHERE id = $5`
	result, err := r.db.Exec(ctx, query, income.Description, income.Amount.String(), asDate(income.Date), income.Category, income.Id)
	if err != nil {
		err := fmt.Errorf("could not update income: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM income WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not delete income: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func scanIncome(row pgx.Row) (Income, error) {
	var (
		i      Income
		amount string
	)
	if err := row.Scan(&i.Id, &i.Description, &amount, &i.Date, &i.Category); err != nil {
		return Income{}, fmt.Errorf("error scanning income row: %w", err)
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return Income{}, fmt.Errorf("invalid stored amount %q: %w", amount, err)
	}
	i.Amount = value
	return i, nil
}

func asDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
