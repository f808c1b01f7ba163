package expense

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

var ErrExpenseNotFound = errors.New("expense not found")

type Repository interface {
	// GetAll returns every expense in insertion order.
	GetAll(ctx context.Context) ([]Expense, error)
	Get(ctx context.Context, id int) (Expense, error)
	// Store assigns the next id (highest existing id + 1) and appends the expense.
	Store(ctx context.Context, expense Expense) (int, error)
	Update(ctx context.Context, expense Expense) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
	TogglePaid(ctx context.Context, id int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const selectColumns = `id, description, amount::text, date, due_date, category, is_paid, is_recurring`

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Expense, error) {
	rows, err := r.db.Query(ctx, `SELECT `+selectColumns+` FROM expense ORDER BY id`)
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	expenses := make([]Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating expense rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return expenses, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id int) (Expense, error) {
	row := r.db.QueryRow(ctx, `SELECT `+selectColumns+` FROM expense WHERE id = $1`, id)
	e, err := scanExpense(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Expense{}, ErrExpenseNotFound
	}
	if err != nil {
		log.Error(err)
		return Expense{}, err
	}
	return e, nil
}

func (r *RepositoryImpl) Store(ctx context.Context, expense Expense) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// ids follow max+1, so concurrent inserts must not read the same max
	if _, err := tx.Exec(ctx, `LOCK TABLE expense IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		err := fmt.Errorf("could not lock expense table: %w", err)
		log.Error(err)
		return 0, err
	}

	query := `INSERT INTO expense (id, description, amount, date, due_date, category, is_paid, is_recurring)
			  SELECT COALESCE(MAX(id), 0) + 1, $1, $2::numeric, $3, $4, $5, $6, $7 FROM expense
			  RETURNING id`
	var id int
	err = tx.QueryRow(ctx, query,
		expense.Description,
		expense.Amount.String(),
		asDate(expense.Date),
		asDate(expense.DueDate),
		expense.Category,
		expense.IsPaid,
		expense.IsRecurring,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not insert expense: %w", err)
		log.Error(err)
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		err := fmt.Errorf("could not commit expense: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, expense Expense) (bool, error) {
	query := `UPDATE expense
			  SET description = $1, amount = $2::numeric, date = $3, due_date = $4, category = $5,
			      is_paid = $6, is_recurring = $7
			  WHERE id = $8`
	result, err := r.db.Exec(ctx, query,
		expense.Description,
		expense.Amount.String(),
		asDate(expense.Date),
		asDate(expense.DueDate),
		expense.Category,
		expense.IsPaid,
		expense.IsRecurring,
		expense.Id,
	)
	if err != nil {
		err := fmt.Errorf("could not update expense: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM expense WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not delete expense: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func (r *RepositoryImpl) TogglePaid(ctx context.Context, id int) (bool, error) {
	result, err := r.db.Exec(ctx, `UPDATE expense SET is_paid = NOT is_paid WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not toggle expense paid state: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func scanExpense(row pgx.Row) (Expense, error) {
	var (
		e      Expense
		amount string
	)
	if err := row.Scan(&e.Id, &e.Description, &amount, &e.Date, &e.DueDate, &e.Category, &e.IsPaid, &e.IsRecurring); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Expense{}, err
		}
		return Expense{}, fmt.Errorf("error scanning expense row: %w", err)
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return Expense{}, fmt.Errorf("invalid stored amount %q: %w", amount, err)
	}
	e.Amount = value
	return e, nil
}

// asDate drops the clock time so the DATE column stores the record's calendar date.
func asDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
