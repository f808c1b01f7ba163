package goal

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

var ErrGoalNotFound = errors.New("goal not found")

type Repository interface {
	GetAll(ctx context.Context) ([]Goal, error)
	Get(ctx context.Context, id int) (Goal, error)
	Store(ctx context.Context, goal Goal) (int, error)
	Update(ctx context.Context, goal Goal) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const selectColumns = `id, title, target_amount::text, current_amount::text, deadline`

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Goal, error) {
	rows, err := r.db.Query(ctx, `SELECT `+selectColumns+` FROM goal ORDER BY id`)
	if err != nil {
		err := fmt.Errorf("could not query goals: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	goals := make([]Goal, 0)
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating goal rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return goals, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id int) (Goal, error) {
	g, err := scanGoal(r.db.QueryRow(ctx, `SELECT `+selectColumns+` FROM goal WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Goal{}, ErrGoalNotFound
	}
	if err != nil {
		log.Error(err)
		return Goal{}, err
	}
	return g, nil
}

func (r *RepositoryImpl) Store(ctx context.Context, goal Goal) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `LOCK TABLE goal IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		err := fmt.Errorf("could not lock goal table: %w", err)
		log.Error(err)
		return 0, err
	}

	query := `INSERT INTO goal (id, title, target_amount, current_amount, deadline)
			  SELECT COALESCE(MAX(id), 0) + 1, $1, $2::numeric, $3::numeric, $4 FROM goal
			  RETURNING id`
	var id int
	err = tx.QueryRow(ctx, query, goal.Title, goal.TargetAmount.String(), goal.CurrentAmount.String(), deadline(goal.Deadline)).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not insert goal: %w", err)
		log.Error(err)
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		err := fmt.Errorf("could not commit goal: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, goal Goal) (bool, error) {
	query := `UPDATE goal SET title = $1, target_amount = $2::numeric, current_amount = $3::numeric, deadline = $4 WHERE id = $5`
	result, err := r.db.Exec(ctx, query, goal.Title, goal.TargetAmount.String(), goal.CurrentAmount.String(), deadline(goal.Deadline), goal.Id)
	if err != nil {
		err := fmt.Errorf("could not update goal: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM goal WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not delete goal: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func scanGoal(row pgx.Row) (Goal, error) {
	var (
		g               Goal
		target, current string
		due             *time.Time
	)
	if err := row.Scan(&g.Id, &g.Title, &target, &current, &due); err != nil {
		return Goal{}, fmt.Errorf("error scanning goal row: %w", err)
	}
	var err error
	if g.TargetAmount, err = decimal.NewFromString(target); err != nil {
		return Goal{}, fmt.Errorf("invalid stored target amount %q: %w", target, err)
	}
	if g.CurrentAmount, err = decimal.NewFromString(current); err != nil {
		return Goal{}, fmt.Errorf("invalid stored current amount %q: %w", current, err)
	}
	if due != nil {
		g.Deadline = *due
	}
	return g, nil
}

// deadline maps the zero time to NULL.
func deadline(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	year, month, day := t.Date()
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}
