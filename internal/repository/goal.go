package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/drewfoos/GoalQuest/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrGoalNotFound = errors.New("goal not found")

	// ErrStaleRecord means a compare-and-set write matched zero rows: the
	// record changed under us between read and write.
	ErrStaleRecord = errors.New("record changed concurrently")
)

type GoalRepository interface {
	// WithTx returns a copy of the repository bound to tx, so a caller can
	// run several operations in one atomic unit.
	WithTx(tx *sqlx.Tx) GoalRepository

	Create(goal *model.Goal) error
	// ByIDForUser loads a goal the user may see: their own or a catalog goal.
	ByIDForUser(userID, goalID string) (*model.Goal, error)
	// GoalsForUser lists the user's goals plus catalog goals, newest first.
	GoalsForUser(userID string) ([]*model.Goal, error)
	// SumCompletedPoints derives the user's spendable balance.
	SumCompletedPoints(userID string) (int, error)
	// CompletedInWindow lists the user's completed goals whose updated_at
	// falls within [from, to].
	CompletedInWindow(userID string, from, to time.Time) ([]*model.Goal, error)
	// UpdateStatus persists a status change guarded on the status the caller
	// loaded. Zero rows affected means a concurrent writer won: ErrStaleRecord.
	UpdateStatus(goal *model.Goal, fromStatus string) error
	Delete(userID, goalID string) error
}

type goalRepository struct {
	ext sqlx.Ext
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{ext: db}
}

func (r *goalRepository) WithTx(tx *sqlx.Tx) GoalRepository {
	return &goalRepository{ext: tx}
}

func (r *goalRepository) Create(goal *model.Goal) error {
	query := `INSERT INTO goals (id, title, description, status, points, owner_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.ext.Exec(query,
		goal.ID,
		goal.Title,
		goal.Description,
		goal.Status,
		goal.Points,
		goal.OwnerID,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	return err
}

func (r *goalRepository) ByIDForUser(userID, goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1 AND (owner_id = $2 OR owner_id IS NULL)`

	err := sqlx.Get(r.ext, goal, query, goalID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}

	return goal, err
}

func (r *goalRepository) GoalsForUser(userID string) ([]*model.Goal, error) {
	var goals []*model.Goal
	query := `SELECT * FROM goals WHERE owner_id = $1 OR owner_id IS NULL ORDER BY created_at DESC`

	err := sqlx.Select(r.ext, &goals, query, userID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) SumCompletedPoints(userID string) (int, error) {
	var sum int
	query := `SELECT COALESCE(SUM(points), 0) FROM goals WHERE owner_id = $1 AND status = $2`

	err := sqlx.Get(r.ext, &sum, query, userID, model.GoalStatusCompleted)
	return sum, err
}

func (r *goalRepository) CompletedInWindow(userID string, from, to time.Time) ([]*model.Goal, error) {
	var goals []*model.Goal
	query := `SELECT * FROM goals
	          WHERE owner_id = $1 AND status = $2 AND updated_at >= $3 AND updated_at <= $4`

	err := sqlx.Select(r.ext, &goals, query, userID, model.GoalStatusCompleted, from, to)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) UpdateStatus(goal *model.Goal, fromStatus string) error {
	query := `UPDATE goals
	          SET status = $1, owner_id = $2, updated_at = $3
	          WHERE id = $4 AND status = $5`

	result, err := r.ext.Exec(query,
		goal.Status,
		goal.OwnerID,
		goal.UpdatedAt,
		goal.ID,
		fromStatus,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrStaleRecord
	}

	return nil
}

func (r *goalRepository) Delete(userID, goalID string) error {
	query := `DELETE FROM goals WHERE id = $1 AND (owner_id = $2 OR owner_id IS NULL)`
	result, err := r.ext.Exec(query, goalID, userID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}
