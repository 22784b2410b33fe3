package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/drewfoos/GoalQuest/internal/db"
	"github.com/drewfoos/GoalQuest/internal/model"
	"github.com/drewfoos/GoalQuest/internal/repository"
	"github.com/drewfoos/GoalQuest/internal/validation"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// legalTransitions is the goal status graph: IN_PROGRESS and COMPLETED are
// mutually reachable (reopening undoes a completion and its point
// contribution), both may be cancelled, and CANCELLED is terminal.
var legalTransitions = map[string][]string{
	model.GoalStatusInProgress: {model.GoalStatusCompleted, model.GoalStatusCancelled},
	model.GoalStatusCompleted:  {model.GoalStatusInProgress, model.GoalStatusCancelled},
	model.GoalStatusCancelled:  {},
}

type GoalService struct {
	repo  repository.GoalRepository
	db    *sqlx.DB
	locks *UserLocks
}

func NewGoalService(repo repository.GoalRepository, database *sqlx.DB, locks *UserLocks) *GoalService {
	return &GoalService{
		repo:  repo,
		db:    database,
		locks: locks,
	}
}

func (s *GoalService) Create(userID, title, description string, points int) (*model.Goal, error) {
	err := validation.ValidateTitle(title)
	if err != nil {
		return nil, err
	}

	err = validation.ValidatePoints(points)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	goal := &model.Goal{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Status:      model.GoalStatusInProgress,
		Points:      points,
		OwnerID:     &userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.repo.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

func (s *GoalService) ByID(userID, goalID string) (*model.Goal, error) {
	return s.repo.ByIDForUser(userID, goalID)
}

func (s *GoalService) Goals(userID string) ([]*model.Goal, error) {
	return s.repo.GoalsForUser(userID)
}

// Transition moves a goal along the status graph. The read, validation and
// write run as one atomic unit: a per-user critical section around a single
// transaction, with the write guarded on the status that was loaded.
// Transitioning a catalog goal stamps the caller as its owner, so a shared
// goal's points can only ever be banked by one user.
func (s *GoalService) Transition(userID, goalID, newStatus string) (*model.Goal, error) {
	lock := s.locks.of(userID)
	lock.Lock()
	defer lock.Unlock()

	var updated *model.Goal
	err := db.Transact(s.db, func(tx *sqlx.Tx) error {
		repo := s.repo.WithTx(tx)

		goal, err := repo.ByIDForUser(userID, goalID)
		if err != nil {
			return err
		}

		if !transitionAllowed(goal.Status, newStatus) {
			return &InvalidTransitionError{From: goal.Status, To: newStatus}
		}

		fromStatus := goal.Status
		goal.Status = newStatus
		goal.OwnerID = &userID
		goal.UpdatedAt = time.Now().UTC()

		err = repo.UpdateStatus(goal, fromStatus)
		if err != nil {
			return err
		}

		updated = goal
		return nil
	})

	if errors.Is(err, repository.ErrStaleRecord) || errors.Is(err, db.ErrContention) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *GoalService) Delete(userID, goalID string) error {
	return s.repo.Delete(userID, goalID)
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range legalTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
