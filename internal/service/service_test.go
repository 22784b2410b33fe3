package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/drewfoos/GoalQuest/internal/db"
	"github.com/drewfoos/GoalQuest/internal/model"
	"github.com/drewfoos/GoalQuest/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// testEnv wires real repositories against a throwaway sqlite database so the
// services run the same SQL they run in production.
type testEnv struct {
	db       *sqlx.DB
	goals    repository.GoalRepository
	rewards  repository.RewardRepository
	goal     *GoalService
	reward   *RewardService
	ledger   *LedgerService
	progress *ProgressService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	database, err := db.Init("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	goalRepo := repository.NewGoalRepository(database)
	rewardRepo := repository.NewRewardRepository(database)
	locks := NewUserLocks()

	return &testEnv{
		db:       database,
		goals:    goalRepo,
		rewards:  rewardRepo,
		goal:     NewGoalService(goalRepo, database, locks),
		reward:   NewRewardService(rewardRepo, goalRepo, database, locks),
		ledger:   NewLedgerService(goalRepo),
		progress: NewProgressService(goalRepo, time.UTC),
	}
}

// completedGoal inserts a goal already in COMPLETED state with a chosen
// updatedAt, bypassing the status machine. Used to stage ledger and
// histogram fixtures.
func (e *testEnv) completedGoal(t *testing.T, userID string, points int, updatedAt time.Time) *model.Goal {
	t.Helper()

	goal := &model.Goal{
		ID:        uuid.New().String(),
		Title:     "staged goal",
		Status:    model.GoalStatusCompleted,
		Points:    points,
		OwnerID:   &userID,
		CreatedAt: updatedAt.UTC(),
		UpdatedAt: updatedAt.UTC(),
	}
	require.NoError(t, e.goals.Create(goal))
	return goal
}

// catalogGoal inserts an ownerless goal.
func (e *testEnv) catalogGoal(t *testing.T, points int) *model.Goal {
	t.Helper()

	now := time.Now().UTC()
	goal := &model.Goal{
		ID:        uuid.New().String(),
		Title:     "catalog goal",
		Status:    model.GoalStatusInProgress,
		Points:    points,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, e.goals.Create(goal))
	return goal
}
