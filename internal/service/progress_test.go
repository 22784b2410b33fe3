package service

import (
	"testing"
	"time"

	"github.com/drewfoos/GoalQuest/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-03-15 is a Saturday, so the window covers Sun Mar 9 .. Sat Mar 15.
var saturdayNoon = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func TestWeeklyAlwaysSevenBuckets(t *testing.T) {
	env := newTestEnv(t)

	progress, err := env.progress.Weekly("user-1", saturdayNoon)
	require.NoError(t, err)

	require.Len(t, progress, 7)
	labels := make([]string, 0, 7)
	for _, p := range progress {
		labels = append(labels, p.Day)
		assert.Equal(t, 0, p.Count)
	}
	assert.Equal(t, []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}, labels)
}

func TestWeeklyBucketsByCalendarDay(t *testing.T) {
	env := newTestEnv(t)

	// Two on Wednesday, one on Saturday morning
	wednesday := time.Date(2025, time.March, 12, 9, 30, 0, 0, time.UTC)
	env.completedGoal(t, "user-1", 10, wednesday)
	env.completedGoal(t, "user-1", 20, wednesday.Add(5*time.Hour))
	env.completedGoal(t, "user-1", 30, saturdayNoon.Add(-2*time.Hour))

	// Outside the window: too old, and in the future
	env.completedGoal(t, "user-1", 40, saturdayNoon.AddDate(0, 0, -8))
	env.completedGoal(t, "user-1", 50, saturdayNoon.Add(3*time.Hour))

	// Someone else's completions don't show up
	env.completedGoal(t, "user-2", 60, wednesday)

	progress, err := env.progress.Weekly("user-1", saturdayNoon)
	require.NoError(t, err)
	require.Len(t, progress, 7)

	total := 0
	for _, p := range progress {
		total += p.Count
	}
	assert.Equal(t, 3, total)

	assert.Equal(t, model.DailyProgress{Day: "Wed", Count: 2}, progress[3])
	assert.Equal(t, model.DailyProgress{Day: "Sat", Count: 1}, progress[6])
}

func TestWeeklyWindowBoundaries(t *testing.T) {
	env := newTestEnv(t)

	// First instant of the oldest day is inside the window
	oldestMidnight := time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC)
	env.completedGoal(t, "user-1", 10, oldestMidnight)

	// A minute before is outside
	env.completedGoal(t, "user-1", 20, oldestMidnight.Add(-time.Minute))

	progress, err := env.progress.Weekly("user-1", saturdayNoon)
	require.NoError(t, err)

	assert.Equal(t, 1, progress[0].Count)
	total := 0
	for _, p := range progress {
		total += p.Count
	}
	assert.Equal(t, 1, total)
}

func TestWeeklyReflectsReopening(t *testing.T) {
	env := newTestEnv(t)

	goal, err := env.goal.Create("user-1", "Flaky goal", "", 10)
	require.NoError(t, err)
	_, err = env.goal.Transition("user-1", goal.ID, model.GoalStatusCompleted)
	require.NoError(t, err)

	progress, err := env.progress.Weekly("user-1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, progress[6].Count, "today's completion should land in the newest bucket")

	// Reopening removes the goal from the histogram; there is no event log
	_, err = env.goal.Transition("user-1", goal.ID, model.GoalStatusInProgress)
	require.NoError(t, err)

	progress, err = env.progress.Weekly("user-1", time.Now())
	require.NoError(t, err)
	for _, p := range progress {
		assert.Equal(t, 0, p.Count)
	}
}
