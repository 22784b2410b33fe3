package service

import (
	"time"

	"github.com/drewfoos/GoalQuest/internal/model"
	"github.com/drewfoos/GoalQuest/internal/repository"
)

// ProgressService buckets completed goals into a trailing 7-day histogram.
// The view is derived from current goal state on every call: reopening a
// goal removes it from its bucket, and a goal completed twice in the window
// counts once, under its latest updatedAt.
type ProgressService struct {
	goalRepo repository.GoalRepository
	loc      *time.Location
}

func NewProgressService(goalRepo repository.GoalRepository, loc *time.Location) *ProgressService {
	if loc == nil {
		loc = time.UTC
	}
	return &ProgressService{
		goalRepo: goalRepo,
		loc:      loc,
	}
}

// Weekly returns exactly 7 entries, oldest day first, covering the calendar
// days now-6d through now in the service's reference zone. Days with no
// completions are present with a zero count.
func (s *ProgressService) Weekly(userID string, now time.Time) ([]model.DailyProgress, error) {
	local := now.In(s.loc)
	windowStart := startOfDay(local).AddDate(0, 0, -6)

	// Bounds are passed in UTC so they compare cleanly against the UTC
	// stamps the services store, whatever the reference zone is.
	goals, err := s.goalRepo.CompletedInWindow(userID, windowStart.UTC(), now.UTC())
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, goal := range goals {
		counts[dayKey(goal.UpdatedAt.In(s.loc))]++
	}

	progress := make([]model.DailyProgress, 0, 7)
	for i := 0; i < 7; i++ {
		day := windowStart.AddDate(0, 0, i)
		progress = append(progress, model.DailyProgress{
			Day:   day.Format("Mon"),
			Count: counts[dayKey(day)],
		})
	}

	return progress, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
