package service

import (
	"github.com/drewfoos/GoalQuest/internal/repository"
)

// LedgerService derives a user's spendable balance from goal state. The
// balance is never stored: it is the sum of points over the user's COMPLETED
// goals, so it is consistent with goal state by construction. RewardService
// recomputes the same sum inside its claim transaction; this read path is
// for display and has no side effects.
type LedgerService struct {
	goalRepo repository.GoalRepository
}

func NewLedgerService(goalRepo repository.GoalRepository) *LedgerService {
	return &LedgerService{goalRepo: goalRepo}
}

func (s *LedgerService) BalanceOf(userID string) (int, error) {
	return s.goalRepo.SumCompletedPoints(userID)
}
