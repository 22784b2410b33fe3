package handler

import (
	"net/http"
	"time"

	"github.com/drewfoos/GoalQuest/internal/ctxkeys"
	"github.com/drewfoos/GoalQuest/internal/model"
	"github.com/drewfoos/GoalQuest/internal/service"
)

// DashboardHandler serves the aggregate view the dashboard renders from:
// goals, rewards, the weekly histogram and the derived balance in one
// response.
type DashboardHandler struct {
	goalService     *service.GoalService
	rewardService   *service.RewardService
	ledgerService   *service.LedgerService
	progressService *service.ProgressService
}

func NewDashboardHandler(
	goalService *service.GoalService,
	rewardService *service.RewardService,
	ledgerService *service.LedgerService,
	progressService *service.ProgressService,
) *DashboardHandler {
	return &DashboardHandler{
		goalService:     goalService,
		rewardService:   rewardService,
		ledgerService:   ledgerService,
		progressService: progressService,
	}
}

type dashboardResponse struct {
	Goals          []*model.Goal         `json:"goals"`
	Rewards        []*model.Reward       `json:"rewards"`
	WeeklyProgress []model.DailyProgress `json:"weeklyProgress"`
	TotalPoints    int                   `json:"totalPoints"`
}

type balanceResponse struct {
	Balance int `json:"balance"`
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	goals, err := h.goalService.Goals(userID)
	if err != nil {
		respondError(w, err)
		return
	}

	rewards, err := h.rewardService.Rewards(userID)
	if err != nil {
		respondError(w, err)
		return
	}

	progress, err := h.progressService.Weekly(userID, time.Now())
	if err != nil {
		respondError(w, err)
		return
	}

	balance, err := h.ledgerService.BalanceOf(userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dashboardResponse{
		Goals:          goals,
		Rewards:        rewards,
		WeeklyProgress: progress,
		TotalPoints:    balance,
	})
}

func (h *DashboardHandler) Balance(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	balance, err := h.ledgerService.BalanceOf(userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, balanceResponse{Balance: balance})
}
