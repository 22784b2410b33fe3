package handler

import (
	"net/http"

	"github.com/drewfoos/GoalQuest/internal/ctxkeys"
	"github.com/drewfoos/GoalQuest/internal/service"
)

type RewardHandler struct {
	rewardService *service.RewardService
}

func NewRewardHandler(rewardService *service.RewardService) *RewardHandler {
	return &RewardHandler{
		rewardService: rewardService,
	}
}

type createRewardRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PointCost   int    `json:"pointCost"`
}

func (h *RewardHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	rewards, err := h.rewardService.Rewards(userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, rewards)
}

func (h *RewardHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req createRewardRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	reward, err := h.rewardService.Create(userID, req.Title, req.Description, req.PointCost)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, reward)
}

func (h *RewardHandler) Claim(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	rewardID := r.PathValue("id")

	reward, err := h.rewardService.Claim(userID, rewardID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, reward)
}

func (h *RewardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	rewardID := r.PathValue("id")

	err := h.rewardService.Delete(userID, rewardID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "reward deleted"})
}
