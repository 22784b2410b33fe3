package handler

import (
	"net/http"
	"time"

	"github.com/drewfoos/GoalQuest/internal/ctxkeys"
	"github.com/drewfoos/GoalQuest/internal/service"
)

type GoalHandler struct {
	goalService     *service.GoalService
	progressService *service.ProgressService
}

func NewGoalHandler(goalService *service.GoalService, progressService *service.ProgressService) *GoalHandler {
	return &GoalHandler{
		goalService:     goalService,
		progressService: progressService,
	}
}

type createGoalRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Points      int    `json:"points"`
}

type transitionGoalRequest struct {
	Status string `json:"status"`
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	goals, err := h.goalService.Goals(userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req createGoalRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	goal, err := h.goalService.Create(userID, req.Title, req.Description, req.Points)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) Transition(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	goalID := r.PathValue("id")

	var req transitionGoalRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	goal, err := h.goalService.Transition(userID, goalID, req.Status)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	goalID := r.PathValue("id")

	err := h.goalService.Delete(userID, goalID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "goal deleted"})
}

func (h *GoalHandler) WeeklyProgress(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	progress, err := h.progressService.Weekly(userID, time.Now())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, progress)
}
