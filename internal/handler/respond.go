package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/drewfoos/GoalQuest/internal/repository"
	"github.com/drewfoos/GoalQuest/internal/service"
	"github.com/drewfoos/GoalQuest/internal/validation"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// respondError maps domain errors onto HTTP statuses and stable error codes.
// Every kind keeps its own code so actionable failures (insufficient
// balance, invalid transition) are never collapsed into a generic one.
func respondError(w http.ResponseWriter, err error) {
	var validationErr *validation.Error
	var transitionErr *service.InvalidTransitionError
	var balanceErr *service.InsufficientBalanceError

	switch {
	case errors.Is(err, repository.ErrGoalNotFound),
		errors.Is(err, repository.ErrRewardNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Code: "not_found"})

	case errors.As(err, &validationErr):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Message, Code: "validation"})

	case errors.As(err, &transitionErr):
		respondJSON(w, http.StatusConflict, errorResponse{Error: transitionErr.Error(), Code: "invalid_transition"})

	case errors.Is(err, service.ErrRewardAlreadyClaimed):
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Code: "reward_already_claimed"})

	case errors.As(err, &balanceErr):
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: balanceErr.Error(), Code: "insufficient_balance"})

	case errors.Is(err, service.ErrConflict):
		// Safe to retry the same logical operation.
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Code: "conflict"})

	default:
		slog.Error("store operation failed", "error", err)
		respondJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "storage unavailable", Code: "store_unavailable"})
	}
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func respondBadRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, errorResponse{Error: message, Code: "validation"})
}
