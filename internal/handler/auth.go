package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/drewfoos/GoalQuest/internal/model"
	"github.com/drewfoos/GoalQuest/internal/service"
	"github.com/drewfoos/GoalQuest/internal/validation"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	user, err := h.authService.Register(req.Email, req.Password)
	if errors.Is(err, service.ErrEmailAlreadyExists) {
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Code: "email_exists"})
		return
	}
	var validationErr *validation.Error
	if errors.As(err, &validationErr) {
		respondBadRequest(w, validationErr.Message)
		return
	}
	if err != nil {
		slog.Error("failed to register user", "error", err)
		respondError(w, err)
		return
	}

	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		slog.Error("failed to generate token", "error", err, "user_id", user.ID)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error(), Code: "unauthorized"})
		return
	}
	if err != nil {
		slog.Error("failed to log in user", "error", err)
		respondError(w, err)
		return
	}

	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		slog.Error("failed to generate token", "error", err, "user_id", user.ID)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}
