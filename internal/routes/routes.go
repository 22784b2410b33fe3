package routes

import (
	"net/http"

	"github.com/drewfoos/GoalQuest/internal/app"
	"github.com/drewfoos/GoalQuest/internal/handler"
	"github.com/drewfoos/GoalQuest/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService)
	goal := handler.NewGoalHandler(app.GoalService, app.ProgressService)
	reward := handler.NewRewardHandler(app.RewardService)
	dashboard := handler.NewDashboardHandler(app.GoalService, app.RewardService, app.LedgerService, app.ProgressService)

	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /healthz", handler.Health)

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth()
	mux.HandleFunc("POST /api/auth/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /api/auth/login", rateLimiter(auth.Login))

	// Goals
	mux.HandleFunc("GET /api/goals", middleware.RequireAuth(goal.List))
	mux.HandleFunc("POST /api/goals", middleware.RequireAuth(goal.Create))
	mux.HandleFunc("GET /api/goals/weekly-progress", middleware.RequireAuth(goal.WeeklyProgress))
	mux.HandleFunc("PATCH /api/goals/{id}", middleware.RequireAuth(goal.Transition))
	mux.HandleFunc("DELETE /api/goals/{id}", middleware.RequireAuth(goal.Delete))

	// Rewards
	mux.HandleFunc("GET /api/rewards", middleware.RequireAuth(reward.List))
	mux.HandleFunc("POST /api/rewards", middleware.RequireAuth(reward.Create))
	mux.HandleFunc("POST /api/rewards/{id}/claim", middleware.RequireAuth(reward.Claim))
	mux.HandleFunc("DELETE /api/rewards/{id}", middleware.RequireAuth(reward.Delete))

	// Derived views
	mux.HandleFunc("GET /api/points", middleware.RequireAuth(dashboard.Balance))
	mux.HandleFunc("GET /api/dashboard", middleware.RequireAuth(dashboard.Dashboard))

	// Global middleware
	var h http.Handler = mux
	h = middleware.AuthMiddleware(app.AuthService)(h)
	h = middleware.RequestLogging(h)

	return h
}
