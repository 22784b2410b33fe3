package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/drewfoos/GoalQuest/internal/app"
	"github.com/drewfoos/GoalQuest/internal/config"
	"github.com/drewfoos/GoalQuest/internal/model"
	"github.com/drewfoos/GoalQuest/internal/routes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		AppName:      "GoalQuest",
		AppEnv:       "development",
		Port:         "0",
		DBDriver:     "sqlite",
		DBConnection: filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)",
		JWTSecret:    "test-secret",
		JWTExpiry:    time.Hour,
		TimeZone:     "UTC",
	}

	application, err := app.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { application.Close() })

	return routes.SetupRoutes(application)
}

func doRequest(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func registerUser(t *testing.T, h http.Handler, email string) string {
	t.Helper()

	rec := doRequest(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "a-long-enough-secret",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decodeBody[struct {
		Token string `json:"token"`
	}](t, rec)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestAuthRequired(t *testing.T) {
	h := newTestServer(t)

	rec := doRequest(t, h, http.MethodGet, "/api/goals", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/api/goals", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGoalAndClaimFlow(t *testing.T) {
	h := newTestServer(t)
	token := registerUser(t, h, "flow@example.com")

	// Create a goal worth 500 points
	rec := doRequest(t, h, http.MethodPost, "/api/goals", token, map[string]any{
		"title":       "Ship the feature",
		"description": "end to end",
		"points":      500,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	goal := decodeBody[model.Goal](t, rec)

	// Balance starts at zero
	rec = doRequest(t, h, http.MethodGet, "/api/points", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	balance := decodeBody[struct {
		Balance int `json:"balance"`
	}](t, rec)
	assert.Equal(t, 0, balance.Balance)

	// Complete the goal
	rec = doRequest(t, h, http.MethodPatch, "/api/goals/"+goal.ID, token, map[string]string{
		"status": model.GoalStatusCompleted,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(t, h, http.MethodGet, "/api/points", token, nil)
	balance = decodeBody[struct {
		Balance int `json:"balance"`
	}](t, rec)
	assert.Equal(t, 500, balance.Balance)

	// Create and claim a reward costing exactly the balance
	rec = doRequest(t, h, http.MethodPost, "/api/rewards", token, map[string]any{
		"title":     "Celebration dinner",
		"pointCost": 500,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	reward := decodeBody[model.Reward](t, rec)

	rec = doRequest(t, h, http.MethodPost, "/api/rewards/"+reward.ID+"/claim", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Second claim fails with a stable error code
	rec = doRequest(t, h, http.MethodPost, "/api/rewards/"+reward.ID+"/claim", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	errResp := decodeBody[struct {
		Code string `json:"code"`
	}](t, rec)
	assert.Equal(t, "reward_already_claimed", errResp.Code)
}

func TestClaimInsufficientBalanceCode(t *testing.T) {
	h := newTestServer(t)
	token := registerUser(t, h, "poor@example.com")

	rec := doRequest(t, h, http.MethodPost, "/api/rewards", token, map[string]any{
		"title":     "Unaffordable",
		"pointCost": 100,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	reward := decodeBody[model.Reward](t, rec)

	rec = doRequest(t, h, http.MethodPost, "/api/rewards/"+reward.ID+"/claim", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errResp := decodeBody[struct {
		Code string `json:"code"`
	}](t, rec)
	assert.Equal(t, "insufficient_balance", errResp.Code)
}

func TestInvalidTransitionCode(t *testing.T) {
	h := newTestServer(t)
	token := registerUser(t, h, "machine@example.com")

	rec := doRequest(t, h, http.MethodPost, "/api/goals", token, map[string]any{
		"title":  "Doomed goal",
		"points": 10,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	goal := decodeBody[model.Goal](t, rec)

	rec = doRequest(t, h, http.MethodPatch, "/api/goals/"+goal.ID, token, map[string]string{
		"status": model.GoalStatusCancelled,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Cancelled is terminal
	rec = doRequest(t, h, http.MethodPatch, "/api/goals/"+goal.ID, token, map[string]string{
		"status": model.GoalStatusInProgress,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	errResp := decodeBody[struct {
		Code string `json:"code"`
	}](t, rec)
	assert.Equal(t, "invalid_transition", errResp.Code)
}

func TestGoalNotFoundCode(t *testing.T) {
	h := newTestServer(t)
	token := registerUser(t, h, "lost@example.com")

	rec := doRequest(t, h, http.MethodPatch, "/api/goals/missing", token, map[string]string{
		"status": model.GoalStatusCompleted,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDashboard(t *testing.T) {
	h := newTestServer(t)
	token := registerUser(t, h, "dash@example.com")

	rec := doRequest(t, h, http.MethodPost, "/api/goals", token, map[string]any{
		"title":  "Dashboard goal",
		"points": 50,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	goal := decodeBody[model.Goal](t, rec)

	rec = doRequest(t, h, http.MethodPatch, "/api/goals/"+goal.ID, token, map[string]string{
		"status": model.GoalStatusCompleted,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	dash := decodeBody[struct {
		Goals          []model.Goal          `json:"goals"`
		Rewards        []model.Reward        `json:"rewards"`
		WeeklyProgress []model.DailyProgress `json:"weeklyProgress"`
		TotalPoints    int                   `json:"totalPoints"`
	}](t, rec)

	assert.Len(t, dash.Goals, 1)
	assert.NotEmpty(t, dash.Rewards, "catalog rewards are seeded")
	assert.Len(t, dash.WeeklyProgress, 7)
	assert.Equal(t, 50, dash.TotalPoints)
}
