package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/koit3572/kostudy/internal/domain"
	"github.com/koit3572/kostudy/internal/heatmap"
	"github.com/koit3572/kostudy/internal/session"
	"github.com/koit3572/kostudy/internal/store"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) (*Server, store.Repo) {
	t.Helper()
	repo, err := store.Open(context.Background(), store.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	log := zap.NewNop()
	sessions := session.NewManager(repo, log, time.Minute)
	t.Cleanup(sessions.StopAll)
	heat := heatmap.NewService(repo, log, 3)

	srv := New(context.Background(), log, sessions, heat, testSecret)
	srv.now = func() time.Time {
		return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	}
	return srv, repo
}

func authedRequest(t *testing.T, method, target, userID string) *http.Request {
	t.Helper()
	token, err := GenerateToken(userID, testSecret, time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	return req
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := srv.app.Test(httptest.NewRequest("GET", "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSessionStartStop(t *testing.T) {
	srv, _ := newTestServer(t)
	userID := uuid.NewString()

	resp, err := srv.app.Test(authedRequest(t, "POST", "/api/session/start", userID))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, srv.sessions.Active(userID))

	resp, err = srv.app.Test(authedRequest(t, "POST", "/api/session/stop", userID))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.False(t, srv.sessions.Active(userID))
}

func TestSession_Unauthorized(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := srv.app.Test(httptest.NewRequest("POST", "/api/session/start", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest("POST", "/api/session/start", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-token")
	resp, err = srv.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

type heatmapResponse struct {
	Base struct {
		Year  int `json:"year"`
		Month int `json:"month"`
	} `json:"base"`
	Months []heatmap.MonthView `json:"months"`
	Legend []string            `json:"legend"`
}

func TestHeatmap_WithRecords(t *testing.T) {
	srv, repo := newTestServer(t)
	userID := uuid.NewString()

	require.NoError(t, repo.UpsertDaily(context.Background(), &domain.DailyRecord{
		UserID: userID, StudyDate: "2024-02-29", TotalMinutes: 95, Level: 3,
	}))

	req := authedRequest(t, "GET", "/api/heatmap?year=2024&month=2", userID)
	resp, err := srv.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body heatmapResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2024, body.Base.Year)
	assert.Equal(t, 2, body.Base.Month)
	require.Len(t, body.Months, 3)
	assert.Equal(t, "2024.02", body.Months[0].Label)
	require.Len(t, body.Months[0].Cells, 42)
	assert.Equal(t, []string{"none", "light", "medium", "strong", "max"}, body.Legend)

	found := false
	for _, cell := range body.Months[0].Cells {
		if cell.Day == 29 {
			found = true
			assert.Equal(t, 3, cell.Level)
			assert.Equal(t, "strong", cell.Intensity)
		}
	}
	assert.True(t, found)
}

func TestHeatmap_DefaultBase(t *testing.T) {
	srv, _ := newTestServer(t)

	// now is fixed to 2024-03-15, so the default base is February 2024
	resp, err := srv.app.Test(authedRequest(t, "GET", "/api/heatmap", uuid.NewString()))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body heatmapResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2024, body.Base.Year)
	assert.Equal(t, 2, body.Base.Month)
}

func TestHeatmap_UnauthenticatedDegrades(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := srv.app.Test(httptest.NewRequest("GET", "/api/heatmap?year=2024&month=2", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body heatmapResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Months, 3)
	for _, m := range body.Months {
		for _, cell := range m.Cells {
			assert.Equal(t, 0, cell.Level)
		}
	}
}

func TestHeatmap_BadMonth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := srv.app.Test(httptest.NewRequest("GET", "/api/heatmap?year=2024&month=13", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
