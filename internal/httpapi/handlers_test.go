package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"workclock/internal/api"
	"workclock/internal/auth"
	"workclock/internal/clock"
	"workclock/internal/config"
	"workclock/internal/services"
	"workclock/internal/storage"
	"workclock/internal/validation"
)

type testServer struct {
	router *gin.Engine
	clock  *clock.FixedClock
}

func setupRouter(t *testing.T, provider auth.Provider, required bool) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	loc := time.FixedZone("UTC+1", 3600)
	clk := clock.NewFixedClock(time.Date(2024, 1, 15, 9, 0, 0, 0, loc))
	bucketer := clock.NewBucketer(loc)
	logger := zaptest.NewLogger(t)

	container := services.NewServiceContainer(storage.NewMemoryStore(), clk, bucketer, services.Options{}, logger)
	businessAPI := api.NewBusinessAPI(container, validation.NewValidator(bucketer), "default", logger)
	router := NewRouter(NewHandler(businessAPI, logger), provider, config.AuthConfig{Required: required}, logger)
	return &testServer{router: router, clock: clk}
}

func (s *testServer) do(t *testing.T, method, path, body, token string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded), w.Body.String())
	return w, decoded
}

func TestHealth(t *testing.T) {
	s := setupRouter(t, nil, false)

	w, body := s.do(t, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestTimeEntryFlow(t *testing.T) {
	// Arrange
	s := setupRouter(t, nil, false)

	// Act & Assert
	w, body := s.do(t, http.MethodGet, "/time-entries/today?userId=u1", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Nil(t, body["entry"])

	w, body = s.do(t, http.MethodPost, "/time-entries", `{"action":"check_in","userId":"u1"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
	entry := body["entry"].(map[string]interface{})
	assert.Equal(t, "checked_in", entry["status"])
	assert.Equal(t, "2024-01-15", entry["date"])
	assert.Equal(t, "u1_2024-01-15", entry["id"])
	assert.NotContains(t, entry, "totalHours")

	w, body = s.do(t, http.MethodPost, "/time-entries", `{"action":"check_in","userId":"u1"}`, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "ALREADY_CHECKED_IN", body["code"])

	s.clock.Advance(8*time.Hour + 30*time.Minute)
	w, body = s.do(t, http.MethodPost, "/time-entries", `{"action":"check_out","userId":"u1"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
	entry = body["entry"].(map[string]interface{})
	assert.Equal(t, "completed", entry["status"])
	assert.Equal(t, 8.5, entry["totalHours"])

	w, body = s.do(t, http.MethodGet, "/time-entries/history?userId=u1", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["entries"], 1)
	summary := body["summary"].(map[string]interface{})
	assert.Equal(t, 8.5, summary["totalHours"])
}

func TestPostTimeEntryErrors(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedError  string
	}{
		{name: "should return 400 for check-out without check-in", body: `{"action":"check_out","userId":"u1"}`, expectedStatus: http.StatusBadRequest, expectedError: "No check-in found for today"},
		{name: "should return 400 for an unknown action", body: `{"action":"nap","userId":"u1"}`, expectedStatus: http.StatusBadRequest},
		{name: "should return 400 for malformed json", body: `{"action":`, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupRouter(t, nil, false)

			w, body := s.do(t, http.MethodPost, "/time-entries", tt.body, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, false, body["success"])
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, body["error"])
			}
		})
	}
}

func TestCalendarAndAnalytics(t *testing.T) {
	// Arrange
	s := setupRouter(t, nil, false)
	s.do(t, http.MethodPost, "/time-entries", `{"action":"check_in"}`, "")

	// Act
	w, body := s.do(t, http.MethodGet, "/time-entries/calendar?start=2024-01-01&end=2024-01-31&fill=true", "", "")

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["entries"], 31)
	stats := body["stats"].(map[string]interface{})
	assert.Equal(t, float64(31), stats["totalDays"])
	assert.Equal(t, float64(1), stats["workDays"])

	w, _ = s.do(t, http.MethodGet, "/time-entries/calendar?start=2024-02-01&end=2024-01-01", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = s.do(t, http.MethodGet, "/analytics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	analytics := body["analytics"].(map[string]interface{})
	assert.Len(t, analytics["dailyStats"], 7)
	assert.Equal(t, float64(0), analytics["weeklyHours"])

	w, body = s.do(t, http.MethodGet, "/profile/stats", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, "stats")
}

func TestSettingsAndProfileRoutes(t *testing.T) {
	s := setupRouter(t, nil, false)

	w, body := s.do(t, http.MethodGet, "/settings?userId=u1", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, body["settings"])

	w, _ = s.do(t, http.MethodPost, "/settings", `{"userId":"u1","settings":{"theme":"dark"}}`, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, body = s.do(t, http.MethodGet, "/settings?userId=u1", "", "")
	assert.Equal(t, map[string]interface{}{"theme": "dark"}, body["settings"])

	w, _ = s.do(t, http.MethodPost, "/profile", `{"profile":["not","an","object"]}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodPost, "/profile", `{"profile":{"name":"Ana"}}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w, body = s.do(t, http.MethodGet, "/profile", "", "")
	assert.Equal(t, map[string]interface{}{"name": "Ana"}, body["profile"])
}

func TestAuthentication(t *testing.T) {
	provider, err := auth.NewStaticProvider("good:ana")
	require.NoError(t, err)

	tests := []struct {
		name           string
		required       bool
		method         string
		path           string
		body           string
		token          string
		expectedStatus int
	}{
		{name: "should allow health without token", required: true, method: http.MethodGet, path: "/health", expectedStatus: http.StatusOK},
		{name: "should require a token", required: true, method: http.MethodGet, path: "/analytics", expectedStatus: http.StatusUnauthorized},
		{name: "should reject a bad token", required: false, method: http.MethodGet, path: "/analytics", token: "bad", expectedStatus: http.StatusUnauthorized},
		{name: "should accept a good token", required: true, method: http.MethodGet, path: "/analytics", token: "good", expectedStatus: http.StatusOK},
		{name: "should allow anonymous when optional", required: false, method: http.MethodGet, path: "/analytics", expectedStatus: http.StatusOK},
		{name: "should reject acting for another user", required: true, method: http.MethodGet, path: "/time-entries/history?userId=luis", token: "good", expectedStatus: http.StatusUnauthorized},
		{name: "should accept the own user id", required: true, method: http.MethodPost, path: "/time-entries", body: `{"action":"check_in","userId":"ana"}`, token: "good", expectedStatus: http.StatusOK},
		{name: "should verify the token", required: true, method: http.MethodGet, path: "/auth/verify", token: "good", expectedStatus: http.StatusOK},
		{name: "should not verify anonymous callers", required: false, method: http.MethodGet, path: "/auth/verify", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupRouter(t, provider, tt.required)

			w, _ := s.do(t, tt.method, tt.path, tt.body, tt.token)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestAuthenticatedUserOwnsEntries(t *testing.T) {
	provider, err := auth.NewStaticProvider("good:ana")
	require.NoError(t, err)
	s := setupRouter(t, provider, true)

	_, body := s.do(t, http.MethodPost, "/time-entries", `{"action":"check_in"}`, "good")
	entry := body["entry"].(map[string]interface{})
	assert.Equal(t, "ana", entry["userId"])

	_, body = s.do(t, http.MethodGet, "/auth/verify", "", "good")
	assert.Equal(t, map[string]interface{}{"id": "ana"}, body["user"])
}
