package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-task-api/internal/config"
	"smart-task-api/internal/logging"
	"smart-task-api/internal/storage"
	"smart-task-api/internal/tasks"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Storage.DSN = ":memory:"

	db, err := storage.Open(&cfg.Storage)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = db.Close()
	})
	require.NoError(t, storage.Migrate(context.Background(), db))

	repo := storage.NewTaskRepository(db)
	service := tasks.NewService(repo, tasks.DefaultServiceConfig())
	suggester := tasks.NewSuggester(repo)

	router := NewRouter(cfg, service, suggester, db, logging.NewNoOpLogger())
	return router.Handler()
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func TestRouterRoot(t *testing.T) {
	handler := newTestRouter(t)

	recorder := get(t, handler, "/")
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data struct {
			Message   string            `json:"message"`
			Endpoints map[string]string `json:"endpoints"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "Welcome to Smart Task Management API", envelope.Data.Message)
	assert.Equal(t, "/api/v1/tasks", envelope.Data.Endpoints["tasks"])
}

func TestRouterHeartbeat(t *testing.T) {
	handler := newTestRouter(t)

	recorder := get(t, handler, "/ping")
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRouterHealth(t *testing.T) {
	handler := newTestRouter(t)

	for _, path := range []string{"/health", "/api/v1/health"} {
		recorder := get(t, handler, path)
		assert.Equal(t, http.StatusOK, recorder.Code, path)
	}
}

func TestRouterNotFound(t *testing.T) {
	handler := newTestRouter(t)

	recorder := get(t, handler, "/api/v2/unknown")
	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "NOT_FOUND")
}

func TestRouterMethodNotAllowed(t *testing.T) {
	handler := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/tasks", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
}

func TestRouterSuggestionRoutePrecedence(t *testing.T) {
	handler := newTestRouter(t)

	recorder := get(t, handler, "/api/v1/tasks/suggestions/smart")
	require.Equal(t, http.StatusOK, recorder.Code)
	// Empty store serves the default suggestion set.
	assert.Contains(t, recorder.Body.String(), "Weekly Planning Session")
}

func TestRouterStatisticsRoute(t *testing.T) {
	handler := newTestRouter(t)

	recorder := get(t, handler, "/api/v1/tasks/statistics/overview")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "total_tasks")
}

func TestRouterCORSHeaders(t *testing.T) {
	handler := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/tasks", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}
