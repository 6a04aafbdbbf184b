package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-task-api/internal/config"
)

type stubPinger struct {
	err error
}

func (s *stubPinger) PingContext(context.Context) error {
	return s.err
}

func healthRecorder(t *testing.T, db Pinger) (*httptest.ResponseRecorder, HealthStatus) {
	t.Helper()

	handler := NewHealthHandler(config.DefaultConfig(), db)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	recorder := httptest.NewRecorder()
	handler.Handle(recorder, req)

	var status HealthStatus
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &status))
	return recorder, status
}

func TestHealthCheckHealthy(t *testing.T) {
	recorder, status := healthRecorder(t, &stubPinger{})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "smart-task-api", status.Server)
	require.Contains(t, status.Checks, "database")
	assert.Equal(t, "healthy", status.Checks["database"].Status)
}

func TestHealthCheckDatabaseDown(t *testing.T) {
	recorder, status := healthRecorder(t, &stubPinger{err: errors.New("connection refused")})

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Equal(t, "unhealthy", status.Status)
	assert.Equal(t, "unhealthy", status.Checks["database"].Status)
	assert.Contains(t, status.Checks["database"].Message, "connection refused")
}

func TestHealthCheckNoDatabase(t *testing.T) {
	recorder, status := healthRecorder(t, nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.NotContains(t, status.Checks, "database")
}
