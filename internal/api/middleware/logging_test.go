package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"smart-task-api/internal/logging"
)

func TestLoggingMiddlewareAssignsRequestID(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := r.Context().Value(logging.RequestIDKey).(string); ok {
			seen = id
		}
		w.WriteHeader(http.StatusOK)
	})

	handler := NewLoggingMiddleware(logging.NewNoOpLogger()).Handler()(inner)

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get("X-Request-ID"))
}

func TestLoggingMiddlewarePreservesClientRequestID(t *testing.T) {
	handler := NewLoggingMiddleware(logging.NewNoOpLogger()).Handler()(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("X-Request-ID", "client-supplied-id")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	assert.Equal(t, "client-supplied-id", recorder.Header().Get("X-Request-ID"))
}
