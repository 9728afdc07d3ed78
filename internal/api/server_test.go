// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bgpiesa/internal/api"
	"github.com/taibuivan/bgpiesa/internal/catalog"
	"github.com/taibuivan/bgpiesa/internal/client"
	"github.com/taibuivan/bgpiesa/internal/platform/config"
	"github.com/taibuivan/bgpiesa/internal/platform/metrics"
	"github.com/taibuivan/bgpiesa/internal/session"
	"github.com/taibuivan/bgpiesa/internal/views"
)

func newServer(t *testing.T, deps api.HealthDependencies) http.Handler {
	t.Helper()

	backend := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode([]catalog.Author{{ID: 1, NameBG: "Иван Вазов"}})
	}))
	t.Cleanup(backend.Close)

	cfg := &config.Config{
		Backend:     config.Backend{APIBaseURL: backend.URL, DefaultLanguage: "bg"},
		ServerPort:  "0",
		Environment: "development",
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := metrics.New()

	catalogClient, err := client.New(cfg.APIBaseURL, client.Options{Observer: registry, Logger: logger})
	require.NoError(t, err)

	liveness, readiness := api.NewHealthHandlers(deps, logger)
	server := api.NewServer(t.Context(), cfg, logger, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Views:     views.NewHandler(views.Options{Catalog: catalogClient, Sessions: session.NewRedisStore(nil)}),
		Sessions:  session.NewRedisStore(nil),
		Metrics:   registry,
	})

	return server.Handler()
}

/*
TestServer_Health answers the liveness probe.
*/
func TestServer_Health(t *testing.T) {
	handler := newServer(t, api.HealthDependencies{})

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"ok"`)
	assert.Contains(t, recorder.Body.String(), `"app":"bgpiesa"`)
	assert.Contains(t, recorder.Body.String(), `"version":"`)
}

/*
TestServer_Ready reports each dependency and degrades when one fails.
*/
func TestServer_Ready(t *testing.T) {
	tests := []struct {
		name       string
		backendErr error
		wantStatus int
		wantBody   string
	}{
		{"all healthy", nil, http.StatusOK, `"status":"ready"`},
		{"backend down", errors.New("connection refused"), http.StatusServiceUnavailable, `"status":"degraded"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := newServer(t, api.HealthDependencies{
				CheckCache:   func(context.Context) error { return nil },
				CheckBackend: func(context.Context) error { return tc.backendErr },
			})

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tc.wantStatus, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tc.wantBody)
			assert.Contains(t, recorder.Body.String(), `"name":"redis"`)
			assert.Contains(t, recorder.Body.String(), `"name":"backend"`)
			assert.Contains(t, recorder.Body.String(), `"checks":[`)
		})
	}
}

/*
TestServer_Routes serves the catalog views under /api/v1 and records them in
the metrics.
*/
func TestServer_Routes(t *testing.T) {
	handler := newServer(t, api.HealthDependencies{})

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/authors?lang=en", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "en", recorder.Header().Get("Content-Language"))
	assert.Contains(t, recorder.Body.String(), "Иван Вазов")

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "bgpiesa_http_requests_total")
	assert.Contains(t, recorder.Body.String(), "bgpiesa_upstream_requests_total")

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/v1/admin/authors", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	for _, path := range []string{"/nope", "/api/v1/nope"} {
		recorder = httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, recorder.Code, path)
		assert.Contains(t, recorder.Body.String(), "NOT_FOUND", path)
	}
}
