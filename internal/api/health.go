// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/bgpiesa/internal/platform/constants"
	"github.com/taibuivan/bgpiesa/internal/platform/respond"
)

// readinessTimeout bounds every dependency check of one /ready call.
const readinessTimeout = 3 * time.Second

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
type HealthDependencies struct {
	// CheckCache pings the Redis session store.
	CheckCache func(ctx context.Context) error

	// CheckBackend calls the catalog backend health endpoint.
	CheckBackend func(ctx context.Context) error
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health (Liveness probe).
func (handler *healthHandler) liveness(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, map[string]string{
		constants.FieldStatus:  "ok",
		constants.FieldApp:     constants.AppName,
		constants.FieldVersion: constants.AppVersion,
	})
}

// readiness handles GET /ready (Readiness probe).
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), readinessTimeout)
	defer cancel()

	checks := []struct {
		name  string
		check func(ctx context.Context) error
	}{
		{"redis", handler.dependencies.CheckCache},
		{"backend", handler.dependencies.CheckBackend},
	}

	results := make([]checkResult, 0, len(checks))
	isSystemReady := true

	for _, dependency := range checks {
		if dependency.check == nil {
			continue
		}

		result := checkResult{Name: dependency.name, IsOK: true}
		if err := dependency.check(ctx); err != nil {
			result.IsOK = false
			result.Error = err.Error()
			isSystemReady = false
			handler.logger.Error("readiness_check_failed", slog.String("dependency", dependency.name), slog.Any("error", err))
		}
		results = append(results, result)
	}

	payload := map[string]any{constants.FieldStatus: "ready", constants.FieldChecks: results}
	if !isSystemReady {
		payload[constants.FieldStatus] = "degraded"
		respond.Status(writer, http.StatusServiceUnavailable, payload)
		return
	}

	respond.OK(writer, payload)
}
