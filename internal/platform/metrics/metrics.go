// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics exposes Prometheus instrumentation for the web front: the
// requests it serves and the catalog backend calls it makes.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bgpiesa"

// Metrics holds the collectors registered on one registry.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	upstreamTotal       *prometheus.CounterVec
	upstreamDuration    *prometheus.HistogramVec
}

// New creates the collectors on a fresh registry, together with the Go and
// process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests served by the web front",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests served by the web front",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		upstreamTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Total number of calls to the catalog backend",
		}, []string{"method", "route", "status"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of calls to the catalog backend",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.upstreamTotal,
		m.upstreamDuration,
	)

	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one catalog backend call. A status of 0 means the
// call failed before a response arrived.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.upstreamTotal.WithLabelValues(method, route, statusLabel(status)).Inc()
	m.upstreamDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Middleware records every served request under its chi route pattern.
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			startTime := time.Now()
			recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

			next.ServeHTTP(recorder, request)

			route := "unmatched"
			if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
				if pattern := routeContext.RoutePattern(); pattern != "" {
					route = pattern
				}
			}

			m.httpRequestsTotal.WithLabelValues(request.Method, route, statusLabel(recorder.status)).Inc()
			m.httpRequestDuration.WithLabelValues(route).Observe(time.Since(startTime).Seconds())
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

func statusLabel(status int) string {
	if status == 0 {
		return "error"
	}
	return strconv.Itoa(status)
}
