// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware provides the HTTP processing chain of the web front.

Standard Stack:

  - Trace: RequestID generation for log correlation.
  - Log: structured request logging (slog) with a per-request logger.
  - Locale: the display language from ?lang= or Accept-Language.
  - Guard: per-IP rate limiting and CORS.
  - Safe: panic recovery.
  - Admin: the session credential gate (see [RequireAdmin]).
*/
package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/taibuivan/bgpiesa/internal/i18n"
	"github.com/taibuivan/bgpiesa/internal/platform/apperr"
	"github.com/taibuivan/bgpiesa/internal/platform/constants"
	"github.com/taibuivan/bgpiesa/internal/platform/ctxutil"
	"github.com/taibuivan/bgpiesa/internal/platform/respond"
)

// # Request Tracing

// RequestID attaches a correlation ID to every request for log tracing.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// 1. Reuse the caller's ID when present
			requestID := request.Header.Get(constants.HeaderXRequestID)

			// 2. Otherwise generate a time-sortable one
			if requestID == "" {
				if uuidV7, err := uuid.NewV7(); err == nil {
					requestID = uuidV7.String()
				} else {
					requestID = uuid.New().String()
				}
			}

			// 3. Inject into context and response headers
			ctx := ctxutil.WithRequestID(request.Context(), requestID)
			writer.Header().Set(constants.HeaderXRequestID, requestID)

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// # Activity Logging

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

// StructuredLogger logs every request with its status and latency, and
// injects a request-scoped logger into the context.
func StructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			startTime := time.Now()

			// 1. Sub-logger for this request
			requestLogger := logger.With(
				slog.String("request_id", ctxutil.GetRequestID(request.Context())),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
				slog.String("ip", RealIP(request)),
			)

			ctx := ctxutil.WithLogger(request.Context(), requestLogger)
			wrappedWriter := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

			// 2. Downstream handlers may replace the request context, so the
			// admin flag is read from the shared holder afterwards
			holder := &requestState{}
			ctx = context.WithValue(ctx, requestStateKey{}, holder)

			next.ServeHTTP(wrappedWriter, request.WithContext(ctx))

			// 3. Final entry
			logLevel := slog.LevelInfo
			if wrappedWriter.status >= 500 {
				logLevel = slog.LevelError
			} else if wrappedWriter.status >= 400 {
				logLevel = slog.LevelWarn
			}

			requestLogger.Log(ctx, logLevel, "http_request_finished",
				slog.Int("status", wrappedWriter.status),
				slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
				slog.String("user_agent", request.UserAgent()),
				slog.String("lang", holder.lang.String()),
				slog.Bool("admin", holder.admin),
			)
		})
	}
}

type requestStateKey struct{}

// requestState carries facts set by inner middleware back to the logger.
type requestState struct {
	admin bool
	lang  i18n.Lang
}

func stateOf(ctx context.Context) *requestState {
	if state, ok := ctx.Value(requestStateKey{}).(*requestState); ok {
		return state
	}
	return nil
}

// # Locale

// Language resolves the display language from the "lang" query parameter,
// then Accept-Language, then the configured fallback.
func Language(fallback i18n.Lang) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			lang := fallback

			if code := request.URL.Query().Get(constants.QueryLanguage); code != "" {
				lang = i18n.Parse(code)
			} else if header := request.Header.Get(constants.HeaderAcceptLanguage); header != "" {
				lang = i18n.Negotiate(header)
			}

			if state := stateOf(request.Context()); state != nil {
				state.lang = lang
			}

			writer.Header().Set("Content-Language", lang.String())
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithLanguage(request.Context(), lang)))
		})
	}
}

// # Rate Limiting

type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*rateLimitClient
	rps     rate.Limit
	burst   int
}

// RateLimit limits requests per client IP with a token bucket. Idle clients
// are dropped until ctx is done.
func RateLimit(ctx context.Context) func(http.Handler) http.Handler {
	return rateLimit(ctx, rate.Limit(constants.DefaultRateLimitRPS), constants.DefaultRateLimitBurst)
}

func rateLimit(ctx context.Context, rps rate.Limit, burst int) func(http.Handler) http.Handler {
	limiter := &rateLimiter{clients: make(map[string]*rateLimitClient), rps: rps, burst: burst}

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				limiter.sweep(time.Now())
			case <-ctx.Done():
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !limiter.allow(RealIP(request), time.Now()) {
				respond.Error(writer, request, apperr.RateLimited(1))
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

func (l *rateLimiter) allow(clientIP string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	clientInfo, found := l.clients[clientIP]
	if !found {
		clientInfo = &rateLimitClient{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[clientIP] = clientInfo
	}
	clientInfo.lastSeen = now

	return clientInfo.limiter.AllowN(now, 1)
}

func (l *rateLimiter) sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for ip, clientInfo := range l.clients {
		if now.Sub(clientInfo.lastSeen) > constants.RateLimitClientTTL {
			delete(l.clients, ip)
		}
	}
}

// # Reliability & Safety

// PanicRecovery recovers from panics, logs the stack trace, and returns 500.
func PanicRecovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					stackTrace := make([]byte, 2048)
					length := runtime.Stack(stackTrace, false)

					ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "panic_recovered",
						slog.Any("error", err),
						slog.String("stack", string(stackTrace[:length])),
					)

					writeError(writer, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
				}
			}()

			next.ServeHTTP(writer, request)
		})
	}
}

// # Cross-Origin Resource Sharing

// AppConfig defines the behavior needed by the CORS middleware.
type AppConfig interface {
	IsDevelopment() bool
	AllowedOrigins() []string
}

// CORS allows any origin in development and the configured origins otherwise.
func CORS(cfg AppConfig) func(http.Handler) http.Handler {
	allowed := cfg.AllowedOrigins()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// 1. Same-origin or non-browser request
			origin := request.Header.Get(constants.HeaderOrigin)
			if origin == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// 2. Inject CORS headers for allowed origins
			if cfg.IsDevelopment() || slices.Contains(allowed, origin) {
				header := writer.Header()
				header.Set("Access-Control-Allow-Origin", origin)
				header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				header.Set("Access-Control-Allow-Headers", "Accept, Accept-Language, Content-Type, Content-Length, Authorization, X-Request-ID")
				header.Set("Access-Control-Expose-Headers", "Content-Length, Content-Language, X-Request-ID")
				header.Set("Access-Control-Allow-Credentials", "true")
				header.Set("Access-Control-Max-Age", "300")
				header.Add("Vary", constants.HeaderOrigin)
			}

			// 3. Pre-flight
			if request.Method == http.MethodOptions {
				writer.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// # Middleware Helpers

// RealIP extracts the client IP, respecting common proxy headers.
func RealIP(request *http.Request) string {
	if ip := request.Header.Get(constants.HeaderXRealIP); ip != "" {
		return ip
	}

	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}

// writeError outputs a minimal JSON error payload without touching the
// request context.
func writeError(writer http.ResponseWriter, status int, code, message string) {
	writer.Header().Set(constants.HeaderContentType, "application/json; charset=utf-8")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(map[string]string{
		constants.FieldCode:  code,
		constants.FieldError: message,
	})
}
