// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bgpiesa/internal/i18n"
	"github.com/taibuivan/bgpiesa/internal/platform/constants"
	"github.com/taibuivan/bgpiesa/internal/platform/ctxutil"
	"github.com/taibuivan/bgpiesa/internal/platform/middleware"
	"github.com/taibuivan/bgpiesa/internal/session"
)

type memoryStore struct {
	credentials map[string]*session.Credential
}

func (s *memoryStore) Save(_ context.Context, id string, credential *session.Credential, _ time.Duration) error {
	s.credentials[id] = credential
	return nil
}

func (s *memoryStore) Load(_ context.Context, id string) (*session.Credential, error) {
	credential, ok := s.credentials[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	return credential, nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	delete(s.credentials, id)
	return nil
}

type fakeConfig struct {
	development bool
	origins     []string
}

func (c fakeConfig) IsDevelopment() bool      { return c.development }
func (c fakeConfig) AllowedOrigins() []string { return c.origins }

/*
TestLanguage prefers the query parameter over Accept-Language.
*/
func TestLanguage(t *testing.T) {
	tests := []struct {
		name   string
		target string
		accept string
		want   i18n.Lang
	}{
		{"query wins", "/?lang=en", "bg", i18n.English},
		{"accept header", "/", "en-GB,en;q=0.9", i18n.English},
		{"fallback", "/", "", i18n.Bulgarian},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got i18n.Lang
			handler := middleware.Language(i18n.Bulgarian)(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
				got = ctxutil.GetLanguage(request.Context())
			}))

			request := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.accept != "" {
				request.Header.Set(constants.HeaderAcceptLanguage, tc.accept)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want.String(), recorder.Header().Get("Content-Language"))
		})
	}
}

/*
TestRequireAdmin accepts a stored session or a bearer header and rejects the rest.
*/
func TestRequireAdmin(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	store := &memoryStore{credentials: map[string]*session.Credential{
		"live":    {Token: "live-token", TokenType: "bearer", ExpiresAt: now.Add(time.Hour)},
		"expired": {Token: "old-token", TokenType: "bearer", ExpiresAt: now.Add(-time.Hour)},
	}}

	tests := []struct {
		name      string
		cookie    string
		bearer    string
		wantCode  int
		wantToken string
	}{
		{"session cookie", "live", "", http.StatusOK, "live-token"},
		{"bearer header", "", "Bearer raw-token", http.StatusOK, "raw-token"},
		{"unknown session falls back to bearer", "gone", "bearer raw-token", http.StatusOK, "raw-token"},
		{"expired session", "expired", "", http.StatusUnauthorized, ""},
		{"malformed header", "", "Token abc", http.StatusUnauthorized, ""},
		{"anonymous", "", "", http.StatusUnauthorized, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotToken string
			handler := middleware.RequireAdmin(store, func() time.Time { return now })(
				http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
					gotToken = ctxutil.GetCredential(request.Context()).Token
				}),
			)

			request := httptest.NewRequest(http.MethodPost, "/api/v1/admin/authors", nil)
			if tc.cookie != "" {
				request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: tc.cookie})
			}
			if tc.bearer != "" {
				request.Header.Set(constants.HeaderAuthorization, tc.bearer)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tc.wantCode, recorder.Code)
			assert.Equal(t, tc.wantToken, gotToken)
		})
	}
}

/*
TestCORS only reflects configured origins outside development.
*/
func TestCORS(t *testing.T) {
	handler := middleware.CORS(fakeConfig{origins: []string{"https://bgpiesa.bg"}})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	for origin, want := range map[string]string{
		"https://bgpiesa.bg":  "https://bgpiesa.bg",
		"https://example.com": "",
	} {
		request := httptest.NewRequest(http.MethodGet, "/api/v1/plays", nil)
		request.Header.Set(constants.HeaderOrigin, origin)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, want, recorder.Header().Get("Access-Control-Allow-Origin"), origin)
	}

	preflight := httptest.NewRequest(http.MethodOptions, "/api/v1/plays", nil)
	preflight.Header.Set(constants.HeaderOrigin, "https://bgpiesa.bg")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, preflight)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

/*
TestRequestID reuses an incoming ID and generates one otherwise.
*/
func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "abc-123")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", recorder.Header().Get(constants.HeaderXRequestID))

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.NotEqual(t, "abc-123", seen)
}

/*
TestRateLimit rejects a burst above the per-IP allowance.
*/
func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(ctx)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	limited := 0
	for range constants.DefaultRateLimitBurst + 50 {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = "203.0.113.7:5555"
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		if recorder.Code == http.StatusTooManyRequests {
			limited++
		}
	}

	assert.Positive(t, limited)
}

/*
TestPanicRecovery turns a panic into a 500 response.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}
