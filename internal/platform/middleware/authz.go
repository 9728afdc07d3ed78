// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/taibuivan/bgpiesa/internal/platform/apperr"
	"github.com/taibuivan/bgpiesa/internal/platform/constants"
	"github.com/taibuivan/bgpiesa/internal/platform/ctxutil"
	"github.com/taibuivan/bgpiesa/internal/platform/respond"
	"github.com/taibuivan/bgpiesa/internal/session"
)

// RequireAdmin blocks requests that carry no usable admin credential.
//
// # Flow
//  1. A session cookie is resolved through store.
//  2. Otherwise an 'Authorization: Bearer <token>' header is taken as is.
//  3. The credential must not be expired at now().
//  4. The credential is injected into the request context for the handlers,
//     which forward it to the backend.
func RequireAdmin(store session.Store, now func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()

			// ── 1. Session cookie ─────────────────────────────────────────────
			var credential *session.Credential
			if cookie, err := request.Cookie(constants.SessionCookieName); err == nil && cookie.Value != "" {
				stored, err := store.Load(ctx, cookie.Value)
				switch {
				case err == nil:
					credential = stored
				case errors.Is(err, session.ErrNotFound):
				default:
					respond.Error(writer, request, apperr.Internal(err))
					return
				}
			}

			// ── 2. Bearer pass-through ────────────────────────────────────────
			if credential == nil {
				credential = bearerCredential(request)
			}

			// ── 3. Expiry ─────────────────────────────────────────────────────
			if !credential.Valid(now()) {
				ctxutil.GetLogger(ctx).InfoContext(ctx, "admin_credential_rejected",
					slog.Bool("present", credential != nil),
				)
				respond.Error(writer, request, apperr.Unauthorized("Admin login required"))
				return
			}

			// ── 4. Context injection ──────────────────────────────────────────
			if state := stateOf(ctx); state != nil {
				state.admin = true
			}
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithCredential(ctx, credential)))
		})
	}
}

func bearerCredential(request *http.Request) *session.Credential {
	header := request.Header.Get(constants.HeaderAuthorization)
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, session.BearerScheme) || strings.TrimSpace(token) == "" {
		return nil
	}
	return session.NewCredential(token, strings.ToLower(session.BearerScheme))
}
