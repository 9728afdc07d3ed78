// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/bgpiesa/internal/i18n"
	"github.com/taibuivan/bgpiesa/internal/platform/ctxkey"
	"github.com/taibuivan/bgpiesa/internal/session"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok || logger == nil {
		return slog.Default()
	}
	return logger
}

// # Display Language

// WithLanguage returns a new context carrying the display language.
func WithLanguage(ctx context.Context, lang i18n.Lang) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLanguage, lang)
}

// GetLanguage retrieves the display language, defaulting to Bulgarian.
func GetLanguage(ctx context.Context) i18n.Lang {
	lang, ok := ctx.Value(ctxkey.KeyLanguage).(i18n.Lang)
	if !ok || !lang.IsValid() {
		return i18n.Default
	}
	return lang
}

// # Admin Credential

// WithCredential returns a new context with the admin credential attached.
func WithCredential(ctx context.Context, credential *session.Credential) context.Context {
	return context.WithValue(ctx, ctxkey.KeyCredential, credential)
}

// GetCredential retrieves the [*session.Credential] from the [context.Context].
func GetCredential(ctx context.Context) *session.Credential {
	credential, ok := ctx.Value(ctxkey.KeyCredential).(*session.Credential)
	if !ok {
		return nil
	}
	return credential
}
