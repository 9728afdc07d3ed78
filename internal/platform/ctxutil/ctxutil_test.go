// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/bgpiesa/internal/i18n"
	"github.com/taibuivan/bgpiesa/internal/platform/ctxutil"
	"github.com/taibuivan/bgpiesa/internal/session"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Language defaults to Bulgarian until a language is negotiated.
*/
func TestContext_Language(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, i18n.Bulgarian, ctxutil.GetLanguage(ctx))

	ctx = ctxutil.WithLanguage(ctx, i18n.English)
	assert.Equal(t, i18n.English, ctxutil.GetLanguage(ctx))

	ctx = ctxutil.WithLanguage(ctx, i18n.Lang("de"))
	assert.Equal(t, i18n.Bulgarian, ctxutil.GetLanguage(ctx))
}

/*
TestContext_Credential verifies that the admin credential can be stored in context.
*/
func TestContext_Credential(t *testing.T) {
	ctx := context.Background()
	credential := &session.Credential{Token: "abc", TokenType: "bearer"}

	// 1. Initially should be nil
	assert.Nil(t, ctxutil.GetCredential(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithCredential(ctx, credential)
	retrieved := ctxutil.GetCredential(ctx)

	assert.NotNil(t, retrieved)
	assert.Equal(t, "abc", retrieved.Token)
}
