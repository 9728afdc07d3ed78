// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bgpiesa/internal/platform/apperr"
)

/*
TestUpstream carries the backend text and falls back to a generic notice.
*/
func TestUpstream(t *testing.T) {
	cause := errors.New("Author has plays and cannot be deleted")

	ae := apperr.Upstream(cause)
	assert.Equal(t, "UPSTREAM_ERROR", ae.Code)
	assert.Equal(t, http.StatusBadGateway, ae.HTTPStatus)
	assert.Equal(t, cause.Error(), ae.Message)
	assert.ErrorIs(t, ae, cause)

	assert.Equal(t, "Request failed.", apperr.Upstream(nil).Message)
	assert.Equal(t, "Request failed.", apperr.Upstream(errors.New("  ")).Message)
}

/*
TestAs finds an AppError through wrapping.
*/
func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("views: %w", apperr.Unauthorized("Authentication required"))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusUnauthorized, ae.HTTPStatus)

	assert.Nil(t, apperr.As(errors.New("plain")))
}
