// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bgpiesa/internal/platform/sec"
)

func signed(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

/*
TestTokenExpiry reads the exp claim without knowing the signing key.
*/
func TestTokenExpiry(t *testing.T) {
	expiry := time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC)
	token := signed(t, jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(expiry),
	})

	got, err := sec.TokenExpiry(token)
	require.NoError(t, err)
	assert.True(t, expiry.Equal(got))
}

/*
TestTokenExpiry_NoExpiry returns the zero time for tokens without exp.
*/
func TestTokenExpiry_NoExpiry(t *testing.T) {
	got, err := sec.TokenExpiry(signed(t, jwt.RegisteredClaims{Subject: "admin"}))
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

/*
TestParseAccessToken_Malformed rejects strings that are not a JWT.
*/
func TestParseAccessToken_Malformed(t *testing.T) {
	for _, input := range []string{"", "   ", "not-a-token", "a.b"} {
		_, err := sec.ParseAccessToken(input)
		assert.ErrorIs(t, err, sec.ErrMalformedToken, input)
	}
}
