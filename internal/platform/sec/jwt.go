// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec reads the admin access tokens issued by the catalog backend.
//
// # Architecture
//
// The backend signs its tokens with a key this process never sees, so tokens
// are parsed without signature verification. The result is only used to know
// when a stored credential stops being worth sending; the backend remains the
// sole authority on whether a token is accepted.
package sec

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken is returned for strings that are not a JWT.
var ErrMalformedToken = errors.New("sec: malformed access token")

// AccessClaims represents the payload the backend embeds in an admin token.
type AccessClaims struct {
	jwt.RegisteredClaims
}

// ParseAccessToken decodes the claims of tokenString without verifying its
// signature.
func ParseAccessToken(tokenString string) (*AccessClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrMalformedToken
	}

	claims := &AccessClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	return claims, nil
}

// TokenExpiry returns the `exp` claim of tokenString. The zero time means the
// token carries no expiry.
func TokenExpiry(tokenString string) (time.Time, error) {
	claims, err := ParseAccessToken(tokenString)
	if err != nil {
		return time.Time{}, err
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, nil
	}

	return claims.ExpiresAt.Time, nil
}
