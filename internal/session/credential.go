// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session holds the admin bearer credential and its storage.

A [Credential] is an explicit value handed to whatever issues admin requests;
nothing in this repository reads it from ambient global state.

Storage:

  - RedisStore: web front sessions, keyed by an opaque session id kept in a cookie.
  - FileStore: the terminal browser, one credential persisted across restarts.
*/
package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/taibuivan/bgpiesa/internal/platform/sec"
)

// ErrNotFound is returned when no credential is stored for a key.
var ErrNotFound = errors.New("session: credential not found")

// BearerScheme is the Authorization scheme used for admin requests.
const BearerScheme = "Bearer"

// Credential is the admin access token issued by the backend login endpoint.
type Credential struct {
	Token     string    `json:"access_token" yaml:"access_token"`
	TokenType string    `json:"token_type" yaml:"token_type"`
	ExpiresAt time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

// NewCredential builds a [Credential], reading the expiry from the token. A
// token that is not a JWT is accepted with no expiry.
func NewCredential(token, tokenType string) *Credential {
	credential := &Credential{
		Token:     strings.TrimSpace(token),
		TokenType: tokenType,
	}

	if expiry, err := sec.TokenExpiry(credential.Token); err == nil {
		credential.ExpiresAt = expiry
	}

	return credential
}

// Valid reports whether the credential can be attached to a request at now.
func (c *Credential) Valid(now time.Time) bool {
	if c == nil || c.Token == "" {
		return false
	}
	return c.ExpiresAt.IsZero() || now.Before(c.ExpiresAt)
}

// Header returns the Authorization header value.
func (c *Credential) Header() string {
	return BearerScheme + " " + c.Token
}

// TTL returns how long the credential remains valid after now, capped at
// limit. Credentials without expiry get limit.
func (c *Credential) TTL(now time.Time, limit time.Duration) time.Duration {
	if c.ExpiresAt.IsZero() {
		return limit
	}
	remaining := c.ExpiresAt.Sub(now)
	if remaining < limit {
		return remaining
	}
	return limit
}

// # Storage Contract

// Store keeps credentials keyed by session id.
type Store interface {

	/*
		Save stores credential under id for at most ttl.

		Parameters:
		  - ctx: context.Context
		  - id: string
		  - credential: *Credential
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Save(ctx context.Context, id string, credential *Credential, ttl time.Duration) error

	/*
		Load returns the credential stored under id.

		Returns:
		  - *Credential: Stored credential
		  - error: ErrNotFound when absent or expired
	*/
	Load(ctx context.Context, id string) (*Credential, error)

	/*
		Delete removes the credential stored under id.
	*/
	Delete(ctx context.Context, id string) error
}
