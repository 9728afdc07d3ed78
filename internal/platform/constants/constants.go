// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between the web front, the terminal browser and the catalog client.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Admin Sessions: Cookie configuration and Redis key prefixes.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "bgpiesa"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Uploads pass through the web front, hence the generous value.
	DefaultReadTimeout = 60 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 60 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 45 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Upload Limits

const (
	// MaxUploadBytes bounds a single multipart upload relayed to the backend.
	MaxUploadBytes = 50 << 20
)

// # Admin Sessions

const (
	// SessionCookieName is the cookie holding the opaque admin session id.
	SessionCookieName = "bgpiesa_admin"

	// SessionCookiePath scopes the cookie to the API.
	SessionCookiePath = "/api/v1"

	// RedisPrefixAdminSession namespaces admin sessions in Redis.
	RedisPrefixAdminSession = "admin:session:"
)

// # HTTP Headers

const (
	HeaderXRequestID     = "X-Request-ID"
	HeaderXRealIP        = "X-Real-IP"
	HeaderXForwardedFor  = "X-Forwarded-For"
	HeaderOrigin         = "Origin"
	HeaderAuthorization  = "Authorization"
	HeaderAcceptLanguage = "Accept-Language"
	HeaderContentType    = "Content-Type"
)

// # Query Parameters

const (
	// QueryLanguage selects the display language, overriding Accept-Language.
	QueryLanguage = "lang"
)

// # JSON Field Identifiers

const (
	FieldError   = "error"
	FieldCode    = "code"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)
