// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: Session cookie configuration and throttle policy.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "pressroom-admin"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Session Cookie

const (
	// SessionCookieName is the name of the encrypted session cookie.
	// Kept identical to the legacy deployment so existing browsers keep working.
	SessionCookieName = "nextjs-cms"

	// SessionCookiePath scopes the cookie to the admin surface.
	SessionCookiePath = "/admin"

	// SessionTTL is the lifetime of an issued session cookie.
	SessionTTL = 7 * 24 * time.Hour
)

// # Admin Routes

const (
	// AdminBasePath is the root of the gated admin surface.
	AdminBasePath = "/admin"

	// AdminSigninPath is where logged-out requests are redirected.
	AdminSigninPath = "/admin/signin"

	// AdminSignupPath hosts the first-user bootstrap form.
	AdminSignupPath = "/admin/signup"

	// AdminDashboardPath is the canonical redirect target for logged-in users.
	AdminDashboardPath = "/admin/dashboard"
)

// # Sign-in Throttling

const (
	// SigninMaxFailures is the number of failed attempts before lockout.
	SigninMaxFailures = 10

	// SigninFailureTTL is how long a failure counter survives without activity.
	SigninFailureTTL = 15 * time.Minute
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldStatus  = "status"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixSigninFail = "auth:signin_fail:"
)
