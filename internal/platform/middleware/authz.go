// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"

	"github.com/taibuivan/pressroom/internal/auth"
	"github.com/taibuivan/pressroom/internal/platform/apperr"
	"github.com/taibuivan/pressroom/internal/platform/ctxutil"
	"github.com/taibuivan/pressroom/internal/platform/respond"
	"github.com/taibuivan/pressroom/internal/platform/sec"
)

// Authenticate resolves the session cookie to an account and injects the
// [*sec.Identity] into the request context.
//
// # Flow
//  1. Read and decode the session cookie.
//  2. If empty, the request proceeds as anonymous.
//  3. Otherwise resolve the account; a dangling id also degrades to anonymous.
//  4. Inject the identity for downstream role checks and logging.
func Authenticate(sessions *auth.SessionManager, service *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Session Extraction ─────────────────────────────────────────
			session := sessions.Read(request)
			if session.IsEmpty() {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Account Resolution ─────────────────────────────────────────
			user, err := service.CurrentUser(request.Context(), session)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// Dangling session id: the account is gone, degrade to anonymous.
			if user == nil {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithIdentity(request.Context(), auth.Identity(user))
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		identity := ctxutil.GetIdentity(request.Context())
		if identity == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests whose principal does not hold at least the
// required role.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It automatically
// implies [RequireAuth] so you don't need to mount both.
//
// # Flow
//  1. Check if a [*sec.Identity] exists in context (implies AuthN).
//  2. Compare role ranks using [auth.Role.AtLeast].
//  3. If insufficient, abort with HTTP 403 Forbidden.
func RequireRole(role auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity := ctxutil.GetIdentity(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if identity == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			userRole := auth.Role(identity.Role)
			if !userRole.AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// GetUser retrieves the [*sec.Identity] from the request context.
//
// # Returns
//   - A pointer to [sec.Identity] if the request is authenticated.
//   - nil if the request is anonymous.
func GetUser(request *http.Request) *sec.Identity {
	return ctxutil.GetIdentity(request.Context())
}
