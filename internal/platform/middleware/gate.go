// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/taibuivan/pressroom/internal/auth"
	"github.com/taibuivan/pressroom/internal/platform/constants"
)

// routeClass partitions the /admin surface for the edge gate.
type routeClass int

const (
	// classPublicOnly covers the sign-in and sign-up entry points.
	classPublicOnly routeClass = iota
	// classRoot is the bare /admin path.
	classRoot
	// classProtected is every other /admin path.
	classProtected
)

// classify maps a request path to its [routeClass].
//
// The classes are disjoint and total over the admin surface: every path gets
// exactly one class, so the gate's decision table has no undefined cell.
func classify(path string) routeClass {
	trimmed := strings.TrimRight(path, "/")

	switch trimmed {
	case constants.AdminSigninPath, constants.AdminSignupPath:
		return classPublicOnly
	case constants.AdminBasePath:
		return classRoot
	}
	return classProtected
}

// AdminGate runs before any admin handler and routes the request based on
// session state and route class.
//
// # Decision Table
//
//	loggedIn  + publicOnly/root → redirect to the dashboard
//	loggedIn  + protected       → allow
//	loggedOut + publicOnly      → allow
//	loggedOut + root/protected  → redirect to sign-in
//
// Logged-in state is derived purely from whether the cookie decodes to a
// non-empty payload — no database hit. A forged or corrupted cookie is
// indistinguishable from no cookie at all.
func AdminGate(sessions *auth.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. State Derivation ───────────────────────────────────────────
			loggedIn := !sessions.Read(request).IsEmpty()
			class := classify(request.URL.Path)

			// ── 2. Transition Table ───────────────────────────────────────────
			if loggedIn {
				if class == classPublicOnly || class == classRoot {
					http.Redirect(writer, request, constants.AdminDashboardPath, http.StatusSeeOther)
					return
				}
				// loggedIn + protected → allow
				next.ServeHTTP(writer, request)
				return
			}

			if class == classPublicOnly {
				// loggedOut + publicOnly → allow
				next.ServeHTTP(writer, request)
				return
			}

			// loggedOut + root/protected → redirect to sign-in
			http.Redirect(writer, request, constants.AdminSigninPath, http.StatusSeeOther)
		})
	}
}
