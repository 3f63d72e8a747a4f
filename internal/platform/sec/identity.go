// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// Identity is the resolved principal carried in the request context.
//
// # Why a dedicated struct?
//
// Middleware resolves the session cookie to a live account once per request
// and stores only the fields the authorization layer needs — never the
// password hash. Downstream handlers read the Identity instead of re-querying.
type Identity struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
