// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"net/http"

	"github.com/taibuivan/pressroom/internal/page"
	requestutil "github.com/taibuivan/pressroom/internal/platform/request"
	"github.com/taibuivan/pressroom/internal/platform/respond"
	"github.com/taibuivan/pressroom/internal/user"
)

// NewDashboardHandler creates the GET /admin/dashboard summary handler.
//
// It answers with the signed-in account and the active page/user counts the
// admin SPA shows on its landing screen.
func NewDashboardHandler(pageService *page.Service, userService *user.Service) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		identity, err := requestutil.RequiredIdentity(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		pageCount, err := pageService.Count(request.Context())
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		userCount, err := userService.CountActive(request.Context())
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.OK(writer, map[string]any{
			"user": identity,
			"counts": map[string]int{
				"pages": pageCount,
				"users": userCount,
			},
		})
	}
}
