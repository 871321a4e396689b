// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-ministry-auth/internal/logger"
	"github.com/MKhiriev/go-ministry-auth/internal/service"
	"github.com/MKhiriev/go-ministry-auth/internal/utils"
)

// requireSession admits the request only if its session cookie resolves
// to an active user. The resolved [models.Principal] is stored in the
// request context under [utils.PrincipalCtxKey].
//
// A missing, tampered, unknown or expired cookie yields 401 and next is
// not called.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		sessionID, ok := h.cookies.Read(r)
		if !ok {
			log.Debug().Msg("request without a valid session cookie")
			writeServiceError(w, r, service.ErrUnauthenticated)
			return
		}

		principal, err := h.services.AuthService.Authenticate(r.Context(), sessionID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		ctx := utils.WithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdminRole must be mounted after requireSession. It re-fetches the
// user so a role change applies on the very next request, and answers 403
// unless the user is an admin.
func (h *Handler) requireAdminRole(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		principal, ok := utils.PrincipalFromContext(r.Context())
		if !ok {
			writeServiceError(w, r, service.ErrUnauthenticated)
			return
		}

		user, err := h.services.AuthService.CurrentUser(r.Context(), principal.UserID())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		if !user.IsAdmin() {
			log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("admin route denied")
			writeServiceError(w, r, service.ErrForbidden)
			return
		}

		principal.User = user
		next.ServeHTTP(w, r.WithContext(utils.WithPrincipal(r.Context(), principal)))
	})
}
