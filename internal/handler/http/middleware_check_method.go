// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-ministry-auth/internal/utils"
)

// CheckHTTPMethod returns the handler to register with
// [chi.Mux.MethodNotAllowed].
//
// Chi answers 405 when a path matches a route but the method does not.
// This handler answers 404 with the usual JSON error body instead, so an
// unsupported method looks exactly like an unknown route. Matching goes
// through [chi.Mux.Match], which expands parameterised segments such as
// /api/admin/users/{id}.
//
// If the method turns out to be routable after all, the request is handed
// back to the router.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if !router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			utils.WriteError(w, http.StatusText(http.StatusNotFound), "", http.StatusNotFound)
			return
		}

		router.ServeHTTP(w, r)
	}
}
