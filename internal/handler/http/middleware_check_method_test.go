// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ministry-auth/models"
)

// buildRouter creates a minimal chi.Mux with a set of routes for tests.
// It intentionally does not use Handler.Init() to avoid service setup.
func buildRouter() *chi.Mux {
	router := chi.NewRouter()

	router.Get("/api/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("bye"))
	})
	router.Post("/api/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Put("/api/user/profile", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Delete("/api/admin/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func TestCheckHTTPMethod_TableTest(t *testing.T) {
	router := buildRouter()

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{name: "GET /api/logout passes through", method: http.MethodGet, path: "/api/logout", expectedStatus: http.StatusOK},
		{name: "POST /api/logout passes through", method: http.MethodPost, path: "/api/logout", expectedStatus: http.StatusOK},
		{name: "PUT /api/user/profile passes through", method: http.MethodPut, path: "/api/user/profile", expectedStatus: http.StatusOK},
		{name: "DELETE with path parameter passes through", method: http.MethodDelete, path: "/api/admin/users/42", expectedStatus: http.StatusNoContent},

		{name: "DELETE /api/logout is 404", method: http.MethodDelete, path: "/api/logout", expectedStatus: http.StatusNotFound},
		{name: "GET /api/user/profile is 404", method: http.MethodGet, path: "/api/user/profile", expectedStatus: http.StatusNotFound},
		{name: "GET with path parameter is 404", method: http.MethodGet, path: "/api/admin/users/42", expectedStatus: http.StatusNotFound},
		{name: "OPTIONS is 404", method: http.MethodOptions, path: "/api/logout", expectedStatus: http.StatusNotFound},

		{name: "unknown route", method: http.MethodGet, path: "/api/nonexistent", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rr.Code)
		})
	}
}

func TestCheckHTTPMethod_PassThroughBody(t *testing.T) {
	router := buildRouter()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/logout", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "bye", rr.Body.String())
}

func TestCheckHTTPMethod_WritesJSONError(t *testing.T) {
	router := buildRouter()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPatch, "/api/logout", nil))

	require.Equal(t, http.StatusNotFound, rr.Code)
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Not Found", body.Error)
}

func TestCheckHTTPMethod_ConcurrentRequests(t *testing.T) {
	router := buildRouter()
	const n = 50
	done := make(chan int, n)

	for i := 0; i < n; i++ {
		go func(i int) {
			method := http.MethodGet
			if i%2 == 1 {
				method = http.MethodDelete
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(method, "/api/logout", nil))
			done <- rr.Code
		}(i)
	}

	for i := 0; i < n; i++ {
		code := <-done
		assert.True(t, code == http.StatusOK || code == http.StatusNotFound,
			"unexpected status code: %d", code)
	}
}
