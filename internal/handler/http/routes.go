// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withMetrics)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Encoding", traceIDHeader},
		ExposedHeaders:   []string{traceIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}
	router.Use(withGZip)

	// service routes
	router.Get("/healthz", h.healthz)
	router.Get("/api/version", h.getServerVersion)
	if h.metrics != nil {
		router.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/register", h.register)
		r.Post("/api/login", h.login)
		r.Get("/api/logout", h.logout)
		r.Post("/api/logout", h.logout)
		r.Post("/api/forgot-password", h.forgotPassword)
		r.Post("/api/reset-password", h.resetPassword)
	})

	// routes with session
	router.Group(func(r chi.Router) {
		r.Use(h.requireSession)

		r.Get("/api/user", h.currentUser)
		r.Put("/api/user/profile", h.updateProfile)

		// admin back-office
		r.Group(func(r chi.Router) {
			r.Use(h.requireAdminRole)

			r.Get("/api/admin/users", h.listUsers)
			r.Post("/api/admin/users", h.createUser)
			r.Patch("/api/admin/users/{id}/role", h.setUserRole)
			r.Patch("/api/admin/users/{id}/status", h.setUserStatus)
			r.Delete("/api/admin/users/{id}", h.deleteUser)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
