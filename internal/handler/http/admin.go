// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-ministry-auth/internal/service"
	"github.com/MKhiriev/go-ministry-auth/internal/utils"
	"github.com/MKhiriev/go-ministry-auth/models"
)

const userIDParam = "id"

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	filter, err := parseUserFilter(r.URL.Query())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	users, err := h.services.AdminService.ListUsers(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := models.UserListResponse{
		Users:  make([]models.PublicUser, 0, len(users)),
		Length: len(users),
	}
	for _, u := range users {
		resp.Users = append(resp.Users, u.Public())
	}
	utils.WriteJSON(w, resp, http.StatusOK)
}

// parseUserFilter reads role, active, limit and offset from the query.
func parseUserFilter(q url.Values) (models.UserFilter, error) {
	var filter models.UserFilter

	if v := q.Get("role"); v != "" {
		role := models.Role(v)
		filter.Role = &role
	}
	if v := q.Get("active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			return filter, &service.ValidationError{Field: "active", Message: "active must be true or false"}
		}
		filter.IsActive = &active
	}

	var err error
	if filter.Limit, err = parseUint(q, "limit"); err != nil {
		return filter, err
	}
	if filter.Offset, err = parseUint(q, "offset"); err != nil {
		return filter, err
	}
	return filter, nil
}

func parseUint(q url.Values, key string) (uint64, error) {
	v := q.Get(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, &service.ValidationError{Field: key, Message: key + " must be a non-negative integer"}
	}
	return n, nil
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req models.AdminCreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.services.AdminService.CreateUser(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, user.Public(), http.StatusCreated)
}

func (h *Handler) setUserRole(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.PrincipalFromContext(r.Context())
	if !ok {
		writeServiceError(w, r, errNoPrincipal)
		return
	}

	var req models.SetRoleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.services.AdminService.SetRole(r.Context(), principal.UserID(), chi.URLParam(r, userIDParam), req.Role)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, user.Public(), http.StatusOK)
}

func (h *Handler) setUserStatus(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.PrincipalFromContext(r.Context())
	if !ok {
		writeServiceError(w, r, errNoPrincipal)
		return
	}

	var req models.SetStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.IsActive == nil {
		writeServiceError(w, r, &service.ValidationError{Field: "isActive", Message: "isActive is required"})
		return
	}

	user, err := h.services.AdminService.SetActive(r.Context(), principal.UserID(), chi.URLParam(r, userIDParam), *req.IsActive)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, user.Public(), http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.PrincipalFromContext(r.Context())
	if !ok {
		writeServiceError(w, r, errNoPrincipal)
		return
	}

	if err := h.services.AdminService.DeleteUser(r.Context(), principal.UserID(), chi.URLParam(r, userIDParam)); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
