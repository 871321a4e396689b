// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-ministry-auth/internal/logger"
	"github.com/MKhiriev/go-ministry-auth/internal/utils"
	"github.com/MKhiriev/go-ministry-auth/models"
)

// Auth event names reported to metrics.
const (
	eventRegister      = "register"
	eventLogin         = "login"
	eventLogout        = "logout"
	eventResetRequest  = "reset_request"
	eventResetConfirm  = "reset_confirm"
	eventProfileUpdate = "profile_update"
)

const (
	msgLoggedOut      = "Logged out successfully"
	msgResetRequested = "If the email exists, a reset link has been sent"
	msgPasswordReset  = "Password has been reset successfully"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, sess, err := h.services.AuthService.Register(ctx, req)
	h.metrics.AuthEvent(eventRegister, err)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err = h.cookies.Write(w, sess.ID); err != nil {
		log.Err(err).Msg("writing session cookie failed")
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, user.Public(), http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, sess, err := h.services.AuthService.Login(ctx, req)
	h.metrics.AuthEvent(eventLogin, err)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err = h.cookies.Write(w, sess.ID); err != nil {
		log.Err(err).Msg("writing session cookie failed")
		writeServiceError(w, r, err)
		return
	}

	log.Debug().Str("user_id", user.ID).Msg("user successfully logged in")
	utils.WriteJSON(w, user.Public(), http.StatusOK)
}

// logout destroys the session named by the cookie, if any, and always
// expires the cookie.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if sessionID, ok := h.cookies.Read(r); ok {
		err := h.services.AuthService.Logout(r.Context(), sessionID)
		h.metrics.AuthEvent(eventLogout, err)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
	}

	h.cookies.Expire(w)
	utils.WriteJSON(w, models.MessageResponse{Message: msgLoggedOut}, http.StatusOK)
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.PrincipalFromContext(r.Context())
	if !ok {
		writeServiceError(w, r, errNoPrincipal)
		return
	}

	user, err := h.services.AuthService.CurrentUser(r.Context(), principal.UserID())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, user.Public(), http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.PrincipalFromContext(r.Context())
	if !ok {
		writeServiceError(w, r, errNoPrincipal)
		return
	}

	var req models.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.services.AuthService.UpdateProfile(r.Context(), principal.UserID(), req)
	h.metrics.AuthEvent(eventProfileUpdate, err)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, user.Public(), http.StatusOK)
}

// forgotPassword answers with the same message whether or not the e-mail
// belongs to an account.
func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.services.PasswordResetService.RequestReset(r.Context(), req.Email)
	h.metrics.AuthEvent(eventResetRequest, err)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: msgResetRequested}, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.services.PasswordResetService.ConfirmReset(r.Context(), req.Token, req.NewPassword)
	h.metrics.AuthEvent(eventResetConfirm, err)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: msgPasswordReset}, http.StatusOK)
}
