// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-ministry-auth/internal/logger"
	"github.com/MKhiriev/go-ministry-auth/internal/service"
	"github.com/MKhiriev/go-ministry-auth/internal/utils"
)

// errorStatusMap is the single place where service errors become status
// codes. An error never matches two keys with different statuses.
var errorStatusMap = map[error]int{
	service.ErrValidation:            http.StatusBadRequest,
	service.ErrDuplicateIdentity:     http.StatusBadRequest,
	service.ErrWeakPassword:          http.StatusBadRequest,
	service.ErrWrongCurrentPassword:  http.StatusBadRequest,
	service.ErrInvalidOrExpiredToken: http.StatusBadRequest,
	service.ErrSelfModification:      http.StatusBadRequest,

	service.ErrInvalidCredentials: http.StatusUnauthorized,
	service.ErrUnauthenticated:    http.StatusUnauthorized,

	service.ErrAccountDeactivated: http.StatusForbidden,
	service.ErrForbidden:          http.StatusForbidden,

	service.ErrUserNotFound: http.StatusNotFound,
}

// publicMessages holds the client-facing text of sentinel errors. Typed
// errors (validation, duplicate identity) carry their own message.
var publicMessages = map[error]string{
	service.ErrInvalidCredentials:    "Invalid credentials",
	service.ErrUnauthenticated:       "Not authenticated",
	service.ErrAccountDeactivated:    "Account is deactivated",
	service.ErrForbidden:             "Admin access required",
	service.ErrInvalidOrExpiredToken: "Invalid or expired token",
	service.ErrSelfModification:      "You cannot change your own account",
	service.ErrUserNotFound:          "User not found",
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// errorBody returns the message and the optional field reported to the
// client for err.
func errorBody(err error, status int) (string, string) {
	if status == http.StatusInternalServerError {
		return http.StatusText(http.StatusInternalServerError), ""
	}

	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return ve.Message, ve.Field
	}
	var de *service.DuplicateIdentityError
	if errors.As(err, &de) {
		return de.Error(), de.Field
	}

	for target, msg := range publicMessages {
		if errors.Is(err, target) {
			return msg, ""
		}
	}
	return http.StatusText(status), ""
}

// writeServiceError logs err and writes the JSON error response for it.
// Details of unexpected errors stay in the log.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		log.Err(err).Msg("unexpected error occurred")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	msg, field := errorBody(err, status)
	utils.WriteError(w, msg, field, status)
}
