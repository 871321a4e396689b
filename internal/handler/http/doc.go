// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the JSON API consumed by the LMS front-end.
//
// It exposes route wiring, request handlers and middleware. Session
// cookies, request tracing, access logging, metrics, CORS and response
// compression are handled here before requests reach the service layer.
// Service errors are translated to status codes in errors_mapper.go only.
package http
