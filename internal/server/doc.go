// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the HTTP server together with the background workers.
//
// It owns the process lifecycle: startup, signal handling, and graceful
// shutdown of the listener followed by the workers.
package server
