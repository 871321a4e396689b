// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// errNoPrincipal is returned when a handler mounted behind requireSession
// finds no principal in the request context. It means the route was wired
// without the guard and is reported as an internal error.
var errNoPrincipal = errors.New("no principal in request context")
