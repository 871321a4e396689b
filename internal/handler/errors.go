// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoHTTPAddress is returned by NewHandlers when the server configuration
// has no HTTP address. The server has no other transport, so this is fatal
// at startup.
var errNoHTTPAddress = errors.New("http address is not specified")
