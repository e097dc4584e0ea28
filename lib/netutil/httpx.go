// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil holds the HTTP body-reading helper shared by API
// clients.
//
// ReadResponse caps how much of a response body gets buffered, so a
// broken or hostile server cannot balloon the process. It suits JSON
// API payloads; anything meant to be streamed belongs on io.Copy.
package netutil

import "io"

// MaxResponseSize caps buffered response bodies at 256 MB. Real API
// payloads sit far below this; the cap only matters when a server
// misbehaves.
const MaxResponseSize int64 = 256 << 20

// ReadResponse buffers body up to MaxResponseSize bytes. API clients
// call this wherever io.ReadAll would otherwise appear.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}
