// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

// Package github provides a typed client for the slice of the GitHub
// REST API that promotion uses: creating issues and managing labels.
//
// The client authenticates with a personal access token read from the
// environment. It handles rate limiting (X-RateLimit-* headers with
// automatic backoff), pagination (RFC 5988 Link headers), conditional
// requests (ETags), and structured error mapping.
//
// All requests are made over HTTPS. The client refuses non-HTTPS base
// URLs. GitHub Enterprise works by pointing BaseURL at the instance's
// /api/v3 root.
package github
