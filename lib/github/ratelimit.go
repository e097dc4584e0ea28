// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/tissueworks/tissuebox/lib/clock"
)

// rateGate tracks the quota GitHub advertises in X-RateLimit-*
// response headers and holds new requests while the quota is spent.
// Every response updates the gate; before a request goes out, the
// gate sleeps until the reset timestamp if the last known remaining
// count was zero.
type rateGate struct {
	mu      sync.Mutex
	left    int
	resetAt time.Time
	seen    bool // set once the first response with quota headers arrives
	clock   clock.Clock
}

func newRateGate(clk clock.Clock) *rateGate {
	return &rateGate{clock: clk}
}

// observe ingests the rate limit headers of a response. A response
// missing either header, or carrying unparseable values, leaves the
// state untouched.
func (gate *rateGate) observe(header http.Header) {
	remaining := header.Get("X-RateLimit-Remaining")
	reset := header.Get("X-RateLimit-Reset")
	if remaining == "" || reset == "" {
		return
	}

	left, err := strconv.Atoi(remaining)
	if err != nil {
		return
	}
	resetUnix, err := strconv.ParseInt(reset, 10, 64)
	if err != nil {
		return
	}

	gate.mu.Lock()
	defer gate.mu.Unlock()
	gate.left = left
	gate.resetAt = time.Unix(resetUnix, 0)
	gate.seen = true
}

// block sleeps until the quota window resets when the last observed
// remaining count was zero. It returns immediately when quota
// remains, when nothing has been observed yet, or when the reset
// time already passed. The only possible error is a cancelled
// context.
func (gate *rateGate) block(ctx context.Context) error {
	gate.mu.Lock()
	if !gate.seen || gate.left > 0 {
		gate.mu.Unlock()
		return nil
	}
	pause := gate.resetAt.Sub(gate.clock.Now())
	gate.mu.Unlock()

	if pause <= 0 {
		return nil
	}
	select {
	case <-gate.clock.After(pause):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// backoff reads how long a rate limited response asks us to wait.
// Retry-After (secondary limits, in seconds) wins over
// X-RateLimit-Reset (primary limits, a Unix timestamp). Zero means
// the response carried no usable hint.
func (gate *rateGate) backoff(header http.Header) time.Duration {
	if value := header.Get("Retry-After"); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	if value := header.Get("X-RateLimit-Reset"); value != "" {
		if resetUnix, err := strconv.ParseInt(value, 10, 64); err == nil {
			if wait := time.Unix(resetUnix, 0).Sub(gate.clock.Now()); wait > 0 {
				return wait
			}
		}
	}
	return 0
}
