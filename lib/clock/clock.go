// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock is the time source injected into anything that waits or
// timestamps. Commands run on Real(); tests substitute Fake() and
// drive it by hand, so nothing in this module reads the time package
// directly when it could take a Clock instead.
type Clock interface {
	// Now reports the current time.
	Now() time.Time

	// After returns a channel that delivers the clock's time once d
	// has elapsed, like time.After. A nonpositive d delivers
	// immediately.
	After(d time.Duration) <-chan time.Time
}
