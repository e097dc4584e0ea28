// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock supplies an injectable time source.
//
// Code that waits or timestamps takes a Clock instead of calling
// time.Now or time.After itself. Real() is that interface over the
// standard time package; Fake() is a clock tests move by hand, which
// turns every timing-dependent test deterministic.
//
// A struct that needs time carries a Clock field:
//
//	type Client struct {
//	    clock clock.Clock
//	    // ...
//	}
//
// wired with clock.Real() in production and with a FakeClock in
// tests:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	client := &Client{clock: fake}
//	// ... start the code under test in a goroutine ...
//	fake.WaitForTimers(1)
//	fake.Advance(5 * time.Second)
//
// The WaitForTimers call is the synchronization point: it blocks
// until the goroutine's After call has registered, so the following
// Advance is guaranteed to fire it. Tests never sleep to let timers
// settle.
package clock
