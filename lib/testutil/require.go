// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"time"
)

// failer is the slice of testing.TB these helpers need. Taking the
// interface instead of *testing.T keeps the helpers testable with a
// recording fake.
type failer interface {
	Helper()
	Fatalf(format string, args ...any)
}

// RequireReceive returns the next value from ch, failing the test if
// none arrives within timeout. The timeout uses real time on purpose:
// it is the stop that keeps a broken test from hanging forever, even
// when the code under test runs on a fake clock.
//
//	event := testutil.RequireReceive(t, watcher.Events(), 2*time.Second, "external write should reload")
func RequireReceive[T any](t failer, ch <-chan T, timeout time.Duration, msgAndArgs ...any) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		if !ok {
			t.Fatalf("channel closed without sending a value: %s", formatMessage(msgAndArgs))
		}
		return v
	case <-time.After(timeout):
		t.Fatalf("timed out after %v: %s", timeout, formatMessage(msgAndArgs))
	}
	panic("unreachable")
}

// RequireNoReceive fails the test if ch delivers anything inside the
// window. This is the assertion for debounce and suppression paths.
// Pick a window long enough that a spurious send would land within
// it; below about 100ms the check flakes under load.
//
//	testutil.RequireNoReceive(t, watcher.Events(), 300*time.Millisecond, "own write must not trigger reload")
func RequireNoReceive[T any](t failer, ch <-chan T, window time.Duration, msgAndArgs ...any) {
	t.Helper()
	select {
	case v := <-ch:
		t.Fatalf("unexpected value %v: %s", v, formatMessage(msgAndArgs))
	case <-time.After(window):
	}
}

// formatMessage renders the trailing msgAndArgs of a Require call: a
// bare string, a format string with arguments, or anything else via
// %v.
func formatMessage(msgAndArgs []any) string {
	switch len(msgAndArgs) {
	case 0:
		return "(no message)"
	case 1:
		if s, ok := msgAndArgs[0].(string); ok {
			return s
		}
		return fmt.Sprint(msgAndArgs[0])
	}
	if format, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return fmt.Sprintf("%v", msgAndArgs)
}
