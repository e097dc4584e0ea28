// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil holds the channel assertions shared by tests.
//
// [RequireReceive] and [RequireNoReceive] wrap the select-with-timeout
// shape so tests assert on channel traffic in one line instead of
// repeating the select. Their timeouts are the one sanctioned use of
// real wall-clock time in the suite; code under test takes a
// clock.Clock.
//
// Failures go through t.Fatalf, not returned errors: when a test
// cannot get the value it is waiting for, nothing after that point is
// worth running.
//
// The package depends on nothing else in this module.
package testutil
