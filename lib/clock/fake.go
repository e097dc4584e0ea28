// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"slices"
	"sync"
	"time"
)

// Fake returns a FakeClock pinned to initial. The clock never moves
// on its own; tests advance it explicitly, and channels handed out by
// After fire as their deadlines fall inside the advanced window.
//
// A FakeClock may be shared freely across goroutines.
func Fake(initial time.Time) *FakeClock {
	fake := &FakeClock{current: initial}
	fake.timerAdded = sync.NewCond(&fake.mu)
	return fake
}

// FakeClock is the deterministic Clock used in tests. Now reports a
// fixed instant until Advance moves it.
type FakeClock struct {
	mu         sync.Mutex
	current    time.Time
	pending    []*pendingTimer
	timerAdded *sync.Cond
}

// pendingTimer is one outstanding After channel and its due time.
type pendingTimer struct {
	due time.Time
	ch  chan time.Time
}

// Now reports the fake instant.
func (fake *FakeClock) Now() time.Time {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.current
}

// After registers a timer due after d and returns its channel. The
// channel is buffered, so the fire is kept even when nobody is
// receiving at that moment. A nonpositive d delivers immediately and
// registers nothing.
func (fake *FakeClock) After(d time.Duration) <-chan time.Time {
	fake.mu.Lock()
	defer fake.mu.Unlock()

	ch := make(chan time.Time, 1)
	if d <= 0 {
		ch <- fake.current
		return ch
	}

	fake.pending = append(fake.pending, &pendingTimer{
		due: fake.current.Add(d),
		ch:  ch,
	})
	fake.timerAdded.Broadcast()
	return ch
}

// Advance moves the clock forward by d, then fires every pending
// timer whose due time the move reached, earliest first.
func (fake *FakeClock) Advance(d time.Duration) {
	fake.mu.Lock()
	fake.current = fake.current.Add(d)
	now := fake.current

	var expired, live []*pendingTimer
	for _, timer := range fake.pending {
		if timer.due.After(now) {
			live = append(live, timer)
		} else {
			expired = append(expired, timer)
		}
	}
	fake.pending = live
	fake.mu.Unlock()

	slices.SortFunc(expired, func(a, b *pendingTimer) int {
		return a.due.Compare(b.due)
	})
	for _, timer := range expired {
		timer.ch <- now
	}
}

// WaitForTimers blocks until n timers are registered and unfired. A
// test starts its goroutine, waits here for that goroutine's After
// call to land, and only then advances:
//
//	go func() { <-fake.After(5 * time.Second) }()
//	fake.WaitForTimers(1)
//	fake.Advance(5 * time.Second)
//
// Without the wait, Advance can run before After registers and the
// timer never fires.
func (fake *FakeClock) WaitForTimers(n int) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	for len(fake.pending) < n {
		fake.timerAdded.Wait()
	}
}

// PendingCount reports how many timers are registered and unfired.
func (fake *FakeClock) PendingCount() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return len(fake.pending)
}
