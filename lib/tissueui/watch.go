// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package tissueui

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/zeebo/blake3"
	"golang.org/x/sys/unix"
)

// ReloadEvent carries the re-read contents of the tissuebox file
// after an external change.
type ReloadEvent struct {
	Data []byte
}

// Watcher delivers a ReloadEvent each time another process rewrites
// the watched tissuebox file. The model announces its own saves via
// NoteWrite before writing; events whose content hash matches the
// announced write are suppressed, so the UI never reloads what it
// just wrote. The same check also swallows external rewrites that
// leave the bytes unchanged (touch, no-op saves from an editor).
type Watcher struct {
	events    chan ReloadEvent
	stop      chan struct{}
	closeOnce sync.Once

	// known is the hash of the file content the UI already reflects.
	// Guarded by mu: NoteWrite runs on the UI goroutine, the watch
	// loop reads it on its own.
	mu    sync.Mutex
	known [32]byte
}

// WatchFile starts an inotify watcher on the tissuebox file. The
// watcher monitors the parent directory for IN_CLOSE_WRITE and
// IN_MOVED_TO events on the target filename, handling both in-place
// writes and atomic renames: tools that write a temp file and rename
// it create a new inode, so a file-level watch on the old inode would
// miss the replacement.
//
// The current file content is hashed at start so the initial state
// never bounces back as a reload.
func WatchFile(path string) (*Watcher, error) {
	absolutePath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	initial, err := os.ReadFile(absolutePath)
	if err != nil {
		return nil, err
	}

	directory := filepath.Dir(absolutePath)
	filename := filepath.Base(absolutePath)

	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return nil, err
	}

	_, err = unix.InotifyAddWatch(fd, directory, unix.IN_CLOSE_WRITE|unix.IN_MOVED_TO)
	if err != nil {
		unix.Close(fd)
		return nil, err
	}

	watcher := &Watcher{
		events: make(chan ReloadEvent, 1),
		stop:   make(chan struct{}),
		known:  blake3.Sum256(initial),
	}
	go watcher.loop(fd, absolutePath, filename)

	return watcher, nil
}

// Events returns the reload event channel. It is closed when the
// watcher stops.
func (w *Watcher) Events() <-chan ReloadEvent {
	return w.events
}

// NoteWrite records the hash of content about to be saved by the UI
// itself. Call it before the write so the resulting inotify event
// cannot race ahead of the announcement.
func (w *Watcher) NoteWrite(sum [32]byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.known = sum
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() {
	w.closeOnce.Do(func() { close(w.stop) })
}

// loop polls the inotify fd for changes to the target file, re-reads
// the content, and delivers it unless the hash matches the last known
// state.
//
// Uses poll(2) with 100ms timeout for responsive stop-channel
// checking. After detecting a change, waits 50ms and drains any
// queued events to coalesce rapid writes (an editor saving through a
// backup file fires several events per save).
func (w *Watcher) loop(fd int, path string, filename string) {
	defer unix.Close(fd)
	defer close(w.events)

	buffer := make([]byte, 4096)

	for {
		select {
		case <-w.stop:
			return
		default:
		}

		pollDescriptors := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		count, err := unix.Poll(pollDescriptors, 100)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			// Fatal poll error; the watcher exits. The viewer degrades to
			// static mode; edits from other processes stop appearing.
			return
		}
		if count == 0 {
			continue
		}

		bytesRead, err := unix.Read(fd, buffer)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}

		if !inotifyMatchesFile(buffer[:bytesRead], filename) {
			continue
		}

		// Debounce: wait 50ms and drain any additional events that
		// arrived during that window.
		time.Sleep(50 * time.Millisecond)
		drainInotifyEvents(fd, buffer)

		data, err := os.ReadFile(path)
		if err != nil {
			// File might be mid-write or briefly absent during an
			// atomic replace. Skip this update; the next inotify
			// event (from the completed write) will succeed.
			continue
		}

		sum := blake3.Sum256(data)
		w.mu.Lock()
		skip := sum == w.known
		if !skip {
			w.known = sum
		}
		w.mu.Unlock()
		if skip {
			continue
		}

		w.deliver(ReloadEvent{Data: data})
	}
}

// deliver queues an event, replacing any undelivered one. Only the
// latest content matters; the UI re-parses the whole file anyway.
func (w *Watcher) deliver(event ReloadEvent) {
	select {
	case w.events <- event:
		return
	default:
	}
	select {
	case <-w.events:
	default:
	}
	w.events <- event
}

// inotifyMatchesFile checks whether any inotify event in the buffer
// matches the target filename. Layout from inotify(7):
//
//	struct inotify_event {
//	    int32_t  wd;     // offset 0
//	    uint32_t mask;   // offset 4
//	    uint32_t cookie; // offset 8
//	    uint32_t len;    // offset 12
//	    char     name[]; // offset 16, null-padded to alignment
//	};
func inotifyMatchesFile(buffer []byte, targetFilename string) bool {
	offset := 0
	for offset+unix.SizeofInotifyEvent <= len(buffer) {
		nameLength := int(binary.NativeEndian.Uint32(buffer[offset+12 : offset+16]))
		eventSize := unix.SizeofInotifyEvent + nameLength
		if offset+eventSize > len(buffer) {
			break
		}

		if nameLength > 0 {
			nameBytes := buffer[offset+unix.SizeofInotifyEvent : offset+eventSize]
			name := nullTerminatedString(nameBytes)
			if name == targetFilename {
				return true
			}
		}

		offset += eventSize
	}
	return false
}

// nullTerminatedString extracts a string from a null-padded byte
// slice, stopping at the first null byte.
func nullTerminatedString(data []byte) string {
	for i, b := range data {
		if b == 0 {
			return string(data[:i])
		}
	}
	return string(data)
}

// drainInotifyEvents reads and discards any pending inotify events.
// Called after the debounce sleep to coalesce rapid writes into a
// single re-read.
func drainInotifyEvents(fd int, buffer []byte) {
	for {
		_, err := unix.Read(fd, buffer)
		if err != nil {
			// EAGAIN means no more events; any other error, stop.
			return
		}
	}
}
