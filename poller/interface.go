/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package poller wraps the Linux epoll readiness multiplexer behind a small
// interface so a single EventLoop can maintain the set of watched file
// descriptors and retrieve, per wait, the subset that became ready.
//
// A Poller is not safe for concurrent use; it is owned exclusively by the
// EventLoop that created it and is only ever driven from that loop's thread.
package poller

// Events is a bitmask of readiness conditions, expressed independently of
// any particular OS constant so that callers (Channel) never import
// golang.org/x/sys/unix directly.
type Events uint32

const EventNone Events = 0

const (
	EventReadable Events = 1 << iota
	EventWritable
	EventError
	EventHangup
	EventPriority
	EventPeerShutdown
)

// Watcher is anything a Poller can track readiness for: a file descriptor
// plus the last-observed readiness mask, set by the Poller on each
// successful Poll and read back by the owning Channel.
type Watcher interface {
	// FD returns the watched file descriptor.
	FD() int

	// Interest returns the events this watcher currently wants to be woken
	// for (read/write enablement as toggled by the owning Channel).
	Interest() Events

	// SetRevents stores the readiness mask observed by the last Poll call.
	SetRevents(ev Events)
}

// Poller maintains kernel-level readiness registrations for a set of
// Watchers and reports, per call to Poll, which of them became ready.
type Poller interface {
	// Add registers w for the events it currently reports via Interest.
	Add(w Watcher) error

	// Update re-applies w's current Interest to the kernel registration,
	// e.g. after a Channel toggles read/write enablement.
	Update(w Watcher) error

	// Remove unregisters w and forgets it.
	Remove(w Watcher) error

	// Poll blocks indefinitely until at least one watched descriptor is
	// ready or an interrupting signal occurs (treated as a zero-result,
	// no-op iteration); there is no timeout. Ready watchers are appended to
	// out, which Poll resets at the start of the call; it returns the
	// resulting slice.
	//
	// A non-nil, non-EINTR error is a fatal poller failure: callers must
	// treat it as unrecoverable.
	Poll(out []Watcher) ([]Watcher, error)

	// Close releases the underlying epoll file descriptor.
	Close() error
}

// New returns a Poller backed by Linux epoll.
func New() (Poller, error) {
	return newEpoll()
}
