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

// Package loop implements the reactor scaffolding: a Channel binds a file
// descriptor to its owning EventLoop, the EventLoop multiplexes readiness
// through a poller.Poller and drains a cross-thread task queue, LoopThread
// runs one EventLoop per goroutine, and LoopThreadPool round-robins (or
// hashes) work across a fixed set of worker loops.
package loop

import (
	"time"

	libpol "github.com/nabbar/reactor/poller"
	loglog "github.com/nabbar/reactor/logger"
)

// FuncLog returns the Logger used for fatal-path reporting when the poller's
// blocking wait fails. Failures creating the poller or the wake-up
// descriptor are not logged: New returns them to its caller as errors. A nil
// FuncLog, or one that returns nil, silences logging without changing
// fatal-abort behavior.
type FuncLog func() loglog.Logger

// Channel binds one file descriptor to its owning EventLoop and dispatches
// readiness events to up to five user callbacks.
type Channel interface {
	libpol.Watcher

	// EnableRead / DisableRead toggle the readable bit of interest.
	EnableRead()
	DisableRead()

	// EnableWrite / DisableWrite toggle the writable bit of interest.
	EnableWrite()
	DisableWrite()

	// DisableAll clears all interest bits and removes the channel from its
	// owning loop's poller.
	DisableAll()

	// IsWriting reports whether the writable bit is currently set.
	IsWriting() bool

	// OnRead / OnWrite / OnClose / OnError / OnAny replace the
	// corresponding callback. Passing nil disables that callback.
	OnRead(fn func())
	OnWrite(fn func())
	OnClose(fn func())
	OnError(fn func())
	OnAny(fn func())

	// HandleEvent dispatches on the last-observed revent mask per the
	// read / (write xor error xor close) / any-event ordering.
	HandleEvent()

	// Remove unregisters the channel from its owning loop's poller and
	// forgets it.
	Remove()
}

// NewChannel binds fd to loop l with no interest and no callbacks set.
func NewChannel(l EventLoop, fd int) Channel {
	return newChannel(l, fd)
}

// EventLoop owns a poller, a wake-up descriptor, a mutex-guarded task
// queue and a terminal flag. It is pinned to exactly one goroutine for its
// entire lifetime; RunInLoop/QueueInLoop are the only safe ways for other
// goroutines to touch its state.
type EventLoop interface {
	// Start runs the poll/dispatch/drain cycle until Quit is observed. It
	// blocks the calling goroutine; callers typically invoke it via
	// LoopThread rather than directly.
	Start()

	// Quit sets the terminal flag and wakes the loop so its current or
	// next Poll call returns promptly.
	Quit()

	// RunInLoop invokes fn inline if called from the owning goroutine,
	// otherwise behaves like QueueInLoop.
	RunInLoop(fn func())

	// QueueInLoop enqueues fn under the task-queue mutex and wakes the
	// loop once.
	QueueInLoop(fn func())

	// UpdateEvents / RemoveEvents forward to the underlying poller.
	UpdateEvents(w libpol.Watcher) error
	RemoveEvents(w libpol.Watcher) error

	// AssertInLoop panics if called off the owning goroutine; it is the
	// debug-time equivalent of the abort contract.
	AssertInLoop()

	// InLoop reports whether the calling goroutine is the loop's owner.
	InLoop() bool

	// TimerAdd / TimerRefresh / TimerCancel forward to the loop's timer
	// wheel via RunInLoop.
	TimerAdd(id uint64, delay time.Duration, fn func()) error
	TimerRefresh(id uint64) error
	TimerCancel(id uint64)

	// ActiveTimers returns the timer wheel's current task count, safe to
	// call from any goroutine (it hops onto the loop goroutine the same
	// way TimerRefresh does when called off-loop).
	ActiveTimers() int

	// IsRunning / Uptime mirror the lifecycle surface used elsewhere in
	// this module so loops can be observed the same way as any other
	// managed component.
	IsRunning() bool
	Uptime() time.Duration
}

// New constructs an EventLoop backed by a Linux epoll poller. fn is the
// fatal-path logger factory; it may be nil.
func New(fn FuncLog) (EventLoop, error) {
	return newEventLoop(fn)
}

// LoopThread runs a single EventLoop on a dedicated goroutine, publishing
// the loop's address once Start has begun running.
type LoopThread interface {
	// Start launches the goroutine and blocks until the loop has
	// published itself or failed to start.
	Start() error

	// Loop blocks until the loop address is published or the thread has
	// stopped, returning nil in the latter case.
	Loop() EventLoop

	// Stop is idempotent: it waits for a pending Start to finish
	// publishing, quits the loop, and joins the goroutine.
	Stop()
}

// NewLoopThread constructs a LoopThread that has not yet been started.
func NewLoopThread(fn FuncLog) LoopThread {
	return newLoopThread(fn)
}

// LoopThreadPool owns a non-owning reference to the base loop and a fixed
// set of worker LoopThreads, round-robining (or hashing) work across them.
type LoopThreadPool interface {
	// SetThreadCount sets the worker count; must be called before Start.
	SetThreadCount(n int)

	// Start constructs and starts all workers, then runs init (if
	// non-nil) once per worker loop, in order.
	Start(init func(EventLoop)) error

	// Stop is idempotent and serialized: it stops every worker in turn.
	Stop()

	// NextLoop returns the next worker loop by round-robin; the base
	// loop if no workers were configured.
	NextLoop() EventLoop

	// LoopForHash returns loops[h % n], or the base loop if no workers
	// were configured, providing session stickiness.
	LoopForHash(h uint64) EventLoop
}

// NewLoopThreadPool constructs a pool driven by base, which is never
// started or stopped by the pool itself.
func NewLoopThreadPool(base EventLoop, fn FuncLog) LoopThreadPool {
	return newLoopThreadPool(base, fn)
}
