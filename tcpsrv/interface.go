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

// Package tcpsrv implements the passive-socket acceptor, the per-connection
// state machine, and the TcpServer composition that binds them to a
// LoopThreadPool. All I/O is non-blocking and driven by the poller/loop
// packages; there is no net.Conn anywhere in this package.
package tcpsrv

import (
	"time"

	libbuf "github.com/nabbar/reactor/buffer"
	libloop "github.com/nabbar/reactor/loop"
	libmet "github.com/nabbar/reactor/metrics"
)

// ConnState is the Connection's lifecycle state. The transitions are:
// Connecting -> Connected (establish), Connected -> Disconnecting
// (Shutdown), and any state -> Disconnected (release). Shutdown has no
// effect unless the connection is Connected.
type ConnState int32

const (
	StateConnecting ConnState = iota
	StateConnected
	StateDisconnecting
	StateDisconnected
)

// String renders the state for logging.
func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnecting:
		return "disconnecting"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// ConnFunc is a connection lifecycle callback: connected, closed, or
// any-event.
type ConnFunc func(c Connection)

// MessageFunc is the inbound-data callback; buf is the connection's input
// buffer, already containing the newly arrived bytes at its tail.
type MessageFunc func(c Connection, buf libbuf.ByteBuffer)

// Connection is a single accepted TCP (or Unix-domain stream) peer, bound to
// exactly one worker EventLoop for its entire lifetime. Every method is
// safe to call from any goroutine: each posts its *InLoop sibling onto the
// owning loop via RunInLoop/QueueInLoop.
type Connection interface {
	// ID is the monotonically increasing identifier assigned by the
	// owning TcpServer at accept time.
	ID() uint64

	// Loop returns the EventLoop this connection is bound to.
	Loop() libloop.EventLoop

	// State returns the current lifecycle state.
	State() ConnState

	// LocalAddr / PeerAddr return the two endpoints of the socket, in
	// host:port form (or a filesystem path for a Unix-domain socket).
	LocalAddr() string
	PeerAddr() string

	// Context / SetContext hold an arbitrary protocol-layer value (e.g. an
	// HttpContext) alongside the connection.
	Context() any
	SetContext(v any)

	// Send appends data to the output buffer and arms the write handler
	// if the connection is Connected; dropped silently otherwise. data is
	// copied before crossing to the owning loop.
	Send(data []byte)

	// Shutdown initiates a graceful half-close: pending input is flushed
	// to the message callback once, then the connection releases once its
	// output buffer drains (immediately if already empty).
	Shutdown()

	// EnableInactiveRelease arms an idle timer: if no event touches this
	// connection's channel for d, it releases automatically.
	EnableInactiveRelease(d time.Duration)

	// CancelInactiveRelease disarms the idle timer set by
	// EnableInactiveRelease.
	CancelInactiveRelease()

	// Upgrade must be called from the owning loop thread (it asserts
	// InLoop). It atomically replaces the protocol context and all four
	// user callbacks, e.g. to hand the connection off from a line-based
	// protocol to an HTTP parser.
	Upgrade(ctx any, connected ConnFunc, message MessageFunc, closed ConnFunc, anyEvent ConnFunc)
}

// TcpServer composes a base EventLoop, a LoopThreadPool of worker loops, a
// Listener, and the id -> Connection map, per §4.9.
type TcpServer interface {
	// SetThreadCount sets the worker pool size; must be called before
	// Start.
	SetThreadCount(n int)

	// OnConnected / OnMessage / OnClosed / OnAnyEvent register the user
	// callbacks wired into every Connection at accept time.
	OnConnected(fn ConnFunc)
	OnMessage(fn MessageFunc)
	OnClosed(fn ConnFunc)
	OnAnyEvent(fn ConnFunc)

	// RunAfter / RunEvery are timer shortcuts that run fn on the base
	// loop, once after delay or repeatedly every interval.
	RunAfter(delay time.Duration, fn func())
	RunEvery(interval time.Duration, fn func())

	// Start starts the worker pool, begins accepting, and runs the base
	// loop; it blocks the calling goroutine until Stop is called from
	// elsewhere.
	Start() error

	// Stop stops accepting, stops every worker loop, then quits the base
	// loop, unblocking Start. Idempotent is not guaranteed across
	// concurrent callers; call from a single controlling goroutine.
	Stop() error

	// Loop returns the base EventLoop.
	Loop() libloop.EventLoop

	// Addr returns the listener's actual bound address (post-bind, so a
	// Config.Address ending in ":0" resolves to the kernel-assigned
	// port). Empty until Start has bound the listener.
	Addr() string

	// OpenConnections returns the number of entries currently in the
	// id -> Connection map.
	OpenConnections() int

	// SetMetrics wires m into every accepted Connection's I/O path and
	// starts a periodic sample of the base loop's timer wheel; nil
	// disables reporting. Call before Start.
	SetMetrics(m *libmet.Collector)
}

// New constructs a TcpServer from cfg, validating it first. fn is the
// fatal-path logger factory threaded through to every EventLoop; it may be
// nil.
func New(cfg Config, fn libloop.FuncLog) (TcpServer, error) {
	return newServer(cfg, fn)
}
