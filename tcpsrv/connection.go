//go:build linux

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

package tcpsrv

import (
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"

	libbuf "github.com/nabbar/reactor/buffer"
	libloop "github.com/nabbar/reactor/loop"
	libmet "github.com/nabbar/reactor/metrics"
)

// ctxBox wraps an arbitrary protocol context so atomic.Value.Store never
// receives a bare, untyped nil (which panics on the first call).
type ctxBox struct {
	v any
}

// connection is the concrete Connection: a single peer fd bound to one
// worker loop, with buffered input/output and an optional idle timer keyed
// by its own id in that loop's timer wheel.
type connection struct {
	id   uint64
	fd   int
	loop libloop.EventLoop
	ch   libloop.Channel

	localAddr string
	peerAddr  string

	state atomic.Int32

	input  libbuf.ByteBuffer
	output libbuf.ByteBuffer

	ctx atomic.Value

	onConnected atomic.Value
	onMessage   atomic.Value
	onClosed    atomic.Value
	onAnyEvent  atomic.Value

	idleFlag  atomic.Bool
	hasTimer  atomic.Bool
	idleEvery time.Duration

	// serverClosed is the server-scoped hook that erases this connection
	// from the TcpServer's id map; invoked after the user close callback.
	serverClosed func(Connection)

	// mtr is the owning server's metrics collector, nil-safe on every
	// method; set once at construction and never mutated afterward.
	mtr *libmet.Collector
}

func newConnectionObj(id uint64, fd int, loop libloop.EventLoop, local, peer string) *connection {
	c := &connection{
		id:        id,
		fd:        fd,
		loop:      loop,
		localAddr: local,
		peerAddr:  peer,
		input:     libbuf.New(4096),
		output:    libbuf.New(4096),
	}
	c.state.Store(int32(StateConnecting))
	c.ch = libloop.NewChannel(loop, fd)
	c.ch.OnRead(c.handleRead)
	c.ch.OnWrite(c.handleWrite)
	c.ch.OnClose(c.handleClose)
	c.ch.OnError(c.handleError)
	c.ch.OnAny(c.handleAny)
	return c
}

func (c *connection) ID() uint64             { return c.id }
func (c *connection) Loop() libloop.EventLoop { return c.loop }
func (c *connection) State() ConnState        { return ConnState(c.state.Load()) }
func (c *connection) LocalAddr() string       { return c.localAddr }
func (c *connection) PeerAddr() string        { return c.peerAddr }

func (c *connection) Context() any {
	if b, ok := c.ctx.Load().(ctxBox); ok {
		return b.v
	}
	return nil
}

func (c *connection) SetContext(v any) {
	c.ctx.Store(ctxBox{v: v})
}

func (c *connection) Send(data []byte) {
	if len(data) == 0 {
		return
	}
	cp := append([]byte(nil), data...)
	c.loop.RunInLoop(func() { c.sendInLoop(cp) })
}

func (c *connection) sendInLoop(data []byte) {
	if ConnState(c.state.Load()) != StateConnected {
		return
	}
	_, _ = c.output.Write(data)
	if c.output.Readable() > 0 {
		c.ch.EnableWrite()
	}
}

func (c *connection) Shutdown() {
	c.loop.RunInLoop(c.shutdownInLoop)
}

func (c *connection) shutdownInLoop() {
	if ConnState(c.state.Load()) != StateConnected {
		return
	}
	c.state.Store(int32(StateDisconnecting))

	if c.input.Readable() > 0 {
		c.deliverMessage()
	}

	if c.output.Readable() > 0 {
		c.ch.EnableWrite()
	} else {
		c.release()
	}
}

func (c *connection) EnableInactiveRelease(d time.Duration) {
	c.loop.RunInLoop(func() {
		c.idleEvery = d
		c.idleFlag.Store(true)

		if c.hasTimer.Load() {
			if err := c.loop.TimerRefresh(c.id); err == nil {
				return
			}
			c.hasTimer.Store(false)
		}

		if err := c.loop.TimerAdd(c.id, d, c.release); err == nil {
			c.hasTimer.Store(true)
		}
	})
}

func (c *connection) CancelInactiveRelease() {
	c.loop.RunInLoop(func() {
		c.idleFlag.Store(false)
		if c.hasTimer.Load() {
			c.loop.TimerCancel(c.id)
			c.hasTimer.Store(false)
		}
	})
}

func (c *connection) Upgrade(ctx any, connected ConnFunc, message MessageFunc, closed ConnFunc, anyEvent ConnFunc) {
	c.loop.AssertInLoop()
	c.ctx.Store(ctxBox{v: ctx})
	c.onConnected.Store(connected)
	c.onMessage.Store(message)
	c.onClosed.Store(closed)
	c.onAnyEvent.Store(anyEvent)
}

// establish transitions Connecting -> Connected, enables read interest, and
// invokes the connected callback. Must run on the owning loop.
func (c *connection) establish() {
	if ConnState(c.state.Load()) != StateConnecting {
		return
	}
	c.state.Store(int32(StateConnected))
	c.ch.EnableRead()

	if fn, ok := c.onConnected.Load().(ConnFunc); ok && fn != nil {
		fn(c)
	}
}

func (c *connection) deliverMessage() {
	if fn, ok := c.onMessage.Load().(MessageFunc); ok && fn != nil {
		fn(c, c.input)
	}
}

// release transitions to Disconnected exactly once: removes the channel
// from the poller, closes the socket, cancels any idle timer, and invokes
// the user close callback followed by the server-scoped erase hook.
func (c *connection) release() {
	if ConnState(c.state.Load()) == StateDisconnected {
		return
	}
	c.state.Store(int32(StateDisconnected))

	c.ch.Remove()
	_ = unix.Close(c.fd)

	if c.hasTimer.Load() {
		c.loop.TimerCancel(c.id)
		c.hasTimer.Store(false)
	}

	if fn, ok := c.onClosed.Load().(ConnFunc); ok && fn != nil {
		fn(c)
	}

	if c.serverClosed != nil {
		c.serverClosed(c)
	}
}

// handleRead recvs into a stack scratch buffer; zero bytes or a hard error
// trigger a graceful shutdown, EAGAIN/EWOULDBLOCK wait for the next edge.
func (c *connection) handleRead() {
	var scratch [65535]byte

	n, err := unix.Read(c.fd, scratch[:])
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK || err == unix.EINTR {
			return
		}
		c.shutdownInLoop()
		return
	}

	if n == 0 {
		c.shutdownInLoop()
		return
	}

	c.mtr.AddBytesIn(n)

	_, _ = c.input.Write(scratch[:n])
	if c.input.Readable() > 0 {
		c.deliverMessage()
	}
}

// handleWrite drains the output buffer directly from its read cursor.
func (c *connection) handleWrite() {
	if !c.ch.IsWriting() {
		return
	}

	p := c.output.ReadPtr()
	if len(p) == 0 {
		c.ch.DisableWrite()
		return
	}

	n, err := unix.Write(c.fd, p)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK || err == unix.EINTR {
			return
		}
		if c.input.Readable() > 0 {
			c.deliverMessage()
		}
		c.release()
		return
	}

	c.mtr.AddBytesOut(n)
	c.output.AdvanceRead(n)

	if c.output.Readable() == 0 {
		c.ch.DisableWrite()
		if ConnState(c.state.Load()) == StateDisconnecting {
			c.release()
		}
	}
}

func (c *connection) handleClose() {
	if c.input.Readable() > 0 {
		c.deliverMessage()
	}
	c.release()
}

func (c *connection) handleError() {
	c.handleClose()
}

// handleAny refreshes the idle timer (iff Connected and armed) before
// invoking the user any-event callback.
func (c *connection) handleAny() {
	if ConnState(c.state.Load()) == StateConnected && c.idleFlag.Load() && c.hasTimer.Load() {
		_ = c.loop.TimerRefresh(c.id)
	}

	if fn, ok := c.onAnyEvent.Load().(ConnFunc); ok && fn != nil {
		fn(c)
	}
}
