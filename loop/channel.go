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

package loop

import (
	"sync/atomic"

	libpol "github.com/nabbar/reactor/poller"
)

type channel struct {
	loop EventLoop
	fd   int

	interest atomic.Uint32
	revents  atomic.Uint32

	onRead  atomic.Value
	onWrite atomic.Value
	onClose atomic.Value
	onError atomic.Value
	onAny   atomic.Value
}

func newChannel(l EventLoop, fd int) *channel {
	return &channel{loop: l, fd: fd}
}

func (c *channel) FD() int { return c.fd }

func (c *channel) Interest() libpol.Events {
	return libpol.Events(c.interest.Load())
}

func (c *channel) SetRevents(ev libpol.Events) {
	c.revents.Store(uint32(ev))
}

func (c *channel) update() {
	if err := c.loop.UpdateEvents(c); err != nil {
		panic(err)
	}
}

func (c *channel) EnableRead() {
	c.interest.Store(uint32(libpol.Events(c.interest.Load()) | libpol.EventReadable))
	c.update()
}

func (c *channel) DisableRead() {
	c.interest.Store(uint32(libpol.Events(c.interest.Load()) &^ libpol.EventReadable))
	c.update()
}

func (c *channel) EnableWrite() {
	c.interest.Store(uint32(libpol.Events(c.interest.Load()) | libpol.EventWritable))
	c.update()
}

func (c *channel) DisableWrite() {
	c.interest.Store(uint32(libpol.Events(c.interest.Load()) &^ libpol.EventWritable))
	c.update()
}

func (c *channel) IsWriting() bool {
	return libpol.Events(c.interest.Load())&libpol.EventWritable != 0
}

func (c *channel) DisableAll() {
	c.interest.Store(uint32(libpol.EventNone))

	if err := c.loop.RemoveEvents(c); err != nil {
		panic(err)
	}
}

func (c *channel) Remove() {
	c.DisableAll()
}

func (c *channel) OnRead(fn func())  { c.onRead.Store(fn) }
func (c *channel) OnWrite(fn func()) { c.onWrite.Store(fn) }
func (c *channel) OnClose(fn func()) { c.onClose.Store(fn) }
func (c *channel) OnError(fn func()) { c.onError.Store(fn) }
func (c *channel) OnAny(fn func())   { c.onAny.Store(fn) }

func callIfSet(v *atomic.Value) {
	if fn, ok := v.Load().(func()); ok && fn != nil {
		fn()
	}
}

// HandleEvent dispatches on the last-observed revent mask: read callback
// fires on readable/priority/peer-shutdown; then, mutually exclusively,
// write on writable, else error on error, else close on hang-up; the any-
// event callback always fires last.
func (c *channel) HandleEvent() {
	ev := libpol.Events(c.revents.Load())

	if ev&(libpol.EventReadable|libpol.EventPriority|libpol.EventPeerShutdown) != 0 {
		callIfSet(&c.onRead)
	}

	switch {
	case ev&libpol.EventWritable != 0:
		callIfSet(&c.onWrite)
	case ev&libpol.EventError != 0:
		callIfSet(&c.onError)
	case ev&libpol.EventHangup != 0:
		callIfSet(&c.onClose)
	}

	callIfSet(&c.onAny)
}
