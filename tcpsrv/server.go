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

	libatm "github.com/nabbar/reactor/atomic"
	libloop "github.com/nabbar/reactor/loop"
	libmet "github.com/nabbar/reactor/metrics"
)

// metricsSampleInterval is how often a running server with metrics enabled
// resamples the base loop's timer wheel into the active-timers gauge.
const metricsSampleInterval = 5 * time.Second

// server is the concrete TcpServer: a base loop, a worker pool anchored at
// it, a Listener, a monotonic id counter shared by connections and
// RunAfter/RunEvery timers, and the id -> Connection map owned by the base
// loop's goroutine.
type server struct {
	cfg  Config
	base libloop.EventLoop
	pool libloop.LoopThreadPool
	ln   atomic.Pointer[listener]

	nextID  atomic.Uint64
	conns   libatm.MapTyped[uint64, Connection]
	running atomic.Bool

	mtr atomic.Pointer[libmet.Collector]

	onConnected atomic.Value
	onMessage   atomic.Value
	onClosed    atomic.Value
	onAnyEvent  atomic.Value
}

func newServer(cfg Config, fn libloop.FuncLog) (*server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base, err := libloop.New(fn)
	if err != nil {
		return nil, err
	}

	s := &server{
		cfg:   cfg,
		base:  base,
		pool:  libloop.NewLoopThreadPool(base, fn),
		conns: libatm.NewMapTyped[uint64, Connection](),
	}
	s.pool.SetThreadCount(cfg.WorkerCount)

	return s, nil
}

func (s *server) SetThreadCount(n int) { s.pool.SetThreadCount(n) }

func (s *server) SetMetrics(m *libmet.Collector) { s.mtr.Store(m) }

func (s *server) OnConnected(fn ConnFunc)  { s.onConnected.Store(fn) }
func (s *server) OnMessage(fn MessageFunc) { s.onMessage.Store(fn) }
func (s *server) OnClosed(fn ConnFunc)     { s.onClosed.Store(fn) }
func (s *server) OnAnyEvent(fn ConnFunc)   { s.onAnyEvent.Store(fn) }

func (s *server) RunAfter(delay time.Duration, fn func()) {
	if fn == nil {
		return
	}
	id := s.nextID.Add(1)
	s.base.RunInLoop(func() {
		_ = s.base.TimerAdd(id, delay, fn)
	})
}

func (s *server) RunEvery(interval time.Duration, fn func()) {
	if fn == nil {
		return
	}
	id := s.nextID.Add(1)

	var reschedule func()
	reschedule = func() {
		fn()
		_ = s.base.TimerAdd(id, interval, reschedule)
	}

	s.base.RunInLoop(func() {
		_ = s.base.TimerAdd(id, interval, reschedule)
	})
}

func (s *server) Loop() libloop.EventLoop { return s.base }

func (s *server) Addr() string {
	if ln := s.ln.Load(); ln != nil {
		return ln.Addr()
	}
	return ""
}

func (s *server) OpenConnections() int {
	n := 0
	s.conns.Range(func(_ uint64, _ Connection) bool {
		n++
		return true
	})
	return n
}

// Start starts the worker pool, wires the listener's accept callback,
// begins accepting, and runs the base loop; it blocks until Stop quits the
// base loop from elsewhere.
func (s *server) Start() error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrorServerAlreadyRunning.Error(nil)
	}
	defer s.running.Store(false)

	ln, err := newListener(s.base, s.cfg)
	if err != nil {
		return err
	}
	ln.OnAccept(s.newConnection)
	s.ln.Store(ln)

	if err = s.pool.Start(nil); err != nil {
		return err
	}

	if s.mtr.Load() != nil {
		s.RunEvery(metricsSampleInterval, s.sampleMetrics)
	}

	ln.listen()
	s.base.Start()

	return nil
}

// Stop stops accepting, stops every worker loop, then quits the base loop,
// matching the "stop accept -> stop workers -> join" ordering.
func (s *server) Stop() error {
	if !s.running.Load() {
		return ErrorServerNotRunning.Error(nil)
	}

	if ln := s.ln.Load(); ln != nil {
		_ = ln.Close()
	}

	s.pool.Stop()
	s.base.Quit()

	return nil
}

func (s *server) sampleMetrics() {
	s.mtr.Load().SetActiveTimers(s.base.ActiveTimers())
}

// newConnection is the listener's accept callback: it assigns an id, picks
// a worker loop, constructs and wires the Connection, records it in the
// map, and establishes it -- all per §4.9.
func (s *server) newConnection(fd int, peer string) {
	id := s.nextID.Add(1)
	wl := s.pool.NextLoop()

	local := s.cfg.Address
	if sa, err := unix.Getsockname(fd); err == nil {
		local = sockaddrString(sa)
	}

	c := newConnectionObj(id, fd, wl, local, peer)
	c.serverClosed = s.eraseConnection
	c.mtr = s.mtr.Load()

	s.mtr.Load().ConnectionAccepted()

	if fn, ok := s.onConnected.Load().(ConnFunc); ok {
		c.onConnected.Store(fn)
	}
	if fn, ok := s.onMessage.Load().(MessageFunc); ok {
		c.onMessage.Store(fn)
	}
	if fn, ok := s.onClosed.Load().(ConnFunc); ok {
		c.onClosed.Store(fn)
	}
	if fn, ok := s.onAnyEvent.Load().(ConnFunc); ok {
		c.onAnyEvent.Store(fn)
	}

	s.conns.Store(id, c)

	wl.RunInLoop(func() {
		c.establish()
		if s.cfg.ConIdleTimeoutSeconds > 0 {
			c.EnableInactiveRelease(time.Duration(s.cfg.ConIdleTimeoutSeconds) * time.Second)
		}
	})
}

// eraseConnection removes id from the map; posted to run on the base loop
// so the map is only ever touched from one goroutine.
func (s *server) eraseConnection(c Connection) {
	s.mtr.Load().ConnectionClosed()
	s.base.QueueInLoop(func() {
		s.conns.Delete(c.ID())
	})
}
