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

package loop

import (
	"bytes"
	"encoding/binary"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"

	liberr "github.com/nabbar/reactor/errors"
	loglvl "github.com/nabbar/reactor/logger/level"
	libpol "github.com/nabbar/reactor/poller"
	libtw "github.com/nabbar/reactor/timingwheel"
)

const tickerTaskID uint64 = 0

type eventLoop struct {
	logFn FuncLog

	poll   libpol.Poller
	wakeFD int
	wakeCh Channel
	timers libtw.Wheel

	mu    sync.Mutex
	tasks []func()

	quit    atomic.Bool
	running atomic.Bool
	gid     atomic.Uint64

	startedAt atomic.Int64

	tickerStop chan struct{}
}

func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := bytes.TrimPrefix(buf[:n], []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, _ := strconv.ParseUint(string(b), 10, 64)
	return id
}

func newEventLoop(fn FuncLog) (*eventLoop, error) {
	p, err := libpol.New()
	if err != nil {
		return nil, err
	}

	fd, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	if err != nil {
		_ = p.Close()
		return nil, ErrorWakeCreate.Error(err)
	}

	l := &eventLoop{
		logFn:  fn,
		poll:   p,
		wakeFD: fd,
		timers: libtw.New(),
	}

	l.wakeCh = newChannel(l, fd)
	l.wakeCh.OnRead(l.drainWake)
	l.wakeCh.EnableRead()

	return l, nil
}

func (l *eventLoop) drainWake() {
	var buf [8]byte
	_, _ = unix.Read(l.wakeFD, buf[:])
}

func (l *eventLoop) wake() {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], 1)
	_, _ = unix.Write(l.wakeFD, buf[:])
}

func (l *eventLoop) fatal(code liberr.CodeError, err error) {
	if l.logFn != nil {
		if lg := l.logFn(); lg != nil {
			lg.Entry(loglvl.FatalLevel, "reactor loop fatal error").ErrorAdd(true, code.Error(err)).Log()
			return
		}
	}
	panic(code.Error(err))
}

func (l *eventLoop) Start() {
	l.gid.Store(goroutineID())
	l.running.Store(true)
	l.startedAt.Store(time.Now().UnixNano())

	l.tickerStop = make(chan struct{})
	go l.driveTicker()

	active := make([]libpol.Watcher, 0, 128)

	for !l.quit.Load() {
		var err error

		active, err = l.poll.Poll(active)
		if err != nil {
			l.fatal(ErrorPollFatal, err)
			return
		}

		for _, w := range active {
			if ch, ok := w.(Channel); ok {
				ch.HandleEvent()
			}
		}

		l.mu.Lock()
		pending := l.tasks
		l.tasks = nil
		l.mu.Unlock()

		for _, fn := range pending {
			fn()
		}
	}

	close(l.tickerStop)
	l.running.Store(false)
	l.startedAt.Store(0)
}

func (l *eventLoop) driveTicker() {
	t := time.NewTicker(time.Second)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			l.QueueInLoop(l.timers.Advance)
		case <-l.tickerStop:
			return
		}
	}
}

func (l *eventLoop) Quit() {
	l.quit.Store(true)
	l.wake()
}

func (l *eventLoop) InLoop() bool {
	return l.running.Load() && goroutineID() == l.gid.Load()
}

func (l *eventLoop) AssertInLoop() {
	if !l.InLoop() {
		panic("loop: called off the owning goroutine")
	}
}

func (l *eventLoop) RunInLoop(fn func()) {
	if l.InLoop() {
		fn()
		return
	}
	l.QueueInLoop(fn)
}

func (l *eventLoop) QueueInLoop(fn func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()
	l.wake()
}

// UpdateEvents re-applies w's interest to the kernel registration. The
// first call for a given watcher has nothing to modify yet, so a failed
// Update falls back to Add transparently.
func (l *eventLoop) UpdateEvents(w libpol.Watcher) error {
	if err := l.poll.Update(w); err != nil {
		return l.poll.Add(w)
	}
	return nil
}

func (l *eventLoop) RemoveEvents(w libpol.Watcher) error {
	return l.poll.Remove(w)
}

func (l *eventLoop) TimerAdd(id uint64, delay time.Duration, fn func()) error {
	var retErr error
	var wg sync.WaitGroup

	if l.InLoop() {
		return l.timers.Add(id, delay, fn)
	}

	wg.Add(1)
	l.QueueInLoop(func() {
		retErr = l.timers.Add(id, delay, fn)
		wg.Done()
	})
	wg.Wait()
	return retErr
}

func (l *eventLoop) TimerRefresh(id uint64) error {
	var retErr error
	var wg sync.WaitGroup

	if l.InLoop() {
		return l.timers.Refresh(id)
	}

	wg.Add(1)
	l.QueueInLoop(func() {
		retErr = l.timers.Refresh(id)
		wg.Done()
	})
	wg.Wait()
	return retErr
}

func (l *eventLoop) TimerCancel(id uint64) {
	l.RunInLoop(func() { l.timers.Cancel(id) })
}

func (l *eventLoop) ActiveTimers() int {
	var n int
	var wg sync.WaitGroup

	if l.InLoop() {
		return l.timers.Count()
	}

	wg.Add(1)
	l.QueueInLoop(func() {
		n = l.timers.Count()
		wg.Done()
	})
	wg.Wait()
	return n
}

func (l *eventLoop) IsRunning() bool {
	return l.running.Load()
}

func (l *eventLoop) Uptime() time.Duration {
	start := l.startedAt.Load()
	if start == 0 {
		return 0
	}
	return time.Duration(time.Now().UnixNano() - start)
}
