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

import "sync"

// loopThread runs one EventLoop on a dedicated goroutine. The published
// loop pointer is guarded by a mutex and a condition variable, mirroring
// the publish-under-lock discipline of a native thread-backed loop runner
// without requiring OS thread pinning (Go's scheduler already gives each
// goroutine independent forward progress).
type loopThread struct {
	logFn FuncLog

	mu      sync.Mutex
	cond    *sync.Cond
	loop    EventLoop
	stopped bool
	started bool

	done chan struct{}
}

func newLoopThread(fn FuncLog) *loopThread {
	t := &loopThread{logFn: fn}
	t.cond = sync.NewCond(&t.mu)
	return t
}

func (t *loopThread) Start() error {
	t.mu.Lock()
	if t.started {
		t.mu.Unlock()
		return nil
	}
	t.started = true
	t.done = make(chan struct{})
	t.mu.Unlock()

	l, err := New(t.logFn)
	if err != nil {
		t.mu.Lock()
		t.stopped = true
		t.cond.Broadcast()
		t.mu.Unlock()
		return err
	}

	t.mu.Lock()
	t.loop = l
	t.cond.Broadcast()
	t.mu.Unlock()

	go func() {
		l.Start()

		t.mu.Lock()
		t.loop = nil
		t.stopped = true
		t.cond.Broadcast()
		t.mu.Unlock()

		close(t.done)
	}()

	return nil
}

// Loop blocks until the loop has published itself or the thread has
// already stopped, in which case it returns nil.
func (t *loopThread) Loop() EventLoop {
	t.mu.Lock()
	defer t.mu.Unlock()

	for t.loop == nil && !t.stopped {
		t.cond.Wait()
	}

	return t.loop
}

func (t *loopThread) Stop() {
	t.mu.Lock()
	started := t.started
	t.mu.Unlock()

	if !started {
		return
	}

	l := t.Loop()
	if l == nil {
		return
	}

	l.Quit()

	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done != nil {
		<-done
	}
}
