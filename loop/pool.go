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

import "sync/atomic"

type loopThreadPool struct {
	logFn FuncLog
	base  EventLoop

	threads []LoopThread
	loops   []EventLoop

	next atomic.Uint64

	mu      atomicOnce
	stopped atomic.Bool
}

// atomicOnce is a tiny reset-free guard that lets pool Start run only once.
// Stop uses its own stopped flag, so it remains callable (idempotently) even
// if Start never ran.
type atomicOnce struct {
	started atomic.Bool
}

func newLoopThreadPool(base EventLoop, fn FuncLog) *loopThreadPool {
	return &loopThreadPool{base: base, logFn: fn}
}

func (p *loopThreadPool) SetThreadCount(n int) {
	if n < 0 {
		n = 0
	}
	p.threads = make([]LoopThread, n)
	for i := range p.threads {
		p.threads[i] = NewLoopThread(p.logFn)
	}
}

func (p *loopThreadPool) Start(init func(EventLoop)) error {
	if !p.mu.started.CompareAndSwap(false, true) {
		return nil
	}

	p.loops = make([]EventLoop, 0, len(p.threads))

	for _, th := range p.threads {
		if err := th.Start(); err != nil {
			return err
		}

		l := th.Loop()
		p.loops = append(p.loops, l)

		if init != nil && l != nil {
			init(l)
		}
	}

	return nil
}

func (p *loopThreadPool) Stop() {
	if !p.stopped.CompareAndSwap(false, true) {
		return
	}

	for _, th := range p.threads {
		th.Stop()
	}
}

func (p *loopThreadPool) NextLoop() EventLoop {
	if len(p.loops) == 0 {
		return p.base
	}

	i := p.next.Add(1) - 1
	return p.loops[i%uint64(len(p.loops))]
}

func (p *loopThreadPool) LoopForHash(h uint64) EventLoop {
	if len(p.loops) == 0 {
		return p.base
	}

	return p.loops[h%uint64(len(p.loops))]
}
