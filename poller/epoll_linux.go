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

package poller

import (
	"golang.org/x/sys/unix"
)

type epoll struct {
	fd int
	ws map[int]Watcher
	ee []unix.EpollEvent
}

func newEpoll() (Poller, error) {
	fd, err := unix.EpollCreate1(0)
	if err != nil {
		return nil, ErrorPollerCreate.Error(err)
	}

	return &epoll{
		fd: fd,
		ws: make(map[int]Watcher, 128),
		ee: make([]unix.EpollEvent, 128),
	}, nil
}

func toKernel(ev Events) uint32 {
	var k uint32

	if ev&EventReadable != 0 {
		k |= unix.EPOLLIN
	}
	if ev&EventWritable != 0 {
		k |= unix.EPOLLOUT
	}
	if ev&EventPriority != 0 {
		k |= unix.EPOLLPRI
	}
	if ev&EventPeerShutdown != 0 {
		k |= unix.EPOLLRDHUP
	}

	return k
}

func fromKernel(k uint32) Events {
	var ev Events

	if k&unix.EPOLLIN != 0 {
		ev |= EventReadable
	}
	if k&unix.EPOLLOUT != 0 {
		ev |= EventWritable
	}
	if k&unix.EPOLLERR != 0 {
		ev |= EventError
	}
	if k&unix.EPOLLHUP != 0 {
		ev |= EventHangup
	}
	if k&unix.EPOLLPRI != 0 {
		ev |= EventPriority
	}
	if k&unix.EPOLLRDHUP != 0 {
		ev |= EventPeerShutdown
	}

	return ev
}

func (p *epoll) Add(w Watcher) error {
	ev := unix.EpollEvent{
		Events: toKernel(w.Interest()),
		Fd:     int32(w.FD()),
	}

	if err := unix.EpollCtl(p.fd, unix.EPOLL_CTL_ADD, w.FD(), &ev); err != nil {
		return ErrorPollerRegister.Error(err)
	}

	p.ws[w.FD()] = w
	return nil
}

func (p *epoll) Update(w Watcher) error {
	ev := unix.EpollEvent{
		Events: toKernel(w.Interest()),
		Fd:     int32(w.FD()),
	}

	if err := unix.EpollCtl(p.fd, unix.EPOLL_CTL_MOD, w.FD(), &ev); err != nil {
		return ErrorPollerRegister.Error(err)
	}

	return nil
}

func (p *epoll) Remove(w Watcher) error {
	err := unix.EpollCtl(p.fd, unix.EPOLL_CTL_DEL, w.FD(), nil)
	delete(p.ws, w.FD())

	if err != nil && err != unix.ENOENT {
		return ErrorPollerRegister.Error(err)
	}

	return nil
}

func (p *epoll) Poll(out []Watcher) ([]Watcher, error) {
	out = out[:0]

	n, err := unix.EpollWait(p.fd, p.ee, -1)
	if err != nil {
		if err == unix.EINTR {
			return out, nil
		}
		return out, ErrorPollerWait.Error(err)
	}

	for i := 0; i < n; i++ {
		w, ok := p.ws[int(p.ee[i].Fd)]
		if !ok {
			continue
		}

		w.SetRevents(fromKernel(p.ee[i].Events))
		out = append(out, w)
	}

	return out, nil
}

func (p *epoll) Close() error {
	return unix.Close(p.fd)
}
