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
	"net"
	"strconv"

	"golang.org/x/sys/unix"

	libptc "github.com/nabbar/reactor/network/protocol"
	libloop "github.com/nabbar/reactor/loop"
)

// acceptFunc receives a freshly accepted, non-blocking, close-on-exec
// socket and the peer's address string.
type acceptFunc func(fd int, peer string)

// listener is the passive socket described in §4.7: owned by the base
// loop, SO_REUSEADDR always, SO_REUSEPORT best-effort, backlog from
// config, read-driven accept4 drain loop.
type listener struct {
	fd       int
	addr     string
	ch       libloop.Channel
	onAccept acceptFunc
}

func newListener(loop libloop.EventLoop, cfg Config) (*listener, error) {
	fd, sa, err := buildSocket(cfg)
	if err != nil {
		return nil, err
	}

	if err = unix.Bind(fd, sa); err != nil {
		_ = unix.Close(fd)
		return nil, ErrorSocketBind.Error(err)
	}

	if err = unix.Listen(fd, cfg.backlogOrDefault()); err != nil {
		_ = unix.Close(fd)
		return nil, ErrorSocketListen.Error(err)
	}

	bound, err := unix.Getsockname(fd)
	addr := cfg.Address
	if err == nil {
		addr = sockaddrString(bound)
	}

	l := &listener{fd: fd, addr: addr}
	l.ch = libloop.NewChannel(loop, fd)
	l.ch.OnRead(l.handleAccept)

	return l, nil
}

// Addr returns the listener's actual bound address, resolved via
// getsockname so an ephemeral (":0") port request reports the real one.
func (l *listener) Addr() string {
	return l.addr
}

// OnAccept registers the callback invoked once per accepted connection.
func (l *listener) OnAccept(fn acceptFunc) {
	l.onAccept = fn
}

// listen enables read interest, arming the accept loop.
func (l *listener) listen() {
	l.ch.EnableRead()
}

// handleAccept drains every pending connection on the listening socket.
// EAGAIN/EINTR end the loop; ECONNABORTED is skipped per-attempt; any
// other error also ends the loop (the next readiness edge retries).
func (l *listener) handleAccept() {
	for {
		nfd, sa, err := unix.Accept4(l.fd, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
		if err != nil {
			if err == unix.ECONNABORTED {
				continue
			}
			return
		}

		if l.onAccept != nil {
			l.onAccept(nfd, sockaddrString(sa))
		}
	}
}

// Close removes the channel from the poller and closes the listening
// socket, ending all future accepts.
func (l *listener) Close() error {
	l.ch.Remove()
	return unix.Close(l.fd)
}

func buildSocket(cfg Config) (int, unix.Sockaddr, error) {
	if cfg.networkOrDefault() == libptc.NetworkUnix {
		fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
		if err != nil {
			return -1, nil, ErrorSocketCreate.Error(err)
		}
		return fd, &unix.SockaddrUnix{Name: cfg.Address}, nil
	}

	family := unix.AF_INET
	if cfg.networkOrDefault() == libptc.NetworkTCP6 {
		family = unix.AF_INET6
	}

	return buildInetSocket(cfg, family)
}

func buildInetSocket(cfg Config, family int) (int, unix.Sockaddr, error) {
	host, portStr, err := net.SplitHostPort(cfg.Address)
	if err != nil {
		return -1, nil, ErrorAddressParse.Error(err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return -1, nil, ErrorAddressParse.Error(err)
	}

	fd, err := unix.Socket(family, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return -1, nil, ErrorSocketCreate.Error(err)
	}

	if err = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		_ = unix.Close(fd)
		return -1, nil, ErrorSocketOption.Error(err)
	}

	// SO_REUSEPORT is best-effort: older kernels and some sandboxes
	// reject it even though SO_REUSEADDR succeeds.
	_ = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)

	if family == unix.AF_INET6 {
		var addr [16]byte
		if host != "" {
			ip := net.ParseIP(host).To16()
			if ip == nil {
				_ = unix.Close(fd)
				return -1, nil, ErrorAddressParse.Error(nil)
			}
			copy(addr[:], ip)
		}
		return fd, &unix.SockaddrInet6{Port: port, Addr: addr}, nil
	}

	var addr [4]byte
	if host != "" {
		ip := net.ParseIP(host).To4()
		if ip == nil {
			_ = unix.Close(fd)
			return -1, nil, ErrorAddressParse.Error(nil)
		}
		copy(addr[:], ip)
	}
	return fd, &unix.SockaddrInet4{Port: port, Addr: addr}, nil
}

func sockaddrString(sa unix.Sockaddr) string {
	switch v := sa.(type) {
	case *unix.SockaddrInet4:
		return net.JoinHostPort(net.IP(v.Addr[:]).String(), strconv.Itoa(v.Port))
	case *unix.SockaddrInet6:
		return net.JoinHostPort(net.IP(v.Addr[:]).String(), strconv.Itoa(v.Port))
	case *unix.SockaddrUnix:
		return v.Name
	default:
		return ""
	}
}
