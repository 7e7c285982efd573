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
	"fmt"

	liberr "github.com/nabbar/reactor/errors"
)

const (
	// ErrorConfigAddressEmpty indicates Config.Address was left empty.
	ErrorConfigAddressEmpty liberr.CodeError = iota + liberr.MinPkgTcpServer

	// ErrorConfigNetworkInvalid indicates Config.Network is not one of
	// the supported TCP family values.
	ErrorConfigNetworkInvalid

	// ErrorSocketCreate indicates the listening socket() call failed.
	ErrorSocketCreate

	// ErrorSocketOption indicates a setsockopt() call failed.
	ErrorSocketOption

	// ErrorSocketBind indicates the bind() call failed.
	ErrorSocketBind

	// ErrorSocketListen indicates the listen() call failed.
	ErrorSocketListen

	// ErrorSocketAccept indicates an accept4() call failed with other
	// than EAGAIN/EINTR/ECONNABORTED.
	ErrorSocketAccept

	// ErrorAddressParse indicates Config.Address could not be parsed
	// for the selected network family.
	ErrorAddressParse

	// ErrorConnectionClosed indicates an operation was attempted on an
	// already-disconnected Connection.
	ErrorConnectionClosed

	// ErrorServerAlreadyRunning indicates Start was called twice.
	ErrorServerAlreadyRunning

	// ErrorServerNotRunning indicates Stop was called before Start.
	ErrorServerNotRunning
)

func init() {
	if liberr.ExistInMapMessage(ErrorConfigAddressEmpty) {
		panic(fmt.Errorf("error code collision with package reactor/tcpsrv"))
	}
	liberr.RegisterIdFctMessage(ErrorConfigAddressEmpty, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorConfigAddressEmpty:
		return "tcp server config has no bind address"
	case ErrorConfigNetworkInvalid:
		return "tcp server config has an invalid network protocol"
	case ErrorSocketCreate:
		return "cannot create listening socket"
	case ErrorSocketOption:
		return "cannot set socket option"
	case ErrorSocketBind:
		return "cannot bind listening socket"
	case ErrorSocketListen:
		return "cannot listen on socket"
	case ErrorSocketAccept:
		return "cannot accept incoming connection"
	case ErrorAddressParse:
		return "cannot parse bind address"
	case ErrorConnectionClosed:
		return "connection is already closed"
	case ErrorServerAlreadyRunning:
		return "tcp server is already running"
	case ErrorServerNotRunning:
		return "tcp server is not running"
	}

	return liberr.NullMessage
}
