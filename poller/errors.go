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
	"fmt"

	liberr "github.com/nabbar/reactor/errors"
)

const (
	// ErrorPollerCreate indicates that the kernel readiness multiplexer
	// could not be created.
	ErrorPollerCreate liberr.CodeError = iota + liberr.MinPkgPoller

	// ErrorPollerRegister indicates that a watcher could not be
	// added to, modified in, or removed from the poller registration.
	ErrorPollerRegister

	// ErrorPollerWait indicates that the blocking wait call returned a
	// fatal, non-interrupt error. Per contract this is unrecoverable.
	ErrorPollerWait
)

func init() {
	if liberr.ExistInMapMessage(ErrorPollerCreate) {
		panic(fmt.Errorf("error code collision with package reactor/poller"))
	}
	liberr.RegisterIdFctMessage(ErrorPollerCreate, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorPollerCreate:
		return "cannot create readiness poller"
	case ErrorPollerRegister:
		return "cannot update watcher registration"
	case ErrorPollerWait:
		return "readiness wait returned a fatal error"
	}

	return liberr.NullMessage
}
