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
	"fmt"

	liberr "github.com/nabbar/reactor/errors"
)

const (
	// ErrorWakeCreate indicates the loop's wake-up eventfd could not be
	// created. Fatal: the loop cannot be driven from other goroutines
	// without it.
	ErrorWakeCreate liberr.CodeError = iota + liberr.MinPkgLoop

	// ErrorPollFatal indicates the underlying poller returned a fatal,
	// unrecoverable error from its blocking wait call.
	ErrorPollFatal
)

func init() {
	if liberr.ExistInMapMessage(ErrorWakeCreate) {
		panic(fmt.Errorf("error code collision with package reactor/loop"))
	}
	liberr.RegisterIdFctMessage(ErrorWakeCreate, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorWakeCreate:
		return "cannot create loop wake-up descriptor"
	case ErrorPollFatal:
		return "loop poller returned a fatal error"
	}

	return liberr.NullMessage
}
