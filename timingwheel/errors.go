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

package timingwheel

import (
	"fmt"

	liberr "github.com/nabbar/reactor/errors"
)

const (
	// ErrorTaskFuncNil indicates Add was called with a nil task function.
	ErrorTaskFuncNil liberr.CodeError = iota + liberr.MinPkgTimingWheel

	// ErrorTaskUnknown indicates Refresh was called for an id that was
	// never added, or has already fired.
	ErrorTaskUnknown

	// ErrorTaskCanceled indicates Refresh was called for an id that has
	// been canceled.
	ErrorTaskCanceled
)

func init() {
	if liberr.ExistInMapMessage(ErrorTaskFuncNil) {
		panic(fmt.Errorf("error code collision with package reactor/timingwheel"))
	}
	liberr.RegisterIdFctMessage(ErrorTaskFuncNil, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorTaskFuncNil:
		return "timer task function is nil"
	case ErrorTaskUnknown:
		return "timer task id is unknown"
	case ErrorTaskCanceled:
		return "timer task id is canceled"
	}

	return liberr.NullMessage
}
