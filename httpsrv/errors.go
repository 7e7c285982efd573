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

package httpsrv

import (
	"fmt"

	liberr "github.com/nabbar/reactor/errors"
)

const (
	// ErrorRequestLineTooLong indicates RecvLine never found a CRLF within
	// the line-size cap.
	ErrorRequestLineTooLong liberr.CodeError = iota + liberr.MinPkgHttpSrv

	// ErrorRequestLineInvalid indicates the request line did not match the
	// method/path/version pattern.
	ErrorRequestLineInvalid

	// ErrorHeaderLineTooLong indicates a header line never found a CRLF
	// within the line-size cap.
	ErrorHeaderLineTooLong

	// ErrorStaticPathDenied indicates a static-file request failed path
	// validation (traversal, disallowed characters, oversize).
	ErrorStaticPathDenied

	// ErrorStaticFileRead indicates a validated static path could not be
	// read from disk.
	ErrorStaticFileRead
)

func init() {
	if liberr.ExistInMapMessage(ErrorRequestLineTooLong) {
		panic(fmt.Errorf("error code collision with package reactor/httpsrv"))
	}
	liberr.RegisterIdFctMessage(ErrorRequestLineTooLong, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorRequestLineTooLong:
		return "request line exceeded the maximum line size without a terminator"
	case ErrorRequestLineInvalid:
		return "request line did not match method/path/version pattern"
	case ErrorHeaderLineTooLong:
		return "header line exceeded the maximum line size without a terminator"
	case ErrorStaticPathDenied:
		return "static file path failed validation"
	case ErrorStaticFileRead:
		return "static file could not be read"
	}

	return liberr.NullMessage
}
