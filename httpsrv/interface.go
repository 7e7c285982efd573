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

// Package httpsrv is an HTTP/1.1 protocol layer driven entirely by a
// tcpsrv.Connection's connected/message/closed callbacks: an incremental
// request parser, a response writer that frames Content-Length/Connection
// deterministically, a regex route table per method, and static-file
// serving with conditional-GET support.
package httpsrv


// ParseState is the HttpContext's request-line/header/body state machine.
type ParseState int32

const (
	RecvLine ParseState = iota
	RecvHead
	RecvBody
	Over
	ErrorState
)

func (s ParseState) String() string {
	switch s {
	case RecvLine:
		return "RecvLine"
	case RecvHead:
		return "RecvHead"
	case RecvBody:
		return "RecvBody"
	case Over:
		return "Over"
	case ErrorState:
		return "Error"
	default:
		return "Unknown"
	}
}

// Request is the accumulated, fully-parsed HTTP/1.1 request once the
// context reaches Over. Header keys are stored verbatim (no case folding),
// matching the wire bytes exactly.
type Request struct {
	Method  string
	Path    string
	Query   map[string]string
	Proto   string
	Header  map[string]string
	Body    []byte
	Matches []string
}

// HeaderField is one response header, kept as a slice rather than a map so
// emission order matches registration order.
type HeaderField struct {
	Key   string
	Value string
}

// Response is a handler's answer: a status code, ordered headers, and a
// body. writeResponse fills in Connection and Content-Type if the handler
// left them unset, and always overwrites Content-Length with the body size.
type Response struct {
	Code   int
	Header []HeaderField
	Body   []byte
}

// NewResponse returns an empty Response with the given status code.
func NewResponse(code int) *Response {
	return &Response{Code: code}
}

// Set assigns a header value, updating it in place if already present, or
// appending it (preserving emission order) otherwise.
func (r *Response) Set(key, value string) *Response {
	for i := range r.Header {
		if r.Header[i].Key == key {
			r.Header[i].Value = value
			return r
		}
	}
	r.Header = append(r.Header, HeaderField{Key: key, Value: value})
	return r
}

// Get returns a header's value, case-insensitively, and whether it is set.
func (r *Response) Get(key string) (string, bool) {
	for _, h := range r.Header {
		if eqFold(h.Key, key) {
			return h.Value, true
		}
	}
	return "", false
}

// Handler produces a Response for a routed Request, or nil to fall through
// (treated the same as no match: the server answers 404).
type Handler func(req *Request) *Response

// ErrorHandler renders a response for a protocol or application error
// status (400, 404, 414, 500, ...).
type ErrorHandler func(status int, req *Request) *Response
