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
	"net/url"
	"regexp"
	"strconv"
	"strings"

	libbuf "github.com/nabbar/reactor/buffer"
)

// maxLineSize bounds a single request/header line; GetLine returning nil
// past this many buffered bytes without a newline means the peer is never
// going to terminate the line, so the context fails with 414.
const maxLineSize = 8192

var reqLineRegex = regexp.MustCompile(`(?i)^(GET|HEAD|POST|PUT|DELETE) ([^ ?]+)(?:\?([^ ]*))? (HTTP/1\.[01])$`)

// HttpContext is the per-connection parser state: RecvLine -> RecvHead ->
// RecvBody -> Over, or -> ErrorState with a latched 4xx status on any
// malformed input. It is attached to a Connection's protocol context on
// connect and reset after every request.
type HttpContext struct {
	state   ParseState
	status  int
	req     *Request
	bodyLen int
}

// NewHttpContext returns a context ready to receive a request line.
func NewHttpContext() *HttpContext {
	c := &HttpContext{}
	c.Reset()
	return c
}

// Reset zeroes status and clears the accumulated request, per §4.10.
func (c *HttpContext) Reset() {
	c.state = RecvLine
	c.status = 0
	c.bodyLen = 0
	c.req = &Request{
		Header: make(map[string]string),
		Query:  make(map[string]string),
	}
}

func (c *HttpContext) State() ParseState { return c.state }
func (c *HttpContext) Status() int       { return c.status }
func (c *HttpContext) Request() *Request { return c.req }

// Parse drives the state machine as far as the buffered input allows,
// stopping at ErrorState, Over, or the first state that needs more bytes
// than are currently readable.
func (c *HttpContext) Parse(buf libbuf.ByteBuffer) {
	for {
		var more bool
		switch c.state {
		case RecvLine:
			more = c.recvLine(buf)
		case RecvHead:
			more = c.recvHead(buf)
		case RecvBody:
			more = c.recvBody(buf)
		default:
			return
		}
		if !more {
			return
		}
	}
}

func (c *HttpContext) fail(code int) {
	c.state = ErrorState
	c.status = code
}

func (c *HttpContext) recvLine(buf libbuf.ByteBuffer) bool {
	line := buf.GetLine()
	if line == nil {
		if buf.Readable() > maxLineSize {
			c.fail(414)
		}
		return false
	}

	s := strings.TrimRight(string(line), "\r\n")
	m := reqLineRegex.FindStringSubmatch(s)
	if m == nil {
		c.fail(400)
		return false
	}

	path, err := url.PathUnescape(m[2])
	if err != nil {
		c.fail(400)
		return false
	}

	c.req.Method = strings.ToUpper(m[1])
	c.req.Path = path
	c.req.Proto = m[4]
	if m[3] != "" {
		parseQuery(m[3], c.req.Query)
	}

	c.state = RecvHead
	return true
}

func (c *HttpContext) recvHead(buf libbuf.ByteBuffer) bool {
	line := buf.GetLine()
	if line == nil {
		if buf.Readable() > maxLineSize {
			c.fail(414)
		}
		return false
	}

	s := strings.TrimRight(string(line), "\r\n")
	if s == "" {
		c.state = RecvBody
		return true
	}

	if k, v, ok := strings.Cut(s, ": "); ok {
		c.req.Header[k] = v
	}
	return true
}

func (c *HttpContext) recvBody(buf libbuf.ByteBuffer) bool {
	if c.req.Body == nil {
		c.bodyLen = contentLength(c.req.Header)
		c.req.Body = make([]byte, 0, c.bodyLen)
	}

	remaining := c.bodyLen - len(c.req.Body)
	if remaining <= 0 {
		c.state = Over
		return false
	}

	avail := buf.Readable()
	if avail == 0 {
		return false
	}
	if avail > remaining {
		avail = remaining
	}

	chunk := make([]byte, avail)
	_, _ = buf.Read(chunk)
	c.req.Body = append(c.req.Body, chunk...)

	if len(c.req.Body) >= c.bodyLen {
		c.state = Over
	}
	return false
}

func contentLength(header map[string]string) int {
	v, ok := header["Content-Length"]
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func parseQuery(q string, out map[string]string) {
	for _, pair := range strings.Split(q, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		if dk, err := url.QueryUnescape(k); err == nil {
			k = dk
		}
		if dv, err := url.QueryUnescape(v); err == nil {
			v = dv
		}
		out[k] = v
	}
}
