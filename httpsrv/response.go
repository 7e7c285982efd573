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
	"net/http"
	"strconv"
	"strings"

	libbuf "github.com/nabbar/reactor/buffer"
)

func eqFold(a, b string) bool {
	return strings.EqualFold(a, b)
}

// reasonPhrase is the status table collaborator from §6, grounded on
// net/http.StatusText and defaulting to "Unknown" for codes it doesn't know.
func reasonPhrase(code int) string {
	if r := http.StatusText(code); r != "" {
		return r
	}
	return "Unknown"
}

// requestWantsKeepAlive implements §4.11's keep-alive defaulting: HTTP/1.1
// defaults to keep-alive unless Connection: close; HTTP/1.0 defaults to
// close unless Connection: keep-alive.
func requestWantsKeepAlive(req *Request) bool {
	conn := strings.ToLower(strings.TrimSpace(req.Header["Connection"]))
	switch conn {
	case "close":
		return false
	case "keep-alive":
		return true
	default:
		return strings.HasSuffix(req.Proto, "1.1")
	}
}

// writeResponse serializes resp onto out, filling in the framing headers
// deterministically per §4.11: Connection, Content-Length always,
// Content-Type if the body is non-empty and unset. Headers are emitted in
// iteration order, then a blank line, then the body.
func writeResponse(out libbuf.ByteBuffer, resp *Response, keepAlive bool) {
	if _, ok := resp.Get("Content-Type"); !ok && len(resp.Body) > 0 {
		resp.Set("Content-Type", "application/octet-stream")
	}
	if _, ok := resp.Get("Connection"); !ok {
		if keepAlive {
			resp.Set("Connection", "keep-alive")
		} else {
			resp.Set("Connection", "close")
		}
	}
	resp.Set("Content-Length", strconv.Itoa(len(resp.Body)))

	_, _ = out.WriteString("HTTP/1.1 " + strconv.Itoa(resp.Code) + " " + reasonPhrase(resp.Code) + "\r\n")
	for _, h := range resp.Header {
		_, _ = out.WriteString(h.Key + ": " + h.Value + "\r\n")
	}
	_, _ = out.WriteString("\r\n")
	_, _ = out.Write(resp.Body)
}
