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
	"net/http"

	libbuf "github.com/nabbar/reactor/buffer"
	libtcp "github.com/nabbar/reactor/tcpsrv"
)

// Server is the per-connection lifecycle glue of §4.11: it attaches a fresh
// HttpContext on connect, drives the parser on every message, routes
// static hits before dynamic routes, and frames/sends the response.
type Server struct {
	Router *Router
	Static StaticFiles
	ErrFn  ErrorHandler
}

// NewServer returns a Server with an empty route table and the default
// HTML error page renderer.
func NewServer() *Server {
	return &Server{
		Router: NewRouter(),
		ErrFn:  defaultErrorHandler,
	}
}

// Handle registers a route the same way Router.Handle does; provided as a
// convenience so callers don't need to reach through Server.Router.
func (s *Server) Handle(method, pattern string, h Handler) {
	s.Router.Handle(method, pattern, h)
}

// Attach wires this Server onto srv's connected/message callbacks. It does
// not start srv; the caller still calls srv.Start().
func (s *Server) Attach(srv libtcp.TcpServer) {
	srv.OnConnected(func(c libtcp.Connection) {
		c.SetContext(NewHttpContext())
	})
	srv.OnMessage(func(c libtcp.Connection, buf libbuf.ByteBuffer) {
		s.onMessage(c, buf)
	})
}

// onMessage drives the parser per §4.11: while the buffer is readable,
// fetch the context, step the parser, and either answer an error, wait for
// more bytes, or route and respond -- possibly repeating for a pipelined
// next request on the same buffer.
func (s *Server) onMessage(c libtcp.Connection, buf libbuf.ByteBuffer) {
	for buf.Readable() > 0 {
		ctx, ok := c.Context().(*HttpContext)
		if !ok {
			ctx = NewHttpContext()
			c.SetContext(ctx)
		}

		ctx.Parse(buf)

		if ctx.Status() >= 400 {
			s.respondError(c, ctx)
			return
		}

		if ctx.State() != Over {
			return
		}

		if !s.respond(c, ctx) {
			return
		}
	}
}

// respond routes ctx's request, emits the framed response, and reports
// whether the connection should keep being fed (true) or has been shut
// down (false).
func (s *Server) respond(c libtcp.Connection, ctx *HttpContext) bool {
	req := ctx.Request()

	resp := s.Static.Serve(req)
	if resp == nil {
		resp = s.Router.Dispatch(req)
	}
	if resp == nil {
		resp = NewResponse(http.StatusNotFound)
	}

	keepAlive := requestWantsKeepAlive(req)
	send(c, resp, keepAlive)
	ctx.Reset()

	if closeHdr, _ := resp.Get("Connection"); !keepAlive || eqFold(closeHdr, "close") {
		c.Shutdown()
		return false
	}
	return true
}

// respondError renders the error page for ctx's latched 4xx status, sends
// it, resets ctx, and shuts the connection down: a protocol error always
// ends the connection, per §7.
func (s *Server) respondError(c libtcp.Connection, ctx *HttpContext) {
	resp := s.ErrFn(ctx.Status(), ctx.Request())
	send(c, resp, false)
	ctx.Reset()
	c.Shutdown()
}

func send(c libtcp.Connection, resp *Response, keepAlive bool) {
	out := libbuf.New(256)
	writeResponse(out, resp, keepAlive)
	c.Send(out.ReadPtr())
}

func defaultErrorHandler(status int, _ *Request) *Response {
	reason := reasonPhrase(status)
	body := fmt.Sprintf("<html><body><h1>%d %s</h1></body></html>", status, reason)

	resp := NewResponse(status)
	resp.Set("Content-Type", "text/html; charset=utf-8")
	resp.Body = []byte(body)
	return resp
}
