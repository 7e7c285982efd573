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
	"regexp"
	"strings"
	"sync"
)

type route struct {
	pattern *regexp.Regexp
	handler Handler
}

// Router holds one ordered route list per method. Registration appends;
// dispatch scans in insertion order and invokes the first match, per
// §4.11. It is safe for concurrent registration/dispatch since routes are
// typically registered once at startup and dispatched from many worker
// loops afterward.
type Router struct {
	mu     sync.RWMutex
	routes map[string][]route
}

// NewRouter returns an empty route table.
func NewRouter() *Router {
	return &Router{routes: make(map[string][]route)}
}

// Handle appends a (pattern, handler) pair to method's route list. pattern
// is compiled as a Go regexp and matched against the full request path.
func (r *Router) Handle(method, pattern string, h Handler) {
	re := regexp.MustCompile(pattern)
	method = strings.ToUpper(method)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[method] = append(r.routes[method], route{pattern: re, handler: h})
}

// Dispatch scans method's route list in registration order and invokes the
// first match, storing capture groups on req.Matches. A nil return means
// no route matched.
func (r *Router) Dispatch(req *Request) *Response {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rt := range r.routes[req.Method] {
		if m := rt.pattern.FindStringSubmatch(req.Path); m != nil {
			req.Matches = m
			return rt.handler(req)
		}
	}
	return nil
}
