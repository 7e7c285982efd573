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
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// maxStaticPathLen bounds a request path eligible for static serving; §4.11
// rejects anything longer outright rather than stat-ing it.
const maxStaticPathLen = 2048

// StaticFiles serves files rooted at BaseDir for GET/HEAD requests whose
// path passes validation, per §4.11, with the ETag/Last-Modified additions
// of SPEC_FULL.md's §4.14.
type StaticFiles struct {
	BaseDir string
}

func isStaticPathChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	switch r {
	case '/', '-', '_', '.', '~':
		return true
	}
	return false
}

// validPath enforces §4.11's static-path rules: must start with "/", at
// most maxStaticPathLen bytes, no ".." segment, no "//", and every rune
// drawn from a restricted ASCII whitelist.
func validPath(p string) bool {
	if !strings.HasPrefix(p, "/") {
		return false
	}
	if len(p) > maxStaticPathLen {
		return false
	}
	if strings.Contains(p, "..") {
		return false
	}
	if strings.Contains(p, "//") {
		return false
	}
	for _, r := range p {
		if !isStaticPathChar(r) {
			return false
		}
	}
	return true
}

func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// Serve answers req if BaseDir is configured, the method is GET/HEAD, the
// path validates, and it resolves to a regular file under BaseDir. A nil
// return means "not a static hit" -- the caller falls through to routing.
func (s StaticFiles) Serve(req *Request) *Response {
	if s.BaseDir == "" {
		return nil
	}
	if req.Method != "GET" && req.Method != "HEAD" {
		return nil
	}
	if !validPath(req.Path) {
		return nil
	}

	rel := req.Path
	if strings.HasSuffix(rel, "/") {
		rel += "index.html"
	}

	base := filepath.Clean(s.BaseDir)
	full := filepath.Join(base, filepath.FromSlash(rel))
	if full != base && !strings.HasPrefix(full, base+string(filepath.Separator)) {
		return nil
	}

	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return nil
	}

	etag := fmt.Sprintf(`"%x-%x"`, info.Size(), info.ModTime().Unix())
	lastMod := info.ModTime().UTC().Format(http.TimeFormat)

	if inm := req.Header["If-None-Match"]; inm != "" && inm == etag {
		return notModified(etag, lastMod)
	}
	if ims := req.Header["If-Modified-Since"]; ims != "" {
		if t, err := http.ParseTime(ims); err == nil && !info.ModTime().Truncate(time.Second).After(t) {
			return notModified(etag, lastMod)
		}
	}

	resp := NewResponse(http.StatusOK)
	resp.Set("Content-Type", contentTypeFor(full))
	resp.Set("ETag", etag)
	resp.Set("Last-Modified", lastMod)

	if req.Method == "GET" {
		body, err := os.ReadFile(full)
		if err != nil {
			return NewResponse(http.StatusInternalServerError)
		}
		resp.Body = body
	}

	return resp
}

func notModified(etag, lastMod string) *Response {
	return NewResponse(http.StatusNotModified).Set("ETag", etag).Set("Last-Modified", lastMod)
}
