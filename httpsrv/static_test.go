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

package httpsrv_test

import (
	"os"
	"path/filepath"

	. "github.com/nabbar/reactor/httpsrv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func newReq(method, path string) *Request {
	return &Request{Method: method, Path: path, Header: map[string]string{}, Query: map[string]string{}}
}

var _ = Describe("StaticFiles", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("hi there"), 0o644)).To(Succeed())
		Expect(os.Mkdir(filepath.Join(dir, "sub"), 0o755)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(dir, "sub", "index.html"), []byte("<p>idx</p>"), 0o644)).To(Succeed())
	})

	It("serves a regular file with Content-Type and ETag", func() {
		sf := StaticFiles{BaseDir: dir}
		resp := sf.Serve(newReq("GET", "/hello.txt"))
		Expect(resp).ToNot(BeNil())
		Expect(resp.Code).To(Equal(200))
		Expect(string(resp.Body)).To(Equal("hi there"))
		ct, _ := resp.Get("Content-Type")
		Expect(ct).To(ContainSubstring("text/plain"))
		etag, ok := resp.Get("ETag")
		Expect(ok).To(BeTrue())
		Expect(etag).ToNot(BeEmpty())
	})

	It("appends index.html for a directory-style path", func() {
		sf := StaticFiles{BaseDir: dir}
		resp := sf.Serve(newReq("GET", "/sub/"))
		Expect(resp).ToNot(BeNil())
		Expect(string(resp.Body)).To(Equal("<p>idx</p>"))
	})

	It("returns nil (falls through) on a path-traversal attempt", func() {
		sf := StaticFiles{BaseDir: dir}
		Expect(sf.Serve(newReq("GET", "/../hello.txt"))).To(BeNil())
	})

	It("returns nil for a non-GET/HEAD method", func() {
		sf := StaticFiles{BaseDir: dir}
		Expect(sf.Serve(newReq("POST", "/hello.txt"))).To(BeNil())
	})

	It("returns nil when no base directory is configured", func() {
		sf := StaticFiles{}
		Expect(sf.Serve(newReq("GET", "/hello.txt"))).To(BeNil())
	})

	It("answers 304 when If-None-Match matches the current ETag", func() {
		sf := StaticFiles{BaseDir: dir}
		first := sf.Serve(newReq("GET", "/hello.txt"))
		etag, _ := first.Get("ETag")

		req := newReq("GET", "/hello.txt")
		req.Header["If-None-Match"] = etag
		second := sf.Serve(req)
		Expect(second.Code).To(Equal(304))
		Expect(second.Body).To(BeEmpty())
	})
})
