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

package buffer_test

import (
	"math/rand"
	"strings"

	libbuf "github.com/nabbar/reactor/buffer"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ByteBuffer", func() {
	var b libbuf.ByteBuffer

	BeforeEach(func() {
		b = libbuf.New(0)
	})

	It("starts empty", func() {
		Expect(b.Readable()).To(Equal(0))
	})

	It("writes then reads back the same bytes", func() {
		n, err := b.Write([]byte("hello world"))
		Expect(err).To(BeNil())
		Expect(n).To(Equal(11))
		Expect(b.Readable()).To(Equal(11))

		dst := make([]byte, 11)
		n, err = b.Read(dst)
		Expect(err).To(BeNil())
		Expect(n).To(Equal(11))
		Expect(string(dst)).To(Equal("hello world"))
		Expect(b.Readable()).To(Equal(0))
	})

	It("supports partial reads that leave a remainder readable", func() {
		_, _ = b.WriteString("abcdef")

		dst := make([]byte, 3)
		n, _ := b.Read(dst)
		Expect(n).To(Equal(3))
		Expect(string(dst)).To(Equal("abc"))
		Expect(b.Readable()).To(Equal(3))
		Expect(string(b.ReadPtr())).To(Equal("def"))
	})

	It("grows on demand without losing unread data", func() {
		_, _ = b.WriteString("abc")
		_, _ = b.Read(make([]byte, 1)) // consume 'a', leaving "bc"

		// Force growth well past the small initial allocation.
		payload := strings.Repeat("x", 4096)
		_, err := b.WriteString(payload)
		Expect(err).To(BeNil())

		Expect(b.Readable()).To(Equal(2 + len(payload)))
		Expect(string(b.ReadPtr())[:2]).To(Equal("bc"))
	})

	It("compacts in place when the consumed prefix provides enough headroom", func() {
		b = libbuf.New(16)
		_, _ = b.WriteString("0123456789012345") // fills the 16-byte capacity
		_, _ = b.Read(make([]byte, 10))           // consume 10, 6 remain readable

		b.EnsureWrite(10) // 10 (freed by compaction) + 0 tail >= 10
		Expect(b.Writable()).To(BeNumerically(">=", 10))
		Expect(string(b.ReadPtr())).To(Equal("0123456789012345"[10:]))
	})

	It("extracts a line including its trailing newline", func() {
		_, _ = b.WriteString("GET / HTTP/1.1\r\n")

		line := b.GetLine()
		Expect(line).NotTo(BeNil())
		Expect(string(line)).To(Equal("GET / HTTP/1.1\r\n"))
		Expect(b.Readable()).To(Equal(0))
	})

	It("returns nil from GetLine until a newline is present", func() {
		_, _ = b.WriteString("no newline yet")
		Expect(b.GetLine()).To(BeNil())

		_, _ = b.WriteString("\n")
		line := b.GetLine()
		Expect(string(line)).To(Equal("no newline yet\n"))
	})

	It("clears both cursors without releasing storage", func() {
		_, _ = b.WriteString("data")
		b.Clear()
		Expect(b.Readable()).To(Equal(0))
		Expect(b.GetLine()).To(BeNil())
	})

	It("preserves read-then-write ordering across many random chunk sizes", func() {
		var want []byte
		var got []byte

		for i := 0; i < 200; i++ {
			chunk := make([]byte, 1+rand.Intn(37))
			for j := range chunk {
				chunk[j] = byte('a' + (i+j)%26)
			}
			want = append(want, chunk...)
			_, _ = b.Write(chunk)

			if i%3 == 0 && b.Readable() > 0 {
				dst := make([]byte, 1+rand.Intn(b.Readable()))
				n, _ := b.Read(dst)
				got = append(got, dst[:n]...)
			}
		}

		dst := make([]byte, b.Readable())
		n, _ := b.Read(dst)
		got = append(got, dst[:n]...)

		Expect(got).To(Equal(want))
	})
})
