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

package buffer

import "bytes"

type byteBuffer struct {
	buf   []byte
	read  int
	write int
}

func (b *byteBuffer) Readable() int {
	return b.write - b.read
}

func (b *byteBuffer) Writable() int {
	return len(b.buf) - b.write
}

func (b *byteBuffer) ReadPtr() []byte {
	return b.buf[b.read:b.write]
}

func (b *byteBuffer) WritePtr() []byte {
	return b.buf[b.write:]
}

func (b *byteBuffer) AdvanceRead(n int) {
	if n < 0 || n > b.Readable() {
		panic("buffer: AdvanceRead out of range")
	}

	b.read += n

	if b.read == b.write {
		b.read = 0
		b.write = 0
	}
}

func (b *byteBuffer) AdvanceWrite(n int) {
	if n < 0 || n > b.Writable() {
		panic("buffer: AdvanceWrite out of range")
	}

	b.write += n
}

// EnsureWrite compacts the already-consumed prefix out of the way first; it
// only grows the underlying storage when compaction alone cannot make room,
// and then grows to exactly write+n, never more. Typical HTTP request/
// response payloads are small and short-lived, so amortized doubling would
// only inflate steady-state footprint across many idle connections.
func (b *byteBuffer) EnsureWrite(n int) {
	if n <= 0 {
		return
	}

	if b.Writable() >= n {
		return
	}

	if b.read > 0 && b.read+b.Writable() >= n {
		copy(b.buf, b.buf[b.read:b.write])
		b.write -= b.read
		b.read = 0
		return
	}

	grown := make([]byte, b.write+n)
	copy(grown, b.buf[b.read:b.write])
	b.write -= b.read
	b.read = 0
	b.buf = grown
}

func (b *byteBuffer) Write(p []byte) (int, error) {
	b.EnsureWrite(len(p))
	n := copy(b.WritePtr(), p)
	b.AdvanceWrite(n)
	return n, nil
}

func (b *byteBuffer) WriteString(s string) (int, error) {
	b.EnsureWrite(len(s))
	n := copy(b.WritePtr(), s)
	b.AdvanceWrite(n)
	return n, nil
}

func (b *byteBuffer) Read(dst []byte) (int, error) {
	n := copy(dst, b.ReadPtr())
	b.AdvanceRead(n)
	return n, nil
}

func (b *byteBuffer) ReadString(n int) string {
	if n > b.Readable() {
		n = b.Readable()
	}

	s := string(b.buf[b.read : b.read+n])
	b.AdvanceRead(n)
	return s
}

func (b *byteBuffer) GetLine() []byte {
	i := bytes.IndexByte(b.ReadPtr(), '\n')
	if i < 0 {
		return nil
	}

	line := make([]byte, i+1)
	copy(line, b.buf[b.read:b.read+i+1])
	b.AdvanceRead(i + 1)
	return line
}

func (b *byteBuffer) Clear() {
	b.read = 0
	b.write = 0
}
