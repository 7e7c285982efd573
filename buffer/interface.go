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

// Package buffer provides ByteBuffer, the contiguous byte store used by
// Connection and the HTTP parser to accumulate inbound/outbound bytes
// between non-blocking poller wake-ups.
//
// A ByteBuffer is a single growable slice with two cursors, read and write,
// such that 0 <= read <= write <= cap(storage). Both move back to zero when
// the buffer drains or is compacted or cleared.
// Bytes in [read, write) are readable; bytes in [write, cap) are writable
// headroom. It is not safe for concurrent use: callers (the owning
// EventLoop) serialize access.
package buffer

// ByteBuffer is a growable byte-stream with independent read and write
// cursors. Unlike bytes.Buffer it never discards consumed bytes implicitly:
// callers observe readPtr/writePtr directly, which the HTTP parser needs to
// re-scan a partial line across poller wake-ups without copying.
type ByteBuffer interface {
	// Readable returns the number of bytes available to Read: writePtr - readPtr.
	Readable() int

	// Writable returns the remaining headroom: cap(storage) - writePtr.
	Writable() int

	// ReadPtr returns the slice of bytes currently readable, [read, write).
	// The returned slice aliases the buffer's storage and is invalidated by
	// any subsequent call that mutates the buffer.
	ReadPtr() []byte

	// WritePtr returns the writable headroom, [write, cap). The returned
	// slice aliases the buffer's storage; callers write into it directly and
	// then call AdvanceWrite with the number of bytes actually written.
	WritePtr() []byte

	// AdvanceRead moves the read cursor forward by n bytes. n must not
	// exceed Readable(); it panics otherwise.
	AdvanceRead(n int)

	// AdvanceWrite moves the write cursor forward by n bytes. n must not
	// exceed Writable(); it panics otherwise.
	AdvanceWrite(n int)

	// EnsureWrite guarantees Writable() >= n, compacting in place if the
	// already-consumed prefix plus existing headroom suffices, or growing
	// the underlying storage to exactly write+n bytes otherwise. It never
	// doubles capacity speculatively.
	EnsureWrite(n int)

	// Write appends p to the buffer, growing as required by EnsureWrite, and
	// returns len(p), nil.
	Write(p []byte) (int, error)

	// WriteString is Write for a string, without an intermediate []byte copy
	// beyond what the append requires.
	WriteString(s string) (int, error)

	// Read copies up to len(dst) readable bytes into dst and advances the
	// read cursor by the number copied. It returns 0, nil if no bytes are
	// currently readable (never io.EOF: a ByteBuffer has no end-of-stream).
	Read(dst []byte) (int, error)

	// ReadString consumes and returns up to n readable bytes as a string. If
	// fewer than n bytes are readable, it returns all of them.
	ReadString(n int) string

	// GetLine scans the readable region for '\n'. If found, it returns the
	// full line including the trailing newline and advances the read cursor
	// past it. If not found, it returns nil without consuming anything.
	GetLine() []byte

	// Clear resets both cursors to zero without releasing the underlying
	// storage.
	Clear()
}

// New returns an empty ByteBuffer with the given initial capacity. A
// capacity of 0 is valid; the first EnsureWrite grows it on demand.
func New(initialCapacity int) ByteBuffer {
	if initialCapacity < 0 {
		initialCapacity = 0
	}
	return &byteBuffer{
		buf: make([]byte, initialCapacity),
	}
}
