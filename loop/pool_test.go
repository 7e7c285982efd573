//go:build linux

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

package loop_test

import (
	"time"

	libloop "github.com/nabbar/reactor/loop"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LoopThreadPool", func() {
	var (
		base libloop.EventLoop
		pool libloop.LoopThreadPool
	)

	BeforeEach(func() {
		var err error
		base, err = libloop.New(nil)
		Expect(err).To(BeNil())
		go base.Start()
		Eventually(base.IsRunning, time.Second).Should(BeTrue())

		pool = libloop.NewLoopThreadPool(base, nil)
	})

	AfterEach(func() {
		pool.Stop()
		base.Quit()
		Eventually(base.IsRunning, time.Second).Should(BeFalse())
	})

	It("returns the base loop when no workers are configured", func() {
		Expect(pool.Start(nil)).To(BeNil())
		Expect(pool.NextLoop()).To(Equal(base))
		Expect(pool.LoopForHash(123)).To(Equal(base))
	})

	It("round-robins across configured workers", func() {
		pool.SetThreadCount(3)
		Expect(pool.Start(nil)).To(BeNil())

		seen := map[libloop.EventLoop]int{}
		for i := 0; i < 6; i++ {
			seen[pool.NextLoop()]++
		}
		Expect(seen).To(HaveLen(3))
		for _, c := range seen {
			Expect(c).To(Equal(2))
		}
	})

	It("hashes the same key to the same worker", func() {
		pool.SetThreadCount(4)
		Expect(pool.Start(nil)).To(BeNil())

		a := pool.LoopForHash(7)
		b := pool.LoopForHash(7)
		Expect(a).To(Equal(b))
	})

	It("runs the per-loop init callback once per worker, in order", func() {
		pool.SetThreadCount(2)

		var inits []libloop.EventLoop
		Expect(pool.Start(func(l libloop.EventLoop) {
			inits = append(inits, l)
		})).To(BeNil())

		Expect(inits).To(HaveLen(2))
	})

	It("is idempotent to stop after start", func() {
		pool.SetThreadCount(2)
		Expect(pool.Start(nil)).To(BeNil())
		pool.Stop()
		pool.Stop()
	})
})
