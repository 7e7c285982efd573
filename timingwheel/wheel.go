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

package timingwheel

import (
	"container/list"
	"time"
)

// task is the shared record behind one id. gen is the "rotations counter"
// discipline from the wheel's refresh contract: only the slot item whose
// gen matches task.gen at expiry time is the live one; older items for the
// same id are stale and are discarded without running fn.
type task struct {
	id       uint64
	delay    int // in ticks, already clamped to [1, Slots]
	fn       func()
	canceled bool
	gen      uint64
}

// item is one slot's reference to a task as of the gen it was deposited
// with.
type item struct {
	t   *task
	gen uint64
}

type wheel struct {
	tick  int
	slots [Slots]*list.List
	tasks map[uint64]*task
}

func newWheel() *wheel {
	w := &wheel{
		tasks: make(map[uint64]*task),
	}
	for i := range w.slots {
		w.slots[i] = list.New()
	}
	return w
}

func clampDelay(delay time.Duration) int {
	ticks := int(delay / time.Second)
	if delay%time.Second != 0 {
		ticks++
	}
	if ticks < 1 {
		ticks = 1
	}
	if ticks > Slots {
		ticks = Slots
	}
	return ticks
}

func (w *wheel) Add(id uint64, delay time.Duration, fn func()) error {
	if fn == nil {
		return ErrorTaskFuncNil.Error(nil)
	}

	ticks := clampDelay(delay)
	t := &task{id: id, delay: ticks, fn: fn, gen: 1}
	w.tasks[id] = t

	slot := (w.tick + ticks) % Slots
	w.slots[slot].PushBack(&item{t: t, gen: t.gen})

	return nil
}

func (w *wheel) Refresh(id uint64) error {
	t, ok := w.tasks[id]
	if !ok {
		return ErrorTaskUnknown.Error(nil)
	}
	if t.canceled {
		return ErrorTaskCanceled.Error(nil)
	}

	t.gen++
	slot := (w.tick + t.delay) % Slots
	w.slots[slot].PushBack(&item{t: t, gen: t.gen})

	return nil
}

func (w *wheel) Cancel(id uint64) {
	if t, ok := w.tasks[id]; ok {
		t.canceled = true
	}
}

func (w *wheel) Advance() {
	w.tick = (w.tick + 1) % Slots

	bucket := w.slots[w.tick]
	w.slots[w.tick] = list.New()

	for e := bucket.Front(); e != nil; e = e.Next() {
		it := e.Value.(*item)

		live, ok := w.tasks[it.t.id]
		if !ok || live != it.t || it.gen != it.t.gen {
			continue
		}

		delete(w.tasks, it.t.id)

		if !it.t.canceled {
			it.t.fn()
		}
	}
}

func (w *wheel) Count() int {
	return len(w.tasks)
}

func (w *wheel) Tick() int {
	return w.tick
}
