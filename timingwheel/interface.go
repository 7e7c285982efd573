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

// Package timingwheel implements a hashed timer wheel of N=60 one-second
// slots. It is not safe for concurrent use: every public entry point is
// meant to be invoked only from the single goroutine that owns the wheel
// (an EventLoop forwards TimerAdd/TimerRefresh/TimerCancel via RunInLoop).
package timingwheel

import "time"

// Slots is the fixed slot count; the maximum representable delay is
// Slots ticks (60s at the canonical 1s tick cadence).
const Slots = 60

// Wheel schedules one-shot tasks on a ring of Slots one-second buckets.
type Wheel interface {
	// Add places fn into slot (tick+delay) mod Slots under id, clamping
	// delay to [1, Slots] ticks. A pre-existing id is replaced: the
	// previously enrolled task is left in its slot but becomes a stale
	// entry that fires as a no-op when its slot is reached.
	Add(id uint64, delay time.Duration, fn func()) error

	// Refresh deposits an additional reference to id's task into slot
	// (tick+delay) mod Slots, using the delay it was last added or
	// refreshed with. Returns an error if id is unknown or canceled.
	Refresh(id uint64) error

	// Cancel flags id's task as canceled; it will not run at its next
	// destruction (slot expiry), whichever slot currently holds it.
	Cancel(id uint64)

	// Advance moves the tick forward by one slot, running (or discarding,
	// if stale or canceled) every task that slot holds.
	Advance()

	// Tick returns the current tick index, in [0, Slots).
	Tick() int

	// Count returns the number of tasks currently enrolled (added or
	// refreshed but not yet fired, canceled tasks still included until
	// their slot is reached). Meant for metrics sampling from the owning
	// goroutine only, like every other method on Wheel.
	Count() int
}

// New constructs an empty Wheel positioned at tick 0.
func New() Wheel {
	return newWheel()
}
