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

// Package metrics exposes a TcpServer's connection/byte/timer activity as
// Prometheus collectors. A Collector is disabled simply by never being
// created: every mutator method returns immediately on a nil receiver, so
// call sites invoke them without a nil check of their own and a *Collector
// is entirely optional plumbing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds five metrics (active connections, accepted connections,
// bytes in, bytes out, timer-wheel active tasks), registered on a private
// prometheus.Registry rather than the global
// default one, so that multiple Collector instances (one per TcpServer, as
// tests routinely construct) never collide with a duplicate-registration
// panic the way prometheus.MustRegister against the default registry
// would.
type Collector struct {
	reg *prometheus.Registry

	connectionsActive   prometheus.Gauge
	connectionsAccepted prometheus.Counter
	bytesIn             prometheus.Counter
	bytesOut            prometheus.Counter
	timerActiveTasks    prometheus.Gauge
}

// New constructs a Collector with all metrics registered under namespace
// (e.g. "reactor"). namespace may be empty.
func New(namespace string) *Collector {
	c := &Collector{
		reg: prometheus.NewRegistry(),
		connectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections_active",
			Help:      "Number of currently open TCP connections.",
		}),
		connectionsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_accepted_total",
			Help:      "Total number of TCP connections accepted.",
		}),
		bytesIn: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_in_total",
			Help:      "Total number of bytes read from peers.",
		}),
		bytesOut: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_out_total",
			Help:      "Total number of bytes written to peers.",
		}),
		timerActiveTasks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "timer_active_tasks",
			Help:      "Number of tasks currently enrolled in the base loop's timer wheel.",
		}),
	}

	c.reg.MustRegister(c.connectionsActive, c.connectionsAccepted, c.bytesIn, c.bytesOut, c.timerActiveTasks)

	return c
}

// Handler returns an http.Handler exposing the collected metrics in the
// Prometheus exposition format, suitable for registration as a route on an
// httpsrv.Server or any other http.Handler-based mux.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// ConnectionAccepted records a newly accepted connection: bumps the
// accepted-total counter and the active-connections gauge.
func (c *Collector) ConnectionAccepted() {
	if c == nil {
		return
	}
	c.connectionsAccepted.Inc()
	c.connectionsActive.Inc()
}

// ConnectionClosed decrements the active-connections gauge.
func (c *Collector) ConnectionClosed() {
	if c == nil {
		return
	}
	c.connectionsActive.Dec()
}

// AddBytesIn adds n to the bytes-in counter.
func (c *Collector) AddBytesIn(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.bytesIn.Add(float64(n))
}

// AddBytesOut adds n to the bytes-out counter.
func (c *Collector) AddBytesOut(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.bytesOut.Add(float64(n))
}

// SetActiveTimers sets the timer-wheel active-task gauge to n.
func (c *Collector) SetActiveTimers(n int) {
	if c == nil {
		return
	}
	c.timerActiveTasks.Set(float64(n))
}
