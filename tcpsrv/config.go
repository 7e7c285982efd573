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

package tcpsrv

import (
	libptc "github.com/nabbar/reactor/network/protocol"
)

// DefaultBacklog is the listen backlog used when Config.Backlog is zero.
const DefaultBacklog = 128

// Config describes a TcpServer's bind address and worker topology. Network
// defaults to NetworkTCP4 (the "0.0.0.0 over IPv4" default) when left at
// its zero value.
type Config struct {
	// Network selects the address family/protocol to bind; only the TCP
	// family values are meaningful here (NetworkTCP, NetworkTCP4,
	// NetworkTCP6, NetworkUnix).
	Network libptc.NetworkProtocol

	// Address is a host:port pair for TCP families, or a filesystem path
	// for NetworkUnix.
	Address string

	// Backlog is the listen() backlog; DefaultBacklog if zero or negative.
	Backlog int

	// WorkerCount is the number of worker loops in the pool; the base
	// loop alone handles connections if zero.
	WorkerCount int

	// ConIdleTimeoutSeconds enables enableInactiveRelease on every newly
	// established connection when non-zero.
	ConIdleTimeoutSeconds int
}

func (c Config) networkOrDefault() libptc.NetworkProtocol {
	if c.Network == libptc.NetworkEmpty {
		return libptc.NetworkTCP4
	}
	return c.Network
}

func (c Config) backlogOrDefault() int {
	if c.Backlog <= 0 {
		return DefaultBacklog
	}
	return c.Backlog
}

// Validate reports whether the configuration can be bound: Address must be
// non-empty and Network must be one of the TCP family values.
func (c Config) Validate() error {
	if c.Address == "" {
		return ErrorConfigAddressEmpty.Error(nil)
	}

	switch c.networkOrDefault() {
	case libptc.NetworkTCP, libptc.NetworkTCP4, libptc.NetworkTCP6, libptc.NetworkUnix:
		return nil
	default:
		return ErrorConfigNetworkInvalid.Error(nil)
	}
}
