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

// Package protocol describes the network protocol/address family accepted by
// listeners and dialers: the wire value carried in configuration files,
// viper keys and the tcpsrv.Config.Network field.
package protocol

import "strings"

// NetworkProtocol is the address family / socket type used by a Listener or
// a dial operation. Its zero value, NetworkEmpty, means "unset".
type NetworkProtocol uint8

const (
	NetworkEmpty NetworkProtocol = iota
	NetworkUnix
	NetworkTCP
	NetworkTCP4
	NetworkTCP6
	NetworkUDP
	NetworkUDP4
	NetworkUDP6
	NetworkIP
	NetworkIP4
	NetworkIP6
	NetworkUnixGram
)

// String returns the lowercase wire name of the protocol, or "" if the
// protocol is NetworkEmpty or not a recognized value.
func (p NetworkProtocol) String() string {
	switch p {
	case NetworkUnix:
		return "unix"
	case NetworkTCP:
		return "tcp"
	case NetworkTCP4:
		return "tcp4"
	case NetworkTCP6:
		return "tcp6"
	case NetworkUDP:
		return "udp"
	case NetworkUDP4:
		return "udp4"
	case NetworkUDP6:
		return "udp6"
	case NetworkIP:
		return "ip"
	case NetworkIP4:
		return "ip4"
	case NetworkIP6:
		return "ip6"
	case NetworkUnixGram:
		return "unixgram"
	default:
		return ""
	}
}

// Code is an alias of String, kept for symmetry with other enum-like types
// of this library that distinguish a display code from a display label.
func (p NetworkProtocol) Code() string {
	return p.String()
}

// Int returns the raw integer value of the protocol, or 0 if it is not a
// recognized value.
func (p NetworkProtocol) Int() int {
	if p.String() == "" {
		return 0
	}
	return int(p)
}

// Int64 is Int as an int64.
func (p NetworkProtocol) Int64() int64 {
	return int64(p.Int())
}

// Uint is Int as a uint.
func (p NetworkProtocol) Uint() uint {
	return uint(p.Int())
}

// Uint64 is Int as a uint64.
func (p NetworkProtocol) Uint64() uint64 {
	return uint64(p.Int())
}

// normalize trims surrounding whitespace and a single layer of quoting
// (single quotes, then double quotes, then backticks) and lower-cases the
// result so lookups are case-insensitive.
func normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "'")
	s = strings.Trim(s, "\"")
	s = strings.Trim(s, "`")
	return strings.ToLower(s)
}

// Parse converts a wire name to a NetworkProtocol. Unknown or empty input
// yields NetworkEmpty; it never panics.
func Parse(s string) NetworkProtocol {
	switch normalize(s) {
	case "unix":
		return NetworkUnix
	case "tcp":
		return NetworkTCP
	case "tcp4":
		return NetworkTCP4
	case "tcp6":
		return NetworkTCP6
	case "udp":
		return NetworkUDP
	case "udp4":
		return NetworkUDP4
	case "udp6":
		return NetworkUDP6
	case "ip":
		return NetworkIP
	case "ip4":
		return NetworkIP4
	case "ip6":
		return NetworkIP6
	case "unixgram":
		return NetworkUnixGram
	default:
		return NetworkEmpty
	}
}

// ParseBytes is Parse for a byte slice. It does not strip trailing NUL
// bytes: a NUL-terminated C string must be trimmed by the caller.
func ParseBytes(b []byte) NetworkProtocol {
	if len(b) == 0 {
		return NetworkEmpty
	}
	return Parse(string(b))
}

// ParseInt64 maps a numeric protocol code back to a NetworkProtocol.
// Values outside [1, 11] (including 0 and negatives) yield NetworkEmpty.
func ParseInt64(i int64) NetworkProtocol {
	if i < int64(NetworkUnix) || i > int64(NetworkUnixGram) {
		return NetworkEmpty
	}
	return NetworkProtocol(i)
}
