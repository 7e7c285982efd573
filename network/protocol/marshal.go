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

package protocol

import "fmt"

// MarshalJSON renders the protocol as a quoted wire name; NetworkEmpty and
// unrecognized values render as "".
func (p NetworkProtocol) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// UnmarshalJSON accepts a quoted wire name, case-insensitively.
func (p *NetworkProtocol) UnmarshalJSON(b []byte) error {
	*p = Parse(string(b))
	return nil
}

// MarshalYAML renders the protocol as a plain scalar string.
func (p NetworkProtocol) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

// MarshalTOML renders the protocol as a bare (unquoted) string value.
func (p NetworkProtocol) MarshalTOML() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalTOML accepts either a string or a []byte scalar; any other type
// is rejected.
func (p *NetworkProtocol) UnmarshalTOML(v interface{}) error {
	switch t := v.(type) {
	case []byte:
		*p = Parse(string(t))
		return nil
	case string:
		*p = Parse(t)
		return nil
	default:
		return fmt.Errorf("value '%v' is not in valid format for a network protocol", v)
	}
}

// MarshalText renders the protocol as its wire name.
func (p NetworkProtocol) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText accepts a wire name, case-insensitively.
func (p *NetworkProtocol) UnmarshalText(b []byte) error {
	*p = Parse(string(b))
	return nil
}

// MarshalCBOR renders the protocol as its raw wire name bytes.
func (p NetworkProtocol) MarshalCBOR() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalCBOR accepts the raw wire name bytes, case-insensitively.
func (p *NetworkProtocol) UnmarshalCBOR(b []byte) error {
	*p = Parse(string(b))
	return nil
}
