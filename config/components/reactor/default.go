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

package reactor

import (
	"bytes"
	"encoding/json"
)

var defaultConfig = []byte(`{
  "network": "tcp4",
  "address": "0.0.0.0:8080",
  "backlog": 128,
  "workerCount": 0,
  "idleTimeoutSeconds": 0,
  "staticDir": ""
}`)

// SetDefaultConfig overrides the JSON document returned by DefaultConfig.
func SetDefaultConfig(cfg []byte) {
	defaultConfig = cfg
}

func (c *componentReactor) DefaultConfig(indent string) []byte {
	var buf bytes.Buffer

	if err := json.Indent(&buf, defaultConfig, "", indent); err != nil {
		return defaultConfig
	}

	return buf.Bytes()
}
