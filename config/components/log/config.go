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

package log

import (
	spfcbr "github.com/spf13/cobra"
)

// RegisterFlag registers CLI flags controlling the trace/stdout behavior of
// the log component, bound to this component's Viper key.
func (c *componentLog) RegisterFlag(Command *spfcbr.Command) error {
	c.mu.Lock()
	key := c.key
	vpr := c.vpr
	c.mu.Unlock()

	if len(key) < 1 || vpr == nil {
		return ErrorComponentNotInitialized.Error(nil)
	}

	v := vpr()
	if v == nil {
		return ErrorComponentNotInitialized.Error(nil)
	}

	Command.PersistentFlags().Bool(key+".stdout.disableStandard", false, "disable writing log to standard output stdout/stderr")
	Command.PersistentFlags().Bool(key+".stdout.enableTrace", true, "add the origin caller/file/line to each message")
	Command.PersistentFlags().String(key+".traceFilter", "", "path prefix to strip from trace file paths")

	sv := v.Viper()

	if err := sv.BindPFlag(key+".stdout.disableStandard", Command.PersistentFlags().Lookup(key+".stdout.disableStandard")); err != nil {
		return err
	}
	if err := sv.BindPFlag(key+".stdout.enableTrace", Command.PersistentFlags().Lookup(key+".stdout.enableTrace")); err != nil {
		return err
	}
	if err := sv.BindPFlag(key+".traceFilter", Command.PersistentFlags().Lookup(key+".traceFilter")); err != nil {
		return err
	}

	return nil
}
