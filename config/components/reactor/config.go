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
	spfcbr "github.com/spf13/cobra"
)

// RegisterFlag registers CLI flags controlling the listen address and
// static file root of the reactor component, bound to this component's
// Viper key.
func (c *componentReactor) RegisterFlag(Command *spfcbr.Command) error {
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

	Command.PersistentFlags().String(key+".network", "tcp4", "listen network family (tcp, tcp4, tcp6, unix)")
	Command.PersistentFlags().String(key+".address", "", "listen address (host:port, or a path for unix)")
	Command.PersistentFlags().Int(key+".workerCount", 0, "worker loop pool size")
	Command.PersistentFlags().Int(key+".idleTimeoutSeconds", 0, "idle connection eviction timeout in seconds; 0 disables it")
	Command.PersistentFlags().String(key+".staticDir", "", "directory served for static file requests; empty disables it")

	sv := v.Viper()

	if err := sv.BindPFlag(key+".network", Command.PersistentFlags().Lookup(key+".network")); err != nil {
		return err
	}
	if err := sv.BindPFlag(key+".address", Command.PersistentFlags().Lookup(key+".address")); err != nil {
		return err
	}
	if err := sv.BindPFlag(key+".workerCount", Command.PersistentFlags().Lookup(key+".workerCount")); err != nil {
		return err
	}
	if err := sv.BindPFlag(key+".idleTimeoutSeconds", Command.PersistentFlags().Lookup(key+".idleTimeoutSeconds")); err != nil {
		return err
	}
	if err := sv.BindPFlag(key+".staticDir", Command.PersistentFlags().Lookup(key+".staticDir")); err != nil {
		return err
	}

	return nil
}
