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
	"fmt"

	cfgtps "github.com/nabbar/reactor/config/types"
	liberr "github.com/nabbar/reactor/errors"
	logcfg "github.com/nabbar/reactor/logger/config"
)

func (c *componentLog) getConfig() (*logcfg.Options, liberr.Error) {
	c.mu.Lock()
	vpr := c.vpr
	key := c.key
	c.mu.Unlock()

	if vpr == nil || len(key) < 1 {
		return nil, ErrorComponentNotInitialized.Error(nil)
	}

	v := vpr()
	if v == nil || !v.IsSet(key) {
		return nil, ErrorConfigMissing.Error(fmt.Errorf("missing config key '%s'", key))
	}

	var opt logcfg.Options
	if e := v.UnmarshalKey(key, &opt); e != nil {
		return nil, ErrorConfigInvalid.Error(e)
	}

	return &opt, nil
}

func (c *componentLog) run(before, after cfgtps.FuncCptEvent) error {
	if before != nil {
		if err := before(c); err != nil {
			return ErrorConfigInvalid.Error(err)
		}
	}

	opt, err := c.getConfig()
	if err != nil {
		return err
	}

	c.mu.Lock()
	l := c.lockedLog()
	if e := l.SetOptions(opt); e != nil {
		c.mu.Unlock()
		return ErrorConfigInvalid.Error(e)
	}
	c.l = l
	c.started = true
	c.mu.Unlock()

	if after != nil {
		if ea := after(c); ea != nil {
			return ErrorConfigInvalid.Error(ea)
		}
	}

	return nil
}

func (c *componentLog) Start() error {
	c.mu.Lock()
	fsb, fsa := c.fsb, c.fsa
	c.mu.Unlock()

	return c.run(fsb, fsa)
}

func (c *componentLog) Reload() error {
	c.mu.Lock()
	frb, fra := c.frb, c.fra
	c.mu.Unlock()

	return c.run(frb, fra)
}

func (c *componentLog) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.started = false
}
