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

// Package config provides the application lifecycle container: a registry of
// named components (cfgtps.Component) that are started, reloaded and stopped
// together, in dependency order, with a shared context, a shared Viper
// instance and a shared default logger.
package config

import (
	"context"
	"sync/atomic"

	cfgtps "github.com/nabbar/reactor/config/types"
	libatm "github.com/nabbar/reactor/atomic"
	libctx "github.com/nabbar/reactor/context"
	libver "github.com/nabbar/reactor/version"
	libvpr "github.com/nabbar/reactor/viper"
)

const (
	fctLoggerDef     = "default-logger"
	fctViper         = "viper"
	fctVersion       = "version"
	fctStartBefore   = "start-before"
	fctStartAfter    = "start-after"
	fctReloadBefore  = "reload-before"
	fctReloadAfter   = "reload-after"
	fctStopBefore    = "stop-before"
	fctStopAfter     = "stop-after"
)

// model is the concrete implementation of Config.
type model struct {
	ctx libctx.Config[string]
	stp context.CancelFunc
	cnl libatm.MapTyped[uint64, context.CancelFunc]
	seq atomic.Uint64

	cpt libatm.MapTyped[string, cfgtps.Component]
	fct libatm.Map[string]
}

// New returns a new, empty Config bound to the given parent context and
// carrying the given version information.
func New(ctx context.Context, vrs libver.Version) Config {
	if ctx == nil {
		ctx = context.Background()
	}

	x, cnl := context.WithCancel(ctx)

	o := &model{
		ctx: libctx.New[string](x),
		stp: cnl,
		cnl: libatm.NewMapTyped[uint64, context.CancelFunc](),
		cpt: libatm.NewMapTyped[string, cfgtps.Component](),
		fct: libatm.NewMapAny[string](),
	}

	o.fct.Store(fctVersion, vrs)

	go o.watch(x)

	return o
}

// watch blocks until the internal context is cancelled, then runs the
// registered cancellation handlers and stops every component.
func (o *model) watch(ctx context.Context) {
	<-ctx.Done()
	o.cancel()
}

func (o *model) getVersion() libver.Version {
	if i, l := o.fct.Load(fctVersion); !l {
		return nil
	} else if v, k := i.(libver.Version); !k {
		return nil
	} else {
		return v
	}
}

// RegisterFuncViper registers the Viper provider function used to configure
// every component. It must be called before ComponentSet for components that
// read their configuration from Viper.
func (o *model) RegisterFuncViper(fct libvpr.FuncViper) {
	o.fct.Store(fctViper, fct)
}

func (o *model) getViper() libvpr.Viper {
	if i, l := o.fct.Load(fctViper); !l {
		return nil
	} else if v, k := i.(libvpr.FuncViper); !k || v == nil {
		return nil
	} else {
		return v()
	}
}

// RegisterFuncStartBefore registers a hook to run before any component is started.
func (o *model) RegisterFuncStartBefore(fct func() error) {
	o.fct.Store(fctStartBefore, fct)
}

// RegisterFuncStartAfter registers a hook to run after all components have started.
func (o *model) RegisterFuncStartAfter(fct func() error) {
	o.fct.Store(fctStartAfter, fct)
}

// RegisterFuncReloadBefore registers a hook to run before any component is reloaded.
func (o *model) RegisterFuncReloadBefore(fct func() error) {
	o.fct.Store(fctReloadBefore, fct)
}

// RegisterFuncReloadAfter registers a hook to run after all components have reloaded.
func (o *model) RegisterFuncReloadAfter(fct func() error) {
	o.fct.Store(fctReloadAfter, fct)
}

// RegisterFuncStopBefore registers a hook to run before any component is stopped.
func (o *model) RegisterFuncStopBefore(fct func()) {
	o.fct.Store(fctStopBefore, fct)
}

// RegisterFuncStopAfter registers a hook to run after all components have stopped.
func (o *model) RegisterFuncStopAfter(fct func()) {
	o.fct.Store(fctStopAfter, fct)
}

func (o *model) runFuncStartBefore() error { return o.runErrFunc(fctStartBefore) }
func (o *model) runFuncStartAfter() error  { return o.runErrFunc(fctStartAfter) }
func (o *model) runFuncReloadBefore() error { return o.runErrFunc(fctReloadBefore) }
func (o *model) runFuncReloadAfter() error  { return o.runErrFunc(fctReloadAfter) }

func (o *model) runFuncStopBefore() error {
	o.runVoidFunc(fctStopBefore)
	return nil
}

func (o *model) runFuncStopAfter() error {
	o.runVoidFunc(fctStopAfter)
	return nil
}

func (o *model) runErrFunc(slot string) error {
	i, l := o.fct.Load(slot)
	if !l {
		return nil
	}

	fct, k := i.(func() error)
	if !k || fct == nil {
		return nil
	}

	return fct()
}

func (o *model) runVoidFunc(slot string) {
	i, l := o.fct.Load(slot)
	if !l {
		return
	}

	fct, k := i.(func())
	if !k || fct == nil {
		return
	}

	fct()
}
