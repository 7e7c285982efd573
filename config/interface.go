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

package config

import (
	cfgtps "github.com/nabbar/reactor/config/types"
	libctx "github.com/nabbar/reactor/context"
	liberr "github.com/nabbar/reactor/errors"
	liblog "github.com/nabbar/reactor/logger"
	libvpr "github.com/nabbar/reactor/viper"
)

// Config is the application lifecycle container. It registers named
// components, wires them to a shared context, a shared Viper instance and a
// shared default logger, and drives their Start/Reload/Stop in dependency
// order.
type Config interface {
	cfgtps.ComponentList

	// Context returns the shared application context carried by this Config.
	Context() libctx.Config[string]

	// CancelAdd registers functions to run when the shared context is
	// cancelled, before components are stopped.
	CancelAdd(fct ...func())

	// CancelClean removes every registered cancellation function.
	CancelClean()

	// RegisterFuncViper registers the Viper provider used to configure
	// every component.
	RegisterFuncViper(fct libvpr.FuncViper)

	// RegisterDefaultLogger registers the default logger provider made
	// available to every component during initialization.
	RegisterDefaultLogger(fct liblog.FuncLog)

	// RegisterFuncStartBefore registers a hook run before any component starts.
	RegisterFuncStartBefore(fct func() error)

	// RegisterFuncStartAfter registers a hook run after all components started.
	RegisterFuncStartAfter(fct func() error)

	// RegisterFuncReloadBefore registers a hook run before any component reloads.
	RegisterFuncReloadBefore(fct func() error)

	// RegisterFuncReloadAfter registers a hook run after all components reloaded.
	RegisterFuncReloadAfter(fct func() error)

	// RegisterFuncStopBefore registers a hook run before any component stops.
	RegisterFuncStopBefore(fct func())

	// RegisterFuncStopAfter registers a hook run after all components stopped.
	RegisterFuncStopAfter(fct func())

	// Start runs the start-before hook, starts every component in dependency
	// order, then runs the start-after hook.
	Start() liberr.Error

	// Reload runs the reload-before hook, reloads every component in
	// dependency order, then runs the reload-after hook.
	Reload() liberr.Error

	// Stop runs the stop-before hook, stops every component in reverse
	// dependency order, then runs the stop-after hook.
	Stop()

	// Shutdown cancels the shared context, stops every component and exits
	// the process with the given code.
	Shutdown(code int)
}
