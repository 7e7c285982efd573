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

// Package reactor wires a tcpsrv.TcpServer plus an httpsrv.Server into the
// component lifecycle, so the reactor pool used by the rest of the
// application can be configured from Viper, started/stopped/reloaded like
// any other component, and have its routes registered before Start runs.
package reactor

import (
	"context"
	"sync"

	cfgtps "github.com/nabbar/reactor/config/types"
	"github.com/nabbar/reactor/httpsrv"
	liblog "github.com/nabbar/reactor/logger"
	libtcp "github.com/nabbar/reactor/tcpsrv"
	libver "github.com/nabbar/reactor/version"
	libvpr "github.com/nabbar/reactor/viper"
)

// ComponentType is the value returned by Type() for this component.
const ComponentType = "reactor"

// FuncSetup registers routes and static file handling on srv before it is
// started. It is called again on every reload, after the previous server
// has been stopped, so it must be idempotent (build its routes fresh each
// time rather than accumulating them).
type FuncSetup func(srv *httpsrv.Server)

// CptReactor extends cfgtps.Component with accessors specific to the
// reactor component, so other components (and the application's entry
// point) can reach the underlying tcp/http servers.
type CptReactor interface {
	cfgtps.Component

	// SetSetup registers the route/handler setup callback invoked before
	// each Start/Reload.
	SetSetup(fn FuncSetup)

	// Server returns the underlying tcpsrv.TcpServer, or nil before the
	// first successful Start.
	Server() libtcp.TcpServer

	// HTTP returns the httpsrv.Server attached to Server(), or nil before
	// the first successful Start.
	HTTP() *httpsrv.Server

	// Addr returns the bound listen address, or empty before Start binds
	// the listener.
	Addr() string
}

// New returns a new, uninitialized CptReactor component. Register it with
// a Config via Config.ComponentSet(key, New()).
func New() CptReactor {
	return &componentReactor{}
}

// Load retrieves a previously registered CptReactor component through the
// given lookup function, or nil if the key is absent or holds a different
// kind of component.
func Load(get cfgtps.FuncCptGet, key string) CptReactor {
	if get == nil {
		return nil
	}

	cpt := get(key)
	if cpt == nil {
		return nil
	}

	c, ok := cpt.(CptReactor)
	if !ok {
		return nil
	}

	return c
}

type componentReactor struct {
	mu sync.Mutex

	key string
	ctx context.Context
	get cfgtps.FuncCptGet
	vpr libvpr.FuncViper
	vrs libver.Version
	log liblog.FuncLog

	dep []string

	fsb, fsa cfgtps.FuncCptEvent
	frb, fra cfgtps.FuncCptEvent

	setup FuncSetup

	srv     libtcp.TcpServer
	http    *httpsrv.Server
	started bool
}

var _ cfgtps.Component = (*componentReactor)(nil)

func (c *componentReactor) Type() string {
	return ComponentType
}

func (c *componentReactor) Init(key string, ctx context.Context, get cfgtps.FuncCptGet, vpr libvpr.FuncViper, vrs libver.Version, log liblog.FuncLog) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.key = key
	c.ctx = ctx
	c.get = get
	c.vpr = vpr
	c.vrs = vrs
	c.log = log
}

func (c *componentReactor) RegisterFuncStart(before, after cfgtps.FuncCptEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fsb = before
	c.fsa = after
}

func (c *componentReactor) RegisterFuncReload(before, after cfgtps.FuncCptEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.frb = before
	c.fra = after
}

func (c *componentReactor) IsStarted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.started
}

func (c *componentReactor) IsRunning() bool {
	c.mu.Lock()
	srv := c.srv
	c.mu.Unlock()

	return srv != nil && srv.Addr() != ""
}

func (c *componentReactor) Dependencies() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.dep
}

func (c *componentReactor) SetDependencies(d []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dep = d
	return nil
}

func (c *componentReactor) SetSetup(fn FuncSetup) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setup = fn
}

func (c *componentReactor) Server() libtcp.TcpServer {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.srv
}

func (c *componentReactor) HTTP() *httpsrv.Server {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.http
}

func (c *componentReactor) Addr() string {
	c.mu.Lock()
	srv := c.srv
	c.mu.Unlock()

	if srv == nil {
		return ""
	}
	return srv.Addr()
}
