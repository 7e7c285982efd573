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

// Package log wires a reactor.Logger instance into the component lifecycle
// so the logger used by the rest of the application can be configured from
// Viper and reloaded at runtime like any other component.
package log

import (
	"context"
	"sync"

	cfgtps "github.com/nabbar/reactor/config/types"
	liblog "github.com/nabbar/reactor/logger"
	logcfg "github.com/nabbar/reactor/logger/config"
	logfld "github.com/nabbar/reactor/logger/fields"
	loglvl "github.com/nabbar/reactor/logger/level"
	libver "github.com/nabbar/reactor/version"
	libvpr "github.com/nabbar/reactor/viper"
)

// ComponentType is the value returned by Type() for this component.
const ComponentType = "log"

// DefaultLevel is the level applied to the logger before its first
// configuration is loaded from Viper.
const DefaultLevel = loglvl.InfoLevel

// CptLog extends cfgtps.Component with accessors specific to the logger
// component, so other components can retrieve and use the configured logger.
type CptLog interface {
	cfgtps.Component

	// Log returns the current logger instance. Before Start/Reload succeed,
	// a usable logger at DefaultLevel is still returned.
	Log() liblog.Logger

	SetLevel(lvl loglvl.Level)
	GetLevel() loglvl.Level

	SetField(fields logfld.Fields)
	GetField() logfld.Fields

	SetOptions(opt *logcfg.Options) error
	GetOptions() *logcfg.Options
}

// New returns a new, uninitialized CptLog component. Register it with a
// Config via Config.ComponentSet(key, New()).
func New() CptLog {
	return &componentLog{
		v: DefaultLevel,
	}
}

// Load retrieves a previously registered CptLog component through the
// given lookup function, or nil if the key is absent or holds a
// different kind of component.
func Load(get cfgtps.FuncCptGet, key string) CptLog {
	if get == nil {
		return nil
	}

	cpt := get(key)
	if cpt == nil {
		return nil
	}

	c, ok := cpt.(CptLog)
	if !ok {
		return nil
	}

	return c
}

type componentLog struct {
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

	l liblog.Logger
	v loglvl.Level
	f logfld.Fields

	started bool
}

var _ cfgtps.Component = (*componentLog)(nil)

func (c *componentLog) Type() string {
	return ComponentType
}

func (c *componentLog) Init(key string, ctx context.Context, get cfgtps.FuncCptGet, vpr libvpr.FuncViper, vrs libver.Version, log liblog.FuncLog) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.key = key
	c.ctx = ctx
	c.get = get
	c.vpr = vpr
	c.vrs = vrs
	c.log = log
}

func (c *componentLog) RegisterFuncStart(before, after cfgtps.FuncCptEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fsb = before
	c.fsa = after
}

func (c *componentLog) RegisterFuncReload(before, after cfgtps.FuncCptEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.frb = before
	c.fra = after
}

func (c *componentLog) IsStarted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.started
}

func (c *componentLog) IsRunning() bool {
	return c.IsStarted()
}

func (c *componentLog) Dependencies() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.dep
}

func (c *componentLog) SetDependencies(d []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dep = d
	return nil
}

func (c *componentLog) Log() liblog.Logger {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lockedLog()
}

func (c *componentLog) lockedLog() liblog.Logger {
	if c.l != nil {
		return c.l
	}

	ctx := c.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	l := liblog.New(ctx)
	l.SetLevel(c.v)

	if len(c.f) > 0 {
		l.SetFields(c.f)
	}

	return l
}

func (c *componentLog) SetLevel(lvl loglvl.Level) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.v = lvl

	if c.l != nil {
		c.l.SetLevel(lvl)
	}
}

func (c *componentLog) GetLevel() loglvl.Level {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.v
}

func (c *componentLog) SetField(fields logfld.Fields) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.f = fields

	if c.l != nil {
		c.l.SetFields(fields)
	}
}

func (c *componentLog) GetField() logfld.Fields {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.f
}

func (c *componentLog) SetOptions(opt *logcfg.Options) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lockedLog().SetOptions(opt)
}

func (c *componentLog) GetOptions() *logcfg.Options {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lockedLog().GetOptions()
}
