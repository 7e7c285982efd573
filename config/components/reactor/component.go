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
	"fmt"

	libdur "github.com/nabbar/reactor/duration"
	"github.com/nabbar/reactor/httpsrv"
	libptc "github.com/nabbar/reactor/network/protocol"
	libtcp "github.com/nabbar/reactor/tcpsrv"
)

// Config is the Viper-bound shape of a reactor component's configuration
// key, mirroring tcpsrv.Config plus the httpsrv static-file root.
type Config struct {
	// Network is the wire name of the protocol family (e.g. "tcp4",
	// "tcp6", "unix"); parsed with network/protocol.Parse, defaulting to
	// NetworkTCP4 on an empty or unrecognized value, exactly like
	// tcpsrv.Config itself.
	Network string `mapstructure:"network" json:"network"`

	// Address is a host:port pair, or a filesystem path for a unix
	// socket.
	Address string `mapstructure:"address" json:"address"`

	// Backlog is the listen() backlog; tcpsrv.DefaultBacklog if zero.
	Backlog int `mapstructure:"backlog" json:"backlog"`

	// WorkerCount is the size of the worker loop pool.
	WorkerCount int `mapstructure:"workerCount" json:"workerCount"`

	// IdleTimeout arms per-connection idle eviction when non-empty, in the
	// days/hours/minutes/seconds notation accepted by duration.Parse (e.g.
	// "90s", "2m30s"); empty disables it.
	IdleTimeout string `mapstructure:"idleTimeout" json:"idleTimeout"`

	// StaticDir is served as the httpsrv.StaticFiles root; empty disables
	// static file serving.
	StaticDir string `mapstructure:"staticDir" json:"staticDir"`
}

func (cfg Config) idleTimeoutSeconds() (int, error) {
	if cfg.IdleTimeout == "" {
		return 0, nil
	}

	d, err := libdur.Parse(cfg.IdleTimeout)
	if err != nil {
		return 0, err
	}

	return int(d.Time().Seconds()), nil
}

func (cfg Config) toTcpConfig() (libtcp.Config, error) {
	secs, err := cfg.idleTimeoutSeconds()
	if err != nil {
		return libtcp.Config{}, err
	}

	return libtcp.Config{
		Network:               libptc.Parse(cfg.Network),
		Address:               cfg.Address,
		Backlog:               cfg.Backlog,
		WorkerCount:           cfg.WorkerCount,
		ConIdleTimeoutSeconds: secs,
	}, nil
}

func (c *componentReactor) getConfig() (Config, error) {
	c.mu.Lock()
	vpr := c.vpr
	key := c.key
	c.mu.Unlock()

	var cfg Config

	if vpr == nil || len(key) < 1 {
		return cfg, ErrorComponentNotInitialized.Error(nil)
	}

	v := vpr()
	if v == nil || !v.IsSet(key) {
		return cfg, ErrorConfigMissing.Error(fmt.Errorf("missing config key '%s'", key))
	}

	if e := v.UnmarshalKey(key, &cfg); e != nil {
		return cfg, ErrorConfigInvalid.Error(e)
	}

	tcp, e := cfg.toTcpConfig()
	if e != nil {
		return cfg, ErrorConfigInvalid.Error(e)
	}
	if e = tcp.Validate(); e != nil {
		return cfg, ErrorConfigInvalid.Error(e)
	}

	return cfg, nil
}

func (c *componentReactor) start(isReload bool) error {
	c.mu.Lock()
	fsb, fsa := c.fsb, c.fsa
	frb, fra := c.frb, c.fra
	oldSrv := c.srv
	setup := c.setup
	c.mu.Unlock()

	if !isReload && fsb != nil {
		if err := fsb(c); err != nil {
			return err
		}
	} else if isReload && frb != nil {
		if err := frb(c); err != nil {
			return err
		}
	}

	cfg, err := c.getConfig()
	if err != nil {
		return err
	}

	if oldSrv != nil {
		_ = oldSrv.Stop()
	}

	h := httpsrv.NewServer()
	if cfg.StaticDir != "" {
		h.Static = httpsrv.StaticFiles{BaseDir: cfg.StaticDir}
	}
	if setup != nil {
		setup(h)
	}

	tcpCfg, err := cfg.toTcpConfig()
	if err != nil {
		return ErrorStartComponent.Error(err)
	}

	srv, err := libtcp.New(tcpCfg, nil)
	if err != nil {
		return ErrorStartComponent.Error(err)
	}
	h.Attach(srv)

	c.mu.Lock()
	c.srv = srv
	c.http = h
	c.started = true
	c.mu.Unlock()

	go func() { _ = srv.Start() }()

	if !isReload && fsa != nil {
		if err := fsa(c); err != nil {
			return err
		}
	} else if isReload && fra != nil {
		if err := fra(c); err != nil {
			return err
		}
	}

	return nil
}

func (c *componentReactor) Start() error {
	return c.start(c.IsStarted())
}

func (c *componentReactor) Reload() error {
	return c.start(true)
}

func (c *componentReactor) Stop() {
	c.mu.Lock()
	srv := c.srv
	c.started = false
	c.mu.Unlock()

	if srv != nil {
		_ = srv.Stop()
	}
}
