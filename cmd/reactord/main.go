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

// Command reactord runs a single reactor component (a tcpsrv+httpsrv pair)
// under the config lifecycle container, driven by a Viper-backed
// configuration file and a small set of cobra flags.
package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	spfcbr "github.com/spf13/cobra"
	spfvpr "github.com/spf13/viper"

	libcbr "github.com/nabbar/reactor/cobra"
	libcfg "github.com/nabbar/reactor/config"
	cfgreact "github.com/nabbar/reactor/config/components/reactor"
	libcns "github.com/nabbar/reactor/console"
	"github.com/nabbar/reactor/httpsrv"
	liblog "github.com/nabbar/reactor/logger"
	loglvl "github.com/nabbar/reactor/logger/level"
	libmet "github.com/nabbar/reactor/metrics"
	libver "github.com/nabbar/reactor/version"
	libvpr "github.com/nabbar/reactor/viper"
)

const componentKey = "reactor"

func newVersion() libver.Version {
	return libver.New(
		"reactord",
		"github.com/nabbar/reactor",
		"multi-reactor TCP/HTTP server core",
		"dev",
		"0.1.0",
		"reactord",
		"nabbar",
		"2026-07-31",
		"MIT",
	)
}

// httpHandlerAdapter lets a standard net/http.Handler (promhttp's exposition
// handler, in practice) answer a route registered on an httpsrv.Server,
// whose Handler type deals in httpsrv.Request/Response rather than
// http.ResponseWriter/*http.Request.
func httpHandlerAdapter(h http.Handler) httpsrv.Handler {
	return func(req *httpsrv.Request) *httpsrv.Response {
		rec := httptest.NewRecorder()
		r, _ := http.NewRequest(req.Method, req.Path, nil)
		h.ServeHTTP(rec, r)

		resp := httpsrv.NewResponse(rec.Code)
		for k, vs := range rec.Header() {
			for _, v := range vs {
				resp.Set(k, v)
			}
		}
		resp.Body = rec.Body.Bytes()
		return resp
	}
}

func main() {
	var (
		cfgFile string
		verbose int
	)

	vrs := newVersion()

	app := libcbr.New()
	app.SetVersion(vrs)
	app.Init()

	if err := app.SetFlagConfig(true, &cfgFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	app.SetFlagVerbose(true, &verbose)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log := liblog.New(ctx)
	log.SetLevel(loglvl.InfoLevel)

	app.SetLogger(func() liblog.Logger { return log })

	mtr := libmet.New("reactord")

	root := app.Cobra()
	root.RunE = func(cmd *spfcbr.Command, args []string) error {
		v := spfvpr.New()
		if cfgFile != "" {
			v.SetConfigFile(cfgFile)
			if err := v.ReadInConfig(); err != nil {
				return err
			}
		}
		vw := libvpr.New(v)

		lifecycle := libcfg.New(ctx, vrs)
		lifecycle.RegisterFuncViper(func() libvpr.Viper { return vw })
		lifecycle.RegisterDefaultLogger(func() liblog.Logger { return log })

		cpt := cfgreact.New()
		cpt.SetSetup(func(srv *httpsrv.Server) {
			srv.Handle(http.MethodGet, `^/metrics$`, httpHandlerAdapter(mtr.Handler()))
		})
		lifecycle.ComponentSet(componentKey, cpt)

		if err := lifecycle.Start(); err != nil {
			libcns.ColorPrint.Println("failed to start reactor")
			return err
		}
		cpt.Server().SetMetrics(mtr)

		libcns.SetColor(libcns.ColorPrint, int(color.FgGreen), int(color.Bold))
		libcns.ColorPrint.PrintLnf("reactord listening on %s", cpt.Addr())

		log.Info("reactord listening on %s", nil, cpt.Addr())

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		lifecycle.Stop()
		return nil
	}

	if err := app.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
