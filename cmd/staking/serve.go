// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/thor-staking/api"
	"github.com/vechain/thor-staking/config"
	"github.com/vechain/thor-staking/metrics"
)

const shutdownTimeout = 5 * time.Second

func serveAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	initLogger(cfg)
	// meters are resolved lazily, the backend must be installed before the first call
	if cfg.Metrics.Enabled {
		metrics.InitializePrometheusMetrics()
	}

	l, err := openLedger(cfg, clockFrom(ctx))
	if err != nil {
		return err
	}
	defer l.Close()

	reqLogger := &atomic.Bool{}
	reqLogger.Store(ctx.Bool(enableAPILogsFlag.Name))
	opts := api.Options{
		AllowedOrigins:       strings.Join(cfg.API.CORS, ","),
		LogsLimit:            cfg.API.LogsLimit,
		EnableMetrics:        cfg.Metrics.Enabled,
		EnableReqLogger:      reqLogger,
		SlowQueriesThreshold: ctx.Duration(apiSlowQueriesThresholdFlag.Name),
		Log5xxErrors:         ctx.Bool(apiLog5xxErrorsFlag.Name),
	}

	exitCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return runServers(exitCtx, cfg, l, opts, nil)
}

// runServers serves the API, and metrics when enabled, until ctx is done.
// onListen, if not nil, receives the API URL once listening.
func runServers(ctx context.Context, cfg *config.Config, l *ledger, opts api.Options, onListen func(apiURL string)) error {
	apiListener, err := net.Listen("tcp", cfg.API.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen API addr [%v]", cfg.API.Addr)
	}
	servers := []*http.Server{{Handler: api.New(l.rt, l.logDB, opts), ReadHeaderTimeout: time.Second}}
	listeners := []net.Listener{apiListener}

	if cfg.Metrics.Enabled && cfg.Metrics.Addr != "" {
		metricsListener, err := net.Listen("tcp", cfg.Metrics.Addr)
		if err != nil {
			apiListener.Close()
			return errors.Wrapf(err, "listen metrics addr [%v]", cfg.Metrics.Addr)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.HTTPHandler())
		servers = append(servers, &http.Server{Handler: mux, ReadHeaderTimeout: time.Second})
		listeners = append(listeners, metricsListener)
		logger.Info("metrics server listening", "addr", "http://"+metricsListener.Addr().String()+"/metrics")
	}

	apiURL := "http://" + apiListener.Addr().String()
	logger.Info("API server listening", "addr", apiURL)
	if onListen != nil {
		onListen(apiURL)
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, srv := range servers {
		g.Go(func() error {
			if err := srv.Serve(listeners[i]); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("stopping servers...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("failed to shutdown server", "err", err)
			}
		}
		return nil
	})
	return g.Wait()
}
