// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"log/slog"
	"math/big"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/thor-staking/builtin"
	"github.com/vechain/thor-staking/config"
	"github.com/vechain/thor-staking/log"
	"github.com/vechain/thor-staking/logdb"
	"github.com/vechain/thor-staking/lvldb"
	"github.com/vechain/thor-staking/runtime"
	"github.com/vechain/thor-staking/state"
	"github.com/vechain/thor-staking/thor"
)

func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := ctx.String(configFlag.Name); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if ctx.IsSet(dataDirFlag.Name) {
		cfg.DataDir = ctx.String(dataDirFlag.Name)
	}
	if ctx.IsSet(verbosityFlag.Name) {
		cfg.Log.Verbosity = ctx.Int(verbosityFlag.Name)
	}
	if ctx.IsSet(jsonLogsFlag.Name) {
		cfg.Log.JSON = ctx.Bool(jsonLogsFlag.Name)
	}
	if ctx.IsSet(apiAddrFlag.Name) {
		cfg.API.Addr = ctx.String(apiAddrFlag.Name)
	}
	if ctx.IsSet(apiCorsFlag.Name) {
		cfg.API.CORS = []string{ctx.String(apiCorsFlag.Name)}
	}
	if ctx.IsSet(apiLogsLimitFlag.Name) {
		cfg.API.LogsLimit = ctx.Uint64(apiLogsLimitFlag.Name)
	}
	if ctx.IsSet(enableMetricsFlag.Name) {
		cfg.Metrics.Enabled = ctx.Bool(enableMetricsFlag.Name)
	}
	if ctx.IsSet(metricsAddrFlag.Name) {
		cfg.Metrics.Addr = ctx.String(metricsAddrFlag.Name)
	}
	return cfg, cfg.Validate()
}

func initLogger(cfg *config.Config) {
	lvl := &slog.LevelVar{}
	lvl.Set(log.FromLegacyLevel(cfg.Log.Verbosity))

	var handler slog.Handler
	if cfg.Log.JSON {
		handler = log.JSONHandlerWithLevel(os.Stderr, lvl)
	} else {
		useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
		handler = log.NewTerminalHandlerWithLevel(os.Stderr, lvl, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
}

// ledger is the opened local staking ledger.
type ledger struct {
	db    *lvldb.LevelDB
	logDB *logdb.LogDB
	rt    *runtime.Runtime
}

func clockFrom(ctx *cli.Context) thor.Clock {
	if ctx.IsSet(timeFlag.Name) {
		return thor.NewManualClock(ctx.Uint64(timeFlag.Name))
	}
	return thor.SystemClock{}
}

func openLedger(cfg *config.Config, clock thor.Clock) (*ledger, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, errors.Wrapf(err, "create data dir at '%v'", cfg.DataDir)
	}

	dir := filepath.Join(cfg.DataDir, "state.db")
	db, err := lvldb.New(dir, lvldb.Options{CacheSize: 64, OpenFilesCacheCapacity: 64})
	if err != nil {
		return nil, errors.WithMessagef(err, "open state database at '%v'", dir)
	}
	dir = filepath.Join(cfg.DataDir, "logs.db")
	logDB, err := logdb.New(dir)
	if err != nil {
		db.Close()
		return nil, errors.WithMessagef(err, "open log database at '%v'", dir)
	}

	return &ledger{
		db:    db,
		logDB: logDB,
		rt:    runtime.New(state.New(db), clock, logDB),
	}, nil
}

func (l *ledger) Close() {
	logger.Debug("closing log database...")
	if err := l.logDB.Close(); err != nil {
		logger.Warn("failed to close log database", "err", err)
	}
	logger.Debug("closing state database...")
	if err := l.db.Close(); err != nil {
		logger.Warn("failed to close state database", "err", err)
	}
}

func (l *ledger) view(to thor.Address, method string, args ...any) ([]any, error) {
	return l.rt.View(context.Background(), &runtime.Call{To: to, Method: method, Args: args})
}

func (l *ledger) execute(caller, to thor.Address, method string, args ...any) (*runtime.Receipt, error) {
	return l.rt.Execute(context.Background(), &runtime.Call{To: to, Method: method, Caller: caller, Args: args})
}

func requireAddress(ctx *cli.Context, flag cli.StringFlag) (thor.Address, error) {
	s := ctx.String(flag.Name)
	if s == "" {
		return thor.Address{}, errors.Errorf("--%s is required", flag.Name)
	}
	addr, err := thor.ParseAddress(s)
	if err != nil {
		return thor.Address{}, errors.WithMessagef(err, "--%s", flag.Name)
	}
	return addr, nil
}

func requireAmount(ctx *cli.Context) (*big.Int, error) {
	s := ctx.String(amountFlag.Name)
	if s == "" {
		return nil, errors.Errorf("--%s is required", amountFlag.Name)
	}
	amount, ok := math.ParseBig256(s)
	if !ok || amount.Sign() < 0 {
		return nil, errors.Errorf("--%s: invalid amount %q", amountFlag.Name, s)
	}
	return amount, nil
}

func requireValue(ctx *cli.Context) (uint64, error) {
	if !ctx.IsSet(valueFlag.Name) {
		return 0, errors.Errorf("--%s is required", valueFlag.Name)
	}
	return ctx.Uint64(valueFlag.Name), nil
}

func tokenAddress(ctx *cli.Context) (thor.Address, error) {
	switch s := ctx.String(tokenFlag.Name); s {
	case "", "stake":
		return builtin.StakeToken.Address, nil
	case "reward":
		return builtin.RewardToken.Address, nil
	default:
		addr, err := thor.ParseAddress(s)
		return addr, errors.WithMessagef(err, "--%s", tokenFlag.Name)
	}
}
