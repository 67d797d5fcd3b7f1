// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a YAML config file",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Usage: "directory for the state and log databases (overrides config)",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-5)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	timeFlag = cli.Uint64Flag{
		Name:   "time",
		Hidden: true,
		Usage:  "override the block time, in unix seconds",
	}

	signerFlag = cli.StringFlag{
		Name:  "signer",
		Usage: "address of the caller",
	}
	accountFlag = cli.StringFlag{
		Name:  "account",
		Usage: "user's address",
	}
	amountFlag = cli.StringFlag{
		Name:  "amount",
		Usage: "number of tokens, decimal or 0x prefixed hex",
	}
	valueFlag = cli.Uint64Flag{
		Name:  "value",
		Usage: "the new parameter value",
	}
	toFlag = cli.StringFlag{
		Name:  "to",
		Usage: "recipient address",
	}
	tokenFlag = cli.StringFlag{
		Name:  "token",
		Value: "stake",
		Usage: "token to act on (stake|reward|<address>)",
	}

	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Usage: "API service listening address (overrides config)",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiLogsLimitFlag = cli.Uint64Flag{
		Name:  "api-logs-limit",
		Usage: "limit the number of logs returned by /logs API (overrides config)",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	apiSlowQueriesThresholdFlag = cli.DurationFlag{
		Name:  "api-slow-queries-threshold",
		Usage: "log API requests slower than this duration, 0 disables",
	}
	apiLog5xxErrorsFlag = cli.BoolFlag{
		Name:  "api-log-5xx-errors",
		Usage: "log API requests failing with a 5xx status",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Usage: "metrics service listening address (overrides config)",
	}
)

var commonFlags = []cli.Flag{
	configFlag,
	dataDirFlag,
	verbosityFlag,
	jsonLogsFlag,
	timeFlag,
}

func withCommon(flags ...cli.Flag) []cli.Flag {
	return append(append([]cli.Flag{}, commonFlags...), flags...)
}
