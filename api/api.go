// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/thor-staking/api/logs"
	"github.com/vechain/thor-staking/api/middleware"
	"github.com/vechain/thor-staking/api/staking"
	"github.com/vechain/thor-staking/api/tokens"
	"github.com/vechain/thor-staking/log"
	"github.com/vechain/thor-staking/logdb"
	"github.com/vechain/thor-staking/metrics"
	"github.com/vechain/thor-staking/runtime"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins       string
	LogsLimit            uint64
	EnableMetrics        bool
	EnableReqLogger      *atomic.Bool
	SlowQueriesThreshold time.Duration
	Log5xxErrors         bool
}

// New return api router. Log endpoints are mounted only when logDB is not nil.
func New(rt *runtime.Runtime, logDB *logdb.LogDB, opts Options) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	staking.New(rt).
		Mount(router, "/staking")
	tokens.New(rt).
		Mount(router, "/tokens")
	if logDB != nil {
		logs.New(logDB, opts.LogsLimit).
			Mount(router, "/logs")
	}

	if opts.EnableMetrics && metrics.Enabled() {
		router.Path("/metrics").
			Methods(http.MethodGet).
			Handler(metrics.HTTPHandler())
		router.Use(metricsMiddleware)
	}

	if opts.EnableReqLogger == nil {
		opts.EnableReqLogger = &atomic.Bool{}
	}
	router.Use(middleware.RequestLoggerMiddleware(logger, opts.EnableReqLogger, opts.SlowQueriesThreshold, opts.Log5xxErrors))

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	return handler.ServeHTTP
}
