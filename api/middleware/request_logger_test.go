// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vechain/thor-staking/log"
)

// mockLogger is a simple logger implementation for testing purposes
type mockLogger struct {
	loggedData []any
}

func (m *mockLogger) With(_ ...any) log.Logger                     { return m }
func (m *mockLogger) New(_ ...any) log.Logger                      { return m }
func (m *mockLogger) Log(_ slog.Level, _ string, _ ...any)         {}
func (m *mockLogger) Trace(_ string, _ ...any)                     {}
func (m *mockLogger) Debug(_ string, _ ...any)                     {}
func (m *mockLogger) Error(_ string, _ ...any)                     {}
func (m *mockLogger) Crit(_ string, _ ...any)                      {}
func (m *mockLogger) Write(_ slog.Level, _ string, _ ...any)       {}
func (m *mockLogger) Enabled(_ context.Context, _ slog.Level) bool { return true }
func (m *mockLogger) Handler() slog.Handler                        { return nil }

func (m *mockLogger) Info(_ string, ctx ...any) {
	m.loggedData = append(m.loggedData, ctx...)
}

func (m *mockLogger) Warn(_ string, ctx ...any) {
	m.loggedData = append(m.loggedData, ctx...)
}

func TestRequestLoggerHandler(t *testing.T) {
	ok := func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
	tests := []struct {
		name                 string
		handler              http.HandlerFunc
		enabled              bool
		slowQueriesThreshold time.Duration
		log5xxErrors         bool
		shouldLog            bool
	}{
		{"enabled", ok, true, 0, false, true},
		{"disabled", ok, false, 0, false, false},
		{"slow query", func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(15 * time.Millisecond)
			ok(w, r)
		}, false, 10 * time.Millisecond, false, true},
		{"fast query under threshold", ok, false, time.Second, false, false},
		{"5xx logged", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}, false, 0, true, true},
		{"5xx not logged", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}, false, 0, false, false},
		{"4xx not logged", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}, false, 0, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &mockLogger{}
			enabled := &atomic.Bool{}
			enabled.Store(tt.enabled)

			handler := RequestLoggerMiddleware(logger, enabled, tt.slowQueriesThreshold, tt.log5xxErrors)(tt.handler)
			req := httptest.NewRequest(http.MethodPost, "/staking/stake", strings.NewReader(`{"caller":"0x01"}`))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if !tt.shouldLog {
				assert.Empty(t, logger.loggedData)
				return
			}
			assert.Contains(t, logger.loggedData, "URI")
			assert.Contains(t, logger.loggedData, "/staking/stake")
			assert.Contains(t, logger.loggedData, `{"caller":"0x01"}`)
			assert.Contains(t, logger.loggedData, rr.Code)
		})
	}
}

func TestRequestLoggerKeepsBody(t *testing.T) {
	enabled := &atomic.Bool{}
	enabled.Store(true)

	var seen string
	handler := RequestLoggerMiddleware(&mockLogger{}, enabled, 0, false)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		seen = string(body)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("payload")))
	assert.Equal(t, "payload", seen)
}
