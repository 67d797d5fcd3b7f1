// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package test holds helpers shared by tests.
package test

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// Retry calls fn every retryPeriod until it succeeds, ctx is done or maxWaitTime elapses.
func Retry(ctx context.Context, fn func() error, retryPeriod, maxWaitTime time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, maxWaitTime)
	defer cancel()

	ticker := time.NewTicker(retryPeriod)
	defer ticker.Stop()
	for {
		err := fn()
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return errors.WithMessage(err, "retry timeout, latest err")
		case <-ticker.C:
		}
	}
}
