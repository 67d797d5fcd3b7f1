// Copyright (c) 2024 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"time"

	"github.com/vechain/thor-staking/builtin/reverts"
	"github.com/vechain/thor-staking/metrics"
)

var (
	metricCallCount    = metrics.LazyLoadCounterVec("call_count", []string{"method", "outcome"})
	metricCallDuration = metrics.LazyLoadHistogramVec("call_duration_us", []string{"method"}, metrics.BucketCallDuration)
)

func observeCall(method string, err error, elapsed time.Duration) {
	outcome := "success"
	switch {
	case reverts.IsRevertErr(err):
		outcome = "revert"
	case err != nil:
		outcome = "error"
	}
	metricCallCount().AddWithLabel(1, map[string]string{"method": method, "outcome": outcome})
	metricCallDuration().ObserveWithLabels(elapsed.Microseconds(), map[string]string{"method": method})
}
