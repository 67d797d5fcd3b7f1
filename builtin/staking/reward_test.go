// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeReward(t *testing.T) {
	maxUint256 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

	tests := []struct {
		name       string
		amount     *big.Int
		percentage uint64
		start, end uint64
		interval   uint64
		want       *big.Int
		err        error
	}{
		{"reference scenario", big.NewInt(100), 10, 0, 250, 100, big.NewInt(20), nil},
		{"exact intervals", big.NewInt(100), 10, 0, 300, 100, big.NewInt(30), nil},
		{"per interval truncates", big.NewInt(99), 10, 0, 100, 100, big.NewInt(9), nil},
		{"less than one interval", big.NewInt(100), 10, 0, 99, 100, big.NewInt(0), nil},
		{"over a hundred percent", big.NewInt(100), 250, 10, 210, 100, big.NewInt(500), nil},
		{"zero percentage", big.NewInt(100), 0, 0, 1000, 100, big.NewInt(0), nil},
		{"zero interval", big.NewInt(100), 10, 0, 100, 0, nil, ErrZeroRewardInterval},
		{"end before start", big.NewInt(100), 10, 100, 99, 1, nil, ErrOverflow},
		{"amount too wide", new(big.Int).Lsh(big.NewInt(1), 256), 10, 0, 100, 100, nil, ErrOverflow},
		{"product overflow", maxUint256, 100, 0, 100, 100, nil, ErrOverflow},
		{"reward overflow", new(big.Int).Lsh(big.NewInt(1), 250), 100, 0, 10_000, 100, nil, ErrOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeReward(tt.amount, tt.percentage, tt.start, tt.end, tt.interval)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.String(), got.String())
		})
	}
}

func TestComputeRewardFuzz(t *testing.T) {
	f := fuzz.New().NilChance(0)
	hundred := big.NewInt(100)

	for range 1000 {
		var (
			amount     uint64
			percentage uint16
			start, dur uint32
			interval   uint16
		)
		f.Fuzz(&amount)
		f.Fuzz(&percentage)
		f.Fuzz(&start)
		f.Fuzz(&dur)
		f.Fuzz(&interval)
		if interval == 0 {
			interval = 1
		}

		end := uint64(start) + uint64(dur)
		got, err := ComputeReward(new(big.Int).SetUint64(amount), uint64(percentage), uint64(start), end, uint64(interval))
		require.NoError(t, err)

		perInterval := new(big.Int).Mul(new(big.Int).SetUint64(amount), big.NewInt(int64(percentage)))
		perInterval.Div(perInterval, hundred)
		want := perInterval.Mul(perInterval, big.NewInt(int64(uint64(dur)/uint64(interval))))

		assert.Equal(t, want.String(), got.String(), "amount=%d pct=%d dur=%d interval=%d", amount, percentage, dur, interval)
	}
}
