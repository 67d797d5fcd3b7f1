// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/holiman/uint256"
)

var hundred = uint256.NewInt(100)

// ComputeReward returns floor(amount*percentage/100) * floor((end-start)/interval).
// Every step is checked, overflow and underflow fail with ErrOverflow.
func ComputeReward(amount *big.Int, percentage, start, end, interval uint64) (*big.Int, error) {
	if interval == 0 {
		return nil, ErrZeroRewardInterval
	}
	if end < start {
		return nil, ErrOverflow
	}
	amt, overflow := uint256.FromBig(amount)
	if overflow || amount.Sign() < 0 {
		return nil, ErrOverflow
	}

	perInterval, overflow := new(uint256.Int).MulOverflow(amt, uint256.NewInt(percentage))
	if overflow {
		return nil, ErrOverflow
	}
	perInterval.Div(perInterval, hundred)

	intervals := uint256.NewInt((end - start) / interval)

	reward, overflow := new(uint256.Int).MulOverflow(perInterval, intervals)
	if overflow {
		return nil, ErrOverflow
	}
	return new(big.Int).SetBytes(reward.Bytes()), nil
}
