// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/thor-staking/thor"
)

type Params struct {
	Owner             string `json:"owner"`
	StakeToken        string `json:"stakeToken"`
	RewardToken       string `json:"rewardToken"`
	RewardPercentage  uint64 `json:"rewardPercentage"`
	RewardInterval    uint64 `json:"rewardInterval"`
	LockInterval      uint64 `json:"lockInterval"`
	TotalStaked       string `json:"totalStaked"`
	LatestBlockNumber uint32 `json:"latestBlockNumber"`
}

type Account struct {
	Amount              string `json:"amount"`
	StakeStartTimestamp uint64 `json:"stakeStartTimestamp"`
	StakeEndTimestamp   uint64 `json:"stakeEndTimestamp"`
	Claimed             bool   `json:"claimed"`
	Balance             string `json:"balance"`
	HasClaimedReward    bool   `json:"hasClaimedReward"`
	State               string `json:"state"`
}

type CallerRequest struct {
	Caller *thor.Address `json:"caller"`
}

type StakeRequest struct {
	Caller *thor.Address         `json:"caller"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

type ParamRequest struct {
	Caller *thor.Address `json:"caller"`
	Value  *uint64       `json:"value"`
}
