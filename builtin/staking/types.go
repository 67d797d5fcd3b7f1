// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/vechain/thor-staking/thor"
)

// AccountState is the position of a stake record in its epoch.
type AccountState uint8

const (
	StateEmpty AccountState = iota
	StateStaked
	StateClaimed
)

func (s AccountState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateStaked:
		return "staked"
	case StateClaimed:
		return "claimed"
	default:
		return "unknown"
	}
}

// StakeRecord is the stake of one account.
// A zero Amount means the record is fully reset.
type StakeRecord struct {
	Amount              *big.Int
	StakeStartTimestamp uint64
	StakeEndTimestamp   uint64 // time of the claim in the current epoch
	Claimed             bool
}

func (r *StakeRecord) State() AccountState {
	switch {
	case r.Amount == nil || r.Amount.Sign() == 0:
		return StateEmpty
	case r.Claimed:
		return StateClaimed
	default:
		return StateStaked
	}
}

// Params is a snapshot of the parameter set.
type Params struct {
	Owner              thor.Address
	StakeTokenAddress  thor.Address
	RewardTokenAddress thor.Address
	RewardPercentage   uint64
	RewardInterval     uint64
	LockInterval       uint64
}
