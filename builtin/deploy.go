// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/thor-staking/builtin/staking"
	"github.com/vechain/thor-staking/thor"
	"github.com/vechain/thor-staking/xenv"
)

// TokenSpec describes a token created at deployment.
type TokenSpec struct {
	Name   string
	Symbol string
}

// Deployment are the construction parameters of the staking ledger and its assets.
type Deployment struct {
	Owner            thor.Address
	StakeToken       TokenSpec
	RewardToken      TokenSpec
	RewardPercentage uint64
	RewardInterval   uint64
	LockInterval     uint64
	// RewardPool is minted to the ledger to pay rewards.
	RewardPool *big.Int
}

// Deploy creates both tokens, owned and minted by the owner, and initializes the staking ledger.
func Deploy(env *xenv.Environment, d *Deployment) error {
	stakeToken := StakeToken.Native(env.State(), env)
	if err := stakeToken.Initialize(d.StakeToken.Name, d.StakeToken.Symbol, d.Owner); err != nil {
		return errors.WithMessage(err, "stake token")
	}
	rewardToken := RewardToken.Native(env.State(), env)
	if err := rewardToken.Initialize(d.RewardToken.Name, d.RewardToken.Symbol, d.Owner); err != nil {
		return errors.WithMessage(err, "reward token")
	}

	if err := Staking.Native(env.State(), env).Initialize(&staking.Params{
		Owner:              d.Owner,
		StakeTokenAddress:  StakeToken.Address,
		RewardTokenAddress: RewardToken.Address,
		RewardPercentage:   d.RewardPercentage,
		RewardInterval:     d.RewardInterval,
		LockInterval:       d.LockInterval,
	}); err != nil {
		return errors.WithMessage(err, "staking")
	}

	if d.RewardPool != nil && d.RewardPool.Sign() > 0 {
		if err := rewardToken.Mint(d.Owner, Staking.Address, d.RewardPool); err != nil {
			return errors.WithMessage(err, "reward pool")
		}
	}
	return nil
}
