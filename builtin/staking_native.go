// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"math/big"

	"github.com/vechain/thor-staking/metrics"
	"github.com/vechain/thor-staking/thor"
	"github.com/vechain/thor-staking/xenv"
)

var metricTotalStaked = metrics.LazyLoadGauge("total_staked")

func readAccount(env *xenv.Environment) (thor.Address, error) {
	var account thor.Address
	err := env.ParseArgs(&account)
	return account, err
}

// updateTotalStaked reports the custody balance, it saturates for amounts beyond int64.
func updateTotalStaked(env *xenv.Environment) {
	total, err := Staking.WithState(env.State()).TotalStaked()
	if err != nil {
		logger.Warn("failed to read total staked", "method", env.Method(), "err", err)
		return
	}
	if total.IsInt64() {
		metricTotalStaked().Set(total.Int64())
	} else {
		metricTotalStaked().Set(int64(^uint64(0) >> 1))
	}
}

func init() {
	defines := []struct {
		name     string
		readonly bool
		run      func(env *xenv.Environment) ([]any, error)
	}{
		{"owner", true, func(env *xenv.Environment) ([]any, error) {
			v, err := Staking.WithState(env.State()).Owner()
			return []any{v}, err
		}},
		{"stakeTokenAddress", true, func(env *xenv.Environment) ([]any, error) {
			v, err := Staking.WithState(env.State()).StakeTokenAddress()
			return []any{v}, err
		}},
		{"rewardTokenAddress", true, func(env *xenv.Environment) ([]any, error) {
			v, err := Staking.WithState(env.State()).RewardTokenAddress()
			return []any{v}, err
		}},
		{"rewardPercentage", true, func(env *xenv.Environment) ([]any, error) {
			v, err := Staking.WithState(env.State()).RewardPercentage()
			return []any{v}, err
		}},
		{"rewardInterval", true, func(env *xenv.Environment) ([]any, error) {
			v, err := Staking.WithState(env.State()).RewardInterval()
			return []any{v}, err
		}},
		{"lockInterval", true, func(env *xenv.Environment) ([]any, error) {
			v, err := Staking.WithState(env.State()).LockInterval()
			return []any{v}, err
		}},
		{"totalStaked", true, func(env *xenv.Environment) ([]any, error) {
			v, err := Staking.WithState(env.State()).TotalStaked()
			return []any{v}, err
		}},
		{"balanceOf", true, func(env *xenv.Environment) ([]any, error) {
			account, err := readAccount(env)
			if err != nil {
				return nil, err
			}
			v, err := Staking.WithState(env.State()).BalanceOf(account)
			return []any{v}, err
		}},
		{"stakeOf", true, func(env *xenv.Environment) ([]any, error) {
			account, err := readAccount(env)
			if err != nil {
				return nil, err
			}
			rec, err := Staking.WithState(env.State()).StakeOf(account)
			if err != nil {
				return nil, err
			}
			return []any{rec.Amount, rec.StakeStartTimestamp, rec.StakeEndTimestamp, rec.Claimed}, nil
		}},
		{"stakeStartTimestampOf", true, func(env *xenv.Environment) ([]any, error) {
			account, err := readAccount(env)
			if err != nil {
				return nil, err
			}
			v, err := Staking.WithState(env.State()).StakeStartTimestampOf(account)
			return []any{v}, err
		}},
		{"hasClaimedReward", true, func(env *xenv.Environment) ([]any, error) {
			account, err := readAccount(env)
			if err != nil {
				return nil, err
			}
			v, err := Staking.WithState(env.State()).HasClaimedReward(account)
			return []any{v}, err
		}},
		{"stake", false, func(env *xenv.Environment) ([]any, error) {
			var amount *big.Int
			if err := env.ParseArgs(&amount); err != nil {
				return nil, err
			}
			if err := Staking.Native(env.State(), env).Stake(env.Caller(), amount, env.BlockContext().Time); err != nil {
				return nil, err
			}
			updateTotalStaked(env)
			return nil, nil
		}},
		{"claim", false, func(env *xenv.Environment) ([]any, error) {
			if err := env.ParseArgs(); err != nil {
				return nil, err
			}
			reward, err := Staking.Native(env.State(), env).Claim(env.Caller(), env.BlockContext().Time)
			if err != nil {
				return nil, err
			}
			return []any{reward}, nil
		}},
		{"unstake", false, func(env *xenv.Environment) ([]any, error) {
			if err := env.ParseArgs(); err != nil {
				return nil, err
			}
			amount, err := Staking.Native(env.State(), env).Unstake(env.Caller())
			if err != nil {
				return nil, err
			}
			updateTotalStaked(env)
			return []any{amount}, nil
		}},
		{"changeRewardPercentage", false, func(env *xenv.Environment) ([]any, error) {
			var v uint64
			if err := env.ParseArgs(&v); err != nil {
				return nil, err
			}
			return nil, Staking.Native(env.State(), env).ChangeRewardPercentage(env.Caller(), v)
		}},
		{"changeRewardInterval", false, func(env *xenv.Environment) ([]any, error) {
			var v uint64
			if err := env.ParseArgs(&v); err != nil {
				return nil, err
			}
			return nil, Staking.Native(env.State(), env).ChangeRewardInterval(env.Caller(), v)
		}},
		{"changeLockInterval", false, func(env *xenv.Environment) ([]any, error) {
			var v uint64
			if err := env.ParseArgs(&v); err != nil {
				return nil, err
			}
			return nil, Staking.Native(env.State(), env).ChangeLockInterval(env.Caller(), v)
		}},
	}
	for _, def := range defines {
		stakingMethods[def.name] = &nativeMethod{readonly: def.readonly, run: def.run}
	}
}
