// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/vechain/thor-staking/builtin/staking"
	"github.com/vechain/thor-staking/builtin/token"
	"github.com/vechain/thor-staking/log"
	"github.com/vechain/thor-staking/state"
	"github.com/vechain/thor-staking/thor"
	"github.com/vechain/thor-staking/xenv"
)

var logger = log.WithContext("pkg", "builtin")

func SetLogger(l log.Logger) {
	logger = l
}

// Builtin contracts binding.
var (
	Staking     = &stakingContract{thor.StakingAddress}
	StakeToken  = &tokenContract{thor.StakeTokenAddress}
	RewardToken = &tokenContract{thor.RewardTokenAddress}
)

type (
	stakingContract struct{ Address thor.Address }
	tokenContract   struct{ Address thor.Address }
)

// Native binds the staking ledger to state. Asset transfers and events go to emitter.
func (s *stakingContract) Native(state *state.State, emitter xenv.Emitter) *staking.Staking {
	return staking.New(s.Address, state, token.NewLedger(state, emitter), emitter)
}

// WithState binds the staking ledger for reads.
func (s *stakingContract) WithState(state *state.State) *staking.Staking {
	return s.Native(state, xenv.Discard)
}

func (t *tokenContract) Native(state *state.State, emitter xenv.Emitter) *token.Token {
	return token.New(t.Address, state, emitter)
}

func (t *tokenContract) WithState(state *state.State) *token.Token {
	return t.Native(state, xenv.Discard)
}
