// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/thor-staking/builtin/reverts"
	"github.com/vechain/thor-staking/builtin/staking"
	"github.com/vechain/thor-staking/log"
	"github.com/vechain/thor-staking/lvldb"
	"github.com/vechain/thor-staking/state"
	"github.com/vechain/thor-staking/thor"
	"github.com/vechain/thor-staking/xenv"
)

var (
	owner = thor.BytesToAddress([]byte("owner"))
	alice = thor.BytesToAddress([]byte("alice"))
)

func newDeployedState(t *testing.T) *state.State {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := state.New(db)
	env := xenv.New("deploy", owner, Staking.Address, nil, st, &xenv.BlockContext{})
	require.NoError(t, Deploy(env, &Deployment{
		Owner:            owner,
		StakeToken:       TokenSpec{"Liquidity", "LP"},
		RewardToken:      TokenSpec{"Token0", "TK0"},
		RewardPercentage: thor.DefaultRewardPercentage,
		RewardInterval:   thor.DefaultRewardInterval,
		LockInterval:     thor.DefaultLockInterval,
		RewardPool:       big.NewInt(1000),
	}))
	return st
}

func call(st *state.State, caller, to thor.Address, now uint64, method string, args ...any) (*xenv.Environment, []any, error) {
	env := xenv.New(method, caller, to, args, st, &xenv.BlockContext{Time: now})
	out, err := Call(env)
	return env, out, err
}

func TestDeploy(t *testing.T) {
	st := newDeployedState(t)

	p, err := Staking.WithState(st).Params()
	require.NoError(t, err)
	assert.Equal(t, owner, p.Owner)
	assert.Equal(t, StakeToken.Address, p.StakeTokenAddress)
	assert.Equal(t, RewardToken.Address, p.RewardTokenAddress)

	pool, err := RewardToken.WithState(st).BalanceOf(Staking.Address)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), pool)

	env := xenv.New("deploy", owner, Staking.Address, nil, st, &xenv.BlockContext{})
	assert.Error(t, Deploy(env, &Deployment{Owner: owner}))
}

func TestCallLifecycle(t *testing.T) {
	st := newDeployedState(t)

	_, _, err := call(st, owner, StakeToken.Address, 0, "mint", alice, big.NewInt(100))
	require.NoError(t, err)
	_, _, err = call(st, alice, StakeToken.Address, 0, "approve", Staking.Address, "100")
	require.NoError(t, err)

	env, _, err := call(st, alice, Staking.Address, 0, "stake", big.NewInt(100))
	require.NoError(t, err)
	require.Len(t, env.Events(), 2)
	log, ok := staking.DecodeEvent(env.Events()[1])
	require.True(t, ok)
	assert.Equal(t, "Staked", log.Name)

	_, out, err := call(st, alice, Staking.Address, 0, "stakeOf", alice)
	require.NoError(t, err)
	assert.Equal(t, []any{big.NewInt(100), uint64(0), uint64(0), false}, out)

	_, _, err = call(st, alice, Staking.Address, 10, "claim")
	assert.ErrorIs(t, err, staking.ErrLockIntervalNotElapsed)
	assert.True(t, reverts.IsRevertErr(err))

	_, out, err = call(st, alice, Staking.Address, 250, "claim")
	require.NoError(t, err)
	assert.Equal(t, []any{big.NewInt(20)}, out)

	_, out, err = call(st, alice, Staking.Address, 250, "unstake")
	require.NoError(t, err)
	assert.Equal(t, []any{big.NewInt(100)}, out)

	_, out, err = call(st, alice, StakeToken.Address, 0, "balanceOf", alice)
	require.NoError(t, err)
	assert.Equal(t, []any{big.NewInt(100)}, out)
}

func TestCallParams(t *testing.T) {
	st := newDeployedState(t)

	_, _, err := call(st, alice, Staking.Address, 0, "changeLockInterval", uint64(5))
	assert.ErrorIs(t, err, staking.ErrUnauthorized)

	_, _, err = call(st, owner, Staking.Address, 0, "changeLockInterval", uint64(5))
	require.NoError(t, err)

	_, out, err := call(st, alice, Staking.Address, 0, "lockInterval")
	require.NoError(t, err)
	assert.Equal(t, []any{uint64(5)}, out)
}

func TestCallErrors(t *testing.T) {
	st := newDeployedState(t)

	_, _, err := call(st, alice, Staking.Address, 0, "selfdestruct")
	assert.ErrorIs(t, err, ErrUnknownMethod)

	_, _, err = call(st, alice, Staking.Address, 0, "stake")
	assert.ErrorIs(t, err, xenv.ErrInvalidArgs)

	_, _, err = call(st, alice, Staking.Address, 0, "claim", "extra")
	assert.ErrorIs(t, err, xenv.ErrInvalidArgs)

	_, _, err = call(st, alice, thor.BytesToAddress([]byte("nowhere")), 0, "balanceOf", alice)
	assert.Error(t, err)
}

func TestIsReadOnly(t *testing.T) {
	tests := []struct {
		to       thor.Address
		method   string
		readonly bool
	}{
		{Staking.Address, "stakeOf", true},
		{Staking.Address, "rewardPercentage", true},
		{Staking.Address, "stake", false},
		{Staking.Address, "changeRewardInterval", false},
		{StakeToken.Address, "balanceOf", true},
		{RewardToken.Address, "transfer", false},
	}
	for _, tt := range tests {
		ro, err := IsReadOnly(tt.to, tt.method)
		require.NoError(t, err)
		assert.Equal(t, tt.readonly, ro, tt.method)
	}

	_, err := IsReadOnly(Staking.Address, "mint")
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestUpdateTotalStakedLogsReadFailure(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	require.NoError(t, db.Close())

	out := new(bytes.Buffer)
	prev := logger
	SetLogger(log.NewLogger(log.JSONHandler(out)))
	defer SetLogger(prev)

	env := xenv.New("stake", alice, Staking.Address, nil, state.New(db), &xenv.BlockContext{})
	updateTotalStaked(env)

	assert.Contains(t, out.String(), "failed to read total staked")
	assert.Contains(t, out.String(), `"method":"stake"`)
	assert.Contains(t, out.String(), `"lvl":"warn"`)
}
