// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/thor-staking/builtin"
	"github.com/vechain/thor-staking/builtin/staking"
	"github.com/vechain/thor-staking/builtin/token"
	"github.com/vechain/thor-staking/lvldb"
	"github.com/vechain/thor-staking/state"
	"github.com/vechain/thor-staking/thor"
	"github.com/vechain/thor-staking/xenv"
)

var (
	owner = thor.BytesToAddress([]byte("owner"))
	alice = thor.BytesToAddress([]byte("alice"))
)

type logRecorder struct {
	mu     sync.Mutex
	blocks []uint32
	events []*xenv.Event
	err    error
}

func (r *logRecorder) Write(blockNumber uint32, _ uint64, events []*xenv.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocks = append(r.blocks, blockNumber)
	r.events = append(r.events, events...)
	return r.err
}

type fixture struct {
	rt    *Runtime
	db    *lvldb.LevelDB
	clock *thor.ManualClock
	logs  *logRecorder
}

func newFixture(t *testing.T) *fixture {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &fixture{db: db, clock: thor.NewManualClock(0), logs: &logRecorder{}}
	f.rt = New(state.New(db), f.clock, f.logs)

	_, err = f.rt.Deploy(context.Background(), &builtin.Deployment{
		Owner:            owner,
		StakeToken:       builtin.TokenSpec{Name: "Liquidity", Symbol: "LP"},
		RewardToken:      builtin.TokenSpec{Name: "Token0", Symbol: "TK0"},
		RewardPercentage: thor.DefaultRewardPercentage,
		RewardInterval:   thor.DefaultRewardInterval,
		LockInterval:     thor.DefaultLockInterval,
		RewardPool:       big.NewInt(1_000_000),
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) exec(t *testing.T, caller, to thor.Address, method string, args ...any) (*Receipt, error) {
	return f.rt.Execute(context.Background(), &Call{To: to, Method: method, Caller: caller, Args: args})
}

func (f *fixture) fund(t *testing.T, addr thor.Address, amount int64) {
	_, err := f.exec(t, owner, builtin.StakeToken.Address, "mint", addr, big.NewInt(amount))
	require.NoError(t, err)
	_, err = f.exec(t, addr, builtin.StakeToken.Address, "approve", builtin.Staking.Address, big.NewInt(amount))
	require.NoError(t, err)
}

func TestExecuteLifecycle(t *testing.T) {
	f := newFixture(t)
	f.fund(t, alice, 100)

	receipt, err := f.exec(t, alice, builtin.Staking.Address, "stake", big.NewInt(100))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), receipt.BlockTime)
	require.Len(t, receipt.Events, 2)
	_, ok := token.DecodeTransfer(receipt.Events[0])
	assert.True(t, ok)
	ev, ok := staking.DecodeEvent(receipt.Events[1])
	require.True(t, ok)
	assert.Equal(t, "Staked", ev.Name)

	f.clock.Advance(250)
	receipt, err = f.exec(t, alice, builtin.Staking.Address, "claim")
	require.NoError(t, err)
	assert.Equal(t, uint64(250), receipt.BlockTime)
	assert.Equal(t, []any{big.NewInt(20)}, receipt.Outputs)
	ev, ok = staking.DecodeEvent(receipt.Events[1])
	require.True(t, ok)
	assert.Equal(t, "Claimed", ev.Name)
	assert.Equal(t, big.NewInt(20), ev.Amount)

	receipt, err = f.exec(t, alice, builtin.Staking.Address, "unstake")
	require.NoError(t, err)
	assert.Equal(t, []any{big.NewInt(100)}, receipt.Outputs)

	out, err := f.rt.View(context.Background(), &Call{To: builtin.Staking.Address, Method: "stakeOf", Args: []any{alice}})
	require.NoError(t, err)
	assert.Equal(t, []any{big.NewInt(0), uint64(0), uint64(0), false}, out)
}

func TestBlocksAndLogs(t *testing.T) {
	f := newFixture(t)

	n, err := f.rt.BlockNumber()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), n, "deploy seals the first block")

	f.fund(t, alice, 10)
	n, _ = f.rt.BlockNumber()
	assert.Equal(t, uint32(3), n)

	// reads and failures seal nothing
	_, err = f.rt.View(context.Background(), &Call{To: builtin.Staking.Address, Method: "lockInterval"})
	require.NoError(t, err)
	_, err = f.exec(t, alice, builtin.Staking.Address, "claim")
	assert.ErrorIs(t, err, staking.ErrNothingStaked)

	n, _ = f.rt.BlockNumber()
	assert.Equal(t, uint32(3), n)
	assert.Equal(t, []uint32{1, 2, 3}, f.logs.blocks)
}

func TestFailedCallRollsBack(t *testing.T) {
	f := newFixture(t)

	// minted but not approved
	_, err := f.exec(t, owner, builtin.StakeToken.Address, "mint", alice, big.NewInt(100))
	require.NoError(t, err)
	events := len(f.logs.events)

	_, err = f.exec(t, alice, builtin.Staking.Address, "stake", big.NewInt(100))
	assert.ErrorIs(t, err, staking.ErrTransferFailed)
	assert.Len(t, f.logs.events, events)

	out, err := f.rt.View(context.Background(), &Call{To: builtin.StakeToken.Address, Method: "balanceOf", Args: []any{alice}})
	require.NoError(t, err)
	assert.Equal(t, []any{big.NewInt(100)}, out)

	out, err = f.rt.View(context.Background(), &Call{To: builtin.Staking.Address, Method: "balanceOf", Args: []any{alice}})
	require.NoError(t, err)
	assert.Equal(t, []any{big.NewInt(0)}, out)
}

func TestStatePersists(t *testing.T) {
	f := newFixture(t)
	f.fund(t, alice, 100)
	_, err := f.exec(t, alice, builtin.Staking.Address, "stake", big.NewInt(100))
	require.NoError(t, err)

	// a new runtime over the same store sees committed state
	rt := New(state.New(f.db), f.clock, nil)
	out, err := rt.View(context.Background(), &Call{To: builtin.Staking.Address, Method: "balanceOf", Args: []any{alice}})
	require.NoError(t, err)
	assert.Equal(t, []any{big.NewInt(100)}, out)

	n, err := rt.BlockNumber()
	require.NoError(t, err)
	assert.Equal(t, uint32(4), n)
}

func TestExecuteErrors(t *testing.T) {
	f := newFixture(t)

	_, err := f.exec(t, alice, builtin.Staking.Address, "nope")
	assert.ErrorIs(t, err, builtin.ErrUnknownMethod)

	_, err = f.rt.View(context.Background(), &Call{To: builtin.Staking.Address, Method: "stake", Args: []any{big.NewInt(1)}})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.rt.Execute(ctx, &Call{To: builtin.Staking.Address, Method: "lockInterval"})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = f.rt.Deploy(context.Background(), &builtin.Deployment{Owner: owner})
	assert.Error(t, err)
}

func TestLogWriteFailureKeepsCommit(t *testing.T) {
	f := newFixture(t)
	f.logs.err = errors.New("disk full")

	f.fund(t, alice, 5)
	out, err := f.rt.View(context.Background(), &Call{To: builtin.StakeToken.Address, Method: "balanceOf", Args: []any{alice}})
	require.NoError(t, err)
	assert.Equal(t, []any{big.NewInt(5)}, out)
}

func TestConcurrentCalls(t *testing.T) {
	f := newFixture(t)

	const accounts = 16
	addrs := make([]thor.Address, accounts)
	for i := range addrs {
		addrs[i] = thor.BytesToAddress([]byte(fmt.Sprintf("account%d", i)))
		f.fund(t, addrs[i], int64(i+1))
	}

	var wg sync.WaitGroup
	for i := range addrs {
		wg.Add(1)
		go func(addr thor.Address, amount int64) {
			defer wg.Done()
			_, err := f.exec(t, addr, builtin.Staking.Address, "stake", big.NewInt(amount))
			assert.NoError(t, err)
		}(addrs[i], int64(i+1))
	}
	wg.Wait()

	out, err := f.rt.View(context.Background(), &Call{To: builtin.Staking.Address, Method: "totalStaked"})
	require.NoError(t, err)
	assert.Equal(t, []any{big.NewInt(accounts * (accounts + 1) / 2)}, out)
}
