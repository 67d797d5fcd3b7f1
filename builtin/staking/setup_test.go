// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/thor-staking/builtin/token"
	"github.com/vechain/thor-staking/lvldb"
	"github.com/vechain/thor-staking/state"
	"github.com/vechain/thor-staking/thor"
	"github.com/vechain/thor-staking/xenv"
)

var (
	owner = thor.BytesToAddress([]byte("owner"))
	alice = thor.BytesToAddress([]byte("alice"))
	bob   = thor.BytesToAddress([]byte("bob"))
)

type recorder struct {
	events []*xenv.Event
}

func (r *recorder) Emit(ev *xenv.Event) { r.events = append(r.events, ev) }

// testChain wires a staking ledger to two tokens over an in-memory state.
type testChain struct {
	state       *state.State
	clock       *thor.ManualClock
	rec         *recorder
	staking     *Staking
	stakeToken  *token.Token
	rewardToken *token.Token
}

func newTestChain(t *testing.T, percentage, rewardInterval, lockInterval uint64) *testChain {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := state.New(db)
	rec := &recorder{}
	c := &testChain{
		state:       st,
		clock:       thor.NewManualClock(0),
		rec:         rec,
		staking:     New(thor.StakingAddress, st, token.NewLedger(st, rec), rec),
		stakeToken:  token.New(thor.StakeTokenAddress, st, rec),
		rewardToken: token.New(thor.RewardTokenAddress, st, rec),
	}
	require.NoError(t, c.stakeToken.Initialize("Liquidity", "LP", owner))
	require.NoError(t, c.rewardToken.Initialize("Token0", "TK0", owner))
	require.NoError(t, c.staking.Initialize(&Params{
		Owner:              owner,
		StakeTokenAddress:  thor.StakeTokenAddress,
		RewardTokenAddress: thor.RewardTokenAddress,
		RewardPercentage:   percentage,
		RewardInterval:     rewardInterval,
		LockInterval:       lockInterval,
	}))
	rec.events = nil
	return c
}

// call runs f the way the runtime does: all or nothing.
func (c *testChain) call(f func() error) error {
	chk := c.state.NewCheckpoint()
	n := len(c.rec.events)
	if err := f(); err != nil {
		c.state.RevertTo(chk)
		c.rec.events = c.rec.events[:n]
		return err
	}
	return nil
}

func (c *testChain) stakeBalance(t *testing.T, addr thor.Address) *big.Int {
	bal, err := c.stakeToken.BalanceOf(addr)
	require.NoError(t, err)
	return bal
}

func (c *testChain) rewardBalance(t *testing.T, addr thor.Address) *big.Int {
	bal, err := c.rewardToken.BalanceOf(addr)
	require.NoError(t, err)
	return bal
}

func (c *testChain) stakeOf(t *testing.T, addr thor.Address) *StakeRecord {
	rec, err := c.staking.StakeOf(addr)
	require.NoError(t, err)
	return rec
}

type TestFunc func(t *testing.T)

type TestSequence struct {
	chain *testChain

	funcs []TestFunc
	mu    sync.Mutex
}

func NewSequence(chain *testChain) *TestSequence {
	return &TestSequence{funcs: make([]TestFunc, 0), chain: chain}
}

func (st *TestSequence) AddFunc(f TestFunc) *TestSequence {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.funcs = append(st.funcs, f)
	return st
}

// Fund mints stake asset to addr and approves the ledger to pull it.
func (st *TestSequence) Fund(addr thor.Address, amount int64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		c := st.chain
		err := c.call(func() error {
			if err := c.stakeToken.Mint(owner, addr, big.NewInt(amount)); err != nil {
				return err
			}
			return c.stakeToken.Approve(addr, thor.StakingAddress, big.NewInt(amount))
		})
		if err != nil {
			t.Fatalf("failed to fund %s: %v", addr, err)
		}
		t.Logf("funded %s with %d", addr, amount)
	})
}

// FundPool mints reward asset to the ledger.
func (st *TestSequence) FundPool(amount int64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		c := st.chain
		if err := c.call(func() error {
			return c.rewardToken.Mint(owner, thor.StakingAddress, big.NewInt(amount))
		}); err != nil {
			t.Fatalf("failed to fund reward pool: %v", err)
		}
	})
}

func (st *TestSequence) Advance(seconds uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		st.chain.clock.Advance(seconds)
		t.Logf("time advanced to %d", st.chain.clock.Now())
	})
}

func (st *TestSequence) Stake(addr thor.Address, amount int64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		c := st.chain
		if err := c.call(func() error {
			return c.staking.Stake(addr, big.NewInt(amount), c.clock.Now())
		}); err != nil {
			t.Fatalf("failed to stake for %s: %v", addr, err)
		}
		t.Logf("%s staked %d liquidity tokens", addr, amount)
	})
}

func (st *TestSequence) Claim(addr thor.Address, expectedReward int64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		c := st.chain
		var reward *big.Int
		if err := c.call(func() (err error) {
			reward, err = c.staking.Claim(addr, c.clock.Now())
			return
		}); err != nil {
			t.Fatalf("failed to claim for %s: %v", addr, err)
		}
		assert.Equal(t, big.NewInt(expectedReward).String(), reward.String(), "reward of %s", addr)
		t.Logf("%s claimed %s reward tokens", addr, reward)
	})
}

func (st *TestSequence) Unstake(addr thor.Address, expectedAmount int64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		c := st.chain
		var amount *big.Int
		if err := c.call(func() (err error) {
			amount, err = c.staking.Unstake(addr)
			return
		}); err != nil {
			t.Fatalf("failed to unstake for %s: %v", addr, err)
		}
		assert.Equal(t, big.NewInt(expectedAmount).String(), amount.String(), "unstaked amount of %s", addr)
		t.Logf("%s unstaked %s liquidity tokens", addr, amount)
	})
}

// ExpectStakeErr asserts staking fails with expected and leaves no trace.
func (st *TestSequence) ExpectStakeErr(addr thor.Address, amount int64, expected error) *TestSequence {
	return st.expectErr(expected, func() error {
		return st.chain.staking.Stake(addr, big.NewInt(amount), st.chain.clock.Now())
	})
}

func (st *TestSequence) ExpectClaimErr(addr thor.Address, expected error) *TestSequence {
	return st.expectErr(expected, func() error {
		_, err := st.chain.staking.Claim(addr, st.chain.clock.Now())
		return err
	})
}

func (st *TestSequence) ExpectUnstakeErr(addr thor.Address, expected error) *TestSequence {
	return st.expectErr(expected, func() error {
		_, err := st.chain.staking.Unstake(addr)
		return err
	})
}

func (st *TestSequence) expectErr(expected error, f func() error) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		c := st.chain
		events := len(c.rec.events)
		err := c.call(f)
		assert.ErrorIs(t, err, expected)
		assert.Len(t, c.rec.events, events, "no events on failure")
	})
}

func (st *TestSequence) AssertRecord(addr thor.Address, amount int64, start, end uint64, claimed bool) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		rec := st.chain.stakeOf(t, addr)
		assert.Equal(t, big.NewInt(amount).String(), rec.Amount.String(), "amount of %s", addr)
		assert.Equal(t, start, rec.StakeStartTimestamp, "stake start of %s", addr)
		assert.Equal(t, end, rec.StakeEndTimestamp, "stake end of %s", addr)
		assert.Equal(t, claimed, rec.Claimed, "claimed of %s", addr)
	})
}

func (st *TestSequence) Run(t *testing.T) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, f := range st.funcs {
		f(t)
	}
}
