// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package testchain provides a deployed in-memory staking ledger for tests.
package testchain

import (
	"context"
	"math/big"

	"github.com/vechain/thor-staking/builtin"
	"github.com/vechain/thor-staking/logdb"
	"github.com/vechain/thor-staking/lvldb"
	"github.com/vechain/thor-staking/runtime"
	"github.com/vechain/thor-staking/state"
	"github.com/vechain/thor-staking/thor"
)

// Owner deploys the ledger and mints both tokens.
var Owner = thor.BytesToAddress([]byte("owner"))

// GenesisTime is the clock value right after deployment.
const GenesisTime uint64 = 1_700_000_000

type Chain struct {
	db    *lvldb.LevelDB
	logDB *logdb.LogDB
	clock *thor.ManualClock
	rt    *runtime.Runtime
}

// NewDefault creates a ledger deployed with the default parameters and a reward pool of one million.
func NewDefault() (*Chain, error) {
	return New(&builtin.Deployment{
		Owner:            Owner,
		StakeToken:       builtin.TokenSpec{Name: "Liquidity Token", Symbol: "LP"},
		RewardToken:      builtin.TokenSpec{Name: "Token0", Symbol: "TK0"},
		RewardPercentage: thor.DefaultRewardPercentage,
		RewardInterval:   thor.DefaultRewardInterval,
		LockInterval:     thor.DefaultLockInterval,
		RewardPool:       big.NewInt(1_000_000),
	})
}

func New(d *builtin.Deployment) (*Chain, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}
	logDB, err := logdb.NewMem()
	if err != nil {
		db.Close()
		return nil, err
	}
	clock := thor.NewManualClock(GenesisTime)
	c := &Chain{
		db:    db,
		logDB: logDB,
		clock: clock,
		rt:    runtime.New(state.New(db), clock, logDB),
	}
	if _, err := c.rt.Deploy(context.Background(), d); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Chain) Runtime() *runtime.Runtime { return c.rt }
func (c *Chain) LogDB() *logdb.LogDB       { return c.logDB }
func (c *Chain) Clock() *thor.ManualClock  { return c.clock }

// Execute runs a write call.
func (c *Chain) Execute(caller, to thor.Address, method string, args ...any) (*runtime.Receipt, error) {
	return c.rt.Execute(context.Background(), &runtime.Call{
		To:     to,
		Method: method,
		Caller: caller,
		Args:   args,
	})
}

// Fund mints amount stake tokens to account and approves the ledger to pull them.
func (c *Chain) Fund(account thor.Address, amount *big.Int) error {
	if _, err := c.Execute(Owner, builtin.StakeToken.Address, "mint", account, amount); err != nil {
		return err
	}
	_, err := c.Execute(account, builtin.StakeToken.Address, "approve", builtin.Staking.Address, amount)
	return err
}

func (c *Chain) Close() error {
	c.logDB.Close()
	return c.db.Close()
}
