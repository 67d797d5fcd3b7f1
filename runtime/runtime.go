// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/thor-staking/builtin"
	"github.com/vechain/thor-staking/builtin/reverts"
	"github.com/vechain/thor-staking/builtin/solidity"
	"github.com/vechain/thor-staking/log"
	"github.com/vechain/thor-staking/state"
	"github.com/vechain/thor-staking/thor"
	"github.com/vechain/thor-staking/xenv"
)

var logger = log.WithContext("pkg", "runtime")

var (
	runtimeAddress = thor.BytesToAddress([]byte("Runtime"))
	headSlot       = thor.Blake2b([]byte("head"))
)

// Call is a native contract call.
type Call struct {
	To     thor.Address
	Method string
	Caller thor.Address
	Args   []any
}

// Receipt is the result of a successful call.
type Receipt struct {
	BlockNumber uint32
	BlockTime   uint64
	Caller      thor.Address
	To          thor.Address
	Method      string
	Outputs     []any
	// Events in emission order, asset transfers precede the event of the calling contract.
	Events []*xenv.Event
}

// LogWriter persists the events of committed calls.
type LogWriter interface {
	Write(blockNumber uint32, blockTime uint64, events []*xenv.Event) error
}

// Runtime executes calls one at a time.
// Every call is all or nothing: a failed call leaves neither state changes nor events.
// Each committed write call is sealed in its own block.
type Runtime struct {
	mu    sync.Mutex
	state *state.State
	clock thor.Clock
	logs  LogWriter
	head  *solidity.Uint64
}

// New create a Runtime object. logs may be nil.
func New(state *state.State, clock thor.Clock, logs LogWriter) *Runtime {
	return &Runtime{
		state: state,
		clock: clock,
		logs:  logs,
		head:  solidity.NewUint64(solidity.NewContext(runtimeAddress, state), headSlot),
	}
}

// Clock returns the clock providing block time.
func (rt *Runtime) Clock() thor.Clock { return rt.clock }

// BlockNumber returns the number of the last sealed block.
func (rt *Runtime) BlockNumber() (uint32, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	n, err := rt.head.Get()
	return uint32(n), err
}

// View executes a read only call and never changes state.
func (rt *Runtime) View(ctx context.Context, call *Call) ([]any, error) {
	readonly, err := builtin.IsReadOnly(call.To, call.Method)
	if err != nil {
		return nil, err
	}
	if !readonly {
		return nil, errors.Errorf("%s is not read only", call.Method)
	}
	receipt, err := rt.Execute(ctx, call)
	if err != nil {
		return nil, err
	}
	return receipt.Outputs, nil
}

// Execute executes call. Read only calls are executed without sealing a block.
func (rt *Runtime) Execute(ctx context.Context, call *Call) (*Receipt, error) {
	readonly, err := builtin.IsReadOnly(call.To, call.Method)
	if err != nil {
		return nil, err
	}
	return rt.execute(ctx, call.Method, call.Caller, call.To, call.Args, readonly, builtin.Call)
}

// Deploy creates the tokens and the staking ledger.
func (rt *Runtime) Deploy(ctx context.Context, d *builtin.Deployment) (*Receipt, error) {
	return rt.execute(ctx, "deploy", d.Owner, builtin.Staking.Address, nil, false, func(env *xenv.Environment) ([]any, error) {
		return nil, builtin.Deploy(env, d)
	})
}

func (rt *Runtime) execute(
	ctx context.Context,
	method string,
	caller thor.Address,
	to thor.Address,
	args []any,
	readonly bool,
	run func(env *xenv.Environment) ([]any, error),
) (receipt *Receipt, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	start := time.Now()
	defer func() {
		observeCall(method, err, time.Since(start))
	}()

	head, err := rt.head.Get()
	if err != nil {
		return nil, err
	}
	blockCtx := &xenv.BlockContext{
		Number: uint32(head),
		Time:   rt.clock.Now(),
	}
	if !readonly {
		blockCtx.Number++
	}

	checkpoint := rt.state.NewCheckpoint()
	env := xenv.New(method, caller, to, args, rt.state, blockCtx)

	outputs, err := run(env)
	if err != nil || readonly {
		rt.state.RevertTo(checkpoint)
	}
	if err != nil {
		if reverts.IsRevertErr(err) {
			logger.Debug("call reverted", "method", method, "caller", caller, "err", err)
		} else {
			logger.Warn("call failed", "method", method, "caller", caller, "err", err)
		}
		return nil, err
	}

	receipt = &Receipt{
		BlockNumber: blockCtx.Number,
		BlockTime:   blockCtx.Time,
		Caller:      caller,
		To:          to,
		Method:      method,
		Outputs:     outputs,
		Events:      env.Events(),
	}
	if readonly {
		return receipt, nil
	}

	rt.head.Set(uint64(blockCtx.Number))
	if err := rt.state.Commit(); err != nil {
		rt.state.RevertTo(checkpoint)
		return nil, errors.WithMessage(err, "commit state")
	}

	if rt.logs != nil && len(receipt.Events) > 0 {
		if err := rt.logs.Write(blockCtx.Number, blockCtx.Time, receipt.Events); err != nil {
			logger.Error("failed to write logs", "block", blockCtx.Number, "err", err)
		}
	}
	logger.Debug("call committed",
		"block", blockCtx.Number,
		"method", method,
		"caller", caller,
		"events", len(receipt.Events),
	)
	return receipt, nil
}
