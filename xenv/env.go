// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"github.com/vechain/thor-staking/state"
	"github.com/vechain/thor-staking/thor"
)

// BlockContext block context.
// Every call is executed in its own block, Time is read once from the clock.
type BlockContext struct {
	Number uint32
	Time   uint64
}

// Event is a log emitted by a native contract.
// Topics[0] is the event id.
type Event struct {
	Address thor.Address
	Topics  []thor.Bytes32
	Data    []byte
}

// Emitter receives events emitted by native contracts.
type Emitter interface {
	Emit(ev *Event)
}

// Discard is an Emitter dropping every event, used by read-only access.
var Discard Emitter = discard{}

type discard struct{}

func (discard) Emit(*Event) {}

// Environment an env to execute native method.
type Environment struct {
	method   string
	caller   thor.Address
	to       thor.Address
	args     []any
	state    *state.State
	blockCtx *BlockContext
	events   []*Event
}

// New create a new env.
func New(
	method string,
	caller thor.Address,
	to thor.Address,
	args []any,
	state *state.State,
	blockCtx *BlockContext,
) *Environment {
	return &Environment{
		method:   method,
		caller:   caller,
		to:       to,
		args:     args,
		state:    state,
		blockCtx: blockCtx,
	}
}

func (env *Environment) Method() string              { return env.method }
func (env *Environment) Caller() thor.Address        { return env.caller }
func (env *Environment) To() thor.Address            { return env.to }
func (env *Environment) State() *state.State         { return env.state }
func (env *Environment) BlockContext() *BlockContext { return env.blockCtx }

// Emit implements Emitter.
func (env *Environment) Emit(ev *Event) {
	env.events = append(env.events, ev)
}

// Events returns events emitted so far, in emission order.
func (env *Environment) Events() []*Event {
	return env.events
}
