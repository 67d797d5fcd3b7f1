// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/thor-staking/state"
	"github.com/vechain/thor-staking/thor"
	"github.com/vechain/thor-staking/xenv"
)

// ErrUnknownToken is returned when no token is initialized at the address.
var ErrUnknownToken = errors.New("unknown token")

// Ledger gives access to every token living in a state.
type Ledger struct {
	state   *state.State
	emitter xenv.Emitter
}

func NewLedger(state *state.State, emitter xenv.Emitter) *Ledger {
	return &Ledger{state: state, emitter: emitter}
}

// Token returns the initialized token at addr.
func (l *Ledger) Token(addr thor.Address) (*Token, error) {
	tok := New(addr, l.state, l.emitter)
	ok, err := tok.Exists()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Wrap(ErrUnknownToken, addr.String())
	}
	return tok, nil
}

func (l *Ledger) Transfer(token, from, to thor.Address, amount *big.Int) error {
	tok, err := l.Token(token)
	if err != nil {
		return err
	}
	return tok.Transfer(from, to, amount)
}

func (l *Ledger) TransferFrom(token, spender, from, to thor.Address, amount *big.Int) error {
	tok, err := l.Token(token)
	if err != nil {
		return err
	}
	return tok.TransferFrom(spender, from, to, amount)
}
