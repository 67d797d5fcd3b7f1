// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements a fungible token ledger with ERC20 semantics.
package token

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/thor-staking/builtin/reverts"
	"github.com/vechain/thor-staking/builtin/solidity"
	"github.com/vechain/thor-staking/state"
	"github.com/vechain/thor-staking/thor"
	"github.com/vechain/thor-staking/xenv"
)

var (
	ErrInsufficientBalance   = reverts.NewRequireError("ERC20: transfer amount exceeds balance")
	ErrInsufficientAllowance = reverts.NewRequireError("ERC20: insufficient allowance")
	ErrZeroAddress           = reverts.NewRequireError("ERC20: zero address")
	ErrNotMinter             = reverts.NewRequireError("ERC20: caller is not the minter")
	ErrAlreadyInitialized    = reverts.NewRequireError("ERC20: already initialized")
	ErrSupplyOverflow        = reverts.NewRequireError("ERC20: total supply overflows uint256")
)

var (
	metaSlot        = thor.Blake2b([]byte("meta"))
	minterSlot      = thor.Blake2b([]byte("minter"))
	totalSupplySlot = thor.Blake2b([]byte("total-supply"))
	balancesSlot    = thor.Blake2b([]byte("balances"))
	allowancesSlot  = thor.Blake2b([]byte("allowances"))
)

type meta struct {
	Name   string
	Symbol string
}

// Token is a fungible token bound to a state and an event emitter.
type Token struct {
	addr        thor.Address
	state       *state.State
	emitter     xenv.Emitter
	minter      *solidity.Address
	totalSupply *solidity.Uint256
	balances    *solidity.Mapping[thor.Address, *big.Int]
	allowances  *solidity.Mapping[thor.Bytes32, *big.Int]
}

// New binds the token at addr. Events are delivered to emitter, which may be xenv.Discard.
func New(addr thor.Address, state *state.State, emitter xenv.Emitter) *Token {
	ctx := solidity.NewContext(addr, state)
	return &Token{
		addr:        addr,
		state:       state,
		emitter:     emitter,
		minter:      solidity.NewAddress(ctx, minterSlot),
		totalSupply: solidity.NewUint256(ctx, totalSupplySlot),
		balances:    solidity.NewMapping[thor.Address, *big.Int](ctx, balancesSlot),
		allowances:  solidity.NewMapping[thor.Bytes32, *big.Int](ctx, allowancesSlot),
	}
}

func (t *Token) Address() thor.Address {
	return t.addr
}

func allowanceKey(owner, spender thor.Address) thor.Bytes32 {
	return thor.Blake2b(owner.Bytes(), spender.Bytes())
}

func (t *Token) getMeta() (*meta, error) {
	var m meta
	err := t.state.DecodeStorage(t.addr, metaSlot, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &m)
	})
	return &m, err
}

// Initialize sets token metadata and the only account allowed to mint.
func (t *Token) Initialize(name, symbol string, minter thor.Address) error {
	ok, err := t.Exists()
	if err != nil {
		return err
	}
	if ok {
		return ErrAlreadyInitialized
	}
	if minter.IsZero() {
		return ErrZeroAddress
	}
	if err := t.state.EncodeStorage(t.addr, metaSlot, func() ([]byte, error) {
		return rlp.EncodeToBytes(&meta{Name: name, Symbol: symbol})
	}); err != nil {
		return err
	}
	t.minter.Set(minter)
	return nil
}

// Exists returns whether the token is initialized.
func (t *Token) Exists() (bool, error) {
	minter, err := t.minter.Get()
	if err != nil {
		return false, err
	}
	return !minter.IsZero(), nil
}

func (t *Token) Name() (string, error) {
	m, err := t.getMeta()
	if err != nil {
		return "", err
	}
	return m.Name, nil
}

func (t *Token) Symbol() (string, error) {
	m, err := t.getMeta()
	if err != nil {
		return "", err
	}
	return m.Symbol, nil
}

func (t *Token) Minter() (thor.Address, error) {
	return t.minter.Get()
}

func (t *Token) TotalSupply() (*big.Int, error) {
	return t.totalSupply.Get()
}

func (t *Token) BalanceOf(addr thor.Address) (*big.Int, error) {
	return t.balances.Get(addr)
}

func (t *Token) Allowance(owner, spender thor.Address) (*big.Int, error) {
	return t.allowances.Get(allowanceKey(owner, spender))
}

// Mint creates amount tokens for to. Only the minter may mint.
func (t *Token) Mint(caller, to thor.Address, amount *big.Int) error {
	minter, err := t.minter.Get()
	if err != nil {
		return err
	}
	if minter.IsZero() || caller != minter {
		return ErrNotMinter
	}
	if to.IsZero() {
		return ErrZeroAddress
	}
	supply, err := t.totalSupply.Get()
	if err != nil {
		return err
	}
	bal, err := t.balances.Get(to)
	if err != nil {
		return err
	}
	supply.Add(supply, amount)
	bal.Add(bal, amount)
	if !solidity.FitsUint256(supply) || !solidity.FitsUint256(bal) {
		return ErrSupplyOverflow
	}
	if err := t.balances.Set(to, bal); err != nil {
		return err
	}
	if err := t.totalSupply.Set(supply); err != nil {
		return err
	}
	t.emitter.Emit(NewTransferEvent(t.addr, thor.Address{}, to, amount))
	return nil
}

// Transfer moves amount from the caller's balance to to.
func (t *Token) Transfer(from, to thor.Address, amount *big.Int) error {
	return t.transfer(from, to, amount)
}

// Approve sets the amount spender may move out of owner's balance.
func (t *Token) Approve(owner, spender thor.Address, amount *big.Int) error {
	if owner.IsZero() || spender.IsZero() {
		return ErrZeroAddress
	}
	if err := t.allowances.Set(allowanceKey(owner, spender), amount); err != nil {
		return err
	}
	t.emitter.Emit(NewApprovalEvent(t.addr, owner, spender, amount))
	return nil
}

// TransferFrom moves amount from from to to, spending spender's allowance.
func (t *Token) TransferFrom(spender, from, to thor.Address, amount *big.Int) error {
	key := allowanceKey(from, spender)
	allowance, err := t.allowances.Get(key)
	if err != nil {
		return err
	}
	if allowance.Cmp(amount) < 0 {
		return ErrInsufficientAllowance
	}
	if err := t.transfer(from, to, amount); err != nil {
		return err
	}
	return t.allowances.Set(key, allowance.Sub(allowance, amount))
}

func (t *Token) transfer(from, to thor.Address, amount *big.Int) error {
	if from.IsZero() || to.IsZero() {
		return ErrZeroAddress
	}
	fromBal, err := t.balances.Get(from)
	if err != nil {
		return err
	}
	if fromBal.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	if err := t.balances.Set(from, fromBal.Sub(fromBal, amount)); err != nil {
		return err
	}
	// read after write, from may equal to
	toBal, err := t.balances.Get(to)
	if err != nil {
		return err
	}
	if err := t.balances.Set(to, toBal.Add(toBal, amount)); err != nil {
		return err
	}
	t.emitter.Emit(NewTransferEvent(t.addr, from, to, amount))
	return nil
}
