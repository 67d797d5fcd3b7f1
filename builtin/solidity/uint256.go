// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/thor-staking/thor"
)

var (
	// ErrUnderflow is returned when a subtraction would drop a slot below zero.
	ErrUnderflow = errors.New("uint256 underflow")
	// ErrOverflow is returned when a value does not fit into 256 bits.
	ErrOverflow = errors.New("uint256 overflow")
)

// Uint256 is a wrapper for storage and retrieval of an uint256. Similar to storing an uint256 in a smart contract.
// Negative values and values wider than 256 bits are rejected.
type Uint256 struct {
	context *Context
	pos     thor.Bytes32
}

func NewUint256(context *Context, pos thor.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: pos}
}

func (u *Uint256) Get() (*big.Int, error) {
	storage, err := u.context.state.GetStorage(u.context.address, u.pos)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(storage.Bytes()), nil
}

// FitsUint256 reports whether value is representable in a uint256 slot.
func FitsUint256(value *big.Int) bool {
	return value.Sign() >= 0 && value.BitLen() <= 256
}

func (u *Uint256) Set(value *big.Int) error {
	if !FitsUint256(value) {
		return ErrOverflow
	}
	u.context.state.SetStorage(u.context.address, u.pos, thor.BytesToBytes32(value.Bytes()))
	return nil
}

func (u *Uint256) Add(value *big.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	return u.Set(storage.Add(storage, value))
}

func (u *Uint256) Sub(value *big.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	if storage.Cmp(value) < 0 {
		return ErrUnderflow
	}
	return u.Set(storage.Sub(storage, value))
}
