// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/vechain/thor-staking/thor"
)

// ErrInvalidArgs is returned when call arguments can not be decoded.
var ErrInvalidArgs = errors.New("invalid arguments")

// ParseArgs decodes the positional call arguments into dst.
// Supported targets are *thor.Address, **big.Int, *uint64 and *string.
func (env *Environment) ParseArgs(dst ...any) error {
	if len(dst) != len(env.args) {
		return errors.Wrapf(ErrInvalidArgs, "%s: want %d args, got %d", env.method, len(dst), len(env.args))
	}
	for i, d := range dst {
		if err := convertArg(env.args[i], d); err != nil {
			return errors.Wrapf(ErrInvalidArgs, "%s: arg %d: %v", env.method, i, err)
		}
	}
	return nil
}

func convertArg(src, dst any) error {
	switch d := dst.(type) {
	case *thor.Address:
		switch s := src.(type) {
		case thor.Address:
			*d = s
		case string:
			addr, err := thor.ParseAddress(s)
			if err != nil {
				return err
			}
			*d = addr
		default:
			return fmt.Errorf("unexpected %T for address", src)
		}
	case **big.Int:
		v, err := toBig(src)
		if err != nil {
			return err
		}
		*d = v
	case *uint64:
		v, err := toBig(src)
		if err != nil {
			return err
		}
		if !v.IsUint64() {
			return errors.New("exceeds uint64")
		}
		*d = v.Uint64()
	case *string:
		s, ok := src.(string)
		if !ok {
			return fmt.Errorf("unexpected %T for string", src)
		}
		*d = s
	default:
		return fmt.Errorf("unsupported target %T", dst)
	}
	return nil
}

// toBig accepts integers, *big.Int and decimal or 0x prefixed hex strings.
// Negative values and values wider than 256 bits are rejected.
func toBig(src any) (*big.Int, error) {
	var v *big.Int
	switch s := src.(type) {
	case *big.Int:
		if s == nil {
			return nil, errors.New("nil integer")
		}
		v = new(big.Int).Set(s)
	case uint64:
		v = new(big.Int).SetUint64(s)
	case uint32:
		v = new(big.Int).SetUint64(uint64(s))
	case int:
		v = big.NewInt(int64(s))
	case int64:
		v = big.NewInt(s)
	case string:
		parsed, ok := math.ParseBig256(s)
		if !ok {
			return nil, fmt.Errorf("invalid integer %s", strconv.Quote(s))
		}
		v = parsed
	default:
		return nil, fmt.Errorf("unexpected %T for integer", src)
	}
	if v.Sign() < 0 {
		return nil, errors.New("negative integer")
	}
	if v.BitLen() > 256 {
		return nil, errors.New("exceeds uint256")
	}
	return v, nil
}
