// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"math/big"

	"github.com/vechain/thor-staking/builtin/token"
	"github.com/vechain/thor-staking/thor"
	"github.com/vechain/thor-staking/xenv"
)

func tokenOf(env *xenv.Environment) *token.Token {
	return token.New(env.To(), env.State(), env)
}

func init() {
	defines := []struct {
		name     string
		readonly bool
		run      func(env *xenv.Environment) ([]any, error)
	}{
		{"name", true, func(env *xenv.Environment) ([]any, error) {
			v, err := tokenOf(env).Name()
			return []any{v}, err
		}},
		{"symbol", true, func(env *xenv.Environment) ([]any, error) {
			v, err := tokenOf(env).Symbol()
			return []any{v}, err
		}},
		{"totalSupply", true, func(env *xenv.Environment) ([]any, error) {
			v, err := tokenOf(env).TotalSupply()
			return []any{v}, err
		}},
		{"balanceOf", true, func(env *xenv.Environment) ([]any, error) {
			var account thor.Address
			if err := env.ParseArgs(&account); err != nil {
				return nil, err
			}
			v, err := tokenOf(env).BalanceOf(account)
			return []any{v}, err
		}},
		{"allowance", true, func(env *xenv.Environment) ([]any, error) {
			var owner, spender thor.Address
			if err := env.ParseArgs(&owner, &spender); err != nil {
				return nil, err
			}
			v, err := tokenOf(env).Allowance(owner, spender)
			return []any{v}, err
		}},
		{"mint", false, func(env *xenv.Environment) ([]any, error) {
			var (
				to     thor.Address
				amount *big.Int
			)
			if err := env.ParseArgs(&to, &amount); err != nil {
				return nil, err
			}
			return nil, tokenOf(env).Mint(env.Caller(), to, amount)
		}},
		{"transfer", false, func(env *xenv.Environment) ([]any, error) {
			var (
				to     thor.Address
				amount *big.Int
			)
			if err := env.ParseArgs(&to, &amount); err != nil {
				return nil, err
			}
			return []any{true}, tokenOf(env).Transfer(env.Caller(), to, amount)
		}},
		{"approve", false, func(env *xenv.Environment) ([]any, error) {
			var (
				spender thor.Address
				amount  *big.Int
			)
			if err := env.ParseArgs(&spender, &amount); err != nil {
				return nil, err
			}
			return []any{true}, tokenOf(env).Approve(env.Caller(), spender, amount)
		}},
		{"transferFrom", false, func(env *xenv.Environment) ([]any, error) {
			var (
				from, to thor.Address
				amount   *big.Int
			)
			if err := env.ParseArgs(&from, &to, &amount); err != nil {
				return nil, err
			}
			return []any{true}, tokenOf(env).TransferFrom(env.Caller(), from, to, amount)
		}},
	}
	for _, def := range defines {
		tokenMethods[def.name] = &nativeMethod{readonly: def.readonly, run: def.run}
	}
}
