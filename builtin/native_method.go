// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/pkg/errors"

	"github.com/vechain/thor-staking/builtin/token"
	"github.com/vechain/thor-staking/thor"
	"github.com/vechain/thor-staking/xenv"
)

// ErrUnknownMethod is returned when the target contract has no such method.
var ErrUnknownMethod = errors.New("unknown method")

// nativeMethod describes a native call.
type nativeMethod struct {
	readonly bool
	run      func(env *xenv.Environment) ([]any, error)
}

var (
	stakingMethods = make(map[string]*nativeMethod)
	tokenMethods   = make(map[string]*nativeMethod)
)

func lookup(env *xenv.Environment) (*nativeMethod, error) {
	methods := tokenMethods
	if env.To() == Staking.Address {
		methods = stakingMethods
	}
	if m, ok := methods[env.Method()]; ok {
		return m, nil
	}
	return nil, errors.Wrapf(ErrUnknownMethod, "%s on %s", env.Method(), env.To())
}

// IsReadOnly reports whether method on contract to never writes state.
func IsReadOnly(to thor.Address, method string) (bool, error) {
	m, err := lookup(xenv.New(method, thor.Address{}, to, nil, nil, nil))
	if err != nil {
		return false, err
	}
	return m.readonly, nil
}

// Call runs the native method described by env.
// Revert errors are returned as is, the caller is expected to roll back state on any error.
func Call(env *xenv.Environment) ([]any, error) {
	m, err := lookup(env)
	if err != nil {
		return nil, err
	}
	if env.To() != Staking.Address {
		// the target token must be deployed
		if _, err := token.NewLedger(env.State(), xenv.Discard).Token(env.To()); err != nil {
			return nil, err
		}
	}
	return m.run(env)
}
