// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	errorSelector = crypto.Keccak256([]byte("Error(string)"))[:4]
	stringArgs    = func() abi.Arguments {
		typ, _ := abi.NewType("string", "", nil)
		return abi.Arguments{{Type: typ}}
	}()
)

// ErrRequire is a failed precondition of a native contract call.
// The call is reverted and the message returned to the caller.
type ErrRequire struct {
	message string
}

func NewRequireError(message string) *ErrRequire {
	return &ErrRequire{
		message: message,
	}
}

func (e *ErrRequire) Error() string {
	return e.message
}

// Bytes returns the revert reason abi encoded as Error(string).
func (e *ErrRequire) Bytes() []byte {
	if e == nil {
		return nil
	}
	packed, err := stringArgs.Pack(e.message)
	if err != nil {
		return nil
	}
	return append(append([]byte{}, errorSelector...), packed...)
}

// Unpack decodes the message of abi encoded Error(string) revert data.
func Unpack(data []byte) (string, error) {
	return abi.UnpackRevert(data)
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRequire
	if errors.As(e, &ve) {
		return ve != nil
	}
	return false
}

// Message returns the revert message carried by err, if any.
func Message(err error) (string, bool) {
	var ve *ErrRequire
	if errors.As(err, &ve) && ve != nil {
		return ve.message, true
	}
	return "", false
}
