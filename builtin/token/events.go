// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/thor-staking/thor"
	"github.com/vechain/thor-staking/xenv"
)

var (
	TransferEvent = thor.Keccak256([]byte("Transfer(address,address,uint256)"))
	ApprovalEvent = thor.Keccak256([]byte("Approval(address,address,uint256)"))
)

func addressTopic(addr thor.Address) thor.Bytes32 {
	return thor.BytesToBytes32(addr.Bytes())
}

// NewTransferEvent builds Transfer(address indexed from, address indexed to, uint256 value).
func NewTransferEvent(token, from, to thor.Address, amount *big.Int) *xenv.Event {
	return &xenv.Event{
		Address: token,
		Topics:  []thor.Bytes32{TransferEvent, addressTopic(from), addressTopic(to)},
		Data:    math.U256Bytes(new(big.Int).Set(amount)),
	}
}

// NewApprovalEvent builds Approval(address indexed owner, address indexed spender, uint256 value).
func NewApprovalEvent(token, owner, spender thor.Address, amount *big.Int) *xenv.Event {
	return &xenv.Event{
		Address: token,
		Topics:  []thor.Bytes32{ApprovalEvent, addressTopic(owner), addressTopic(spender)},
		Data:    math.U256Bytes(new(big.Int).Set(amount)),
	}
}

// TransferLog is a decoded Transfer event.
type TransferLog struct {
	Token  thor.Address
	From   thor.Address
	To     thor.Address
	Amount *big.Int
}

// DecodeTransfer decodes ev if it is a Transfer event.
func DecodeTransfer(ev *xenv.Event) (*TransferLog, bool) {
	if len(ev.Topics) != 3 || ev.Topics[0] != TransferEvent || len(ev.Data) != 32 {
		return nil, false
	}
	return &TransferLog{
		Token:  ev.Address,
		From:   thor.BytesToAddress(ev.Topics[1].Bytes()),
		To:     thor.BytesToAddress(ev.Topics[2].Bytes()),
		Amount: new(big.Int).SetBytes(ev.Data),
	}, true
}
