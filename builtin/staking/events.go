// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/thor-staking/thor"
	"github.com/vechain/thor-staking/xenv"
)

var (
	StakedEvent   = thor.Keccak256([]byte("Staked(address,uint256)"))
	ClaimedEvent  = thor.Keccak256([]byte("Claimed(address,uint256)"))
	UnstakedEvent = thor.Keccak256([]byte("Unstaked(address,uint256)"))
)

var eventNames = map[thor.Bytes32]string{
	StakedEvent:   "Staked",
	ClaimedEvent:  "Claimed",
	UnstakedEvent: "Unstaked",
}

func newEvent(contract thor.Address, id thor.Bytes32, account thor.Address, amount *big.Int) *xenv.Event {
	return &xenv.Event{
		Address: contract,
		Topics:  []thor.Bytes32{id, thor.BytesToBytes32(account.Bytes())},
		Data:    math.U256Bytes(new(big.Int).Set(amount)),
	}
}

// Log is a decoded Staked, Claimed or Unstaked event.
type Log struct {
	Name    string
	Account thor.Address
	Amount  *big.Int
}

// DecodeEvent decodes ev if it is one of the staking events.
func DecodeEvent(ev *xenv.Event) (*Log, bool) {
	if len(ev.Topics) != 2 || len(ev.Data) != 32 {
		return nil, false
	}
	name, ok := eventNames[ev.Topics[0]]
	if !ok {
		return nil, false
	}
	return &Log{
		Name:    name,
		Account: thor.BytesToAddress(ev.Topics[1].Bytes()),
		Amount:  new(big.Int).SetBytes(ev.Data),
	}, true
}
