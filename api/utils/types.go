// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/vechain/thor-staking/builtin/staking"
	"github.com/vechain/thor-staking/builtin/token"
	"github.com/vechain/thor-staking/runtime"
	"github.com/vechain/thor-staking/thor"
	"github.com/vechain/thor-staking/xenv"
)

// Event is the JSON form of an emitted event.
type Event struct {
	Address string        `json:"address"`
	Topics  []string      `json:"topics"`
	Data    hexutil.Bytes `json:"data"`
	// Name is set for events of the builtin contracts.
	Name string `json:"name,omitempty"`
}

func ConvertEvent(ev *xenv.Event) *Event {
	topics := make([]string, 0, len(ev.Topics))
	for _, t := range ev.Topics {
		topics = append(topics, t.String())
	}
	e := &Event{
		Address: ev.Address.String(),
		Topics:  topics,
		Data:    ev.Data,
	}
	if l, ok := staking.DecodeEvent(ev); ok {
		e.Name = l.Name
	} else if _, ok := token.DecodeTransfer(ev); ok {
		e.Name = "Transfer"
	} else if len(ev.Topics) > 0 && ev.Topics[0] == token.ApprovalEvent {
		e.Name = "Approval"
	}
	return e
}

// Receipt is the JSON form of a committed call.
type Receipt struct {
	BlockNumber uint32   `json:"blockNumber"`
	BlockTime   uint64   `json:"blockTime"`
	Caller      string   `json:"caller"`
	To          string   `json:"to"`
	Method      string   `json:"method"`
	Outputs     []any    `json:"outputs"`
	Events      []*Event `json:"events"`
}

func ConvertReceipt(r *runtime.Receipt) *Receipt {
	events := make([]*Event, 0, len(r.Events))
	for _, ev := range r.Events {
		events = append(events, ConvertEvent(ev))
	}
	return &Receipt{
		BlockNumber: r.BlockNumber,
		BlockTime:   r.BlockTime,
		Caller:      r.Caller.String(),
		To:          r.To.String(),
		Method:      r.Method,
		Outputs:     ConvertOutputs(r.Outputs),
		Events:      events,
	}
}

// ConvertOutputs renders amounts as decimal strings and addresses as hex.
func ConvertOutputs(outputs []any) []any {
	converted := make([]any, 0, len(outputs))
	for _, o := range outputs {
		switch v := o.(type) {
		case *big.Int:
			converted = append(converted, v.String())
		case thor.Address:
			converted = append(converted, v.String())
		default:
			converted = append(converted, v)
		}
	}
	return converted
}
