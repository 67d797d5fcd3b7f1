// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logs

import (
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/vechain/thor-staking/logdb"
)

type LogMeta struct {
	BlockNumber uint32 `json:"blockNumber"`
	BlockTime   uint64 `json:"blockTime"`
	Index       uint32 `json:"index"`
}

type FilteredEvent struct {
	Address string        `json:"address"`
	Topics  []string      `json:"topics"`
	Data    hexutil.Bytes `json:"data"`
	Meta    LogMeta       `json:"meta"`
}

func convertEvent(ev *logdb.Event) *FilteredEvent {
	fe := &FilteredEvent{
		Address: ev.Address.String(),
		Topics:  make([]string, 0, len(ev.Topics)),
		Data:    ev.Data,
		Meta: LogMeta{
			BlockNumber: ev.BlockNumber,
			BlockTime:   ev.BlockTime,
			Index:       ev.Index,
		},
	}
	for _, topic := range ev.Topics {
		if topic != nil {
			fe.Topics = append(fe.Topics, topic.String())
		}
	}
	return fe
}

type FilteredTransfer struct {
	Token     string  `json:"token"`
	Sender    string  `json:"sender"`
	Recipient string  `json:"recipient"`
	Amount    string  `json:"amount"`
	Meta      LogMeta `json:"meta"`
}

func convertTransfer(tr *logdb.Transfer) *FilteredTransfer {
	return &FilteredTransfer{
		Token:     tr.Token.String(),
		Sender:    tr.Sender.String(),
		Recipient: tr.Recipient.String(),
		Amount:    tr.Amount.String(),
		Meta: LogMeta{
			BlockNumber: tr.BlockNumber,
			BlockTime:   tr.BlockTime,
			Index:       tr.Index,
		},
	}
}
