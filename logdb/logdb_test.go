// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/thor-staking/builtin/token"
	"github.com/vechain/thor-staking/thor"
	"github.com/vechain/thor-staking/xenv"
)

var (
	stakeToken  = thor.BytesToAddress([]byte("stake"))
	rewardToken = thor.BytesToAddress([]byte("reward"))
	contract    = thor.BytesToAddress([]byte("contract"))
	alice       = thor.BytesToAddress([]byte("alice"))
	bob         = thor.BytesToAddress([]byte("bob"))
	stakedID    = thor.Keccak256([]byte("Staked(address,uint256)"))
)

func stakedEvent(account thor.Address, amount int64) *xenv.Event {
	return &xenv.Event{
		Address: contract,
		Topics:  []thor.Bytes32{stakedID, thor.BytesToBytes32(account.Bytes())},
		Data:    thor.BytesToBytes32(big.NewInt(amount).Bytes()).Bytes(),
	}
}

func newTestDB(t *testing.T) *LogDB {
	db, err := NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// block 1: alice stakes 100
	require.NoError(t, db.Write(1, 1000, []*xenv.Event{
		token.NewTransferEvent(stakeToken, alice, contract, big.NewInt(100)),
		stakedEvent(alice, 100),
	}))
	// block 2: bob stakes 50
	require.NoError(t, db.Write(2, 1010, []*xenv.Event{
		token.NewTransferEvent(stakeToken, bob, contract, big.NewInt(50)),
		stakedEvent(bob, 50),
	}))
	// block 3: reward for alice
	require.NoError(t, db.Write(3, 1200, []*xenv.Event{
		token.NewTransferEvent(rewardToken, contract, alice, big.NewInt(20)),
	}))
	return db
}

func TestFilterEvents(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	all, err := db.FilterEvents(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, uint32(1), all[0].BlockNumber)
	assert.Equal(t, uint32(0), all[0].Index)
	assert.Equal(t, uint64(1000), all[0].BlockTime)
	assert.Equal(t, stakeToken, all[0].Address)
	assert.Equal(t, token.TransferEvent, *all[0].Topics[0])
	assert.Equal(t, uint32(1), all[1].Index)
	assert.Nil(t, all[1].Topics[2])

	byAddr, err := db.FilterEvents(ctx, &EventFilter{
		CriteriaSet: []*EventCriteria{{Address: &contract}},
	})
	require.NoError(t, err)
	require.Len(t, byAddr, 2)
	assert.Equal(t, uint32(1), byAddr[0].BlockNumber)
	assert.Equal(t, uint32(2), byAddr[1].BlockNumber)

	bobTopic := thor.BytesToBytes32(bob.Bytes())
	byTopic, err := db.FilterEvents(ctx, &EventFilter{
		CriteriaSet: []*EventCriteria{{Topics: [3]*thor.Bytes32{&stakedID, &bobTopic}}},
	})
	require.NoError(t, err)
	require.Len(t, byTopic, 1)
	assert.Equal(t, uint32(2), byTopic[0].BlockNumber)
	assert.Equal(t, big.NewInt(50), new(big.Int).SetBytes(byTopic[0].Data))

	// criteria are OR'ed
	either, err := db.FilterEvents(ctx, &EventFilter{
		CriteriaSet: []*EventCriteria{{Address: &contract}, {Address: &rewardToken}},
	})
	require.NoError(t, err)
	assert.Len(t, either, 3)
}

func TestFilterEventsRangeAndOptions(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	byTime, err := db.FilterEvents(ctx, &EventFilter{
		Range: &Range{Unit: Time, From: 1005, To: 1100},
	})
	require.NoError(t, err)
	require.Len(t, byTime, 2)
	for _, ev := range byTime {
		assert.Equal(t, uint32(2), ev.BlockNumber)
	}

	byBlock, err := db.FilterEvents(ctx, &EventFilter{
		Range: &Range{Unit: Block, From: 2, To: 3},
		Order: DESC,
	})
	require.NoError(t, err)
	require.Len(t, byBlock, 3)
	assert.Equal(t, uint32(3), byBlock[0].BlockNumber)
	assert.Equal(t, uint32(2), byBlock[2].BlockNumber)
	assert.Equal(t, uint32(0), byBlock[2].Index)

	// To below From leaves the range open ended
	open, err := db.FilterEvents(ctx, &EventFilter{
		Range: &Range{Unit: Block, From: 3},
	})
	require.NoError(t, err)
	assert.Len(t, open, 1)

	page, err := db.FilterEvents(ctx, &EventFilter{
		Options: &Options{Offset: 1, Limit: 2},
	})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, uint32(1), page[0].BlockNumber)
	assert.Equal(t, uint32(1), page[0].Index)
	assert.Equal(t, uint32(2), page[1].BlockNumber)
}

func TestFilterTransfers(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	all, err := db.FilterTransfers(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, stakeToken, all[0].Token)
	assert.Equal(t, alice, all[0].Sender)
	assert.Equal(t, contract, all[0].Recipient)
	assert.Equal(t, "100", all[0].Amount.String())
	assert.Equal(t, uint32(0), all[1].Index)

	toAlice, err := db.FilterTransfers(ctx, &TransferFilter{
		CriteriaSet: []*TransferCriteria{{Recipient: &alice}},
	})
	require.NoError(t, err)
	require.Len(t, toAlice, 1)
	assert.Equal(t, rewardToken, toAlice[0].Token)
	assert.Equal(t, "20", toAlice[0].Amount.String())
	assert.Equal(t, uint64(1200), toAlice[0].BlockTime)

	stakes, err := db.FilterTransfers(ctx, &TransferFilter{
		CriteriaSet: []*TransferCriteria{{Token: &stakeToken, Sender: &bob}},
	})
	require.NoError(t, err)
	require.Len(t, stakes, 1)
	assert.Equal(t, uint32(2), stakes[0].BlockNumber)

	desc, err := db.FilterTransfers(ctx, &TransferFilter{
		Order:   DESC,
		Options: &Options{Limit: 1},
	})
	require.NoError(t, err)
	require.Len(t, desc, 1)
	assert.Equal(t, uint32(3), desc[0].BlockNumber)

	none, err := db.FilterTransfers(ctx, &TransferFilter{
		Range: &Range{Unit: Time, From: 5000, To: 6000},
	})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCanceledContext(t *testing.T) {
	db := newTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := db.FilterEvents(ctx, nil)
	assert.Error(t, err)
	_, err = db.FilterTransfers(ctx, nil)
	assert.Error(t, err)
}

func TestPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.db")
	db, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, path, db.Path())
	assert.NotEmpty(t, db.DriverVersion())
	require.NoError(t, db.Write(7, 70, []*xenv.Event{
		token.NewTransferEvent(stakeToken, alice, bob, big.NewInt(1)),
	}))
	require.NoError(t, db.Close())

	db, err = New(path)
	require.NoError(t, err)
	defer db.Close()
	transfers, err := db.FilterTransfers(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	assert.Equal(t, uint32(7), transfers[0].BlockNumber)
}

func TestWriteEmpty(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Write(1, 1, nil))
	events, err := db.FilterEvents(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, events)
}
