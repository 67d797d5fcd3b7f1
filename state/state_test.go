// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/thor-staking/lvldb"
	"github.com/vechain/thor-staking/thor"
)

func newTestState(t *testing.T) (*State, *lvldb.LevelDB) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), db
}

func TestStateStorage(t *testing.T) {
	st, _ := newTestState(t)

	addr := thor.BytesToAddress([]byte("account"))
	key := thor.BytesToBytes32([]byte("key"))

	v, err := st.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.True(t, v.IsZero())

	value := thor.BytesToBytes32([]byte("value"))
	st.SetStorage(addr, key, value)

	v, err = st.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, value, v)

	st.SetStorage(addr, key, thor.Bytes32{})
	raw, err := st.GetRawStorage(addr, key)
	assert.NoError(t, err)
	assert.Empty(t, raw)
}

func TestStateRevert(t *testing.T) {
	st, _ := newTestState(t)

	addr := thor.BytesToAddress([]byte("account"))
	key := thor.BytesToBytes32([]byte("key"))

	st.SetStorage(addr, key, thor.BytesToBytes32([]byte{1}))
	chk := st.NewCheckpoint()
	st.SetStorage(addr, key, thor.BytesToBytes32([]byte{2}))

	v, _ := st.GetStorage(addr, key)
	assert.Equal(t, thor.BytesToBytes32([]byte{2}), v)

	st.RevertTo(chk)
	v, _ = st.GetStorage(addr, key)
	assert.Equal(t, thor.BytesToBytes32([]byte{1}), v)
}

func TestStateCommit(t *testing.T) {
	st, db := newTestState(t)

	addr := thor.BytesToAddress([]byte("account"))
	k1 := thor.BytesToBytes32([]byte("k1"))
	k2 := thor.BytesToBytes32([]byte("k2"))

	st.SetStorage(addr, k1, thor.BytesToBytes32([]byte{1}))
	st.SetStorage(addr, k2, thor.BytesToBytes32([]byte{2}))
	st.SetStorage(addr, k2, thor.Bytes32{})
	assert.Equal(t, 3, st.Changes())

	require.NoError(t, st.Commit())
	assert.Equal(t, 0, st.Changes())

	// a fresh state over the same db sees the committed values
	fresh := New(db)
	v, err := fresh.GetStorage(addr, k1)
	assert.NoError(t, err)
	assert.Equal(t, thor.BytesToBytes32([]byte{1}), v)

	v, err = fresh.GetStorage(addr, k2)
	assert.NoError(t, err)
	assert.True(t, v.IsZero())

	// nothing to do
	assert.NoError(t, fresh.Commit())
}

func TestEncodeDecodeStorage(t *testing.T) {
	st, _ := newTestState(t)

	addr := thor.BytesToAddress([]byte("account"))
	key := thor.BytesToBytes32([]byte("struct"))

	type record struct {
		Amount  *big.Int
		Claimed bool
	}

	err := st.EncodeStorage(addr, key, func() ([]byte, error) {
		return rlp.EncodeToBytes(&record{big.NewInt(100), true})
	})
	assert.NoError(t, err)

	var got record
	err = st.DecodeStorage(addr, key, func(raw []byte) error {
		return rlp.DecodeBytes(raw, &got)
	})
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(100), got.Amount)
	assert.True(t, got.Claimed)

	// list values are hashed when read as a word
	word, err := st.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.False(t, word.IsZero())

	err = st.EncodeStorage(addr, key, func() ([]byte, error) {
		return nil, errors.New("encode failed")
	})
	var stateErr *Error
	assert.ErrorAs(t, err, &stateErr)

	err = st.DecodeStorage(addr, key, func([]byte) error {
		return errors.New("decode failed")
	})
	assert.ErrorAs(t, err, &stateErr)
}
