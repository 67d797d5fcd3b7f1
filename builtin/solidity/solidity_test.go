// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/thor-staking/lvldb"
	"github.com/vechain/thor-staking/state"
	"github.com/vechain/thor-staking/thor"
)

func newTestContext(t *testing.T) *Context {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewContext(thor.Address{1}, state.New(db))
}

type record struct {
	Amount  *big.Int
	Start   uint64
	Claimed bool
}

func TestUint256(t *testing.T) {
	ctx := newTestContext(t)
	slot := NewUint256(ctx, thor.Bytes32{1})

	value, err := slot.Get()
	assert.NoError(t, err)
	assert.Equal(t, 0, value.Sign())

	require.NoError(t, slot.Set(big.NewInt(1000)))
	value, err = slot.Get()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), value)

	assert.NoError(t, slot.Add(big.NewInt(500)))
	value, _ = slot.Get()
	assert.Equal(t, big.NewInt(1500), value)

	assert.NoError(t, slot.Sub(big.NewInt(200)))
	value, _ = slot.Get()
	assert.Equal(t, big.NewInt(1300), value)

	assert.ErrorIs(t, slot.Sub(big.NewInt(1301)), ErrUnderflow)
	value, _ = slot.Get()
	assert.Equal(t, big.NewInt(1300), value)
}

func TestUint256Overflow(t *testing.T) {
	ctx := newTestContext(t)
	slot := NewUint256(ctx, thor.Bytes32{1})

	half := new(big.Int).Lsh(big.NewInt(1), 255)
	maxUint256 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

	assert.ErrorIs(t, slot.Set(new(big.Int).Lsh(big.NewInt(1), 256)), ErrOverflow)
	assert.ErrorIs(t, slot.Set(big.NewInt(-1)), ErrOverflow)

	require.NoError(t, slot.Add(half))
	assert.ErrorIs(t, slot.Add(half), ErrOverflow)
	value, _ := slot.Get()
	assert.Equal(t, half, value)

	require.NoError(t, slot.Set(maxUint256))
	value, _ = slot.Get()
	assert.Equal(t, maxUint256, value)
	assert.ErrorIs(t, slot.Add(big.NewInt(1)), ErrOverflow)

	assert.True(t, FitsUint256(maxUint256))
	assert.False(t, FitsUint256(new(big.Int).Add(maxUint256, big.NewInt(1))))
}

func TestUint64(t *testing.T) {
	ctx := newTestContext(t)
	slot := NewUint64(ctx, thor.Bytes32{2})

	value, err := slot.Get()
	assert.NoError(t, err)
	assert.Zero(t, value)

	slot.Set(100)
	value, err = slot.Get()
	assert.NoError(t, err)
	assert.Equal(t, uint64(100), value)

	slot.Set(0)
	value, _ = slot.Get()
	assert.Zero(t, value)
}

func TestAddress(t *testing.T) {
	ctx := newTestContext(t)
	slot := NewAddress(ctx, thor.Bytes32{3})

	addr, err := slot.Get()
	assert.NoError(t, err)
	assert.True(t, addr.IsZero())

	owner := thor.BytesToAddress([]byte("owner"))
	slot.Set(owner)
	addr, err = slot.Get()
	assert.NoError(t, err)
	assert.Equal(t, owner, addr)
}

func TestMapping(t *testing.T) {
	ctx := newTestContext(t)
	m := NewMapping[thor.Address, *record](ctx, thor.Bytes32{4})

	alice := thor.BytesToAddress([]byte("alice"))
	bob := thor.BytesToAddress([]byte("bob"))

	// absent keys decode to a zero struct, not nil
	got, err := m.Get(alice)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.Amount)
	assert.False(t, got.Claimed)

	require.NoError(t, m.Set(alice, &record{Amount: big.NewInt(100), Start: 1000, Claimed: true}))

	got, err = m.Get(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100), got.Amount)
	assert.Equal(t, uint64(1000), got.Start)
	assert.True(t, got.Claimed)

	// keys do not collide
	got, err = m.Get(bob)
	require.NoError(t, err)
	assert.False(t, got.Claimed)

	m.Delete(alice)
	got, err = m.Get(alice)
	require.NoError(t, err)
	assert.Nil(t, got.Amount)
}

func TestMappingValueTypes(t *testing.T) {
	ctx := newTestContext(t)
	balances := NewMapping[thor.Address, *big.Int](ctx, thor.Bytes32{5})
	flags := NewMapping[thor.Bytes32, bool](ctx, thor.Bytes32{6})

	alice := thor.BytesToAddress([]byte("alice"))

	balance, err := balances.Get(alice)
	require.NoError(t, err)
	assert.Equal(t, 0, balance.Sign())

	require.NoError(t, balances.Set(alice, big.NewInt(42)))
	balance, err = balances.Get(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(42), balance)

	key := thor.BytesToBytes32([]byte("flag"))
	require.NoError(t, flags.Set(key, true))
	flag, err := flags.Get(key)
	require.NoError(t, err)
	assert.True(t, flag)
}

func TestMappingSurvivesRevert(t *testing.T) {
	ctx := newTestContext(t)
	m := NewMapping[thor.Address, *big.Int](ctx, thor.Bytes32{7})
	alice := thor.BytesToAddress([]byte("alice"))

	require.NoError(t, m.Set(alice, big.NewInt(1)))
	chk := ctx.State().NewCheckpoint()
	require.NoError(t, m.Set(alice, big.NewInt(2)))
	ctx.State().RevertTo(chk)

	v, err := m.Get(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1), v)
}
