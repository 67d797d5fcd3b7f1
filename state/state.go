// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/thor-staking/cache"
	"github.com/vechain/thor-staking/kv"
	"github.com/vechain/thor-staking/stackedmap"
	"github.com/vechain/thor-staking/thor"
)

const defaultCacheSize = 4096

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	addr thor.Address
	key  thor.Bytes32
}

// dbKey is addr || key.
func (k storageKey) dbKey() []byte {
	b := make([]byte, 0, thor.AddressLength+32)
	b = append(b, k.addr[:]...)
	return append(b, k.key[:]...)
}

// State manages the storage of builtin contracts.
// It is not safe for concurrent use; callers serialize access.
type State struct {
	db    kv.Store
	cache *cache.LRU // committed values
	sm    *stackedmap.StackedMap
}

// New create state object.
func New(db kv.Store) *State {
	lru, _ := cache.NewLRU(defaultCacheSize)
	s := &State{
		db:    db,
		cache: lru,
	}
	s.reset()
	return s
}

func (s *State) reset() {
	s.sm = stackedmap.New(s.cacheGetter)
}

// cacheGetter implements stackedmap.MapGetter.
func (s *State) cacheGetter(key any) (any, bool, error) {
	k, ok := key.(storageKey)
	if !ok {
		panic(fmt.Errorf("unexpected key type %+v", key))
	}
	v, err := s.cache.GetOrLoad(k, func(any) (any, error) {
		raw, err := s.db.Get(k.dbKey())
		if err != nil {
			if s.db.IsNotFound(err) {
				return rlp.RawValue(nil), nil
			}
			return nil, err
		}
		return rlp.RawValue(raw), nil
	})
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr thor.Address, key thor.Bytes32) (thor.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return thor.Bytes32{}, err
	}
	if len(raw) == 0 {
		return thor.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return thor.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// special case for rlp list, it should be customized storage value
		// return hash of raw data
		return thor.Blake2b(raw), nil
	}
	return thor.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
func (s *State) SetStorage(addr thor.Address, key, value thor.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr thor.Address, key thor.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data.(rlp.RawValue), nil
}

// SetRawStorage set storage value in rlp raw.
func (s *State) SetRawStorage(addr thor.Address, key thor.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by end will be absorbed by State instance.
func (s *State) EncodeStorage(addr thor.Address, key thor.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(addr thor.Address, key thor.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Changes returns the number of pending storage writes.
func (s *State) Changes() int {
	n := 0
	s.sm.Journal(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Commit writes all journaled changes to the kv store in one batch and starts a new journal.
func (s *State) Commit() error {
	changes := make(map[storageKey]rlp.RawValue)
	var order []storageKey
	s.sm.Journal(func(k, v any) bool {
		key := k.(storageKey)
		if _, ok := changes[key]; !ok {
			order = append(order, key)
		}
		changes[key] = v.(rlp.RawValue)
		return true
	})
	if len(order) == 0 {
		return nil
	}

	batch := s.db.NewBatch()
	for _, key := range order {
		raw := changes[key]
		var err error
		if len(raw) == 0 {
			err = batch.Delete(key.dbKey())
		} else {
			err = batch.Put(key.dbKey(), raw)
		}
		if err != nil {
			return &Error{err}
		}
	}
	if err := batch.Write(); err != nil {
		return &Error{err}
	}

	for _, key := range order {
		s.cache.Add(key, changes[key])
	}
	metricStorageWrites().Add(int64(len(order)))
	s.reset()
	return nil
}
