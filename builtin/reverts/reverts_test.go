// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireBytes(t *testing.T) {
	err := NewRequireError("ERROR: nothing is staked.")
	data := err.Bytes()

	assert.Equal(t, "08c379a0", hex.EncodeToString(data[:4]))
	// selector + offset + length + one padded word
	assert.Len(t, data, 4+32+32+32)

	msg, uerr := Unpack(data)
	require.NoError(t, uerr)
	assert.Equal(t, "ERROR: nothing is staked.", msg)

	var nilErr *ErrRequire
	assert.Nil(t, nilErr.Bytes())
}

func TestIsRevertErr(t *testing.T) {
	revert := NewRequireError("ERROR: already claimed the reward.")

	tests := []struct {
		name string
		err  any
		want bool
	}{
		{"nil", nil, false},
		{"not an error", "boom", false},
		{"plain error", fmt.Errorf("boom"), false},
		{"revert", revert, true},
		{"wrapped revert", errors.Wrap(revert, "stake"), true},
		{"fmt wrapped revert", fmt.Errorf("call: %w", revert), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRevertErr(tt.err))
		})
	}
}

func TestMessage(t *testing.T) {
	msg, ok := Message(errors.WithMessage(NewRequireError("ERROR: must claim reward before unstaking."), "unstake"))
	assert.True(t, ok)
	assert.Equal(t, "ERROR: must claim reward before unstaking.", msg)

	_, ok = Message(errors.New("disk full"))
	assert.False(t, ok)
}
