// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetry(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	}, time.Millisecond, time.Second)
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)

	err = Retry(context.Background(), func() error {
		return errors.New("never")
	}, time.Millisecond, 20*time.Millisecond)
	assert.ErrorContains(t, err, "retry timeout")
	assert.ErrorContains(t, err, "never")
}
