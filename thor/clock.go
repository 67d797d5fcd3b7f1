// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"sync"
	"time"
)

// Clock is the source of block time, in unix seconds.
type Clock interface {
	Now() uint64
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() uint64 {
	return uint64(time.Now().Unix())
}

// ManualClock is a clock that only moves when told to.
type ManualClock struct {
	mu  sync.Mutex
	now uint64
}

// NewManualClock creates a manual clock starting at ts.
func NewManualClock(ts uint64) *ManualClock {
	return &ManualClock{now: ts}
}

func (c *ManualClock) Now() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by the given seconds.
func (c *ManualClock) Advance(seconds uint64) {
	c.mu.Lock()
	c.now += seconds
	c.mu.Unlock()
}

// Set moves the clock to ts.
func (c *ManualClock) Set(ts uint64) {
	c.mu.Lock()
	c.now = ts
	c.mu.Unlock()
}
