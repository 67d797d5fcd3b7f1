// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"
	"math/big"
	mathrand "math/rand/v2"

	"github.com/vechain/thor-staking/thor"
)

func RandAddress() (addr thor.Address) {
	rand.Read(addr[:])
	return
}

func RandBytes32() (b thor.Bytes32) {
	rand.Read(b[:])
	return
}

// RandAmount returns a positive amount below n.
func RandAmount(n int64) *big.Int {
	return big.NewInt(mathrand.Int64N(n-1) + 1) //#nosec G404
}
