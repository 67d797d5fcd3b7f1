// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"fmt"
	"math/big"

	"github.com/vechain/thor-staking/thor"
)

// AssetLedger is the fungible asset ledger holding both stake and reward assets.
type AssetLedger interface {
	// Transfer moves amount of token from from to to.
	Transfer(token, from, to thor.Address, amount *big.Int) error
	// TransferFrom moves amount of token from from to to, spending the allowance granted to spender.
	TransferFrom(token, spender, from, to thor.Address, amount *big.Int) error
}

// gateway moves assets in and out of the ledger's custody.
type gateway struct {
	self   thor.Address
	ledger AssetLedger
}

func transferFailed(cause error) error {
	return fmt.Errorf("%w: %w", ErrTransferFailed, cause)
}

// pullStakeAsset takes amount of the stake asset from from into custody.
// It requires from to have approved the ledger.
func (g *gateway) pullStakeAsset(stakeToken, from thor.Address, amount *big.Int) error {
	if err := g.ledger.TransferFrom(stakeToken, g.self, from, g.self, amount); err != nil {
		return transferFailed(err)
	}
	return nil
}

// pushRewardAsset pays amount of the reward asset out of the pool held by the ledger.
func (g *gateway) pushRewardAsset(rewardToken, to thor.Address, amount *big.Int) error {
	if err := g.ledger.Transfer(rewardToken, g.self, to, amount); err != nil {
		return transferFailed(err)
	}
	return nil
}

// returnStakeAsset gives amount of the stake asset in custody back to to.
func (g *gateway) returnStakeAsset(stakeToken, to thor.Address, amount *big.Int) error {
	if err := g.ledger.Transfer(stakeToken, g.self, to, amount); err != nil {
		return transferFailed(err)
	}
	return nil
}
