// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import "github.com/vechain/thor-staking/builtin/reverts"

var (
	ErrNothingStaked            = reverts.NewRequireError("ERROR: nothing is staked.")
	ErrLockIntervalNotElapsed   = reverts.NewRequireError("ERROR: must wait for lock interval to pass.")
	ErrAlreadyClaimed           = reverts.NewRequireError("ERROR: already claimed the reward.")
	ErrMustClaimBeforeUnstake   = reverts.NewRequireError("ERROR: must claim reward before unstaking.")
	ErrMustUnstakeBeforeRestake = reverts.NewRequireError("ERROR: must unstake after claiming the reward to stake again.")
	ErrAlreadyStaked            = reverts.NewRequireError("ERROR: already staked, claim and unstake first.")
	ErrZeroAmount               = reverts.NewRequireError("ERROR: amount must be greater than zero.")
	ErrUnauthorized             = reverts.NewRequireError("Ownable: caller is not the owner")
	ErrTransferFailed           = reverts.NewRequireError("ERROR: transfer failed.")
	ErrOverflow                 = reverts.NewRequireError("ERROR: arithmetic overflow.")
	ErrZeroRewardInterval       = reverts.NewRequireError("ERROR: division by zero reward interval.")
	ErrAlreadyInitialized       = reverts.NewRequireError("ERROR: already initialized.")
	ErrZeroAddress              = reverts.NewRequireError("ERROR: zero address.")
)
