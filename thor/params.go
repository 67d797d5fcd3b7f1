// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

// Default deployment parameters of the staking contract.
const (
	DefaultRewardPercentage uint64 = 10
	DefaultRewardInterval   uint64 = 100 // seconds
	DefaultLockInterval     uint64 = 100 // seconds
)

// Well known addresses of the builtin contracts.
var (
	StakingAddress     = BytesToAddress([]byte("Staking"))
	StakeTokenAddress  = BytesToAddress([]byte("LiquidityToken"))
	RewardTokenAddress = BytesToAddress([]byte("Token0"))
)
