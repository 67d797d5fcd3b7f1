// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking implements the liquidity staking ledger: accounts stake an
// asset, wait for the lock interval, claim a reward paid in a second asset
// and finally unstake.
package staking

import (
	"math/big"

	"github.com/vechain/thor-staking/builtin/solidity"
	"github.com/vechain/thor-staking/log"
	"github.com/vechain/thor-staking/state"
	"github.com/vechain/thor-staking/thor"
	"github.com/vechain/thor-staking/xenv"
)

var logger = log.WithContext("pkg", "staking")

func SetLogger(l log.Logger) {
	logger = l
}

var (
	slotOwner            = thor.Blake2b([]byte("owner"))
	slotStakeToken       = thor.Blake2b([]byte("stake-token"))
	slotRewardToken      = thor.Blake2b([]byte("reward-token"))
	slotRewardPercentage = thor.Blake2b([]byte("reward-percentage"))
	slotRewardInterval   = thor.Blake2b([]byte("reward-interval"))
	slotLockInterval     = thor.Blake2b([]byte("lock-interval"))
	slotTotalStaked      = thor.Blake2b([]byte("total-staked"))
	slotStakes           = thor.Blake2b([]byte("stakes"))
)

// Staking implements the staking ledger bound to a state, an asset ledger and an event emitter.
type Staking struct {
	addr    thor.Address
	emitter xenv.Emitter
	gateway *gateway

	owner            *solidity.Address
	stakeToken       *solidity.Address
	rewardToken      *solidity.Address
	rewardPercentage *solidity.Uint64
	rewardInterval   *solidity.Uint64
	lockInterval     *solidity.Uint64
	totalStaked      *solidity.Uint256
	stakes           *solidity.Mapping[thor.Address, *StakeRecord]
}

// New create a new instance.
func New(addr thor.Address, state *state.State, ledger AssetLedger, emitter xenv.Emitter) *Staking {
	sctx := solidity.NewContext(addr, state)
	return &Staking{
		addr:    addr,
		emitter: emitter,
		gateway: &gateway{self: addr, ledger: ledger},

		owner:            solidity.NewAddress(sctx, slotOwner),
		stakeToken:       solidity.NewAddress(sctx, slotStakeToken),
		rewardToken:      solidity.NewAddress(sctx, slotRewardToken),
		rewardPercentage: solidity.NewUint64(sctx, slotRewardPercentage),
		rewardInterval:   solidity.NewUint64(sctx, slotRewardInterval),
		lockInterval:     solidity.NewUint64(sctx, slotLockInterval),
		totalStaked:      solidity.NewUint256(sctx, slotTotalStaked),
		stakes:           solidity.NewMapping[thor.Address, *StakeRecord](sctx, slotStakes),
	}
}

func (s *Staking) Address() thor.Address {
	return s.addr
}

// Initialize sets the parameter set once. Asset addresses never change afterwards.
func (s *Staking) Initialize(p *Params) error {
	ok, err := s.Initialized()
	if err != nil {
		return err
	}
	if ok {
		return ErrAlreadyInitialized
	}
	if p.Owner.IsZero() || p.StakeTokenAddress.IsZero() || p.RewardTokenAddress.IsZero() {
		return ErrZeroAddress
	}
	s.owner.Set(p.Owner)
	s.stakeToken.Set(p.StakeTokenAddress)
	s.rewardToken.Set(p.RewardTokenAddress)
	s.rewardPercentage.Set(p.RewardPercentage)
	s.rewardInterval.Set(p.RewardInterval)
	s.lockInterval.Set(p.LockInterval)

	logger.Info("staking initialized",
		"owner", p.Owner,
		"stakeToken", p.StakeTokenAddress,
		"rewardToken", p.RewardTokenAddress,
		"rewardPercentage", p.RewardPercentage,
		"rewardInterval", p.RewardInterval,
		"lockInterval", p.LockInterval,
	)
	return nil
}

// Initialized returns whether Initialize has been applied.
func (s *Staking) Initialized() (bool, error) {
	owner, err := s.owner.Get()
	if err != nil {
		return false, err
	}
	return !owner.IsZero(), nil
}

func (s *Staking) Owner() (thor.Address, error)              { return s.owner.Get() }
func (s *Staking) StakeTokenAddress() (thor.Address, error)  { return s.stakeToken.Get() }
func (s *Staking) RewardTokenAddress() (thor.Address, error) { return s.rewardToken.Get() }
func (s *Staking) RewardPercentage() (uint64, error)         { return s.rewardPercentage.Get() }
func (s *Staking) RewardInterval() (uint64, error)           { return s.rewardInterval.Get() }
func (s *Staking) LockInterval() (uint64, error)             { return s.lockInterval.Get() }

// TotalStaked returns the amount of stake asset held in custody.
func (s *Staking) TotalStaked() (*big.Int, error) { return s.totalStaked.Get() }

// Params returns a snapshot of the whole parameter set.
func (s *Staking) Params() (*Params, error) {
	var (
		p   Params
		err error
	)
	if p.Owner, err = s.owner.Get(); err != nil {
		return nil, err
	}
	if p.StakeTokenAddress, err = s.stakeToken.Get(); err != nil {
		return nil, err
	}
	if p.RewardTokenAddress, err = s.rewardToken.Get(); err != nil {
		return nil, err
	}
	if p.RewardPercentage, err = s.rewardPercentage.Get(); err != nil {
		return nil, err
	}
	if p.RewardInterval, err = s.rewardInterval.Get(); err != nil {
		return nil, err
	}
	if p.LockInterval, err = s.lockInterval.Get(); err != nil {
		return nil, err
	}
	return &p, nil
}

// StakeOf returns the stake record of account, zero valued if it never staked.
func (s *Staking) StakeOf(account thor.Address) (*StakeRecord, error) {
	rec, err := s.stakes.Get(account)
	if err != nil {
		return nil, err
	}
	if rec.Amount == nil {
		rec.Amount = new(big.Int)
	}
	return rec, nil
}

// BalanceOf returns the amount staked by account.
func (s *Staking) BalanceOf(account thor.Address) (*big.Int, error) {
	rec, err := s.StakeOf(account)
	if err != nil {
		return nil, err
	}
	return rec.Amount, nil
}

func (s *Staking) StakeStartTimestampOf(account thor.Address) (uint64, error) {
	rec, err := s.StakeOf(account)
	if err != nil {
		return 0, err
	}
	return rec.StakeStartTimestamp, nil
}

func (s *Staking) HasClaimedReward(account thor.Address) (bool, error) {
	rec, err := s.StakeOf(account)
	if err != nil {
		return false, err
	}
	return rec.Claimed, nil
}

// Stake moves amount of stake asset from caller into custody and starts an epoch at now.
func (s *Staking) Stake(caller thor.Address, amount *big.Int, now uint64) error {
	rec, err := s.StakeOf(caller)
	if err != nil {
		return err
	}
	switch rec.State() {
	case StateClaimed:
		return ErrMustUnstakeBeforeRestake
	case StateStaked:
		return ErrAlreadyStaked
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrZeroAmount
	}

	total, err := s.totalStaked.Get()
	if err != nil {
		return err
	}
	total.Add(total, amount)
	if !solidity.FitsUint256(total) {
		return ErrOverflow
	}

	stakeToken, err := s.stakeToken.Get()
	if err != nil {
		return err
	}
	if err := s.gateway.pullStakeAsset(stakeToken, caller, amount); err != nil {
		return err
	}

	if err := s.stakes.Set(caller, &StakeRecord{
		Amount:              new(big.Int).Set(amount),
		StakeStartTimestamp: now,
	}); err != nil {
		return err
	}
	if err := s.totalStaked.Set(total); err != nil {
		return err
	}

	s.emitter.Emit(newEvent(s.addr, StakedEvent, caller, amount))
	logger.Debug("staked", "account", caller, "amount", amount, "at", now)
	return nil
}

// Claim pays the reward accrued since the stake start and closes the reward of the epoch.
func (s *Staking) Claim(caller thor.Address, now uint64) (*big.Int, error) {
	rec, err := s.StakeOf(caller)
	if err != nil {
		return nil, err
	}
	if rec.Amount.Sign() == 0 {
		return nil, ErrNothingStaked
	}
	lockInterval, err := s.lockInterval.Get()
	if err != nil {
		return nil, err
	}
	if now < rec.StakeStartTimestamp {
		return nil, ErrOverflow
	}
	if now-rec.StakeStartTimestamp < lockInterval {
		return nil, ErrLockIntervalNotElapsed
	}
	if rec.Claimed {
		return nil, ErrAlreadyClaimed
	}

	p, err := s.Params()
	if err != nil {
		return nil, err
	}
	reward, err := ComputeReward(rec.Amount, p.RewardPercentage, rec.StakeStartTimestamp, now, p.RewardInterval)
	if err != nil {
		return nil, err
	}

	if err := s.gateway.pushRewardAsset(p.RewardTokenAddress, caller, reward); err != nil {
		return nil, err
	}

	rec.StakeEndTimestamp = now
	rec.Claimed = true
	if err := s.stakes.Set(caller, rec); err != nil {
		return nil, err
	}

	s.emitter.Emit(newEvent(s.addr, ClaimedEvent, caller, reward))
	logger.Debug("claimed", "account", caller, "reward", reward, "at", now)
	return reward, nil
}

// Unstake returns the stake asset held for caller and resets its record.
func (s *Staking) Unstake(caller thor.Address) (*big.Int, error) {
	rec, err := s.StakeOf(caller)
	if err != nil {
		return nil, err
	}
	if !rec.Claimed {
		return nil, ErrMustClaimBeforeUnstake
	}

	total, err := s.totalStaked.Get()
	if err != nil {
		return nil, err
	}
	if total.Cmp(rec.Amount) < 0 {
		return nil, solidity.ErrUnderflow
	}
	total.Sub(total, rec.Amount)

	stakeToken, err := s.stakeToken.Get()
	if err != nil {
		return nil, err
	}
	if err := s.gateway.returnStakeAsset(stakeToken, caller, rec.Amount); err != nil {
		return nil, err
	}

	if err := s.totalStaked.Set(total); err != nil {
		return nil, err
	}
	s.stakes.Delete(caller)

	s.emitter.Emit(newEvent(s.addr, UnstakedEvent, caller, rec.Amount))
	logger.Debug("unstaked", "account", caller, "amount", rec.Amount)
	return rec.Amount, nil
}

func (s *Staking) requireOwner(caller thor.Address) error {
	owner, err := s.owner.Get()
	if err != nil {
		return err
	}
	if caller != owner {
		return ErrUnauthorized
	}
	return nil
}

func (s *Staking) changeParam(caller thor.Address, name string, slot *solidity.Uint64, value uint64) error {
	if err := s.requireOwner(caller); err != nil {
		return err
	}
	old, err := slot.Get()
	if err != nil {
		return err
	}
	slot.Set(value)
	logger.Info("parameter changed", "name", name, "old", old, "new", value)
	return nil
}

// ChangeRewardPercentage sets the percentage of the stake paid per reward interval. Owner only.
func (s *Staking) ChangeRewardPercentage(caller thor.Address, value uint64) error {
	return s.changeParam(caller, "rewardPercentage", s.rewardPercentage, value)
}

// ChangeRewardInterval sets the reward accrual granularity in seconds. Owner only.
func (s *Staking) ChangeRewardInterval(caller thor.Address, value uint64) error {
	return s.changeParam(caller, "rewardInterval", s.rewardInterval, value)
}

// ChangeLockInterval sets the minimum seconds between stake and claim. Owner only.
func (s *Staking) ChangeLockInterval(caller thor.Address, value uint64) error {
	return s.changeParam(caller, "lockInterval", s.lockInterval, value)
}
