// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/thor-staking/builtin"
	"github.com/vechain/thor-staking/builtin/staking"
	"github.com/vechain/thor-staking/config"
	"github.com/vechain/thor-staking/runtime"
)

// ledgerAction is a command acting on the opened ledger.
type ledgerAction func(ctx *cli.Context, cfg *config.Config, l *ledger) error

func action(fn ledgerAction) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		initLogger(cfg)

		l, err := openLedger(cfg, clockFrom(ctx))
		if err != nil {
			return err
		}
		defer l.Close()
		return fn(ctx, cfg, l)
	}
}

func printf(ctx *cli.Context, format string, args ...any) {
	fmt.Fprintf(ctx.App.Writer, format+"\n", args...)
}

// ledgerEvent returns the event of the staking ledger in receipt, it follows the asset transfer.
func ledgerEvent(receipt *runtime.Receipt) (*staking.Log, error) {
	for _, ev := range receipt.Events {
		if l, ok := staking.DecodeEvent(ev); ok {
			return l, nil
		}
	}
	return nil, errors.New("no staking event in receipt")
}

func deployAction(ctx *cli.Context, cfg *config.Config, l *ledger) error {
	d, err := cfg.Deployment.Build()
	if err != nil {
		return err
	}
	if _, err := l.rt.Deploy(context.Background(), d); err != nil {
		return errors.WithMessage(err, "deploy")
	}
	printf(ctx, "Stake token deployed to: %v", builtin.StakeToken.Address)
	printf(ctx, "Reward token deployed to: %v", builtin.RewardToken.Address)
	printf(ctx, "Staking deployed to: %v", builtin.Staking.Address)
	return nil
}

func stakeAction(ctx *cli.Context, _ *config.Config, l *ledger) error {
	signer, err := requireAddress(ctx, signerFlag)
	if err != nil {
		return err
	}
	amount, err := requireAmount(ctx)
	if err != nil {
		return err
	}
	if _, err := l.execute(signer, builtin.StakeToken.Address, "approve", builtin.Staking.Address, amount); err != nil {
		return errors.WithMessage(err, "approve")
	}
	receipt, err := l.execute(signer, builtin.Staking.Address, "stake", amount)
	if err != nil {
		return err
	}
	ev, err := ledgerEvent(receipt)
	if err != nil {
		return err
	}
	printf(ctx, "%v staked %v liquidity tokens.", ev.Account, ev.Amount)
	return nil
}

func claimAction(ctx *cli.Context, _ *config.Config, l *ledger) error {
	signer, err := requireAddress(ctx, signerFlag)
	if err != nil {
		return err
	}
	receipt, err := l.execute(signer, builtin.Staking.Address, "claim")
	if err != nil {
		return err
	}
	ev, err := ledgerEvent(receipt)
	if err != nil {
		return err
	}
	printf(ctx, "%v claimed %v reward tokens.", ev.Account, ev.Amount)
	return nil
}

func unstakeAction(ctx *cli.Context, _ *config.Config, l *ledger) error {
	signer, err := requireAddress(ctx, signerFlag)
	if err != nil {
		return err
	}
	receipt, err := l.execute(signer, builtin.Staking.Address, "unstake")
	if err != nil {
		return err
	}
	ev, err := ledgerEvent(receipt)
	if err != nil {
		return err
	}
	printf(ctx, "%v unstaked %v liquidity tokens.", ev.Account, ev.Amount)
	return nil
}

func stakeOfAction(ctx *cli.Context, _ *config.Config, l *ledger) error {
	account, err := requireAddress(ctx, accountFlag)
	if err != nil {
		return err
	}
	out, err := l.view(builtin.Staking.Address, "stakeOf", account)
	if err != nil {
		return err
	}
	printf(ctx, "%v has:\n%v liquidity tokens staked.\n%v last stake start timestamp.\n%v current stake end timestamp.\nClaimed the reward is %v",
		account, out[0], out[1], out[2], out[3])
	return nil
}

func balanceOfAction(ctx *cli.Context, _ *config.Config, l *ledger) error {
	account, err := requireAddress(ctx, accountFlag)
	if err != nil {
		return err
	}
	out, err := l.view(builtin.Staking.Address, "balanceOf", account)
	if err != nil {
		return err
	}
	printf(ctx, "%v has %v liquidity tokens staked.", account, out[0])
	return nil
}

func stakeStartTimestampOfAction(ctx *cli.Context, _ *config.Config, l *ledger) error {
	account, err := requireAddress(ctx, accountFlag)
	if err != nil {
		return err
	}
	out, err := l.view(builtin.Staking.Address, "stakeStartTimestampOf", account)
	if err != nil {
		return err
	}
	printf(ctx, "%v last staked at %v", account, out[0])
	return nil
}

func hasClaimedRewardAction(ctx *cli.Context, _ *config.Config, l *ledger) error {
	account, err := requireAddress(ctx, accountFlag)
	if err != nil {
		return err
	}
	out, err := l.view(builtin.Staking.Address, "hasClaimedReward", account)
	if err != nil {
		return err
	}
	printf(ctx, "%v has claimed reward is %v", account, out[0])
	return nil
}

func paramAction(method, format string) ledgerAction {
	return func(ctx *cli.Context, _ *config.Config, l *ledger) error {
		out, err := l.view(builtin.Staking.Address, method)
		if err != nil {
			return err
		}
		printf(ctx, format, out[0])
		return nil
	}
}

func changeParamAction(param, format string) ledgerAction {
	method := "change" + strings.ToUpper(param[:1]) + param[1:]
	return func(ctx *cli.Context, _ *config.Config, l *ledger) error {
		signer, err := requireAddress(ctx, signerFlag)
		if err != nil {
			return err
		}
		value, err := requireValue(ctx)
		if err != nil {
			return err
		}
		before, err := l.view(builtin.Staking.Address, param)
		if err != nil {
			return err
		}
		if _, err := l.execute(signer, builtin.Staking.Address, method, value); err != nil {
			return err
		}
		after, err := l.view(builtin.Staking.Address, param)
		if err != nil {
			return err
		}
		printf(ctx, format, before[0], after[0])
		return nil
	}
}

func mintAction(ctx *cli.Context, _ *config.Config, l *ledger) error {
	signer, err := requireAddress(ctx, signerFlag)
	if err != nil {
		return err
	}
	token, err := tokenAddress(ctx)
	if err != nil {
		return err
	}
	to, err := requireAddress(ctx, toFlag)
	if err != nil {
		return err
	}
	amount, err := requireAmount(ctx)
	if err != nil {
		return err
	}
	if _, err := l.execute(signer, token, "mint", to, amount); err != nil {
		return err
	}
	out, err := l.view(token, "balanceOf", to)
	if err != nil {
		return err
	}
	printf(ctx, "Minted %v tokens to %v, balance is %v.", amount, to, out[0].(*big.Int))
	return nil
}
