// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/thor-staking/log"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "staking-cli")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "staking"
	app.Usage = "LP token staking ledger"
	app.Copyright = "2018 VeChain Foundation <https://vechain.org/>"
	app.Commands = []cli.Command{
		{
			Name:   "deploy",
			Usage:  "Deploy the tokens and the staking ledger using the configured parameters",
			Flags:  withCommon(),
			Action: action(deployAction),
		},
		{
			Name:   "stake",
			Usage:  "Allows the caller to stake `amount` of tokens to the staking contract (approval is performed automatically)",
			Flags:  withCommon(signerFlag, amountFlag),
			Action: action(stakeAction),
		},
		{
			Name:   "claim",
			Usage:  "Allows the caller to claim the reward from the staking contract",
			Flags:  withCommon(signerFlag),
			Action: action(claimAction),
		},
		{
			Name:   "unstake",
			Usage:  "Allows the caller to unstake the tokens from the staking contract",
			Flags:  withCommon(signerFlag),
			Action: action(unstakeAction),
		},
		{
			Name:   "stake-of",
			Usage:  "Returns the stake record of an account",
			Flags:  withCommon(accountFlag),
			Action: action(stakeOfAction),
		},
		{
			Name:   "balance-of",
			Usage:  "Returns the amount of tokens staked by an account",
			Flags:  withCommon(accountFlag),
			Action: action(balanceOfAction),
		},
		{
			Name:   "stake-start-timestamp-of",
			Usage:  "Returns the timestamp of the last stake of an account",
			Flags:  withCommon(accountFlag),
			Action: action(stakeStartTimestampOfAction),
		},
		{
			Name:   "has-claimed-reward",
			Usage:  "Returns whether an account has claimed the reward",
			Flags:  withCommon(accountFlag),
			Action: action(hasClaimedRewardAction),
		},
		{
			Name:   "stake-token-address",
			Usage:  "Returns the stake token address",
			Flags:  withCommon(),
			Action: action(paramAction("stakeTokenAddress", "Stake token address is %v")),
		},
		{
			Name:   "reward-token-address",
			Usage:  "Returns the reward token address",
			Flags:  withCommon(),
			Action: action(paramAction("rewardTokenAddress", "Reward token address is %v.")),
		},
		{
			Name:   "reward-percentage",
			Usage:  "Returns the reward percentage",
			Flags:  withCommon(),
			Action: action(paramAction("rewardPercentage", "Reward percentage is %v")),
		},
		{
			Name:   "reward-interval",
			Usage:  "Returns the reward interval",
			Flags:  withCommon(),
			Action: action(paramAction("rewardInterval", "Reward interval is %v")),
		},
		{
			Name:   "lock-interval",
			Usage:  "Returns the lock interval",
			Flags:  withCommon(),
			Action: action(paramAction("lockInterval", "Lock interval is %v.")),
		},
		{
			Name:   "change-reward-percentage",
			Usage:  "Change the reward percentage",
			Flags:  withCommon(signerFlag, valueFlag),
			Action: action(changeParamAction("rewardPercentage", "Reward percentage changed from %v to %v.")),
		},
		{
			Name:   "change-reward-interval",
			Usage:  "Change the reward interval",
			Flags:  withCommon(signerFlag, valueFlag),
			Action: action(changeParamAction("rewardInterval", "Reward interval changed from %v to %v.")),
		},
		{
			Name:   "change-lock-interval",
			Usage:  "Change the lock interval",
			Flags:  withCommon(signerFlag, valueFlag),
			Action: action(changeParamAction("lockInterval", "Lock interval changed from %v to %v.")),
		},
		{
			Name:   "mint",
			Usage:  "Mint tokens, the signer must be the token minter",
			Flags:  withCommon(signerFlag, tokenFlag, toFlag, amountFlag),
			Action: action(mintAction),
		},
		{
			Name:  "serve",
			Usage: "Serve the REST API",
			Flags: withCommon(
				apiAddrFlag,
				apiCorsFlag,
				apiLogsLimitFlag,
				enableAPILogsFlag,
				apiSlowQueriesThresholdFlag,
				apiLog5xxErrorsFlag,
				enableMetricsFlag,
				metricsAddrFlag,
			),
			Action: serveAction,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
