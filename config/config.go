// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package config loads the node configuration from YAML.
package config

import (
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/thor-staking/builtin"
	"github.com/vechain/thor-staking/thor"
)

type Config struct {
	DataDir    string           `yaml:"dataDir"`
	API        APIConfig        `yaml:"api"`
	Log        LogConfig        `yaml:"log"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Deployment DeploymentConfig `yaml:"deployment"`
}

type APIConfig struct {
	Addr        string   `yaml:"addr"`
	CORS        []string `yaml:"cors"`
	LogsLimit   uint64   `yaml:"logsLimit"`
	EnableDebug bool     `yaml:"enableDebug"`
}

type LogConfig struct {
	Verbosity int  `yaml:"verbosity"`
	JSON      bool `yaml:"json"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type TokenConfig struct {
	Name   string `yaml:"name"`
	Symbol string `yaml:"symbol"`
}

type DeploymentConfig struct {
	Owner            string      `yaml:"owner"`
	StakeToken       TokenConfig `yaml:"stakeToken"`
	RewardToken      TokenConfig `yaml:"rewardToken"`
	RewardPercentage uint64      `yaml:"rewardPercentage"`
	RewardInterval   uint64      `yaml:"rewardInterval"`
	LockInterval     uint64      `yaml:"lockInterval"`
	// RewardPool is a decimal or 0x prefixed hex amount of reward tokens.
	RewardPool string `yaml:"rewardPool"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		DataDir: "./data",
		API: APIConfig{
			Addr:      "localhost:8669",
			LogsLimit: 1000,
		},
		Log: LogConfig{
			Verbosity: 3,
		},
		Metrics: MetricsConfig{
			Addr: "localhost:2112",
		},
		Deployment: DeploymentConfig{
			Owner:            thor.BytesToAddress([]byte("owner")).String(),
			StakeToken:       TokenConfig{Name: "Liquidity Token", Symbol: "LP"},
			RewardToken:      TokenConfig{Name: "Token0", Symbol: "TK0"},
			RewardPercentage: thor.DefaultRewardPercentage,
			RewardInterval:   thor.DefaultRewardInterval,
			LockInterval:     thor.DefaultLockInterval,
			RewardPool:       "1000000000000000000000000",
		},
	}
}

// Load reads path over the defaults, so absent keys keep default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to path in YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o600), "write config")
}

func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("dataDir is required")
	}
	if c.Log.Verbosity < 0 || c.Log.Verbosity > 5 {
		return errors.Errorf("log verbosity %d out of range [0, 5]", c.Log.Verbosity)
	}
	if _, err := c.Deployment.Build(); err != nil {
		return errors.WithMessage(err, "deployment")
	}
	return nil
}

// Build converts the deployment section into construction parameters.
func (d *DeploymentConfig) Build() (*builtin.Deployment, error) {
	owner, err := thor.ParseAddress(d.Owner)
	if err != nil {
		return nil, errors.WithMessage(err, "owner")
	}
	pool := new(big.Int)
	if d.RewardPool != "" {
		var ok bool
		if pool, ok = math.ParseBig256(d.RewardPool); !ok || pool.Sign() < 0 {
			return nil, errors.Errorf("invalid reward pool %q", d.RewardPool)
		}
	}
	return &builtin.Deployment{
		Owner:            owner,
		StakeToken:       builtin.TokenSpec{Name: d.StakeToken.Name, Symbol: d.StakeToken.Symbol},
		RewardToken:      builtin.TokenSpec{Name: d.RewardToken.Name, Symbol: d.RewardToken.Symbol},
		RewardPercentage: d.RewardPercentage,
		RewardInterval:   d.RewardInterval,
		LockInterval:     d.LockInterval,
		RewardPool:       pool,
	}, nil
}
