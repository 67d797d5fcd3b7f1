// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"context"
	"math/big"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/thor-staking/api/utils"
	"github.com/vechain/thor-staking/builtin"
	contract "github.com/vechain/thor-staking/builtin/staking"
	"github.com/vechain/thor-staking/runtime"
	"github.com/vechain/thor-staking/thor"
)

type Staking struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Staking {
	return &Staking{rt}
}

func (s *Staking) view(ctx context.Context, method string, args ...any) (any, error) {
	out, err := s.rt.View(ctx, &runtime.Call{
		To:     builtin.Staking.Address,
		Method: method,
		Args:   args,
	})
	if err != nil {
		return nil, utils.CallError(err)
	}
	return out[0], nil
}

func (s *Staking) handleGetParams(w http.ResponseWriter, req *http.Request) error {
	ctx := req.Context()
	values := make(map[string]any)
	for _, method := range []string{
		"owner",
		"stakeTokenAddress",
		"rewardTokenAddress",
		"rewardPercentage",
		"rewardInterval",
		"lockInterval",
		"totalStaked",
	} {
		v, err := s.view(ctx, method)
		if err != nil {
			return err
		}
		values[method] = v
	}
	head, err := s.rt.BlockNumber()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Params{
		Owner:             values["owner"].(thor.Address).String(),
		StakeToken:        values["stakeTokenAddress"].(thor.Address).String(),
		RewardToken:       values["rewardTokenAddress"].(thor.Address).String(),
		RewardPercentage:  values["rewardPercentage"].(uint64),
		RewardInterval:    values["rewardInterval"].(uint64),
		LockInterval:      values["lockInterval"].(uint64),
		TotalStaked:       values["totalStaked"].(*big.Int).String(),
		LatestBlockNumber: head,
	})
}

func (s *Staking) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := thor.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	out, err := s.rt.View(req.Context(), &runtime.Call{
		To:     builtin.Staking.Address,
		Method: "stakeOf",
		Args:   []any{addr},
	})
	if err != nil {
		return utils.CallError(err)
	}
	rec := &contract.StakeRecord{
		Amount:              out[0].(*big.Int),
		StakeStartTimestamp: out[1].(uint64),
		StakeEndTimestamp:   out[2].(uint64),
		Claimed:             out[3].(bool),
	}
	return utils.WriteJSON(w, &Account{
		Amount:              rec.Amount.String(),
		StakeStartTimestamp: rec.StakeStartTimestamp,
		StakeEndTimestamp:   rec.StakeEndTimestamp,
		Claimed:             rec.Claimed,
		Balance:             rec.Amount.String(),
		HasClaimedReward:    rec.Claimed,
		State:               rec.State().String(),
	})
}

func (s *Staking) execute(w http.ResponseWriter, req *http.Request, caller *thor.Address, method string, args ...any) error {
	if caller == nil {
		return utils.BadRequest(errors.New("caller: required"))
	}
	receipt, err := s.rt.Execute(req.Context(), &runtime.Call{
		To:     builtin.Staking.Address,
		Method: method,
		Caller: *caller,
		Args:   args,
	})
	if err != nil {
		return utils.CallError(err)
	}
	return utils.WriteJSON(w, utils.ConvertReceipt(receipt))
}

func (s *Staking) handleStake(w http.ResponseWriter, req *http.Request) error {
	var body StakeRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Amount == nil {
		return utils.BadRequest(errors.New("amount: required"))
	}
	return s.execute(w, req, body.Caller, "stake", (*big.Int)(body.Amount))
}

func (s *Staking) handleCallerOnly(method string) utils.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) error {
		var body CallerRequest
		if err := utils.ParseJSON(req.Body, &body); err != nil {
			return utils.BadRequest(errors.WithMessage(err, "body"))
		}
		return s.execute(w, req, body.Caller, method)
	}
}

func (s *Staking) handleChangeParam(w http.ResponseWriter, req *http.Request) error {
	var body ParamRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Value == nil {
		return utils.BadRequest(errors.New("value: required"))
	}
	name := mux.Vars(req)["name"]
	method := "change" + strings.ToUpper(name[:1]) + name[1:]
	return s.execute(w, req, body.Caller, method, *body.Value)
}

func (s *Staking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /staking").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetParams))
	sub.Path("/accounts/{address}").
		Methods(http.MethodGet).
		Name("GET /staking/accounts/{address}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetAccount))
	sub.Path("/stake").
		Methods(http.MethodPost).
		Name("POST /staking/stake").
		HandlerFunc(utils.WrapHandlerFunc(s.handleStake))
	sub.Path("/claim").
		Methods(http.MethodPost).
		Name("POST /staking/claim").
		HandlerFunc(utils.WrapHandlerFunc(s.handleCallerOnly("claim")))
	sub.Path("/unstake").
		Methods(http.MethodPost).
		Name("POST /staking/unstake").
		HandlerFunc(utils.WrapHandlerFunc(s.handleCallerOnly("unstake")))
	sub.Path("/params/{name:rewardPercentage|rewardInterval|lockInterval}").
		Methods(http.MethodPost).
		Name("POST /staking/params/{name}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleChangeParam))
}
