// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokens

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/thor-staking/api/utils"
	"github.com/vechain/thor-staking/runtime"
	"github.com/vechain/thor-staking/thor"
)

type Token struct {
	Address     string `json:"address"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	TotalSupply string `json:"totalSupply"`
}

type Balance struct {
	Balance string `json:"balance"`
}

type ApproveRequest struct {
	Caller  *thor.Address         `json:"caller"`
	Spender *thor.Address         `json:"spender"`
	Amount  *math.HexOrDecimal256 `json:"amount"`
}

type MintRequest struct {
	Caller *thor.Address         `json:"caller"`
	To     *thor.Address         `json:"to"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

type Tokens struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Tokens {
	return &Tokens{rt}
}

func parseAddress(req *http.Request, name string) (thor.Address, error) {
	addr, err := thor.ParseAddress(mux.Vars(req)[name])
	if err != nil {
		return thor.Address{}, utils.BadRequest(errors.WithMessage(err, name))
	}
	return addr, nil
}

func (t *Tokens) view(req *http.Request, token thor.Address, method string, args ...any) (any, error) {
	out, err := t.rt.View(req.Context(), &runtime.Call{
		To:     token,
		Method: method,
		Args:   args,
	})
	if err != nil {
		return nil, utils.CallError(err)
	}
	return out[0], nil
}

func (t *Tokens) handleGetToken(w http.ResponseWriter, req *http.Request) error {
	token, err := parseAddress(req, "address")
	if err != nil {
		return err
	}
	name, err := t.view(req, token, "name")
	if err != nil {
		return err
	}
	symbol, err := t.view(req, token, "symbol")
	if err != nil {
		return err
	}
	supply, err := t.view(req, token, "totalSupply")
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Token{
		Address:     token.String(),
		Name:        name.(string),
		Symbol:      symbol.(string),
		TotalSupply: supply.(*big.Int).String(),
	})
}

func (t *Tokens) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	token, err := parseAddress(req, "address")
	if err != nil {
		return err
	}
	account, err := parseAddress(req, "account")
	if err != nil {
		return err
	}
	balance, err := t.view(req, token, "balanceOf", account)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Balance{Balance: balance.(*big.Int).String()})
}

func (t *Tokens) execute(w http.ResponseWriter, req *http.Request, caller *thor.Address, method string, args ...any) error {
	token, err := parseAddress(req, "address")
	if err != nil {
		return err
	}
	if caller == nil {
		return utils.BadRequest(errors.New("caller: required"))
	}
	receipt, err := t.rt.Execute(req.Context(), &runtime.Call{
		To:     token,
		Method: method,
		Caller: *caller,
		Args:   args,
	})
	if err != nil {
		return utils.CallError(err)
	}
	return utils.WriteJSON(w, utils.ConvertReceipt(receipt))
}

func (t *Tokens) handleApprove(w http.ResponseWriter, req *http.Request) error {
	var body ApproveRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Spender == nil || body.Amount == nil {
		return utils.BadRequest(errors.New("spender and amount: required"))
	}
	return t.execute(w, req, body.Caller, "approve", *body.Spender, (*big.Int)(body.Amount))
}

func (t *Tokens) handleMint(w http.ResponseWriter, req *http.Request) error {
	var body MintRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.To == nil || body.Amount == nil {
		return utils.BadRequest(errors.New("to and amount: required"))
	}
	return t.execute(w, req, body.Caller, "mint", *body.To, (*big.Int)(body.Amount))
}

func (t *Tokens) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /tokens/{address}").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetToken))
	sub.Path("/{address}/balances/{account}").
		Methods(http.MethodGet).
		Name("GET /tokens/{address}/balances/{account}").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetBalance))
	sub.Path("/{address}/approve").
		Methods(http.MethodPost).
		Name("POST /tokens/{address}/approve").
		HandlerFunc(utils.WrapHandlerFunc(t.handleApprove))
	sub.Path("/{address}/mint").
		Methods(http.MethodPost).
		Name("POST /tokens/{address}/mint").
		HandlerFunc(utils.WrapHandlerFunc(t.handleMint))
}
