// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokens

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/api/utils"
	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/state"
	"github.com/vechain/nftstaking/token"
)

type Mint struct {
	Address       core.Address  `json:"address"`
	MintAuthority *core.Address `json:"mintAuthority"`
	Supply        uint64        `json:"supply"`
	Decimals      uint8         `json:"decimals"`
}

type Account struct {
	Address core.Address `json:"address"`
	Mint    core.Address `json:"mint"`
	Owner   core.Address `json:"owner"`
	Amount  uint64       `json:"amount"`
	State   string       `json:"state"`
}

type Tokens struct {
	stater *state.Stater
}

func New(stater *state.Stater) *Tokens {
	return &Tokens{stater}
}

func (t *Tokens) handleGetMint(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	m, err := token.New(t.stater.NewState()).GetMint(addr)
	if err != nil {
		if errors.Is(err, token.ErrInvalidMint) {
			return utils.NotFound(err)
		}
		return err
	}
	return utils.WriteJSON(w, &Mint{
		Address:       addr,
		MintAuthority: m.MintAuthority,
		Supply:        m.Supply,
		Decimals:      m.Decimals,
	})
}

func (t *Tokens) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	a, err := token.New(t.stater.NewState()).GetAccount(addr)
	if err != nil {
		if errors.Is(err, token.ErrInvalidAccount) {
			return utils.NotFound(err)
		}
		return err
	}
	return utils.WriteJSON(w, &Account{
		Address: addr,
		Mint:    a.Mint,
		Owner:   a.Owner,
		Amount:  a.Amount,
		State:   a.State.String(),
	})
}

func (t *Tokens) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/mints/{address}").
		Methods(http.MethodGet).
		Name("GET /tokens/mints/{address}").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetMint))
	sub.Path("/accounts/{address}").
		Methods(http.MethodGet).
		Name("GET /tokens/accounts/{address}").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetAccount))
}
