// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/mux"

	"github.com/vechain/nftstaking/api/utils"
	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/state"
)

// Account is the JSON view of a ledger account. A missing account reads as
// zero lamports with no owner.
type Account struct {
	Address  core.Address  `json:"address"`
	Owner    core.Address  `json:"owner"`
	Lamports uint64        `json:"lamports"`
	Data     hexutil.Bytes `json:"data"`
}

type Accounts struct {
	stater *state.Stater
}

func New(stater *state.Stater) *Accounts {
	return &Accounts{stater}
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	acc, err := a.stater.NewState().GetAccount(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Account{
		Address:  addr,
		Owner:    acc.Owner,
		Lamports: acc.Lamports,
		Data:     acc.Data,
	})
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
}
