// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transactions

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/api/utils"
	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/runtime"
	"github.com/vechain/nftstaking/tx"
)

// RawTx a raw transaction, RLP encoded and hex prefixed.
type RawTx struct {
	Raw string `json:"raw"`
}

func (r *RawTx) decode() (*tx.Transaction, error) {
	data, err := hexutil.Decode(r.Raw)
	if err != nil {
		return nil, err
	}
	return tx.Decode(data)
}

type Transactions struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Transactions {
	return &Transactions{rt}
}

func (t *Transactions) handleSendTransaction(w http.ResponseWriter, req *http.Request) error {
	var rawTx RawTx
	if err := utils.ParseJSON(req.Body, &rawTx); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	trx, err := rawTx.decode()
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "raw"))
	}
	receipt, err := t.rt.Execute(trx)
	if err != nil {
		if runtime.IsRejected(err) {
			return utils.BadRequest(err)
		}
		return err
	}
	return utils.WriteJSON(w, receipt)
}

func (t *Transactions) handleGetReceipt(w http.ResponseWriter, req *http.Request) error {
	id, err := core.ParseBytes32(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	receipt, err := t.rt.GetReceipt(id)
	if err != nil {
		if t.rt.IsNotFound(err) {
			return utils.NotFound(errors.Errorf("receipt %v not found", id))
		}
		return err
	}
	return utils.WriteJSON(w, receipt)
}

// handleGetOps lists the operation names a transaction may carry.
func (t *Transactions) handleGetOps(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, t.rt.Ops())
}

func (t *Transactions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /transactions").
		HandlerFunc(utils.WrapHandlerFunc(t.handleSendTransaction))
	sub.Path("/{id}/receipt").
		Methods(http.MethodGet).
		Name("GET /transactions/{id}/receipt").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetReceipt))
	sub.Path("/ops").
		Methods(http.MethodGet).
		Name("GET /transactions/ops").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetOps))
}
