// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package provenance serves the metadata records that decide which
// collectibles may be staked.
package provenance

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/api/utils"
	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/metadata"
	"github.com/vechain/nftstaking/state"
)

type Record struct {
	Address core.Address `json:"address"`
	*metadata.Metadata
}

type Provenance struct {
	stater *state.Stater
}

func New(stater *state.Stater) *Provenance {
	return &Provenance{stater}
}

func (p *Provenance) handleGetMetadata(w http.ResponseWriter, req *http.Request) error {
	mint, err := utils.AddressVar(req, "mint")
	if err != nil {
		return err
	}
	md, err := metadata.New(p.stater.NewState()).Get(mint)
	if err != nil {
		if errors.Is(err, metadata.ErrNotFound) {
			return utils.NotFound(err)
		}
		return err
	}
	return utils.WriteJSON(w, &Record{
		Address:  metadata.Address(mint),
		Metadata: md,
	})
}

func (p *Provenance) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{mint}").
		Methods(http.MethodGet).
		Name("GET /metadata/{mint}").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetMetadata))
}
