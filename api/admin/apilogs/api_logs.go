// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package apilogs toggles API request logging at runtime.
package apilogs

import (
	"net/http"
	"sync/atomic"

	"github.com/gorilla/mux"

	"github.com/vechain/nftstaking/api"
	"github.com/vechain/nftstaking/api/utils"
	"github.com/vechain/nftstaking/log"
)

var logger = log.WithContext("pkg", "apilogs")

type APILogs struct {
	enabled *atomic.Bool
}

func New(enabled *atomic.Bool) *APILogs {
	return &APILogs{enabled}
}

func (a *APILogs) status(w http.ResponseWriter) error {
	return utils.WriteJSON(w, &api.LogStatus{Enabled: a.enabled.Load()})
}

func (a *APILogs) handleGet(w http.ResponseWriter, _ *http.Request) error {
	return a.status(w)
}

func (a *APILogs) handlePost(w http.ResponseWriter, r *http.Request) error {
	var req api.LogStatus
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(err)
	}
	if prev := a.enabled.Swap(req.Enabled); prev != req.Enabled {
		logger.Info("api logs updated", "enabled", req.Enabled)
	}
	return a.status(w)
}

func (a *APILogs) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").
		Methods(http.MethodGet).
		Name("get-api-logs-enabled").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGet))
	sub.Path("").
		Methods(http.MethodPost).
		Name("post-api-logs-enabled").
		HandlerFunc(utils.WrapHandlerFunc(a.handlePost))
}
