// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/nftstaking/api/accounts"
	"github.com/vechain/nftstaking/api/provenance"
	"github.com/vechain/nftstaking/api/staking"
	"github.com/vechain/nftstaking/api/tokens"
	"github.com/vechain/nftstaking/api/transactions"
	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/log"
	"github.com/vechain/nftstaking/runtime"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins  string
	EnableReqLogger *atomic.Bool
	EnableMetrics   bool
	// Clock supplies the time used to evaluate slot locks. Defaults to the wall clock.
	Clock func() uint64
}

// New return api router
func New(rt *runtime.Runtime, program core.Address, opts Options) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	stater := rt.Stater()
	accounts.New(stater).
		Mount(router, "/accounts")
	tokens.New(stater).
		Mount(router, "/tokens")
	provenance.New(stater).
		Mount(router, "/metadata")
	transactions.New(rt).
		Mount(router, "/transactions")
	staking.New(stater, program, opts.Clock).
		Mount(router, "/staking")

	if opts.EnableMetrics {
		router.Use(metricsHandler)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	if opts.EnableReqLogger != nil {
		handler = RequestLoggerHandler(handler, logger, opts.EnableReqLogger)
	}

	return handler.ServeHTTP
}
