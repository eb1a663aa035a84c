// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/vechain/nftstaking/log"
)

// LogStatus is the body of the api logs admin endpoint.
type LogStatus struct {
	Enabled bool `json:"enabled"`
}

// RequestLoggerHandler returns a http handler to ensure requests are syphoned into the writer
// while enabled is set.
func RequestLoggerHandler(handler http.Handler, logger log.Logger, enabled *atomic.Bool) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if !enabled.Load() {
			handler.ServeHTTP(w, r)
			return
		}
		// the body can only be read once, so it is put back for the next handler
		var bodyBytes []byte
		var err error
		if r.Body != nil {
			bodyBytes, err = io.ReadAll(r.Body)
			if err != nil {
				logger.Warn("unexpected body read error", "err", err)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}

		logger.Info("API Request",
			"timestamp", time.Now().Unix(),
			"URI", r.URL.String(),
			"Method", r.Method,
			"Body", string(bodyBytes),
		)

		handler.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}
