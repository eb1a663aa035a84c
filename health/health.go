// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package health tracks whether the node is ready to serve and when it last
// executed a transaction.
package health

import (
	"sync"
	"time"

	"github.com/vechain/nftstaking/core"
)

type Execution struct {
	LastTx    *core.Bytes32 `json:"lastTx"`
	Timestamp *time.Time    `json:"timestamp"`
	Count     uint64        `json:"count"`
}

type Status struct {
	Healthy   bool          `json:"healthy"`
	Genesis   *core.Bytes32 `json:"genesis"`
	Execution *Execution    `json:"execution"`
}

type Health struct {
	lock       sync.RWMutex
	genesisID  *core.Bytes32
	lastTx     *core.Bytes32
	lastTxTime time.Time
	count      uint64
}

// GenesisReady marks the ledger as built on genesis id.
func (h *Health) GenesisReady(id core.Bytes32) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.genesisID = &id
}

// TxExecuted records an executed transaction, reverted or not.
func (h *Health) TxExecuted(id core.Bytes32) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.lastTx = &id
	h.lastTxTime = time.Now()
	h.count++
}

// Status reports healthy once the genesis is in place.
func (h *Health) Status() *Status {
	h.lock.RLock()
	defer h.lock.RUnlock()

	exec := &Execution{LastTx: h.lastTx, Count: h.count}
	if h.lastTx != nil {
		ts := h.lastTxTime
		exec.Timestamp = &ts
	}
	return &Status{
		Healthy:   h.genesisID != nil,
		Genesis:   h.genesisID,
		Execution: exec,
	}
}
