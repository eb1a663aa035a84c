// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/vechain/nftstaking/core"
)

// Receipt is the outcome of an executed transaction. A reverted tx leaves
// no state change besides its own receipt.
type Receipt struct {
	TxID     core.Bytes32   `json:"txID"`
	Op       string         `json:"op"`
	Signers  []core.Address `json:"signers"`
	Time     uint64         `json:"time"`
	Reverted bool           `json:"reverted"`
	Error    string         `json:"error,omitempty"`
	Code     uint32         `json:"code,omitempty"`
	Changes  uint64         `json:"changes"`
}
