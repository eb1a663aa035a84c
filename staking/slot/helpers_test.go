// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"github.com/vechain/nftstaking/kv"
	"github.com/vechain/nftstaking/state"
)

func newState(store kv.Store) *state.State {
	return state.NewStater(store, 0).NewState()
}
