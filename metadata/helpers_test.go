// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metadata

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstaking/kv"
	"github.com/vechain/nftstaking/state"
)

func stateOf(t *testing.T, store kv.Store) *state.State {
	st := state.NewStater(store, 0).NewState()
	require.NoError(t, st.AddLamports(payer, 1e12))
	return st
}
