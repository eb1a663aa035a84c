// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/staking/reverts"
)

var (
	r1 = core.BytesToAddress([]byte("r1"))
	r2 = core.BytesToAddress([]byte("r2"))
)

func TestItems(t *testing.T) {
	var l Ledger
	assert.False(t, l.HasPending())

	require.NoError(t, l.AddItem(r1, 1))
	require.NoError(t, l.AddItem(r2, 1))
	require.NoError(t, l.AddItem(r1, 1))
	assert.True(t, l.HasPending())
	assert.Equal(t, []Entry{{r1, 2}, {r2, 1}}, l.Items)

	n, err := l.TakeItem(r1)
	require.NoError(t, err)
	assert.Equal(t, uint16(2), n)
	assert.Equal(t, uint16(0), l.Count(r1))

	// no double claim
	_, err = l.TakeItem(r1)
	assert.True(t, errors.Is(err, reverts.ErrNotClaimableItem))

	n, err = l.TakeItem(r2)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), n)
	assert.False(t, l.HasPending())
}

func TestItemLimits(t *testing.T) {
	var l Ledger
	assert.Equal(t, reverts.ErrInvalidAmount, l.AddItem(r1, 0))

	require.NoError(t, l.AddItem(r1, math.MaxUint16))
	assert.True(t, errors.Is(l.AddItem(r1, 1), reverts.ErrRewardOverflow))
	assert.Equal(t, uint16(math.MaxUint16), l.Count(r1))

	var full Ledger
	for i := range MaxItemKinds {
		require.NoError(t, full.AddItem(core.BytesToAddress([]byte{byte(i), 1}), 1))
	}
	assert.True(t, errors.Is(full.AddItem(r2, 1), reverts.ErrCapacityExceeded))
	// existing kinds can still grow
	require.NoError(t, full.AddItem(core.BytesToAddress([]byte{0, 1}), 1))
}

func TestFungible(t *testing.T) {
	var l Ledger
	_, err := l.TakeFungible()
	assert.True(t, errors.Is(err, reverts.ErrNotClaimableItem))

	require.NoError(t, l.AddFungible(500))
	require.NoError(t, l.AddFungible(250))
	assert.True(t, l.HasPending())

	assert.True(t, errors.Is(l.AddFungible(math.MaxUint64), reverts.ErrRewardOverflow))
	assert.Equal(t, reverts.ErrInvalidAmount, l.AddFungible(0))

	amount, err := l.TakeFungible()
	require.NoError(t, err)
	assert.Equal(t, uint64(750), amount)
	assert.False(t, l.HasPending())
}
