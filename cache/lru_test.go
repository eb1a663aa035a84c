// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRU(t *testing.T) {
	_, err := NewLRU[string, int](0)
	assert.Error(t, err)

	c, err := NewLRU[string, int](2)
	require.NoError(t, err)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)
	assert.Equal(t, 2, c.Len())

	_, ok := c.Get("a")
	assert.False(t, ok, "oldest entry evicted")

	v, ok := c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	c.Remove("c")
	_, ok = c.Get("c")
	assert.False(t, ok)
}

func TestGetOrLoad(t *testing.T) {
	c, err := NewLRU[int, string](4)
	require.NoError(t, err)

	loads := 0
	loader := func(k int) (string, error) {
		loads++
		if k < 0 {
			return "", errors.New("negative")
		}
		return "v", nil
	}

	v, err := c.GetOrLoad(1, loader)
	require.NoError(t, err)
	assert.Equal(t, "v", v)
	_, err = c.GetOrLoad(1, loader)
	require.NoError(t, err)
	assert.Equal(t, 1, loads)

	_, err = c.GetOrLoad(-1, loader)
	assert.Error(t, err)
	_, ok := c.Get(-1)
	assert.False(t, ok)
}
