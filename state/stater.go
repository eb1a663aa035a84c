// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/vechain/nftstaking/cache"
	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/kv"
)

const accountBucket = kv.Bucket("a")

// Stater is the state creator.
type Stater struct {
	store kv.Store
	cache *cache.LRU[core.Address, *Account]
}

// NewStater create a new stater. cacheSize is the number of decoded accounts kept in memory.
func NewStater(store kv.Store, cacheSize int) *Stater {
	if cacheSize <= 0 {
		cacheSize = 1024
	}
	c, _ := cache.NewLRU[core.Address, *Account](cacheSize)
	return &Stater{store, c}
}

// NewState create a new state object over the committed accounts.
func (s *Stater) NewState() *State {
	return New(s.store, s.cache)
}

// Store returns the underlying kv store.
func (s *Stater) Store() kv.Store {
	return s.store
}
