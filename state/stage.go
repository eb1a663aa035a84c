// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"io"
	"slices"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/cache"
	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/kv"
)

type change struct {
	addr    core.Address
	account *Account
}

// Stage abstracts changes on the accounts store.
type Stage struct {
	store   kv.Store
	cache   *cache.LRU[core.Address, *Account]
	changes []change
}

// Stage makes a stage object to compute digest or commit all changes.
func (s *State) Stage() *Stage {
	changes := make([]change, 0)
	for addr, a := range s.Changes() {
		changes = append(changes, change{addr, a})
	}
	slices.SortFunc(changes, func(a, b change) int {
		return bytes.Compare(a.addr[:], b.addr[:])
	})
	return &Stage{store: s.store, cache: s.cache, changes: changes}
}

// Hash computes the digest of all staged changes.
func (s *Stage) Hash() (h core.Bytes32, err error) {
	h = core.Blake2bFn(func(w io.Writer) {
		for _, c := range s.changes {
			w.Write(c.addr[:])
			if err == nil {
				err = rlp.Encode(w, c.account)
			}
		}
	})
	return
}

// Len returns the number of changed accounts.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Commit writes all changes into the store in one batch, together with
// whatever extras put.
func (s *Stage) Commit(extras ...func(kv.Putter) error) error {
	b := s.store.NewBatch()
	batch := accountBucket.NewPutter(b)
	for _, c := range s.changes {
		if err := saveAccount(batch, c.addr, c.account); err != nil {
			return &Error{err}
		}
	}
	for _, extra := range extras {
		if err := extra(b); err != nil {
			return &Error{err}
		}
	}
	if err := b.Write(); err != nil {
		return &Error{errors.Wrap(err, "write batch")}
	}
	for _, c := range s.changes {
		s.cache.Add(c.addr, c.account)
	}
	return nil
}
