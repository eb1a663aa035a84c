// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package rewards tracks the rewards assigned to a staking slot until they are claimed.
package rewards

import (
	"math"

	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/staking/reverts"
)

// MaxItemKinds bounds the number of distinct reward mints pending on a slot.
const MaxItemKinds = 150

// Entry is the pending count of one reward mint.
type Entry struct {
	Mint   core.Address `json:"mint"`
	Amount uint16       `json:"amount"`
}

// Ledger holds the pending rewards of a slot. Items keep the order in which
// each mint was first assigned.
type Ledger struct {
	Items    []Entry `json:"items"`
	Fungible uint64  `json:"fungible"`
}

// HasPending reports whether anything is left to claim.
func (l *Ledger) HasPending() bool {
	return len(l.Items) > 0 || l.Fungible > 0
}

// Count returns the pending count of mint.
func (l *Ledger) Count(mint core.Address) uint16 {
	if i := l.index(mint); i >= 0 {
		return l.Items[i].Amount
	}
	return 0
}

func (l *Ledger) index(mint core.Address) int {
	for i, e := range l.Items {
		if e.Mint == mint {
			return i
		}
	}
	return -1
}

// AddItem increments the pending count of mint by n.
func (l *Ledger) AddItem(mint core.Address, n uint16) error {
	if n == 0 {
		return reverts.ErrInvalidAmount
	}
	if i := l.index(mint); i >= 0 {
		if uint32(l.Items[i].Amount)+uint32(n) > math.MaxUint16 {
			return errors.WithMessagef(reverts.ErrRewardOverflow, "mint %v", mint)
		}
		l.Items[i].Amount += n
		return nil
	}
	if len(l.Items) >= MaxItemKinds {
		return errors.WithMessage(reverts.ErrCapacityExceeded, "claimable items")
	}
	l.Items = append(l.Items, Entry{Mint: mint, Amount: n})
	return nil
}

// TakeItem removes the entry of mint and returns its count.
func (l *Ledger) TakeItem(mint core.Address) (uint16, error) {
	i := l.index(mint)
	if i < 0 || l.Items[i].Amount == 0 {
		return 0, errors.WithMessagef(reverts.ErrNotClaimableItem, "mint %v", mint)
	}
	amount := l.Items[i].Amount
	l.Items = append(l.Items[:i], l.Items[i+1:]...)
	return amount, nil
}

// AddFungible increments the pending fungible amount.
func (l *Ledger) AddFungible(amount uint64) error {
	if amount == 0 {
		return reverts.ErrInvalidAmount
	}
	if l.Fungible+amount < l.Fungible {
		return errors.WithMessage(reverts.ErrRewardOverflow, "fungible amount")
	}
	l.Fungible += amount
	return nil
}

// TakeFungible zeroes the pending fungible amount and returns it.
func (l *Ledger) TakeFungible() (uint64, error) {
	if l.Fungible == 0 {
		return 0, errors.WithMessage(reverts.ErrNotClaimableItem, "no fungible reward")
	}
	amount := l.Fungible
	l.Fungible = 0
	return amount, nil
}
