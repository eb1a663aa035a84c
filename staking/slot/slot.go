// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/staking/reverts"
	"github.com/vechain/nftstaking/staking/rewards"
)

// MaxTokens bounds the number of tokens held by one slot.
const MaxTokens = 150

// Record sizes used for rent.
const (
	CounterSpace = 8 + 32 + 4
	SlotSpace    = 8 + 4 + 32 + 4 + MaxTokens*32 + 8 + 8 + 4 + rewards.MaxItemKinds*(32+2) + 8
)

// Counter is the next unused slot index of an owner.
type Counter struct {
	Owner core.Address `json:"owner"`
	Next  uint32       `json:"next"`
}

// Slot is a group of tokens staked together by one owner. Tokens may repeat
// when a mint has more than one unit.
type Slot struct {
	Index    uint32         `json:"index"`
	Owner    core.Address   `json:"owner"`
	Tokens   []core.Address `json:"tokens"`
	StakedAt uint64         `json:"stakedAt"`
	Period   uint64         `json:"period"`
	Rewards  rewards.Ledger `json:"rewards"`
}

// IsLocked reports whether the commitment is running at now.
func (s *Slot) IsLocked(now uint64) bool {
	if s.Period == 0 {
		return false
	}
	return now < s.StakedAt || now-s.StakedAt < s.Period
}

// UnlocksAt returns the first time the slot can be unstaked.
func (s *Slot) UnlocksAt() uint64 {
	if s.Period == 0 {
		return 0
	}
	return s.StakedAt + s.Period
}

// HasPeriod reports whether a lock was ever set since the last unstake.
func (s *Slot) HasPeriod() bool {
	return s.Period > 0
}

// IsEmpty reports whether the slot holds no token.
func (s *Slot) IsEmpty() bool {
	return len(s.Tokens) == 0
}

// AddToken appends one unit of mint.
func (s *Slot) AddToken(mint core.Address) error {
	if len(s.Tokens) >= MaxTokens {
		return errors.WithMessage(reverts.ErrCapacityExceeded, "staked tokens")
	}
	s.Tokens = append(s.Tokens, mint)
	return nil
}

// Holdings returns how many units of each mint the slot holds, and the
// mints in first appearance order.
func (s *Slot) Holdings() (map[core.Address]uint64, []core.Address) {
	counts := make(map[core.Address]uint64)
	var order []core.Address
	for _, t := range s.Tokens {
		if counts[t] == 0 {
			order = append(order, t)
		}
		counts[t]++
	}
	return counts, order
}

// Lock starts a commitment of period seconds at now.
func (s *Slot) Lock(now, period uint64) {
	s.StakedAt = now
	s.Period = period
}

// Release empties the slot and clears the commitment. Pending rewards are kept.
func (s *Slot) Release() {
	s.Tokens = nil
	s.StakedAt = 0
	s.Period = 0
}
