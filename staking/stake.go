// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/derive"
	"github.com/vechain/nftstaking/metadata"
	"github.com/vechain/nftstaking/staking/policy"
	"github.com/vechain/nftstaking/staking/reverts"
	"github.com/vechain/nftstaking/staking/slot"
)

// loadSlot verifies addr as slot index of owner and loads it.
func (s *Staking) loadSlot(addr, owner core.Address, index uint32) (*slot.Slot, error) {
	if err := s.verifySlot(addr, owner, index); err != nil {
		return nil, err
	}
	sl, found, err := s.slots.GetSlot(addr)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.WithMessagef(reverts.ErrInvalidSlotIndex, "slot %d of %v", index, owner)
	}
	return sl, nil
}

// authorizeItem checks the provenance of one staked unit. used counts the
// units already claimed from each source by earlier items of the batch.
func (s *Staking) authorizeItem(cfg *Config, owner core.Address, item *StakeItem, used map[core.Address]uint64) error {
	mp := cfg.MetadataProgram
	if _, err := derive.Verify(mp, item.Metadata, []byte(metadata.Prefix), mp[:], item.Mint[:]); err != nil {
		return errors.WithMessagef(reverts.ErrInvalidDerivedAddress, "metadata: %v", err)
	}
	md, err := s.registry.Load(item.Metadata)
	if err != nil {
		if errors.Is(err, metadata.ErrNotFound) {
			return errors.WithMessagef(reverts.ErrMetadataDoesntExist, "mint %v", item.Mint)
		}
		return err
	}
	if md.Mint != item.Mint {
		return errors.WithMessagef(reverts.ErrInvalidAccounts, "metadata %v is not of mint %v", item.Metadata, item.Mint)
	}
	if err := policy.Authorize(md, cfg.AuthorizedCreator, cfg.NameStarts.Items()); err != nil {
		return err
	}
	if err := s.custody.VerifyVault(item.Vault, owner, item.Mint); err != nil {
		return err
	}
	src, err := s.custody.Token().GetAccount(item.Source)
	if err != nil {
		return errors.WithMessagef(reverts.ErrInvalidAccounts, "source: %v", err)
	}
	if src.Mint != item.Mint || src.Owner != owner || src.Amount <= used[item.Source] {
		return errors.WithMessagef(reverts.ErrInvalidAccounts, "source %v", item.Source)
	}
	used[item.Source]++
	return nil
}

// Stake moves one unit of each item into the owner's vaults and records
// them in slot index. A new slot is opened when index equals the owner's
// counter; a lower index adds to an existing slot that has no lock period.
func (s *Staking) Stake(args *StakeArgs) error {
	return s.atomic("stake", func() error {
		cfg, err := s.user(args.Config, args.Owner)
		if err != nil {
			return err
		}
		if err := s.verifyCounter(args.Counter, args.Owner); err != nil {
			return err
		}
		if err := s.verifySlot(args.Slot, args.Owner, args.Index); err != nil {
			return err
		}
		if len(args.Items) == 0 {
			return errors.WithMessage(reverts.ErrInvalidAccounts, "no item to stake")
		}

		counter, err := s.slots.GetCounter(args.Counter, args.Owner)
		if err != nil {
			return err
		}
		var sl *slot.Slot
		switch {
		case args.Index > counter.Next:
			return errors.WithMessagef(reverts.ErrInvalidSlotIndex, "index %d, next %d", args.Index, counter.Next)
		case args.Index == counter.Next:
			sl = &slot.Slot{Index: args.Index, Owner: args.Owner}
			counter.Next++
		default:
			if sl, err = s.loadSlot(args.Slot, args.Owner, args.Index); err != nil {
				return err
			}
			if sl.HasPeriod() {
				return errors.WithMessagef(reverts.ErrStakingLocked, "slot %d", args.Index)
			}
		}
		if len(sl.Tokens)+len(args.Items) > slot.MaxTokens {
			return errors.WithMessage(reverts.ErrCapacityExceeded, "staked tokens")
		}

		used := make(map[core.Address]uint64, len(args.Items))
		for i := range args.Items {
			if err := s.authorizeItem(cfg, args.Owner, &args.Items[i], used); err != nil {
				return err
			}
		}
		for _, item := range args.Items {
			if err := s.custody.Deposit(item.Vault, item.Source, args.Owner, item.Mint); err != nil {
				return err
			}
			if err := sl.AddToken(item.Mint); err != nil {
				return err
			}
		}

		if err := s.slots.SetCounter(args.Owner, args.Counter, counter); err != nil {
			return err
		}
		if err := s.slots.SetSlot(args.Owner, args.Slot, sl); err != nil {
			return err
		}
		logger.Debug("staked", "owner", args.Owner, "slot", args.Index, "items", len(args.Items))
		return nil
	})
}

// LockStake commits the tokens of a slot for period seconds from now.
func (s *Staking) LockStake(args *LockStakeArgs) error {
	return s.atomic("lockStake", func() error {
		cfg, err := s.user(args.Config, args.Owner)
		if err != nil {
			return err
		}
		sl, err := s.loadSlot(args.Slot, args.Owner, args.Index)
		if err != nil {
			return err
		}
		if sl.IsEmpty() {
			return errors.WithMessagef(reverts.ErrSlotEmpty, "slot %d", args.Index)
		}
		now := s.env.Time()
		if sl.IsLocked(now) {
			return errors.WithMessagef(reverts.ErrStakingLocked, "slot %d unlocks at %d", args.Index, sl.UnlocksAt())
		}
		if !cfg.ValidPeriod(args.Period) {
			return errors.WithMessagef(reverts.ErrInvalidStakingPeriod, "period %d not in [%d, %d]", args.Period, cfg.MinPeriod, cfg.MaxPeriod)
		}
		sl.Lock(now, args.Period)
		logger.Debug("stake locked", "owner", args.Owner, "slot", args.Index, "period", args.Period)
		return s.slots.SetSlot(args.Owner, args.Slot, sl)
	})
}

// Unstake returns every token of a slot to the owner and resets the slot.
// Items must name each held mint exactly once.
func (s *Staking) Unstake(args *UnstakeArgs) error {
	return s.atomic("unstake", func() error {
		if _, err := s.user(args.Config, args.Owner); err != nil {
			return err
		}
		sl, err := s.loadSlot(args.Slot, args.Owner, args.Index)
		if err != nil {
			return err
		}
		if sl.Rewards.HasPending() {
			return errors.WithMessagef(reverts.ErrPendingRewardsNotClaimed, "slot %d", args.Index)
		}
		if sl.IsLocked(s.env.Time()) {
			return errors.WithMessagef(reverts.ErrStakingLocked, "slot %d unlocks at %d", args.Index, sl.UnlocksAt())
		}
		if sl.IsEmpty() {
			return errors.WithMessagef(reverts.ErrSlotEmpty, "slot %d", args.Index)
		}

		counts, _ := sl.Holdings()
		if len(args.Items) != len(counts) {
			return errors.WithMessagef(reverts.ErrInvalidAccounts, "%d items for %d mints", len(args.Items), len(counts))
		}
		seen := make(map[core.Address]bool, len(args.Items))
		for _, item := range args.Items {
			if counts[item.Mint] == 0 || seen[item.Mint] {
				return errors.WithMessagef(reverts.ErrInvalidAccounts, "mint %v", item.Mint)
			}
			seen[item.Mint] = true
			dest, err := s.custody.Token().GetAccount(item.Destination)
			if err != nil || dest.Mint != item.Mint {
				return errors.WithMessagef(reverts.ErrInvalidAccounts, "destination %v", item.Destination)
			}
		}

		for _, item := range args.Items {
			if err := s.custody.Withdraw(item.Vault, item.Destination, args.Owner, item.Mint, counts[item.Mint]); err != nil {
				return err
			}
		}
		sl.Release()
		logger.Debug("unstaked", "owner", args.Owner, "slot", args.Index, "mints", len(counts))
		return s.slots.SetSlot(args.Owner, args.Slot, sl)
	})
}
