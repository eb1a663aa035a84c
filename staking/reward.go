// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/staking/reverts"
	"github.com/vechain/nftstaking/staking/slot"
)

// lockedSlots loads every target and checks it is locked now. A target
// named more than once maps to the same slot.
func (s *Staking) lockedSlots(targets []Target) (map[core.Address]*slot.Slot, error) {
	if len(targets) == 0 {
		return nil, errors.WithMessage(reverts.ErrInvalidAccounts, "no target")
	}
	now := s.env.Time()
	slots := make(map[core.Address]*slot.Slot, len(targets))
	for _, t := range targets {
		if _, ok := slots[t.Slot]; ok {
			if err := s.verifySlot(t.Slot, t.Owner, t.Index); err != nil {
				return nil, err
			}
			continue
		}
		sl, err := s.loadSlot(t.Slot, t.Owner, t.Index)
		if err != nil {
			return nil, err
		}
		if !sl.IsLocked(now) {
			return nil, errors.WithMessagef(reverts.ErrStakingNotLocked, "slot %d of %v", t.Index, t.Owner)
		}
		slots[t.Slot] = sl
	}
	return slots, nil
}

func (s *Staking) saveSlots(payer core.Address, slots map[core.Address]*slot.Slot) error {
	for addr, sl := range slots {
		if err := s.slots.SetSlot(payer, addr, sl); err != nil {
			return err
		}
	}
	return nil
}

// AddWinner assigns one unit of an active reward mint to each target.
func (s *Staking) AddWinner(args *AddWinnerArgs) error {
	return s.atomic("addWinner", func() error {
		cfg, err := s.admin(args.Config, args.Admin)
		if err != nil {
			return err
		}
		if err := s.requireActive(cfg, args.RewardMint); err != nil {
			return err
		}
		slots, err := s.lockedSlots(args.Targets)
		if err != nil {
			return err
		}
		for _, t := range args.Targets {
			if err := slots[t.Slot].Rewards.AddItem(args.RewardMint, 1); err != nil {
				return err
			}
		}
		logger.Debug("winners added", "mint", args.RewardMint, "targets", len(args.Targets))
		return s.saveSlots(args.Admin, slots)
	})
}

// AddFungibleWinner funds the reward vault from source and credits each
// target with its amount.
func (s *Staking) AddFungibleWinner(args *AddFungibleWinnerArgs) error {
	return s.atomic("addFungibleWinner", func() error {
		cfg, err := s.admin(args.Config, args.Admin)
		if err != nil {
			return err
		}
		if args.RewardVault != cfg.RewardVault {
			return errors.WithMessagef(reverts.ErrInvalidDerivedAddress, "reward vault %v", args.RewardVault)
		}
		if len(args.Targets) != len(args.Amounts) {
			return errors.WithMessagef(reverts.ErrInvalidAccounts, "%d targets for %d amounts", len(args.Targets), len(args.Amounts))
		}
		var total uint64
		for _, amount := range args.Amounts {
			if amount == 0 {
				return reverts.ErrInvalidAmount
			}
			if total+amount < total {
				return errors.WithMessage(reverts.ErrRewardOverflow, "total amount")
			}
			total += amount
		}
		slots, err := s.lockedSlots(args.Targets)
		if err != nil {
			return err
		}
		for i, t := range args.Targets {
			if err := slots[t.Slot].Rewards.AddFungible(args.Amounts[i]); err != nil {
				return err
			}
		}
		if err := s.custody.FundRewardVault(args.RewardVault, args.Source, args.Admin, total); err != nil {
			return err
		}
		logger.Debug("fungible winners added", "targets", len(args.Targets), "total", total)
		return s.saveSlots(args.Admin, slots)
	})
}

// Claim pays out the pending count of a reward mint. A mint that is no
// longer active is dropped from the slot without minting.
func (s *Staking) Claim(args *ClaimArgs) error {
	return s.atomic("claim", func() error {
		cfg, err := s.user(args.Config, args.Owner)
		if err != nil {
			return err
		}
		sl, err := s.loadSlot(args.Slot, args.Owner, args.Index)
		if err != nil {
			return err
		}
		count, err := sl.Rewards.TakeItem(args.RewardMint)
		if err != nil {
			return err
		}
		if cfg.ActiveRewards.Contains(args.RewardMint) {
			if err := s.custody.MintReward(args.RewardMint, args.Destination, uint64(count)); err != nil {
				return err
			}
			logger.Debug("reward claimed", "owner", args.Owner, "mint", args.RewardMint, "count", count)
		} else {
			logger.Warn("inactive reward dropped", "owner", args.Owner, "mint", args.RewardMint, "count", count)
		}
		return s.slots.SetSlot(args.Owner, args.Slot, sl)
	})
}

// ClaimFungibleReward pays the pending fungible amount from the reward vault.
func (s *Staking) ClaimFungibleReward(args *ClaimFungibleArgs) error {
	return s.atomic("claimFungibleReward", func() error {
		cfg, err := s.user(args.Config, args.Owner)
		if err != nil {
			return err
		}
		if args.RewardVault != cfg.RewardVault {
			return errors.WithMessagef(reverts.ErrInvalidDerivedAddress, "reward vault %v", args.RewardVault)
		}
		sl, err := s.loadSlot(args.Slot, args.Owner, args.Index)
		if err != nil {
			return err
		}
		amount, err := sl.Rewards.TakeFungible()
		if err != nil {
			return err
		}
		if err := s.custody.PayReward(args.RewardVault, args.Destination, amount); err != nil {
			return err
		}
		logger.Debug("fungible reward claimed", "owner", args.Owner, "amount", amount)
		return s.slots.SetSlot(args.Owner, args.Slot, sl)
	})
}
