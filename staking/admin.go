// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/staking/reverts"
)

// Initialize creates the config and the fungible reward vault.
func (s *Staking) Initialize(args *InitializeArgs) error {
	return s.atomic("initialize", func() error {
		if err := s.requireSigner(args.Admin); err != nil {
			return err
		}
		if err := s.verifyConfig(args.Config); err != nil {
			return err
		}
		exists, err := s.state.Exists(args.Config)
		if err != nil {
			return err
		}
		if exists {
			return reverts.ErrAlreadyInitialized
		}
		if err := checkPeriodBounds(args.MinPeriod, args.MaxPeriod); err != nil {
			return err
		}
		if _, err := s.custody.Token().GetMint(args.RewardMint); err != nil {
			return errors.WithMessage(reverts.ErrInvalidRewardMint, err.Error())
		}
		if err := s.custody.VerifyRewardVault(args.RewardVault, args.RewardMint); err != nil {
			return err
		}
		_, vaultNonce := RewardVaultAddress(s.program, args.RewardMint)

		cfg := &Config{
			Admin:             args.Admin,
			MetadataProgram:   args.MetadataProgram,
			AuthorizedCreator: args.AuthorizedCreator,
			MinPeriod:         args.MinPeriod,
			MaxPeriod:         args.MaxPeriod,
			RewardMint:        args.RewardMint,
			RewardVault:       args.RewardVault,
			RewardVaultNonce:  vaultNonce,
			Nonce:             s.configNonce,
		}
		if err := addNamePrefixes(cfg, args.NamePrefixes); err != nil {
			return err
		}
		if err := s.state.CreateAccount(args.Admin, args.Config, s.program, ConfigSpace); err != nil {
			return err
		}
		if err := s.custody.CreateRewardVault(args.Admin, args.RewardVault, args.RewardMint); err != nil {
			return err
		}
		logger.Info("staking initialized", "admin", args.Admin, "config", args.Config, "rewardMint", args.RewardMint)
		return s.saveConfig(cfg)
	})
}

// ToggleFreeze flips the freeze flag.
func (s *Staking) ToggleFreeze(args *AdminArgs) error {
	return s.atomic("toggleFreeze", func() error {
		cfg, err := s.admin(args.Config, args.Admin)
		if err != nil {
			return err
		}
		cfg.Frozen = !cfg.Frozen
		logger.Info("freeze toggled", "frozen", cfg.Frozen)
		return s.saveConfig(cfg)
	})
}

// UpdateAdmin hands the admin role to another key.
func (s *Staking) UpdateAdmin(args *UpdateAdminArgs) error {
	return s.atomic("updateAdmin", func() error {
		cfg, err := s.admin(args.Config, args.Admin)
		if err != nil {
			return err
		}
		cfg.Admin = args.NewAdmin
		logger.Info("admin updated", "admin", args.NewAdmin)
		return s.saveConfig(cfg)
	})
}

func (s *Staking) UpdateAuthorizedCreator(args *UpdateAuthorizedCreatorArgs) error {
	return s.atomic("updateAuthorizedCreator", func() error {
		cfg, err := s.admin(args.Config, args.Admin)
		if err != nil {
			return err
		}
		cfg.AuthorizedCreator = args.Creator
		return s.saveConfig(cfg)
	})
}

func (s *Staking) UpdateStakingPeriodBounds(args *UpdatePeriodBoundsArgs) error {
	return s.atomic("updateStakingPeriodBounds", func() error {
		cfg, err := s.admin(args.Config, args.Admin)
		if err != nil {
			return err
		}
		if err := checkPeriodBounds(args.MinPeriod, args.MaxPeriod); err != nil {
			return err
		}
		cfg.MinPeriod, cfg.MaxPeriod = args.MinPeriod, args.MaxPeriod
		return s.saveConfig(cfg)
	})
}

func addNamePrefixes(cfg *Config, prefixes []string) error {
	for _, p := range prefixes {
		if err := checkNamePrefix(p); err != nil {
			return err
		}
		if cfg.NameStarts.Contains(p) {
			continue
		}
		if cfg.NameStarts.Len() >= MaxNamePrefixes {
			return errors.WithMessage(reverts.ErrCapacityExceeded, "name prefixes")
		}
		cfg.NameStarts.Insert(p)
	}
	return nil
}

// AddAuthorizedNameStarts appends prefixes, skipping those already present.
func (s *Staking) AddAuthorizedNameStarts(args *NamePrefixesArgs) error {
	return s.atomic("addAuthorizedNameStarts", func() error {
		cfg, err := s.admin(args.Config, args.Admin)
		if err != nil {
			return err
		}
		if err := addNamePrefixes(cfg, args.Prefixes); err != nil {
			return err
		}
		return s.saveConfig(cfg)
	})
}

// RemoveAuthorizedNameStarts removes prefixes. Every prefix must be present.
func (s *Staking) RemoveAuthorizedNameStarts(args *NamePrefixesArgs) error {
	return s.atomic("removeAuthorizedNameStarts", func() error {
		cfg, err := s.admin(args.Config, args.Admin)
		if err != nil {
			return err
		}
		for _, p := range args.Prefixes {
			if !cfg.NameStarts.Contains(p) {
				return errors.WithMessagef(reverts.ErrPrefixNotFound, "%q", p)
			}
		}
		for _, p := range args.Prefixes {
			cfg.NameStarts.Remove(p)
		}
		return s.saveConfig(cfg)
	})
}

// AddReward activates reward mints. The admin must be the current mint
// authority of each; the authority moves to the config account.
func (s *Staking) AddReward(args *AddRewardArgs) error {
	return s.atomic("addReward", func() error {
		cfg, err := s.admin(args.Config, args.Admin)
		if err != nil {
			return err
		}
		for _, mint := range args.Mints {
			if cfg.ActiveRewards.Contains(mint) {
				return errors.WithMessagef(reverts.ErrDuplicateReward, "%v", mint)
			}
			if cfg.ActiveRewards.Len() >= MaxActiveRewards {
				return errors.WithMessage(reverts.ErrCapacityExceeded, "active rewards")
			}
			held, err := s.custody.HoldsMintAuthority(mint)
			if err != nil {
				return errors.WithMessage(reverts.ErrInvalidRewardMint, err.Error())
			}
			if !held {
				if err := s.custody.AcquireMintAuthority(mint, args.Admin); err != nil {
					return errors.WithMessage(reverts.ErrInvalidRewardMint, err.Error())
				}
			}
			cfg.ActiveRewards.Insert(mint)
			logger.Debug("reward added", "mint", mint)
		}
		return s.saveConfig(cfg)
	})
}

// RemoveReward deactivates mint and hands its mint authority to newAuthority.
func (s *Staking) RemoveReward(args *RemoveRewardArgs) error {
	return s.atomic("removeReward", func() error {
		cfg, err := s.admin(args.Config, args.Admin)
		if err != nil {
			return err
		}
		if !cfg.ActiveRewards.Remove(args.Mint) {
			return errors.WithMessagef(reverts.ErrRewardNotActive, "%v", args.Mint)
		}
		if err := s.custody.ReleaseMintAuthority(args.Mint, args.NewAuthority); err != nil {
			return err
		}
		logger.Debug("reward removed", "mint", args.Mint, "authority", args.NewAuthority)
		return s.saveConfig(cfg)
	})
}

// DirectMint mints an active reward to destination outside of any slot.
func (s *Staking) DirectMint(args *DirectMintArgs) error {
	return s.atomic("directMint", func() error {
		cfg, err := s.admin(args.Config, args.Admin)
		if err != nil {
			return err
		}
		if cfg.Frozen {
			return reverts.ErrProgramFrozen
		}
		if err := s.requireActive(cfg, args.Mint); err != nil {
			return err
		}
		if args.Amount == 0 {
			return reverts.ErrInvalidAmount
		}
		return s.custody.MintReward(args.Mint, args.Destination, args.Amount)
	})
}

func (s *Staking) requireActive(cfg *Config, mint core.Address) error {
	if !cfg.ActiveRewards.Contains(mint) {
		return errors.WithMessagef(reverts.ErrInvalidRewardMint, "%v", mint)
	}
	return nil
}
