// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package custody moves tokens in and out of the program owned vaults.
//
// Token vaults hold the staked units of one mint for one owner and are
// controlled by the staking config address. The reward vault holds the
// fungible reward currency and is its own authority.
package custody

import (
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/derive"
	"github.com/vechain/nftstaking/log"
	"github.com/vechain/nftstaking/staking/reverts"
	"github.com/vechain/nftstaking/state"
	"github.com/vechain/nftstaking/token"
)

var logger = log.WithContext("pkg", "custody")

// VaultAddress returns the token vault of owner for mint.
func VaultAddress(program, owner, mint core.Address) (core.Address, uint8) {
	return derive.MustFindAddress(program, owner[:], mint[:])
}

// RewardVaultAddress returns the fungible reward vault for rewardMint.
func RewardVaultAddress(program, rewardMint core.Address) (core.Address, uint8) {
	return derive.MustFindAddress(program, rewardMint[:])
}

func verify(program, supplied core.Address, seeds ...[]byte) error {
	if _, err := derive.Verify(program, supplied, seeds...); err != nil {
		return errors.WithMessage(reverts.ErrInvalidDerivedAddress, err.Error())
	}
	return nil
}

// Custody operates the vaults of one staking program.
type Custody struct {
	token     *token.Token
	program   core.Address
	authority core.Address
}

// New create a new instance. authority is the staking config address that
// controls the token vaults and the reward mints.
func New(st *state.State, program, authority core.Address) *Custody {
	return &Custody{
		token:     token.New(st),
		program:   program,
		authority: authority,
	}
}

// Token returns the token primitive the custody operates on.
func (c *Custody) Token() *token.Token {
	return c.token
}

// VerifyVault checks that vault is the derived vault of owner for mint.
func (c *Custody) VerifyVault(vault, owner, mint core.Address) error {
	return verify(c.program, vault, owner[:], mint[:])
}

// PrepareVault makes sure vault can receive mint: it is created if missing
// (rent paid by owner) or validated otherwise.
func (c *Custody) PrepareVault(vault, owner, mint core.Address) error {
	if err := c.VerifyVault(vault, owner, mint); err != nil {
		return err
	}
	exists, err := c.token.IsAccount(vault)
	if err != nil {
		return err
	}
	if !exists {
		logger.Debug("creating vault", "vault", vault, "owner", owner, "mint", mint)
		return c.token.InitializeAccount(owner, vault, mint, c.authority)
	}
	acc, err := c.token.GetAccount(vault)
	if err != nil {
		return err
	}
	if acc.Mint != mint || acc.Owner != c.authority || acc.State != token.Initialized {
		return errors.WithMessagef(reverts.ErrInvalidAccounts, "vault %v", vault)
	}
	return nil
}

// Deposit moves one unit of mint from source, owned by owner, into its vault.
func (c *Custody) Deposit(vault, source, owner, mint core.Address) error {
	src, err := c.token.GetAccount(source)
	if err != nil {
		return errors.WithMessage(reverts.ErrInvalidAccounts, err.Error())
	}
	if src.Mint != mint || src.Owner != owner {
		return errors.WithMessagef(reverts.ErrInvalidAccounts, "source %v", source)
	}
	if err := c.PrepareVault(vault, owner, mint); err != nil {
		return err
	}
	return c.token.Transfer(source, vault, owner, 1)
}

// Withdraw pays amount units from the vault of owner for mint to dest and
// closes the vault once it is empty, returning its rent to owner.
func (c *Custody) Withdraw(vault, dest, owner, mint core.Address, amount uint64) error {
	if err := c.VerifyVault(vault, owner, mint); err != nil {
		return err
	}
	acc, err := c.token.GetAccount(vault)
	if err != nil {
		return errors.WithMessage(reverts.ErrInvalidAccounts, err.Error())
	}
	if acc.Mint != mint || acc.Owner != c.authority || acc.Amount < amount {
		return errors.WithMessagef(reverts.ErrInvalidAccounts, "vault %v", vault)
	}
	if err := c.token.Transfer(vault, dest, c.authority, amount); err != nil {
		return err
	}
	if acc.Amount == amount {
		logger.Debug("closing vault", "vault", vault, "owner", owner)
		return c.token.CloseAccount(vault, owner, c.authority)
	}
	return nil
}

// AcquireMintAuthority moves the mint authority of mint from current to the
// program.
func (c *Custody) AcquireMintAuthority(mint, current core.Address) error {
	authority := c.authority
	return c.token.SetMintAuthority(mint, current, &authority)
}

// ReleaseMintAuthority hands the mint authority of mint to next.
func (c *Custody) ReleaseMintAuthority(mint, next core.Address) error {
	return c.token.SetMintAuthority(mint, c.authority, &next)
}

// HoldsMintAuthority reports whether the program can mint mint.
func (c *Custody) HoldsMintAuthority(mint core.Address) (bool, error) {
	m, err := c.token.GetMint(mint)
	if err != nil {
		return false, err
	}
	return m.HasAuthority(c.authority), nil
}

// MintReward mints amount of mint into dest under the program authority.
func (c *Custody) MintReward(mint, dest core.Address, amount uint64) error {
	return c.token.MintTo(mint, dest, c.authority, amount)
}

// VerifyRewardVault checks that vault is the derived reward vault of rewardMint.
func (c *Custody) VerifyRewardVault(vault, rewardMint core.Address) error {
	return verify(c.program, vault, rewardMint[:])
}

// CreateRewardVault creates the reward vault, paid by payer.
func (c *Custody) CreateRewardVault(payer, vault, rewardMint core.Address) error {
	if err := c.VerifyRewardVault(vault, rewardMint); err != nil {
		return err
	}
	return c.token.InitializeAccount(payer, vault, rewardMint, vault)
}

// FundRewardVault moves amount from source, owned by funder, into the reward vault.
func (c *Custody) FundRewardVault(vault, source, funder core.Address, amount uint64) error {
	return c.token.Transfer(source, vault, funder, amount)
}

// PayReward moves amount from the reward vault to dest.
func (c *Custody) PayReward(vault, dest core.Address, amount uint64) error {
	return c.token.Transfer(vault, dest, vault, amount)
}
