// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements the fungible and non-fungible token primitive:
// mints, token accounts, transfers, minting and account closing.
//
// Authorization is the caller's concern: an authority argument is trusted to
// have signed, either as a transaction signer or as a derived address whose
// seeds were verified by the invoking program.
package token

import (
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/derive"
	"github.com/vechain/nftstaking/log"
	"github.com/vechain/nftstaking/state"
)

var logger = log.WithContext("pkg", "token")

var (
	ErrInvalidMint       = errors.New("token: invalid mint")
	ErrInvalidAccount    = errors.New("token: invalid token account")
	ErrMintMismatch      = errors.New("token: account not associated with this mint")
	ErrOwnerMismatch     = errors.New("token: owner does not match")
	ErrInsufficientFunds = errors.New("token: insufficient funds")
	ErrFixedSupply       = errors.New("token: fixed supply")
	ErrAccountFrozen     = errors.New("token: account is frozen")
	ErrNonZeroBalance    = errors.New("token: non-native account can only be closed if its balance is zero")
	ErrOverflow          = errors.New("token: operation overflowed")
)

// Token operates on mints and token accounts in a state.
type Token struct {
	state *state.State
}

// New create a new instance.
func New(st *state.State) *Token {
	return &Token{st}
}

// AssociatedAddress returns the canonical token account of owner for mint.
func AssociatedAddress(owner, mint core.Address) core.Address {
	addr, _ := derive.MustFindAddress(AssociatedProgramID, owner[:], ProgramID[:], mint[:])
	return addr
}

// GetMint loads the mint at addr.
func (t *Token) GetMint(addr core.Address) (*Mint, error) {
	var m Mint
	owner, err := t.state.DecodeData(addr, &m)
	if err != nil {
		if errors.Is(err, state.ErrAccountNotFound) {
			return nil, errors.WithMessagef(ErrInvalidMint, "%v", addr)
		}
		return nil, err
	}
	if owner != ProgramID {
		return nil, errors.WithMessagef(ErrInvalidMint, "%v not owned by token program", addr)
	}
	return &m, nil
}

// GetAccount loads the token account at addr.
func (t *Token) GetAccount(addr core.Address) (*Account, error) {
	var a Account
	owner, err := t.state.DecodeData(addr, &a)
	if err != nil {
		if errors.Is(err, state.ErrAccountNotFound) {
			return nil, errors.WithMessagef(ErrInvalidAccount, "%v", addr)
		}
		return nil, err
	}
	if owner != ProgramID || a.State == Uninitialized {
		return nil, errors.WithMessagef(ErrInvalidAccount, "%v", addr)
	}
	return &a, nil
}

// IsAccount reports whether addr holds an initialized token account.
func (t *Token) IsAccount(addr core.Address) (bool, error) {
	_, err := t.GetAccount(addr)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrInvalidAccount) {
		return false, nil
	}
	return false, err
}

// InitializeMint creates a new mint at addr, paid by payer.
func (t *Token) InitializeMint(payer, addr core.Address, authority *core.Address, decimals uint8) error {
	if err := t.state.CreateAccount(payer, addr, ProgramID, MintSize); err != nil {
		return err
	}
	return t.state.EncodeData(addr, &Mint{MintAuthority: authority, Decimals: decimals})
}

// InitializeAccount creates a token account at addr for owner, paid by payer.
func (t *Token) InitializeAccount(payer, addr, mint, owner core.Address) error {
	if _, err := t.GetMint(mint); err != nil {
		return err
	}
	if err := t.state.CreateAccount(payer, addr, ProgramID, AccountSize); err != nil {
		return err
	}
	return t.state.EncodeData(addr, &Account{Mint: mint, Owner: owner, State: Initialized})
}

// CreateAssociatedAccount creates the associated token account of owner
// for mint if it does not exist yet and returns its address.
func (t *Token) CreateAssociatedAccount(payer, owner, mint core.Address) (core.Address, error) {
	addr := AssociatedAddress(owner, mint)
	exists, err := t.IsAccount(addr)
	if err != nil {
		return core.Address{}, err
	}
	if exists {
		return addr, nil
	}
	return addr, t.InitializeAccount(payer, addr, mint, owner)
}

// Transfer moves amount from source to dest. authority must own source.
func (t *Token) Transfer(source, dest, authority core.Address, amount uint64) error {
	from, err := t.GetAccount(source)
	if err != nil {
		return err
	}
	to, err := t.GetAccount(dest)
	if err != nil {
		return err
	}
	if from.State == Frozen || to.State == Frozen {
		return ErrAccountFrozen
	}
	if from.Mint != to.Mint {
		return ErrMintMismatch
	}
	if from.Owner != authority {
		return errors.WithMessagef(ErrOwnerMismatch, "%v is not the owner of %v", authority, source)
	}
	if from.Amount < amount {
		return ErrInsufficientFunds
	}
	if source == dest {
		return nil
	}
	if to.Amount+amount < to.Amount {
		return ErrOverflow
	}
	from.Amount -= amount
	to.Amount += amount
	if err := t.state.EncodeData(source, from); err != nil {
		return err
	}
	logger.Trace("transfer", "from", source, "to", dest, "amount", amount)
	return t.state.EncodeData(dest, to)
}

// MintTo mints amount of mint into dest. authority must be the mint authority.
func (t *Token) MintTo(mint, dest, authority core.Address, amount uint64) error {
	m, err := t.GetMint(mint)
	if err != nil {
		return err
	}
	if m.MintAuthority == nil {
		return ErrFixedSupply
	}
	if *m.MintAuthority != authority {
		return errors.WithMessagef(ErrOwnerMismatch, "%v is not the mint authority of %v", authority, mint)
	}
	to, err := t.GetAccount(dest)
	if err != nil {
		return err
	}
	if to.Mint != mint {
		return ErrMintMismatch
	}
	if to.State == Frozen {
		return ErrAccountFrozen
	}
	if m.Supply+amount < m.Supply || to.Amount+amount < to.Amount {
		return ErrOverflow
	}
	m.Supply += amount
	to.Amount += amount
	if err := t.state.EncodeData(mint, m); err != nil {
		return err
	}
	logger.Trace("mint", "mint", mint, "to", dest, "amount", amount)
	return t.state.EncodeData(dest, to)
}

// SetMintAuthority replaces the mint authority. current must be the present
// authority. A nil next fixes the supply.
func (t *Token) SetMintAuthority(mint, current core.Address, next *core.Address) error {
	m, err := t.GetMint(mint)
	if err != nil {
		return err
	}
	if m.MintAuthority == nil {
		return ErrFixedSupply
	}
	if *m.MintAuthority != current {
		return errors.WithMessagef(ErrOwnerMismatch, "%v is not the mint authority of %v", current, mint)
	}
	m.MintAuthority = next
	return t.state.EncodeData(mint, m)
}

// CloseAccount removes an empty token account and credits its rent to dest.
func (t *Token) CloseAccount(account, dest, owner core.Address) error {
	a, err := t.GetAccount(account)
	if err != nil {
		return err
	}
	if a.Owner != owner {
		return errors.WithMessagef(ErrOwnerMismatch, "%v is not the owner of %v", owner, account)
	}
	if a.Amount != 0 {
		return ErrNonZeroBalance
	}
	return t.state.CloseAccount(account, dest)
}
