// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/metadata"
	"github.com/vechain/nftstaking/staking"
	"github.com/vechain/nftstaking/state"
	"github.com/vechain/nftstaking/token"
	"github.com/vechain/nftstaking/xenv"
)

// Account is a lamport allocation.
type Account struct {
	Address  core.Address `yaml:"address"`
	Lamports uint64       `yaml:"lamports"`
}

// Balance is a token allocation held by the associated account of Owner.
type Balance struct {
	Owner  core.Address `yaml:"owner"`
	Amount uint64       `yaml:"amount"`
}

// Mint describes a mint and its initial holders. Payer funds the rent.
type Mint struct {
	Address   core.Address  `yaml:"address"`
	Payer     core.Address  `yaml:"payer"`
	Authority *core.Address `yaml:"authority"`
	Decimals  uint8         `yaml:"decimals"`
	Balances  []Balance     `yaml:"balances"`
}

type Creator struct {
	Address  core.Address `yaml:"address"`
	Share    uint8        `yaml:"share"`
	Verified bool         `yaml:"verified"`
}

// Metadata is a provenance record. The mint must have an authority.
type Metadata struct {
	Mint            core.Address `yaml:"mint"`
	Payer           core.Address `yaml:"payer"`
	UpdateAuthority core.Address `yaml:"updateAuthority"`
	Name            string       `yaml:"name"`
	Symbol          string       `yaml:"symbol"`
	URI             string       `yaml:"uri"`
	Creators        []Creator    `yaml:"creators"`
	IsMutable       bool         `yaml:"isMutable"`
}

// Staking sets the staking program up, run as Admin.
type Staking struct {
	Admin             core.Address   `yaml:"admin"`
	AuthorizedCreator core.Address   `yaml:"authorizedCreator"`
	NamePrefixes      []string       `yaml:"namePrefixes"`
	MinPeriod         uint64         `yaml:"minimumPeriod"`
	MaxPeriod         uint64         `yaml:"maximumPeriod"`
	RewardMint        core.Address   `yaml:"rewardMint"`
	Rewards           []core.Address `yaml:"rewards"`
}

func allocAccounts(st *state.State, accounts []Account) error {
	for _, a := range accounts {
		if err := st.AddLamports(a.Address, a.Lamports); err != nil {
			return errors.WithMessagef(err, "account %v", a.Address)
		}
	}
	return nil
}

func allocMints(st *state.State, mints []Mint) error {
	tk := token.New(st)
	for _, m := range mints {
		if err := tk.InitializeMint(m.Payer, m.Address, m.Authority, m.Decimals); err != nil {
			return errors.WithMessagef(err, "mint %v", m.Address)
		}
		if len(m.Balances) > 0 && m.Authority == nil {
			return errors.Errorf("mint %v: balances need a mint authority", m.Address)
		}
		for _, b := range m.Balances {
			dest, err := tk.CreateAssociatedAccount(m.Payer, b.Owner, m.Address)
			if err != nil {
				return errors.WithMessagef(err, "mint %v owner %v", m.Address, b.Owner)
			}
			if err := tk.MintTo(m.Address, dest, *m.Authority, b.Amount); err != nil {
				return errors.WithMessagef(err, "mint %v owner %v", m.Address, b.Owner)
			}
		}
	}
	return nil
}

func allocMetadata(st *state.State, records []Metadata) error {
	tk := token.New(st)
	registry := metadata.New(st)
	for _, r := range records {
		m, err := tk.GetMint(r.Mint)
		if err != nil {
			return errors.WithMessagef(err, "metadata of %v", r.Mint)
		}
		if m.MintAuthority == nil {
			return errors.Errorf("metadata of %v: mint has no authority", r.Mint)
		}
		data := metadata.Data{Name: r.Name, Symbol: r.Symbol, URI: r.URI}
		for _, c := range r.Creators {
			data.Creators = append(data.Creators, metadata.Creator{Address: c.Address, Share: c.Share})
		}
		if _, err := registry.Create(r.Payer, r.Mint, *m.MintAuthority, r.UpdateAuthority, data, r.IsMutable); err != nil {
			return errors.WithMessagef(err, "metadata of %v", r.Mint)
		}
		for _, c := range r.Creators {
			if c.Verified && c.Address != r.UpdateAuthority {
				if err := registry.SignCreator(r.Mint, c.Address); err != nil {
					return errors.WithMessagef(err, "metadata of %v", r.Mint)
				}
			}
		}
	}
	return nil
}

func allocStaking(st *state.State, launchTime uint64, cfg *Staking) error {
	env := xenv.New(st,
		&xenv.BlockContext{Time: launchTime},
		&xenv.TransactionContext{Signers: []core.Address{cfg.Admin}})
	program := staking.New(staking.ProgramID, env)

	rewardVault, _ := staking.RewardVaultAddress(staking.ProgramID, cfg.RewardMint)
	if err := program.Initialize(&staking.InitializeArgs{
		Admin:             cfg.Admin,
		Config:            program.ConfigAddress(),
		RewardMint:        cfg.RewardMint,
		RewardVault:       rewardVault,
		MetadataProgram:   metadata.ProgramID,
		AuthorizedCreator: cfg.AuthorizedCreator,
		NamePrefixes:      cfg.NamePrefixes,
		MinPeriod:         cfg.MinPeriod,
		MaxPeriod:         cfg.MaxPeriod,
	}); err != nil {
		return errors.WithMessage(err, "initialize staking")
	}
	if len(cfg.Rewards) == 0 {
		return nil
	}
	return errors.WithMessage(program.AddReward(&staking.AddRewardArgs{
		AdminArgs: staking.AdminArgs{Admin: cfg.Admin, Config: program.ConfigAddress()},
		Mints:     cfg.Rewards,
	}), "add rewards")
}
