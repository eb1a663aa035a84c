// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/vechain/nftstaking/core"
)

type InitializeArgs struct {
	Admin             core.Address `json:"admin"`
	Config            core.Address `json:"config"`
	RewardMint        core.Address `json:"rewardMint"`
	RewardVault       core.Address `json:"rewardVault"`
	MetadataProgram   core.Address `json:"metadataProgram"`
	AuthorizedCreator core.Address `json:"authorizedCreator"`
	NamePrefixes      []string     `json:"namePrefixes"`
	MinPeriod         uint64       `json:"minimumPeriod"`
	MaxPeriod         uint64       `json:"maximumPeriod"`
}

// AdminArgs names the admin and the config of an admin operation.
type AdminArgs struct {
	Admin  core.Address `json:"admin"`
	Config core.Address `json:"config"`
}

type UpdateAdminArgs struct {
	AdminArgs
	NewAdmin core.Address `json:"newAdmin"`
}

type UpdateAuthorizedCreatorArgs struct {
	AdminArgs
	Creator core.Address `json:"creator"`
}

type UpdatePeriodBoundsArgs struct {
	AdminArgs
	MinPeriod uint64 `json:"minimumPeriod"`
	MaxPeriod uint64 `json:"maximumPeriod"`
}

type NamePrefixesArgs struct {
	AdminArgs
	Prefixes []string `json:"prefixes"`
}

type AddRewardArgs struct {
	AdminArgs
	Mints []core.Address `json:"mints"`
}

type RemoveRewardArgs struct {
	AdminArgs
	Mint         core.Address `json:"mint"`
	NewAuthority core.Address `json:"newAuthority"`
}

type DirectMintArgs struct {
	AdminArgs
	Mint        core.Address `json:"mint"`
	Destination core.Address `json:"destination"`
	Amount      uint64       `json:"amount"`
}

// StakeItem is one token unit to stake.
type StakeItem struct {
	Mint     core.Address `json:"mint"`
	Metadata core.Address `json:"metadata"`
	Source   core.Address `json:"source"`
	Vault    core.Address `json:"vault"`
}

type StakeArgs struct {
	Owner   core.Address `json:"owner"`
	Config  core.Address `json:"config"`
	Counter core.Address `json:"counter"`
	Slot    core.Address `json:"slot"`
	Index   uint32       `json:"index"`
	Items   []StakeItem  `json:"items"`
}

// SlotArgs names a slot of an owner.
type SlotArgs struct {
	Owner  core.Address `json:"owner"`
	Config core.Address `json:"config"`
	Slot   core.Address `json:"slot"`
	Index  uint32       `json:"index"`
}

type LockStakeArgs struct {
	SlotArgs
	Period uint64 `json:"period"`
}

// UnstakeItem returns the units of one mint held by a slot.
type UnstakeItem struct {
	Mint        core.Address `json:"mint"`
	Vault       core.Address `json:"vault"`
	Destination core.Address `json:"destination"`
}

type UnstakeArgs struct {
	SlotArgs
	Items []UnstakeItem `json:"items"`
}

// Target names a slot that receives a reward.
type Target struct {
	Owner core.Address `json:"owner"`
	Index uint32       `json:"index"`
	Slot  core.Address `json:"slot"`
}

type AddWinnerArgs struct {
	AdminArgs
	RewardMint core.Address `json:"rewardMint"`
	Targets    []Target     `json:"targets"`
}

type AddFungibleWinnerArgs struct {
	AdminArgs
	RewardVault core.Address `json:"rewardVault"`
	Source      core.Address `json:"source"`
	Targets     []Target     `json:"targets"`
	Amounts     []uint64     `json:"amounts"`
}

type ClaimArgs struct {
	SlotArgs
	RewardMint  core.Address `json:"rewardMint"`
	Destination core.Address `json:"destination"`
}

type ClaimFungibleArgs struct {
	SlotArgs
	RewardVault core.Address `json:"rewardVault"`
	Destination core.Address `json:"destination"`
}
