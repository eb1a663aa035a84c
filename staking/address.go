// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/derive"
	"github.com/vechain/nftstaking/staking/custody"
	"github.com/vechain/nftstaking/staking/reverts"
)

// ConfigSeed is the fixed seed of the config record.
const ConfigSeed = "nft_staking"

func slotSeed(index uint32) []byte {
	return []byte(strconv.FormatUint(uint64(index), 10))
}

// ConfigAddress returns the config record address.
func ConfigAddress(program core.Address) (core.Address, uint8) {
	return derive.MustFindAddress(program, []byte(ConfigSeed))
}

// CounterAddress returns the slot counter address of owner.
func CounterAddress(program, owner core.Address) (core.Address, uint8) {
	return derive.MustFindAddress(program, owner[:])
}

// SlotAddress returns the address of slot index of owner.
func SlotAddress(program, owner core.Address, index uint32) (core.Address, uint8) {
	return derive.MustFindAddress(program, slotSeed(index), owner[:])
}

// VaultAddress returns the token vault of owner for mint.
func VaultAddress(program, owner, mint core.Address) (core.Address, uint8) {
	return custody.VaultAddress(program, owner, mint)
}

// RewardVaultAddress returns the fungible reward vault.
func RewardVaultAddress(program, rewardMint core.Address) (core.Address, uint8) {
	return custody.RewardVaultAddress(program, rewardMint)
}

func (s *Staking) verify(supplied core.Address, what string, seeds ...[]byte) error {
	if _, err := derive.Verify(s.program, supplied, seeds...); err != nil {
		return errors.WithMessagef(reverts.ErrInvalidDerivedAddress, "%s: %v", what, err)
	}
	return nil
}

func (s *Staking) verifyConfig(addr core.Address) error {
	if addr != s.configAddr {
		return errors.WithMessagef(reverts.ErrInvalidDerivedAddress, "config: expected %v, got %v", s.configAddr, addr)
	}
	return nil
}

func (s *Staking) verifyCounter(addr, owner core.Address) error {
	return s.verify(addr, "counter", owner[:])
}

func (s *Staking) verifySlot(addr, owner core.Address, index uint32) error {
	return s.verify(addr, "slot", slotSeed(index), owner[:])
}
