// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/staking/orderedset"
	"github.com/vechain/nftstaking/staking/reverts"
	"github.com/vechain/nftstaking/state"
)

// Capacities of the config sets.
const (
	MaxNamePrefixes     = 150
	MaxNamePrefixLength = 32
	MaxActiveRewards    = 150
)

// ConfigSpace is the rent sized length of the config record.
const ConfigSpace = 8 + // discriminator
	3*32 + // admin, metadata program, authorized creator
	4 + MaxNamePrefixes*(4+MaxNamePrefixLength) +
	4 + MaxActiveRewards*32 +
	8 + 8 + // period bounds
	32 + 32 + 1 + // reward mint, reward vault, vault nonce
	1 + 1 // nonce, frozen

// Config is the singleton settings record of the program.
type Config struct {
	Admin             core.Address                 `json:"admin"`
	MetadataProgram   core.Address                 `json:"metadataProgram"`
	AuthorizedCreator core.Address                 `json:"authorizedCreator"`
	NameStarts        orderedset.Set[string]       `json:"authorizedNameStarts"`
	ActiveRewards     orderedset.Set[core.Address] `json:"activeRewards"`
	MinPeriod         uint64                       `json:"minimumPeriod"`
	MaxPeriod         uint64                       `json:"maximumPeriod"`
	RewardMint        core.Address                 `json:"rewardMint"`
	RewardVault       core.Address                 `json:"rewardVault"`
	RewardVaultNonce  uint8                        `json:"rewardVaultNonce"`
	Nonce             uint8                        `json:"nonce"`
	Frozen            bool                         `json:"frozen"`
}

// ValidPeriod reports whether period is within the configured bounds.
func (c *Config) ValidPeriod(period uint64) bool {
	return period >= c.MinPeriod && period <= c.MaxPeriod
}

func checkPeriodBounds(min, max uint64) error {
	if min == 0 || min > max {
		return errors.WithMessagef(reverts.ErrInvalidPeriodBounds, "min %d, max %d", min, max)
	}
	return nil
}

func checkNamePrefix(prefix string) error {
	if prefix == "" || len(prefix) > MaxNamePrefixLength {
		return errors.WithMessagef(reverts.ErrInvalidNamePrefix, "%q", prefix)
	}
	return nil
}

// GetConfig returns the config, or ErrNotInitialized.
func (s *Staking) GetConfig() (*Config, error) {
	return s.config(s.configAddr)
}

// ConfigAddress returns the config address of this program.
func (s *Staking) ConfigAddress() core.Address {
	return s.configAddr
}

func (s *Staking) config(addr core.Address) (*Config, error) {
	if err := s.verifyConfig(addr); err != nil {
		return nil, err
	}
	var cfg Config
	owner, err := s.state.DecodeData(addr, &cfg)
	if err != nil {
		if errors.Is(err, state.ErrAccountNotFound) {
			return nil, reverts.ErrNotInitialized
		}
		return nil, err
	}
	if owner != s.program {
		return nil, errors.WithMessagef(reverts.ErrInvalidAccounts, "config %v not owned by staking program", addr)
	}
	return &cfg, nil
}

func (s *Staking) saveConfig(cfg *Config) error {
	return s.state.EncodeData(s.configAddr, cfg)
}
