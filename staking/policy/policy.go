// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package policy decides whether a token may be staked, from its provenance record.
package policy

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/metadata"
	"github.com/vechain/nftstaking/staking/reverts"
)

// Authorize accepts md when one of its verified creators is the authorized
// creator and, if prefixes is non-empty, its name starts with one of them.
// Prefix matching is case-sensitive.
func Authorize(md *metadata.Metadata, authorizedCreator core.Address, prefixes []string) error {
	if !HasVerifiedCreator(md, authorizedCreator) {
		return errors.WithMessagef(reverts.ErrUnauthorizedCreator, "mint %v", md.Mint)
	}
	if !HasNamePrefix(md.Data.Name, prefixes) {
		return errors.WithMessagef(reverts.ErrNoAuthorizedNamePrefix, "mint %v name %q", md.Mint, md.Data.Name)
	}
	return nil
}

// HasVerifiedCreator reports whether creator is listed and verified.
func HasVerifiedCreator(md *metadata.Metadata, creator core.Address) bool {
	for _, c := range md.Data.Creators {
		if c.Verified && c.Address == creator {
			return true
		}
	}
	return false
}

// HasNamePrefix reports whether name starts with one of prefixes. An empty
// prefix list places no restriction.
func HasNamePrefix(name string, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
