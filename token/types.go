// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"github.com/vechain/nftstaking/core"
)

// Record sizes used for rent.
const (
	MintSize    = 82
	AccountSize = 165
)

var (
	// ProgramID owns every mint and token account.
	ProgramID = core.Address(core.Blake2b([]byte("token-program")))
	// AssociatedProgramID namespaces associated token account derivation.
	AssociatedProgramID = core.Address(core.Blake2b([]byte("associated-token-program")))
)

// AccountState is the lifecycle state of a token account.
type AccountState uint8

const (
	Uninitialized AccountState = iota
	Initialized
	Frozen
)

func (s AccountState) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Frozen:
		return "frozen"
	default:
		return "uninitialized"
	}
}

// Mint describes a token kind. A collectible is a mint with zero decimals
// and a supply of one.
type Mint struct {
	MintAuthority *core.Address `rlp:"nil"`
	Supply        uint64
	Decimals      uint8
}

// HasAuthority returns whether authority may mint more of this token.
func (m *Mint) HasAuthority(authority core.Address) bool {
	return m.MintAuthority != nil && *m.MintAuthority == authority
}

// Account holds a balance of one mint for an owner.
type Account struct {
	Mint   core.Address
	Owner  core.Address
	Amount uint64
	State  AccountState
}
