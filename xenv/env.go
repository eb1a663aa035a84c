// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"slices"

	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/state"
)

// BlockContext is the clock an operation executes under.
type BlockContext struct {
	Time uint64
}

// TransactionContext transaction context.
type TransactionContext struct {
	ID      core.Bytes32
	Signers []core.Address
}

// Environment an env to execute program operations.
type Environment struct {
	state    *state.State
	blockCtx *BlockContext
	txCtx    *TransactionContext
}

// New create a new env.
func New(state *state.State, blockCtx *BlockContext, txCtx *TransactionContext) *Environment {
	return &Environment{
		state:    state,
		blockCtx: blockCtx,
		txCtx:    txCtx,
	}
}

func (env *Environment) State() *state.State { return env.state }
func (env *Environment) Time() uint64 { return env.blockCtx.Time }
func (env *Environment) TxID() core.Bytes32 { return env.txCtx.ID }
func (env *Environment) Signers() []core.Address { return env.txCtx.Signers }

// IsSigner returns whether addr signed the executing transaction.
func (env *Environment) IsSigner(addr core.Address) bool {
	return slices.Contains(env.txCtx.Signers, addr)
}
