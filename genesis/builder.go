// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/kv"
	"github.com/vechain/nftstaking/lvldb"
	"github.com/vechain/nftstaking/state"
)

const genesisBucket = kv.Bucket("g")

var genesisKey = []byte("id")

// ErrMismatch is returned when a store was set up with another genesis.
var ErrMismatch = errors.New("genesis: mismatch")

// Builder helper to build the genesis state.
type Builder struct {
	stateProcs []func(state *state.State) error
}

// State add a state process
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// ComputeID computes the genesis id by building on an in-memory store.
func (b *Builder) ComputeID() (core.Bytes32, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return core.Bytes32{}, err
	}
	defer db.Close()
	return b.Build(state.NewStater(db, 0))
}

// Build applies the state processes and commits the result. The id is the
// hash of the resulting changes. A store that already holds a genesis is
// left untouched if the ids match.
func (b *Builder) Build(stater *state.Stater) (core.Bytes32, error) {
	getter := genesisBucket.NewGetter(stater.Store())
	stored, err := getter.Get(genesisKey)
	if err == nil {
		id, err := b.ComputeID()
		if err != nil {
			return core.Bytes32{}, err
		}
		if core.BytesToBytes32(stored) != id {
			return core.Bytes32{}, errors.WithMessagef(ErrMismatch, "stored %x, built %v", stored, id)
		}
		return id, nil
	}
	if !getter.IsNotFound(err) {
		return core.Bytes32{}, err
	}

	st := stater.NewState()
	for _, proc := range b.stateProcs {
		if err := proc(st); err != nil {
			return core.Bytes32{}, errors.Wrap(err, "state process")
		}
	}
	stage := st.Stage()
	id, err := stage.Hash()
	if err != nil {
		return core.Bytes32{}, err
	}
	if err := stage.Commit(func(p kv.Putter) error {
		return genesisBucket.NewPutter(p).Put(genesisKey, id[:])
	}); err != nil {
		return core.Bytes32{}, err
	}
	return id, nil
}
