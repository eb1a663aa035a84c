// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis builds the initial ledger state.
package genesis

import (
	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/state"
)

// Genesis to build the initial state.
type Genesis struct {
	builder    *Builder
	id         core.Bytes32
	name       string
	launchTime uint64
}

func newGenesis(name string, launchTime uint64, builder *Builder) (*Genesis, error) {
	id, err := builder.ComputeID()
	if err != nil {
		return nil, err
	}
	return &Genesis{builder: builder, id: id, name: name, launchTime: launchTime}, nil
}

// Build applies the genesis to the store behind stater.
func (g *Genesis) Build(stater *state.Stater) (core.Bytes32, error) {
	return g.builder.Build(stater)
}

// ID returns the genesis id.
func (g *Genesis) ID() core.Bytes32 {
	return g.id
}

// Name returns network name.
func (g *Genesis) Name() string {
	return g.name
}

// LaunchTime returns the time the genesis operations executed at.
func (g *Genesis) LaunchTime() uint64 {
	return g.launchTime
}
