// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"bytes"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/nftstaking/state"
)

// CustomGenesis is user customized genesis
type CustomGenesis struct {
	Name       string     `yaml:"name"`
	LaunchTime uint64     `yaml:"launchTime"`
	Accounts   []Account  `yaml:"accounts"`
	Mints      []Mint     `yaml:"mints"`
	Metadata   []Metadata `yaml:"metadata"`
	Staking    *Staking   `yaml:"staking"`
}

// ParseCustomGenesis decodes a yaml genesis file. Unknown fields are rejected.
func ParseCustomGenesis(data []byte) (*CustomGenesis, error) {
	var gen CustomGenesis
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	return &gen, nil
}

// NewCustomNet create custom network genesis.
func NewCustomNet(gen *CustomGenesis) (*Genesis, error) {
	if gen.LaunchTime == 0 {
		return nil, errors.New("launchTime must not be 0")
	}
	name := gen.Name
	if name == "" {
		name = "customnet"
	}

	builder := new(Builder).
		State(func(st *state.State) error {
			if err := allocAccounts(st, gen.Accounts); err != nil {
				return err
			}
			if err := allocMints(st, gen.Mints); err != nil {
				return err
			}
			return allocMetadata(st, gen.Metadata)
		})
	if gen.Staking != nil {
		builder.State(func(st *state.State) error {
			return allocStaking(st, gen.LaunchTime, gen.Staking)
		})
	}
	return newGenesis(name, gen.LaunchTime, builder)
}
