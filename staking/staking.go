// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking implements the NFT staking program: users lock whitelisted
// collectibles into slots, commit them for a bounded period and claim the
// rewards the admin assigns while they are committed.
package staking

import (
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/log"
	"github.com/vechain/nftstaking/metadata"
	"github.com/vechain/nftstaking/staking/custody"
	"github.com/vechain/nftstaking/staking/reverts"
	"github.com/vechain/nftstaking/staking/slot"
	"github.com/vechain/nftstaking/state"
	"github.com/vechain/nftstaking/xenv"
)

var logger = log.WithContext("pkg", "staking")

func SetLogger(l log.Logger) {
	logger = l
}

// ProgramID is the identity of the staking program. It owns the config,
// counter and slot records and derives every vault address.
var ProgramID = core.Address(core.Blake2b([]byte("nft-staking-program")))

// Staking implements the operations of the staking program against one
// execution environment.
type Staking struct {
	program core.Address
	env     *xenv.Environment
	state   *state.State

	configAddr  core.Address
	configNonce uint8

	slots    *slot.Service
	custody  *custody.Custody
	registry *metadata.Registry
}

// New create a new instance.
func New(program core.Address, env *xenv.Environment) *Staking {
	configAddr, nonce := ConfigAddress(program)
	return &Staking{
		program:     program,
		env:         env,
		state:       env.State(),
		configAddr:  configAddr,
		configNonce: nonce,
		slots:       slot.New(env.State(), program),
		custody:     custody.New(env.State(), program, configAddr),
		registry:    metadata.New(env.State()),
	}
}

// Program returns the program id.
func (s *Staking) Program() core.Address {
	return s.program
}

// atomic runs fn inside a checkpoint and discards its changes on failure.
func (s *Staking) atomic(op string, fn func() error) error {
	checkpoint := s.state.NewCheckpoint()
	if err := fn(); err != nil {
		s.state.RevertTo(checkpoint)
		logger.Debug("operation reverted", "op", op, "tx", s.env.TxID(), "err", err)
		return err
	}
	logger.Trace("operation applied", "op", op, "tx", s.env.TxID())
	return nil
}

func (s *Staking) requireSigner(addr core.Address) error {
	if !s.env.IsSigner(addr) {
		return errors.WithMessagef(reverts.ErrSignatureRequired, "%v", addr)
	}
	return nil
}

// admin loads the config at addr and checks that admin signed and is the
// configured admin.
func (s *Staking) admin(configAddr, admin core.Address) (*Config, error) {
	if err := s.requireSigner(admin); err != nil {
		return nil, err
	}
	cfg, err := s.config(configAddr)
	if err != nil {
		return nil, err
	}
	if cfg.Admin != admin {
		return nil, errors.WithMessagef(reverts.ErrUnauthorized, "%v", admin)
	}
	return cfg, nil
}

// user loads the config at addr for a user operation, checking the owner
// signature and the freeze flag.
func (s *Staking) user(configAddr, owner core.Address) (*Config, error) {
	if err := s.requireSigner(owner); err != nil {
		return nil, err
	}
	cfg, err := s.config(configAddr)
	if err != nil {
		return nil, err
	}
	if cfg.Frozen {
		return nil, reverts.ErrProgramFrozen
	}
	return cfg, nil
}
