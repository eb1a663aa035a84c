// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/staking/reverts"
	"github.com/vechain/nftstaking/state"
)

// Service loads and stores counters and slots. Addresses passed in must
// already be verified against their derivation.
type Service struct {
	state   *state.State
	program core.Address
}

func New(st *state.State, program core.Address) *Service {
	return &Service{state: st, program: program}
}

func (s *Service) load(addr core.Address, val any) (bool, error) {
	owner, err := s.state.DecodeData(addr, val)
	if err != nil {
		if errors.Is(err, state.ErrAccountNotFound) {
			return false, nil
		}
		return false, err
	}
	if owner != s.program {
		return false, errors.WithMessagef(reverts.ErrInvalidAccounts, "%v not owned by staking program", addr)
	}
	return true, nil
}

func (s *Service) save(payer, addr core.Address, space uint64, val any) error {
	exists, err := s.state.Exists(addr)
	if err != nil {
		return err
	}
	if !exists {
		if err := s.state.CreateAccount(payer, addr, s.program, space); err != nil {
			return err
		}
	}
	return s.state.EncodeData(addr, val)
}

// GetCounter returns the counter at addr, or a zero counter for owner if
// none was created yet.
func (s *Service) GetCounter(addr, owner core.Address) (*Counter, error) {
	c := Counter{Owner: owner}
	if _, err := s.load(addr, &c); err != nil {
		return nil, err
	}
	if c.Owner != owner {
		return nil, errors.WithMessagef(reverts.ErrInvalidAccounts, "counter %v belongs to %v", addr, c.Owner)
	}
	return &c, nil
}

// SetCounter stores c at addr, creating the account paid by payer.
func (s *Service) SetCounter(payer, addr core.Address, c *Counter) error {
	return s.save(payer, addr, CounterSpace, c)
}

// GetSlot returns the slot at addr and whether it exists.
func (s *Service) GetSlot(addr core.Address) (*Slot, bool, error) {
	var sl Slot
	found, err := s.load(addr, &sl)
	if err != nil || !found {
		return nil, false, err
	}
	return &sl, true, nil
}

// SetSlot stores sl at addr, creating the account paid by payer.
func (s *Service) SetSlot(payer, addr core.Address, sl *Slot) error {
	return s.save(payer, addr, SlotSpace, sl)
}
