// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/cache"
	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/kv"
	"github.com/vechain/nftstaking/stackedmap"
)

var (
	ErrAccountExists        = errors.New("account already in use")
	ErrInsufficientLamports = errors.New("insufficient lamports")
	ErrAccountNotFound      = errors.New("account not found")
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// State manages the accounts of the ledger.
// All writes are journaled and become durable only through Stage/Commit.
type State struct {
	store  kv.Store
	getter kv.Getter
	cache  *cache.LRU[core.Address, *Account]
	sm     *stackedmap.StackedMap[core.Address, *Account]
}

// New create state object.
func New(store kv.Store, accounts *cache.LRU[core.Address, *Account]) *State {
	state := State{
		store:  store,
		getter: accountBucket.NewGetter(store),
		cache:  accounts,
	}
	state.sm = stackedmap.New(func(addr core.Address) (*Account, bool, error) {
		a, err := state.cache.GetOrLoad(addr, func(addr core.Address) (*Account, error) {
			return loadAccount(state.getter, addr)
		})
		if err != nil {
			return nil, false, &Error{err}
		}
		return a, true, nil
	})
	return &state
}

// getAccount gets account by address. the returned account should not be modified.
func (s *State) getAccount(addr core.Address) (*Account, error) {
	v, _, err := s.sm.Get(addr)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// GetAccount returns a copy of the account at addr.
// An empty account is returned if it does not exist.
func (s *State) GetAccount(addr core.Address) (*Account, error) {
	a, err := s.getAccount(addr)
	if err != nil {
		return nil, err
	}
	return a.copy(), nil
}

// SetAccount replaces the account at addr.
func (s *State) SetAccount(addr core.Address, a *Account) {
	s.sm.Put(addr, a.copy())
}

// Exists returns whether an account exists at the given address.
func (s *State) Exists(addr core.Address) (bool, error) {
	a, err := s.getAccount(addr)
	if err != nil {
		return false, err
	}
	return !a.IsEmpty(), nil
}

// Delete removes the account at addr.
func (s *State) Delete(addr core.Address) {
	s.sm.Put(addr, &emptyAccount)
}

// GetLamports returns the lamport balance of addr.
func (s *State) GetLamports(addr core.Address) (uint64, error) {
	a, err := s.getAccount(addr)
	if err != nil {
		return 0, err
	}
	return a.Lamports, nil
}

// AddLamports credits amount to addr.
func (s *State) AddLamports(addr core.Address, amount uint64) error {
	a, err := s.GetAccount(addr)
	if err != nil {
		return err
	}
	if a.Lamports+amount < a.Lamports {
		return errors.New("lamports overflow")
	}
	a.Lamports += amount
	s.SetAccount(addr, a)
	return nil
}

// SubLamports debits amount from addr.
func (s *State) SubLamports(addr core.Address, amount uint64) error {
	a, err := s.GetAccount(addr)
	if err != nil {
		return err
	}
	if a.Lamports < amount {
		return ErrInsufficientLamports
	}
	a.Lamports -= amount
	s.SetAccount(addr, a)
	return nil
}

// CreateAccount allocates a new account at addr owned by owner. The payer
// funds the rent exemption for space bytes of data.
func (s *State) CreateAccount(payer, addr, owner core.Address, space uint64) error {
	exists, err := s.Exists(addr)
	if err != nil {
		return err
	}
	if exists {
		return errors.WithMessagef(ErrAccountExists, "address %v", addr)
	}
	rent := core.RentExemption(space)
	if err := s.SubLamports(payer, rent); err != nil {
		return errors.WithMessagef(err, "payer %v, rent %d", payer, rent)
	}
	s.SetAccount(addr, &Account{Owner: owner, Lamports: rent})
	return nil
}

// CloseAccount removes the account at addr and credits its lamports to dest.
func (s *State) CloseAccount(addr, dest core.Address) error {
	lamports, err := s.GetLamports(addr)
	if err != nil {
		return err
	}
	s.Delete(addr)
	return s.AddLamports(dest, lamports)
}

// EncodeData stores val RLP encoded as the data of the account at addr.
func (s *State) EncodeData(addr core.Address, val any) error {
	data, err := rlp.EncodeToBytes(val)
	if err != nil {
		return &Error{err}
	}
	a, err := s.GetAccount(addr)
	if err != nil {
		return err
	}
	a.Data = data
	s.SetAccount(addr, a)
	return nil
}

// DecodeData decodes the data of the account at addr into val and returns
// the account owner. ErrAccountNotFound is returned when there is no data.
func (s *State) DecodeData(addr core.Address, val any) (core.Address, error) {
	a, err := s.getAccount(addr)
	if err != nil {
		return core.Address{}, err
	}
	if len(a.Data) == 0 {
		return a.Owner, ErrAccountNotFound
	}
	if err := rlp.DecodeBytes(a.Data, val); err != nil {
		return a.Owner, &Error{err}
	}
	return a.Owner, nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	if revision < 0 || revision > s.sm.Depth() {
		panic("invalid revision")
	}
	s.sm.PopTo(revision)
}

// Changes returns the latest value of every touched account.
func (s *State) Changes() map[core.Address]*Account {
	changes := make(map[core.Address]*Account)
	s.sm.Journal(func(addr core.Address, a *Account) bool {
		changes[addr] = a
		return true
	})
	return changes
}
