// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/kv"
)

// Account is the ledger entry stored at an address.
// Owner is the program allowed to mutate Data.
type Account struct {
	Owner    core.Address
	Lamports uint64
	Data     []byte
}

// IsEmpty returns if an account is empty.
// An empty account is removed from the store on commit.
func (a *Account) IsEmpty() bool {
	return a.Lamports == 0 && len(a.Data) == 0 && a.Owner.IsZero()
}

func (a *Account) copy() *Account {
	cpy := *a
	cpy.Data = bytes.Clone(a.Data)
	return &cpy
}

var emptyAccount = Account{}

// loadAccount load an account object by address from the store.
// An empty account is returned if not found.
func loadAccount(getter kv.Getter, addr core.Address) (*Account, error) {
	data, err := getter.Get(addr[:])
	if err != nil {
		if getter.IsNotFound(err) {
			return &emptyAccount, nil
		}
		return nil, err
	}
	var a Account
	if err := rlp.DecodeBytes(data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// saveAccount save account into the store.
// If the given account is empty, the value for given address is deleted.
func saveAccount(putter kv.Putter, addr core.Address, a *Account) error {
	if a.IsEmpty() {
		return putter.Delete(addr[:])
	}
	data, err := rlp.EncodeToBytes(a)
	if err != nil {
		return err
	}
	return putter.Put(addr[:], data)
}
