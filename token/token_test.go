// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/lvldb"
	"github.com/vechain/nftstaking/state"
)

var (
	payer = core.BytesToAddress([]byte("payer"))
	alice = core.BytesToAddress([]byte("alice"))
	bob   = core.BytesToAddress([]byte("bob"))
	mint  = core.BytesToAddress([]byte("mint"))
)

func newToken(t *testing.T) (*Token, *state.State) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := state.NewStater(db, 0).NewState()
	require.NoError(t, st.AddLamports(payer, 1e12))
	return New(st), st
}

func TestMintAndTransfer(t *testing.T) {
	tk, _ := newToken(t)

	require.NoError(t, tk.InitializeMint(payer, mint, &alice, 0))
	aliceAcc, err := tk.CreateAssociatedAccount(payer, alice, mint)
	require.NoError(t, err)
	bobAcc, err := tk.CreateAssociatedAccount(payer, bob, mint)
	require.NoError(t, err)
	assert.NotEqual(t, aliceAcc, bobAcc)

	// idempotent
	again, err := tk.CreateAssociatedAccount(payer, alice, mint)
	require.NoError(t, err)
	assert.Equal(t, aliceAcc, again)

	assert.True(t, errors.Is(tk.MintTo(mint, aliceAcc, bob, 1), ErrOwnerMismatch))
	require.NoError(t, tk.MintTo(mint, aliceAcc, alice, 5))

	m, err := tk.GetMint(mint)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), m.Supply)

	assert.True(t, errors.Is(tk.Transfer(aliceAcc, bobAcc, bob, 1), ErrOwnerMismatch))
	assert.Equal(t, ErrInsufficientFunds, tk.Transfer(aliceAcc, bobAcc, alice, 6))
	require.NoError(t, tk.Transfer(aliceAcc, bobAcc, alice, 2))

	a, err := tk.GetAccount(aliceAcc)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), a.Amount)
	b, err := tk.GetAccount(bobAcc)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), b.Amount)
	assert.Equal(t, bob, b.Owner)
}

func TestMintMismatch(t *testing.T) {
	tk, _ := newToken(t)
	other := core.BytesToAddress([]byte("other-mint"))

	require.NoError(t, tk.InitializeMint(payer, mint, &alice, 0))
	require.NoError(t, tk.InitializeMint(payer, other, &alice, 0))
	src, _ := tk.CreateAssociatedAccount(payer, alice, mint)
	dst, _ := tk.CreateAssociatedAccount(payer, bob, other)

	require.NoError(t, tk.MintTo(mint, src, alice, 1))
	assert.Equal(t, ErrMintMismatch, tk.Transfer(src, dst, alice, 1))
	assert.Equal(t, ErrMintMismatch, tk.MintTo(mint, dst, alice, 1))
}

func TestSetMintAuthority(t *testing.T) {
	tk, _ := newToken(t)
	require.NoError(t, tk.InitializeMint(payer, mint, &alice, 0))
	acc, _ := tk.CreateAssociatedAccount(payer, bob, mint)

	assert.True(t, errors.Is(tk.SetMintAuthority(mint, bob, &bob), ErrOwnerMismatch))
	require.NoError(t, tk.SetMintAuthority(mint, alice, &bob))

	m, err := tk.GetMint(mint)
	require.NoError(t, err)
	assert.True(t, m.HasAuthority(bob))
	assert.False(t, m.HasAuthority(alice))

	require.NoError(t, tk.MintTo(mint, acc, bob, 1))

	require.NoError(t, tk.SetMintAuthority(mint, bob, nil))
	assert.Equal(t, ErrFixedSupply, tk.MintTo(mint, acc, bob, 1))
	assert.Equal(t, ErrFixedSupply, tk.SetMintAuthority(mint, bob, &alice))
}

func TestCloseAccount(t *testing.T) {
	tk, st := newToken(t)
	require.NoError(t, tk.InitializeMint(payer, mint, &alice, 0))
	acc, _ := tk.CreateAssociatedAccount(payer, alice, mint)
	require.NoError(t, tk.MintTo(mint, acc, alice, 1))

	assert.Equal(t, ErrNonZeroBalance, tk.CloseAccount(acc, alice, alice))

	sink, _ := tk.CreateAssociatedAccount(payer, bob, mint)
	require.NoError(t, tk.Transfer(acc, sink, alice, 1))
	assert.True(t, errors.Is(tk.CloseAccount(acc, alice, bob), ErrOwnerMismatch))
	require.NoError(t, tk.CloseAccount(acc, alice, alice))

	exists, err := tk.IsAccount(acc)
	require.NoError(t, err)
	assert.False(t, exists)

	lamports, err := st.GetLamports(alice)
	require.NoError(t, err)
	assert.Equal(t, core.RentExemption(AccountSize), lamports)
}

func TestGetInvalid(t *testing.T) {
	tk, st := newToken(t)

	_, err := tk.GetMint(mint)
	assert.True(t, errors.Is(err, ErrInvalidMint))
	_, err = tk.GetAccount(alice)
	assert.True(t, errors.Is(err, ErrInvalidAccount))

	// data owned by another program is not a mint
	require.NoError(t, st.CreateAccount(payer, mint, alice, MintSize))
	require.NoError(t, st.EncodeData(mint, &Mint{Decimals: 0}))
	_, err = tk.GetMint(mint)
	assert.True(t, errors.Is(err, ErrInvalidMint))
}
