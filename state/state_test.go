// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/lvldb"
)

func newStater(t *testing.T) *Stater {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStater(db, 16)
}

type record struct {
	Name  string
	Count uint64
}

func TestStateAccounts(t *testing.T) {
	st := newStater(t).NewState()
	addr := core.BytesToAddress([]byte("acc"))

	exists, err := st.Exists(addr)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, st.AddLamports(addr, 100))
	exists, err = st.Exists(addr)
	require.NoError(t, err)
	assert.True(t, exists)

	assert.Equal(t, ErrInsufficientLamports, st.SubLamports(addr, 101))
	require.NoError(t, st.SubLamports(addr, 40))

	lamports, err := st.GetLamports(addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(60), lamports)

	// returned accounts are copies
	a, err := st.GetAccount(addr)
	require.NoError(t, err)
	a.Lamports = 1
	lamports, _ = st.GetLamports(addr)
	assert.Equal(t, uint64(60), lamports)
}

func TestCreateAndCloseAccount(t *testing.T) {
	st := newStater(t).NewState()
	payer := core.BytesToAddress([]byte("payer"))
	program := core.BytesToAddress([]byte("program"))
	addr := core.BytesToAddress([]byte("record"))

	rent := core.RentExemption(64)
	err := st.CreateAccount(payer, addr, program, 64)
	assert.True(t, errors.Is(err, ErrInsufficientLamports))

	require.NoError(t, st.AddLamports(payer, rent*2))
	require.NoError(t, st.CreateAccount(payer, addr, program, 64))

	err = st.CreateAccount(payer, addr, program, 64)
	assert.True(t, errors.Is(err, ErrAccountExists))

	_, err = st.DecodeData(addr, &record{})
	assert.Equal(t, ErrAccountNotFound, err)

	require.NoError(t, st.EncodeData(addr, &record{"slot", 3}))
	var rec record
	owner, err := st.DecodeData(addr, &rec)
	require.NoError(t, err)
	assert.Equal(t, program, owner)
	assert.Equal(t, record{"slot", 3}, rec)

	require.NoError(t, st.CloseAccount(addr, payer))
	exists, err := st.Exists(addr)
	require.NoError(t, err)
	assert.False(t, exists)

	lamports, _ := st.GetLamports(payer)
	assert.Equal(t, rent*2, lamports)
}

func TestCheckpointRevert(t *testing.T) {
	st := newStater(t).NewState()
	addr := core.BytesToAddress([]byte("acc"))

	require.NoError(t, st.AddLamports(addr, 10))
	cp := st.NewCheckpoint()
	require.NoError(t, st.AddLamports(addr, 5))
	require.NoError(t, st.EncodeData(addr, &record{"x", 1}))

	lamports, _ := st.GetLamports(addr)
	assert.Equal(t, uint64(15), lamports)

	st.RevertTo(cp)
	lamports, _ = st.GetLamports(addr)
	assert.Equal(t, uint64(10), lamports)
	_, err := st.DecodeData(addr, &record{})
	assert.Equal(t, ErrAccountNotFound, err)

	assert.Panics(t, func() { st.RevertTo(100) })
}

func TestStageCommit(t *testing.T) {
	stater := newStater(t)
	a1 := core.BytesToAddress([]byte("a1"))
	a2 := core.BytesToAddress([]byte("a2"))

	st := stater.NewState()
	require.NoError(t, st.AddLamports(a1, 1))
	require.NoError(t, st.AddLamports(a2, 2))

	stage := st.Stage()
	assert.Equal(t, 2, stage.Len())
	h1, err := stage.Hash()
	require.NoError(t, err)

	// same changes give the same digest
	other := stater.NewState()
	require.NoError(t, other.AddLamports(a2, 2))
	require.NoError(t, other.AddLamports(a1, 1))
	h2, err := other.Stage().Hash()
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	// uncommitted changes are invisible to new states
	lamports, err := stater.NewState().GetLamports(a1)
	require.NoError(t, err)
	assert.Zero(t, lamports)

	require.NoError(t, stage.Commit())

	fresh := stater.NewState()
	lamports, _ = fresh.GetLamports(a1)
	assert.Equal(t, uint64(1), lamports)

	// deleting an account removes it from the store
	fresh.Delete(a2)
	require.NoError(t, fresh.Stage().Commit())

	has, err := stater.Store().Has(append([]byte("a"), a2[:]...))
	require.NoError(t, err)
	assert.False(t, has)

	// a fresh stater over the same store reads committed data
	reopened := NewStater(stater.Store(), 4).NewState()
	lamports, _ = reopened.GetLamports(a1)
	assert.Equal(t, uint64(1), lamports)
}
