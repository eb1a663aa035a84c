// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"crypto/ecdsa"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/lvldb"
	"github.com/vechain/nftstaking/metadata"
	"github.com/vechain/nftstaking/staking"
	"github.com/vechain/nftstaking/staking/reverts"
	"github.com/vechain/nftstaking/state"
	"github.com/vechain/nftstaking/test/datagen"
	"github.com/vechain/nftstaking/token"
	"github.com/vechain/nftstaking/tx"
	"github.com/vechain/nftstaking/xenv"
)

type testChain struct {
	t     *testing.T
	rt    *Runtime
	now   uint64
	nonce uint64
}

func newTestChain(t *testing.T, funded ...core.Address) *testChain {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	stater := state.NewStater(db, 0)
	st := stater.NewState()
	for _, a := range funded {
		require.NoError(t, st.AddLamports(a, 1e15))
	}
	require.NoError(t, st.Stage().Commit())

	c := &testChain{t: t, now: 1000}
	c.rt = New(stater, func() uint64 { return c.now })
	c.rt.RegisterBuiltins()
	c.rt.RegisterStaking(staking.ProgramID)
	return c
}

func (c *testChain) build(op string, args any, keys ...*ecdsa.PrivateKey) *tx.Transaction {
	c.nonce++
	trx := new(tx.Builder).Op(op).Payload(args).Nonce(c.nonce).MustBuild()
	return tx.MustSign(trx, keys...)
}

func (c *testChain) exec(op string, args any, keys ...*ecdsa.PrivateKey) *Receipt {
	r, err := c.rt.Execute(c.build(op, args, keys...))
	require.NoError(c.t, err)
	return r
}

func addrOf(k *ecdsa.PrivateKey) core.Address {
	return core.PubkeyToAddress(k.PublicKey)
}

func TestExecute(t *testing.T) {
	adminKey, _ := crypto.GenerateKey()
	admin := addrOf(adminKey)
	mint := core.BytesToAddress([]byte("mint"))

	c := newTestChain(t, admin)
	var observed []core.Bytes32
	c.rt.OnExecuted(func(r *Receipt) { observed = append(observed, r.TxID) })

	trx := c.build("token.initializeMint", &InitializeMintArgs{Payer: admin, Mint: mint, Authority: &admin}, adminKey)
	r, err := c.rt.Execute(trx)
	require.NoError(t, err)
	assert.False(t, r.Reverted)
	assert.Equal(t, "token.initializeMint", r.Op)
	assert.Equal(t, []core.Address{admin}, r.Signers)
	assert.Equal(t, uint64(1000), r.Time)
	assert.Equal(t, uint64(2), r.Changes, "payer and mint")

	_, err = c.rt.Execute(trx)
	assert.ErrorIs(t, err, ErrKnownTx)
	assert.True(t, IsRejected(err))
	assert.Equal(t, []core.Bytes32{r.TxID}, observed, "rejected txs are not observed")

	stored, err := c.rt.GetReceipt(r.TxID)
	require.NoError(t, err)
	assert.Equal(t, r, stored)

	_, err = c.rt.GetReceipt(datagen.RandBytes32())
	assert.True(t, c.rt.IsNotFound(err))

	m, err := token.New(c.rt.Stater().NewState()).GetMint(mint)
	require.NoError(t, err)
	assert.True(t, m.HasAuthority(admin))
}

func TestExecuteReverted(t *testing.T) {
	adminKey, _ := crypto.GenerateKey()
	strangerKey, _ := crypto.GenerateKey()
	admin := addrOf(adminKey)
	mint := core.BytesToAddress([]byte("mint"))

	c := newTestChain(t, admin)
	c.exec("token.initializeMint", &InitializeMintArgs{Payer: admin, Mint: mint, Authority: &admin}, adminKey)
	c.exec("token.createAccount", &CreateAccountArgs{Payer: admin, Owner: admin, Mint: mint}, adminKey)

	dest := token.AssociatedAddress(admin, mint)
	r := c.exec("token.mintTo", &MintToArgs{Mint: mint, Destination: dest, Authority: admin, Amount: 5}, strangerKey)
	assert.True(t, r.Reverted)
	assert.Equal(t, reverts.ErrSignatureRequired.Code(), r.Code)
	assert.Zero(t, r.Changes)

	stored, err := c.rt.GetReceipt(r.TxID)
	require.NoError(t, err)
	assert.True(t, stored.Reverted)

	r = c.exec("token.mintTo", &MintToArgs{Mint: mint, Destination: dest, Authority: admin, Amount: 5}, adminKey)
	assert.False(t, r.Reverted)

	r = c.exec("token.transfer", &TransferArgs{Source: dest, Destination: dest, Authority: admin, Amount: 6}, adminKey)
	assert.True(t, r.Reverted)
	assert.Zero(t, r.Code, "token errors carry no program code")
	assert.Contains(t, r.Error, "insufficient")

	acc, err := token.New(c.rt.Stater().NewState()).GetAccount(dest)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), acc.Amount)
}

func TestExecuteRejected(t *testing.T) {
	adminKey, _ := crypto.GenerateKey()
	admin := addrOf(adminKey)
	c := newTestChain(t, admin)

	_, err := c.rt.Execute(c.build("token.nothing", struct{}{}, adminKey))
	assert.ErrorIs(t, err, ErrUnknownOp)

	trx := tx.MustSign(new(tx.Builder).Op("token.mintTo").RawPayload([]byte("{")).Nonce(99).MustBuild(), adminKey)
	_, err = c.rt.Execute(trx)
	assert.ErrorIs(t, err, ErrBadPayload)
	id, _ := trx.ID()
	_, err = c.rt.GetReceipt(id)
	assert.True(t, c.rt.IsNotFound(err), "rejected tx leaves no receipt")

	_, err = c.rt.Execute(new(tx.Builder).Op("token.mintTo").Payload(struct{}{}).MustBuild())
	assert.ErrorIs(t, err, ErrBadTx)
	assert.True(t, IsRejected(err))

	assert.Contains(t, c.rt.Ops(), "staking.stake")
	assert.Contains(t, c.rt.Ops(), "metadata.create")
}

func TestExecuteStaking(t *testing.T) {
	adminKey, _ := crypto.GenerateKey()
	strangerKey, _ := crypto.GenerateKey()
	admin, stranger := addrOf(adminKey), addrOf(strangerKey)
	rewardMint := core.BytesToAddress([]byte("reward"))

	c := newTestChain(t, admin, stranger)
	c.exec("token.initializeMint", &InitializeMintArgs{Payer: admin, Mint: rewardMint, Authority: &admin}, adminKey)

	config, _ := staking.ConfigAddress(staking.ProgramID)
	vault, _ := staking.RewardVaultAddress(staking.ProgramID, rewardMint)
	r := c.exec("staking.initialize", &staking.InitializeArgs{
		Admin:             admin,
		Config:            config,
		RewardMint:        rewardMint,
		RewardVault:       vault,
		MetadataProgram:   metadata.ProgramID,
		AuthorizedCreator: admin,
		MinPeriod:         1,
		MaxPeriod:         100,
	}, adminKey)
	require.False(t, r.Reverted, r.Error)

	r = c.exec("staking.toggleFreeze", &staking.AdminArgs{Admin: stranger, Config: config}, strangerKey)
	assert.True(t, r.Reverted)
	assert.Equal(t, reverts.ErrUnauthorized.Code(), r.Code)
	assert.Zero(t, r.Changes)

	r = c.exec("staking.toggleFreeze", &staking.AdminArgs{Admin: admin, Config: config}, adminKey)
	assert.False(t, r.Reverted)

	env := xenv.New(c.rt.Stater().NewState(), &xenv.BlockContext{Time: c.now}, &xenv.TransactionContext{})
	cfg, err := staking.New(staking.ProgramID, env).GetConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Frozen)
	assert.Equal(t, vault, cfg.RewardVault)
}
