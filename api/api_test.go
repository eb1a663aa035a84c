// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstaking/api"
	"github.com/vechain/nftstaking/api/accounts"
	"github.com/vechain/nftstaking/api/provenance"
	apistaking "github.com/vechain/nftstaking/api/staking"
	"github.com/vechain/nftstaking/api/tokens"
	"github.com/vechain/nftstaking/api/transactions"
	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/genesis"
	"github.com/vechain/nftstaking/lvldb"
	"github.com/vechain/nftstaking/metadata"
	"github.com/vechain/nftstaking/runtime"
	"github.com/vechain/nftstaking/staking"
	"github.com/vechain/nftstaking/state"
	"github.com/vechain/nftstaking/test/datagen"
	"github.com/vechain/nftstaking/token"
	"github.com/vechain/nftstaking/tx"
)

type testServer struct {
	t     *testing.T
	ts    *httptest.Server
	now   uint64
	nonce uint64
}

func newTestServer(t *testing.T) *testServer {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gen := genesis.NewDevnet()
	stater := state.NewStater(db, 0)
	_, err = gen.Build(stater)
	require.NoError(t, err)

	s := &testServer{t: t, now: gen.LaunchTime() + 100}
	clock := func() uint64 { return s.now }
	rt := runtime.New(stater, clock)
	rt.RegisterBuiltins()
	rt.RegisterStaking(staking.ProgramID)

	var reqLogs atomic.Bool
	reqLogs.Store(true)
	s.ts = httptest.NewServer(api.New(rt, staking.ProgramID, api.Options{
		AllowedOrigins:  "*",
		EnableMetrics:   true,
		EnableReqLogger: &reqLogs,
		Clock:           clock,
	}))
	t.Cleanup(s.ts.Close)
	return s
}

func (s *testServer) get(path string, out any) int {
	res, err := http.Get(s.ts.URL + path)
	require.NoError(s.t, err)
	defer res.Body.Close()
	if res.StatusCode == http.StatusOK && out != nil {
		require.NoError(s.t, json.NewDecoder(res.Body).Decode(out))
	}
	return res.StatusCode
}

func (s *testServer) post(path string, body any, out any) (int, string) {
	data, err := json.Marshal(body)
	require.NoError(s.t, err)
	res, err := http.Post(s.ts.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(s.t, err)
	defer res.Body.Close()
	raw, err := io.ReadAll(res.Body)
	require.NoError(s.t, err)
	if res.StatusCode == http.StatusOK && out != nil {
		require.NoError(s.t, json.Unmarshal(raw, out))
	}
	return res.StatusCode, string(raw)
}

func (s *testServer) rawTx(op string, args any, acc genesis.DevAccount) *transactions.RawTx {
	s.nonce++
	trx := tx.MustSign(new(tx.Builder).Op(op).Payload(args).Nonce(s.nonce).MustBuild(), acc.PrivateKey)
	data, err := rlp.EncodeToBytes(trx)
	require.NoError(s.t, err)
	return &transactions.RawTx{Raw: hexutil.Encode(data)}
}

func TestQueries(t *testing.T) {
	s := newTestServer(t)
	accs := genesis.DevAccounts()
	nft := genesis.DevCollectibles[0]

	var acc accounts.Account
	assert.Equal(t, http.StatusOK, s.get("/accounts/"+accs[0].Address.String(), &acc))
	assert.NotZero(t, acc.Lamports)
	assert.True(t, acc.Owner.IsZero())

	var mint tokens.Mint
	assert.Equal(t, http.StatusOK, s.get("/tokens/mints/"+nft.String(), &mint))
	assert.Equal(t, uint64(1), mint.Supply)
	assert.Equal(t, uint8(0), mint.Decimals)

	var ta tokens.Account
	holder := token.AssociatedAddress(accs[1].Address, nft)
	assert.Equal(t, http.StatusOK, s.get("/tokens/accounts/"+holder.String(), &ta))
	assert.Equal(t, accs[1].Address, ta.Owner)
	assert.Equal(t, uint64(1), ta.Amount)
	assert.Equal(t, "initialized", ta.State)

	var md provenance.Record
	assert.Equal(t, http.StatusOK, s.get("/metadata/"+nft.String(), &md))
	assert.Equal(t, metadata.Address(nft), md.Address)
	assert.Equal(t, "Aurory #1", md.Data.Name)

	var cfg apistaking.Config
	assert.Equal(t, http.StatusOK, s.get("/staking/config", &cfg))
	assert.Equal(t, accs[0].Address, cfg.Admin)
	assert.Equal(t, genesis.DevRewardMint, cfg.RewardMint)
	assert.True(t, cfg.ActiveRewards.Contains(genesis.DevItemMints[0]))
	assert.False(t, cfg.ActiveRewards.Contains(genesis.DevRewardMint))

	var ops []string
	assert.Equal(t, http.StatusOK, s.get("/transactions/ops", &ops))
	assert.Contains(t, ops, "staking.lockStake")
	assert.Contains(t, ops, "token.transfer")

	unknown := datagen.RandAddress()
	assert.Equal(t, http.StatusNotFound, s.get("/tokens/mints/"+unknown.String(), nil))
	assert.Equal(t, http.StatusNotFound, s.get("/tokens/accounts/"+unknown.String(), nil))
	assert.Equal(t, http.StatusNotFound, s.get("/metadata/"+unknown.String(), nil))
	assert.Equal(t, http.StatusBadRequest, s.get("/accounts/0x1234", nil))
	assert.Equal(t, http.StatusBadRequest, s.get("/staking/users/"+unknown.String()+"/slots/x", nil))
	assert.Equal(t, http.StatusNotFound, s.get("/staking/users/"+unknown.String()+"/slots/0", nil))
}

func TestStakeThroughAPI(t *testing.T) {
	s := newTestServer(t)
	accs := genesis.DevAccounts()
	owner := accs[1]
	nft := genesis.DevCollectibles[0]

	configAddr, _ := staking.ConfigAddress(staking.ProgramID)
	counter, _ := staking.CounterAddress(staking.ProgramID, owner.Address)
	slotAddr, _ := staking.SlotAddress(staking.ProgramID, owner.Address, 0)
	vault, _ := staking.VaultAddress(staking.ProgramID, owner.Address, nft)
	args := &staking.StakeArgs{
		Owner:   owner.Address,
		Config:  configAddr,
		Counter: counter,
		Slot:    slotAddr,
		Items: []staking.StakeItem{{
			Mint:     nft,
			Metadata: metadata.Address(nft),
			Source:   token.AssociatedAddress(owner.Address, nft),
			Vault:    vault,
		}},
	}
	raw := s.rawTx("staking.stake", args, owner)

	var receipt runtime.Receipt
	code, body := s.post("/transactions", raw, &receipt)
	require.Equal(t, http.StatusOK, code, body)
	assert.False(t, receipt.Reverted, receipt.Error)
	assert.Equal(t, "staking.stake", receipt.Op)

	code, _ = s.post("/transactions", raw, nil)
	assert.Equal(t, http.StatusBadRequest, code, "replay")

	var stored runtime.Receipt
	assert.Equal(t, http.StatusOK, s.get("/transactions/"+receipt.TxID.String()+"/receipt", &stored))
	assert.Equal(t, receipt.TxID, stored.TxID)
	assert.Equal(t, http.StatusNotFound, s.get("/transactions/"+datagen.RandBytes32().String()+"/receipt", nil))

	var user apistaking.User
	assert.Equal(t, http.StatusOK, s.get("/staking/users/"+owner.Address.String(), &user))
	assert.Equal(t, counter, user.Counter)
	assert.Equal(t, uint32(1), user.Next)
	require.Len(t, user.Slots, 1)
	assert.Equal(t, slotAddr, user.Slots[0].Address)

	lock := &staking.LockStakeArgs{
		SlotArgs: staking.SlotArgs{Owner: owner.Address, Config: configAddr, Slot: slotAddr},
		Period:   3600,
	}
	code, body = s.post("/transactions", s.rawTx("staking.lockStake", lock, owner), &receipt)
	require.Equal(t, http.StatusOK, code, body)
	assert.False(t, receipt.Reverted, receipt.Error)

	var sl apistaking.Slot
	assert.Equal(t, http.StatusOK, s.get("/staking/users/"+owner.Address.String()+"/slots/0", &sl))
	assert.Equal(t, []core.Address{nft}, sl.Tokens)
	assert.True(t, sl.Locked)
	assert.Equal(t, s.now+3600, sl.UnlocksAt)

	s.now += 3600
	assert.Equal(t, http.StatusOK, s.get("/staking/users/"+owner.Address.String()+"/slots/0", &sl))
	assert.False(t, sl.Locked)

	// unstake by a stranger reverts with the program code
	unstake := &staking.UnstakeArgs{SlotArgs: lock.SlotArgs}
	code, body = s.post("/transactions", s.rawTx("staking.unstake", unstake, accs[2]), &receipt)
	require.Equal(t, http.StatusOK, code, body)
	assert.True(t, receipt.Reverted)
	assert.NotZero(t, receipt.Code)
}

func TestSendRejected(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.post("/transactions", &transactions.RawTx{Raw: "0xzz"}, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.post("/transactions", map[string]string{"unknown": "field"}, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body := s.post("/transactions", s.rawTx("staking.nothing", struct{}{}, genesis.DevAccounts()[0]), nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.True(t, strings.Contains(body, "unknown operation"))

	code, _ = s.post("/transactions", s.rawTx("staking.stake", "not an object", genesis.DevAccounts()[0]), nil)
	assert.Equal(t, http.StatusBadRequest, code)
}
