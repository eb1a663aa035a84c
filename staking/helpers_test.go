// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/lvldb"
	"github.com/vechain/nftstaking/metadata"
	"github.com/vechain/nftstaking/staking/slot"
	"github.com/vechain/nftstaking/state"
	"github.com/vechain/nftstaking/token"
	"github.com/vechain/nftstaking/xenv"
)

var (
	admin    = core.BytesToAddress([]byte("admin"))
	owner    = core.BytesToAddress([]byte("owner"))
	stranger = core.BytesToAddress([]byte("stranger"))
	creator  = core.BytesToAddress([]byte("creator"))

	fungibleMint = core.BytesToAddress([]byte("fungible"))
	reward1      = core.BytesToAddress([]byte("reward-1"))
	reward2      = core.BytesToAddress([]byte("reward-2"))

	nft1        = core.BytesToAddress([]byte("nft-1"))
	nft2        = core.BytesToAddress([]byte("nft-2"))
	nftBadName  = core.BytesToAddress([]byte("nft-bad-name"))
	nftOutsider = core.BytesToAddress([]byte("nft-outsider"))
	nftNoMeta   = core.BytesToAddress([]byte("nft-no-meta"))
)

const (
	startTime = uint64(1_700_000_000)
	lamports  = uint64(1e15)
)

type harness struct {
	t     *testing.T
	state *state.State
	token *token.Token
	now   uint64
}

// newHarness funds the actors, creates the mints and the metadata records
// and gives owner one unit of each collectible.
func newHarness(t *testing.T) *harness {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := state.NewStater(db, 0).NewState()
	h := &harness{t: t, state: st, token: token.New(st), now: startTime}

	for _, a := range []core.Address{admin, owner, stranger, creator} {
		require.NoError(t, st.AddLamports(a, lamports))
	}

	for _, m := range []core.Address{fungibleMint, reward1, reward2} {
		require.NoError(t, h.token.InitializeMint(admin, m, &admin, 0))
		_, err := h.token.CreateAssociatedAccount(owner, owner, m)
		require.NoError(t, err)
	}
	adminFungible, err := h.token.CreateAssociatedAccount(admin, admin, fungibleMint)
	require.NoError(t, err)
	require.NoError(t, h.token.MintTo(fungibleMint, adminFungible, admin, 1000))

	registry := metadata.New(st)
	collectibles := []struct {
		mint    core.Address
		name    string
		creator core.Address
	}{
		{nft1, "Aurory #1", creator},
		{nft2, "Aurory #2", creator},
		{nftBadName, "Other #1", creator},
		{nftOutsider, "Aurory #3", stranger},
		{nftNoMeta, "", core.Address{}},
	}
	for _, c := range collectibles {
		require.NoError(t, h.token.InitializeMint(admin, c.mint, &admin, 0))
		src, err := h.token.CreateAssociatedAccount(owner, owner, c.mint)
		require.NoError(t, err)
		require.NoError(t, h.token.MintTo(c.mint, src, admin, 1))
		if c.name == "" {
			continue
		}
		_, err = registry.Create(admin, c.mint, admin, c.creator, metadata.Data{
			Name:     c.name,
			Symbol:   "AUR",
			Creators: []metadata.Creator{{Address: c.creator, Share: 100}},
		}, true)
		require.NoError(t, err)
	}
	return h
}

// program returns the program bound to the current time, signed by signers.
func (h *harness) program(signers ...core.Address) *Staking {
	env := xenv.New(h.state,
		&xenv.BlockContext{Time: h.now},
		&xenv.TransactionContext{Signers: signers})
	return New(ProgramID, env)
}

func (h *harness) config() core.Address {
	addr, _ := ConfigAddress(ProgramID)
	return addr
}

func (h *harness) initArgs() *InitializeArgs {
	vault, _ := RewardVaultAddress(ProgramID, fungibleMint)
	return &InitializeArgs{
		Admin:             admin,
		Config:            h.config(),
		RewardMint:        fungibleMint,
		RewardVault:       vault,
		MetadataProgram:   metadata.ProgramID,
		AuthorizedCreator: creator,
		NamePrefixes:      []string{"Aurory"},
		MinPeriod:         1,
		MaxPeriod:         20,
	}
}

// initialize sets the program up with reward1 and reward2 active.
func (h *harness) initialize() {
	require.NoError(h.t, h.program(admin).Initialize(h.initArgs()))
	require.NoError(h.t, h.program(admin).AddReward(&AddRewardArgs{
		AdminArgs: h.adminArgs(),
		Mints:     []core.Address{reward1, reward2},
	}))
}

func (h *harness) adminArgs() AdminArgs {
	return AdminArgs{Admin: admin, Config: h.config()}
}

func (h *harness) getConfig() *Config {
	cfg, err := h.program().GetConfig()
	require.NoError(h.t, err)
	return cfg
}

func (h *harness) slotArgs(index uint32) SlotArgs {
	addr, _ := SlotAddress(ProgramID, owner, index)
	return SlotArgs{Owner: owner, Config: h.config(), Slot: addr, Index: index}
}

func (h *harness) stakeArgs(index uint32, mints ...core.Address) *StakeArgs {
	counter, _ := CounterAddress(ProgramID, owner)
	sa := h.slotArgs(index)
	args := &StakeArgs{Owner: owner, Config: h.config(), Counter: counter, Slot: sa.Slot, Index: index}
	for _, m := range mints {
		vault, _ := VaultAddress(ProgramID, owner, m)
		args.Items = append(args.Items, StakeItem{
			Mint:     m,
			Metadata: metadata.Address(m),
			Source:   token.AssociatedAddress(owner, m),
			Vault:    vault,
		})
	}
	return args
}

func (h *harness) unstakeArgs(index uint32, mints ...core.Address) *UnstakeArgs {
	args := &UnstakeArgs{SlotArgs: h.slotArgs(index)}
	for _, m := range mints {
		vault, _ := VaultAddress(ProgramID, owner, m)
		args.Items = append(args.Items, UnstakeItem{
			Mint:        m,
			Vault:       vault,
			Destination: token.AssociatedAddress(owner, m),
		})
	}
	return args
}

func (h *harness) target(index uint32) Target {
	sa := h.slotArgs(index)
	return Target{Owner: owner, Index: index, Slot: sa.Slot}
}

func (h *harness) stakeAndLock(index uint32, period uint64, mints ...core.Address) {
	require.NoError(h.t, h.program(owner).Stake(h.stakeArgs(index, mints...)))
	require.NoError(h.t, h.program(owner).LockStake(&LockStakeArgs{SlotArgs: h.slotArgs(index), Period: period}))
}

func (h *harness) slot(index uint32) *slot.Slot {
	sa := h.slotArgs(index)
	sl, found, err := h.program().slots.GetSlot(sa.Slot)
	require.NoError(h.t, err)
	require.True(h.t, found)
	return sl
}

func (h *harness) balance(holder, mint core.Address) uint64 {
	acc, err := h.token.GetAccount(token.AssociatedAddress(holder, mint))
	require.NoError(h.t, err)
	return acc.Amount
}

func (h *harness) lamports(addr core.Address) uint64 {
	v, err := h.state.GetLamports(addr)
	require.NoError(h.t, err)
	return v
}
