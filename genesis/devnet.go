// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"fmt"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/state"
)

// DevAccount account for development.
type DevAccount struct {
	Address    core.Address
	PrivateKey *ecdsa.PrivateKey
}

var devAccounts atomic.Pointer[[]DevAccount]

// DevAccounts returns pre-alloced accounts for solo mode.
func DevAccounts() []DevAccount {
	if accs := devAccounts.Load(); accs != nil {
		return *accs
	}

	var accs []DevAccount
	privKeys := []string{
		"dce1443bd2ef0c2631adc1c67e5c93f13dc23a41c18b536effbbdcbcdb96fb65",
		"321d6443bc6177273b5abf54210fe806d451d6b7973bccc2384ef78bbcd0bf51",
		"2d7c882bad2a01105e36dda3646693bc1aaaa45b0ed63fb0ce23c060294f3af2",
		"593537225b037191d322c3b1df585fb1e5100811b71a6f7fc7e29cca1333483e",
		"ca7b25fc980c759df5f3ce17a3d881d6e19a38e651fc4315fc08917edab41058",
		"88d2d80b12b92feaa0da6d62309463d20408157723f2d7e799b6a74ead9a673b",
		"fbb9e7ba5fe9969a71c6599052237b91adeb1e5fc0c96727b66e56ff5d02f9d0",
		"547fb081e73dc2e22b4aae5c60e2970b008ac4fc3073aebc27d41ace9c4f53e9",
		"c8c53657e41a8d669349fc287f57457bd746cb1fcfc38cf94d235deb2cfca81b",
		"87e0eba9c86c494d98353800571089f316740b0cb84c9a7cdf2fe5c9997c7966",
	}
	for _, str := range privKeys {
		pk, err := crypto.HexToECDSA(str)
		if err != nil {
			panic(err)
		}
		accs = append(accs, DevAccount{core.PubkeyToAddress(pk.PublicKey), pk})
	}
	devAccounts.Store(&accs)
	return accs
}

const (
	devLaunchTime = uint64(1526400000)
	devLamports   = uint64(1_000_000_000_000_000)
	devCollection = "Aurory"
	devMinPeriod  = uint64(60)
	devMaxPeriod  = uint64(30 * 24 * 3600)
)

func devMint(name string) core.Address {
	return core.Address(core.Blake2b([]byte("devnet/mint/" + name)))
}

// Mints created by the devnet genesis.
var (
	DevRewardMint   = devMint("reward")
	DevItemMints    = []core.Address{devMint("egg"), devMint("potion")}
	DevCollectibles = func() []core.Address {
		var mints []core.Address
		for i := 1; i <= 6; i++ {
			mints = append(mints, devMint(fmt.Sprintf("%s #%d", devCollection, i)))
		}
		return mints
	}()
)

// NewDevnet create genesis for solo mode. The first dev account is the
// staking admin and the creator of the collection; the collectibles are
// shared between the second and the third account.
func NewDevnet() *Genesis {
	accs := DevAccounts()
	admin := accs[0].Address

	var accounts []Account
	for _, a := range accs {
		accounts = append(accounts, Account{Address: a.Address, Lamports: devLamports})
	}

	mints := []Mint{{
		Address:   DevRewardMint,
		Payer:     admin,
		Authority: &admin,
		Balances:  []Balance{{Owner: admin, Amount: 1_000_000}},
	}}
	for _, m := range DevItemMints {
		mints = append(mints, Mint{Address: m, Payer: admin, Authority: &admin})
	}
	var records []Metadata
	for i, m := range DevCollectibles {
		holder := accs[1+i%2].Address
		mints = append(mints, Mint{
			Address:   m,
			Payer:     admin,
			Authority: &admin,
			Balances:  []Balance{{Owner: holder, Amount: 1}},
		})
		records = append(records, Metadata{
			Mint:            m,
			Payer:           admin,
			UpdateAuthority: admin,
			Name:            fmt.Sprintf("%s #%d", devCollection, i+1),
			Symbol:          "AUR",
			URI:             fmt.Sprintf("https://example.org/aurory/%d.json", i+1),
			Creators:        []Creator{{Address: admin, Share: 100, Verified: true}},
			IsMutable:       true,
		})
	}

	builder := new(Builder).
		State(func(st *state.State) error {
			if err := allocAccounts(st, accounts); err != nil {
				return err
			}
			if err := allocMints(st, mints); err != nil {
				return err
			}
			if err := allocMetadata(st, records); err != nil {
				return err
			}
			return allocStaking(st, devLaunchTime, &Staking{
				Admin:             admin,
				AuthorizedCreator: admin,
				NamePrefixes:      []string{devCollection},
				MinPeriod:         devMinPeriod,
				MaxPeriod:         devMaxPeriod,
				RewardMint:        DevRewardMint,
				Rewards:           DevItemMints,
			})
		})

	gen, err := newGenesis("devnet", devLaunchTime, builder)
	if err != nil {
		panic(err)
	}
	return gen
}
