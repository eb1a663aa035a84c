// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/metadata"
	"github.com/vechain/nftstaking/staking/reverts"
	"github.com/vechain/nftstaking/token"
	"github.com/vechain/nftstaking/xenv"
)

type InitializeMintArgs struct {
	Payer     core.Address  `json:"payer"`
	Mint      core.Address  `json:"mint"`
	Authority *core.Address `json:"authority"`
	Decimals  uint8         `json:"decimals"`
}

type CreateAccountArgs struct {
	Payer core.Address `json:"payer"`
	Owner core.Address `json:"owner"`
	Mint  core.Address `json:"mint"`
}

type TransferArgs struct {
	Source      core.Address `json:"source"`
	Destination core.Address `json:"destination"`
	Authority   core.Address `json:"authority"`
	Amount      uint64       `json:"amount"`
}

type MintToArgs struct {
	Mint        core.Address `json:"mint"`
	Destination core.Address `json:"destination"`
	Authority   core.Address `json:"authority"`
	Amount      uint64       `json:"amount"`
}

type SetMintAuthorityArgs struct {
	Mint         core.Address  `json:"mint"`
	Authority    core.Address  `json:"authority"`
	NewAuthority *core.Address `json:"newAuthority"`
}

type CloseAccountArgs struct {
	Account     core.Address `json:"account"`
	Destination core.Address `json:"destination"`
	Owner       core.Address `json:"owner"`
}

type CreateMetadataArgs struct {
	Payer           core.Address  `json:"payer"`
	Mint            core.Address  `json:"mint"`
	MintAuthority   core.Address  `json:"mintAuthority"`
	UpdateAuthority core.Address  `json:"updateAuthority"`
	Data            metadata.Data `json:"data"`
	IsMutable       bool          `json:"isMutable"`
}

type SignCreatorArgs struct {
	Mint    core.Address `json:"mint"`
	Creator core.Address `json:"creator"`
}

type UpdateMetadataArgs struct {
	Mint            core.Address  `json:"mint"`
	UpdateAuthority core.Address  `json:"updateAuthority"`
	Data            metadata.Data `json:"data"`
}

func requireSigners(env *xenv.Environment, addrs ...core.Address) error {
	for _, a := range addrs {
		if !env.IsSigner(a) {
			return errors.WithMessagef(reverts.ErrSignatureRequired, "%v", a)
		}
	}
	return nil
}

// builtinOp decodes the payload, checks the signers named by signers and runs fn.
func builtinOp[A any](signers func(*A) []core.Address, fn func(*xenv.Environment, *A) error) Handler {
	return func(env *xenv.Environment, payload []byte) error {
		var args A
		if err := Decode(payload, &args); err != nil {
			return err
		}
		if err := requireSigners(env, signers(&args)...); err != nil {
			return err
		}
		return fn(env, &args)
	}
}

// RegisterBuiltins binds the token and metadata primitives under the
// "token." and "metadata." namespaces.
func (rt *Runtime) RegisterBuiltins() {
	rt.Register("token.initializeMint", builtinOp(
		func(a *InitializeMintArgs) []core.Address { return []core.Address{a.Payer} },
		func(env *xenv.Environment, a *InitializeMintArgs) error {
			return token.New(env.State()).InitializeMint(a.Payer, a.Mint, a.Authority, a.Decimals)
		}))
	rt.Register("token.createAccount", builtinOp(
		func(a *CreateAccountArgs) []core.Address { return []core.Address{a.Payer} },
		func(env *xenv.Environment, a *CreateAccountArgs) error {
			_, err := token.New(env.State()).CreateAssociatedAccount(a.Payer, a.Owner, a.Mint)
			return err
		}))
	rt.Register("token.transfer", builtinOp(
		func(a *TransferArgs) []core.Address { return []core.Address{a.Authority} },
		func(env *xenv.Environment, a *TransferArgs) error {
			return token.New(env.State()).Transfer(a.Source, a.Destination, a.Authority, a.Amount)
		}))
	rt.Register("token.mintTo", builtinOp(
		func(a *MintToArgs) []core.Address { return []core.Address{a.Authority} },
		func(env *xenv.Environment, a *MintToArgs) error {
			return token.New(env.State()).MintTo(a.Mint, a.Destination, a.Authority, a.Amount)
		}))
	rt.Register("token.setMintAuthority", builtinOp(
		func(a *SetMintAuthorityArgs) []core.Address { return []core.Address{a.Authority} },
		func(env *xenv.Environment, a *SetMintAuthorityArgs) error {
			return token.New(env.State()).SetMintAuthority(a.Mint, a.Authority, a.NewAuthority)
		}))
	rt.Register("token.closeAccount", builtinOp(
		func(a *CloseAccountArgs) []core.Address { return []core.Address{a.Owner} },
		func(env *xenv.Environment, a *CloseAccountArgs) error {
			return token.New(env.State()).CloseAccount(a.Account, a.Destination, a.Owner)
		}))
	rt.Register("metadata.create", builtinOp(
		func(a *CreateMetadataArgs) []core.Address {
			return []core.Address{a.Payer, a.MintAuthority, a.UpdateAuthority}
		},
		func(env *xenv.Environment, a *CreateMetadataArgs) error {
			_, err := metadata.New(env.State()).Create(a.Payer, a.Mint, a.MintAuthority, a.UpdateAuthority, a.Data, a.IsMutable)
			return err
		}))
	rt.Register("metadata.signCreator", builtinOp(
		func(a *SignCreatorArgs) []core.Address { return []core.Address{a.Creator} },
		func(env *xenv.Environment, a *SignCreatorArgs) error {
			return metadata.New(env.State()).SignCreator(a.Mint, a.Creator)
		}))
	rt.Register("metadata.update", builtinOp(
		func(a *UpdateMetadataArgs) []core.Address { return []core.Address{a.UpdateAuthority} },
		func(env *xenv.Environment, a *UpdateMetadataArgs) error {
			return metadata.New(env.State()).Update(a.Mint, a.UpdateAuthority, a.Data)
		}))
}
