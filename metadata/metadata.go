// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metadata is the provenance registry. Each mint can have one record
// describing its name and its creators. The staking program reads these
// records to decide which tokens are allowed in.
package metadata

import (
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/derive"
	"github.com/vechain/nftstaking/state"
	"github.com/vechain/nftstaking/token"
)

const (
	Prefix = "metadata"

	MaxNameLength   = 32
	MaxSymbolLength = 10
	MaxURILength    = 200
	MaxCreators     = 5
	MaxBasisPoints  = 10000

	// AccountSize is the rent sized record length.
	AccountSize = 679
)

// ProgramID owns all metadata records.
var ProgramID = core.Address(core.Blake2b([]byte("metadata-program")))

var (
	ErrNotFound           = errors.New("metadata: not found")
	ErrInvalidData        = errors.New("metadata: invalid data")
	ErrMintAuthority      = errors.New("metadata: mint authority mismatch")
	ErrCreatorNotFound    = errors.New("metadata: creator not found")
	ErrUpdateAuthority    = errors.New("metadata: update authority mismatch")
	ErrAlreadyInitialized = errors.New("metadata: already initialized")
)

// Creator is an entry of the creators list. Verified is set only by the
// creator itself.
type Creator struct {
	Address  core.Address `json:"address"`
	Verified bool         `json:"verified"`
	Share    uint8        `json:"share"`
}

// Data is the descriptive part of a record.
type Data struct {
	Name                 string    `json:"name"`
	Symbol               string    `json:"symbol"`
	URI                  string    `json:"uri"`
	SellerFeeBasisPoints uint16    `json:"sellerFeeBasisPoints"`
	Creators             []Creator `json:"creators"`
}

// Metadata is the record stored for a mint.
type Metadata struct {
	UpdateAuthority core.Address `json:"updateAuthority"`
	Mint            core.Address `json:"mint"`
	Data            Data         `json:"data"`
	IsMutable       bool         `json:"isMutable"`
}

// Address returns the derived address of the metadata record of mint.
func Address(mint core.Address) core.Address {
	addr, _ := derive.MustFindAddress(ProgramID, []byte(Prefix), ProgramID[:], mint[:])
	return addr
}

// Validate checks length limits and creator shares.
func (d *Data) Validate() error {
	if len(d.Name) > MaxNameLength || len(d.Symbol) > MaxSymbolLength || len(d.URI) > MaxURILength {
		return errors.WithMessage(ErrInvalidData, "field too long")
	}
	if d.SellerFeeBasisPoints > MaxBasisPoints {
		return errors.WithMessage(ErrInvalidData, "seller fee basis points")
	}
	if len(d.Creators) > MaxCreators {
		return errors.WithMessage(ErrInvalidData, "too many creators")
	}
	if len(d.Creators) == 0 {
		return nil
	}
	var total int
	seen := make(map[core.Address]bool, len(d.Creators))
	for _, c := range d.Creators {
		if seen[c.Address] {
			return errors.WithMessage(ErrInvalidData, "duplicate creator")
		}
		seen[c.Address] = true
		total += int(c.Share)
	}
	if total != 100 {
		return errors.WithMessage(ErrInvalidData, "creator shares must sum to 100")
	}
	return nil
}

// Registry reads and writes metadata records in a state.
type Registry struct {
	state *state.State
	token *token.Token
}

// New create a new instance.
func New(st *state.State) *Registry {
	return &Registry{state: st, token: token.New(st)}
}

// Load reads the record stored at addr.
func (r *Registry) Load(addr core.Address) (*Metadata, error) {
	var md Metadata
	owner, err := r.state.DecodeData(addr, &md)
	if err != nil {
		if errors.Is(err, state.ErrAccountNotFound) {
			return nil, errors.WithMessagef(ErrNotFound, "%v", addr)
		}
		return nil, err
	}
	if owner != ProgramID {
		return nil, errors.WithMessagef(ErrNotFound, "%v not owned by metadata program", addr)
	}
	return &md, nil
}

// Get reads the record of mint.
func (r *Registry) Get(mint core.Address) (*Metadata, error) {
	return r.Load(Address(mint))
}

// Create registers the record of mint. mintAuthority must be the current
// mint authority and is trusted to have signed, as is updateAuthority.
// Creators other than the update authority start unverified.
func (r *Registry) Create(payer, mint, mintAuthority, updateAuthority core.Address, data Data, isMutable bool) (core.Address, error) {
	if err := data.Validate(); err != nil {
		return core.Address{}, err
	}
	m, err := r.token.GetMint(mint)
	if err != nil {
		return core.Address{}, err
	}
	if !m.HasAuthority(mintAuthority) {
		return core.Address{}, ErrMintAuthority
	}
	addr := Address(mint)
	if err := r.state.CreateAccount(payer, addr, ProgramID, AccountSize); err != nil {
		if errors.Is(err, state.ErrAccountExists) {
			return core.Address{}, ErrAlreadyInitialized
		}
		return core.Address{}, err
	}
	creators := make([]Creator, len(data.Creators))
	for i, c := range data.Creators {
		c.Verified = c.Address == updateAuthority
		creators[i] = c
	}
	data.Creators = creators

	md := Metadata{
		UpdateAuthority: updateAuthority,
		Mint:            mint,
		Data:            data,
		IsMutable:       isMutable,
	}
	return addr, r.state.EncodeData(addr, &md)
}

// SignCreator marks creator as verified on the record of mint.
func (r *Registry) SignCreator(mint, creator core.Address) error {
	addr := Address(mint)
	md, err := r.Load(addr)
	if err != nil {
		return err
	}
	for i := range md.Data.Creators {
		if md.Data.Creators[i].Address == creator {
			md.Data.Creators[i].Verified = true
			return r.state.EncodeData(addr, md)
		}
	}
	return ErrCreatorNotFound
}

// Update replaces the descriptive data. Verification flags of creators that
// are kept are preserved.
func (r *Registry) Update(mint, updateAuthority core.Address, data Data) error {
	addr := Address(mint)
	md, err := r.Load(addr)
	if err != nil {
		return err
	}
	if md.UpdateAuthority != updateAuthority || !md.IsMutable {
		return ErrUpdateAuthority
	}
	if err := data.Validate(); err != nil {
		return err
	}
	verified := make(map[core.Address]bool)
	for _, c := range md.Data.Creators {
		verified[c.Address] = c.Verified
	}
	for i := range data.Creators {
		data.Creators[i].Verified = verified[data.Creators[i].Address] || data.Creators[i].Address == updateAuthority
	}
	md.Data = data
	return r.state.EncodeData(addr, md)
}
