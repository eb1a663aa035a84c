// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package derive computes program derived addresses.
//
// A derived address is the blake2b hash of a list of seeds, a one byte nonce and
// the owning program id. Only hashes that are not the x-coordinate of a valid
// secp256k1 public key are accepted, so a derived address can never be signed for.
package derive

import (
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/core"
)

const (
	MaxSeeds      = 16
	MaxSeedLength = 32
)

var (
	marker = []byte("ProgramDerivedAddress")

	ErrMaxSeedLength = errors.New("seed exceeds max length")
	ErrTooManySeeds  = errors.New("too many seeds")
	ErrOnCurve       = errors.New("derived address is on curve")
	ErrNoViableNonce = errors.New("unable to find a viable nonce")
	ErrMismatch      = errors.New("derived address mismatch")
)

// IsOnCurve reports whether addr is the x-coordinate of a secp256k1 point.
func IsOnCurve(addr core.Address) bool {
	var compressed [33]byte
	compressed[0] = secp256k1.PubKeyFormatCompressedEven
	copy(compressed[1:], addr[:])
	_, err := secp256k1.ParsePubKey(compressed[:])
	return err == nil
}

func checkSeeds(seeds [][]byte) error {
	if len(seeds) > MaxSeeds {
		return ErrTooManySeeds
	}
	for _, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return ErrMaxSeedLength
		}
	}
	return nil
}

// CreateAddress computes the address for the given seeds and nonce.
// It fails if the result lies on the curve.
func CreateAddress(program core.Address, nonce uint8, seeds ...[]byte) (core.Address, error) {
	if err := checkSeeds(seeds); err != nil {
		return core.Address{}, err
	}
	h := core.Blake2bFn(func(w io.Writer) {
		for _, seed := range seeds {
			w.Write(seed)
		}
		w.Write([]byte{nonce})
		w.Write(program[:])
		w.Write(marker)
	})
	addr := core.Address(h)
	if IsOnCurve(addr) {
		return core.Address{}, ErrOnCurve
	}
	return addr, nil
}

// FindAddress searches the nonce from 255 downwards and returns the first
// off-curve address together with its nonce.
func FindAddress(program core.Address, seeds ...[]byte) (core.Address, uint8, error) {
	if err := checkSeeds(seeds); err != nil {
		return core.Address{}, 0, err
	}
	for nonce := 255; nonce >= 0; nonce-- {
		addr, err := CreateAddress(program, uint8(nonce), seeds...)
		if err == nil {
			return addr, uint8(nonce), nil
		}
		if err != ErrOnCurve {
			return core.Address{}, 0, err
		}
	}
	return core.Address{}, 0, ErrNoViableNonce
}

// MustFindAddress is FindAddress for seeds known to be valid.
func MustFindAddress(program core.Address, seeds ...[]byte) (core.Address, uint8) {
	addr, nonce, err := FindAddress(program, seeds...)
	if err != nil {
		panic(err)
	}
	return addr, nonce
}

// Verify re-derives the canonical address for seeds and checks that supplied
// matches it. The canonical nonce is returned on success.
func Verify(program, supplied core.Address, seeds ...[]byte) (uint8, error) {
	addr, nonce, err := FindAddress(program, seeds...)
	if err != nil {
		return 0, err
	}
	if addr != supplied {
		return 0, errors.WithMessagef(ErrMismatch, "expected %v, got %v", addr, supplied)
	}
	return nonce, nil
}
