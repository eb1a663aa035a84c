// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package datagen makes random fixtures for tests.
package datagen

import (
	"crypto/rand"
	mathrand "math/rand/v2"

	"github.com/vechain/nftstaking/core"
)

func RandAddress() (addr core.Address) {
	rand.Read(addr[:])
	return
}

func RandBytes32() (b core.Bytes32) {
	rand.Read(b[:])
	return
}

func RandIntN(n int) int {
	return mathrand.N(n) //#nosec G404
}
