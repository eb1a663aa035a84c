// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// MustSign signs a transaction with every provided private key.
// It panics if the signing process fails.
func MustSign(tx *Transaction, keys ...*ecdsa.PrivateKey) *Transaction {
	trx, err := Sign(tx, keys...)
	if err != nil {
		panic(err)
	}
	return trx
}

// Sign appends a signature of the signing hash for each private key.
func Sign(tx *Transaction, keys ...*ecdsa.PrivateKey) (*Transaction, error) {
	hash := tx.SigningHash()
	for _, pk := range keys {
		sig, err := crypto.Sign(hash[:], pk)
		if err != nil {
			return nil, errors.Wrap(err, "unable to sign transaction")
		}
		tx = tx.WithSignature(sig)
	}
	return tx, nil
}
