// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"encoding/json"
)

// Builder to make it easy to build transaction.
type Builder struct {
	body body
	err  error
}

// Op sets the operation name.
func (b *Builder) Op(op string) *Builder {
	b.body.Op = op
	return b
}

// Payload sets the arguments of the operation, JSON encoded.
func (b *Builder) Payload(args any) *Builder {
	b.body.Payload, b.err = json.Marshal(args)
	return b
}

// RawPayload sets already encoded arguments.
func (b *Builder) RawPayload(data []byte) *Builder {
	b.body.Payload = append([]byte(nil), data...)
	b.err = nil
	return b
}

// Nonce set nonce.
func (b *Builder) Nonce(nonce uint64) *Builder {
	b.body.Nonce = nonce
	return b
}

// Build builds an unsigned tx.
func (b *Builder) Build() (*Transaction, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &Transaction{body: b.body}, nil
}

// MustBuild is like Build but panics on payload encoding error.
func (b *Builder) MustBuild() *Transaction {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}
