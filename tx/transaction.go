// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"io"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/core"
)

var (
	ErrMissingSignature   = errors.New("tx: missing signature")
	ErrDuplicateSignature = errors.New("tx: duplicated signer")
)

// Transaction is an immutable signed operation.
type Transaction struct {
	body body

	cache struct {
		signingHash atomic.Pointer[core.Bytes32]
		signers     atomic.Pointer[[]core.Address]
		id          atomic.Pointer[core.Bytes32]
	}
}

// body describes details of a tx.
type body struct {
	Op         string
	Payload    []byte
	Nonce      uint64
	Signatures [][]byte
}

// Op returns the name of the operation to run.
func (t *Transaction) Op() string {
	return t.body.Op
}

// Payload returns the JSON encoded arguments of the operation.
func (t *Transaction) Payload() []byte {
	return append([]byte(nil), t.body.Payload...)
}

// Nonce returns the nonce.
func (t *Transaction) Nonce() uint64 {
	return t.body.Nonce
}

// Signatures returns the signatures, in signing order.
func (t *Transaction) Signatures() [][]byte {
	sigs := make([][]byte, len(t.body.Signatures))
	for i, sig := range t.body.Signatures {
		sigs[i] = append([]byte(nil), sig...)
	}
	return sigs
}

// SigningHash returns hash of tx excludes signatures.
func (t *Transaction) SigningHash() core.Bytes32 {
	if cached := t.cache.signingHash.Load(); cached != nil {
		return *cached
	}
	h := core.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, []any{
			t.body.Op,
			t.body.Payload,
			t.body.Nonce,
		})
	})
	t.cache.signingHash.Store(&h)
	return h
}

// Signers recovers the signer of every signature.
func (t *Transaction) Signers() ([]core.Address, error) {
	if cached := t.cache.signers.Load(); cached != nil {
		return append([]core.Address(nil), *cached...), nil
	}
	if len(t.body.Signatures) == 0 {
		return nil, ErrMissingSignature
	}
	hash := t.SigningHash()
	signers := make([]core.Address, 0, len(t.body.Signatures))
	seen := make(map[core.Address]bool, len(t.body.Signatures))
	for i, sig := range t.body.Signatures {
		pub, err := crypto.SigToPub(hash[:], sig)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		signer := core.PubkeyToAddress(*pub)
		if seen[signer] {
			return nil, errors.WithMessagef(ErrDuplicateSignature, "%v", signer)
		}
		seen[signer] = true
		signers = append(signers, signer)
	}
	t.cache.signers.Store(&signers)
	return append([]core.Address(nil), signers...), nil
}

// ID returns the id of tx, derived from the signing hash and the signers.
// The signatures must be valid.
func (t *Transaction) ID() (core.Bytes32, error) {
	if cached := t.cache.id.Load(); cached != nil {
		return *cached, nil
	}
	signers, err := t.Signers()
	if err != nil {
		return core.Bytes32{}, err
	}
	hash := t.SigningHash()
	data := [][]byte{hash[:]}
	for _, s := range signers {
		data = append(data, s.Bytes())
	}
	id := core.Blake2b(data...)
	t.cache.id.Store(&id)
	return id, nil
}

// WithSignature create a new tx with sig appended.
func (t *Transaction) WithSignature(sig []byte) *Transaction {
	newTx := Transaction{body: t.body}
	newTx.body.Signatures = append(t.Signatures(), append([]byte(nil), sig...))
	return &newTx
}

// EncodeRLP implements rlp.Encoder
func (t *Transaction) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &t.body)
}

// DecodeRLP implements rlp.Decoder
func (t *Transaction) DecodeRLP(s *rlp.Stream) error {
	var body body
	if err := s.Decode(&body); err != nil {
		return err
	}
	*t = Transaction{body: body}
	return nil
}

// Decode decodes a RLP encoded tx.
func Decode(data []byte) (*Transaction, error) {
	var t Transaction
	if err := rlp.DecodeBytes(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
