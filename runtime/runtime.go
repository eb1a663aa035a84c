// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime executes signed transactions one at a time against the
// ledger state.
package runtime

import (
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/kv"
	"github.com/vechain/nftstaking/log"
	"github.com/vechain/nftstaking/metrics"
	"github.com/vechain/nftstaking/staking/reverts"
	"github.com/vechain/nftstaking/state"
	"github.com/vechain/nftstaking/tx"
	"github.com/vechain/nftstaking/xenv"
)

var logger = log.WithContext("pkg", "runtime")

var (
	ErrUnknownOp  = errors.New("runtime: unknown operation")
	ErrKnownTx    = errors.New("runtime: known transaction")
	ErrBadPayload = errors.New("runtime: malformed payload")
	ErrBadTx      = errors.New("runtime: bad transaction")
)

var (
	metricTxCount    = metrics.LazyLoadCounterVec("runtime_tx_count", []string{"op", "status"})
	metricTxDuration = metrics.LazyLoadHistogramVec("runtime_tx_duration_ms", []string{"op"}, metrics.BucketHTTPReqs)
)

const receiptBucket = kv.Bucket("r")

// Handler runs one operation in env with its JSON payload.
type Handler func(env *xenv.Environment, payload []byte) error

// Decode unmarshals payload into args, wrapping failures with ErrBadPayload.
func Decode(payload []byte, args any) error {
	if err := json.Unmarshal(payload, args); err != nil {
		return errors.WithMessage(ErrBadPayload, err.Error())
	}
	return nil
}

// Runtime serializes execution of transactions.
type Runtime struct {
	mu        sync.Mutex
	stater    *state.Stater
	clock     func() uint64
	handlers  map[string]Handler
	observers []func(*Receipt)
}

// New create a Runtime with no operation registered. clock supplies the
// execution time in unix seconds; it defaults to the wall clock.
func New(stater *state.Stater, clock func() uint64) *Runtime {
	if clock == nil {
		clock = func() uint64 { return uint64(time.Now().Unix()) }
	}
	return &Runtime{
		stater:   stater,
		clock:    clock,
		handlers: make(map[string]Handler),
	}
}

// Register binds op to h, replacing any previous binding.
func (rt *Runtime) Register(op string, h Handler) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.handlers[op] = h
}

// OnExecuted registers f to be called with every stored receipt.
func (rt *Runtime) OnExecuted(f func(*Receipt)) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.observers = append(rt.observers, f)
}

// Ops returns the registered operation names, sorted.
func (rt *Runtime) Ops() []string {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	ops := make([]string, 0, len(rt.handlers))
	for op := range rt.handlers {
		ops = append(ops, op)
	}
	slices.Sort(ops)
	return ops
}

// Stater returns the state creator.
func (rt *Runtime) Stater() *state.Stater {
	return rt.stater
}

// GetReceipt returns the receipt of an executed tx.
func (rt *Runtime) GetReceipt(id core.Bytes32) (*Receipt, error) {
	getter := receiptBucket.NewGetter(rt.stater.Store())
	data, err := getter.Get(id[:])
	if err != nil {
		return nil, err
	}
	var r Receipt
	if err := rlp.DecodeBytes(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// IsNotFound reports whether err means a missing receipt.
func (rt *Runtime) IsNotFound(err error) bool {
	return rt.stater.Store().IsNotFound(err)
}

// Execute runs trx and commits its effects. Operation failures produce a
// reverted receipt; the returned error is set only when the tx is rejected
// before execution or when the state can not be read or written.
func (rt *Runtime) Execute(trx *tx.Transaction) (*Receipt, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	start := time.Now()
	op := trx.Op()

	receipt, err := rt.execute(trx)
	status := "success"
	switch {
	case err != nil:
		status = "rejected"
	case receipt.Reverted:
		status = "reverted"
	}
	metricTxCount().AddWithLabel(1, map[string]string{"op": op, "status": status})
	metricTxDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"op": op})
	if err == nil {
		for _, f := range rt.observers {
			f(receipt)
		}
	}
	return receipt, err
}

func (rt *Runtime) execute(trx *tx.Transaction) (*Receipt, error) {
	signers, err := trx.Signers()
	if err != nil {
		return nil, errors.WithMessage(ErrBadTx, err.Error())
	}
	id, err := trx.ID()
	if err != nil {
		return nil, errors.WithMessage(ErrBadTx, err.Error())
	}
	handler, ok := rt.handlers[trx.Op()]
	if !ok {
		return nil, errors.WithMessagef(ErrUnknownOp, "%q", trx.Op())
	}
	known, err := receiptBucket.NewGetter(rt.stater.Store()).Has(id[:])
	if err != nil {
		return nil, err
	}
	if known {
		return nil, errors.WithMessagef(ErrKnownTx, "%v", id)
	}

	st := rt.stater.NewState()
	now := rt.clock()
	env := xenv.New(st,
		&xenv.BlockContext{Time: now},
		&xenv.TransactionContext{ID: id, Signers: signers})

	receipt := &Receipt{
		TxID:    id,
		Op:      trx.Op(),
		Signers: signers,
		Time:    now,
	}

	checkpoint := st.NewCheckpoint()
	if err := handler(env, trx.Payload()); err != nil {
		var stateErr *state.Error
		if errors.As(err, &stateErr) || errors.Is(err, ErrBadPayload) {
			return nil, err
		}
		st.RevertTo(checkpoint)
		receipt.Reverted = true
		receipt.Error = err.Error()
		receipt.Code, _ = reverts.CodeOf(err)
		logger.Debug("tx reverted", "id", id, "op", trx.Op(), "err", err)
	}

	stage := st.Stage()
	receipt.Changes = uint64(stage.Len())
	data, err := rlp.EncodeToBytes(receipt)
	if err != nil {
		return nil, err
	}
	if err := stage.Commit(func(p kv.Putter) error {
		return receiptBucket.NewPutter(p).Put(id[:], data)
	}); err != nil {
		return nil, err
	}
	logger.Debug("tx executed", "id", id, "op", trx.Op(), "reverted", receipt.Reverted, "changes", receipt.Changes)
	return receipt, nil
}

// IsRejected reports whether err rejects a tx for a client side reason.
func IsRejected(err error) bool {
	return errors.Is(err, ErrBadTx) ||
		errors.Is(err, ErrUnknownOp) ||
		errors.Is(err, ErrKnownTx) ||
		errors.Is(err, ErrBadPayload)
}
