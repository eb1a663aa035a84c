// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/api/utils"
	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/staking"
	"github.com/vechain/nftstaking/staking/reverts"
	"github.com/vechain/nftstaking/staking/slot"
	"github.com/vechain/nftstaking/state"
	"github.com/vechain/nftstaking/xenv"
)

// Config is the program config with its address.
type Config struct {
	Address core.Address `json:"address"`
	*staking.Config
}

// SlotRef locates one slot of a user.
type SlotRef struct {
	Index   uint32       `json:"index"`
	Address core.Address `json:"address"`
}

// User lists the slots an owner has opened.
type User struct {
	Owner   core.Address `json:"owner"`
	Counter core.Address `json:"counter"`
	Next    uint32       `json:"next"`
	Slots   []SlotRef    `json:"slots"`
}

// Slot is a slot with its lock evaluated at request time.
type Slot struct {
	Address   core.Address `json:"address"`
	Locked    bool         `json:"locked"`
	UnlocksAt uint64       `json:"unlocksAt"`
	*slot.Slot
}

type Staking struct {
	stater  *state.Stater
	program core.Address
	clock   func() uint64
}

func New(stater *state.Stater, program core.Address, clock func() uint64) *Staking {
	if clock == nil {
		clock = func() uint64 { return uint64(time.Now().Unix()) }
	}
	return &Staking{stater, program, clock}
}

func (s *Staking) newState() (*state.State, uint64) {
	return s.stater.NewState(), s.clock()
}

func (s *Staking) handleGetConfig(w http.ResponseWriter, req *http.Request) error {
	st, now := s.newState()
	env := xenv.New(st, &xenv.BlockContext{Time: now}, &xenv.TransactionContext{})
	stk := staking.New(s.program, env)
	cfg, err := stk.GetConfig()
	if err != nil {
		if errors.Is(err, reverts.ErrNotInitialized) {
			return utils.NotFound(err)
		}
		return err
	}
	return utils.WriteJSON(w, &Config{Address: stk.ConfigAddress(), Config: cfg})
}

func (s *Staking) handleGetUser(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.AddressVar(req, "owner")
	if err != nil {
		return err
	}
	st, _ := s.newState()
	counterAddr, _ := staking.CounterAddress(s.program, owner)
	counter, err := slot.New(st, s.program).GetCounter(counterAddr, owner)
	if err != nil {
		if reverts.IsRevertErr(err) {
			return utils.BadRequest(err)
		}
		return err
	}
	user := User{
		Owner:   owner,
		Counter: counterAddr,
		Next:    counter.Next,
		Slots:   make([]SlotRef, 0, counter.Next),
	}
	for i := range counter.Next {
		addr, _ := staking.SlotAddress(s.program, owner, i)
		user.Slots = append(user.Slots, SlotRef{Index: i, Address: addr})
	}
	return utils.WriteJSON(w, &user)
}

func (s *Staking) handleGetSlot(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.AddressVar(req, "owner")
	if err != nil {
		return err
	}
	index, err := strconv.ParseUint(mux.Vars(req)["index"], 10, 32)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "index"))
	}
	st, now := s.newState()
	addr, _ := staking.SlotAddress(s.program, owner, uint32(index))
	sl, found, err := slot.New(st, s.program).GetSlot(addr)
	if err != nil {
		if reverts.IsRevertErr(err) {
			return utils.BadRequest(err)
		}
		return err
	}
	if !found {
		return utils.NotFound(errors.Errorf("slot %d of %v not found", index, owner))
	}
	return utils.WriteJSON(w, &Slot{
		Address:   addr,
		Locked:    sl.IsLocked(now),
		UnlocksAt: sl.UnlocksAt(),
		Slot:      sl,
	})
}

func (s *Staking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/config").
		Methods(http.MethodGet).
		Name("GET /staking/config").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetConfig))
	sub.Path("/users/{owner}").
		Methods(http.MethodGet).
		Name("GET /staking/users/{owner}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetUser))
	sub.Path("/users/{owner}/slots/{index}").
		Methods(http.MethodGet).
		Name("GET /staking/users/{owner}/slots/{index}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetSlot))
}
