// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
)

// ErrRevert is a client error of a staking operation. All state changes of
// the operation are discarded.
type ErrRevert struct {
	code    uint32
	message string
}

func New(code uint32, message string) *ErrRevert {
	return &ErrRevert{
		code:    code,
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

// Code is the stable numeric identifier of the error kind.
func (e *ErrRevert) Code() uint32 {
	return e.code
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// CodeOf extracts the code of a revert error in the chain of err.
func CodeOf(err error) (uint32, bool) {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve.code, true
	}
	return 0, false
}

var (
	ErrUnauthorized             = New(6000, "signer is not the admin")
	ErrAlreadyInitialized       = New(6001, "staking config already initialized")
	ErrNotInitialized           = New(6002, "staking config not initialized")
	ErrInvalidPeriodBounds      = New(6003, "invalid staking period bounds")
	ErrUnauthorizedCreator      = New(6004, "no authorized creators found in metadata")
	ErrNoAuthorizedNamePrefix   = New(6005, "no authorized name start found in metadata")
	ErrInvalidDerivedAddress    = New(6006, "derived key invalid")
	ErrInvalidStakingPeriod     = New(6007, "invalid staking period")
	ErrStakingNotLocked         = New(6008, "staking is not locked")
	ErrStakingLocked            = New(6009, "staking is locked")
	ErrInvalidRewardMint        = New(6010, "invalid mint for reward")
	ErrRewardNotActive          = New(6011, "reward is not active")
	ErrPrefixNotFound           = New(6012, "authorized name start not found")
	ErrNotClaimableItem         = New(6013, "not claimable item")
	ErrPendingRewardsNotClaimed = New(6014, "can't unstake before claim all rewards")
	ErrSignatureRequired        = New(6015, "missing required signature")
	ErrInvalidAccounts          = New(6016, "invalid accounts")
	ErrInvalidSlotIndex         = New(6017, "invalid staking slot index")
	ErrSlotEmpty                = New(6018, "staking slot is empty")
	ErrDuplicateReward          = New(6019, "reward mint already active")
	ErrInvalidNamePrefix        = New(6020, "invalid authorized name start")
	ErrInvalidAmount            = New(6021, "invalid amount")
	ErrCapacityExceeded         = New(6022, "record capacity exceeded")
	ErrRewardOverflow           = New(6023, "reward amount overflow")
	ErrProgramFrozen            = New(6024, "program is frozen")
	ErrMetadataDoesntExist      = New(6025, "metadata doesn't exist")
)
