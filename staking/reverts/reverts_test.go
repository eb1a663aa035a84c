// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_Reverts(t *testing.T) {
	revert := New(1, "test")
	assert.Equal(t, "test", revert.message)
	assert.Equal(t, revert.Error(), revert.message)
	assert.Equal(t, uint32(1), revert.Code())

	assert.True(t, IsRevertErr(revert))
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr(fmt.Errorf("test")))
	assert.False(t, IsRevertErr(big.NewInt(0)))
}

func TestWrappedRevert(t *testing.T) {
	err := errors.WithMessage(ErrStakingLocked, "slot 3")
	assert.True(t, IsRevertErr(err))
	assert.True(t, errors.Is(err, ErrStakingLocked))
	assert.False(t, errors.Is(err, ErrStakingNotLocked))

	code, ok := CodeOf(err)
	assert.True(t, ok)
	assert.Equal(t, uint32(6009), code)

	_, ok = CodeOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestCodesAreUnique(t *testing.T) {
	all := []*ErrRevert{
		ErrUnauthorized, ErrAlreadyInitialized, ErrNotInitialized, ErrInvalidPeriodBounds,
		ErrUnauthorizedCreator, ErrNoAuthorizedNamePrefix, ErrInvalidDerivedAddress,
		ErrInvalidStakingPeriod, ErrStakingNotLocked, ErrStakingLocked, ErrInvalidRewardMint,
		ErrRewardNotActive, ErrPrefixNotFound, ErrNotClaimableItem, ErrPendingRewardsNotClaimed,
		ErrSignatureRequired, ErrInvalidAccounts, ErrInvalidSlotIndex, ErrSlotEmpty,
		ErrDuplicateReward, ErrInvalidNamePrefix, ErrInvalidAmount, ErrCapacityExceeded,
		ErrRewardOverflow, ErrProgramFrozen, ErrMetadataDoesntExist,
	}
	seen := make(map[uint32]bool)
	for _, e := range all {
		assert.False(t, seen[e.Code()], "duplicate code %d", e.Code())
		seen[e.Code()] = true
	}
}
