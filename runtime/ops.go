// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/staking"
	"github.com/vechain/nftstaking/xenv"
)

func stakingOp[A any](program core.Address, fn func(*staking.Staking, *A) error) Handler {
	return func(env *xenv.Environment, payload []byte) error {
		var args A
		if err := Decode(payload, &args); err != nil {
			return err
		}
		return fn(staking.New(program, env), &args)
	}
}

// RegisterStaking binds the operations of the staking program under the
// "staking." namespace.
func (rt *Runtime) RegisterStaking(program core.Address) {
	ops := map[string]Handler{
		"initialize":                 stakingOp(program, (*staking.Staking).Initialize),
		"toggleFreeze":               stakingOp(program, (*staking.Staking).ToggleFreeze),
		"updateAdmin":                stakingOp(program, (*staking.Staking).UpdateAdmin),
		"updateAuthorizedCreator":    stakingOp(program, (*staking.Staking).UpdateAuthorizedCreator),
		"updateStakingPeriodBounds":  stakingOp(program, (*staking.Staking).UpdateStakingPeriodBounds),
		"addAuthorizedNameStarts":    stakingOp(program, (*staking.Staking).AddAuthorizedNameStarts),
		"removeAuthorizedNameStarts": stakingOp(program, (*staking.Staking).RemoveAuthorizedNameStarts),
		"addReward":                  stakingOp(program, (*staking.Staking).AddReward),
		"removeReward":               stakingOp(program, (*staking.Staking).RemoveReward),
		"directMint":                 stakingOp(program, (*staking.Staking).DirectMint),
		"stake":                      stakingOp(program, (*staking.Staking).Stake),
		"lockStake":                  stakingOp(program, (*staking.Staking).LockStake),
		"unstake":                    stakingOp(program, (*staking.Staking).Unstake),
		"addWinner":                  stakingOp(program, (*staking.Staking).AddWinner),
		"addFungibleWinner":          stakingOp(program, (*staking.Staking).AddFungibleWinner),
		"claim":                      stakingOp(program, (*staking.Staking).Claim),
		"claimFungibleReward":        stakingOp(program, (*staking.Staking).ClaimFungibleReward),
	}
	for name, h := range ops {
		rt.Register("staking."+name, h)
	}
}
