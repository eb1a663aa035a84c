// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package core

// Rent parameters. An account must hold enough lamports to cover the storage
// of its data for two years to be created.
const (
	LamportsPerByteYear     uint64 = 3480
	ExemptionThresholdYears uint64 = 2
	AccountStorageOverhead  uint64 = 128
)

// RentExemption returns the minimum balance an account with space bytes of
// data must keep.
func RentExemption(space uint64) uint64 {
	return (AccountStorageOverhead + space) * LamportsPerByteYear * ExemptionThresholdYears
}
