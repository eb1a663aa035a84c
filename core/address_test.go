// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package core

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"with prefix", "0x" + "ab" + "00000000000000000000000000000000000000000000000000000000000000", false},
		{"without prefix", "ab" + "00000000000000000000000000000000000000000000000000000000000000", false},
		{"bad prefix", "1x" + "ab" + "00000000000000000000000000000000000000000000000000000000000000", true},
		{"short", "0xabcd", true},
		{"bad hex", "0x" + "zz" + "00000000000000000000000000000000000000000000000000000000000000", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := ParseAddress(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, byte(0xab), addr[0])
		})
	}
}

func TestAddressJSON(t *testing.T) {
	addr := BytesToAddress([]byte{1, 2, 3})
	data, err := json.Marshal(&addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+addr.String()+`"`, string(data))

	var decoded Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, addr, decoded)
	assert.Equal(t, byte(3), decoded[31])
}

func TestBytesToAddress(t *testing.T) {
	long := make([]byte, 40)
	long[39] = 7
	long[0] = 9
	addr := BytesToAddress(long)
	assert.Equal(t, byte(7), addr[31])
	assert.Equal(t, byte(0), addr[0])
	assert.True(t, Address{}.IsZero())
	assert.False(t, addr.IsZero())
}

func TestPubkeyToAddress(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	addr := PubkeyToAddress(key.PublicKey)
	assert.Equal(t, crypto.CompressPubkey(&key.PublicKey)[1:], addr.Bytes())
}

func TestRentExemption(t *testing.T) {
	assert.Equal(t, AccountStorageOverhead*LamportsPerByteYear*ExemptionThresholdYears, RentExemption(0))
	assert.Greater(t, RentExemption(100), RentExemption(10))
}
