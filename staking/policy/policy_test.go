// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package policy

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/metadata"
	"github.com/vechain/nftstaking/staking/reverts"
)

var (
	creator = core.BytesToAddress([]byte("creator"))
	other   = core.BytesToAddress([]byte("other"))
)

func md(name string, creators ...metadata.Creator) *metadata.Metadata {
	return &metadata.Metadata{Data: metadata.Data{Name: name, Creators: creators}}
}

func TestAuthorize(t *testing.T) {
	verified := metadata.Creator{Address: creator, Verified: true, Share: 100}
	unverified := metadata.Creator{Address: creator, Verified: false, Share: 100}
	otherVerified := metadata.Creator{Address: other, Verified: true, Share: 100}

	tests := []struct {
		name     string
		md       *metadata.Metadata
		prefixes []string
		want     error
	}{
		{"verified creator, no prefixes", md("anything", verified), nil, nil},
		{"verified creator, matching prefix", md("Aurory #12", verified), []string{"Zenith", "Aurory"}, nil},
		{"prefix is case sensitive", md("aurory #12", verified), []string{"Aurory"}, reverts.ErrNoAuthorizedNamePrefix},
		{"no matching prefix", md("Other #1", verified), []string{"Aurory"}, reverts.ErrNoAuthorizedNamePrefix},
		{"unverified creator", md("Aurory #12", unverified), []string{"Aurory"}, reverts.ErrUnauthorizedCreator},
		{"different verified creator", md("Aurory #12", otherVerified), nil, reverts.ErrUnauthorizedCreator},
		{"no creators", md("Aurory #12"), nil, reverts.ErrUnauthorizedCreator},
		{"second creator matches", md("Aurory #12", otherVerified, verified), []string{"Aur"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.md, creator, tt.prefixes)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, tt.want), "got %v", err)
			}
		})
	}
}

func TestHasNamePrefix(t *testing.T) {
	assert.True(t, HasNamePrefix("", nil))
	assert.True(t, HasNamePrefix("abc", []string{"a"}))
	assert.False(t, HasNamePrefix("", []string{"a"}))
}
