// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"flag"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/nftstaking/genesis"
)

func newContext(t *testing.T, flags []cli.Flag, args ...string) *cli.Context {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range flags {
		f.Apply(set)
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestNormalizeCacheSize(t *testing.T) {
	assert.Equal(t, 128, normalizeCacheSize(1))
	assert.LessOrEqual(t, normalizeCacheSize(1<<30), 1<<30)
}

func TestAccountCacheSize(t *testing.T) {
	assert.Equal(t, 128*1024, accountCacheSize(1024))
}

func TestSelectGenesis(t *testing.T) {
	flags := []cli.Flag{genesisFlag, dataDirFlag}

	gene, err := selectGenesis(newContext(t, flags))
	require.NoError(t, err)
	assert.Equal(t, genesis.NewDevnet().ID(), gene.ID())

	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: local\nlaunchTime: 1700000000\n"), 0o600))
	gene, err = selectGenesis(newContext(t, flags, "--genesis", path))
	require.NoError(t, err)
	assert.Equal(t, "local", gene.Name())

	_, err = selectGenesis(newContext(t, flags, "--genesis", filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)

	dataDir := t.TempDir()
	dir, err := makeInstanceDir(newContext(t, flags, "--data-dir", dataDir), gene)
	require.NoError(t, err)
	assert.DirExists(t, dir)
}

func TestServer(t *testing.T) {
	srv, err := newServer("api", "127.0.0.1:0", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	}))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.serve() }()

	res, err := http.Get(srv.url())
	require.NoError(t, err)
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	assert.Equal(t, "ok", string(body))

	require.NoError(t, srv.Close())
	assert.NoError(t, <-done)
}
