// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/beevik/ntp"
	"github.com/elastic/gosigar"
	"github.com/ethereum/go-ethereum/common/fdlimit"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/genesis"
	"github.com/vechain/nftstaking/log"
	"github.com/vechain/nftstaking/lvldb"
	"github.com/vechain/nftstaking/staking"
)

// maxClockOffset is the drift tolerated before warning. Lock expiry is
// evaluated against the local clock.
const maxClockOffset = 5 * time.Second

func initLogger(ctx *cli.Context) (*slog.LevelVar, error) {
	lvl := ctx.Int(verbosityFlag.Name)
	if lvl < log.LegacyLevelCrit || lvl > log.LegacyLevelTrace {
		return nil, errors.Errorf("invalid verbosity %d, want %d-%d", lvl, log.LegacyLevelCrit, log.LegacyLevelTrace)
	}

	logLevel := new(slog.LevelVar)
	logLevel.Set(log.FromLegacyLevel(lvl))

	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.NewJSONHandler(os.Stdout, log.LevelTrace)
	} else {
		useColor := (isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())) && os.Getenv("TERM") != "dumb"
		handler = log.NewTerminalHandler(os.Stdout, log.LevelTrace, useColor)
	}
	log.SetDefault(log.NewLevelHandler(logLevel, handler))
	staking.SetLogger(log.WithContext("pkg", "staking"))
	return logLevel, nil
}

func selectGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		logger.Warn("no genesis file given, using the devnet")
		return genesis.NewDevnet(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	gen, err := genesis.ParseCustomGenesis(data)
	if err != nil {
		return nil, errors.WithMessage(err, "decode genesis file")
	}
	gene, err := genesis.NewCustomNet(gen)
	if err != nil {
		return nil, errors.WithMessage(err, "build genesis")
	}
	return gene, nil
}

func makeInstanceDir(ctx *cli.Context, gene *genesis.Genesis) (string, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return "", errors.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	id := gene.ID()
	instanceDir := filepath.Join(dataDir, fmt.Sprintf("instance-%x", id[24:]))
	if err := os.MkdirAll(instanceDir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create instance dir [%v]", instanceDir)
	}
	return instanceDir, nil
}

func openMainDB(ctx *cli.Context, instanceDir string) (*lvldb.DB, error) {
	cacheMB := normalizeCacheSize(ctx.Int(cacheFlag.Name))
	logger.Debug("cache size(MB)", "size", cacheMB)

	// Ensure Go's GC ignores the database cache for trigger percentage
	gogc := math.Max(20, math.Min(100, 100/(float64(cacheMB)/1024)))
	logger.Debug("sanitize Go's GC trigger", "percent", int(gogc))
	debug.SetGCPercent(int(gogc))

	fdCache := suggestFDCache()
	logger.Debug("fd cache", "n", fdCache)

	dir := filepath.Join(instanceDir, "main.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheMB:   cacheMB / 2,
		OpenFiles: fdCache,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open main database [%v]", dir)
	}
	return db, nil
}

func normalizeCacheSize(sizeMB int) int {
	if sizeMB < 128 {
		sizeMB = 128
	}

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		logger.Warn("failed to get total mem", "err", err)
	} else {
		// limit to 1/2 os physical ram
		limitMB := int(mem.Total / 1024 / 1024 / 2)
		if sizeMB > limitMB {
			sizeMB = limitMB
			logger.Warn("cache size(MB) limited", "limit", limitMB)
		}
	}
	return sizeMB
}

// accountCacheSize returns how many decoded accounts fit in the half of the
// cache not given to leveldb.
func accountCacheSize(cacheMB int) int {
	const avgAccountSize = 4096
	return cacheMB * 1024 * 1024 / 2 / avgAccountSize
}

func suggestFDCache() int {
	limit, err := fdlimit.Current()
	if err != nil {
		logger.Warn("failed to get fd limit", "err", err)
		return 0
	}
	if limit <= 1024 {
		logger.Warn("low fd limit, increase it if possible", "limit", limit)
	}

	n := limit / 2
	if n > 5120 {
		return 5120
	}
	return n
}

func checkClockOffset() {
	resp, err := ntp.Query("pool.ntp.org")
	if err != nil {
		logger.Debug("failed to access NTP", "err", err)
		return
	}
	if resp.ClockOffset > maxClockOffset || resp.ClockOffset < -maxClockOffset {
		logger.Warn("clock offset detected, lock expiry follows the local clock", "offset", resp.ClockOffset)
	} else {
		logger.Debug("clock offset", "offset", resp.ClockOffset)
	}
}

func printStartupMessage(gene *genesis.Genesis, instanceDir string, servers []*server) {
	info := fmt.Sprintf(`Starting %v
    Network      [ %v %v ]
    Launch time  [ %v ]
    Program      [ %v ]
    Instance dir [ %v ]
`,
		"nftstaking "+fullVersion(),
		gene.ID(), gene.Name(),
		time.Unix(int64(gene.LaunchTime()), 0).UTC(),
		staking.ProgramID,
		instanceDir)
	for _, srv := range servers {
		info += fmt.Sprintf("    %-12s [ %v ]\n", strings.ToUpper(srv.name[:1])+srv.name[1:], srv.url())
	}
	fmt.Print(info)
}

func printDevAccounts() {
	tableHead := `
┌────────────────────────────────────────────────────────────────────┬────────────────────────────────────────────────────────────────────┐
│                               Address                              │                             Private Key                            │`
	tableContent := `
├────────────────────────────────────────────────────────────────────┼────────────────────────────────────────────────────────────────────┤
│ %v │ %v │`
	tableEnd := `
└────────────────────────────────────────────────────────────────────┴────────────────────────────────────────────────────────────────────┘`

	info := tableHead
	for _, a := range genesis.DevAccounts() {
		info += fmt.Sprintf(tableContent,
			a.Address,
			core.BytesToBytes32(crypto.FromECDSA(a.PrivateKey)),
		)
	}
	info += tableEnd + "\r\n"
	fmt.Print(info)
}
