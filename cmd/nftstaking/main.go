// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/nftstaking/api"
	"github.com/vechain/nftstaking/api/admin"
	"github.com/vechain/nftstaking/co"
	"github.com/vechain/nftstaking/core"
	"github.com/vechain/nftstaking/genesis"
	"github.com/vechain/nftstaking/health"
	"github.com/vechain/nftstaking/log"
	"github.com/vechain/nftstaking/lvldb"
	"github.com/vechain/nftstaking/metadata"
	"github.com/vechain/nftstaking/metrics"
	"github.com/vechain/nftstaking/runtime"
	"github.com/vechain/nftstaking/staking"
	"github.com/vechain/nftstaking/state"
	"github.com/vechain/nftstaking/token"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "nftstaking",
		Usage:     "NFT staking ledger node",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			genesisFlag,
			dataDirFlag,
			cacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			enableAPILogsFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			enableAdminFlag,
			adminAddrFlag,
			ntpCheckFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:  "solo",
				Usage: "devnet ledger for test & dev",
				Flags: []cli.Flag{
					dataDirFlag,
					cacheFlag,
					persistFlag,
					apiAddrFlag,
					apiCorsFlag,
					enableAPILogsFlag,
					verbosityFlag,
					jsonLogsFlag,
					enableMetricsFlag,
					metricsAddrFlag,
					enableAdminFlag,
					adminAddrFlag,
				},
				Action: soloAction,
			},
			{
				Name:   "keygen",
				Usage:  "generate a new signing key",
				Flags:  []cli.Flag{outFlag},
				Action: keygenAction,
			},
			{
				Name:   "addresses",
				Usage:  "print the derived addresses of the staking program",
				Flags:  []cli.Flag{ownerFlag, mintFlag, indexFlag},
				Action: addressesAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { logger.Info("exited") }()

	logLevel, err := initLogger(ctx)
	if err != nil {
		return err
	}

	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}
	instanceDir, err := makeInstanceDir(ctx, gene)
	if err != nil {
		return err
	}
	mainDB, err := openMainDB(ctx, instanceDir)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()

	if ctx.Bool(ntpCheckFlag.Name) {
		var goes co.Goes
		goes.Go(checkClockOffset)
		defer goes.Wait()
	}

	return runNode(exitSignal, ctx, gene, mainDB, logLevel, instanceDir)
}

func soloAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { logger.Info("exited") }()

	logLevel, err := initLogger(ctx)
	if err != nil {
		return err
	}

	gene := genesis.NewDevnet()

	var (
		mainDB      *lvldb.DB
		instanceDir string
	)
	if ctx.Bool(persistFlag.Name) {
		if instanceDir, err = makeInstanceDir(ctx, gene); err != nil {
			return err
		}
		if mainDB, err = openMainDB(ctx, instanceDir); err != nil {
			return err
		}
	} else {
		instanceDir = "Memory"
		if mainDB, err = lvldb.NewMem(); err != nil {
			return errors.Wrap(err, "open main database")
		}
	}
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()

	printDevAccounts()
	return runNode(exitSignal, ctx, gene, mainDB, logLevel, instanceDir)
}

func runNode(
	exitSignal context.Context,
	ctx *cli.Context,
	gene *genesis.Genesis,
	mainDB *lvldb.DB,
	logLevel *slog.LevelVar,
	instanceDir string,
) error {
	stater := state.NewStater(mainDB, accountCacheSize(ctx.Int(cacheFlag.Name)))
	genesisID, err := gene.Build(stater)
	if err != nil {
		return errors.Wrap(err, "build genesis")
	}
	var healthStatus health.Health
	healthStatus.GenesisReady(genesisID)

	rt := runtime.New(stater, nil)
	rt.RegisterBuiltins()
	rt.RegisterStaking(staking.ProgramID)
	rt.OnExecuted(func(r *runtime.Receipt) { healthStatus.TxExecuted(r.TxID) })

	enableMetrics := ctx.Bool(enableMetricsFlag.Name)
	if enableMetrics {
		metrics.InitializePrometheusMetrics()
	}

	var apiLogs atomic.Bool
	apiLogs.Store(ctx.Bool(enableAPILogsFlag.Name))

	var servers []*server
	addServer := func(name, addr string, handler http.Handler) error {
		srv, err := newServer(name, addr, handler)
		if err != nil {
			for _, s := range servers {
				s.listener.Close()
			}
			return err
		}
		servers = append(servers, srv)
		return nil
	}

	if err := addServer("api", ctx.String(apiAddrFlag.Name), api.New(rt, staking.ProgramID, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		EnableReqLogger: &apiLogs,
		EnableMetrics:   enableMetrics,
	})); err != nil {
		return err
	}
	if enableMetrics {
		if err := addServer("metrics", ctx.String(metricsAddrFlag.Name), metrics.HTTPHandler()); err != nil {
			return err
		}
	}
	if ctx.Bool(enableAdminFlag.Name) {
		if err := addServer("admin", ctx.String(adminAddrFlag.Name), admin.New(logLevel, &apiLogs, &healthStatus)); err != nil {
			return err
		}
	}

	printStartupMessage(gene, instanceDir, servers)

	g, gctx := errgroup.WithContext(exitSignal)
	for _, srv := range servers {
		g.Go(srv.serve)
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, srv := range servers {
			logger.Info("stopping server...", "name", srv.name)
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("server shutdown", "name", srv.name, "err", err)
			}
		}
		return nil
	})
	return g.Wait()
}

func keygenAction(ctx *cli.Context) error {
	key, err := crypto.GenerateKey()
	if err != nil {
		return err
	}
	addr := core.PubkeyToAddress(key.PublicKey)
	if out := ctx.String(outFlag.Name); out != "" {
		if err := crypto.SaveECDSA(out, key); err != nil {
			return errors.Wrap(err, "save key")
		}
		fmt.Printf("Address     [ %v ]\nKey file    [ %v ]\n", addr, out)
		return nil
	}
	fmt.Printf("Address     [ %v ]\nPrivate key [ %v ]\n", addr, core.BytesToBytes32(crypto.FromECDSA(key)))
	return nil
}

func addressesAction(ctx *cli.Context) error {
	program := staking.ProgramID
	configAddr, _ := staking.ConfigAddress(program)
	fmt.Printf("Program      [ %v ]\nConfig       [ %v ]\n", program, configAddr)

	var (
		owner, mint core.Address
		err         error
	)
	if s := ctx.String(ownerFlag.Name); s != "" {
		if owner, err = core.ParseAddress(s); err != nil {
			return errors.WithMessage(err, "owner")
		}
		counter, _ := staking.CounterAddress(program, owner)
		slot, _ := staking.SlotAddress(program, owner, uint32(ctx.Int(indexFlag.Name)))
		fmt.Printf("Counter      [ %v ]\nSlot #%-6d [ %v ]\n", counter, ctx.Int(indexFlag.Name), slot)
	}
	if s := ctx.String(mintFlag.Name); s != "" {
		if mint, err = core.ParseAddress(s); err != nil {
			return errors.WithMessage(err, "mint")
		}
		rewardVault, _ := staking.RewardVaultAddress(program, mint)
		fmt.Printf("Metadata     [ %v ]\nReward vault [ %v ]\n", metadata.Address(mint), rewardVault)
		if !owner.IsZero() {
			vault, _ := staking.VaultAddress(program, owner, mint)
			fmt.Printf("Vault        [ %v ]\nToken acct   [ %v ]\n", vault, token.AssociatedAddress(owner, mint))
		}
	}
	return nil
}
