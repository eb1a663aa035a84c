// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	goruntime "runtime"
	"syscall"
	"time"

	"github.com/pkg/errors"
)

// handleExitSignal returns a context cancelled on the first interrupt or
// terminate signal.
func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

type server struct {
	*http.Server
	name     string
	listener net.Listener
}

func newServer(name, addr string, handler http.Handler) (*server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen %s addr [%v]", name, addr)
	}
	return &server{
		Server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: time.Second,
			ReadTimeout:       5 * time.Second,
		},
		name:     name,
		listener: listener,
	}, nil
}

func (s *server) url() string {
	return "http://" + s.listener.Addr().String() + "/"
}

// serve blocks until the server is shut down.
func (s *server) serve() error {
	if err := s.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrapf(err, "%s server", s.name)
	}
	return nil
}

func defaultDataDir() string {
	// Try to place the data folder in the user's home dir
	if home := homeDir(); home != "" {
		switch goruntime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "org.vechain.nftstaking")
		case "windows":
			return filepath.Join(home, "AppData", "Roaming", "org.vechain.nftstaking")
		default:
			return filepath.Join(home, ".org.vechain.nftstaking")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}
