// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log provides context loggers on top of the go-ethereum slog handlers.
//
// Loggers created with WithContext resolve the root handler on every record, so
// package level loggers declared before the handler is configured still
// follow SetDefault.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// Legacy verbosity levels accepted on the command line.
const (
	LegacyLevelCrit = iota
	LegacyLevelError
	LegacyLevelWarn
	LegacyLevelInfo
	LegacyLevelDebug
	LegacyLevelTrace
)

// Levels re-exported for handler construction.
const (
	LevelTrace = ethlog.LevelTrace
	LevelDebug = ethlog.LevelDebug
	LevelInfo  = ethlog.LevelInfo
	LevelWarn  = ethlog.LevelWarn
	LevelError = ethlog.LevelError
	LevelCrit  = ethlog.LevelCrit
)

// Logger writes key/value pairs to the root handler.
type Logger interface {
	With(ctx ...any) Logger
	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Crit(msg string, ctx ...any)
}

type logger struct {
	ctx []any
}

// WithContext returns a logger that prefixes every record with ctx.
func WithContext(ctx ...any) Logger {
	return &logger{ctx: ctx}
}

// Root returns a logger without context.
func Root() Logger {
	return &logger{}
}

func (l *logger) With(ctx ...any) Logger {
	return &logger{ctx: l.merge(ctx)}
}

func (l *logger) merge(ctx []any) []any {
	if len(l.ctx) == 0 {
		return ctx
	}
	merged := make([]any, 0, len(l.ctx)+len(ctx))
	return append(append(merged, l.ctx...), ctx...)
}

func (l *logger) write(level slog.Level, msg string, ctx []any) {
	ethlog.Root().Log(level, msg, l.merge(ctx)...)
}

func (l *logger) Trace(msg string, ctx ...any) { l.write(LevelTrace, msg, ctx) }
func (l *logger) Debug(msg string, ctx ...any) { l.write(LevelDebug, msg, ctx) }
func (l *logger) Info(msg string, ctx ...any)  { l.write(LevelInfo, msg, ctx) }
func (l *logger) Warn(msg string, ctx ...any)  { l.write(LevelWarn, msg, ctx) }
func (l *logger) Error(msg string, ctx ...any) { l.write(LevelError, msg, ctx) }

func (l *logger) Crit(msg string, ctx ...any) {
	l.write(LevelCrit, msg, ctx)
	os.Exit(1)
}

// SetDefault installs h as the root handler.
func SetDefault(h slog.Handler) {
	ethlog.SetDefault(ethlog.NewLogger(h))
}

// FromLegacyLevel converts a 0-5 verbosity into a slog level.
func FromLegacyLevel(lvl int) slog.Level {
	return ethlog.FromLegacyLevel(lvl)
}

// NewTerminalHandler returns a human readable handler filtering below level.
func NewTerminalHandler(w io.Writer, level slog.Level, useColor bool) slog.Handler {
	return ethlog.NewTerminalHandlerWithLevel(w, level, useColor)
}

// NewJSONHandler returns a JSON handler filtering below level.
func NewJSONHandler(w io.Writer, level slog.Level) slog.Handler {
	return ethlog.JSONHandlerWithLevel(w, level)
}

// DiscardHandler drops all records.
func DiscardHandler() slog.Handler {
	return ethlog.DiscardHandler()
}

type levelHandler struct {
	level slog.Leveler
	inner slog.Handler
}

// NewLevelHandler filters the records of h below level, which may change
// at runtime when it is a *slog.LevelVar.
func NewLevelHandler(level slog.Leveler, h slog.Handler) slog.Handler {
	return &levelHandler{level, h}
}

func (h *levelHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return l >= h.level.Level() && h.inner.Enabled(ctx, l)
}

func (h *levelHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.inner.Handle(ctx, r)
}

func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelHandler{h.level, h.inner.WithAttrs(attrs)}
}

func (h *levelHandler) WithGroup(name string) slog.Handler {
	return &levelHandler{h.level, h.inner.WithGroup(name)}
}
