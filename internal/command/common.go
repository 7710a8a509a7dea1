// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/easyconvert/internal/cache"
	"github.com/staranto/easyconvert/internal/convert"
	"github.com/staranto/easyconvert/internal/meta"
	"github.com/staranto/easyconvert/internal/output"
)

// ErrCacheDisabled is returned by the cache management commands when
// CACHE_ENABLED turns caching off.
var ErrCacheDisabled = errors.New("caching is disabled (CACHE_ENABLED)")

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// CommandBuilder constructs a cli.Command for the subcommands using a
// consistent pattern. The builder wires metadata, appends the global flags
// and sets up the shared validator.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	ArgsUsage string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (cb *CommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      cb.Name,
		Usage:     cb.Usage,
		UsageText: cb.UsageText,
		ArgsUsage: cb.ArgsUsage,
		Metadata: map[string]any{
			"meta": cb.Meta,
		},
		Flags: append(cb.Flags, NewGlobalFlags(cb.Name, cb.Meta.Config.Source)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: cb.Action,
	}
}

func stdout(m meta.Meta) io.Writer {
	if m.Stdout != nil {
		return m.Stdout
	}
	return os.Stdout
}

func stderr(m meta.Meta) io.Writer {
	if m.Stderr != nil {
		return m.Stderr
	}
	return os.Stderr
}

// singleArg returns the one positional argument a conversion takes.
func singleArg(cmd *cli.Command, what string) (string, error) {
	if cmd.NArg() != 1 {
		return "", fmt.Errorf("%s: expected exactly one %s argument, got %d", cmd.Name, what, cmd.NArg())
	}
	return cmd.Args().First(), nil
}

// openStore connects the cache for a conversion. A store that cannot be
// reached yields a warning and a nil Store, so the conversion runs uncached.
// The returned func releases the connection.
func openStore(ctx context.Context, m meta.Meta) (convert.Store, func()) {
	if !m.Cache.Enabled {
		log.Debug("cache disabled, converting without cache")
		return nil, func() {}
	}

	client, err := cache.Connect(ctx, m.Cache)
	if err != nil {
		fmt.Fprintf(stderr(m), "warning: %v; continuing without cache\n", err)
		return nil, func() {}
	}

	return client, func() {
		if err := client.Close(); err != nil {
			log.WithError(err).Debug("cache close")
		}
	}
}

// openAdmin connects the cache for a management command. Unlike conversions
// there is nothing to fall back to, so failure is an error.
func openAdmin(ctx context.Context, m meta.Meta) (*cache.Client, error) {
	if !m.Cache.Enabled {
		return nil, ErrCacheDisabled
	}
	return cache.Connect(ctx, m.Cache)
}

// emit renders v according to --output and --query.
func emit(cmd *cli.Command, m meta.Meta, v any, text output.TextFunc) error {
	return output.Emit(stdout(m), cmd.String("output"), cmd.String("query"), v, text)
}

// reportStats warns when the cache failed mid-conversion and, with --stats,
// prints the service counters. Both go to stderr.
func reportStats(cmd *cli.Command, m meta.Meta, svc *convert.Service) {
	st := svc.Stats()
	warnDegraded(stderr(m), st)
	if !cmd.Bool("stats") {
		return
	}
	fmt.Fprintf(stderr(m), "cache: hits=%d misses=%d errors=%d computed=%d\n",
		st.Hits, st.Misses, st.CacheErrors, st.Computed)
}

// warnDegraded surfaces cache failures regardless of the log level.
func warnDegraded(w io.Writer, st convert.Stats) {
	if st.CacheErrors == 0 {
		return
	}
	fmt.Fprintf(w, "warning: %d cache %s failed; continuing without cache\n",
		st.CacheErrors, plural(int64(st.CacheErrors), "operation", "operations"))
}
