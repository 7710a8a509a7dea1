// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/easyconvert/internal/command"
	"github.com/staranto/easyconvert/internal/config"
	mylog "github.com/staranto/easyconvert/internal/log"
	"github.com/staranto/easyconvert/internal/meta"
	"github.com/staranto/easyconvert/internal/version"
)

var ctx = context.Background()

// cacheCommands need the cache settings to be present and valid before they
// run.
var cacheCommands = []string{"roman", "arabic", "cache-status", "cache-clear", "cache-keys", "cache-delete"}

func main() {
	os.Exit(realMain(ctx, os.Args, os.Stdout, os.Stderr))
}

func realMain(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	mylog.InitLogger()

	if len(args) < 2 {
		fmt.Fprintln(stderr, "No command specified.")
		args = append(args, "--help")
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Fprintln(stdout, version.Version)
			return 0
		}
	}

	// The arg[1] immediately following the binary (arg[0]) is the subcommand
	// and also represents the namespace key to be used when retrieving config
	// values. arg[1] could be -h/--help, so ignore it if it appears to be a
	// flag.
	ns := subcommand(args)

	cfg, err := config.Load(ns)
	if err != nil && !errors.Is(err, config.ErrNoConfigFile) {
		fmt.Fprintln(stderr, err)
		return 1
	}
	log.Debugf("config source: %q", cfg.Source)

	m := meta.Meta{
		Args:    args,
		Config:  cfg,
		Context: ctx,
		Stdout:  stdout,
		Stderr:  stderr,
	}

	if slices.Contains(cacheCommands, ns) && !helpRequested(args) {
		cc, err := config.LoadCache(cfg)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		log.Debugf("cache: %s", cc)
		m.Cache = cc
	}

	app, err := command.InitApp(ctx, m)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	return 0
}

// subcommand returns the first non-flag argument, skipping the root flags.
func subcommand(args []string) string {
	for _, a := range args[1:] {
		if !strings.HasPrefix(a, "-") {
			return a
		}
	}
	return ""
}

func helpRequested(args []string) bool {
	for _, a := range args[1:] {
		if a == "--help" || a == "-h" {
			return true
		}
	}
	return false
}
