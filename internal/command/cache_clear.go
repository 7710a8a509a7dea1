// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/staranto/easyconvert/internal/meta"
)

type clearResult struct {
	Addr    string `json:"addr" yaml:"addr"`
	DB      int    `json:"db" yaml:"db"`
	Removed int64  `json:"removed" yaml:"removed"`
}

// CacheClearCommandAction flushes the configured logical database.
func CacheClearCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", cmd.Args().Slice())

	client, err := openAdmin(ctx, m)
	if err != nil {
		return err
	}
	defer client.Close()

	// The count is informational; it can race with other writers.
	n, err := client.Count(ctx)
	if err != nil {
		return err
	}
	if err := client.DeleteAll(ctx); err != nil {
		return err
	}

	res := clearResult{Addr: m.Cache.Addr(), DB: m.Cache.DB, Removed: n}
	return emit(cmd, m, res, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "cache cleared: %s %s removed from %s db %d\n",
			humanize.Comma(n), plural(n, "entry", "entries"), res.Addr, res.DB)
		return err
	})
}

func plural(n int64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// CacheClearCommandBuilder constructs the cli.Command for "cache-clear".
func CacheClearCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "cache-clear",
		Usage:     "remove every entry from the configured cache database",
		UsageText: "easyconvert cache-clear [options]",
		Action:    CacheClearCommandAction,
		Meta:      meta,
	}).Build()
}
