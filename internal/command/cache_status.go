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

	"github.com/staranto/easyconvert/internal/cache"
	"github.com/staranto/easyconvert/internal/meta"
	"github.com/staranto/easyconvert/internal/output"
)

// CacheStatusCommandAction reports whether the cache answers and how many
// entries it holds. An unreachable cache is a result, not an error.
func CacheStatusCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", cmd.Args().Slice())

	var st cache.Status
	if m.Cache.Enabled {
		client := cache.New(m.Cache)
		defer client.Close()
		st = client.Status(ctx)
	} else {
		st = cache.Status{Error: ErrCacheDisabled.Error()}
	}

	return emit(cmd, m, st, func(w io.Writer) error {
		return writeStatus(w, st)
	})
}

func writeStatus(w io.Writer, st cache.Status) error {
	lines := [][2]string{
		{"reachable", output.InterfaceToString(st.Reachable, "false")},
	}
	if st.Addr != "" {
		lines = append(lines,
			[2]string{"addr", st.Addr},
			[2]string{"db", output.InterfaceToString(st.DB, "0")},
		)
	}
	if st.Reachable {
		lines = append(lines, [2]string{"entries", humanize.Comma(st.Entries)})
		if st.Version != "" {
			lines = append(lines, [2]string{"version", st.Version})
		}
		if st.UsedMemory > 0 {
			lines = append(lines, [2]string{"memory", humanize.Bytes(st.UsedMemory)})
		}
	}
	if st.Error != "" {
		lines = append(lines, [2]string{"error", st.Error})
	}

	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%s: %s\n", l[0], l[1]); err != nil {
			return err
		}
	}
	return nil
}

// CacheStatusCommandBuilder constructs the cli.Command for "cache-status".
func CacheStatusCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "cache-status",
		Usage:     "report cache reachability and entry count",
		UsageText: "easyconvert cache-status [options]",
		Action:    CacheStatusCommandAction,
		Meta:      meta,
	}).Build()
}
