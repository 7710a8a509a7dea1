// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/easyconvert/internal/meta"
)

type deleteResult struct {
	Deleted []string `json:"deleted" yaml:"deleted"`
	Missing []string `json:"missing" yaml:"missing"`
}

// CacheDeleteCommandAction removes the named keys. Keys that do not exist are
// reported, not treated as errors.
func CacheDeleteCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", cmd.Args().Slice())

	keys := cmd.Args().Slice()
	if len(keys) == 0 {
		return fmt.Errorf("%s: expected at least one key argument", cmd.Name)
	}

	client, err := openAdmin(ctx, m)
	if err != nil {
		return err
	}
	defer client.Close()

	res := deleteResult{Deleted: []string{}, Missing: []string{}}
	for _, k := range keys {
		existed, err := client.Delete(ctx, k)
		if err != nil {
			return err
		}
		if existed {
			res.Deleted = append(res.Deleted, k)
		} else {
			res.Missing = append(res.Missing, k)
		}
	}

	return emit(cmd, m, res, func(w io.Writer) error {
		for _, k := range res.Deleted {
			if _, err := fmt.Fprintf(w, "deleted %s\n", k); err != nil {
				return err
			}
		}
		for _, k := range res.Missing {
			if _, err := fmt.Fprintf(w, "not found %s\n", k); err != nil {
				return err
			}
		}
		return nil
	})
}

// CacheDeleteCommandBuilder constructs the cli.Command for "cache-delete".
func CacheDeleteCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "cache-delete",
		Usage:     "remove individual keys from the cache",
		UsageText: "easyconvert cache-delete <key>... [options]",
		ArgsUsage: "<key>...",
		Action:    CacheDeleteCommandAction,
		Meta:      meta,
	}).Build()
}
