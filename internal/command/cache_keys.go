// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/easyconvert/internal/meta"
	"github.com/staranto/easyconvert/internal/output"
)

type keyEntry struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

type keyListing struct {
	Total int        `json:"total" yaml:"total"`
	Keys  []keyEntry `json:"keys" yaml:"keys"`
}

// CacheKeysCommandAction lists cached keys, optionally with their values.
func CacheKeysCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", cmd.Args().Slice())

	client, err := openAdmin(ctx, m)
	if err != nil {
		return err
	}
	defer client.Close()

	keys, err := client.Keys(ctx, cmd.String("pattern"))
	if err != nil {
		return err
	}
	total := len(keys)

	if cmd.Bool("sort") {
		sort.Strings(keys)
	}
	if limit := cmd.Int("limit"); limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}

	listing := keyListing{Total: total, Keys: make([]keyEntry, 0, len(keys))}
	withValues := cmd.Bool("values")

	var values map[string]string
	if withValues {
		if values, err = client.Values(ctx, keys); err != nil {
			return err
		}
	}

	for _, k := range keys {
		e := keyEntry{Key: k}
		if withValues {
			v, ok := values[k]
			if !ok {
				// Expired or removed between SCAN and MGET.
				continue
			}
			e.Value = v
		}
		listing.Keys = append(listing.Keys, e)
	}

	return emit(cmd, m, listing, func(w io.Writer) error {
		return writeKeys(w, cmd, m, listing, withValues)
	})
}

func writeKeys(w io.Writer, cmd *cli.Command, m meta.Meta, listing keyListing, withValues bool) error {
	if len(listing.Keys) == 0 {
		_, err := fmt.Fprintln(w, "no keys")
		return err
	}

	if withValues {
		rows := make([][]string, 0, len(listing.Keys))
		for _, e := range listing.Keys {
			rows = append(rows, []string{e.Key, e.Value})
		}
		opts := output.NewTableOptions(m.Config, output.ColorEnabled(cmd.Bool("color"), w), cmd.Bool("titles"))
		if err := output.TableWriter(w, []string{"KEY", "VALUE"}, rows, opts); err != nil {
			return err
		}
	} else {
		for _, e := range listing.Keys {
			if _, err := fmt.Fprintln(w, e.Key); err != nil {
				return err
			}
		}
	}

	if shown := len(listing.Keys); shown < listing.Total {
		if _, err := fmt.Fprintf(stderr(m), "showing %d of %d keys\n", shown, listing.Total); err != nil {
			return err
		}
	}
	return nil
}

// CacheKeysCommandBuilder constructs the cli.Command for "cache-keys".
func CacheKeysCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "cache-keys",
		Usage:     "list keys held in the cache",
		UsageText: "easyconvert cache-keys [options]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "show at most this many keys (0 for all)",
				Sources: configChain(meta.Config.Source, "cache-keys", "limit"),
				Value:   0,
				Validator: func(value int) error {
					return FlagValidators(value, NonNegativeValidator)
				},
			},
			&cli.StringFlag{
				Name:    "pattern",
				Aliases: []string{"p"},
				Usage:   "glob pattern keys must match, e.g. 'roman:*'",
				Value:   "*",
				Validator: func(value string) error {
					return FlagValidators(value, JammedFlagValidator)
				},
			},
			&cli.BoolFlag{
				Name:    "sort",
				Aliases: []string{"s"},
				Usage:   "sort keys alphabetically",
				Sources: configChain(meta.Config.Source, "cache-keys", "sort"),
				Value:   false,
			},
			&cli.BoolFlag{
				Name:    "values",
				Usage:   "include the cached value of each key",
				Sources: configChain(meta.Config.Source, "cache-keys", "values"),
				Value:   false,
			},
		},
		Action: CacheKeysCommandAction,
		Meta:   meta,
	}).Build()
}
