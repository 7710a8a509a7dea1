// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"sort"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/easyconvert/internal/meta"
)

// InitApp builds the command tree. m carries the loaded configuration and the
// writers every command prints to.
func InitApp(ctx context.Context, m meta.Meta) (*cli.Command, error) {
	if m.Context == nil {
		m.Context = ctx
	}

	app := &cli.Command{
		Name:      "easyconvert",
		Usage:     "Roman and Arabic numeral converter with a Redis cache",
		Writer:    stdout(m),
		ErrWriter: stderr(m),
		Flags: []cli.Flag{
			newDebugFlag(),
			newVersionFlag(),
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if c.Bool("debug") {
				log.SetLevel(log.DebugLevel)
			}
			return ctx, nil
		},
	}

	app.Commands = append(app.Commands,
		RomanCommandBuilder(app, m),
		ArabicCommandBuilder(app, m),
		CacheStatusCommandBuilder(app, m),
		CacheClearCommandBuilder(app, m),
		CacheKeysCommandBuilder(app, m),
		CacheDeleteCommandBuilder(app, m),
		CompletionCommandBuilder(app, m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
