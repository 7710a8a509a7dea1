// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/easyconvert/internal/convert"
	"github.com/staranto/easyconvert/internal/meta"
)

// ArabicCommandAction is the action handler for the "arabic" subcommand. It
// converts one Roman numeral to an integer through the cache.
func ArabicCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", cmd.Args().Slice())

	arg, err := singleArg(cmd, "numeral")
	if err != nil {
		return err
	}

	store, done := openStore(ctx, m)
	defer done()

	svc := convert.New(store)
	res, err := svc.ToArabic(ctx, arg)
	if err != nil {
		return err
	}

	if err := emit(cmd, m, res, resultText(res)); err != nil {
		return err
	}
	reportStats(cmd, m, svc)
	return nil
}

// ArabicCommandBuilder constructs the cli.Command for "arabic".
func ArabicCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "arabic",
		Usage:     "convert a Roman numeral (I-MMMCMXCIX) to an integer",
		UsageText: "easyconvert arabic <numeral> [options]",
		ArgsUsage: "<numeral>",
		Flags:     []cli.Flag{newStatsFlag()},
		Action:    ArabicCommandAction,
		Meta:      meta,
	}).Build()
}
