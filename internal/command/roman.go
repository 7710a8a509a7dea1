// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/easyconvert/internal/convert"
	"github.com/staranto/easyconvert/internal/meta"
	"github.com/staranto/easyconvert/internal/numeral"
	"github.com/staranto/easyconvert/internal/output"
)

// RomanCommandAction is the action handler for the "roman" subcommand. It
// converts one integer to a Roman numeral through the cache.
func RomanCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", cmd.Args().Slice())

	arg, err := singleArg(cmd, "integer")
	if err != nil {
		return err
	}

	n, err := parseInteger(arg)
	if err != nil {
		return err
	}

	store, done := openStore(ctx, m)
	defer done()

	svc := convert.New(store)
	res, err := svc.ToRoman(ctx, n)
	if err != nil {
		return err
	}

	if err := emit(cmd, m, res, resultText(res)); err != nil {
		return err
	}
	reportStats(cmd, m, svc)
	return nil
}

// RomanCommandBuilder constructs the cli.Command for "roman", wiring
// metadata, flags, and action/validator handlers.
func RomanCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "roman",
		Usage:     "convert an integer (1-3999) to a Roman numeral",
		UsageText: "easyconvert roman [options] [--] <integer>",
		ArgsUsage: "<integer>",
		Flags:     []cli.Flag{newStatsFlag()},
		Action:    RomanCommandAction,
		Meta:      meta,
	}).Build()
}

// parseInteger reads the roman argument. Values too large for an int are
// reported as out of range rather than as malformed.
func parseInteger(arg string) (int, error) {
	s := strings.TrimSpace(arg)
	n, err := strconv.Atoi(s)
	if errors.Is(err, strconv.ErrRange) {
		return 0, &numeral.RangeError{Value: n, Input: s}
	}
	if err != nil {
		return 0, fmt.Errorf("roman: %q is not an integer", arg)
	}
	return n, nil
}

// resultText prints just the converted value.
func resultText(res convert.Result) output.TextFunc {
	return func(w io.Writer) error {
		_, err := fmt.Fprintln(w, res.Output)
		return err
	}
}
