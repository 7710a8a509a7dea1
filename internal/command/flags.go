// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

func newDebugFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "debug",
		Usage:       "enable debug logging",
		HideDefault: true,
	}
}

func newVersionFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "version",
		Aliases:     []string{"v"},
		Usage:       "easyconvert version info",
		HideDefault: true,
	}
}

func newStatsFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "stats",
		Usage:       "print cache hit/miss counters to stderr",
		HideDefault: true,
	}
}

// NewGlobalFlags returns the flags shared by every subcommand. params[0] is
// the subcommand name, used as the config namespace. params[1], when present,
// is the config file whose values become flag defaults.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	ns, path := "", ""
	if len(params) > 0 {
		ns = params[0]
	}
	if len(params) > 1 {
		path = params[1]
	}

	flags = []cli.Flag{
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: configChain(path, ns, "color"),
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, json, yaml)",
			Sources: envThenConfig("EASYCONVERT_OUTPUT", path, ns, "output"),
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "query",
			Aliases: []string{"q"},
			Usage:   "gjson path selecting part of the structured result",
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with table output",
			Sources: configChain(path, ns, "titles"),
			Value:   false,
		},
	}

	return
}

// configChain looks key up first under the ns namespace and then at the top
// level of the config file. No file means no sources.
func configChain(path, ns, key string) cli.ValueSourceChain {
	chain := cli.NewValueSourceChain()
	if path == "" {
		return chain
	}
	if ns != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(ns+"."+key, altsrc.StringSourcer(path)))
	}
	chain.Chain = append(chain.Chain, yaml.YAML(key, altsrc.StringSourcer(path)))
	return chain
}

// envThenConfig prefers the environment variable over the config file.
func envThenConfig(env, path, ns, key string) cli.ValueSourceChain {
	chain := configChain(path, ns, key)
	chain.Chain = append([]cli.ValueSource{cli.EnvVar(env)}, chain.Chain...)
	return chain
}
