// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
	"github.com/urfave/cli/v3"

	"github.com/staranto/easyconvert/internal/command"
	"github.com/staranto/easyconvert/internal/meta"
)

// Minimal doc generator. Walks the command tree and generates:
//   - docs/commands/<cmd>.md, the canonical command doc
//   - docs/man/share/man1/easyconvert-<cmd>.1 via md2man
//   - docs/tldr/easyconvert-<cmd>.md from the short description and examples

type example struct {
	Desc string
	Cmd  string
}

var examples = map[string][]example{
	"roman": {
		{"Convert an integer", "easyconvert roman 1994"},
		{"Convert and show cache counters", "easyconvert roman 10 --stats"},
		{"Print the full result as JSON", "easyconvert roman 42 --output json"},
	},
	"arabic": {
		{"Convert a numeral", "easyconvert arabic MCMXCIV"},
		{"Input is case-insensitive", "easyconvert arabic xiv"},
		{"Print only the value", "easyconvert arabic CCXXXIV --query value"},
	},
	"cache-status": {
		{"Check the cache", "easyconvert cache-status"},
		{"Print the entry count", "easyconvert cache-status --query entry_count"},
	},
	"cache-clear": {
		{"Remove every cached conversion", "easyconvert cache-clear"},
	},
	"cache-keys": {
		{"List cached keys", "easyconvert cache-keys --sort"},
		{"List Roman conversions with values", "easyconvert cache-keys --pattern 'roman:*' --values --titles"},
	},
	"cache-delete": {
		{"Forget one cached conversion", "easyconvert cache-delete roman:10"},
	},
	"completion": {
		{"Install bash completion", "easyconvert completion bash > /etc/bash_completion.d/easyconvert"},
	},
}

func main() {
	var (
		repoRoot           string
		writeOnlyIfChanged bool
	)

	flag.StringVar(&repoRoot, "root", ".", "repo root (default current dir)")
	flag.BoolVar(&writeOnlyIfChanged, "only-if-changed", true, "only write files if content changed")
	flag.Parse()

	commandsDir := filepath.Join(repoRoot, "docs", "commands")
	manOutDir := filepath.Join(repoRoot, "docs", "man", "share", "man1")
	tldrOutDir := filepath.Join(repoRoot, "docs", "tldr")

	for _, d := range []string{commandsDir, manOutDir, tldrOutDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			fatalf("creating output dir %s: %v", d, err)
		}
	}

	app, err := command.InitApp(context.Background(), meta.Meta{})
	if err != nil {
		fatalf("building command tree: %v", err)
	}

	var processed int
	for _, c := range app.Commands {
		md := buildMarkdown(c, examples[c.Name])

		mdPath := filepath.Join(commandsDir, c.Name+".md")
		if err := writeFileIfChanged(mdPath, []byte(md), writeOnlyIfChanged); err != nil {
			fatalf("writing markdown for %s: %v", c.Name, err)
		}

		manPath := filepath.Join(manOutDir, fmt.Sprintf("easyconvert-%s.1", c.Name))
		if err := writeFileIfChanged(manPath, md2man.Render([]byte(md)), writeOnlyIfChanged); err != nil {
			fatalf("writing man page for %s: %v", c.Name, err)
		}

		tldrPath := filepath.Join(tldrOutDir, fmt.Sprintf("easyconvert-%s.md", c.Name))
		if err := writeFileIfChanged(tldrPath, []byte(buildTLDR(c.Name, c.Usage, examples[c.Name])), writeOnlyIfChanged); err != nil {
			fatalf("writing TLDR for %s: %v", c.Name, err)
		}

		processed++
	}

	if processed == 0 {
		fatalf("no commands found")
	}
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}

func writeFileIfChanged(path string, new []byte, onlyIfChanged bool) error {
	if !onlyIfChanged {
		return os.WriteFile(path, new, 0o644)
	}
	old, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return os.WriteFile(path, new, 0o644)
		}
		return err
	}
	if bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(new)) {
		return nil
	}
	return os.WriteFile(path, new, 0o644)
}

// usageFlag is the part of a cli flag the docs need.
type usageFlag interface {
	GetUsage() string
	TakesValue() bool
}

func buildMarkdown(c *cli.Command, exs []example) string {
	var b strings.Builder

	b.WriteString("# easyconvert-" + c.Name + " 1\n\n")
	b.WriteString("## NAME\n\n")
	b.WriteString("easyconvert-" + c.Name + " - " + c.Usage + "\n\n")

	b.WriteString("## SYNOPSIS\n\n")
	usage := c.UsageText
	if usage == "" {
		usage = "easyconvert " + c.Name
	}
	b.WriteString("`" + usage + "`\n\n")

	if len(c.Flags) > 0 {
		b.WriteString("## OPTIONS\n\n")
		for _, f := range c.Flags {
			names := append([]string(nil), f.Names()...)
			for i, n := range names {
				if len(n) == 1 {
					names[i] = "-" + n
				} else {
					names[i] = "--" + n
				}
			}
			line := strings.Join(names, ", ")
			if uf, ok := f.(usageFlag); ok {
				if uf.TakesValue() {
					line += " value"
				}
				line = "**" + line + "**\n: " + uf.GetUsage()
			} else {
				line = "**" + line + "**"
			}
			b.WriteString(line + "\n\n")
		}
	}

	if len(exs) > 0 {
		b.WriteString("## EXAMPLES\n\n")
		for _, ex := range exs {
			b.WriteString(ex.Desc + ":\n\n")
			b.WriteString("    " + ex.Cmd + "\n\n")
		}
	}

	b.WriteString("## ENVIRONMENT\n\n")
	b.WriteString("CACHE_HOST, CACHE_PORT, CACHE_DB\n: Redis location, required unless CACHE_ENABLED is false.\n\n")
	b.WriteString("EASYCONVERT_CFG\n: Path of the YAML config file.\n\n")
	b.WriteString("EASYCONVERT_LOG\n: Log level (debug, info, warn, error).\n")

	return b.String()
}

func buildTLDR(cmd, short string, exs []example) string {
	var b strings.Builder
	// Header
	b.WriteString("# easyconvert-" + cmd + "\n\n")
	if short != "" {
		b.WriteString("> " + strings.ToUpper(short[:1]) + short[1:] + ".\n")
	} else {
		b.WriteString("> easyconvert " + cmd + "\n")
	}
	b.WriteString("> More information: https://github.com/staranto/easyconvert.\n\n")

	if len(exs) == 0 {
		// Fallback examples
		b.WriteString("- Show help for the command:\n\n")
		b.WriteString("`easyconvert " + cmd + " --help`\n")
		return b.String()
	}

	for i, ex := range exs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + strings.TrimSpace(ex.Desc) + ":\n\n")
		b.WriteString("`" + sanitizeCommand(ex.Cmd) + "`\n")
	}
	return b.String()
}

func sanitizeCommand(s string) string {
	// Compress runs of whitespace
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
