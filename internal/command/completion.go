// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/easyconvert/internal/meta"
)

const bashCompletionScript = `# bash completion for easyconvert
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_easyconvert()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "roman arabic cache-status cache-clear cache-keys cache-delete completion --debug --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--color -c --output -o --query -q --titles -t"

    case "$cmd" in
        roman|arabic)
            local opts="$common --stats"
            ;;
        cache-keys)
            local opts="$common --limit -l --pattern -p --sort -s --values"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
        return 0
    fi

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    fi
    return 0
}

complete -F _easyconvert easyconvert
`

const zshCompletionScript = `#compdef easyconvert

_easyconvert() {
  local -a cmds
  cmds=(
    'roman:convert an integer to a Roman numeral'
    'arabic:convert a Roman numeral to an integer'
    'cache-status:report cache reachability and entry count'
    'cache-clear:remove every cached entry'
    'cache-keys:list cached keys'
    'cache-delete:remove individual cached keys'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)'
  '(-q --query)'{-q,--query}'[gjson path]:path'
  '(-t --titles)'{-t,--titles}'[show titles]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'easyconvert commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    roman)
      _arguments -C \
        $common \
        '--stats[print cache counters]' \
        '1:integer (1-3999)'
      ;;
    arabic)
      _arguments -C \
        $common \
        '--stats[print cache counters]' \
        '1:roman numeral'
      ;;
    cache-keys)
      _arguments -C \
        $common \
        '(-l --limit)'{-l,--limit}'[limit results]:limit' \
        '(-p --pattern)'{-p,--pattern}'[key pattern]:pattern' \
        '(-s --sort)'{-s,--sort}'[sort keys]' \
        '--values[include values]'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _easyconvert easyconvert
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	out := stdout(m)

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(out, bashCompletionScript)
	case "zsh":
		fmt.Fprint(out, zshCompletionScript)
	case "":
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(out, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(out, bashCompletionScript)
		} else {
			fmt.Fprintln(stderr(m), "usage: easyconvert completion [bash|zsh]")
		}
	default:
		return fmt.Errorf("completion: unsupported shell %q", shell)
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "easyconvert completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
