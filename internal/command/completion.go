// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/deploygen/deploygen/internal/meta"
)

const bashCompletionScript = `# bash completion for deploygen
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_deploygen()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "generate tokens diff validate completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}

    # Determine if an optional RootDir (first non-flag after subcommand) has
    # already been provided
    local have_rootdir=0
    local idx=2
    while [[ $idx -lt ${#COMP_WORDS[@]} ]]; do
        local w=${COMP_WORDS[$idx]}
        if [[ $w != -* ]]; then
            have_rootdir=1
            break
        fi
        ((idx++))
    done

    case "$cmd" in
        generate|gen)
            local opts="--app-type -T --artifacts -A --deploy-name -d --image -i --output -o --templates --nuget-key --schema --dump-schema --aws-profile --aws-region --yes -y --tldr"
            ;;
        tokens|tq)
            local opts="--attrs -a --color -c --filter -f --output -o --sort -s --titles -t --mode -m --style --exceptions -x --schema --dump-schema --tldr"
            ;;
        diff)
            local opts="--color -c --ignore --quiet -q --schema --tldr"
            ;;
        validate)
            local opts="--app-type -T --nuget-key --schema"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts=""
            ;;
    esac

    case "$prev" in
        --app-type|-T)
            COMPREPLY=( $(compgen -W "api consumer cronjob" -- "$cur") )
            return 0
            ;;
        --artifacts|-A)
            COMPREPLY=( $(compgen -W "all docker-settings online-settings k8sdeploy onlinedeploy dockerfile dockerfile-online sheet" -- "$cur") )
            return 0
            ;;
        --mode|-m)
            COMPREPLY=( $(compgen -W "raw tokenized" -- "$cur") )
            return 0
            ;;
        --style)
            COMPREPLY=( $(compgen -W "underscore dollar" -- "$cur") )
            return 0
            ;;
    esac

    if [[ ( "$cmd" == "tokens" || "$cmd" == "tq" ) && ( "$prev" == "--output" || "$prev" == "-o" ) ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

    # If current token starts with '-', or we've already consumed RootDir, offer flags
    if [[ "$cur" == -* || $have_rootdir -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Otherwise, we're on the (optional) RootDir positional, complete directories
    COMPREPLY=( $(compgen -o dirnames -- "$cur") )
    return 0
}

complete -F _deploygen deploygen
`

const zshCompletionScript = `#compdef deploygen

_deploygen() {
  local -a cmds
  cmds=(
    'generate:generate deploy artifacts'
    'tokens:token query'
    'diff:check appsettings.Docker.json for drift'
    'validate:check the solution and its configuration'
    'completion:generate shell completion script'
  )

  local -a listing
  listing=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'deploygen commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    generate|gen)
      _arguments -C \
        '(-T --app-type)'{-T,--app-type}'[application type]:type:(api consumer cronjob)' \
        '(-A --artifacts)'{-A,--artifacts}'[artifacts to generate]:artifacts:(all docker-settings online-settings k8sdeploy onlinedeploy dockerfile dockerfile-online sheet)' \
        '(-d --deploy-name)'{-d,--deploy-name}'[deploy name]:name' \
        '(-i --image)'{-i,--image}'[image name]:image' \
        '(-o --output)'{-o,--output}'[destination]:dir:_directories' \
        '--templates[template directory]:dir:_directories' \
        '--nuget-key[package source key]:key' \
        '--schema[policy schema file]:file:_files' \
        '--dump-schema[dump schema]' \
        '--aws-profile[aws profile]:profile' \
        '--aws-region[aws region]:region' \
        '(-y --yes)'{-y,--yes}'[never prompt]' \
        '::RootDir:_directories'
      ;;
    tokens|tq)
      _arguments -C \
        $listing \
        '(-m --mode)'{-m,--mode}'[token mode]:mode:(raw tokenized)' \
        '--style[placeholder style]:style:(underscore dollar)' \
        '(-x --exceptions)'{-x,--exceptions}'[include spreadsheet exceptions]' \
        '--schema[policy schema file]:file:_files' \
        '--dump-schema[dump schema]' \
        '::RootDir:_directories'
      ;;
    diff)
      _arguments -C \
        '(-c --color)'{-c,--color}'[enable colored diff]' \
        '--ignore[keys to ignore]:keys' \
        '(-q --quiet)'{-q,--quiet}'[exit code only]' \
        '--schema[policy schema file]:file:_files' \
        '::RootDir:_directories'
      ;;
    validate)
      _arguments -C \
        '(-T --app-type)'{-T,--app-type}'[application type]:type:(api consumer cronjob)' \
        '--nuget-key[package source key]:key' \
        '--schema[policy schema file]:file:_files' \
        '::RootDir:_directories'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C '*:directory:_directories'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _deploygen deploygen
`

// writeCompletion writes the script for shell, detected from $SHELL when
// empty. It reports false when the shell is not supported.
func writeCompletion(w io.Writer, shell string) bool {
	if shell == "" {
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		return false
	}
	return true
}

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	if !writeCompletion(os.Stdout, cmd.Args().First()) {
		fmt.Fprintln(os.Stderr, "usage: deploygen completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "deploygen completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
