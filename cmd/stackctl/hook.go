package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// bashHook wires the DEBUG trap and PROMPT_COMMAND so every
// interactive command produces a START/END pair. Event ids come from
// the nanosecond clock so concurrent shells never collide.
const bashHook = `# waitris shell hook (bash). Add to ~/.bashrc:
#   eval "$(stackctl hook bash)"
_waitris_pending=""
_waitris_preexec() {
    [ -n "$COMP_LINE" ] && return
    case "$BASH_COMMAND" in
    "$PROMPT_COMMAND" | _waitris_*) return ;;
    esac
    _waitris_pending=$(date +%%s%%N)
    command stackctl feed --socket %q start "$_waitris_pending" "$BASH_COMMAND" >/dev/null 2>&1 &
}
_waitris_precmd() {
    local code=$?
    if [ -n "$_waitris_pending" ]; then
        command stackctl feed --socket %q end "$_waitris_pending" "$code" >/dev/null 2>&1 &
        _waitris_pending=""
    fi
}
trap '_waitris_preexec' DEBUG
PROMPT_COMMAND="_waitris_precmd${PROMPT_COMMAND:+;$PROMPT_COMMAND}"
`

const zshHook = `# waitris shell hook (zsh). Add to ~/.zshrc:
#   eval "$(stackctl hook zsh)"
_waitris_pending=""
_waitris_preexec() {
    _waitris_pending=$(date +%%s%%N)
    command stackctl feed --socket %q start "$_waitris_pending" "$1" >/dev/null 2>&1 &!
}
_waitris_precmd() {
    local code=$?
    if [ -n "$_waitris_pending" ]; then
        command stackctl feed --socket %q end "$_waitris_pending" "$code" >/dev/null 2>&1 &!
        _waitris_pending=""
    fi
}
autoload -Uz add-zsh-hook
add-zsh-hook preexec _waitris_preexec
add-zsh-hook precmd _waitris_precmd
`

func newHookCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "hook {bash|zsh}",
		Short:     "Print shell integration that feeds your commands into the game",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				fmt.Printf(bashHook, socketPath, socketPath)
			case "zsh":
				fmt.Printf(zshHook, socketPath, socketPath)
			default:
				return fmt.Errorf("unsupported shell %q", args[0])
			}
			return nil
		},
	}
}
