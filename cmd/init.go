package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const bashHook = `
# git-hooks completion for "git hooks" (git-completion.bash calls _git_hooks)
_git_hooks() {
    local cur="${COMP_WORDS[COMP_CWORD]}"
    local completions
    completions=$(git-hooks __complete "${COMP_WORDS[@]:2:COMP_CWORD-2}" "$cur" 2>/dev/null | grep -v '^:' | cut -f1)
    COMPREPLY=($(compgen -W "$completions" -- "$cur"))
}
`

const zshHook = `
# git-hooks completion for "git hooks" (_git dispatches to _git-hooks)
_git-hooks() {
    local -a completions
    completions=(${(f)"$(git-hooks __complete "${(@)words[3,CURRENT-1]}" "${words[CURRENT]}" 2>/dev/null | grep -v '^:' | cut -f1)"})
    compadd -a completions
}
`

const fishHook = `
# git-hooks completion for "git hooks"
function __fish_git_hooks_complete
    set -l cmd (commandline -opc)
    git-hooks __complete $cmd[3..-1] (commandline -ct) 2>/dev/null | string match -rv '^:' | string replace -r '\t.*' ''
end

complete -c git -n '__fish_seen_subcommand_from hooks' -f -a '(__fish_git_hooks_complete)'
`

const powershellHook = `
# git-hooks completion for "git hooks"
$scriptBlock = {
    param($wordToComplete, $commandAst, $cursorPosition)
    $tokens = $commandAst.ToString() -split '\s+'
    if ($tokens.Count -ge 2 -and $tokens[1] -eq "hooks") {
        $rest = @($tokens | Select-Object -Skip 2 | Where-Object { $_ -ne $wordToComplete })
        $items = git-hooks __complete @rest $wordToComplete 2>$null | Where-Object { $_ -notmatch '^:' }
        $items | ForEach-Object {
            $name = ($_ -split "` + "`t" + `")[0]
            [System.Management.Automation.CompletionResult]::new($name, $name, 'ParameterValue', $name)
        }
    }
}
Register-ArgumentCompleter -Native -CommandName git -ScriptBlock $scriptBlock
`

var initCmd = &cobra.Command{
	Use:       "init <shell>",
	Short:     "Print shell completion, including the git hooks subcommand",
	Long:      `Print completion for git-hooks and for "git hooks". Supported shells: bash, zsh, fish, powershell.`,
	Example:   `  eval "$(git-hooks init bash)"`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit(cmd, args[0])
	},
}

func runInit(cmd *cobra.Command, shell string) error {
	out := cmd.OutOrStdout()
	switch shell {
	case "bash":
		if err := cmd.Root().GenBashCompletionV2(out, true); err != nil {
			return err
		}
		fmt.Fprint(out, bashHook)
		return nil
	case "zsh":
		if err := cmd.Root().GenZshCompletion(out); err != nil {
			return err
		}
		fmt.Fprint(out, zshHook)
		return nil
	case "fish":
		if err := cmd.Root().GenFishCompletion(out, true); err != nil {
			return err
		}
		fmt.Fprint(out, fishHook)
		return nil
	case "powershell":
		if err := cmd.Root().GenPowerShellCompletionWithDesc(out); err != nil {
			return err
		}
		fmt.Fprint(out, powershellHook)
		return nil
	default:
		return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish, powershell)", shell)
	}
}
