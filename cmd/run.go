package cmd

import (
	"github.com/k1LoW/git-hooks/internal/hook"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <hook> [-- args...]",
	Short: "Run a hook",
	Long: `Run the hook named <hook> with the given arguments.

A missing hook succeeds. A failing hook's stdout and stderr are printed
verbatim and git-hooks exits with the hook's exit code.`,
	Example: `  git hooks run pre-commit
  git hooks run commit-msg -- .git/COMMIT_EDITMSG`,
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completeHookNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepo(cmd)
		if err != nil {
			return err
		}
		res, err := hook.RunHook(cmd.Context(), repo, cfg.SearchPaths, args[0], args[1:]...)
		if err != nil {
			return err
		}
		return resultError(cmd, res, false)
	},
}
