package cmd

import (
	"fmt"

	"github.com/k1LoW/git-hooks/internal/hook"
	"github.com/spf13/cobra"
)

var pathWorkDir bool

var pathCmd = &cobra.Command{
	Use:               "path <hook>",
	Short:             "Print the resolved path of a hook",
	Long:              `Print the path git would run for <hook>. The file may not exist.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeHookNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepo(cmd)
		if err != nil {
			return err
		}
		loc, err := hook.Resolve(repo, cfg.SearchPaths, args[0])
		if err != nil {
			return err
		}
		if pathWorkDir {
			fmt.Fprintln(cmd.OutOrStdout(), loc.WorkDir)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), loc.Path)
		return nil
	},
}

func init() {
	pathCmd.Flags().BoolVar(&pathWorkDir, "workdir", false, "print the directory the hook runs in instead")
}
