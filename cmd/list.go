package cmd

import (
	"errors"
	"io/fs"
	"os"

	"github.com/k1LoW/git-hooks/internal/hook"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

const (
	statusFound         = "found"
	statusNotExecutable = "not executable"
	statusMissing       = "missing"
)

var listAll bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List hooks and where they resolve",
	Long:  `List the githooks(5) hooks that have a script, with their resolved paths.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		repo, err := openRepo(cmd)
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.Header("HOOK", "STATUS", "PATH")
		for _, name := range hook.Known {
			loc, err := hook.Resolve(repo, cfg.SearchPaths, name)
			if err != nil {
				return err
			}
			status, err := hookStatus(loc)
			if err != nil {
				return err
			}
			if status == statusMissing && !listAll {
				continue
			}
			if err := table.Append([]string{name, status, loc.Path}); err != nil {
				return err
			}
		}
		return table.Render()
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "include hooks that have no script")
}

func hookStatus(loc *hook.Location) (string, error) {
	if loc.Found() {
		return statusFound, nil
	}
	if _, err := os.Stat(loc.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return statusMissing, nil
		}
		return "", err
	}
	return statusNotExecutable, nil
}
