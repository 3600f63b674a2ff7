package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/k1LoW/git-hooks/internal/hook"
	"github.com/spf13/cobra"
)

var (
	msgText   string
	msgFile   string
	msgSource string
	msgCommit string
)

var commitMsgCmd = &cobra.Command{
	Use:   "commit-msg (-m <msg> | -F <file>)",
	Short: "Run the commit-msg hook on a message",
	Long: `Run the commit-msg hook on a message and print the message as the hook
left it. Hook output goes to stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		msg, err := readMessage(cmd.InOrStdin())
		if err != nil {
			return err
		}
		repo, err := openRepo(cmd)
		if err != nil {
			return err
		}
		res, err := hook.RunCommitMsg(cmd.Context(), repo, cfg.SearchPaths, &msg)
		if err != nil {
			return err
		}
		return printMessage(cmd, res, msg)
	},
}

var prepareCommitMsgCmd = &cobra.Command{
	Use:   "prepare-commit-msg [--source <source>] (-m <msg> | -F <file>)",
	Short: "Run the prepare-commit-msg hook on a message",
	Long: `Run the prepare-commit-msg hook on a message and print the message as the
hook left it. Hook output goes to stderr.

Sources: message, template, merge, squash, commit (requires --commit).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		source, err := hook.ParsePrepareCommitMsgSource(msgSource, msgCommit)
		if err != nil {
			return err
		}
		msg, err := readMessage(cmd.InOrStdin())
		if err != nil {
			return err
		}
		repo, err := openRepo(cmd)
		if err != nil {
			return err
		}
		res, err := hook.RunPrepareCommitMsg(cmd.Context(), repo, cfg.SearchPaths, source, &msg)
		if err != nil {
			return err
		}
		return printMessage(cmd, res, msg)
	},
}

func init() {
	for _, c := range []*cobra.Command{commitMsgCmd, prepareCommitMsgCmd} {
		c.Flags().StringVarP(&msgText, "message", "m", "", "commit message")
		c.Flags().StringVarP(&msgFile, "file", "F", "", `read the message from file ("-" for stdin)`)
		c.MarkFlagsMutuallyExclusive("message", "file")
		c.MarkFlagsOneRequired("message", "file")
	}
	prepareCommitMsgCmd.Flags().StringVar(&msgSource, "source", "message", "source of the message")
	prepareCommitMsgCmd.Flags().StringVar(&msgCommit, "commit", "", "commit the message was taken from, for --source=commit")
}

func readMessage(stdin io.Reader) (string, error) {
	switch msgFile {
	case "":
		return msgText, nil
	case "-":
		b, err := io.ReadAll(stdin)
		return string(b), err
	default:
		b, err := os.ReadFile(msgFile)
		if err != nil {
			return "", fmt.Errorf("failed to read message: %w", err)
		}
		return string(b), nil
	}
}

// printMessage prints msg even when the hook failed, since the hook may have
// edited it before rejecting.
func printMessage(cmd *cobra.Command, res hook.Result, msg string) error {
	err := resultError(cmd, res, true)
	fmt.Fprint(cmd.OutOrStdout(), msg)
	return err
}
