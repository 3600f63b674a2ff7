package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/k1LoW/git-hooks/internal/config"
	"github.com/k1LoW/git-hooks/internal/git"
	"github.com/k1LoW/git-hooks/internal/hook"
	"github.com/spf13/cobra"
)

var (
	repoDir     string
	searchPaths []string
	useGitCLI   bool
	configFile  string
	verbose     bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "git-hooks",
	Short: "Discover and run git hooks the way git does",
	Long: `git-hooks resolves the hook script git would run for an event
(core.hooksPath first, then .git/hooks, then any search paths) and runs it
from the worktree root with git-compatible process semantics.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&repoDir, "dir", "C", ".", "run as if started in this directory")
	rootCmd.PersistentFlags().StringArrayVar(&searchPaths, "search-path", nil, "additional hooks directory searched when core.hooksPath is not set (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&useGitCLI, "git-cli", false, "read the repository with the git binary instead of go-git")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/git-hooks/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(runCmd, pathCmd, listCmd, commitMsgCmd, prepareCommitMsgCmd, initCmd)
}

// HookFailedError is returned when a hook ran and rejected the operation.
// The process exits with Code instead of the generic error status.
type HookFailedError struct {
	Hook string
	Code int
}

func (e *HookFailedError) Error() string {
	return fmt.Sprintf("hook %s failed with exit code %d", e.Hook, e.Code)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		var hookErr *HookFailedError
		if errors.As(err, &hookErr) {
			slog.Debug("hook failed", "hook", hookErr.Hook, "code", hookErr.Code)
			return hookErr.Code
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		return 2
	}
	return 0
}

func setup(cmd *cobra.Command, _ []string) error {
	path := configFile
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return err
		}
		path = p
	}
	c, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg = c
	if useGitCLI {
		cfg.Backend = config.BackendGit
	}
	cfg.SearchPaths = append(cfg.SearchPaths, searchPaths...)

	level := slog.LevelInfo
	if verbose || cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	slog.Debug("loaded config", "path", path, "backend", cfg.Backend, "search_paths", cfg.SearchPaths)
	return nil
}

// openRepo opens the repository at --dir with the configured backend.
func openRepo(cmd *cobra.Command) (hook.Repository, error) {
	if cfg.Backend == config.BackendGit {
		r, err := git.OpenCLI(cmd.Context(), repoDir)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	r, err := git.Open(repoDir)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// resultError reports r on the command's streams and converts Failed into a
// HookFailedError. A signal-terminated hook exits 1.
func resultError(cmd *cobra.Command, r hook.Result, stdoutToStderr bool) error {
	switch r := r.(type) {
	case hook.Ok:
		slog.Debug("hook succeeded", "hook", r.Hook)
	case hook.NotRun:
		slog.Debug("no hook to run", "hook", r.Hook)
	case hook.Failed:
		stdout := cmd.OutOrStdout()
		if stdoutToStderr {
			stdout = cmd.ErrOrStderr()
		}
		fmt.Fprint(stdout, r.Stdout)
		fmt.Fprint(cmd.ErrOrStderr(), r.Stderr)
		code := r.ExitCode
		if r.Signaled() {
			code = 1
		}
		return &HookFailedError{Hook: r.Hook, Code: code}
	}
	return nil
}

func completeHookNames(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	return hook.Known, cobra.ShellCompDirectiveNoFileComp
}
