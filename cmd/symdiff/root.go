package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:          "symdiff",
		Short:        "Structural diff of classes, functions and members against a baseline",
		SilenceUsage: true,
	}
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configURL, "config", "", "YAML config location")
	flags.StringVar(&opts.root, "root", "", "source root, defaults to the enclosing repository")
	flags.StringVar(&opts.baseline, "baseline", "", "baseline as kind:reference, e.g. branch:main, snapshot:<id>, worktree:<path>")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")

	rootCmd.AddCommand(newDiffCommand(opts))
	rootCmd.AddCommand(newWatchCommand(opts))
	rootCmd.AddCommand(newSnapshotsCommand(opts))
	rootCmd.AddCommand(newWorktreesCommand(opts))
	return rootCmd
}
