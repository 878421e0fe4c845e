package main

import (
	"github.com/spf13/cobra"
	"github.com/viant/symdiff/inspector/repository"
)

func newSnapshotsCommand(opts *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "List stored snapshots, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			anApp, err := newApp(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			snapshots, err := anApp.resolver.Snapshots().Snapshots(cmd.Context())
			if err != nil {
				return err
			}
			return encode(cmd.OutOrStdout(), format, snapshots)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatYAML, "output format: yaml or json")
	return cmd
}

func newWorktreesCommand(opts *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "worktrees",
		Short: "List git worktrees usable as worktree:<path> baselines",
		RunE: func(cmd *cobra.Command, args []string) error {
			anApp, err := newApp(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			worktrees, err := repository.Worktrees(cmd.Context(), anApp.root)
			if err != nil {
				return err
			}
			return encode(cmd.OutOrStdout(), format, worktrees)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatYAML, "output format: yaml or json")
	return cmd
}
